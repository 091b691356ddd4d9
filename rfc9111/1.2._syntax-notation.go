package rfc9111

import (
	"strconv"
	"strings"
	"time"
)

// §  1.2.  Syntax Notation
// §
// §     This specification uses the Augmented Backus-Naur Form (ABNF)
// §     notation of [RFC5234], extended with the notation for case-
// §     sensitivity in strings defined in [RFC7405].
// §
// §  1.2.1.  Imported Rules
// §
// §     [HTTP] defines the following rules:
// §
// §       field-name    = <field-name, see [HTTP], Section 5.1>
// §       quoted-string = <quoted-string, see [HTTP], Section 5.6.4>
// §       token         = <token, see [HTTP], Section 5.6.2>

// tokenDelimiters are the separators that may not appear in a token.
//
// This section is from the HTTP specification (RFC9110), not the cache specification
//
// §  5.6.2.  Tokens
// §
// §     Tokens are short textual identifiers that do not include whitespace
// §     or delimiters.
// §
// §       token          = 1*tchar
// §
// §     Many HTTP field values are defined using common syntax components,
// §     separated by whitespace or specific delimiting characters.
// §     Delimiters are chosen from the set of US-ASCII visual characters not
// §     allowed in a token (DQUOTE and "(),/:;<=>?@[\]{}").
const tokenDelimiters = `()<>@,;:\"/[]?={} `

// IsToken reports whether s can be sent as a token.
// Control characters and delimiters are rejected; other octets are accepted
// so that field names outside US-ASCII are passed on unchanged.
func IsToken(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return false
		}
		if strings.ContainsRune(tokenDelimiters, r) {
			return false
		}
	}
	return true
}

// §  1.2.2. Delta Seconds
// §
// §  The delta-seconds rule specifies a non-negative integer, representing time
// §  in seconds.
// §
// §      delta-seconds  = 1*DIGIT
// §
// §  A recipient parsing a delta-seconds value and converting it to binary form
// §  ought to use an arithmetic type of at least 31 bits of non-negative integer
// §  range. If a cache receives a delta-seconds value greater than the greatest
// §  integer it can represent, or if any of its subsequent calculations overflows,
// §  the cache MUST consider the value to be 2147483648 (231) or the greatest
// §  positive integer it can conveniently represent.
func deltaSeconds(secondsStr string) (time.Duration, bool) {
	seconds, err := strconv.ParseUint(secondsStr, 10, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return time.Second * maxDeltaSeconds, true
		}
		return 0, false
	}
	if seconds > maxDeltaSeconds {
		seconds = maxDeltaSeconds
	}
	return time.Second * time.Duration(seconds), true
}

const maxDeltaSeconds = 2147483648

// FormatDeltaSeconds returns the delta-seconds form of a number of seconds.
// Negative input is generated as "0", since the rule only allows digits.
func FormatDeltaSeconds(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return strconv.FormatInt(seconds, 10)
}
