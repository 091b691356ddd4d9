package rfc9111

import (
	"strings"
	"time"
)

// CacheControl implements parsing of the "Cache-Control" header (/field).
//
// §  5.2. Cache-Control
// §
// §  The "Cache-Control" header field is used to list directives for caches along
// §  the request/response chain. Cache directives are unidirectional, in that the
// §  presence of a directive in a request does not imply that the same directive is
// §  present or copied in the response.
// §
// §  [...] Cache directives are identified by a token, to
// §  be compared case-insensitively, and have an optional argument that can use both
// §  token and quoted-string syntax. For the directives defined below that define
// §  arguments, recipients ought to accept both forms, even if a specific form is
// §  required for generation.
// §
// §    Cache-Control   = #cache-directive
// §
// §    cache-directive = token [ "=" ( token / quoted-string ) ]
type CacheControl struct {
	directives map[string]string
	order      []string
}

// Get returns the value (/argument) of the specified directive,
// along with a boolean indicating whether this directive is present
func (c CacheControl) Get(directive string) (string, bool) {
	val, ok := c.directives[directive]
	return val, ok
}

// HasDirective returns whether the specified directive is present
func (c CacheControl) HasDirective(directive string) bool {
	_, ok := c.Get(directive)
	return ok
}

// Directives returns the directive names in the order they first appeared.
func (c CacheControl) Directives() []string {
	return append([]string(nil), c.order...)
}

// Map returns a copy of all directives and their arguments.
func (c CacheControl) Map() map[string]string {
	m := make(map[string]string, len(c.directives))
	for k, v := range c.directives {
		m[k] = v
	}
	return m
}

// ParseCacheControl takes Cache-Control headers as a slice of strings
// and returns an instance of `CacheControl`.
func ParseCacheControl(headers []string) CacheControl {
	cc := CacheControl{directives: make(map[string]string)}
	// note setting map values like this means last defined directive wins
	for _, header := range headers {
		for _, directive := range splitList(header) {
			name, arg, _ := strings.Cut(directive, "=")
			name = getCacheControlDirectiveName(name)
			if name == "" {
				continue
			}
			if _, seen := cc.directives[name]; !seen {
				cc.order = append(cc.order, name)
			}
			cc.directives[name] = getCacheControlDirectiveArgument(arg)
		}
	}
	return cc
}

// splitList splits a "#" list on commas that are not inside a quoted-string.
//
// §  [...] a recipient MUST accept empty list elements [...] (RFC9110, 5.6.1.2)
func splitList(header string) []string {
	var (
		elements []string
		current  strings.Builder
		quoted   bool
		escaped  bool
	)
	flush := func() {
		if el := strings.TrimSpace(current.String()); el != "" {
			elements = append(elements, el)
		}
		current.Reset()
	}
	for _, r := range header {
		switch {
		case escaped:
			escaped = false
		case quoted && r == '\\':
			escaped = true
		case r == '"':
			quoted = !quoted
		case r == ',' && !quoted:
			flush()
			continue
		}
		current.WriteRune(r)
	}
	flush()
	return elements
}

// getCacheControlDirectiveName returns a normalized name for the given directive.
func getCacheControlDirectiveName(token string) string {
	// §  [...] to be compared case-insensitively [...]
	return strings.ToLower(strings.TrimSpace(token))
}

// getCacheControlDirectiveArgument returns the directive argument in token form,
// i.e. it converts the argument from "quoted-string" to "token" form if needed.
func getCacheControlDirectiveArgument(arg string) string {
	// §  [...] argument that can use both token and quoted-string syntax. [...]
	arg = strings.TrimSpace(arg)
	if len(arg) >= 2 && arg[0] == '"' && arg[len(arg)-1] == '"' {
		return strings.ReplaceAll(arg[1:len(arg)-1], `\"`, `"`)
	}
	return arg
}

// §  5.2.2. Response Directives
// §
// §  This section defines cache response directives. A cache MUST obey the Cache-
// §  Control directives defined in this section.

// MaxAge returns "max-age" as a duration, along with a boolean indicating
// whether the "max-age" directive was present.
//
// §  5.2.2.1. max-age
// §
// §  Argument syntax:
// §
// §      delta-seconds (see Section 1.2.2)
// §
// §  [...] This directive uses the token form of the argument syntax: e.g.,
// §  'max-age=5' not 'max-age="5"'. A sender MUST NOT generate the quoted-string form.
func (c CacheControl) MaxAge() (time.Duration, bool) {
	return c.getDeltaSeconds("max-age")
}

// FieldNames returns the field names listed as the argument of a
// qualified "no-cache" or "private" directive. The boolean reports whether the
// directive is present at all; the list is empty for the unqualified form.
//
// §  5.2.2.4.  no-cache
// §
// §     Argument syntax:
// §
// §        #field-name
// §
// §     [...] This directive uses the quoted-string form of the argument syntax.  A
// §     sender SHOULD NOT generate the token form (even if quoting appears
// §     not to be needed for single-entry lists).
// §
// §  5.2.2.7.  private
// §
// §     Argument syntax:
// §
// §        #field-name
// §
// §     [...] Field names are case-insensitive.
func (c CacheControl) FieldNames(directive string) ([]string, bool) {
	arg, ok := c.Get(directive)
	if !ok {
		return nil, false
	}
	var names []string
	for _, name := range strings.Split(arg, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names, true
}

// QuoteFieldNames generates the quoted-string form of a field-name list,
// as required for the qualified forms of "no-cache" and "private".
// Names must already be valid tokens.
func QuoteFieldNames(names []string) string {
	return `"` + strings.Join(names, ", ") + `"`
}

// SMaxAge returns "s-maxage" as a duration.
//
// §  5.2.2.10.  s-maxage
// §
// §     Argument syntax:
// §
// §        delta-seconds (see Section 1.2.2)
// §
// §     The s-maxage response directive indicates that, for a shared cache,
// §     the maximum age specified by this directive overrides the maximum age
// §     specified by either the max-age directive or the Expires header
// §     field.
func (c CacheControl) SMaxAge() (time.Duration, bool) {
	return c.getDeltaSeconds("s-maxage")
}

// StaleWhileRevalidate returns "stale-while-revalidate" (RFC5861, 3) as a duration.
func (c CacheControl) StaleWhileRevalidate() (time.Duration, bool) {
	return c.getDeltaSeconds("stale-while-revalidate")
}

// StaleIfError returns "stale-if-error" (RFC5861, 4) as a duration.
func (c CacheControl) StaleIfError() (time.Duration, bool) {
	return c.getDeltaSeconds("stale-if-error")
}

// getDeltaSeconds returns the "delta-seconds" as `time.Duration`,
// as well as a boolean indicating whether the directive was set.
//
// Examples:
// directive     -> 0,  false
// directive=0   -> 0,  true
// directive=60  -> 60, true
// directive=abc -> 0,  false
func (c CacheControl) getDeltaSeconds(directive string) (time.Duration, bool) {
	if secondsStr, ok := c.Get(directive); ok && secondsStr != "" {
		return deltaSeconds(secondsStr)
	}
	return 0, false
}

// §  5.2.3.  Extension Directives
// §
// §     The Cache-Control header field can be extended through the use of one
// §     or more extension cache directives.  A cache MUST ignore unrecognized
// §     cache directives.
