package cachedirective

import (
	"math"
	"strings"
	"time"

	"github.com/always-cache/cache-directive/rfc9111"
)

// Encode generates the Cache-Control value for normalized directives.
// Directives are generated in a fixed order, and unset ones are skipped.
// The value is empty if no directive is generated; on error no value is returned.
func Encode(ds Directives) (string, error) {
	var generated []string
	for _, d := range directiveOrder {
		value, ok := ds[d]
		if !ok || !truthy(value) {
			continue
		}
		var (
			directive string
			err       error
		)
		switch d.class() {
		case classDeltaSeconds:
			directive, err = encodeDeltaSeconds(d, value)
		case classFieldList:
			directive, err = encodeFieldList(d, value)
		default:
			directive = string(d)
		}
		if err != nil {
			return "", err
		}
		if directive != "" {
			generated = append(generated, directive)
		}
	}
	return strings.Join(generated, ", "), nil
}

// encodeDeltaSeconds generates e.g. "max-age=300".
//
// Time expressions are converted to seconds, numbers are used as seconds.
func encodeDeltaSeconds(d Directive, value any) (string, error) {
	var seconds int64
	switch v := value.(type) {
	case string:
		s, ok := ParseTimeExpression(v)
		if !ok {
			return "", &InvalidTimeExpressionError{Directive: d, Value: v}
		}
		seconds = s
	case time.Duration:
		if v < 0 {
			return "", &InvalidDirectiveValueError{Directive: d, Value: v}
		}
		seconds = int64(v.Round(time.Second) / time.Second)
	default:
		f, ok := toNumber(v)
		if !ok || f < 0 || math.IsInf(f, 0) || f > math.MaxInt64 {
			return "", &InvalidDirectiveValueError{Directive: d, Value: v}
		}
		seconds = int64(math.Round(f))
	}
	return string(d) + "=" + rfc9111.FormatDeltaSeconds(seconds), nil
}

// encodeFieldList generates the unqualified form for true, and the
// qualified form (e.g. `private="Set-Cookie"`) for one or more field names.
// An empty field-name list generates nothing.
func encodeFieldList(d Directive, value any) (string, error) {
	if isTrue(value) {
		return string(d), nil
	}
	var entries []any
	switch v := value.(type) {
	case []string:
		for _, name := range v {
			entries = append(entries, name)
		}
	case []any:
		entries = v
	default:
		entries = []any{v}
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if b, ok := entry.(bool); ok && !b {
			continue
		}
		name, ok := entry.(string)
		if !ok {
			return "", &InvalidDirectiveValueError{Directive: d, Value: entry}
		}
		if !rfc9111.IsToken(name) {
			return "", &InvalidTokenError{Directive: d, Value: name}
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return "", nil
	}
	return string(d) + "=" + rfc9111.QuoteFieldNames(names), nil
}
