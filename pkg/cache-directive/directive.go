// Package cachedirective builds response Cache-Control values from a
// pattern name and/or a set of directive options.
//
// Options are normalized first (aliases resolved, pattern defaults merged,
// exclusive and implied directives enforced) and then encoded in a fixed
// directive order:
//
//	cachedirective.Apply(w.Header(), "public", cachedirective.Options{"maxAge": "1 hour"})
//	// Cache-Control: public, max-age=3600
package cachedirective

import (
	"math"
	"time"

	"github.com/spf13/cast"
)

// Directive is the canonical name of a response cache directive.
type Directive string

const (
	Public               Directive = "public"
	Private              Directive = "private"
	NoCache              Directive = "no-cache"
	NoStore              Directive = "no-store"
	MaxAge               Directive = "max-age"
	SMaxAge              Directive = "s-maxage"
	Immutable            Directive = "immutable"
	MustRevalidate       Directive = "must-revalidate"
	ProxyRevalidate      Directive = "proxy-revalidate"
	NoTransform          Directive = "no-transform"
	StaleWhileRevalidate Directive = "stale-while-revalidate"
	StaleIfError         Directive = "stale-if-error"
)

// directiveOrder is the order directives are generated in.
// Changing it changes the generated header values.
var directiveOrder = []Directive{
	Public,
	Private,
	NoCache,
	NoStore,
	MaxAge,
	SMaxAge,
	Immutable,
	MustRevalidate,
	ProxyRevalidate,
	NoTransform,
	StaleWhileRevalidate,
	StaleIfError,
}

// All returns the recognized directives in generation order.
func All() []Directive {
	return append([]Directive(nil), directiveOrder...)
}

type valueClass int

const (
	classBoolean valueClass = iota
	// optional #field-name argument
	classFieldList
	// delta-seconds argument
	classDeltaSeconds
)

var directiveClasses = map[Directive]valueClass{
	Private:              classFieldList,
	NoCache:              classFieldList,
	MaxAge:               classDeltaSeconds,
	SMaxAge:              classDeltaSeconds,
	StaleWhileRevalidate: classDeltaSeconds,
	StaleIfError:         classDeltaSeconds,
}

func (d Directive) class() valueClass {
	return directiveClasses[d]
}

// Valid reports whether d is one of the recognized directives.
func (d Directive) Valid() bool {
	for _, known := range directiveOrder {
		if d == known {
			return true
		}
	}
	return false
}

// aliases maps alternate (camel-cased) option keys to directives.
// Lookups are case-sensitive.
var aliases = map[string]Directive{
	"noCache":              NoCache,
	"noStore":              NoStore,
	"noTransform":          NoTransform,
	"mustRevalidate":       MustRevalidate,
	"proxyRevalidate":      ProxyRevalidate,
	"maxAge":               MaxAge,
	"sMaxage":              SMaxAge,
	"sMaxAge":              SMaxAge,
	"staleWhileRevalidate": StaleWhileRevalidate,
	"staleIfError":         StaleIfError,
}

// resolve returns the directive for an option key, and whether it is recognized.
func resolve(key string) (Directive, bool) {
	d, ok := aliases[key]
	if !ok {
		d = Directive(key)
	}
	return d, d.Valid()
}

// Pattern is a shorthand expanding to a single default directive.
type Pattern string

const (
	PatternPublic  Pattern = "public"
	PatternPrivate Pattern = "private"
	PatternNoCache Pattern = "no-cache"
	PatternNoStore Pattern = "no-store"
)

// patternDefaults only hold the directive named by the pattern.
// The no-cache implied by no-store is added during normalization.
var patternDefaults = map[Pattern]Directive{
	PatternPublic:  Public,
	PatternPrivate: Private,
	PatternNoCache: NoCache,
	PatternNoStore: NoStore,
}

// Options holds directive values keyed by directive name or alias.
//
// Values are true for presence-only directives, a string or a slice of
// strings for field-name lists (private, no-cache) and a number,
// time.Duration or time expression such as "5 minutes" for delta-seconds
// directives (max-age, s-maxage, stale-while-revalidate, stale-if-error).
type Options map[string]any

// Directives is the canonical, normalized form of Options.
type Directives map[Directive]any

// Has reports whether d is set to a value that will be generated.
func (ds Directives) Has(d Directive) bool {
	return truthy(ds[d])
}

// truthy reports whether a value counts as set.
// nil, false, "", zero and NaN do not; anything else, including empty lists, does.
func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case time.Duration:
		return val != 0
	}
	if f, ok := toNumber(v); ok {
		return f != 0 && !math.IsNaN(f)
	}
	return true
}

// isTrue reports whether v is exactly the boolean true,
// as opposed to e.g. a field-name list.
func isTrue(v any) bool {
	b, ok := v.(bool)
	return ok && b
}

// toNumber converts Go numeric kinds to float64.
// Strings and booleans are not numbers here, even if cast could convert them.
func toNumber(v any) (float64, bool) {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		f, err := cast.ToFloat64E(v)
		return f, err == nil
	}
	return 0, false
}
