package cachedirective

import (
	"github.com/always-cache/cache-directive/rfc9111"
)

// HeaderSetter is where the generated Cache-Control value is written.
// http.Header implements it.
type HeaderSetter interface {
	Set(key, value string)
}

// Apply expands the pattern with the overrides and sets the resulting
// Cache-Control value on h. Nothing is set if no directive results or
// if an error is returned.
func Apply(h HeaderSetter, pattern string, overrides Options) error {
	ds, err := Normalize(pattern, overrides)
	if err != nil {
		return err
	}
	return apply(h, ds)
}

// ApplyOptions is like Apply, without a pattern.
func ApplyOptions(h HeaderSetter, opts Options) error {
	ds, err := NormalizeOptions(opts)
	if err != nil {
		return err
	}
	return apply(h, ds)
}

func apply(h HeaderSetter, ds Directives) error {
	value, err := Encode(ds)
	if err != nil {
		return err
	}
	if value != "" {
		h.Set(rfc9111.CacheControlHeader, value)
	}
	return nil
}

// Header returns the Cache-Control value for the pattern and overrides,
// without setting it anywhere.
func Header(pattern string, overrides Options) (string, error) {
	ds, err := Normalize(pattern, overrides)
	if err != nil {
		return "", err
	}
	return Encode(ds)
}

// HeaderOptions returns the Cache-Control value for the options.
func HeaderOptions(opts Options) (string, error) {
	ds, err := NormalizeOptions(opts)
	if err != nil {
		return "", err
	}
	return Encode(ds)
}
