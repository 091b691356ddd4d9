package main

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	cachedirective "github.com/always-cache/cache-directive/pkg/cache-directive"
)

var integerValue = regexp.MustCompile(`^[0-9]+$`)

// parseOptionValue converts a textual option value to the type the encoder expects:
// an empty value or "true" means set, "false" unset, digits are seconds,
// and a comma-separated value is a field-name list.
func parseOptionValue(raw string) any {
	switch {
	case raw == "" || raw == "true":
		return true
	case raw == "false":
		return false
	case integerValue.MatchString(raw):
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return n
		}
		return raw
	case strings.Contains(raw, ","):
		var names []string
		for _, name := range strings.Split(raw, ",") {
			names = append(names, strings.TrimSpace(name))
		}
		return names
	}
	return raw
}

// parseOptionArgs parses "[pattern] directive[=value]..." command line arguments.
func parseOptionArgs(args []string) (pattern string, opts cachedirective.Options) {
	opts = cachedirective.Options{}
	for i, arg := range args {
		key, raw, hasValue := strings.Cut(arg, "=")
		if i == 0 && !hasValue && isPattern(key) {
			pattern = key
			continue
		}
		opts[key] = parseOptionValue(raw)
	}
	return pattern, opts
}

// optionsFromQuery reads the pattern and options from query parameters,
// e.g. ?pattern=public&maxAge=1h&private=X-A,X-B
func optionsFromQuery(query url.Values) (pattern string, opts cachedirective.Options) {
	opts = cachedirective.Options{}
	for key, values := range query {
		if key == "pattern" {
			pattern = query.Get(key)
			continue
		}
		opts[key] = parseOptionValue(strings.Join(values, ","))
	}
	return pattern, opts
}

func isPattern(name string) bool {
	switch cachedirective.Pattern(name) {
	case cachedirective.PatternPublic, cachedirective.PatternPrivate,
		cachedirective.PatternNoCache, cachedirective.PatternNoStore:
		return true
	}
	return false
}

// header generates the Cache-Control value, with or without a pattern.
func header(pattern string, opts cachedirective.Options) (string, error) {
	if pattern != "" {
		return cachedirective.Header(pattern, opts)
	}
	return cachedirective.HeaderOptions(opts)
}
