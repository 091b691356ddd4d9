package cachedirective

import (
	"sort"

	"github.com/rs/zerolog/log"
)

// Normalize expands the named pattern and merges the overrides into it.
// It returns an *UnknownPatternError for an unrecognized pattern.
func Normalize(pattern string, overrides Options) (Directives, error) {
	def, ok := patternDefaults[Pattern(pattern)]
	if !ok {
		return nil, &UnknownPatternError{Pattern: pattern}
	}
	ds := Directives{def: true}
	return normalize(ds, overrides)
}

// NormalizeOptions normalizes options without a pattern.
// Unlike Normalize, no directive is set unless given in opts.
func NormalizeOptions(opts Options) (Directives, error) {
	return normalize(Directives{}, opts)
}

func normalize(ds Directives, opts Options) (Directives, error) {
	for _, key := range optionKeys(opts) {
		d, ok := resolve(key)
		if !ok {
			log.Debug().Str("option", key).Interface("value", opts[key]).Msg("Ignoring non-standard cache directive option")
			continue
		}
		ds[d] = opts[key]
	}
	for _, apply := range rules {
		if err := apply(ds); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// optionKeys returns the keys of opts with aliases before canonical names,
// so that a canonical name wins when both spellings are given.
func optionKeys(opts Options) []string {
	keys := make([]string, 0, len(opts))
	for key := range opts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		_, iAlias := aliases[keys[i]]
		_, jAlias := aliases[keys[j]]
		if iAlias != jAlias {
			return iAlias
		}
		return keys[i] < keys[j]
	})
	return keys
}

// rule is a single normalization step. Rules are applied in order and may
// modify the directives in place.
type rule func(Directives) error

var rules = []rule{
	checkExclusive,
	implyNoCache,
	implyPublic,
	suppressSMaxAge,
}

// restrictive reports whether the directives forbid shared (or any) reuse
// without validation: unqualified private, unqualified no-cache or no-store.
func restrictive(ds Directives) bool {
	return isTrue(ds[Private]) || isTrue(ds[NoCache]) || ds.Has(NoStore)
}

// checkExclusive fails if more than one of public, unqualified private and
// unqualified no-cache/no-store is set. no-cache and no-store may be combined,
// and qualified private/no-cache only apply to the listed fields.
func checkExclusive(ds Directives) error {
	var classes []Directive
	if ds.Has(Public) {
		classes = append(classes, Public)
	}
	if isTrue(ds[Private]) {
		classes = append(classes, Private)
	}
	if isTrue(ds[NoCache]) {
		classes = append(classes, NoCache)
	} else if ds.Has(NoStore) {
		classes = append(classes, NoStore)
	}
	if len(classes) > 1 {
		return &ExclusiveDirectiveConflictError{Directives: classes}
	}
	return nil
}

// implyNoCache adds no-cache to no-store, since some browsers only honor no-cache.
func implyNoCache(ds Directives) error {
	if ds.Has(NoStore) && !ds.Has(NoCache) {
		ds[NoCache] = true
	}
	return nil
}

// implyPublic adds public to max-age unless the response is otherwise restricted.
func implyPublic(ds Directives) error {
	if ds.Has(MaxAge) && !ds.Has(Public) && !restrictive(ds) {
		ds[Public] = true
	}
	return nil
}

// suppressSMaxAge removes s-maxage where shared caches may not reuse the response.
func suppressSMaxAge(ds Directives) error {
	if restrictive(ds) {
		delete(ds, SMaxAge)
	}
	return nil
}
