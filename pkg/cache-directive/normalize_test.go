package cachedirective

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownPattern(t *testing.T) {
	_, err := Normalize("unknown", Options{"maxAge": 60})
	var patternErr *UnknownPatternError
	require.ErrorAs(t, err, &patternErr)
	assert.Equal(t, "unknown", patternErr.Pattern)
	assert.ErrorIs(t, err, ErrUnknownPattern)

	// pattern names are not aliased
	_, err = Normalize("noStore", nil)
	assert.ErrorIs(t, err, ErrUnknownPattern)
}

func TestExclusiveDirectives(t *testing.T) {
	exclusive := []Options{
		{"public": true},
		{"private": true},
		{"no-cache": true},
		{"no-store": true},
	}
	for i := range exclusive {
		for j := range exclusive {
			if i == j {
				continue
			}
			opts := Options{}
			for k, v := range exclusive[i] {
				opts[k] = v
			}
			for k, v := range exclusive[j] {
				opts[k] = v
			}
			if _, ok := opts["no-cache"]; ok {
				if _, ok := opts["no-store"]; ok {
					// no-cache and no-store are the same class
					_, err := NormalizeOptions(opts)
					assert.NoError(t, err)
					continue
				}
			}
			_, err := NormalizeOptions(opts)
			var conflict *ExclusiveDirectiveConflictError
			require.ErrorAs(t, err, &conflict, "%v", opts)
			assert.Len(t, conflict.Directives, 2)
			assert.ErrorIs(t, err, ErrExclusiveDirectiveConflict)
		}
	}

	_, err := NormalizeOptions(Options{"public": true, "private": true, "noStore": true})
	var conflict *ExclusiveDirectiveConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []Directive{Public, Private, NoStore}, conflict.Directives)

	// a pattern conflicts with an override of another class
	_, err = Normalize("private", Options{"public": true})
	assert.ErrorIs(t, err, ErrExclusiveDirectiveConflict)
}

func TestQualifiedFieldDirectivesAreNotExclusive(t *testing.T) {
	ds, err := NormalizeOptions(Options{"public": true, "private": "X-Private", "noCache": []string{"X-Uncached"}})
	require.NoError(t, err)
	assert.Equal(t, "X-Private", ds[Private])
}

func TestPatternOverride(t *testing.T) {
	ds, err := Normalize("private", Options{"mustRevalidate": true})
	require.NoError(t, err)
	assert.Equal(t, Directives{Private: true, MustRevalidate: true}, ds)

	// overrides replace the pattern default
	ds, err = Normalize("public", Options{"public": false, "private": true})
	require.NoError(t, err)
	assert.False(t, ds.Has(Public))
	assert.True(t, ds.Has(Private))
}

func TestOptionsDoNotSeedPattern(t *testing.T) {
	ds, err := NormalizeOptions(Options{"noTransform": true})
	require.NoError(t, err)
	assert.Equal(t, Directives{NoTransform: true}, ds)
}

func TestUnknownOptionsIgnored(t *testing.T) {
	ds, err := NormalizeOptions(Options{"must-understand": true, "MaxAge": 10, "community": "UCI"})
	require.NoError(t, err)
	assert.Empty(t, ds)
}

func TestCanonicalNameWinsOverAlias(t *testing.T) {
	ds, err := NormalizeOptions(Options{"maxAge": 10, "max-age": 20})
	require.NoError(t, err)
	assert.Equal(t, 20, ds[MaxAge])
}

func TestImplyNoCache(t *testing.T) {
	ds := Directives{NoStore: true}
	require.NoError(t, implyNoCache(ds))
	assert.Equal(t, true, ds[NoCache])

	ds = Directives{NoStore: true, NoCache: "Set-Cookie"}
	require.NoError(t, implyNoCache(ds))
	assert.Equal(t, "Set-Cookie", ds[NoCache])
}

func TestImplyPublic(t *testing.T) {
	ds := Directives{MaxAge: 300}
	require.NoError(t, implyPublic(ds))
	assert.Equal(t, true, ds[Public])

	for _, restricted := range []Directives{
		{MaxAge: 300, Private: true},
		{MaxAge: 300, NoCache: true},
		{MaxAge: 300, NoStore: true},
	} {
		require.NoError(t, implyPublic(restricted))
		assert.False(t, restricted.Has(Public), "%v", restricted)
	}

	// a qualified private does not restrict the rest of the response
	ds = Directives{MaxAge: 300, Private: "X-Private"}
	require.NoError(t, implyPublic(ds))
	assert.True(t, ds.Has(Public))

	// s-maxage alone does not imply public
	ds = Directives{SMaxAge: 300}
	require.NoError(t, implyPublic(ds))
	assert.False(t, ds.Has(Public))
}

func TestSuppressSMaxAge(t *testing.T) {
	for _, opts := range []Options{
		{"no-cache": true, "s-maxage": 600},
		{"private": true, "sMaxAge": 600},
		{"noStore": true, "sMaxage": "1h"},
	} {
		value, err := HeaderOptions(opts)
		require.NoError(t, err)
		assert.NotContains(t, value, "s-maxage", "%v", opts)
	}

	value, err := HeaderOptions(Options{"no-cache": "X-Uncached", "s-maxage": 600})
	require.NoError(t, err)
	assert.Equal(t, `no-cache="X-Uncached", s-maxage=600`, value)
}

func TestRulesOrder(t *testing.T) {
	// no-store implies no-cache before the public implication is checked
	value, err := HeaderOptions(Options{"noStore": true, "maxAge": 60})
	require.NoError(t, err)
	assert.Equal(t, "no-cache, no-store, max-age=60", value)
}
