package responsetransformer

import (
	"fmt"
	"net/http"
	"strings"

	cachedirective "github.com/always-cache/cache-directive/pkg/cache-directive"
	"github.com/always-cache/cache-directive/rfc9111"

	"github.com/rs/zerolog/log"
)

type Rules []Rule

// Rule sets Cache-Control on the responses it matches.
// The value is generated from Pattern and/or Options, as with cachedirective.Apply.
type Rule struct {
	Prefix  string            `yaml:"prefix"`
	Path    string            `yaml:"path"`
	Method  string            `yaml:"method"`
	Query   map[string]string `yaml:"query"`
	Headers map[string]string `yaml:"headers"`

	Pattern string                 `yaml:"pattern"`
	Options cachedirective.Options `yaml:"options"`
	// Override replaces a Cache-Control header set by the handler (or origin).
	// Otherwise the rule only applies to responses without one.
	Override bool `yaml:"override"`

	cacheControl string
}

// Compile generates the Cache-Control value of every rule.
// It must be called before the rules are used; it fails on the first
// rule with invalid directives.
func (r Rules) Compile() error {
	for i := range r {
		var (
			value string
			err   error
		)
		if r[i].Pattern != "" {
			value, err = cachedirective.Header(r[i].Pattern, r[i].Options)
		} else {
			value, err = cachedirective.HeaderOptions(r[i].Options)
		}
		if err != nil {
			return fmt.Errorf("rule %d (%s%s): %w", i, r[i].Prefix, r[i].Path, err)
		}
		r[i].cacheControl = value
		log.Trace().Int("rule", i).Str("cacheControl", value).Msg("Compiled rule")
	}
	return nil
}

// Apply applies the first matching rule to an origin response.
// It can be used as httputil.ReverseProxy.ModifyResponse.
func (r Rules) Apply(res *http.Response) error {
	if !applicableStatus(res.StatusCode) {
		return nil
	}
	// if rule found, apply to response
	if rule := r.find(res.Request); rule != nil {
		applyRuleToHeader(*rule, res.Header)
	}
	return nil
}

// Middleware applies the first matching rule to responses of next,
// just before the response header is written.
func (r Rules) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		rule := r.find(req)
		if rule == nil {
			next.ServeHTTP(w, req)
			return
		}
		hw := &headerHookWriter{ResponseWriter: w, hook: func(status int) {
			if applicableStatus(status) {
				applyRuleToHeader(*rule, w.Header())
			}
		}}
		next.ServeHTTP(hw, req)
		hw.runHook(http.StatusOK)
	})
}

// applicableStatus excludes error responses.
func applicableStatus(status int) bool {
	return status < http.StatusBadRequest
}

func applyRuleToHeader(rule Rule, header http.Header) {
	if rule.cacheControl != "" {
		if rule.Override {
			log.Trace().Msg("Overriding Cache-Control header")
			header.Set(rfc9111.CacheControlHeader, rule.cacheControl)
		} else if header.Get(rfc9111.CacheControlHeader) == "" {
			log.Trace().Msg("Applying default Cache-Control header")
			header.Set(rfc9111.CacheControlHeader, rule.cacheControl)
		}
	}
	for name, value := range rule.Headers {
		log.Trace().Msgf("Setting header %s", name)
		header.Set(name, value)
	}
}

func (r Rules) find(req *http.Request) *Rule {
	if req == nil {
		return nil
	}
	log.Trace().Msgf("Finding rule for request %s:%s", req.Method, req.URL.Path)
rulesLoop:
	for i, rule := range r {
		if rule.Method == "" && req.Method != http.MethodGet && req.Method != http.MethodHead {
			continue
		}
		if rule.Method != "" && !strings.EqualFold(rule.Method, req.Method) {
			continue
		}
		if rule.Path != "" && rule.Path != req.URL.Path {
			continue
		}
		if rule.Prefix != "" && !strings.HasPrefix(req.URL.Path, rule.Prefix) {
			continue
		}
		if len(rule.Query) > 0 {
			qry := req.URL.Query()
			for name, value := range rule.Query {
				if value == "" && !qry.Has(name) {
					continue rulesLoop
				} else if value != "" && qry.Get(name) != value {
					continue rulesLoop
				}
			}
		}
		log.Trace().Msgf("Matched rule %d", i)
		return &r[i]
	}
	return nil
}

// headerHookWriter runs hook once, right before the header is written.
type headerHookWriter struct {
	http.ResponseWriter
	hook   func(status int)
	hooked bool
}

func (w *headerHookWriter) runHook(status int) {
	if !w.hooked {
		w.hooked = true
		w.hook(status)
	}
}

func (w *headerHookWriter) WriteHeader(status int) {
	w.runHook(status)
	w.ResponseWriter.WriteHeader(status)
}

func (w *headerHookWriter) Write(b []byte) (int, error) {
	w.runHook(http.StatusOK)
	return w.ResponseWriter.Write(b)
}

func (w *headerHookWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
