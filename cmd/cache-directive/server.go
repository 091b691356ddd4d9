package main

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	cachedirective "github.com/always-cache/cache-directive/pkg/cache-directive"
	"github.com/always-cache/cache-directive/rfc9111"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

// newHandler returns a reverse proxy to the configured origin,
// or the demo routes if no origin is configured.
// Configured rules are applied to all responses.
func newHandler(config Config) (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(hlog.NewHandler(log.Logger))
	r.Use(hlog.AccessHandler(logRequest))
	r.Use(chimw.Recoverer)

	if config.Server.Origin != "" {
		originURL, err := url.Parse(config.Server.Origin)
		if err != nil {
			return nil, fmt.Errorf("could not parse origin url: %w", err)
		}
		proxy := newReverseProxy(originURL, config.Server.OriginHost)
		proxy.ModifyResponse = config.Rules.Apply
		r.Handle("/*", proxy)
		return r, nil
	}

	r.Use(config.Rules.Middleware)
	r.Use(cachedirective.Middleware)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		cachedirective.ControllerFor(w).CacheControl("no-store", nil)
		w.Write([]byte("ok"))
	})
	r.Get("/encode", encodeHandler)
	return r, nil
}

type encodeResponse struct {
	CacheControl string            `json:"cacheControl,omitempty"`
	Directives   map[string]string `json:"directives,omitempty"`
	Error        string            `json:"error,omitempty"`
}

// encodeHandler sets Cache-Control from the query parameters
// and describes the result in the response body.
func encodeHandler(w http.ResponseWriter, r *http.Request) {
	pattern, opts := optionsFromQuery(r.URL.Query())
	controller := cachedirective.ControllerFor(w)
	var err error
	if pattern != "" {
		err = controller.CacheControl(pattern, opts)
	} else {
		err = controller.CacheControlOptions(opts)
	}

	res := encodeResponse{}
	status := http.StatusOK
	if err != nil {
		status = http.StatusBadRequest
		res.Error = err.Error()
	} else {
		cc := rfc9111.ResponseCacheControl(w.Header())
		res.CacheControl = w.Header().Get(rfc9111.CacheControlHeader)
		res.Directives = cc.Map()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Could not write response body to client")
	}
}

func newReverseProxy(originURL *url.URL, originHost string) *httputil.ReverseProxy {
	host := originURL.Host
	hostHeader := host
	transport := http.DefaultTransport
	if originHost != "" {
		hostHeader = originHost
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{
				ServerName: originHost,
			},
		}
	}
	return &httputil.ReverseProxy{
		Director:  createDirector(originURL.Scheme, host, hostHeader),
		Transport: transport,
	}
}

func createDirector(scheme, host, hostHeader string) func(req *http.Request) {
	return func(req *http.Request) {
		req.URL.Scheme = scheme
		req.URL.Host = host
		if hostHeader != "" {
			req.Host = hostHeader
		}
	}
}

func logRequest(r *http.Request, status, size int, duration time.Duration) {
	logger := hlog.FromRequest(r)
	logger.WithLevel(levelForStatus(status)).
		Str("method", r.Method).
		Str("url", r.URL.String()).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("Sending response to client")
}

func levelForStatus(status int) zerolog.Level {
	if status >= http.StatusInternalServerError {
		return zerolog.WarnLevel
	}
	return zerolog.DebugLevel
}
