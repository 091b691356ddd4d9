package cachedirective

import (
	"net/http"

	"github.com/always-cache/cache-directive/rfc9111"

	"github.com/rs/zerolog"
)

// Controller sets the Cache-Control header of a single response.
type Controller struct {
	header http.Header
	log    zerolog.Logger
}

// CacheControl sets Cache-Control from a pattern and overrides, see Apply.
func (c *Controller) CacheControl(pattern string, overrides Options) error {
	err := Apply(c.header, pattern, overrides)
	c.logResult(err, pattern)
	return err
}

// CacheControlOptions sets Cache-Control from options, see ApplyOptions.
func (c *Controller) CacheControlOptions(opts Options) error {
	err := ApplyOptions(c.header, opts)
	c.logResult(err, "")
	return err
}

func (c *Controller) logResult(err error, pattern string) {
	if err != nil {
		c.log.Debug().Err(err).Str("pattern", pattern).Msg("Could not set Cache-Control")
		return
	}
	c.log.Trace().Str("cacheControl", c.header.Get(rfc9111.CacheControlHeader)).Msg("Cache-Control set")
}

// ResponseWriter is the response writer passed on by Middleware.
type ResponseWriter interface {
	http.ResponseWriter
	CacheControl(pattern string, overrides Options) error
	CacheControlOptions(opts Options) error
}

type responseWriter struct {
	http.ResponseWriter
	*Controller
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Middleware installs a Controller on every response before the next
// handler runs. Handlers reach it with ControllerFor or by asserting
// the writer to ResponseWriter.
//
// The controller logs through the request logger (zerolog.Ctx) if there is one.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		controller := &Controller{
			header: w.Header(),
			log:    *zerolog.Ctx(r.Context()),
		}
		next.ServeHTTP(&responseWriter{ResponseWriter: w, Controller: controller}, r)
	})
}

// ControllerFor returns the controller installed by Middleware, looking
// through writers wrapped by other middleware. For writers that were not
// passed through Middleware a controller for w's header is returned.
func ControllerFor(w http.ResponseWriter) *Controller {
	for inner := w; inner != nil; {
		if rw, ok := inner.(*responseWriter); ok {
			return rw.Controller
		}
		unwrapper, ok := inner.(interface{ Unwrap() http.ResponseWriter })
		if !ok {
			break
		}
		inner = unwrapper.Unwrap()
	}
	return &Controller{header: w.Header(), log: zerolog.Nop()}
}
