package cachedirective

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestMiddlewareInstallsController(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw, ok := w.(ResponseWriter)
		if !ok {
			t.Fatal("Response writer has no CacheControl")
		}
		if err := rw.CacheControl("public", Options{"maxAge": "5 min"}); err != nil {
			t.Fatalf("Error: %v", err)
		}
		w.Write([]byte("Hello world"))
	})
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)

	Middleware(handler).ServeHTTP(rr, req)

	if cc := rr.Result().Header.Get("Cache-Control"); cc != "public, max-age=300" {
		t.Fatalf("Cache-Control header is '%s'", cc)
	}
}

func TestControllerThroughChiMiddleware(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Use(chimw.Compress(5))
	r.Get("/private", func(w http.ResponseWriter, r *http.Request) {
		if err := ControllerFor(w).CacheControl("private", Options{"mustRevalidate": true}); err != nil {
			t.Fatalf("Error: %v", err)
		}
		w.Write([]byte("secret"))
	})
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, httptest.NewRequest("GET", "/private", nil))

	if cc := rr.Result().Header.Get("Cache-Control"); cc != "private, must-revalidate" {
		t.Fatalf("Cache-Control header is '%s'", cc)
	}
}

func TestControllerErrorWritesNothing(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := ControllerFor(w).CacheControlOptions(Options{"public": true, "noStore": true})
		if err == nil {
			t.Fatal("Expected exclusive directive error")
		}
		w.WriteHeader(http.StatusNoContent)
	})
	rr := httptest.NewRecorder()

	Middleware(handler).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if _, ok := rr.Result().Header["Cache-Control"]; ok {
		t.Fatal("Cache-Control header set")
	}
}

func TestControllerWithoutMiddleware(t *testing.T) {
	rr := httptest.NewRecorder()
	if err := ControllerFor(rr).CacheControl("no-cache", nil); err != nil {
		t.Fatalf("Error: %v", err)
	}
	if cc := rr.Header().Get("Cache-Control"); cc != "no-cache" {
		t.Fatalf("Cache-Control header is '%s'", cc)
	}
}
