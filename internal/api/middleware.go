package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/terra-clan/ia-booster/internal/state"
)

// metricsMiddleware records request count and latency per route pattern
func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.recorder.ObserveHTTPRequest(r.Method, route, status, time.Since(start))
	})
}

// clientIDMiddleware validates the {clientID} path segment and stores it in the request context
func (s *Server) clientIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := chi.URLParam(r, "clientID")
		if !state.ValidClientID(clientID) {
			respondError(w, http.StatusBadRequest, "invalid client id")
			return
		}

		if s.state == nil {
			respondError(w, http.StatusServiceUnavailable, "client state is not enabled")
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithClientID(r.Context(), clientID)))
	})
}

// limitBody caps the request body size
func limitBody(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
}
