package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/statesearch/pkg/observability"
)

// unmatchedRoute labels requests no route matched, so unknown paths share
// one metrics series.
const unmatchedRoute = "unmatched"

// matchRoute resolves the route pattern before the request is dispatched.
func (s *Server) matchRoute(r *http.Request) string {
	rctx := chi.NewRouteContext()
	if s.router != nil && s.router.Match(rctx, r.Method, r.URL.Path) && rctx.RoutePattern() != "" {
		return rctx.RoutePattern()
	}
	return unmatchedRoute
}

// observe reports every request to the HTTP hooks and the logger. The route
// label is chi's pattern, so /v1/runs/{id} counts as one route.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		hooks.OnRequest(r.Context(), r.Method, s.matchRoute(r))
		next.ServeHTTP(ww, r)

		route := unmatchedRoute
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, route, status, elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", elapsed.Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
