package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// unmatchedRoute labels requests that no chi route matched.
const unmatchedRoute = "unmatched"

// routePattern returns the chi route pattern for r. It must be called
// after the router has handled the request.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return unmatchedRoute
}

// statusOf returns the response status, treating "never written" as 200.
func statusOf(status int) int {
	if status == 0 {
		return http.StatusOK
	}
	return status
}
