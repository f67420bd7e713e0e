package middleware

import (
	"net/http"

	"github.com/infinitysurge/pentaauth"
)

// RequirePermission allows the request only when the current principal may
// perform action on resource: 401 without a principal, 403 when denied.
func RequirePermission(engine *pentaauth.Engine, resource, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r, p, ok := withPrincipal(engine, r)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if !engine.PrincipalCan(p, resource, action) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequirePage allows the request only when the current principal may view
// the request path. Paths missing from the navigation table are denied.
func RequirePage(engine *pentaauth.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r, p, ok := withPrincipal(engine, r)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if !engine.PrincipalCanAccessPage(p, r.URL.Path) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
