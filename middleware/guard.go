package middleware

import (
	"context"
	"net/http"

	"github.com/infinitysurge/pentaauth"
	"github.com/infinitysurge/pentaauth/session"
)

type principalContextKey struct{}

// PrincipalFromContext returns the principal Guard attached to ctx.
func PrincipalFromContext(ctx context.Context) (session.Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(session.Principal)
	return p, ok
}

// Guard rejects requests with 401 while nobody is logged in and otherwise
// attaches the current principal to the request context.
func Guard(engine *pentaauth.Engine) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r, _, ok := withPrincipal(engine, r)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// withPrincipal resolves the request's principal once. A principal attached by
// an outer guard is reused so every check in the chain sees the same one.
func withPrincipal(engine *pentaauth.Engine, r *http.Request) (*http.Request, session.Principal, bool) {
	if engine == nil {
		return r, session.Principal{}, false
	}
	if p, ok := PrincipalFromContext(r.Context()); ok {
		return r, p, true
	}
	st := engine.State()
	if !st.IsAuthenticated || st.Principal == nil {
		return r, session.Principal{}, false
	}
	p := *st.Principal
	ctx := context.WithValue(r.Context(), principalContextKey{}, p)
	return r.WithContext(ctx), p, true
}
