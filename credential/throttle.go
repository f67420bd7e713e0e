package credential

import (
	"context"

	"github.com/infinitysurge/pentaauth/session"
	"golang.org/x/time/rate"
)

// Throttled refuses calls beyond limiter's rate with [ErrRateLimited]
// without waiting and without reaching next.
func Throttled(next Gateway, limiter *rate.Limiter) Gateway {
	return GatewayFunc(func(ctx context.Context, email, password string) (session.Principal, error) {
		if !limiter.Allow() {
			return session.Principal{}, ErrRateLimited
		}
		return next.Authenticate(ctx, email, password)
	})
}
