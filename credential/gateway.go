package credential

import (
	"context"
	"errors"
	"fmt"

	"github.com/infinitysurge/pentaauth/session"
)

var (
	// ErrRejected means the backend answered and the credentials are wrong.
	ErrRejected = errors.New("credentials rejected")
	// ErrUnavailable means the backend could not give an answer.
	ErrUnavailable = errors.New("credential backend unavailable")
	// ErrRateLimited means the call was refused locally before reaching the backend.
	ErrRateLimited = fmt.Errorf("%w: rate limited", ErrUnavailable)
)

// Gateway validates credentials. Implementations return at most one
// principal per call and may block for an unspecified time.
type Gateway interface {
	Authenticate(ctx context.Context, email, password string) (session.Principal, error)
}

// GatewayFunc adapts a function to [Gateway].
type GatewayFunc func(ctx context.Context, email, password string) (session.Principal, error)

func (f GatewayFunc) Authenticate(ctx context.Context, email, password string) (session.Principal, error) {
	return f(ctx, email, password)
}
