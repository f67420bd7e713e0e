package credential

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/infinitysurge/pentaauth/permission"
	"github.com/infinitysurge/pentaauth/session"
)

// Account is one entry of a [StaticGateway] table.
type Account struct {
	Email    string
	Password string
	Name     string
	Role     permission.Role
}

// DefaultAccounts returns the demonstration accounts.
func DefaultAccounts() []Account {
	return []Account{
		{Email: "admin@pentaledger.com", Password: "admin123", Name: "Admin User", Role: permission.RoleAdmin},
		{Email: "user@pentaledger.com", Password: "user123", Name: "Regular User", Role: permission.RoleUser},
	}
}

// StaticGateway checks credentials against a fixed in-memory table.
type StaticGateway struct {
	accounts []Account
	delay    time.Duration
}

// StaticOption configures a [StaticGateway].
type StaticOption func(*StaticGateway)

// WithDelay makes every Authenticate call wait d before answering, standing
// in for the latency of a remote service. The wait ends early if ctx is done.
func WithDelay(d time.Duration) StaticOption {
	return func(g *StaticGateway) {
		g.delay = d
	}
}

// NewStaticGateway validates accounts and returns a gateway over a copy of them.
func NewStaticGateway(accounts []Account, opts ...StaticOption) (*StaticGateway, error) {
	seen := make(map[string]struct{}, len(accounts))
	for _, a := range accounts {
		if a.Email == "" {
			return nil, errors.New("account with empty email")
		}
		if _, dup := seen[a.Email]; dup {
			return nil, fmt.Errorf("duplicate account %s", a.Email)
		}
		if !a.Role.Valid() {
			return nil, fmt.Errorf("account %s: %w", a.Email, permission.ErrUnknownRole)
		}
		seen[a.Email] = struct{}{}
	}

	g := &StaticGateway{accounts: append([]Account(nil), accounts...)}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func (g *StaticGateway) Authenticate(ctx context.Context, email, password string) (session.Principal, error) {
	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return session.Principal{}, fmt.Errorf("%w: %v", ErrUnavailable, ctx.Err())
		}
	}

	for _, a := range g.accounts {
		if a.Email != email {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(a.Password), []byte(password)) != 1 {
			return session.Principal{}, ErrRejected
		}
		return session.Principal{Email: a.Email, Name: a.Name, Role: a.Role}, nil
	}
	return session.Principal{}, ErrRejected
}
