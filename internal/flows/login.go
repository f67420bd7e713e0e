package flows

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/infinitysurge/pentaauth/credential"
	"github.com/infinitysurge/pentaauth/session"
	"go.uber.org/zap"
)

// LoginMetrics carries metric IDs needed by the login flow.
type LoginMetrics struct {
	Success            int
	Failure            int
	InFlightRejected   int
	BackendUnavailable int
	RateLimited        int
	Canceled           int
	Latency            int
}

// LoginEvents carries audit event names used by the login flow.
type LoginEvents struct {
	Success string
	Failure string
}

// LoginErrors carries host-level sentinel errors used by the login flow.
type LoginErrors struct {
	EngineNotReady        error
	InvalidCredentials    error
	LoginInProgress       error
	CredentialUnavailable error
	LoginRateLimited      error
	LoginCanceled         error
}

// LoginDeps captures login dependencies.
type LoginDeps struct {
	Timeout time.Duration
	Now     func() time.Time

	BeginLogin    func() error
	CompleteLogin func(session.Principal) bool
	FailLogin     func() bool

	Authenticate  func(ctx context.Context, email, password string) (session.Principal, error)
	SavePrincipal func(context.Context, session.Principal)
	ClearStorage  func(context.Context)
	// Persist is held while the attempt resolves and by logout while it
	// clears, so a logout either cancels the attempt or removes its record.
	Persist sync.Locker

	MetricInc     func(int)
	MetricObserve func(int, time.Duration)
	EmitAudit     func(ctx context.Context, event string, success bool, email, role string, err error)
	Logger        *zap.Logger

	Metrics LoginMetrics
	Events  LoginEvents
	Errors  LoginErrors
}

// RunLogin drives one login attempt through the session store.
//
// A second attempt while one is in flight fails immediately with
// Errors.LoginInProgress and leaves the state untouched. Gateway rejections
// map to Errors.InvalidCredentials; throttle refusals to
// Errors.LoginRateLimited; everything else, ctx errors included, to
// Errors.CredentialUnavailable. A logout that lands before the attempt
// resolves cancels it with Errors.LoginCanceled and removes the saved record.
func RunLogin(ctx context.Context, email, password string, deps LoginDeps) (session.Principal, error) {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.MetricObserve == nil {
		deps.MetricObserve = func(int, time.Duration) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, bool, string, string, error) {}
	}
	if deps.SavePrincipal == nil {
		deps.SavePrincipal = func(context.Context, session.Principal) {}
	}
	if deps.ClearStorage == nil {
		deps.ClearStorage = func(context.Context) {}
	}
	if deps.Persist == nil {
		deps.Persist = noLock{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.BeginLogin == nil ||
		deps.CompleteLogin == nil ||
		deps.FailLogin == nil ||
		deps.Authenticate == nil {
		return session.Principal{}, deps.Errors.EngineNotReady
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if err := deps.BeginLogin(); err != nil {
		deps.MetricInc(deps.Metrics.InFlightRejected)
		return session.Principal{}, deps.Errors.LoginInProgress
	}

	checkCtx := ctx
	if deps.Timeout > 0 {
		var cancel context.CancelFunc
		checkCtx, cancel = context.WithTimeout(ctx, deps.Timeout)
		defer cancel()
	}

	start := deps.Now()
	p, err := deps.Authenticate(checkCtx, email, password)
	deps.MetricObserve(deps.Metrics.Latency, deps.Now().Sub(start))

	if err == nil && !p.Role.Valid() {
		err = fmt.Errorf("%w: gateway returned role %q", credential.ErrUnavailable, p.Role)
	}
	if err != nil {
		deps.FailLogin()
		mapped := mapGatewayError(err, deps)
		deps.EmitAudit(ctx, deps.Events.Failure, false, email, "", mapped)
		deps.Logger.Info("login failed", zap.String("email", email), zap.Error(err))
		return session.Principal{}, mapped
	}

	deps.SavePrincipal(ctx, p)
	deps.Persist.Lock()
	if !deps.CompleteLogin(p) {
		deps.ClearStorage(ctx)
		deps.Persist.Unlock()
		deps.MetricInc(deps.Metrics.Canceled)
		deps.EmitAudit(ctx, deps.Events.Failure, false, p.Email, p.Role.String(), deps.Errors.LoginCanceled)
		deps.Logger.Info("login canceled by logout", zap.String("email", p.Email))
		return session.Principal{}, deps.Errors.LoginCanceled
	}
	deps.Persist.Unlock()

	deps.MetricInc(deps.Metrics.Success)
	deps.EmitAudit(ctx, deps.Events.Success, true, p.Email, p.Role.String(), nil)
	deps.Logger.Debug("login succeeded", zap.String("email", p.Email), zap.String("role", p.Role.String()))
	return p, nil
}

func mapGatewayError(err error, deps LoginDeps) error {
	switch {
	case errors.Is(err, credential.ErrRejected):
		deps.MetricInc(deps.Metrics.Failure)
		return deps.Errors.InvalidCredentials
	case errors.Is(err, credential.ErrRateLimited):
		deps.MetricInc(deps.Metrics.RateLimited)
		return deps.Errors.LoginRateLimited
	default:
		deps.MetricInc(deps.Metrics.BackendUnavailable)
		return fmt.Errorf("%w: %v", deps.Errors.CredentialUnavailable, err)
	}
}

type noLock struct{}

func (noLock) Lock()   {}
func (noLock) Unlock() {}
