package flows

import (
	"context"
	"sync"

	"github.com/infinitysurge/pentaauth/session"
)

// LogoutMetrics carries metric IDs needed by the logout flow.
type LogoutMetrics struct {
	Logout int
}

// LogoutDeps captures logout flow dependencies.
type LogoutDeps struct {
	Snapshot     func() session.AuthState
	Clear        func() bool
	ClearStorage func(context.Context)
	Persist      sync.Locker

	MetricInc func(int)
	EmitAudit func(ctx context.Context, event string, success bool, email, role string, err error)

	Metrics LogoutMetrics
	Event   string
}

// RunLogout drops the current principal and its persisted record. Calling it
// with nobody logged in still clears storage but emits nothing. An in-flight
// login is canceled.
func RunLogout(ctx context.Context, deps LogoutDeps) {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, bool, string, string, error) {}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if deps.Persist == nil {
		deps.Persist = noLock{}
	}

	deps.Persist.Lock()
	defer deps.Persist.Unlock()

	var email, role string
	if deps.Snapshot != nil {
		if p := deps.Snapshot().Principal; p != nil {
			email, role = p.Email, p.Role.String()
		}
	}

	if deps.ClearStorage != nil {
		deps.ClearStorage(ctx)
	}
	if deps.Clear == nil || !deps.Clear() {
		return
	}

	deps.MetricInc(deps.Metrics.Logout)
	deps.EmitAudit(ctx, deps.Event, true, email, role, nil)
}
