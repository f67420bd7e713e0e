package flows

import (
	"context"
	"errors"

	"github.com/infinitysurge/pentaauth/session"
	"go.uber.org/zap"
)

// RehydrateMetrics carries metric IDs needed by the rehydrate flow.
type RehydrateMetrics struct {
	Restored      int
	RecordCorrupt int
}

// RehydrateEvents carries audit event names used by the rehydrate flow.
type RehydrateEvents struct {
	Restored      string
	RecordCorrupt string
}

// RehydrateDeps captures rehydrate flow dependencies.
type RehydrateDeps struct {
	Load    func(context.Context) (*session.Principal, error)
	Restore func(session.Principal) bool

	MetricInc func(int)
	EmitAudit func(ctx context.Context, event string, success bool, email, role string, err error)
	Logger    *zap.Logger

	Metrics RehydrateMetrics
	Events  RehydrateEvents
}

// RunRehydrate restores the persisted principal into an idle store. It
// reports whether a principal was installed. Load failures are absorbed.
func RunRehydrate(ctx context.Context, deps RehydrateDeps) bool {
	if deps.MetricInc == nil {
		deps.MetricInc = func(int) {}
	}
	if deps.EmitAudit == nil {
		deps.EmitAudit = func(context.Context, string, bool, string, string, error) {}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Load == nil || deps.Restore == nil {
		return false
	}
	if ctx == nil {
		ctx = context.Background()
	}

	p, err := deps.Load(ctx)
	if err != nil {
		if errors.Is(err, session.ErrRecordCorrupt) {
			deps.MetricInc(deps.Metrics.RecordCorrupt)
			deps.EmitAudit(ctx, deps.Events.RecordCorrupt, false, "", "", err)
		}
		return false
	}
	if p == nil {
		return false
	}
	if !deps.Restore(*p) {
		deps.Logger.Debug("rehydrate skipped: store not idle", zap.String("email", p.Email))
		return false
	}

	deps.MetricInc(deps.Metrics.Restored)
	deps.EmitAudit(ctx, deps.Events.Restored, true, p.Email, p.Role.String(), nil)
	return true
}
