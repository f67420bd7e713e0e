package pentaauth

import (
	"context"
	"sync"
	"time"

	"github.com/infinitysurge/pentaauth/credential"
	"github.com/infinitysurge/pentaauth/internal/flows"
	"github.com/infinitysurge/pentaauth/permission"
	"github.com/infinitysurge/pentaauth/session"
	"go.uber.org/zap"
)

// Engine holds one client session and answers permission queries for it.
// Build one with [New]; the zero value is not usable.
type Engine struct {
	config     Config
	store      *session.Store
	gateway    credential.Gateway
	persister  *session.Persister
	policy     *permission.Policy
	navigation *permission.Navigation
	audit      *auditDispatcher
	untrack    func()
	metrics    *Metrics
	logger     *zap.Logger

	// persistMu keeps the persisted record in step with the store across
	// concurrent Login and Logout.
	persistMu sync.Mutex
}

// Close flushes pending audit events. The session itself is left as is.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.untrack != nil {
		e.untrack()
	}
	if e.audit != nil {
		e.audit.Close()
	}
	if e.logger != nil {
		_ = e.logger.Sync()
	}
}

// AuditDropped returns the number of audit events lost to a full buffer.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns the current counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// Login checks email and password against the credential gateway.
//
// The store passes through Authenticating while the check runs. On success
// the principal is persisted and the store becomes Authenticated; on failure
// the previous state is kept. A Login issued while another is in flight
// fails at once with [ErrLoginInProgress]; a Logout issued while it is in
// flight cancels it with [ErrLoginCanceled].
func (e *Engine) Login(ctx context.Context, email, password string) LoginResult {
	if e == nil || e.store == nil {
		return loginFailure(ErrEngineNotReady)
	}

	p, err := flows.RunLogin(ctx, email, password, e.loginDeps())
	if err != nil {
		return loginFailure(err)
	}
	return LoginResult{Success: true, Principal: &p}
}

// Logout drops the principal and its persisted record. It is safe to call
// when nobody is logged in.
func (e *Engine) Logout(ctx context.Context) {
	if e == nil || e.store == nil {
		return
	}
	flows.RunLogout(ctx, e.logoutDeps())
}

// Rehydrate restores the persisted principal when the store is idle and
// unauthenticated. It reports whether a principal was restored. Corrupt
// records are discarded.
func (e *Engine) Rehydrate(ctx context.Context) bool {
	if e == nil || e.store == nil {
		return false
	}
	return flows.RunRehydrate(ctx, e.rehydrateDeps())
}

// State returns a copy of the current session state.
func (e *Engine) State() session.AuthState {
	if e == nil || e.store == nil {
		return session.AuthState{}
	}
	return e.store.Snapshot()
}

// Subscribe delivers the current state to fn and then every transition in
// order. See [session.Store.Subscribe].
func (e *Engine) Subscribe(fn session.Observer) (cancel func()) {
	if e == nil || e.store == nil {
		return func() {}
	}
	return e.store.Subscribe(fn)
}

// Can reports whether the current principal may perform action on resource.
// It is false when nobody is logged in.
func (e *Engine) Can(resource, action string) bool {
	if e == nil || e.store == nil {
		return false
	}
	return e.roleCan(e.store.Snapshot().Role(), resource, action)
}

// PrincipalCan is [Engine.Can] evaluated for p instead of the current
// principal, for callers that already hold a snapshot.
func (e *Engine) PrincipalCan(p session.Principal, resource, action string) bool {
	if e == nil {
		return false
	}
	return e.roleCan(p.Role, resource, action)
}

func (e *Engine) roleCan(role permission.Role, resource, action string) bool {
	ok := e.policy.HasPermission(role, resource, action)
	if ok {
		e.metricInc(MetricPermissionGranted)
	} else {
		e.metricInc(MetricPermissionDenied)
	}
	return ok
}

// CanAccessPage reports whether the current principal may view path.
func (e *Engine) CanAccessPage(path string) bool {
	if e == nil || e.store == nil {
		return false
	}
	return e.roleCanAccessPage(e.store.Snapshot().Role(), path)
}

// PrincipalCanAccessPage is [Engine.CanAccessPage] evaluated for p.
func (e *Engine) PrincipalCanAccessPage(p session.Principal, path string) bool {
	if e == nil {
		return false
	}
	return e.roleCanAccessPage(p.Role, path)
}

func (e *Engine) roleCanAccessPage(role permission.Role, path string) bool {
	ok := e.navigation.CanAccessPage(role, path)
	if !ok {
		e.metricInc(MetricPageDenied)
	}
	return ok
}

// AccessiblePages lists the pages the current principal may view, in
// navigation order.
func (e *Engine) AccessiblePages() []permission.Page {
	if e == nil || e.store == nil {
		return nil
	}
	return e.navigation.AccessiblePages(e.store.Snapshot().Role())
}

// Policy returns the permission table the engine evaluates against.
func (e *Engine) Policy() *permission.Policy {
	if e == nil {
		return nil
	}
	return e.policy
}

// Navigation returns the page table the engine evaluates against.
func (e *Engine) Navigation() *permission.Navigation {
	if e == nil {
		return nil
	}
	return e.navigation
}

func (e *Engine) loginDeps() flows.LoginDeps {
	return flows.LoginDeps{
		Timeout:       e.config.Login.Timeout,
		Now:           time.Now,
		BeginLogin:    e.store.BeginLogin,
		CompleteLogin: e.store.CompleteLogin,
		FailLogin:     e.store.FailLogin,
		Authenticate:  e.gateway.Authenticate,
		SavePrincipal: e.persister.Save,
		ClearStorage:  e.persister.Clear,
		Persist:       &e.persistMu,
		MetricInc:     func(id int) { e.metricInc(MetricID(id)) },
		MetricObserve: func(id int, d time.Duration) { e.metrics.Observe(MetricID(id), d) },
		EmitAudit:     e.emitAudit,
		Logger:        e.logger,
		Metrics: flows.LoginMetrics{
			Success:            int(MetricLoginSuccess),
			Failure:            int(MetricLoginFailure),
			InFlightRejected:   int(MetricLoginInFlightRejected),
			BackendUnavailable: int(MetricLoginBackendUnavailable),
			RateLimited:        int(MetricLoginRateLimited),
			Canceled:           int(MetricLoginCanceled),
			Latency:            int(MetricLoginLatency),
		},
		Events: flows.LoginEvents{
			Success: auditEventLoginSuccess,
			Failure: auditEventLoginFailure,
		},
		Errors: flows.LoginErrors{
			EngineNotReady:        ErrEngineNotReady,
			InvalidCredentials:    ErrInvalidCredentials,
			LoginInProgress:       ErrLoginInProgress,
			CredentialUnavailable: ErrCredentialUnavailable,
			LoginRateLimited:      ErrLoginRateLimited,
			LoginCanceled:         ErrLoginCanceled,
		},
	}
}

func (e *Engine) logoutDeps() flows.LogoutDeps {
	return flows.LogoutDeps{
		Snapshot:     e.store.Snapshot,
		Clear:        e.store.Clear,
		ClearStorage: e.persister.Clear,
		Persist:      &e.persistMu,
		MetricInc:    func(id int) { e.metricInc(MetricID(id)) },
		EmitAudit:    e.emitAudit,
		Metrics:      flows.LogoutMetrics{Logout: int(MetricLogout)},
		Event:        auditEventLogout,
	}
}

func (e *Engine) rehydrateDeps() flows.RehydrateDeps {
	return flows.RehydrateDeps{
		Load:      e.persister.Load,
		Restore:   e.store.Restore,
		MetricInc: func(id int) { e.metricInc(MetricID(id)) },
		EmitAudit: e.emitAudit,
		Logger:    e.logger,
		Metrics: flows.RehydrateMetrics{
			Restored:      int(MetricSessionRestored),
			RecordCorrupt: int(MetricSessionRecordCorrupt),
		},
		Events: flows.RehydrateEvents{
			Restored:      auditEventSessionRestored,
			RecordCorrupt: auditEventSessionRecordCorrupt,
		},
	}
}
