package pentaauth

import (
	"context"
	"errors"

	"github.com/infinitysurge/pentaauth/session"
)

const (
	auditEventLoginSuccess         = "login.success"
	auditEventLoginFailure         = "login.failure"
	auditEventLogout               = "logout"
	auditEventSessionRestored      = "session.restored"
	auditEventSessionRecordCorrupt = "session.record_corrupt"
	auditEventSessionTransition    = "session.transition"
)

// AuditErrorCode is the stable error classification carried in AuditEvent.Error.
type AuditErrorCode string

const (
	auditErrInvalidCredentials AuditErrorCode = "invalid_credentials"
	auditErrLoginInProgress    AuditErrorCode = "login_in_progress"
	auditErrRateLimited        AuditErrorCode = "rate_limited"
	auditErrLoginCanceled      AuditErrorCode = "login_canceled"
	auditErrUnavailable        AuditErrorCode = "backend_unavailable"
	auditErrRecordCorrupt      AuditErrorCode = "record_corrupt"
	auditErrInternal           AuditErrorCode = "internal_error"
)

func (e *Engine) emitAudit(ctx context.Context, eventType string, success bool, email, role string, err error) {
	if e == nil || e.audit == nil {
		return
	}

	event := AuditEvent{
		EventType: eventType,
		Email:     email,
		Role:      role,
		Success:   success,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return auditErrInvalidCredentials
	case errors.Is(err, ErrLoginInProgress):
		return auditErrLoginInProgress
	case errors.Is(err, ErrLoginRateLimited):
		return auditErrRateLimited
	case errors.Is(err, ErrLoginCanceled):
		return auditErrLoginCanceled
	case errors.Is(err, ErrCredentialUnavailable):
		return auditErrUnavailable
	case errors.Is(err, session.ErrRecordCorrupt):
		return auditErrRecordCorrupt
	default:
		return auditErrInternal
	}
}

// auditTransitions records every status change of the store. Observers run
// in transition order, so prev needs no lock.
func (e *Engine) auditTransitions() (cancel func()) {
	var (
		prev    session.Status
		started bool
	)
	return e.store.Subscribe(func(st session.AuthState) {
		next := st.Status()
		if !started {
			prev, started = next, true
			return
		}
		if next == prev {
			return
		}

		event := AuditEvent{
			EventType: auditEventSessionTransition,
			From:      prev.String(),
			To:        next.String(),
			Success:   true,
		}
		if st.Principal != nil {
			event.Email = st.Principal.Email
			event.Role = st.Principal.Role.String()
		}
		prev = next
		e.audit.Emit(context.Background(), event)
	})
}
