package pentaauth

import (
	"errors"

	"github.com/infinitysurge/pentaauth/session"
)

var (
	// ErrInvalidCredentials is returned when the credential gateway rejects an email/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrLoginInProgress is returned when Login is called while another login is unresolved.
	ErrLoginInProgress = session.ErrLoginInProgress
	// ErrLoginCanceled is returned when Logout runs while the login is still in flight.
	ErrLoginCanceled = session.ErrLoginCanceled
	// ErrCredentialUnavailable is returned when the credential gateway could not answer.
	ErrCredentialUnavailable = errors.New("authentication backend unavailable")
	// ErrLoginRateLimited is returned when the login throttle refuses an attempt.
	ErrLoginRateLimited = errors.New("login rate limited")
	// ErrEngineNotReady is returned by methods called on a nil or unbuilt Engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)

// loginErrorMessage is the caller-facing text for a failed login.
func loginErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, ErrLoginInProgress):
		return "Login already in progress"
	case errors.Is(err, ErrLoginRateLimited):
		return "Too many login attempts"
	case errors.Is(err, ErrLoginCanceled):
		return "Login canceled"
	case errors.Is(err, ErrCredentialUnavailable):
		return "Authentication service unavailable"
	case errors.Is(err, ErrEngineNotReady):
		return "Not ready"
	}
	return "Unknown error"
}
