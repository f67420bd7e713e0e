package pentaauth

import "github.com/infinitysurge/pentaauth/session"

// LoginResult is the outcome of [Engine.Login].
//
// Error is the caller-facing message ("Invalid credentials" for a rejected
// email/password pair) and is empty on success. Err carries the sentinel for
// errors.Is checks.
type LoginResult struct {
	Success   bool
	Error     string
	Err       error
	Principal *session.Principal
}

func loginFailure(err error) LoginResult {
	return LoginResult{
		Error: loginErrorMessage(err),
		Err:   err,
	}
}
