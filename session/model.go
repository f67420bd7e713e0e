package session

import "github.com/infinitysurge/pentaauth/permission"

// Principal is an authenticated identity.
type Principal struct {
	Email string
	Name  string
	Role  permission.Role
}

// Status is the state-machine position derived from an [AuthState].
type Status uint8

const (
	StatusUnauthenticated Status = iota
	StatusAuthenticating
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusAuthenticating:
		return "authenticating"
	case StatusAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// AuthState is a snapshot of the session. IsAuthenticated is true exactly
// when Principal is non-nil; IsLoading is true only while a credential check
// is in flight.
type AuthState struct {
	Principal       *Principal
	IsAuthenticated bool
	IsLoading       bool
}

// Status reports the state-machine position. An in-flight login takes
// precedence over whatever principal is currently held.
func (s AuthState) Status() Status {
	switch {
	case s.IsLoading:
		return StatusAuthenticating
	case s.IsAuthenticated:
		return StatusAuthenticated
	}
	return StatusUnauthenticated
}

// Role returns the current principal's role, or "" when unauthenticated.
func (s AuthState) Role() permission.Role {
	if s.Principal == nil {
		return ""
	}
	return s.Principal.Role
}

func (s AuthState) clone() AuthState {
	out := s
	if s.Principal != nil {
		p := *s.Principal
		out.Principal = &p
	}
	return out
}
