// Package credential verifies email/password pairs and returns the matching
// session.Principal.
//
// A [Gateway] distinguishes a rejected credential ([ErrRejected]) from a
// backend that could not answer ([ErrUnavailable]) so callers can tell a
// wrong password apart from an outage.
package credential
