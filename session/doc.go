// Package session owns the process-wide authentication state: the [Store]
// state machine with its subscribe/notify contract, and the [Persister] that
// carries the last-known [Principal] across restarts.
//
// # State machine
//
//	Unauthenticated --BeginLogin--> Authenticating --CompleteLogin--> Authenticated
//	Authenticating  --FailLogin--> previous state, IsLoading cleared
//	Authenticated   --Clear-------> Unauthenticated
//	Unauthenticated --Restore-----> Authenticated
//
// A Clear while Authenticating cancels the login: its CompleteLogin resolves
// to Unauthenticated and reports false.
//
// Only one login may be in flight; a second BeginLogin returns
// [ErrLoginInProgress]. Observers receive the current [AuthState] on
// subscription and then every transition in order.
//
// # Persistence
//
// The [Persister] stores a JSON record {"email","name","role"} in a
// storage.Storage backend. Unavailable storage is silent. A corrupt record is
// deleted on read and reported once as [ErrRecordCorrupt].
//
// # What this package must NOT do
//
//   - Verify credentials or evaluate permissions.
//   - Import pentaauth or credential.
package session
