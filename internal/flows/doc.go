// Package flows contains the orchestration behind each Engine session operation.
//
// Each flow function (RunLogin, RunLogout, RunRehydrate) accepts a typed
// dependency struct and touches nothing outside it. The Engine owns the
// store, gateway, persister, audit dispatcher and metrics; flows only
// sequence calls to them.
//
// This package must not import pentaauth.
package flows
