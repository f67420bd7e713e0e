// Package pentaauth is the PentaLedger session holder and role-based access
// evaluator. It tracks who is logged in and answers whether that principal
// may perform an action on a resource or open a page.
//
// An [Engine] is built with [New] and [Builder.Build]. Build rehydrates the
// last persisted principal, so a restarted process comes back Authenticated
// when a valid record exists. Engine methods are safe for concurrent use.
//
// # Architecture boundaries
//
// pentaauth is the public surface: [Engine], [Builder], [Config], [LoginResult],
// audit and metrics types. Tables and checks live in permission/, the state
// machine and persistence in session/, backends in storage/, and credential
// verification in credential/. Flow orchestration lives under internal/flows.
//
// # Error contract
//
// [Engine.Login] never panics and reports failure through [LoginResult]; only
// invalid credentials and backend failures are surfaced. Corrupt or
// unreachable persisted state is recovered locally and leaves the engine
// Unauthenticated. Permission and page queries deny by default.
package pentaauth
