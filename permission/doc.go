// Package permission holds the PentaLedger role model, the static policy and
// navigation tables, and the pure deny-by-default checks evaluated against them.
//
// # Evaluation
//
// A [Policy] compiles each role's (resource, actions) list into a fixed-size
// bitmask. A [Registry] assigns one bit per distinct "resource:action" pair at
// construction time; [Policy.HasPermission] is a map lookup plus a bit test.
// A [Navigation] is an ordered page list with the roles allowed to view each page.
//
// # Deny by default
//
// Unknown roles, resources, actions, and paths resolve to false. No check in
// this package returns an error or panics on caller input.
//
// # What this package must NOT do
//
//   - Access storage, the network, or session state.
//   - Import pentaauth, session, or credential.
//   - Mutate a table after construction.
package permission
