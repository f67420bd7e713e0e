// Package middleware adapts a pentaauth.Engine to net/http.
//
// # Guards
//
//   - [Guard] requires a logged-in principal.
//   - [RequirePermission] additionally requires a (resource, action) grant.
//   - [RequirePage] additionally requires access to the request path.
//
// Each guard answers 401 when nobody is logged in and 403 when the principal
// lacks access, and attaches the principal to the request context for
// [PrincipalFromContext]. Decisions are delegated to the Engine.
package middleware
