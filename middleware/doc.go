// Package middleware hosts the per-request access-control decision
// procedure. [Guard] wraps a handler chain: it resolves the request's route
// identity, looks up the declared access policy, consults the session
// manager, and either proceeds or emits one of the three deny outcomes via a
// pluggable [DeniedHandler]. Collaborator failures are not deny outcomes;
// they abort the request with a generic server error.
package middleware
