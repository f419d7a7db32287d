// Package winauth is a session-based authentication and role-authorization
// gateway for Go HTTP applications.
//
// It manages opaque cookie-carried sessions on top of a pluggable
// [session.Store] (an in-memory reference store and a Redis-backed store are
// supplied), delegates credential checks to a [CredentialValidator], and
// decides per request whether to let it proceed, send the caller to a login
// surface, or reject it, combining session liveness, the route's declared
// [AccessPolicy], and an optional role hierarchy.
//
// Construction goes through the [Builder]:
//
//	mgr, err := winauth.New().
//		WithConfig(cfg).
//		WithCredentialValidator(validator).
//		WithRoleProvider(roles).
//		Build()
//
// The per-request decision procedure lives in the middleware subpackage.
package winauth
