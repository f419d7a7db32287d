package role

import (
	"context"

	"github.com/sebastiansiedlarz409/win-auth-beta/session"
)

// Provider is the single authority over roles. RoleOf resolves the session's
// role (cached on the session for the request's duration by the manager);
// HasAccess decides whether that role is high enough for the required one.
//
// The comparison must be a valid order comparison: roles form a total order
// from highest to lowest privilege, and access is granted iff the caller's
// role is the same as or outranks the required role. Unknown role tokens on
// either side deny access rather than error.
//
// Calls may block on external I/O; the manager holds no locks while calling
// and wraps any returned error as an execution failure.
type Provider interface {
	RoleOf(ctx context.Context, sess *session.Session) (string, error)
	HasAccess(ctx context.Context, sess *session.Session, required string) (bool, error)
}
