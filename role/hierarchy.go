package role

import (
	"context"
	"errors"
	"sync"

	"github.com/sebastiansiedlarz409/win-auth-beta/session"
)

// Reference role names, highest privilege first.
const (
	SuperAdmin = "SUPERADMIN"
	Admin      = "ADMIN"
	User       = "USER"
)

// Source resolves the current role of a principal, typically from a user
// directory. It backs [Hierarchy.RoleOf].
type Source func(ctx context.Context, userName string) (string, error)

// Hierarchy is the reference [Provider]: roles registered highest-privilege
// first form a total order, and a caller passes when its role's rank is at
// least the required role's rank. Roles unknown to the hierarchy deny.
//
// Register all roles during startup, then Freeze before serving.
type Hierarchy struct {
	source Source

	mu     sync.RWMutex
	ranks  map[string]int
	frozen bool
}

// NewHierarchy creates an empty hierarchy. source may be nil, in which case
// RoleOf returns whatever role is already cached on the session.
func NewHierarchy(source Source) *Hierarchy {
	return &Hierarchy{
		source: source,
		ranks:  make(map[string]int),
	}
}

// NewDefaultHierarchy creates a frozen hierarchy with the reference ordering
// SUPERADMIN > ADMIN > USER.
func NewDefaultHierarchy(source Source) *Hierarchy {
	h := NewHierarchy(source)
	if err := h.Register(SuperAdmin, Admin, User); err != nil {
		panic(err)
	}
	h.Freeze()
	return h
}

// Register appends roles in descending privilege order: the first role of
// the first call outranks everything registered after it.
func (h *Hierarchy) Register(roles ...string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.frozen {
		return errors.New("role hierarchy frozen")
	}
	for _, r := range roles {
		if r == "" {
			return errors.New("role name empty")
		}
		if _, exists := h.ranks[r]; exists {
			return errors.New("role already registered: " + r)
		}
		h.ranks[r] = len(h.ranks)
	}
	return nil
}

// Freeze closes the hierarchy for registration.
func (h *Hierarchy) Freeze() {
	h.mu.Lock()
	h.frozen = true
	h.mu.Unlock()
}

func (h *Hierarchy) RoleOf(ctx context.Context, sess *session.Session) (string, error) {
	if h.source == nil {
		return sess.Role, nil
	}
	return h.source(ctx, sess.UserName)
}

func (h *Hierarchy) HasAccess(ctx context.Context, sess *session.Session, required string) (bool, error) {
	caller := sess.Role
	if caller == "" {
		resolved, err := h.RoleOf(ctx, sess)
		if err != nil {
			return false, err
		}
		caller = resolved
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	callerRank, ok := h.ranks[caller]
	if !ok {
		return false, nil
	}
	requiredRank, ok := h.ranks[required]
	if !ok {
		return false, nil
	}

	// Lower rank index means higher privilege.
	return callerRank <= requiredRank, nil
}
