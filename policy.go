package winauth

import (
	"fmt"
	"sync"
)

// AccessPolicy is a route's declared access requirement. Auth=false marks a
// route reachable only by unauthenticated callers (a login surface);
// Auth=true with an empty Role admits any authenticated caller; Auth=true
// with a Role additionally requires the caller's role to match or outrank it.
//
// Routes with no declared policy are public and bypass the gateway entirely.
type AccessPolicy struct {
	Auth bool
	Role string
}

// AllowAnonymousOnly declares a login-only route: reachable while logged out,
// actively rejected once authenticated.
func AllowAnonymousOnly() AccessPolicy {
	return AccessPolicy{Auth: false}
}

// RequireAuth declares a route open to any authenticated caller.
func RequireAuth() AccessPolicy {
	return AccessPolicy{Auth: true}
}

// RequireRole declares a route requiring authentication plus a role that
// matches or outranks the given one.
func RequireRole(role string) AccessPolicy {
	return AccessPolicy{Auth: true, Role: role}
}

// PolicyMap is a static mapping from route identity to [AccessPolicy], built
// once at startup and frozen before serving. Route identities are opaque
// strings; the middleware's route resolver produces them from requests.
type PolicyMap struct {
	mu     sync.RWMutex
	routes map[string]AccessPolicy
	frozen bool
}

// NewPolicyMap returns an empty, unfrozen policy map.
func NewPolicyMap() *PolicyMap {
	return &PolicyMap{
		routes: make(map[string]AccessPolicy),
	}
}

// Route registers the policy for a route identity. Registering after Freeze
// or registering the same identity twice is a setup error.
func (m *PolicyMap) Route(id string, policy AccessPolicy) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.frozen {
		return fmt.Errorf("%w: policy map frozen", ErrInvalidConfig)
	}
	if id == "" {
		return fmt.Errorf("%w: route identity empty", ErrInvalidConfig)
	}
	if _, exists := m.routes[id]; exists {
		return fmt.Errorf("%w: route %q already has a policy", ErrInvalidConfig, id)
	}

	m.routes[id] = policy
	return nil
}

// MustRoute is Route for static wiring code; it panics on registration
// errors and returns the map for chaining.
func (m *PolicyMap) MustRoute(id string, policy AccessPolicy) *PolicyMap {
	if err := m.Route(id, policy); err != nil {
		panic(err)
	}
	return m
}

// Freeze closes the map for registration. The middleware freezes the map it
// is given on first use.
func (m *PolicyMap) Freeze() {
	m.mu.Lock()
	m.frozen = true
	m.mu.Unlock()
}

// Lookup returns the declared policy for a route identity, or false when the
// route carries none.
func (m *PolicyMap) Lookup(id string) (AccessPolicy, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	policy, ok := m.routes[id]
	return policy, ok
}
