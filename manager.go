package winauth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sebastiansiedlarz409/win-auth-beta/internal"
	"github.com/sebastiansiedlarz409/win-auth-beta/role"
	"github.com/sebastiansiedlarz409/win-auth-beta/session"
)

// Manager orchestrates session creation, renewal, termination, and
// role/permission queries on top of the session store and the optional role
// provider. One Manager instance serves all requests of a process; it holds
// no locks of its own, and in particular never holds one while calling the
// credential validator or the role provider.
type Manager struct {
	config    Config
	store     session.Store
	validator CredentialValidator
	roles     role.Provider
	carrier   TokenCarrier
	metrics   *Metrics
}

// Metrics returns the manager's counters, or nil when metrics are disabled.
// The returned value is nil-safe to use either way.
func (m *Manager) Metrics() *Metrics {
	if m == nil {
		return nil
	}
	return m.metrics
}

// CookieName returns the token name sessions are carried under.
func (m *Manager) CookieName() string {
	return m.config.Cookie.Name
}

// Login checks the credentials against the configured domain. A rejected
// login is (false, nil); an unreachable validator backend is an error
// wrapping [ErrExecution], never folded into false.
func (m *Manager) Login(ctx context.Context, username, password string) (bool, error) {
	ok, err := m.validator.Check(ctx, username, password, m.config.Domain)
	if err != nil {
		return false, fmt.Errorf("%w: credential check: %v", ErrExecution, err)
	}

	if ok {
		m.metrics.Inc(MetricLoginSuccess)
	} else {
		m.metrics.Inc(MetricLoginFailure)
	}
	return ok, nil
}

// CreateSession builds a session for userName with the configured lifetime,
// persists it, and sets the session cookie with the matching expiry. Returns
// the new session id.
func (m *Manager) CreateSession(ctx context.Context, w http.ResponseWriter, userName string) (string, error) {
	if userName == "" {
		return "", ErrInvalidUserName
	}

	id, err := m.newSessionID()
	if err != nil {
		return "", fmt.Errorf("%w: session id: %v", ErrExecution, err)
	}

	now := time.Now()
	expiresAt := now.Add(m.config.Session.Lifetime)
	sess := &session.Session{
		ID:        id,
		UserName:  userName,
		CreatedAt: now.Unix(),
		ExpiresAt: expiresAt.Unix(),
	}

	if err := m.store.Put(ctx, sess); err != nil {
		return "", fmt.Errorf("%w: store session: %v", ErrExecution, err)
	}

	m.carrier.SetToken(w, m.config.Cookie.Name, id, expiresAt)
	m.metrics.Inc(MetricSessionCreated)

	return id, nil
}

// DestroySession removes the session identified by the inbound cookie and
// clears the cookie. A missing cookie or an already absent session is a
// silent no-op; only store failures error.
func (m *Manager) DestroySession(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	id, ok := m.carrier.GetToken(r, m.config.Cookie.Name)
	if !ok {
		return nil
	}

	if err := m.store.Remove(ctx, id); err != nil {
		return fmt.Errorf("%w: remove session: %v", ErrExecution, err)
	}

	m.carrier.ClearToken(w, m.config.Cookie.Name)
	m.metrics.Inc(MetricSessionDestroyed)
	return nil
}

// IsSessionAlive reports whether the inbound request carries a live session.
// When it does and a role provider is configured, the role is refreshed onto
// the session for the remainder of the call. A session within the renewal
// threshold of its expiry is extended by the full lifetime, persisted, and
// its cookie reissued; concurrent renewals of the same session are
// last-write-wins and at worst cost redundant store writes.
//
// Role provider failures escalate as [ErrExecution] rather than folding into
// "not alive".
func (m *Manager) IsSessionAlive(ctx context.Context, w http.ResponseWriter, r *http.Request) (bool, error) {
	sess, err := m.resolveSession(ctx, r)
	if err != nil {
		return false, err
	}
	if sess == nil {
		return false, nil
	}

	now := time.Now()
	if sess.Expired(now) {
		return false, nil
	}

	if m.roles != nil {
		roleName, err := m.roles.RoleOf(ctx, sess)
		if err != nil {
			return false, fmt.Errorf("%w: role provider: %v", ErrExecution, err)
		}
		sess.Role = roleName
	}

	if time.Unix(sess.ExpiresAt, 0).Sub(now) < m.config.Session.RenewWithin {
		expiresAt := now.Add(m.config.Session.Lifetime)
		sess.ExpiresAt = expiresAt.Unix()
		if err := m.store.Update(ctx, sess); err != nil {
			return false, fmt.Errorf("%w: renew session: %v", ErrExecution, err)
		}
		m.carrier.SetToken(w, m.config.Cookie.Name, sess.ID, expiresAt)
		m.metrics.Inc(MetricSessionRenewed)
	}

	return true, nil
}

// UserRole returns the caller's current role, or "" when no role provider is
// configured or no live session exists.
func (m *Manager) UserRole(ctx context.Context, r *http.Request) (string, error) {
	if m.roles == nil {
		return "", nil
	}

	sess, err := m.resolveSession(ctx, r)
	if err != nil {
		return "", err
	}
	if sess == nil {
		return "", nil
	}

	roleName, err := m.roles.RoleOf(ctx, sess)
	if err != nil {
		return "", fmt.Errorf("%w: role provider: %v", ErrExecution, err)
	}
	return roleName, nil
}

// HasAccess reports whether the caller's session qualifies for requiredRole.
// Without a live session it is false. Without a role provider it is true:
// the absence of a role system means every authenticated caller is fully
// privileged. Otherwise the provider's order comparison decides.
func (m *Manager) HasAccess(ctx context.Context, r *http.Request, requiredRole string) (bool, error) {
	sess, err := m.resolveSession(ctx, r)
	if err != nil {
		return false, err
	}
	if sess == nil {
		return false, nil
	}

	if m.roles == nil {
		return true, nil
	}

	roleName, err := m.roles.RoleOf(ctx, sess)
	if err != nil {
		return false, fmt.Errorf("%w: role provider: %v", ErrExecution, err)
	}
	sess.Role = roleName

	ok, err := m.roles.HasAccess(ctx, sess, requiredRole)
	if err != nil {
		return false, fmt.Errorf("%w: role provider: %v", ErrExecution, err)
	}
	return ok, nil
}

// resolveSession maps the inbound cookie to a live session. Absent cookie or
// absent/expired session is (nil, nil); only store I/O failures error.
func (m *Manager) resolveSession(ctx context.Context, r *http.Request) (*session.Session, error) {
	id, ok := m.carrier.GetToken(r, m.config.Cookie.Name)
	if !ok {
		return nil, nil
	}

	sess, err := m.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: load session: %v", ErrExecution, err)
	}
	return sess, nil
}

func (m *Manager) newSessionID() (string, error) {
	switch m.config.Session.TokenFormat {
	case TokenUUID:
		return uuid.NewString(), nil
	default:
		sid, err := internal.NewSessionID()
		if err != nil {
			return "", err
		}
		return sid.String(), nil
	}
}
