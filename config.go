package winauth

import (
	"fmt"
	"time"
)

// TokenFormat selects how session identifiers are rendered on the wire.
type TokenFormat int

const (
	// TokenRaw encodes the 128-bit session identifier as unpadded base64url.
	TokenRaw TokenFormat = iota
	// TokenUUID renders the session identifier as a canonical UUID string.
	TokenUUID
)

// Sessions shorter than this are refused at setup time.
const minSessionLifetime = 5 * time.Minute

// Config carries all tunables of the gateway. Zero values are filled in by
// [DefaultConfig]; a Config is validated once at [Builder.Build] and treated
// as immutable afterwards.
type Config struct {
	// Domain is the realm handed to the credential validator on login.
	Domain string

	Session SessionConfig
	Cookie  CookieConfig
	Metrics MetricsConfig
}

// SessionConfig controls session lifetime and renewal behavior.
type SessionConfig struct {
	// Lifetime is the absolute session lifetime granted at creation and on
	// each sliding renewal. Must be at least five minutes.
	Lifetime time.Duration

	// RenewWithin is the near-expiry threshold: a liveness check that finds
	// less than this much lifetime remaining extends the session by the full
	// Lifetime and reissues the cookie. Must be positive and shorter than
	// Lifetime.
	RenewWithin time.Duration

	// TokenFormat selects the session identifier encoding.
	TokenFormat TokenFormat

	// RedisPrefix namespaces session keys when the Redis store backs the
	// manager.
	RedisPrefix string
}

// CookieConfig controls the session cookie issued by the default carrier.
type CookieConfig struct {
	Name   string
	Path   string
	Secure bool
}

// MetricsConfig toggles the decision and lifecycle counters.
type MetricsConfig struct {
	Enabled bool
}

// DefaultConfig returns the reference configuration: 30 minute sessions
// renewed within two minutes of expiry, carried in a strict, HTTP-only
// "winauth_session_id" cookie.
func DefaultConfig() Config {
	return Config{
		Session: SessionConfig{
			Lifetime:    30 * time.Minute,
			RenewWithin: 2 * time.Minute,
			TokenFormat: TokenRaw,
			RedisPrefix: "wa",
		},
		Cookie: CookieConfig{
			Name:   "winauth_session_id",
			Path:   "/",
			Secure: true,
		},
	}
}

func cloneConfig(cfg Config) Config {
	// All fields are values; a shallow copy is a full copy.
	return cfg
}

func (c Config) validate() error {
	if c.Session.Lifetime < minSessionLifetime {
		return fmt.Errorf("%w: session lifetime must be at least %s", ErrInvalidConfig, minSessionLifetime)
	}
	if c.Session.RenewWithin <= 0 {
		return fmt.Errorf("%w: renewal threshold must be positive", ErrInvalidConfig)
	}
	if c.Session.RenewWithin >= c.Session.Lifetime {
		return fmt.Errorf("%w: renewal threshold must be shorter than the session lifetime", ErrInvalidConfig)
	}
	if c.Session.TokenFormat != TokenRaw && c.Session.TokenFormat != TokenUUID {
		return fmt.Errorf("%w: unknown token format %d", ErrInvalidConfig, c.Session.TokenFormat)
	}
	if c.Cookie.Name == "" {
		return fmt.Errorf("%w: cookie name empty", ErrInvalidConfig)
	}
	return nil
}
