package winauth

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/sebastiansiedlarz409/win-auth-beta/role"
	"github.com/sebastiansiedlarz409/win-auth-beta/session"
)

// Builder assembles a [Manager] from a configuration and its collaborators.
// A credential validator is required; everything else has a default or is
// optional. A Builder is single-use.
type Builder struct {
	config Config
	store  session.Store
	redis  redis.UniversalClient

	validator CredentialValidator
	roles     role.Provider
	carrier   TokenCarrier

	built bool
}

// New returns a Builder preloaded with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
	}
}

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithCredentialValidator registers the required credential validator.
func (b *Builder) WithCredentialValidator(v CredentialValidator) *Builder {
	b.validator = v
	return b
}

// WithRoleProvider registers an optional role provider. Without one, every
// authenticated caller is fully privileged.
func (b *Builder) WithRoleProvider(p role.Provider) *Builder {
	b.roles = p
	return b
}

// WithStore registers a custom session store. Takes precedence over
// WithRedis.
func (b *Builder) WithStore(s session.Store) *Builder {
	b.store = s
	return b
}

// WithRedis backs the manager with a Redis session store using the
// configured key prefix.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithCarrier replaces the default cookie carrier.
func (b *Builder) WithCarrier(c TokenCarrier) *Builder {
	b.carrier = c
	return b
}

// WithMetricsEnabled toggles the decision and lifecycle counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration and returns the manager. Any problem
// here is fatal for startup and wraps [ErrInvalidConfig].
func (b *Builder) Build() (*Manager, error) {
	if b.built {
		return nil, fmt.Errorf("%w: builder already used", ErrInvalidConfig)
	}
	b.built = true

	cfg := cloneConfig(b.config)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if b.validator == nil {
		return nil, fmt.Errorf("%w: credential validator not registered", ErrInvalidConfig)
	}

	store := b.store
	if store == nil {
		if b.redis != nil {
			store = session.NewRedisStore(b.redis, cfg.Session.RedisPrefix)
		} else {
			store = session.NewMemoryStore()
		}
	}

	carrier := b.carrier
	if carrier == nil {
		carrier = NewCookieCarrier(cfg.Cookie)
	}

	var metrics *Metrics
	if cfg.Metrics.Enabled {
		metrics = newMetrics()
	}

	return &Manager{
		config:    cfg,
		store:     store,
		validator: b.validator,
		roles:     b.roles,
		carrier:   carrier,
		metrics:   metrics,
	}, nil
}
