package adminauth

import (
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/adminkit/adminauth/password"
	"github.com/adminkit/adminauth/registry"
	"github.com/adminkit/adminauth/token"
)

// Builder assembles a [Service]. All dependencies are injected here, once,
// at startup; a built Service is immutable.
type Builder struct {
	config Config
	redis  redis.UniversalClient
	users  UserStore
	logger zerolog.Logger

	built bool
}

// New returns a Builder preloaded with [DefaultConfig]. Secrets, the Redis
// client, and the user store still have to be provided before Build.
func New() *Builder {
	return &Builder{
		config: DefaultConfig(),
		logger: zerolog.Nop(),
	}
}

// WithConfig replaces the entire configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis sets the Redis client backing the session registry.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithUserStore sets the credential store.
func (b *Builder) WithUserStore(users UserStore) *Builder {
	b.users = users
	return b
}

// WithLogger sets the structured logger. Without it the Service is silent.
func (b *Builder) WithLogger(logger zerolog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithMetricsEnabled toggles the in-process counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration and wires the Service. A Builder can be
// used once.
func (b *Builder) Build() (*Service, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if b.redis == nil {
		return nil, errors.New("redis client required")
	}
	if b.users == nil {
		return nil, errors.New("user store required")
	}

	accessCodec, err := token.NewCodec(token.Config{
		Secret:   cfg.AccessToken.Secret,
		Audience: cfg.AccessToken.Audience,
		Issuer:   cfg.AccessToken.Issuer,
		TTL:      cfg.AccessToken.TTL,
		Leeway:   cfg.AccessToken.Leeway,
	})
	if err != nil {
		return nil, err
	}

	refreshCodec, err := token.NewCodec(token.Config{
		Secret:   cfg.RefreshToken.Secret,
		Audience: cfg.RefreshToken.Audience,
		Issuer:   cfg.RefreshToken.Issuer,
		TTL:      cfg.RefreshToken.TTL,
		Leeway:   cfg.RefreshToken.Leeway,
	})
	if err != nil {
		return nil, err
	}

	hasher, err := password.NewHasher(password.Config{Cost: cfg.Password.Cost})
	if err != nil {
		return nil, err
	}

	service := &Service{
		config:       cfg,
		users:        b.users,
		registry:     registry.NewStore(b.redis, cfg.Registry.KeyPrefix),
		accessCodec:  accessCodec,
		refreshCodec: refreshCodec,
		passwordHash: hasher,
		metrics:      NewMetrics(cfg.Metrics),
		logger:       b.logger,
	}

	b.built = true

	return service, nil
}
