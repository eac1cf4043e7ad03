package adminauth

import (
	"bytes"
	"errors"
	"time"
)

// Config carries every tunable of the authentication core. It is constructed
// once at startup and injected through [Builder.WithConfig]; nothing in this
// package reads configuration from the environment or any other ambient
// source.
type Config struct {
	AccessToken  TokenConfig
	RefreshToken TokenConfig
	Registry     RegistryConfig
	Password     PasswordConfig
	Metrics      MetricsConfig
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig is the signing configuration for one token variant. The access
// and refresh variants are configured independently — distinct secrets,
// audiences, issuers, and lifetimes — so either can be rotated or retuned
// without touching the other.
type TokenConfig struct {
	Secret   []byte
	Audience string
	Issuer   string
	TTL      time.Duration
	Leeway   time.Duration
}

/*
====================================
REGISTRY CONFIG
====================================
*/

// RegistryConfig controls the session registry key layout.
type RegistryConfig struct {
	// KeyPrefix is prepended to the user ID to form the marker key.
	KeyPrefix string
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig controls bcrypt hashing. Cost 0 selects the library default.
type PasswordConfig struct {
	Cost int
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig toggles the in-process counters.
type MetricsConfig struct {
	Enabled bool
}

// DefaultConfig returns a Config with production-reasonable lifetimes.
// Secrets are intentionally absent; Validate rejects a Config without them.
func DefaultConfig() Config {
	return Config{
		AccessToken: TokenConfig{
			TTL:    15 * time.Minute,
			Leeway: 30 * time.Second,
		},
		RefreshToken: TokenConfig{
			TTL:    7 * 24 * time.Hour,
			Leeway: 30 * time.Second,
		},
		Registry: RegistryConfig{
			KeyPrefix: "refresh_token_",
		},
		Password: PasswordConfig{
			Cost: 0,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate checks invariants that would otherwise surface as runtime
// authentication failures.
func (c *Config) Validate() error {
	if len(c.AccessToken.Secret) == 0 {
		return errors.New("access token secret required")
	}
	if len(c.RefreshToken.Secret) == 0 {
		return errors.New("refresh token secret required")
	}
	// Shared secrets would let an access token pass refresh verification.
	if bytes.Equal(c.AccessToken.Secret, c.RefreshToken.Secret) {
		return errors.New("access and refresh secrets must differ")
	}
	if c.AccessToken.TTL <= 0 || c.RefreshToken.TTL <= 0 {
		return errors.New("invalid TTL configuration")
	}
	if c.AccessToken.Leeway < 0 || c.AccessToken.Leeway > 2*time.Minute {
		return errors.New("invalid access leeway configuration")
	}
	if c.RefreshToken.Leeway < 0 || c.RefreshToken.Leeway > 2*time.Minute {
		return errors.New("invalid refresh leeway configuration")
	}
	if c.Registry.KeyPrefix == "" {
		return errors.New("registry key prefix required")
	}
	return nil
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.AccessToken.Secret = cloneBytes(cfg.AccessToken.Secret)
	out.RefreshToken.Secret = cloneBytes(cfg.RefreshToken.Secret)
	return out
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
