package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalid is returned for any token that fails verification: bad
// signature, expired, wrong issuer or audience, or malformed claims.
var ErrInvalid = errors.New("invalid token")

// Config is the signing configuration for one token variant.
type Config struct {
	Secret   []byte
	Audience string
	Issuer   string
	TTL      time.Duration
	Leeway   time.Duration
}

// Claims is the payload carried by both token variants. RefreshTokenID is
// set only on refresh tokens; it is the session identifier checked against
// the registry marker.
type Claims struct {
	UserID         string `json:"uid"`
	Email          string `json:"email"`
	RefreshTokenID string `json:"rtid,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs and verifies tokens under a single fixed configuration.
type Codec struct {
	config Config
}

// NewCodec validates cfg and returns a Codec bound to it.
func NewCodec(cfg Config) (*Codec, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("signing secret required")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("invalid TTL configuration")
	}
	if cfg.Leeway < 0 || cfg.Leeway > 2*time.Minute {
		return nil, errors.New("invalid leeway configuration")
	}
	return &Codec{config: cfg}, nil
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration { return c.config.TTL }

// Sign fills the registered claims (expiry, issued-at, issuer, audience,
// subject) from the codec configuration and returns the signed compact token.
func (c *Codec) Sign(claims Claims) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UserID,
		ExpiresAt: jwt.NewNumericDate(now.Add(c.config.TTL)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    c.config.Issuer,
	}
	if c.config.Audience != "" {
		claims.Audience = jwt.ClaimStrings{c.config.Audience}
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.config.Secret)
}

// Verify parses and validates a compact token: HS256 signature under the
// codec secret, expiry, and — when configured — issuer and audience. All
// failures collapse into [ErrInvalid] so callers cannot distinguish a
// tampered token from an expired one.
func (c *Codec) Verify(tokenStr string) (*Claims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if c.config.Leeway > 0 {
		options = append(options, jwt.WithLeeway(c.config.Leeway))
	}
	if c.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(c.config.Issuer))
	}
	if c.config.Audience != "" {
		options = append(options, jwt.WithAudience(c.config.Audience))
	}

	parser := jwt.NewParser(options...)
	parsed, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing algorithm: %s", t.Method.Alg())
		}
		return c.config.Secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalid
	}
	if claims.UserID == "" {
		return nil, ErrInvalid
	}

	return claims, nil
}
