package gate

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/adminkit/adminauth"
	"github.com/adminkit/adminauth/token"
)

// MarkerReader is the slice of the session registry the gate needs.
// *registry.Store satisfies it.
type MarkerReader interface {
	Get(ctx context.Context, userID string) (string, error)
}

// Gate verifies access and refresh tokens.
type Gate struct {
	access  *token.Codec
	refresh *token.Codec
	markers MarkerReader
}

// New wires a Gate. The codecs must be the same instances the Service signs
// with; ForService does that wiring in one step.
func New(access, refresh *token.Codec, markers MarkerReader) *Gate {
	return &Gate{access: access, refresh: refresh, markers: markers}
}

// ForService builds a Gate sharing the service's codecs and registry.
func ForService(s *adminauth.Service) *Gate {
	return New(s.AccessCodec(), s.RefreshCodec(), s.Registry())
}

// VerifyAccess validates an access token and returns its claims. Any
// verification failure collapses into [adminauth.ErrTokenInvalid].
func (g *Gate) VerifyAccess(_ context.Context, raw string) (*token.Claims, error) {
	claims, err := g.access.Verify(raw)
	if err != nil {
		return nil, adminauth.ErrTokenInvalid
	}
	return claims, nil
}

// VerifyRefresh validates a refresh token and enforces the consistency rule:
// the embedded session identifier must match the registry marker. An absent
// marker (signed out, expired, never signed in) and a mismatched one (rotated
// away) fail identically with [adminauth.ErrRefreshInvalid] — a revoked token
// is indistinguishable from a forged one.
func (g *Gate) VerifyRefresh(ctx context.Context, raw string) (*token.Claims, error) {
	claims, err := g.refresh.Verify(raw)
	if err != nil {
		return nil, adminauth.ErrRefreshInvalid
	}
	if claims.RefreshTokenID == "" {
		// An access token is verifiable here only if secrets were misconfigured,
		// but a refresh token without a session ID is never acceptable.
		return nil, adminauth.ErrRefreshInvalid
	}

	current, err := g.markers.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, adminauth.ErrRefreshInvalid
		}
		return nil, fmt.Errorf("%w: %v", adminauth.ErrRegistryUnavailable, err)
	}

	if subtle.ConstantTimeCompare([]byte(current), []byte(claims.RefreshTokenID)) != 1 {
		return nil, adminauth.ErrRefreshInvalid
	}

	return claims, nil
}

// UserFromClaims builds the core's user view of verified claims. The profile
// data is whatever the token carried; GetMe re-reads the store when fresh
// associations are required.
func UserFromClaims(claims *token.Claims) *adminauth.User {
	return &adminauth.User{
		ID:    claims.UserID,
		Email: claims.Email,
	}
}
