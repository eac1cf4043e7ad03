package adminauth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/adminkit/adminauth/password"
	"github.com/adminkit/adminauth/registry"
	"github.com/adminkit/adminauth/token"
)

// Service is the authentication core. It orchestrates credential
// verification, token pair generation, refresh rotation, and sign-out, and is
// the only component that writes the session registry.
//
// Construct a Service through [Builder.Build]; the zero value is not usable.
type Service struct {
	config       Config
	users        UserStore
	registry     *registry.Store
	accessCodec  *token.Codec
	refreshCodec *token.Codec
	passwordHash *password.Hasher
	metrics      *Metrics
	logger       zerolog.Logger
}

// SignIn verifies the email/password pair against the credential store and,
// on success, returns the user's public profile with a fresh token pair.
// The new session marker overwrites any previous one, so an earlier sign-in's
// refresh token stops working the moment SignIn returns.
//
// Unknown email fails with [ErrUserNotFound]; a wrong password fails with
// [ErrInvalidPassword]. The distinction leaks account existence and is kept
// deliberately for parity with the admin panel contract.
func (s *Service) SignIn(ctx context.Context, email, pass string) (*SignInResult, error) {
	if s == nil || s.users == nil {
		return nil, ErrServiceNotReady
	}
	if email == "" || pass == "" {
		s.metrics.Inc(MetricSignInFailure)
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.metrics.Inc(MetricSignInFailure)
			s.logger.Info().Str("event", "signin_unknown_email").Msg("sign-in rejected")
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	ok, err := s.passwordHash.Verify(pass, user.PasswordHash)
	if err != nil || !ok {
		s.metrics.Inc(MetricSignInFailure)
		s.logger.Info().Str("event", "signin_bad_password").Str("user_id", user.ID).Msg("sign-in rejected")
		return nil, ErrInvalidPassword
	}

	tokens, err := s.generateTokens(ctx, user)
	if err != nil {
		s.metrics.Inc(MetricSignInFailure)
		return nil, err
	}

	s.metrics.Inc(MetricSignInSuccess)
	s.logger.Info().Str("event", "signin_success").Str("user_id", user.ID).Msg("signed in")

	return &SignInResult{User: NewProfile(user), Tokens: *tokens}, nil
}

// RefreshTokens mints a new token pair for a user whose refresh token has
// already been verified by the gate. The rotation is implicit: the new
// session marker written by generateTokens supersedes the one embedded in
// the presented token. No credential read and no password check happen here.
func (s *Service) RefreshTokens(ctx context.Context, user *User) (*TokenPair, error) {
	if s == nil || user == nil {
		return nil, ErrServiceNotReady
	}

	tokens, err := s.generateTokens(ctx, user)
	if err != nil {
		s.metrics.Inc(MetricRefreshFailure)
		return nil, err
	}

	s.metrics.Inc(MetricRefreshSuccess)
	s.logger.Info().Str("event", "refresh_success").Str("user_id", user.ID).Msg("tokens rotated")

	return tokens, nil
}

// SignOut deletes the user's session marker, orphaning any outstanding
// refresh token. It is idempotent: signing out without an active session is
// not an error. The returned string is the localization key of the
// confirmation message; rendering it is the presentation layer's job.
func (s *Service) SignOut(ctx context.Context, user *User) (string, error) {
	if s == nil || user == nil {
		return "", ErrServiceNotReady
	}

	if err := s.registry.Delete(ctx, user.ID); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRegistryUnavailable, err)
	}

	s.metrics.Inc(MetricSignOut)
	s.logger.Info().Str("event", "signout").Str("user_id", user.ID).Msg("signed out")

	return MessageSignedOut, nil
}

// GetMe re-reads the user by ID and returns a fresh profile with current
// role and permission associations, rather than trusting token claims.
// Fails with [ErrUserNotFound] if the account was deleted after issuance.
func (s *Service) GetMe(ctx context.Context, user *User) (*Profile, error) {
	if s == nil || user == nil {
		return nil, ErrServiceNotReady
	}

	current, err := s.users.FindByID(ctx, user.ID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return NewProfile(current), nil
}

// generateTokens is the core issuance path shared by sign-in and refresh:
// build the base claims, draw a fresh refresh session ID, sign both variants
// concurrently under their independent configurations, then write the new
// marker. The marker write is awaited — never fire-and-forget — so a refresh
// or sign-out issued immediately after is guaranteed to observe it.
func (s *Service) generateTokens(ctx context.Context, user *User) (*TokenPair, error) {
	base := token.Claims{
		UserID: user.ID,
		Email:  user.Email,
	}
	refreshTokenID := uuid.NewString()

	var access, refresh string
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		access, err = s.accessCodec.Sign(base)
		return err
	})
	g.Go(func() error {
		claims := base
		claims.RefreshTokenID = refreshTokenID
		var err error
		refresh, err = s.refreshCodec.Sign(claims)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("sign token pair: %w", err)
	}

	if err := s.registry.Save(ctx, user.ID, refreshTokenID, s.config.RefreshToken.TTL); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRegistryUnavailable, err)
	}
	s.metrics.Inc(MetricMarkerWritten)

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// MetricsSnapshot exposes the counters for exporters.
func (s *Service) MetricsSnapshot() MetricsSnapshot {
	if s == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return s.metrics.Snapshot()
}

// AccessCodec returns the access token codec, for wiring the gate.
func (s *Service) AccessCodec() *token.Codec { return s.accessCodec }

// RefreshCodec returns the refresh token codec, for wiring the gate.
func (s *Service) RefreshCodec() *token.Codec { return s.refreshCodec }

// Registry returns the session marker store, for wiring the gate.
func (s *Service) Registry() *registry.Store { return s.registry }
