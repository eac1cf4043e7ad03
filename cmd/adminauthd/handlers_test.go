package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/adminkit/adminauth"
	"github.com/adminkit/adminauth/gate"
	"github.com/adminkit/adminauth/password"
	"github.com/adminkit/adminauth/userstore"
)

const (
	handlerTestEmail    = "admin@example.com"
	handlerTestPassword = "correct-horse"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	hasher, err := password.NewHasher(password.Config{Cost: 4})
	if err != nil {
		t.Fatalf("NewHasher: %v", err)
	}
	hash, err := hasher.Hash(handlerTestPassword)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	users := userstore.NewMemory()
	users.Add(adminauth.User{ID: "u1", Email: handlerTestEmail, PasswordHash: hash})

	cfg := adminauth.DefaultConfig()
	cfg.AccessToken.Secret = []byte("handler-access-secret")
	cfg.RefreshToken.Secret = []byte("handler-refresh-secret")
	cfg.Password.Cost = 4

	service, err := adminauth.New().
		WithConfig(cfg).
		WithRedis(client).
		WithUserStore(users).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	return newRouter(service, gate.ForService(service), zerolog.Nop())
}

func doJSON(t *testing.T, h http.Handler, method, path, bearer, body string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("%s %s: bad response body %q: %v", method, path, rec.Body.String(), err)
	}
	return rec, out
}

func signInTokens(t *testing.T, h http.Handler) adminauth.TokenPair {
	t.Helper()
	rec, body := doJSON(t, h, http.MethodPost, "/admin/auth/sign-in", "",
		`{"email":"`+handlerTestEmail+`","password":"`+handlerTestPassword+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("sign-in status = %d, body %s", rec.Code, rec.Body.String())
	}
	var pair adminauth.TokenPair
	if err := json.Unmarshal(body["tokens"], &pair); err != nil {
		t.Fatalf("tokens payload: %v", err)
	}
	return pair
}

func TestSignOutEndpointUsesAccessTokenAndIsIdempotent(t *testing.T) {
	h := newTestHandler(t)
	pair := signInTokens(t, h)

	// Repeated sign-out with the same access token keeps succeeding: the
	// access token stays verifiable and the marker delete is a no-op once
	// the session is gone.
	for i := 0; i < 3; i++ {
		rec, body := doJSON(t, h, http.MethodPost, "/admin/auth/sign-out", pair.AccessToken, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("sign-out #%d status = %d, body %s", i+1, rec.Code, rec.Body.String())
		}
		var msg string
		if err := json.Unmarshal(body["message"], &msg); err != nil || msg == "" {
			t.Fatalf("sign-out #%d message payload %q: %v", i+1, rec.Body.String(), err)
		}
	}

	// The refresh token was orphaned by the first sign-out.
	rec, _ := doJSON(t, h, http.MethodPost, "/admin/auth/refresh", pair.RefreshToken, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("refresh after sign-out status = %d, want 401", rec.Code)
	}
}

func TestSignOutEndpointRejectsRefreshToken(t *testing.T) {
	h := newTestHandler(t)
	pair := signInTokens(t, h)

	rec, _ := doJSON(t, h, http.MethodPost, "/admin/auth/sign-out", pair.RefreshToken, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("sign-out with refresh token status = %d, want 401", rec.Code)
	}
}

func TestRefreshEndpointRotates(t *testing.T) {
	h := newTestHandler(t)
	pair := signInTokens(t, h)

	rec, _ := doJSON(t, h, http.MethodPost, "/admin/auth/refresh", pair.RefreshToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh status = %d, body %s", rec.Code, rec.Body.String())
	}

	// The presented token was superseded by the rotation.
	rec, _ = doJSON(t, h, http.MethodPost, "/admin/auth/refresh", pair.RefreshToken, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("reused refresh status = %d, want 401", rec.Code)
	}
}

func TestMeEndpoint(t *testing.T) {
	h := newTestHandler(t)
	pair := signInTokens(t, h)

	rec, body := doJSON(t, h, http.MethodGet, "/admin/auth/me", pair.AccessToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("me status = %d, body %s", rec.Code, rec.Body.String())
	}
	var email string
	if err := json.Unmarshal(body["email"], &email); err != nil || email != handlerTestEmail {
		t.Fatalf("me email = %q (%v), body %s", email, err, rec.Body.String())
	}

	rec, _ = doJSON(t, h, http.MethodGet, "/admin/auth/me", "garbage", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("me with bad token status = %d, want 401", rec.Code)
	}
}

func TestSignInEndpointStatusMapping(t *testing.T) {
	h := newTestHandler(t)

	rec, _ := doJSON(t, h, http.MethodPost, "/admin/auth/sign-in", "",
		`{"email":"nobody@example.com","password":"whatever-pass"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown email status = %d, want 404", rec.Code)
	}

	rec, _ = doJSON(t, h, http.MethodPost, "/admin/auth/sign-in", "",
		`{"email":"`+handlerTestEmail+`","password":"wrong-horse"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password status = %d, want 401", rec.Code)
	}
}
