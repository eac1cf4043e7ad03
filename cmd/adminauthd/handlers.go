package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/adminkit/adminauth"
	"github.com/adminkit/adminauth/gate"
	"github.com/adminkit/adminauth/i18n"
)

type router struct {
	service *adminauth.Service
	gate    *gate.Gate
	logger  zerolog.Logger
}

func newRouter(service *adminauth.Service, g *gate.Gate, logger zerolog.Logger) http.Handler {
	rt := &router{service: service, gate: g, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /admin/auth/sign-in", rt.signIn)
	mux.HandleFunc("POST /admin/auth/refresh", rt.refresh)
	mux.HandleFunc("POST /admin/auth/sign-out", rt.signOut)
	mux.HandleFunc("GET /admin/auth/me", rt.me)
	mux.HandleFunc("GET /healthz", rt.health)
	return mux
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (rt *router) signIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rt.writeError(w, r, adminauth.ErrInvalidCredentials)
		return
	}

	result, err := rt.service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// refresh expects the refresh token as a bearer credential. The rotated pair
// replaces the presented one; the old refresh token stops working.
func (rt *router) refresh(w http.ResponseWriter, r *http.Request) {
	claims, err := rt.gate.VerifyRefresh(r.Context(), bearerToken(r))
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	pair, err := rt.service.RefreshTokens(r.Context(), gate.UserFromClaims(claims))
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

// signOut authenticates with the access token, not the refresh token: the
// marker may already be gone, and deleting it again must still succeed.
func (rt *router) signOut(w http.ResponseWriter, r *http.Request) {
	claims, err := rt.gate.VerifyAccess(r.Context(), bearerToken(r))
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	message, err := rt.service.SignOut(r.Context(), gate.UserFromClaims(claims))
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": localizer(r).Message(message),
	})
}

func (rt *router) me(w http.ResponseWriter, r *http.Request) {
	claims, err := rt.gate.VerifyAccess(r.Context(), bearerToken(r))
	if err != nil {
		rt.writeError(w, r, err)
		return
	}

	profile, err := rt.service.GetMe(r.Context(), gate.UserFromClaims(claims))
	if err != nil {
		rt.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (rt *router) health(w http.ResponseWriter, r *http.Request) {
	if _, err := rt.service.Registry().Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *router) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		rt.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	writeJSON(w, status, map[string]string{
		"message": localizer(r).Localize(err),
	})
}

func statusFor(err error) int {
	switch adminauth.KindOf(err) {
	case adminauth.KindNotFound:
		return http.StatusNotFound
	case adminauth.KindUnauthorized:
		return http.StatusUnauthorized
	case adminauth.KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return token
	}
	return ""
}

// localizer picks a message bundle from the first Accept-Language tag.
func localizer(r *http.Request) *i18n.Localizer {
	lang := r.Header.Get("Accept-Language")
	if i := strings.IndexAny(lang, ",;-"); i >= 0 {
		lang = lang[:i]
	}
	return i18n.New(strings.ToLower(strings.TrimSpace(lang)))
}
