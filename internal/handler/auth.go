package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/portfolio-dev/portfolio-server/internal/auth"
	apperrors "github.com/portfolio-dev/portfolio-server/internal/errors"
	"github.com/portfolio-dev/portfolio-server/internal/middleware"
)

type AuthHandler struct {
	issuer       *auth.Issuer
	guard        *auth.Guard
	isProduction bool
}

func NewAuthHandler(issuer *auth.Issuer, guard *auth.Guard, isProduction bool) *AuthHandler {
	return &AuthHandler{issuer: issuer, guard: guard, isProduction: isProduction}
}

func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/check", h.Check)
	return r
}

// loginRequest accepts both field spellings the admin clients send.
type loginRequest struct {
	Identity string `json:"identity"`
	Secret   string `json:"secret"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (req loginRequest) credentials() (string, string) {
	identity, secret := req.Identity, req.Secret
	if identity == "" {
		identity = req.Username
	}
	if secret == "" {
		secret = req.Password
	}
	return identity, secret
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	identity, secret := req.credentials()
	token, err := h.issuer.Issue(identity, secret)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrCodeInvalidCredentials) {
			log.Warn().Str("remoteAddr", r.RemoteAddr).Msg("admin login rejected")
		}
		writeError(w, r, err)
		return
	}

	middleware.SetSessionCookie(w, token, h.isProduction)
	log.Info().Str("identity", identity).Msg("admin logged in")
	writeSuccess(w)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w, h.isProduction)
	writeSuccess(w)
}

func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	claims, err := h.guard.Verify(middleware.SessionToken(r))
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]bool{"authenticated": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"identity":      claims.Identity(),
	})
}
