package handlers

import (
	"net/http"
	"time"

	"github.com/culturalite/backend/internal/application/auth"
	"github.com/culturalite/backend/internal/infrastructure/security"
	"github.com/culturalite/backend/internal/transport/http/dto"
	"github.com/culturalite/backend/internal/transport/http/response"
)

type AuthHandler struct {
	svc           *auth.Service
	refreshTTL    time.Duration
	secureCookies bool
}

func NewAuthHandler(svc *auth.Service, refreshTTL time.Duration, secureCookies bool) *AuthHandler {
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &AuthHandler{svc: svc, refreshTTL: refreshTTL, secureCookies: secureCookies}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	u, p, err := h.svc.Register(r.Context(), auth.RegisterInput{
		Email:            req.Email,
		Password:         req.Password,
		PasswordConfirm:  req.PasswordConfirm,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		OrganizationName: req.OrganizationName,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.Created(w, dto.RegisterResponse{
		Message: "Registration successful.",
		User:    dto.NewUserView(u, p),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		response.WriteError(w, r, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	security.SetRefreshToken(w, res.Tokens.RefreshToken, h.refreshTTL, h.secureCookies)
	response.OK(w, dto.LoginResponse{
		Access: res.Tokens.AccessToken,
		User:   dto.NewUserView(res.User, res.Profile),
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	tokens, err := h.svc.Refresh(r.Context(), h.refreshTokenFrom(r))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	if tokens.Rotated {
		security.SetRefreshToken(w, tokens.RefreshToken, h.refreshTTL, h.secureCookies)
	}
	response.OK(w, dto.RefreshResponse{
		Access:  tokens.AccessToken,
		Message: "Token refreshed.",
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	err := h.svc.Revoke(r.Context(), h.refreshTokenFrom(r))

	// The cookie is cleared even when revocation fails, so a client holding
	// a broken token is not stuck with it.
	security.ClearRefreshToken(w, h.secureCookies)

	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.OK(w, dto.LogoutResponse{Message: "Logged out."})
}

// refreshTokenFrom reads the refresh token cookie first and falls back to
// the JSON body for cookie-less clients.
func (h *AuthHandler) refreshTokenFrom(r *http.Request) string {
	if tok, err := security.ReadRefreshToken(r); err == nil && tok != "" {
		return tok
	}

	var req dto.RefreshRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		return ""
	}
	return req.Refresh
}
