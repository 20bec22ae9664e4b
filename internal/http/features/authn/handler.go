// Package authn exposes registration, login, identity and MFA endpoints.
package authn

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/taskhive/taskhive/internal/http/middleware"
	"github.com/taskhive/taskhive/internal/httputil"
	"github.com/taskhive/taskhive/pkg/app"
	"github.com/taskhive/taskhive/pkg/domain"
)

// Handler handles authentication endpoints.
type Handler struct {
	logger *slog.Logger
	auth   *app.AuthService
	ttl    time.Duration
}

// NewHandler creates an authentication handler.
func NewHandler(logger *slog.Logger, auth *app.AuthService, ttl time.Duration) *Handler {
	return &Handler{logger: logger, auth: auth, ttl: ttl}
}

// RegisterRequest is the payload for Register.
type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	TenantName   string `json:"tenant_name"`
	TenantDomain string `json:"tenant_domain"`
}

// LoginRequest is the payload for Login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	TOTPCode string `json:"totp_code,omitempty"`
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	TenantID  string    `json:"tenant_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Register handles user + tenant registration.
// POST /auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httputil.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, err := h.auth.Register(r.Context(), app.RegisterParams{
		Email:        req.Email,
		Password:     req.Password,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		TenantName:   req.TenantName,
		TenantDomain: req.TenantDomain,
	})
	if err != nil {
		h.writeAuthError(w, err, "registration failed")
		return
	}

	h.writeToken(w, http.StatusCreated, token)
}

// Login handles email/password login.
// POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		httputil.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password, req.TOTPCode)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			httputil.Error(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		if errors.Is(err, domain.ErrInvalidMFACode) {
			httputil.Error(w, http.StatusUnauthorized, "invalid MFA code")
			return
		}
		h.logger.Error("login failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "authentication failed")
		return
	}

	h.writeToken(w, http.StatusOK, token)
}

// Me returns the authenticated user.
// GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		httputil.Error(w, http.StatusUnauthorized, "missing authorization")
		return
	}

	user, err := h.auth.CurrentUser(r.Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidToken) || errors.Is(err, domain.ErrTokenExpired) {
			httputil.Error(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			httputil.Error(w, http.StatusUnauthorized, "user not found")
			return
		}
		h.logger.Error("current user lookup failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "failed to get user")
		return
	}

	httputil.JSON(w, http.StatusOK, UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		TenantID:  user.TenantID.String(),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	})
}

// MFACodeRequest carries a TOTP code.
type MFACodeRequest struct {
	Code string `json:"code"`
}

// SetupMFA starts TOTP enrollment for the authenticated user.
// POST /auth/mfa/setup
func (h *Handler) SetupMFA(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	secret, url, err := h.auth.SetupMFA(r.Context(), userID)
	if err != nil {
		h.writeMFAError(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]string{
		"secret": secret,
		"url":    url,
	})
}

// ActivateMFA confirms enrollment with a code from the authenticator.
// POST /auth/mfa/activate
func (h *Handler) ActivateMFA(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req MFACodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		httputil.Error(w, http.StatusBadRequest, "code is required")
		return
	}

	if err := h.auth.ActivateMFA(r.Context(), userID, req.Code); err != nil {
		h.writeMFAError(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]string{"status": "enabled"})
}

// DisableMFA turns MFA off for the authenticated user.
// POST /auth/mfa/disable
func (h *Handler) DisableMFA(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req MFACodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		httputil.Error(w, http.StatusBadRequest, "code is required")
		return
	}

	if err := h.auth.DisableMFA(r.Context(), userID, req.Code); err != nil {
		h.writeMFAError(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]string{"status": "disabled"})
}

func (h *Handler) writeToken(w http.ResponseWriter, status int, token string) {
	httputil.JSON(w, status, TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.ttl.Seconds()),
	})
}

func (h *Handler) writeAuthError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrEmailTaken):
		httputil.Error(w, http.StatusConflict, "email already registered")
	case errors.Is(err, domain.ErrDomainTaken):
		httputil.Error(w, http.StatusConflict, "tenant domain already exists")
	case errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrFirstNameRequired),
		errors.Is(err, domain.ErrTenantNameRequired),
		errors.Is(err, domain.ErrDomainRequired):
		httputil.Error(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("auth error", "error", err)
		httputil.Error(w, http.StatusInternalServerError, fallback)
	}
}

func (h *Handler) writeMFAError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMFAAlreadyEnabled),
		errors.Is(err, domain.ErrMFANotEnabled):
		httputil.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidMFACode):
		httputil.Error(w, http.StatusUnauthorized, "invalid MFA code")
	case errors.Is(err, domain.ErrNotFound):
		httputil.Error(w, http.StatusUnauthorized, "user not found")
	default:
		h.logger.Error("mfa error", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "MFA operation failed")
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}
