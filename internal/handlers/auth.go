package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/mernshopper/shopper-backend/internal/models"
	"github.com/mernshopper/shopper-backend/internal/services"
	"github.com/mernshopper/shopper-backend/pkg/utils"
)

// AuthHandler handles login, registration, token refresh and logout.
type AuthHandler struct {
	users  services.UserStore
	tokens *services.TokenService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(users services.UserStore, tokens *services.TokenService) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// Login Request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register Request
type RegisterRequest struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Roles    []string `json:"roles,omitempty"`
}

// Token Response
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// Login handles POST /auth. A successful login returns an access token in
// the body and sets the refresh token as the jwt cookie. Unknown email and
// wrong password produce identical responses so the two cases cannot be told
// apart.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}

	if req.Email == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}

	user, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Database error")
		return
	}
	if user == nil {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	match, err := utils.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil || !match {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	issueTokens(w, h.tokens, user)
}

// Register handles POST /register. Username uniqueness is case-insensitive.
// A new account gets the baseline role unless roles are supplied.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}

	taken, err := h.users.UsernameTaken(r.Context(), req.Username)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Database error")
		return
	}
	if taken {
		respondMessage(w, http.StatusConflict, "Duplicate username")
		return
	}

	taken, err = h.users.EmailTaken(r.Context(), req.Email)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Database error")
		return
	}
	if taken {
		respondMessage(w, http.StatusConflict, "Duplicate email")
		return
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	roles := req.Roles
	if len(roles) == 0 {
		roles = []string{models.DefaultRole}
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Roles:        roles,
	}

	if err := h.users.Create(r.Context(), user); err != nil {
		respondMessage(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	issueTokens(w, h.tokens, user)
}

// Refresh handles GET /auth/refresh. It exchanges a valid jwt cookie for a
// fresh access token. The refresh token itself is not rotated; the cookie
// stays valid until its own expiry or logout. A missing cookie is 401, a
// rejected one is 403.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(RefreshTokenCookie)
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	claims, err := h.tokens.VerifyRefreshToken(cookie.Value)
	if err != nil {
		respondMessage(w, http.StatusForbidden, "Forbidden")
		return
	}

	// Re-look-up by username+email rather than id: confirms the account
	// still exists and has not been renamed in a conflicting way.
	user, err := h.users.FindByUsernameAndEmail(r.Context(), claims.Username, claims.Email)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Database error")
		return
	}
	if user == nil {
		respondMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	accessToken, err := h.tokens.IssueAccessToken(user)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Failed to sign token")
		return
	}

	respondJSON(w, http.StatusOK, TokenResponse{AccessToken: accessToken})
}

// Logout handles POST /auth/logout. Without a jwt cookie it is a no-op
// (204). With one, it clears the cookie. The credential store is never
// touched; a captured refresh token remains valid until expiry.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if _, err := r.Cookie(RefreshTokenCookie); err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	clearRefreshCookie(w)
	respondMessage(w, http.StatusOK, "Cookie cleared")
}

// issueTokens is the shared token-issuance path: access token in the body,
// refresh token as the jwt cookie. Password reset completion re-enters it so
// the caller lands authenticated exactly as after a fresh login.
func issueTokens(w http.ResponseWriter, tokens *services.TokenService, user *models.User) {
	accessToken, err := tokens.IssueAccessToken(user)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Failed to sign token")
		return
	}

	refreshToken, err := tokens.IssueRefreshToken(user)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Failed to sign token")
		return
	}

	setRefreshCookie(w, refreshToken)
	respondJSON(w, http.StatusOK, TokenResponse{AccessToken: accessToken})
}
