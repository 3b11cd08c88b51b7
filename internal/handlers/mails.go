package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mernshopper/shopper-backend/internal/models"
	"github.com/mernshopper/shopper-backend/internal/services"
	"github.com/mernshopper/shopper-backend/pkg/utils"
)

// MailHandler handles password recovery and outbound order mail.
type MailHandler struct {
	users     services.UserStore
	recovery  services.RecoveryStore
	tokens    *services.TokenService
	mailer    services.Mailer
	apiURL    string
	clientURL string
}

// NewMailHandler creates a MailHandler.
func NewMailHandler(users services.UserStore, recovery services.RecoveryStore, tokens *services.TokenService, mailer services.Mailer, apiURL, clientURL string) *MailHandler {
	return &MailHandler{
		users:     users,
		recovery:  recovery,
		tokens:    tokens,
		mailer:    mailer,
		apiURL:    apiURL,
		clientURL: clientURL,
	}
}

// Request Reset Request
type RequestResetRequest struct {
	Email string `json:"email"`
}

// Complete Reset Request
type CompleteResetRequest struct {
	Password string `json:"password"`
}

// Order Mail Request
type OrderMailRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// RequestReset handles POST /mails/restore. Every outstanding recovery
// request is cleared first — table-wide, not per-email — so at most one
// request exists system-wide afterwards. Then the user is looked up, a fresh
// activation link is created, and the redemption link is mailed out.
// Mail failure does not roll back the created request.
func (h *MailHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	// Clear-all comes first, before input validation. The redemption-time
	// token check is what actually enforces single use, so a concurrent
	// second request surviving the race here is tolerated.
	if err := h.recovery.ClearAll(r.Context()); err != nil {
		respondMessage(w, http.StatusInternalServerError, "Database error")
		return
	}

	var req RequestResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		respondMessage(w, http.StatusBadRequest, "Email field is required")
		return
	}

	user, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Database error")
		return
	}
	if user == nil {
		respondMessage(w, http.StatusNotFound, "Not found user")
		return
	}

	activationLink := uuid.NewString()

	// Unreachable right after ClearAll, but kept: two overlapping requests
	// can both get past the clear.
	existing, err := h.recovery.FindByEmail(r.Context(), req.Email)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Database error")
		return
	}
	if existing != nil {
		respondMessage(w, http.StatusConflict, "Duplicate email")
		return
	}

	request := &models.RecoveryRequest{
		Email:          req.Email,
		ActivationLink: activationLink,
		IssuedAt:       time.Now(),
	}
	if err := h.recovery.Create(r.Context(), request); err != nil {
		respondMessage(w, http.StatusInternalServerError, "Database error")
		return
	}

	message := fmt.Sprintf(`<h2>Hello %s</h2>
		<p>The link is valid for 10 minutes</p>
		<a href=%s/mails/activate/%s>Follow the link to reset your password</a>`,
		req.Email, h.apiURL, activationLink)

	if err := h.mailer.Send(req.Email, "Password recovery", message); err != nil {
		// Fire-and-forget: the recovery request stays redeemable.
		log.Printf("Failed to send recovery mail to %s: %v", req.Email, err)
	}

	respondJSON(w, http.StatusOK, req.Email)
}

// Activate handles GET /mails/activate/{link}, the redemption link from the
// recovery mail. It hands the browser an activation token in the acl cookie
// and redirects to the password-entry page. The recovery request itself is
// not consumed here; that happens in CompleteReset.
func (h *MailHandler) Activate(w http.ResponseWriter, r *http.Request) {
	activationLink := chi.URLParam(r, "link")

	request, err := h.recovery.FindByActivationLink(r.Context(), activationLink)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Database error")
		return
	}
	if request == nil {
		respondMessage(w, http.StatusNotFound, "Not found activation link")
		return
	}

	aclToken, err := h.tokens.IssueActivationToken(activationLink)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Failed to sign token")
		return
	}

	setActivationCookie(w, aclToken)
	http.Redirect(w, r, h.clientURL+"/create", http.StatusFound)
}

// CompleteReset handles POST /mails/create. The recovery request is deleted
// as soon as it is found — single-use consumption, regardless of what
// happens afterwards. The 10-minute window is then checked against IssuedAt
// as a second, independent guard on top of the activation token's own
// expiry. On success the caller lands authenticated, same as a fresh login.
func (h *MailHandler) CompleteReset(w http.ResponseWriter, r *http.Request) {
	var req CompleteResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password == "" {
		respondMessage(w, http.StatusBadRequest, "Password field is required")
		return
	}

	cookie, err := r.Cookie(ActivationCookie)
	if err != nil {
		respondMessage(w, http.StatusUnauthorized, "Not found activation link cookie")
		return
	}

	claims, err := h.tokens.VerifyActivationToken(cookie.Value)
	if err != nil {
		respondMessage(w, http.StatusForbidden, "Forbidden")
		return
	}

	request, err := h.recovery.FindByActivationLink(r.Context(), claims.ActivationLink)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Database error")
		return
	}
	if request == nil {
		respondMessage(w, http.StatusUnauthorized, "Data of restore password not found")
		return
	}

	if err := h.recovery.Delete(r.Context(), request.ActivationLink); err != nil {
		respondMessage(w, http.StatusInternalServerError, "Database error")
		return
	}

	if time.Since(request.IssuedAt) > services.RecoveryRequestTTL {
		respondMessage(w, http.StatusRequestTimeout, "Activation link expired")
		return
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user, err := h.users.UpdatePasswordHashByEmail(r.Context(), request.Email, passwordHash)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Database error")
		return
	}
	if user == nil {
		respondMessage(w, http.StatusNotFound, "Not found user")
		return
	}

	issueTokens(w, h.tokens, user)
}

// SendOrderMail handles POST /mails, behind the access-token middleware.
func (h *MailHandler) SendOrderMail(w http.ResponseWriter, r *http.Request) {
	var req OrderMailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}

	if req.Email == "" || req.Message == "" {
		respondMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}

	if err := h.mailer.Send(req.Email, "Your order", req.Message); err != nil {
		respondMessage(w, http.StatusBadRequest, "Not created mail")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"mail": req.Email})
}
