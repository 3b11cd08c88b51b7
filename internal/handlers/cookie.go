package handlers

import (
	"net/http"

	"github.com/mernshopper/shopper-backend/internal/services"
)

const (
	// RefreshTokenCookie carries the refresh token.
	RefreshTokenCookie = "jwt"
	// ActivationCookie carries the activation token during password recovery.
	ActivationCookie = "acl"
)

// Both cookies are HttpOnly + Secure + SameSite=None: an opaque credential
// replayed automatically by the browser and inaccessible to scripts, usable
// cross-site from the storefront frontend. The access token never goes into
// a cookie; it travels in the response body only.

func setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(services.RefreshTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func setActivationCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     ActivationCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(services.ActivationTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
