package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mernshopper/shopper-backend/internal/services"
)

type contextKey string

const userInfoKey contextKey = "userInfo"

// VerifyJWT is the route-admission middleware: it verifies the bearer access
// token and attaches the decoded identity to the request context. A missing
// credential is 401, a rejected one 403.
func VerifyJWT(tokens *services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := tokens.VerifyAccessToken(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), userInfoKey, claims.UserInfo)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserInfoFromContext returns the identity attached by VerifyJWT.
func UserInfoFromContext(ctx context.Context) (services.UserInfo, bool) {
	info, ok := ctx.Value(userInfoKey).(services.UserInfo)
	return info, ok
}
