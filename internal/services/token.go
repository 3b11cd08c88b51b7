package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mernshopper/shopper-backend/internal/config"
	"github.com/mernshopper/shopper-backend/internal/models"
)

const (
	// AccessTokenTTL is the lifetime of an access token.
	AccessTokenTTL = 15 * time.Minute
	// RefreshTokenTTL is the lifetime of a refresh token and the jwt cookie.
	RefreshTokenTTL = 7 * 24 * time.Hour
	// ActivationTokenTTL is the lifetime of an activation token and the acl
	// cookie. It matches RecoveryRequestTTL.
	ActivationTokenTTL = 10 * time.Minute
)

// ErrInvalidToken is returned when a token fails signature, format, or
// expiry checks. Callers map it to an authentication failure without
// distinguishing the cause.
var ErrInvalidToken = errors.New("invalid token")

// UserInfo is the identity payload carried by access tokens. The wire layout
// (nested under "UserInfo") is a contract with the deployed storefront
// frontend and the route-admission middleware.
type UserInfo struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
	ID       string   `json:"id"`
}

// AccessClaims are the claims of an access token.
type AccessClaims struct {
	UserInfo UserInfo `json:"UserInfo"`
	jwt.RegisteredClaims
}

// RefreshClaims are the claims of a refresh token. Roles are deliberately
// absent: the user is re-looked-up on refresh.
type RefreshClaims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	ID       string `json:"id"`
	jwt.RegisteredClaims
}

// ActivationClaims bind a browser session to one redeemed recovery link.
type ActivationClaims struct {
	ActivationLink string `json:"activationLink"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies the three token kinds. Each kind has its
// own secret so that compromise of one kind cannot be replayed as another.
// Verification is pure and safe for concurrent use.
type TokenService struct {
	accessSecret     []byte
	refreshSecret    []byte
	activationSecret []byte
}

// NewTokenService creates a TokenService from the three configured secrets.
func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		accessSecret:     []byte(cfg.AccessTokenSecret),
		refreshSecret:    []byte(cfg.RefreshTokenSecret),
		activationSecret: []byte(cfg.ActivationLinkSecret),
	}
}

// IssueAccessToken signs a 15-minute access token carrying the user's
// identity and roles.
func (s *TokenService) IssueAccessToken(user *models.User) (string, error) {
	claims := AccessClaims{
		UserInfo: UserInfo{
			Username: user.Username,
			Email:    user.Email,
			Roles:    user.Roles,
			ID:       user.ID.String(),
		},
		RegisteredClaims: registeredClaims(AccessTokenTTL),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.accessSecret)
}

// IssueRefreshToken signs a 7-day refresh token.
func (s *TokenService) IssueRefreshToken(user *models.User) (string, error) {
	claims := RefreshClaims{
		Username:         user.Username,
		Email:            user.Email,
		ID:               user.ID.String(),
		RegisteredClaims: registeredClaims(RefreshTokenTTL),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.refreshSecret)
}

// IssueActivationToken signs a 10-minute token carrying a recovery request's
// activation link.
func (s *TokenService) IssueActivationToken(activationLink string) (string, error) {
	claims := ActivationClaims{
		ActivationLink:   activationLink,
		RegisteredClaims: registeredClaims(ActivationTokenTTL),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.activationSecret)
}

// VerifyAccessToken checks signature and expiry of an access token.
func (s *TokenService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := s.verify(tokenString, claims, s.accessSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyRefreshToken checks signature and expiry of a refresh token.
func (s *TokenService) VerifyRefreshToken(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := s.verify(tokenString, claims, s.refreshSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyActivationToken checks signature and expiry of an activation token.
func (s *TokenService) VerifyActivationToken(tokenString string) (*ActivationClaims, error) {
	claims := &ActivationClaims{}
	if err := s.verify(tokenString, claims, s.activationSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *TokenService) verify(tokenString string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return ErrInvalidToken
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

func registeredClaims(ttl time.Duration) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
}
