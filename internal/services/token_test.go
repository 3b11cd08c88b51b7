package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mernshopper/shopper-backend/internal/config"
	"github.com/mernshopper/shopper-backend/internal/models"
)

func testTokenService() *TokenService {
	return NewTokenService(&config.Config{
		AccessTokenSecret:    "access-secret",
		RefreshTokenSecret:   "refresh-secret",
		ActivationLinkSecret: "activation-secret",
	})
}

func testUser() *models.User {
	return &models.User{
		ID:       uuid.New(),
		Username: "alice",
		Email:    "alice@example.com",
		Roles:    []string{"Employee"},
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	s := testTokenService()
	user := testUser()

	token, err := s.IssueAccessToken(user)
	require.NoError(t, err)

	claims, err := s.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserInfo.ID)
	assert.Equal(t, user.Username, claims.UserInfo.Username)
	assert.Equal(t, user.Email, claims.UserInfo.Email)
	assert.Equal(t, user.Roles, claims.UserInfo.Roles)
	assert.WithinDuration(t, time.Now().Add(AccessTokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	s := testTokenService()
	user := testUser()

	token, err := s.IssueRefreshToken(user)
	require.NoError(t, err)

	claims, err := s.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.Username, claims.Username)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.ID.String(), claims.ID)
	assert.WithinDuration(t, time.Now().Add(RefreshTokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestActivationTokenRoundTrip(t *testing.T) {
	s := testTokenService()

	token, err := s.IssueActivationToken("the-link")
	require.NoError(t, err)

	claims, err := s.VerifyActivationToken(token)
	require.NoError(t, err)
	assert.Equal(t, "the-link", claims.ActivationLink)
	assert.WithinDuration(t, time.Now().Add(ActivationTokenTTL), claims.ExpiresAt.Time, time.Minute)
}

// Each kind signs with its own secret, so a token of one kind must never
// verify as another.
func TestTokenKindsAreIsolated(t *testing.T) {
	s := testTokenService()
	user := testUser()

	access, err := s.IssueAccessToken(user)
	require.NoError(t, err)
	refresh, err := s.IssueRefreshToken(user)
	require.NoError(t, err)
	activation, err := s.IssueActivationToken("the-link")
	require.NoError(t, err)

	_, err = s.VerifyRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = s.VerifyAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = s.VerifyAccessToken(activation)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = s.VerifyActivationToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	s := testTokenService()

	expired := AccessClaims{
		UserInfo: UserInfo{Username: "alice"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expired).SignedString([]byte("access-secret"))
	require.NoError(t, err)

	_, err = s.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	s := testTokenService()

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := s.VerifyAccessToken(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

// Tokens must be HMAC-signed; an unsigned token is rejected even with a
// matching payload.
func TestVerifyRejectsNoneAlgorithm(t *testing.T) {
	s := testTokenService()

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, AccessClaims{
		UserInfo:         UserInfo{Username: "alice"},
		RegisteredClaims: registeredClaims(AccessTokenTTL),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
