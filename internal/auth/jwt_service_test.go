package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/evanWh1te/cville-kitchen-website-sub000/internal/errors"
	"github.com/evanWh1te/cville-kitchen-website-sub000/internal/model"
)

func TestNewJWTService_RequiresSecret(t *testing.T) {
	svc, err := NewJWTService("  ")
	assert.Nil(t, svc)
	assert.ErrorIs(t, err, apperrors.ErrConfig)
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc, err := NewJWTService("test-secret")
	require.NoError(t, err)

	token, err := svc.IssueToken("user-1", "admin@example.org", model.RoleAdmin)
	require.NoError(t, err)

	claims, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin@example.org", claims.Email)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.WithinDuration(t, time.Now().Add(TokenExpiry), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc, err := NewJWTService("test-secret")
	require.NoError(t, err)

	issued := time.Now()
	svc.now = func() time.Time { return issued }
	token, err := svc.IssueToken("user-1", "a@example.org", model.RoleModerator)
	require.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(TokenExpiry - time.Minute) }
	_, err = svc.VerifyToken(token)
	assert.NoError(t, err)

	svc.now = func() time.Time { return issued.Add(TokenExpiry + time.Minute) }
	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestJWTService_RejectsTokenFromOtherKey(t *testing.T) {
	issuer, err := NewJWTService("old-secret")
	require.NoError(t, err)
	verifier, err := NewJWTService("new-secret")
	require.NoError(t, err)

	token, err := issuer.IssueToken("user-1", "a@example.org", model.RoleAdmin)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestJWTService_RejectsMalformedAndTampered(t *testing.T) {
	svc, err := NewJWTService("test-secret")
	require.NoError(t, err)

	_, err = svc.VerifyToken("not.a.token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	token, err := svc.IssueToken("user-1", "a@example.org", model.RoleModerator)
	require.NoError(t, err)
	parts := strings.Split(token, ".")
	forged := &Claims{UserID: "user-1", Role: model.RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	forgedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, forged).SignedString([]byte("attacker"))
	require.NoError(t, err)
	tampered := strings.Split(forgedToken, ".")[0] + "." + strings.Split(forgedToken, ".")[1] + "." + parts[2]

	_, err = svc.VerifyToken(tampered)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestJWTService_RejectsUnsignedToken(t *testing.T) {
	svc, err := NewJWTService("test-secret")
	require.NoError(t, err)

	claims := &Claims{UserID: "user-1", Role: model.RoleAdmin, RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.VerifyToken(unsigned)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	other, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "every hash carries its own salt")

	assert.True(t, h.Verify("correct horse", hash))
	assert.False(t, h.Verify("battery staple", hash))
	assert.False(t, h.Verify("correct horse", "not-a-hash"))
}

func TestNewPasswordHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, DefaultCost, NewPasswordHasher(0).cost)
	assert.Equal(t, bcrypt.MinCost, NewPasswordHasher(bcrypt.MinCost).cost)
}
