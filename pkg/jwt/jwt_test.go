package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_SessionTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", 6*time.Hour)

	token, expiresAt, err := m.GenerateSessionToken("reader@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(6*time.Hour), expiresAt, 5*time.Second)

	claims, err := m.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, "reader@example.com", claims.Email)
	assert.Equal(t, TokenTypeSession, claims.Type)
}

func TestManager_RejectsEmptyEmail(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	_, _, err := m.GenerateSessionToken("   ")
	assert.Error(t, err)
}

func TestManager_ExpiredToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	issued := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issued }

	token, _, err := m.GenerateSessionToken("reader@example.com")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateSessionToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestManager_WrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", time.Hour)
	verifier := NewManager("secret-b", time.Hour)

	token, _, err := issuer.GenerateSessionToken("reader@example.com")
	require.NoError(t, err)

	_, err = verifier.ValidateSessionToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestManager_WrongTokenType(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	claims := Claims{
		Email: "reader@example.com",
		Type:  "refresh",
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.ValidateSessionToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestManager_Garbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	_, err := m.ValidateSessionToken("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
