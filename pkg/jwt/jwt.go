package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTypeSession marks tokens issued by the /jwt endpoint
const TokenTypeSession = "session"

var (
	// ErrTokenExpired is returned when the token's exp claim is in the past
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid covers bad signatures, malformed tokens and wrong token types
	ErrTokenInvalid = errors.New("invalid token")
)

// Claims represents the identity bound into a session token
type Claims struct {
	Email string `json:"email"`
	Type  string `json:"type"`
	jwt.RegisteredClaims
}

// Manager handles JWT operations
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates new JWT manager issuing tokens valid for ttl
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// TTL returns the validity window of issued tokens
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// GenerateSessionToken binds email into a signed HS256 token.
// Returns the token and its expiry time.
func (m *Manager) GenerateSessionToken(email string) (string, time.Time, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", time.Time{}, fmt.Errorf("generate session token: empty email")
	}

	issuedAt := m.now()
	expiresAt := issuedAt.Add(m.ttl)

	claims := Claims{
		Email: email,
		Type:  TokenTypeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}

	return signed, expiresAt, nil
}

// ValidateToken validates signature and expiry and parses claims
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if !token.Valid {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

// ValidateSessionToken validates session token specifically
func (m *Manager) ValidateSessionToken(tokenString string) (*Claims, error) {
	claims, err := m.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	if claims.Type != TokenTypeSession {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrTokenInvalid, TokenTypeSession, claims.Type)
	}

	if claims.Email == "" {
		return nil, fmt.Errorf("%w: missing email claim", ErrTokenInvalid)
	}

	return claims, nil
}
