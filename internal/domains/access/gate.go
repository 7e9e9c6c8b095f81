package access

import (
	"errors"
	"strings"
	"time"

	"bookocean-backend/pkg/jwt"
)

// Identity is what a verified session token proves about the caller
type Identity struct {
	Email     string
	ExpiresAt time.Time
}

// Gate authenticates session tokens and authorizes per-borrower access.
// There is no revocation list: a token stays valid until it expires.
type Gate struct {
	tokens *jwt.Manager
}

func NewGate(tokens *jwt.Manager) *Gate {
	return &Gate{tokens: tokens}
}

// SessionTTL is the lifetime of issued tokens and of the session cookie
func (g *Gate) SessionTTL() time.Duration {
	return g.tokens.TTL()
}

// IssueSession binds email into a new session token
func (g *Gate) IssueSession(email string) (string, time.Time, error) {
	return g.tokens.GenerateSessionToken(email)
}

// Authenticate verifies signature and expiry
func (g *Gate) Authenticate(token string) (*Identity, error) {
	if strings.TrimSpace(token) == "" {
		return nil, newUnauthorizedError(errors.New("missing token"))
	}

	claims, err := g.tokens.ValidateSessionToken(token)
	if err != nil {
		return nil, newUnauthorizedError(err)
	}

	identity := &Identity{Email: claims.Email}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}

// Authorize allows access only when the identity's email equals email exactly.
// No case folding.
func (g *Gate) Authorize(identity *Identity, email string) error {
	if identity == nil {
		return newUnauthorizedError(errors.New("no identity"))
	}
	if identity.Email != email {
		return ErrForbidden
	}
	return nil
}
