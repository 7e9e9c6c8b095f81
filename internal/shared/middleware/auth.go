package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"bookocean-backend/internal/domains/access"
	"bookocean-backend/internal/shared/response"
	"bookocean-backend/pkg/logger"
)

// IdentityKey is the gin context key holding *access.Identity
const IdentityKey = "identity"

// tokensFromRequest lists the session cookie, then "Authorization: Bearer <token>".
// Empty values are skipped.
func tokensFromRequest(c *gin.Context, cookieName string) []string {
	tokens := make([]string, 0, 2)
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		tokens = append(tokens, token)
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		if token := strings.TrimSpace(parts[1]); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// authenticateRequest accepts the first candidate token that verifies,
// a stale cookie does not hide a valid bearer token
func authenticateRequest(gate *access.Gate, c *gin.Context, cookieName string) (*access.Identity, error) {
	tokens := tokensFromRequest(c, cookieName)
	if len(tokens) == 0 {
		return gate.Authenticate("")
	}

	var lastErr error
	for _, token := range tokens {
		identity, err := gate.Authenticate(token)
		if err == nil {
			return identity, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// Authenticate - Middleware xác thực session token, 401 nếu thiếu hoặc không hợp lệ
func Authenticate(gate *access.Gate, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := authenticateRequest(gate, c, cookieName)
		if err != nil {
			logger.Debug("authentication rejected: " + err.Error())
			response.Unauthorized(c, "unauthorized access")
			c.Abort()
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// RequireOwner must run after Authenticate. It compares the identity's email
// with the route parameter param and answers 403 on mismatch.
func RequireOwner(gate *access.Gate, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := GetIdentity(c)

		if err := gate.Authorize(identity, c.Param(param)); err != nil {
			if access.IsUnauthorized(err) {
				response.Unauthorized(c, "unauthorized access")
			} else {
				response.Forbidden(c, "forbidden access")
			}
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetIdentity returns the identity set by Authenticate
func GetIdentity(c *gin.Context) (*access.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*access.Identity)
	return identity, ok
}
