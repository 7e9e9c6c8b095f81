package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"bookocean-backend/internal/domains/access"
	"bookocean-backend/internal/shared/response"
	"bookocean-backend/pkg/logger"
)

// CookieConfig controls the session cookie
type CookieConfig struct {
	Name   string
	Secure bool
}

type SessionRequest struct {
	Email string `json:"email"`
}

func (r SessionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
	)
}

type SessionHandler struct {
	gate   *access.Gate
	cookie CookieConfig
}

func NewSessionHandler(gate *access.Gate, cookie CookieConfig) *SessionHandler {
	return &SessionHandler{gate: gate, cookie: cookie}
}

// Issue - POST /jwt
// Binds the email into a session token and sets it as an HttpOnly cookie.
// Nothing proves the caller owns the email.
func (h *SessionHandler) Issue(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, "Validation failed", err)
		return
	}

	token, expiresAt, err := h.gate.IssueSession(req.Email)
	if err != nil {
		logger.Error("Issue session failed", err)
		response.InternalServerError(c)
		return
	}

	h.setCookie(c, token, int(h.gate.SessionTTL().Seconds()))
	response.Success(c, http.StatusOK, "Session issued", gin.H{
		"success":    true,
		"expires_at": expiresAt,
	})
}

// Logout - POST /logout
func (h *SessionHandler) Logout(c *gin.Context) {
	h.setCookie(c, "", -1)
	response.Success(c, http.StatusOK, "Session cleared", gin.H{"success": true})
}

func (h *SessionHandler) setCookie(c *gin.Context, value string, maxAge int) {
	sameSite := http.SameSiteLaxMode
	if h.cookie.Secure {
		sameSite = http.SameSiteNoneMode
	}
	c.SetSameSite(sameSite)
	c.SetCookie(h.cookie.Name, value, maxAge, "/", "", h.cookie.Secure, true)
}
