package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quizforge/quiz-service/internal/gate"
	"github.com/quizforge/quiz-service/internal/services"
	"github.com/quizforge/quiz-service/internal/utils"
)

// accessExpiryHeader carries the grant expiry on authoring requests. Clients
// store the expiry from /access/verify and echo it back here.
const accessExpiryHeader = "X-Access-Expires"

// AccessHandler verifies the shared authoring access code and checks the
// resulting time-limited grant on protected routes.
type AccessHandler struct {
	BaseHandler
	gate *gate.AccessGate
}

func NewAccessHandler(g *gate.AccessGate, logger utils.Logger) *AccessHandler {
	return &AccessHandler{
		BaseHandler: NewBaseHandler(logger.With("handler", "access")),
		gate:        g,
	}
}

// VerifyRequest carries the submitted access code.
type VerifyRequest struct {
	Code string `json:"code" binding:"required"`
}

// VerifyCode exchanges the shared code for a grant.
func (h *AccessHandler) VerifyCode(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithBindingError(c, "Access code is required", err)
		return
	}

	grant, ok := h.gate.Verify(req.Code)
	if !ok {
		h.RespondWithServiceError(c, services.ErrAccessDenied)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Access granted", grant)
}

// RequireGrant gates authoring routes on a still-valid grant expiry.
func (h *AccessHandler) RequireGrant() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(accessExpiryHeader)
		if raw == "" {
			h.RespondWithServiceError(c, services.ErrAccessDenied)
			c.Abort()
			return
		}
		expires, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			h.logger.Warn("unparseable access grant header", "value", raw)
			h.RespondWithServiceError(c, services.ErrAccessDenied)
			c.Abort()
			return
		}
		if !h.gate.Check(gate.Grant{ExpiresAt: expires}) {
			h.RespondWithServiceError(c, services.ErrAccessExpired)
			c.Abort()
			return
		}
		c.Next()
	}
}
