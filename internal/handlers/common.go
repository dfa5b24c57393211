package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/quizforge/quiz-service/internal/errors"
	"github.com/quizforge/quiz-service/internal/services"
	"github.com/quizforge/quiz-service/internal/utils"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	// SaveStatus distinguishes "remote" from "local_only" persistence so a
	// failed backend write is no longer indistinguishable from success.
	SaveStatus string `json:"save_status,omitempty"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging and response functionality for all handlers
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error, details ...interface{}) {
	errorResp := ErrorResponse{Message: message}
	if len(details) > 0 {
		errorResp.Details = details[0]
	}

	if err != nil {
		h.logger.LogError(err, message, "status_code", statusCode, "path", c.Request.URL.Path)
	} else {
		h.logger.Warn(message, "status_code", statusCode, "path", c.Request.URL.Path)
	}

	c.JSON(statusCode, errorResp)
}

// RespondWithSuccess sends a consistent success response
func (h *BaseHandler) RespondWithSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, SuccessResponse{Message: message, Data: data})
}

// RespondWithBindingError reports a failed request bind, with per-field
// details when the failure came from struct validation.
func (h *BaseHandler) RespondWithBindingError(c *gin.Context, message string, err error) {
	if fieldErrors := apperrors.ToValidationErrors(err); len(fieldErrors) > 0 {
		h.RespondWithError(c, http.StatusBadRequest, message, err, fieldErrors)
		return
	}
	h.RespondWithError(c, http.StatusBadRequest, message, err)
}

// RespondWithServiceError maps service errors onto HTTP status codes.
func (h *BaseHandler) RespondWithServiceError(c *gin.Context, err error) {
	var draftErr *services.DraftValidationError
	var fieldErrors services.ValidationErrors
	switch {
	case errors.As(err, &draftErr):
		h.RespondWithError(c, http.StatusUnprocessableEntity, "Validation failed", nil, draftErr.Messages)
	case errors.As(err, &fieldErrors):
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err, fieldErrors)
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, err.Error(), nil)
	case services.IsUnauthorized(err):
		h.RespondWithError(c, http.StatusUnauthorized, err.Error(), nil)
	case services.IsValidation(err):
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request", err)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

// HealthCheck responds with service liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "quiz-service",
	})
}
