package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/NJ-LDS/reading-service/internal/services"
	"github.com/NJ-LDS/reading-service/internal/utils"
)

// ErrorResponse is the error body returned by every endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// SuccessResponse acknowledges mutations that return no entity.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// BaseHandler provides shared request helpers for all handlers.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	logger := utils.LoggerFromContext(c.Request.Context(), h.logger)
	logger.Info(msg, args...)
}

func (h *BaseHandler) parseUintParam(c *gin.Context, param string) (uint, bool) {
	idStr := c.Param(param)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid " + param,
			Details: err.Error(),
		})
		return 0, false
	}
	return uint(id), true
}

func (h *BaseHandler) parseStringParam(c *gin.Context, param string) (string, bool) {
	value := strings.TrimSpace(c.Param(param))
	if value == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid " + param,
		})
		return "", false
	}
	return value, true
}

// handleServiceError maps service errors onto HTTP statuses. Uniqueness
// conflicts deliberately map to 400 rather than 409 so clients handle one
// rejection shape for all bad input.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Validation failed",
			Details: validationErrors,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
	case errors.Is(err, services.ErrMaterialNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Material not found"})
	case errors.Is(err, services.ErrFormNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Form not found"})
	case errors.Is(err, services.ErrAssignmentNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Assignment not found"})
	case errors.Is(err, services.ErrFormConfigNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Form config not found"})
	case errors.Is(err, services.ErrResponseNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Response not found"})
	case errors.Is(err, services.ErrUserExists):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "User already exists"})
	case errors.Is(err, services.ErrMaterialExists):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Material already exists"})
	case errors.Is(err, services.ErrFormExists):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Form already exists"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid phone number or password"})
	default:
		h.logger.Error("Unhandled service error", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}
