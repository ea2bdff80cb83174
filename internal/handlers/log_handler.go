package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NJ-LDS/reading-service/internal/services"
	"github.com/NJ-LDS/reading-service/internal/utils"
)

type LogHandler struct {
	BaseHandler
	logService services.LogService
}

func NewLogHandler(logService services.LogService, logger utils.Logger) *LogHandler {
	return &LogHandler{
		BaseHandler: NewBaseHandler(logger),
		logService:  logService,
	}
}

// CreateLog appends one audit entry. When the client sends no details the
// request's network context is captured instead.
func (h *LogHandler) CreateLog(c *gin.Context) {
	var req services.CreateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if len(req.Details) == 0 {
		details, err := json.Marshal(map[string]string{
			"client_ip":  c.ClientIP(),
			"user_agent": c.Request.UserAgent(),
		})
		if err == nil {
			req.Details = details
		}
	}

	entry, err := h.logService.Record(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ListLogs returns the full audit trail, newest first
func (h *LogHandler) ListLogs(c *gin.Context) {
	entries, err := h.logService.ListAll(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// ListUserLogs returns the audit trail for one user, newest first
func (h *LogHandler) ListUserLogs(c *gin.Context) {
	userID, ok := h.parseStringParam(c, "user_id")
	if !ok {
		return
	}

	entries, err := h.logService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// ListMaterialLogs returns the audit trail for one material, newest first
func (h *LogHandler) ListMaterialLogs(c *gin.Context) {
	materialID, ok := h.parseStringParam(c, "material_id")
	if !ok {
		return
	}

	entries, err := h.logService.ListByMaterial(c.Request.Context(), materialID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
