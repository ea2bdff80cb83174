package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NJ-LDS/reading-service/internal/models"
	"github.com/NJ-LDS/reading-service/internal/services"
	"github.com/NJ-LDS/reading-service/internal/utils"
)

type FormConfigHandler struct {
	BaseHandler
	formConfigService services.FormConfigService
}

func NewFormConfigHandler(formConfigService services.FormConfigService, logger utils.Logger) *FormConfigHandler {
	return &FormConfigHandler{
		BaseHandler:       NewBaseHandler(logger),
		formConfigService: formConfigService,
	}
}

// CreateFormConfig binds a form to a material at a trigger timing
func (h *FormConfigHandler) CreateFormConfig(c *gin.Context) {
	var req services.CreateFormConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	config, err := h.formConfigService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, config)
}

// UpdateFormConfig changes the timing or active flag of one binding
func (h *FormConfigHandler) UpdateFormConfig(c *gin.Context) {
	id, ok := h.parseUintParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateFormConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	config, err := h.formConfigService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, config)
}

// DeleteFormConfig removes one binding
func (h *FormConfigHandler) DeleteFormConfig(c *gin.Context) {
	id, ok := h.parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.formConfigService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "Form config deleted"})
}

// GetMaterialForms resolves the active forms gating a material, optionally
// filtered by the timing query parameter
func (h *FormConfigHandler) GetMaterialForms(c *gin.Context) {
	materialID, ok := h.parseStringParam(c, "id")
	if !ok {
		return
	}

	var timing *models.TriggerTiming
	if raw := c.Query("timing"); raw != "" {
		t := models.TriggerTiming(raw)
		if t != models.TimingPreRead && t != models.TimingPostRead {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error: "Invalid timing, expected pre_read or post_read",
			})
			return
		}
		timing = &t
	}

	configs, err := h.formConfigService.Resolve(c.Request.Context(), materialID, timing)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, configs)
}
