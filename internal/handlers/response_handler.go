package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/NJ-LDS/reading-service/internal/services"
	"github.com/NJ-LDS/reading-service/internal/utils"
	"github.com/NJ-LDS/reading-service/internal/validator"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ResponseHandler struct {
	BaseHandler
	responseService services.ResponseService
}

func NewResponseHandler(responseService services.ResponseService, logger utils.Logger) *ResponseHandler {
	return &ResponseHandler{
		BaseHandler:     NewBaseHandler(logger),
		responseService: responseService,
	}
}

// SubmitResponse stores one form submission
func (h *ResponseHandler) SubmitResponse(c *gin.Context) {
	var req services.SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	response, err := h.responseService.Submit(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetUserResponses lists a user's submissions, newest first
func (h *ResponseHandler) GetUserResponses(c *gin.Context) {
	userID, ok := h.parseStringParam(c, "user_id")
	if !ok {
		return
	}

	responses, err := h.responseService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses)
}

// GetMaterialResponses lists submissions for one material, newest first
func (h *ResponseHandler) GetMaterialResponses(c *gin.Context) {
	materialID, ok := h.parseStringParam(c, "material_id")
	if !ok {
		return
	}

	responses, err := h.responseService.ListByMaterial(c.Request.Context(), materialID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses)
}

// ListResponses returns every submission enriched with display names
func (h *ResponseHandler) ListResponses(c *gin.Context) {
	h.LogRequest(c, "Listing all responses")

	responses, err := h.responseService.GetAll(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses)
}

// GetResponse returns one enriched submission
func (h *ResponseHandler) GetResponse(c *gin.Context) {
	id, ok := h.parseUintParam(c, "id")
	if !ok {
		return
	}

	response, err := h.responseService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateResponse edits a stored submission's answers or duration
func (h *ResponseHandler) UpdateResponse(c *gin.Context) {
	id, ok := h.parseUintParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	response, err := h.responseService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteResponse removes one submission
func (h *ResponseHandler) DeleteResponse(c *gin.Context) {
	id, ok := h.parseUintParam(c, "id")
	if !ok {
		return
	}

	if err := h.responseService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "Response deleted"})
}

// DownloadResponse streams a single submission as an xlsx workbook
func (h *ResponseHandler) DownloadResponse(c *gin.Context) {
	id, ok := h.parseUintParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "Downloading response", "response_id", id)

	// Export skips ids it cannot find, so an absent row must 404 here rather
	// than produce a header-only workbook.
	if _, err := h.responseService.GetByID(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	file, err := h.responseService.Export(c.Request.Context(), []uint{id})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.streamWorkbook(c, file, fmt.Sprintf("response_%d.xlsx", id))
}

// ExportResponses streams selected submissions (or all of them) as xlsx
func (h *ResponseHandler) ExportResponses(c *gin.Context) {
	var req validator.ExportResponsesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Exporting responses", "count", len(req.IDs))

	file, err := h.responseService.Export(c.Request.Context(), req.IDs)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	name := fmt.Sprintf("responses_%s.xlsx", time.Now().Format("20060102_150405"))
	h.streamWorkbook(c, file, name)
}

func (h *ResponseHandler) streamWorkbook(c *gin.Context, file *excelize.File, name string) {
	defer file.Close()
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Header("Content-Type", xlsxContentType)
	if _, err := file.WriteTo(c.Writer); err != nil {
		h.logger.Error("Failed to stream workbook", "error", err)
	}
}
