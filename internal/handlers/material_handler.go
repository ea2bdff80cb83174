package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NJ-LDS/reading-service/internal/services"
	"github.com/NJ-LDS/reading-service/internal/utils"
	"github.com/NJ-LDS/reading-service/internal/validator"
)

type MaterialHandler struct {
	BaseHandler
	materialService   services.MaterialService
	assignmentService services.AssignmentService
}

func NewMaterialHandler(
	materialService services.MaterialService,
	assignmentService services.AssignmentService,
	logger utils.Logger,
) *MaterialHandler {
	return &MaterialHandler{
		BaseHandler:       NewBaseHandler(logger),
		materialService:   materialService,
		assignmentService: assignmentService,
	}
}

// CreateMaterial registers a new reading material
func (h *MaterialHandler) CreateMaterial(c *gin.Context) {
	var req services.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	material, err := h.materialService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, material)
}

// ListMaterials returns all materials with assignment projections
func (h *MaterialHandler) ListMaterials(c *gin.Context) {
	h.LogRequest(c, "Listing materials")

	materials, err := h.materialService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, materials)
}

// GetMaterial returns one material with assignment projections
func (h *MaterialHandler) GetMaterial(c *gin.Context) {
	id, ok := h.parseStringParam(c, "id")
	if !ok {
		return
	}

	material, err := h.materialService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, material)
}

// UpdateMaterial applies a partial update
func (h *MaterialHandler) UpdateMaterial(c *gin.Context) {
	id, ok := h.parseStringParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	material, err := h.materialService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, material)
}

// DeleteMaterial removes a material and everything referencing it
func (h *MaterialHandler) DeleteMaterial(c *gin.Context) {
	id, ok := h.parseStringParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting material", "material_id", id)

	if err := h.materialService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "Material deleted"})
}

// AssignMaterial hands a material to a batch of users
func (h *MaterialHandler) AssignMaterial(c *gin.Context) {
	id, ok := h.parseStringParam(c, "id")
	if !ok {
		return
	}

	var req validator.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.UserIDs) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "userIds is required",
		})
		return
	}

	h.LogRequest(c, "Assigning material", "material_id", id, "user_count", len(req.UserIDs))

	material, err := h.assignmentService.Assign(c.Request.Context(), id, req.UserIDs)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, material)
}

// UnassignMaterial removes one user's assignment
func (h *MaterialHandler) UnassignMaterial(c *gin.Context) {
	id, ok := h.parseStringParam(c, "id")
	if !ok {
		return
	}
	userID, ok := h.parseStringParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.assignmentService.Unassign(c.Request.Context(), id, userID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "Assignment removed"})
}

// MarkRead flips a user's read state to read, assigning on the fly if needed
func (h *MaterialHandler) MarkRead(c *gin.Context) {
	id, ok := h.parseStringParam(c, "id")
	if !ok {
		return
	}
	userID, ok := h.parseStringParam(c, "user_id")
	if !ok {
		return
	}

	result, err := h.assignmentService.MarkRead(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// MarkUnread flips a user's read state back to unread
func (h *MaterialHandler) MarkUnread(c *gin.Context) {
	id, ok := h.parseStringParam(c, "id")
	if !ok {
		return
	}
	userID, ok := h.parseStringParam(c, "user_id")
	if !ok {
		return
	}

	assignment, err := h.assignmentService.MarkUnread(c.Request.Context(), id, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// GetUserMaterials lists the materials assigned to one user with read state
func (h *MaterialHandler) GetUserMaterials(c *gin.Context) {
	userID, ok := h.parseStringParam(c, "phone_number")
	if !ok {
		return
	}

	materials, err := h.assignmentService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, materials)
}
