package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NJ-LDS/reading-service/internal/services"
	"github.com/NJ-LDS/reading-service/internal/utils"
	"github.com/NJ-LDS/reading-service/internal/validator"
)

type UserHandler struct {
	BaseHandler
	userService services.UserService
}

func NewUserHandler(userService services.UserService, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
	}
}

// CreateUser registers a new participant or admin account
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, err := h.userService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// ListUsers returns every account with its assigned-material count
func (h *UserHandler) ListUsers(c *gin.Context) {
	h.LogRequest(c, "Listing users")

	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetUser looks up one account by phone number
func (h *UserHandler) GetUser(c *gin.Context) {
	phone, ok := h.parseStringParam(c, "phone_number")
	if !ok {
		return
	}

	user, err := h.userService.GetByPhone(c.Request.Context(), phone)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser applies a partial update to an account
func (h *UserHandler) UpdateUser(c *gin.Context) {
	phone, ok := h.parseStringParam(c, "phone_number")
	if !ok {
		return
	}

	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, err := h.userService.Update(c.Request.Context(), phone, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account together with its assignments, responses and logs
func (h *UserHandler) DeleteUser(c *gin.Context) {
	phone, ok := h.parseStringParam(c, "phone_number")
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting user", "phone_number", phone)

	if err := h.userService.Delete(c.Request.Context(), phone); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Message: "User deleted"})
}

// Login verifies phone number and password
func (h *UserHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

// UpdateConsent records the participant's consent decision
func (h *UserHandler) UpdateConsent(c *gin.Context) {
	phone, ok := h.parseStringParam(c, "phone_number")
	if !ok {
		return
	}

	var req validator.ConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ConsentGiven == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "consent_given is required",
		})
		return
	}

	user, err := h.userService.UpdateConsent(c.Request.Context(), phone, *req.ConsentGiven)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
