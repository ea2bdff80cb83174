package services

import (
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/NJ-LDS/reading-service/internal/models"
	"github.com/NJ-LDS/reading-service/internal/validator"
)

// ===== REQUEST DTOs =====

// Request types live with the validation rules.
type CreateUserRequest = validator.CreateUserRequest
type UpdateUserRequest = validator.UpdateUserRequest
type LoginRequest = validator.LoginRequest
type CreateMaterialRequest = validator.CreateMaterialRequest
type UpdateMaterialRequest = validator.UpdateMaterialRequest
type CreateFormRequest = validator.CreateFormRequest
type UpdateFormRequest = validator.UpdateFormRequest
type CreateFormConfigRequest = validator.CreateFormConfigRequest
type UpdateFormConfigRequest = validator.UpdateFormConfigRequest
type SubmitResponseRequest = validator.SubmitResponseRequest
type UpdateResponseRequest = validator.UpdateResponseRequest
type CreateLogRequest = validator.CreateLogRequest

// ===== RESPONSE DTOs =====

// AssignedMaterial pairs a material projection with the caller's read state.
type AssignedMaterial struct {
	*models.Material
	ReadStatus bool `json:"readStatus"`
}

// MarkReadResult reports the post-operation read state and whether the
// assignment was implicitly created by the read event.
type MarkReadResult struct {
	*models.MaterialAssignment
	AutoAssigned bool `json:"autoAssigned"`
}

// ResponseDetail enriches a stored response with display fields resolved from
// the current related entities; they are never persisted.
type ResponseDetail struct {
	*models.UserResponse
	UserName      string `json:"userName"`
	MaterialTitle string `json:"materialTitle"`
	FormTitle     string `json:"formTitle"`
}

// ===== SERVICE INTERFACES =====

type UserService interface {
	Create(ctx context.Context, req *CreateUserRequest) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, phone string, req *UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, phone string) error

	// Login verifies credentials, transparently upgrading a legacy plaintext
	// credential to a bcrypt hash on first successful use.
	Login(ctx context.Context, req *LoginRequest) (*models.User, error)

	// UpdateConsent records the one-time consent transition. Consent can only
	// move false -> true; any other request leaves the flag untouched.
	UpdateConsent(ctx context.Context, phone string, consentGiven bool) (*models.User, error)
}

type MaterialService interface {
	Create(ctx context.Context, req *CreateMaterialRequest) (*models.Material, error)
	GetByID(ctx context.Context, id string) (*models.Material, error)
	List(ctx context.Context) ([]*models.Material, error)
	Update(ctx context.Context, id string, req *UpdateMaterialRequest) (*models.Material, error)
	Delete(ctx context.Context, id string) error
}

type AssignmentService interface {
	// Assign hands the material to each listed user, silently skipping unknown
	// users and already-assigned pairs. Idempotent.
	Assign(ctx context.Context, materialID string, userIDs []string) (*models.Material, error)
	Unassign(ctx context.Context, materialID, userID string) error

	// MarkRead flips read state to true, creating the assignment on the fly
	// when the pair was never tracked (auto-assign-on-read).
	MarkRead(ctx context.Context, materialID, userID string) (*MarkReadResult, error)

	// MarkUnread requires an existing assignment; reading is what establishes
	// the tracking relationship, so there is nothing to unread otherwise.
	MarkUnread(ctx context.Context, materialID, userID string) (*models.MaterialAssignment, error)

	ListForUser(ctx context.Context, userID string) ([]*AssignedMaterial, error)
}

type FormService interface {
	Create(ctx context.Context, req *CreateFormRequest) (*models.Form, error)
	GetByID(ctx context.Context, id string) (*models.Form, error)
	List(ctx context.Context) ([]*models.Form, error)
	Update(ctx context.Context, id string, req *UpdateFormRequest) (*models.Form, error)
	Delete(ctx context.Context, id string) error
}

type FormConfigService interface {
	Create(ctx context.Context, req *CreateFormConfigRequest) (*models.MaterialFormConfig, error)

	// Update adjusts the timing or active flag of an existing binding.
	// Deactivating keeps the row but drops it from every future Resolve.
	Update(ctx context.Context, id uint, req *UpdateFormConfigRequest) (*models.MaterialFormConfig, error)
	Delete(ctx context.Context, id uint) error

	// Resolve returns the active configs gating the material, optionally
	// narrowed to one timing, each joined with its form. An empty result means
	// no gating form is required.
	Resolve(ctx context.Context, materialID string, timing *models.TriggerTiming) ([]*models.MaterialFormConfig, error)
}

type ResponseService interface {
	Submit(ctx context.Context, req *SubmitResponseRequest) (*models.UserResponse, error)
	ListByUser(ctx context.Context, userID string) ([]*models.UserResponse, error)
	ListByMaterial(ctx context.Context, materialID string) ([]*models.UserResponse, error)

	// Administrative operations, unscoped and enriched at read time.
	GetAll(ctx context.Context) ([]*ResponseDetail, error)
	GetByID(ctx context.Context, id uint) (*ResponseDetail, error)
	Update(ctx context.Context, id uint, req *UpdateResponseRequest) (*ResponseDetail, error)
	Delete(ctx context.Context, id uint) error
	Export(ctx context.Context, ids []uint) (*excelize.File, error)
}

type LogService interface {
	Record(ctx context.Context, req *CreateLogRequest) (*models.Log, error)
	ListAll(ctx context.Context) ([]*models.Log, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Log, error)
	ListByMaterial(ctx context.Context, materialID string) ([]*models.Log, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	User() UserService
	Material() MaterialService
	Assignment() AssignmentService
	Form() FormService
	FormConfig() FormConfigService
	Response() ResponseService
	Log() LogService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
