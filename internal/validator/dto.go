package validator

import (
	"encoding/json"

	"github.com/NJ-LDS/reading-service/internal/models"
)

// Request DTOs for every mutating operation. Wire field names follow the
// frontend contract: snake_case for users/auth, camelCase elsewhere.

type CreateUserRequest struct {
	PhoneNumber string          `json:"phone_number" validate:"required,phone_number"`
	Name        string          `json:"name" validate:"required,max=50"`
	Email       *string         `json:"email" validate:"omitempty,email,max=100"`
	Role        models.UserRole `json:"role" validate:"required,user_role"`
	Group       *string         `json:"group" validate:"omitempty,max=50"`
	Password    *string         `json:"password" validate:"omitempty,min=6,max=72"`
	Age         *int            `json:"age" validate:"omitempty,min=0,max=120"`
	Gender      *string         `json:"gender" validate:"omitempty,max=10"`
	Education   *string         `json:"education" validate:"omitempty,max=50"`
	Income      *int            `json:"income" validate:"omitempty,min=0"`
	Occupation  *string         `json:"occupation" validate:"omitempty,max=50"`
}

type UpdateUserRequest struct {
	Name       *string          `json:"name" validate:"omitempty,max=50"`
	Email      *string          `json:"email" validate:"omitempty,email,max=100"`
	Role       *models.UserRole `json:"role" validate:"omitempty,user_role"`
	Group      *string          `json:"group" validate:"omitempty,max=50"`
	Password   *string          `json:"password" validate:"omitempty,min=6,max=72"`
	Age        *int             `json:"age" validate:"omitempty,min=0,max=120"`
	Gender     *string          `json:"gender" validate:"omitempty,max=10"`
	Education  *string          `json:"education" validate:"omitempty,max=50"`
	Income     *int             `json:"income" validate:"omitempty,min=0"`
	Occupation *string          `json:"occupation" validate:"omitempty,max=50"`
}

type LoginRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

type ConsentRequest struct {
	ConsentGiven *bool `json:"consent_given" validate:"required"`
}

type CreateMaterialRequest struct {
	ID       *string             `json:"id" validate:"omitempty,max=36"`
	Title    string              `json:"title" validate:"required,max=255"`
	Author   *string             `json:"author" validate:"omitempty,max=100"`
	Type     models.MaterialType `json:"type" validate:"required,material_type"`
	Content  string              `json:"content" validate:"required"`
	CoverURL *string             `json:"coverUrl" validate:"omitempty,max=255"`
}

type UpdateMaterialRequest struct {
	Title    *string              `json:"title" validate:"omitempty,max=255"`
	Author   *string              `json:"author" validate:"omitempty,max=100"`
	Type     *models.MaterialType `json:"type" validate:"omitempty,material_type"`
	Content  *string              `json:"content"`
	CoverURL *string              `json:"coverUrl" validate:"omitempty,max=255"`
}

type AssignRequest struct {
	UserIDs []string `json:"userIds" validate:"required,min=1,dive,required"`
}

type CreateFormRequest struct {
	ID        *string         `json:"id" validate:"omitempty,max=36"`
	Title     string          `json:"title" validate:"required,max=255"`
	Type      models.FormType `json:"type" validate:"required,form_type"`
	Content   string          `json:"content" validate:"required"`
	Questions json.RawMessage `json:"questions"`
}

type UpdateFormRequest struct {
	Title     *string          `json:"title" validate:"omitempty,max=255"`
	Type      *models.FormType `json:"type" validate:"omitempty,form_type"`
	Content   *string          `json:"content"`
	Questions json.RawMessage  `json:"questions"`
}

type CreateFormConfigRequest struct {
	MaterialID    string                `json:"materialId" validate:"required"`
	FormID        string                `json:"formId" validate:"required"`
	TriggerTiming *models.TriggerTiming `json:"triggerTiming" validate:"omitempty,trigger_timing"`
	IsActive      *bool                 `json:"isActive"`
}

type UpdateFormConfigRequest struct {
	TriggerTiming *models.TriggerTiming `json:"triggerTiming" validate:"omitempty,trigger_timing"`
	IsActive      *bool                 `json:"isActive"`
}

type SubmitResponseRequest struct {
	UserID          string          `json:"userId" validate:"required"`
	MaterialID      string          `json:"materialId" validate:"required"`
	FormID          string          `json:"formId" validate:"required"`
	Answers         json.RawMessage `json:"answers" validate:"required"`
	DurationSeconds *int            `json:"durationSeconds" validate:"omitempty,min=0"`
}

type UpdateResponseRequest struct {
	Answers         json.RawMessage `json:"answers"`
	DurationSeconds *int            `json:"durationSeconds" validate:"omitempty,min=0"`
}

type ExportResponsesRequest struct {
	IDs []uint `json:"ids"`
}

type CreateLogRequest struct {
	UserID     string          `json:"userId" validate:"required"`
	Action     string          `json:"action" validate:"required,max=50"`
	MaterialID *string         `json:"materialId" validate:"omitempty,max=36"`
	Details    json.RawMessage `json:"details"`
}
