package validator

import (
	"errors"
	"testing"

	"github.com/NJ-LDS/reading-service/internal/models"
)

func TestCreateUserRequestValidation(t *testing.T) {
	v := New()

	valid := CreateUserRequest{
		PhoneNumber: "13800138000",
		Name:        "Test User",
		Role:        models.RoleParticipant,
	}
	if err := v.Validate(&valid); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(r *CreateUserRequest)
		field  string
	}{
		{
			name:   "missing phone",
			mutate: func(r *CreateUserRequest) { r.PhoneNumber = "" },
			field:  "PhoneNumber",
		},
		{
			name:   "malformed phone",
			mutate: func(r *CreateUserRequest) { r.PhoneNumber = "not-a-phone" },
			field:  "PhoneNumber",
		},
		{
			name:   "phone too short",
			mutate: func(r *CreateUserRequest) { r.PhoneNumber = "123" },
			field:  "PhoneNumber",
		},
		{
			name:   "unknown role",
			mutate: func(r *CreateUserRequest) { r.Role = "OBSERVER" },
			field:  "Role",
		},
		{
			name: "bad email",
			mutate: func(r *CreateUserRequest) {
				email := "not-an-email"
				r.Email = &email
			},
			field: "Email",
		},
		{
			name: "short password",
			mutate: func(r *CreateUserRequest) {
				password := "abc"
				r.Password = &password
			},
			field: "Password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := v.Validate(&req)
			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("got %v, want ValidationErrors", err)
			}
			found := false
			for _, ve := range verrs {
				if ve.Field == tt.field {
					found = true
				}
			}
			if !found {
				t.Errorf("no error reported for field %s: %v", tt.field, verrs)
			}
		})
	}
}

func TestEnumRules(t *testing.T) {
	v := New()

	material := CreateMaterialRequest{
		Title:   "Title",
		Type:    "PODCAST",
		Content: "body",
	}
	if err := v.Validate(&material); err == nil {
		t.Errorf("unknown material type accepted")
	}
	material.Type = models.MaterialEPUB
	if err := v.Validate(&material); err != nil {
		t.Errorf("EPUB rejected: %v", err)
	}

	form := CreateFormRequest{
		Title:   "Consent",
		Type:    "WAIVER",
		Content: "<p>x</p>",
	}
	if err := v.Validate(&form); err == nil {
		t.Errorf("unknown form type accepted")
	}

	timing := models.TriggerTiming("mid_read")
	config := CreateFormConfigRequest{
		MaterialID:    "m1",
		FormID:        "f1",
		TriggerTiming: &timing,
	}
	if err := v.Validate(&config); err == nil {
		t.Errorf("unknown trigger timing accepted")
	}
	valid := models.TimingPreRead
	config.TriggerTiming = &valid
	if err := v.Validate(&config); err != nil {
		t.Errorf("pre_read rejected: %v", err)
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	if got := (ValidationErrors{}).Error(); got != "validation failed" {
		t.Errorf("empty Error() = %q", got)
	}
	one := ValidationErrors{{Field: "Name", Message: "is required"}}
	if got := one.Error(); got != "validation failed: Name is required" {
		t.Errorf("single Error() = %q", got)
	}
	many := ValidationErrors{{Field: "A"}, {Field: "B"}}
	if got := many.Error(); got != "validation failed: 2 field errors" {
		t.Errorf("multi Error() = %q", got)
	}
}
