package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/NJ-LDS/reading-service/internal/models"
)

// ValidationError describes one failed field rule.
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

// Validator wraps go-playground/validator with the platform's domain rules.
type Validator struct {
	validate *validator.Validate
}

var phonePattern = regexp.MustCompile(`^\+?[0-9]{5,20}$`)

func New() *Validator {
	validate := validator.New()

	v := &Validator{validate: validate}
	v.registerDomainRules()

	return v
}

func (v *Validator) registerDomainRules() {
	_ = v.validate.RegisterValidation("phone_number", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	_ = v.validate.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		switch models.UserRole(fl.Field().String()) {
		case models.RoleParticipant, models.RoleAdmin:
			return true
		}
		return false
	})

	_ = v.validate.RegisterValidation("material_type", func(fl validator.FieldLevel) bool {
		switch models.MaterialType(fl.Field().String()) {
		case models.MaterialText, models.MaterialVideo, models.MaterialHTML,
			models.MaterialAudio, models.MaterialEPUB:
			return true
		}
		return false
	})

	_ = v.validate.RegisterValidation("form_type", func(fl validator.FieldLevel) bool {
		switch models.FormType(fl.Field().String()) {
		case models.FormConsent, models.FormQuestionnaire:
			return true
		}
		return false
	})

	_ = v.validate.RegisterValidation("trigger_timing", func(fl validator.FieldLevel) bool {
		switch models.TriggerTiming(fl.Field().String()) {
		case models.TimingPreRead, models.TimingPostRead:
			return true
		}
		return false
	})
}

// Validate checks s against its struct tags and returns nil or a
// ValidationErrors value usable both as error and as response detail.
func (v *Validator) Validate(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Field: "", Message: err.Error()}}
	}

	out := make(ValidationErrors, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Message: messageFor(fe),
			Value:   fe.Value(),
			Rule:    fe.Tag(),
		})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "phone_number":
		return "must be a valid phone number"
	case "user_role":
		return "must be one of PARTICIPANT, ADMIN"
	case "material_type":
		return "must be one of TEXT, VIDEO, HTML, AUDIO, EPUB"
	case "form_type":
		return "must be one of CONSENT, QUESTIONNAIRE"
	case "trigger_timing":
		return "must be one of pre_read, post_read"
	default:
		return fmt.Sprintf("failed rule %q", fe.Tag())
	}
}
