package services

import (
	"errors"

	"github.com/NJ-LDS/reading-service/internal/validator"
)

// ValidationErrors is surfaced to handlers for 400 responses with field
// details.
type ValidationErrors = validator.ValidationErrors

var (
	// Not found
	ErrUserNotFound       = errors.New("user not found")
	ErrMaterialNotFound   = errors.New("material not found")
	ErrFormNotFound       = errors.New("form not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrFormConfigNotFound = errors.New("form config not found")
	ErrResponseNotFound   = errors.New("response not found")

	// Conflicts
	ErrUserExists     = errors.New("user already exists")
	ErrMaterialExists = errors.New("material already exists")
	ErrFormExists     = errors.New("form already exists")

	// Auth
	ErrInvalidCredentials = errors.New("invalid credentials")
)
