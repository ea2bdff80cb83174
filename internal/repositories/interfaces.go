package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/NJ-LDS/reading-service/internal/models"
)

// Every method accepts an optional transaction handle; implementations fall
// back to their own connection when tx is nil.

type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByPhone(ctx context.Context, tx *gorm.DB, phone string) (*models.User, error)
	List(ctx context.Context, tx *gorm.DB) ([]*models.User, error)
	Update(ctx context.Context, tx *gorm.DB, user *models.User) error
	Delete(ctx context.Context, tx *gorm.DB, phone string) error
	Exists(ctx context.Context, tx *gorm.DB, phone string) (bool, error)
}

type MaterialRepository interface {
	Create(ctx context.Context, tx *gorm.DB, material *models.Material) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Material, error)
	List(ctx context.Context, tx *gorm.DB) ([]*models.Material, error)
	Update(ctx context.Context, tx *gorm.DB, material *models.Material) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	Exists(ctx context.Context, tx *gorm.DB, id string) (bool, error)
}

type FormRepository interface {
	Create(ctx context.Context, tx *gorm.DB, form *models.Form) error
	GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Form, error)
	List(ctx context.Context, tx *gorm.DB) ([]*models.Form, error)
	Update(ctx context.Context, tx *gorm.DB, form *models.Form) error
	Delete(ctx context.Context, tx *gorm.DB, id string) error
	Exists(ctx context.Context, tx *gorm.DB, id string) (bool, error)
}

// AssignmentStats aggregates assignment counters for one material, computed
// with explicit queries rather than relationship traversal.
type AssignmentStats struct {
	UserIDs       []string
	AssignedCount int64
	ReadCount     int64
}

type AssignmentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, assignment *models.MaterialAssignment) error
	Update(ctx context.Context, tx *gorm.DB, assignment *models.MaterialAssignment) error
	GetByMaterialAndUser(ctx context.Context, tx *gorm.DB, materialID, userID string) (*models.MaterialAssignment, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*models.MaterialAssignment, error)
	StatsByMaterial(ctx context.Context, tx *gorm.DB, materialID string) (*AssignmentStats, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID string) (int64, error)
	DeleteByMaterialAndUser(ctx context.Context, tx *gorm.DB, materialID, userID string) (int64, error)
	DeleteByMaterial(ctx context.Context, tx *gorm.DB, materialID string) error
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID string) error
}

type FormConfigRepository interface {
	Create(ctx context.Context, tx *gorm.DB, cfg *models.MaterialFormConfig) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.MaterialFormConfig, error)
	Update(ctx context.Context, tx *gorm.DB, cfg *models.MaterialFormConfig) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	// ListActiveByMaterial returns active configs in insertion order, each with
	// its Form preloaded; timing narrows the result when non-nil.
	ListActiveByMaterial(ctx context.Context, tx *gorm.DB, materialID string, timing *models.TriggerTiming) ([]*models.MaterialFormConfig, error)
	DeleteByMaterial(ctx context.Context, tx *gorm.DB, materialID string) error
}

type ResponseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, response *models.UserResponse) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.UserResponse, error)
	GetByIDWithRelations(ctx context.Context, tx *gorm.DB, id uint) (*models.UserResponse, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*models.UserResponse, error)
	ListByMaterial(ctx context.Context, tx *gorm.DB, materialID string) ([]*models.UserResponse, error)
	ListAllWithRelations(ctx context.Context, tx *gorm.DB) ([]*models.UserResponse, error)
	ListByIDsWithRelations(ctx context.Context, tx *gorm.DB, ids []uint) ([]*models.UserResponse, error)
	Update(ctx context.Context, tx *gorm.DB, response *models.UserResponse) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
	DeleteByMaterial(ctx context.Context, tx *gorm.DB, materialID string) error
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID string) error
}

type LogRepository interface {
	Create(ctx context.Context, tx *gorm.DB, entry *models.Log) error
	ListAll(ctx context.Context, tx *gorm.DB) ([]*models.Log, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*models.Log, error)
	ListByMaterial(ctx context.Context, tx *gorm.DB, materialID string) ([]*models.Log, error)
	DeleteByMaterial(ctx context.Context, tx *gorm.DB, materialID string) error
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID string) error
}

// Repository aggregates all entity repositories over one store handle.
type Repository interface {
	User() UserRepository
	Material() MaterialRepository
	Form() FormRepository
	Assignment() AssignmentRepository
	FormConfig() FormConfigRepository
	Response() ResponseRepository
	Log() LogRepository

	Ping(ctx context.Context) error
	Close() error
}

// IsNotFoundError reports whether err is a record-not-found from the store.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicateKeyError reports a unique-constraint violation. Requires the
// gorm connection to be opened with TranslateError.
func IsDuplicateKeyError(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
