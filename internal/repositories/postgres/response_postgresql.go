package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/NJ-LDS/reading-service/internal/models"
	"github.com/NJ-LDS/reading-service/internal/repositories"
)

type ResponsePostgreSQL struct {
	sharedDB
}

func NewResponsePostgreSQL(db *gorm.DB) repositories.ResponseRepository {
	return &ResponsePostgreSQL{sharedDB{db: db}}
}

func (r *ResponsePostgreSQL) Create(ctx context.Context, tx *gorm.DB, response *models.UserResponse) error {
	return r.getDB(tx).WithContext(ctx).Create(response).Error
}

func (r *ResponsePostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.UserResponse, error) {
	var response models.UserResponse
	if err := r.getDB(tx).WithContext(ctx).First(&response, id).Error; err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *ResponsePostgreSQL) GetByIDWithRelations(ctx context.Context, tx *gorm.DB, id uint) (*models.UserResponse, error) {
	var response models.UserResponse
	err := r.getDB(tx).WithContext(ctx).
		Preload("User").
		Preload("Material").
		Preload("Form").
		First(&response, id).Error
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *ResponsePostgreSQL) ListByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*models.UserResponse, error) {
	var responses []*models.UserResponse
	err := r.getDB(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *ResponsePostgreSQL) ListByMaterial(ctx context.Context, tx *gorm.DB, materialID string) ([]*models.UserResponse, error) {
	var responses []*models.UserResponse
	err := r.getDB(tx).WithContext(ctx).
		Where("material_id = ?", materialID).
		Order("created_at DESC, id DESC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *ResponsePostgreSQL) ListAllWithRelations(ctx context.Context, tx *gorm.DB) ([]*models.UserResponse, error) {
	var responses []*models.UserResponse
	err := r.getDB(tx).WithContext(ctx).
		Preload("User").
		Preload("Material").
		Preload("Form").
		Order("created_at DESC, id DESC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *ResponsePostgreSQL) ListByIDsWithRelations(ctx context.Context, tx *gorm.DB, ids []uint) ([]*models.UserResponse, error) {
	var responses []*models.UserResponse
	err := r.getDB(tx).WithContext(ctx).
		Where("id IN ?", ids).
		Preload("User").
		Preload("Material").
		Preload("Form").
		Order("created_at DESC, id DESC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *ResponsePostgreSQL) Update(ctx context.Context, tx *gorm.DB, response *models.UserResponse) error {
	return r.getDB(tx).WithContext(ctx).Save(response).Error
}

func (r *ResponsePostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return r.getDB(tx).WithContext(ctx).Delete(&models.UserResponse{}, id).Error
}

func (r *ResponsePostgreSQL) DeleteByMaterial(ctx context.Context, tx *gorm.DB, materialID string) error {
	return r.getDB(tx).WithContext(ctx).
		Where("material_id = ?", materialID).
		Delete(&models.UserResponse{}).Error
}

func (r *ResponsePostgreSQL) DeleteByUser(ctx context.Context, tx *gorm.DB, userID string) error {
	return r.getDB(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.UserResponse{}).Error
}
