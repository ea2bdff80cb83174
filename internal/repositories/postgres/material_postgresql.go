package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/NJ-LDS/reading-service/internal/models"
	"github.com/NJ-LDS/reading-service/internal/repositories"
)

type MaterialPostgreSQL struct {
	sharedDB
}

func NewMaterialPostgreSQL(db *gorm.DB) repositories.MaterialRepository {
	return &MaterialPostgreSQL{sharedDB{db: db}}
}

func (r *MaterialPostgreSQL) Create(ctx context.Context, tx *gorm.DB, material *models.Material) error {
	return r.getDB(tx).WithContext(ctx).Create(material).Error
}

func (r *MaterialPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Material, error) {
	var material models.Material
	if err := r.getDB(tx).WithContext(ctx).First(&material, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *MaterialPostgreSQL) List(ctx context.Context, tx *gorm.DB) ([]*models.Material, error) {
	var materials []*models.Material
	if err := r.getDB(tx).WithContext(ctx).Order("created_at").Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *MaterialPostgreSQL) Update(ctx context.Context, tx *gorm.DB, material *models.Material) error {
	return r.getDB(tx).WithContext(ctx).Save(material).Error
}

func (r *MaterialPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	return r.getDB(tx).WithContext(ctx).Delete(&models.Material{}, "id = ?", id).Error
}

func (r *MaterialPostgreSQL) Exists(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	var count int64
	err := r.getDB(tx).WithContext(ctx).
		Model(&models.Material{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
