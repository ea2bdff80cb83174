package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/NJ-LDS/reading-service/internal/models"
	"github.com/NJ-LDS/reading-service/internal/repositories"
)

type FormConfigPostgreSQL struct {
	sharedDB
}

func NewFormConfigPostgreSQL(db *gorm.DB) repositories.FormConfigRepository {
	return &FormConfigPostgreSQL{sharedDB{db: db}}
}

func (r *FormConfigPostgreSQL) Create(ctx context.Context, tx *gorm.DB, cfg *models.MaterialFormConfig) error {
	return r.getDB(tx).WithContext(ctx).Create(cfg).Error
}

func (r *FormConfigPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.MaterialFormConfig, error) {
	var cfg models.MaterialFormConfig
	if err := r.getDB(tx).WithContext(ctx).First(&cfg, id).Error; err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *FormConfigPostgreSQL) Update(ctx context.Context, tx *gorm.DB, cfg *models.MaterialFormConfig) error {
	return r.getDB(tx).WithContext(ctx).Save(cfg).Error
}

func (r *FormConfigPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	return r.getDB(tx).WithContext(ctx).Delete(&models.MaterialFormConfig{}, id).Error
}

// ListActiveByMaterial keeps insertion order (id asc); callers must not read
// any priority into configs sharing a timing.
func (r *FormConfigPostgreSQL) ListActiveByMaterial(ctx context.Context, tx *gorm.DB, materialID string, timing *models.TriggerTiming) ([]*models.MaterialFormConfig, error) {
	query := r.getDB(tx).WithContext(ctx).
		Where("material_id = ? AND is_active = ?", materialID, true)
	if timing != nil {
		query = query.Where("trigger_timing = ?", *timing)
	}

	var configs []*models.MaterialFormConfig
	if err := query.Order("id").Preload("Form").Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}

func (r *FormConfigPostgreSQL) DeleteByMaterial(ctx context.Context, tx *gorm.DB, materialID string) error {
	return r.getDB(tx).WithContext(ctx).
		Where("material_id = ?", materialID).
		Delete(&models.MaterialFormConfig{}).Error
}
