package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/NJ-LDS/reading-service/internal/models"
	"github.com/NJ-LDS/reading-service/internal/repositories"
)

type LogPostgreSQL struct {
	sharedDB
}

func NewLogPostgreSQL(db *gorm.DB) repositories.LogRepository {
	return &LogPostgreSQL{sharedDB{db: db}}
}

func (r *LogPostgreSQL) Create(ctx context.Context, tx *gorm.DB, entry *models.Log) error {
	return r.getDB(tx).WithContext(ctx).Create(entry).Error
}

func (r *LogPostgreSQL) ListAll(ctx context.Context, tx *gorm.DB) ([]*models.Log, error) {
	var entries []*models.Log
	err := r.getDB(tx).WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *LogPostgreSQL) ListByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*models.Log, error) {
	var entries []*models.Log
	err := r.getDB(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *LogPostgreSQL) ListByMaterial(ctx context.Context, tx *gorm.DB, materialID string) ([]*models.Log, error) {
	var entries []*models.Log
	err := r.getDB(tx).WithContext(ctx).
		Where("material_id = ?", materialID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Deletes exist only for the explicit cascade when a user or material is
// removed; no handler exposes them.
func (r *LogPostgreSQL) DeleteByMaterial(ctx context.Context, tx *gorm.DB, materialID string) error {
	return r.getDB(tx).WithContext(ctx).
		Where("material_id = ?", materialID).
		Delete(&models.Log{}).Error
}

func (r *LogPostgreSQL) DeleteByUser(ctx context.Context, tx *gorm.DB, userID string) error {
	return r.getDB(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Log{}).Error
}
