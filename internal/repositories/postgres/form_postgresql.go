package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/NJ-LDS/reading-service/internal/models"
	"github.com/NJ-LDS/reading-service/internal/repositories"
)

type FormPostgreSQL struct {
	sharedDB
}

func NewFormPostgreSQL(db *gorm.DB) repositories.FormRepository {
	return &FormPostgreSQL{sharedDB{db: db}}
}

func (r *FormPostgreSQL) Create(ctx context.Context, tx *gorm.DB, form *models.Form) error {
	return r.getDB(tx).WithContext(ctx).Create(form).Error
}

func (r *FormPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id string) (*models.Form, error) {
	var form models.Form
	if err := r.getDB(tx).WithContext(ctx).First(&form, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *FormPostgreSQL) List(ctx context.Context, tx *gorm.DB) ([]*models.Form, error) {
	var forms []*models.Form
	if err := r.getDB(tx).WithContext(ctx).Order("created_at").Find(&forms).Error; err != nil {
		return nil, err
	}
	return forms, nil
}

func (r *FormPostgreSQL) Update(ctx context.Context, tx *gorm.DB, form *models.Form) error {
	return r.getDB(tx).WithContext(ctx).Save(form).Error
}

func (r *FormPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id string) error {
	return r.getDB(tx).WithContext(ctx).Delete(&models.Form{}, "id = ?", id).Error
}

func (r *FormPostgreSQL) Exists(ctx context.Context, tx *gorm.DB, id string) (bool, error) {
	var count int64
	err := r.getDB(tx).WithContext(ctx).
		Model(&models.Form{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
