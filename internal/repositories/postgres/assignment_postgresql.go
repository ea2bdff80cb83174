package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/NJ-LDS/reading-service/internal/models"
	"github.com/NJ-LDS/reading-service/internal/repositories"
)

type AssignmentPostgreSQL struct {
	sharedDB
}

func NewAssignmentPostgreSQL(db *gorm.DB) repositories.AssignmentRepository {
	return &AssignmentPostgreSQL{sharedDB{db: db}}
}

func (r *AssignmentPostgreSQL) Create(ctx context.Context, tx *gorm.DB, assignment *models.MaterialAssignment) error {
	return r.getDB(tx).WithContext(ctx).Create(assignment).Error
}

func (r *AssignmentPostgreSQL) Update(ctx context.Context, tx *gorm.DB, assignment *models.MaterialAssignment) error {
	return r.getDB(tx).WithContext(ctx).Save(assignment).Error
}

func (r *AssignmentPostgreSQL) GetByMaterialAndUser(ctx context.Context, tx *gorm.DB, materialID, userID string) (*models.MaterialAssignment, error) {
	var assignment models.MaterialAssignment
	err := r.getDB(tx).WithContext(ctx).
		Where("material_id = ? AND user_id = ?", materialID, userID).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *AssignmentPostgreSQL) ListByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*models.MaterialAssignment, error) {
	var assignments []*models.MaterialAssignment
	err := r.getDB(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("assigned_at").
		Preload("Material").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *AssignmentPostgreSQL) StatsByMaterial(ctx context.Context, tx *gorm.DB, materialID string) (*repositories.AssignmentStats, error) {
	db := r.getDB(tx).WithContext(ctx)
	stats := &repositories.AssignmentStats{UserIDs: []string{}}

	err := db.Model(&models.MaterialAssignment{}).
		Where("material_id = ?", materialID).
		Order("assigned_at").
		Pluck("user_id", &stats.UserIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned users: %w", err)
	}
	stats.AssignedCount = int64(len(stats.UserIDs))

	err = db.Model(&models.MaterialAssignment{}).
		Where("material_id = ? AND read_status = ?", materialID, true).
		Count(&stats.ReadCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count read assignments: %w", err)
	}
	return stats, nil
}

func (r *AssignmentPostgreSQL) CountByUser(ctx context.Context, tx *gorm.DB, userID string) (int64, error) {
	var count int64
	err := r.getDB(tx).WithContext(ctx).
		Model(&models.MaterialAssignment{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// DeleteByMaterialAndUser returns the number of rows removed so callers can
// distinguish a missing assignment without a prior lookup.
func (r *AssignmentPostgreSQL) DeleteByMaterialAndUser(ctx context.Context, tx *gorm.DB, materialID, userID string) (int64, error) {
	result := r.getDB(tx).WithContext(ctx).
		Where("material_id = ? AND user_id = ?", materialID, userID).
		Delete(&models.MaterialAssignment{})
	return result.RowsAffected, result.Error
}

func (r *AssignmentPostgreSQL) DeleteByMaterial(ctx context.Context, tx *gorm.DB, materialID string) error {
	return r.getDB(tx).WithContext(ctx).
		Where("material_id = ?", materialID).
		Delete(&models.MaterialAssignment{}).Error
}

func (r *AssignmentPostgreSQL) DeleteByUser(ctx context.Context, tx *gorm.DB, userID string) error {
	return r.getDB(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.MaterialAssignment{}).Error
}
