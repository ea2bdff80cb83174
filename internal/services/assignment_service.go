package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/NJ-LDS/reading-service/internal/models"
	"github.com/NJ-LDS/reading-service/internal/repositories"
)

type assignmentService struct {
	repo   repositories.Repository
	db     *gorm.DB
	logger *slog.Logger
}

func NewAssignmentService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger) AssignmentService {
	return &assignmentService{
		repo:   repo,
		db:     db,
		logger: logger,
	}
}

func (s *assignmentService) Assign(ctx context.Context, materialID string, userIDs []string) (*models.Material, error) {
	var material *models.Material
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		material, err = s.repo.Material().GetByID(ctx, tx, materialID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrMaterialNotFound
			}
			return fmt.Errorf("failed to get material: %w", err)
		}

		for _, userID := range userIDs {
			exists, err := s.repo.User().Exists(ctx, tx, userID)
			if err != nil {
				return fmt.Errorf("failed to check user existence: %w", err)
			}
			if !exists {
				continue
			}

			_, err = s.repo.Assignment().GetByMaterialAndUser(ctx, tx, materialID, userID)
			if err == nil {
				continue
			}
			if !repositories.IsNotFoundError(err) {
				return fmt.Errorf("failed to check assignment: %w", err)
			}

			assignment := &models.MaterialAssignment{
				MaterialID: materialID,
				UserID:     userID,
				ReadStatus: false,
			}
			if err := s.repo.Assignment().Create(ctx, tx, assignment); err != nil {
				// A concurrent writer won the (material, user) race; the end
				// state is the one we wanted.
				if repositories.IsDuplicateKeyError(err) {
					continue
				}
				return fmt.Errorf("failed to create assignment: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Material assigned", "material_id", materialID, "user_count", len(userIDs))

	stats, err := s.repo.Assignment().StatsByMaterial(ctx, nil, materialID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignment stats: %w", err)
	}
	material.AssignedToUserIDs = stats.UserIDs
	material.AssignedCount = stats.AssignedCount
	material.ReadCount = stats.ReadCount
	return material, nil
}

func (s *assignmentService) Unassign(ctx context.Context, materialID, userID string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		removed, err := s.repo.Assignment().DeleteByMaterialAndUser(ctx, tx, materialID, userID)
		if err != nil {
			return fmt.Errorf("failed to delete assignment: %w", err)
		}
		if removed == 0 {
			return ErrAssignmentNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Material unassigned", "material_id", materialID, "user_id", userID)
	return nil
}

func (s *assignmentService) MarkRead(ctx context.Context, materialID, userID string) (*MarkReadResult, error) {
	result := &MarkReadResult{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := s.repo.Material().Exists(ctx, tx, materialID)
		if err != nil {
			return fmt.Errorf("failed to check material existence: %w", err)
		}
		if !exists {
			return ErrMaterialNotFound
		}
		exists, err = s.repo.User().Exists(ctx, tx, userID)
		if err != nil {
			return fmt.Errorf("failed to check user existence: %w", err)
		}
		if !exists {
			return ErrUserNotFound
		}

		assignment, err := s.repo.Assignment().GetByMaterialAndUser(ctx, tx, materialID, userID)
		switch {
		case err == nil:
			assignment.ReadStatus = true
			if err := s.repo.Assignment().Update(ctx, tx, assignment); err != nil {
				return fmt.Errorf("failed to update assignment: %w", err)
			}
		case repositories.IsNotFoundError(err):
			// Auto-assign-on-read: the read event itself establishes the
			// tracking relationship.
			assignment = &models.MaterialAssignment{
				MaterialID: materialID,
				UserID:     userID,
				ReadStatus: true,
			}
			if err := s.repo.Assignment().Create(ctx, tx, assignment); err != nil {
				if repositories.IsDuplicateKeyError(err) {
					// Lost the race to a concurrent writer; flip the existing
					// row instead.
					assignment, err = s.repo.Assignment().GetByMaterialAndUser(ctx, tx, materialID, userID)
					if err != nil {
						return fmt.Errorf("failed to reload assignment: %w", err)
					}
					assignment.ReadStatus = true
					if err := s.repo.Assignment().Update(ctx, tx, assignment); err != nil {
						return fmt.Errorf("failed to update assignment: %w", err)
					}
				} else {
					return fmt.Errorf("failed to create assignment: %w", err)
				}
			} else {
				result.AutoAssigned = true
			}
		default:
			return fmt.Errorf("failed to check assignment: %w", err)
		}

		result.MaterialAssignment = assignment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Material marked read",
		"material_id", materialID,
		"user_id", userID,
		"auto_assigned", result.AutoAssigned)
	return result, nil
}

func (s *assignmentService) MarkUnread(ctx context.Context, materialID, userID string) (*models.MaterialAssignment, error) {
	var assignment *models.MaterialAssignment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		assignment, err = s.repo.Assignment().GetByMaterialAndUser(ctx, tx, materialID, userID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrAssignmentNotFound
			}
			return fmt.Errorf("failed to get assignment: %w", err)
		}

		assignment.ReadStatus = false
		if err := s.repo.Assignment().Update(ctx, tx, assignment); err != nil {
			return fmt.Errorf("failed to update assignment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Material marked unread", "material_id", materialID, "user_id", userID)
	return assignment, nil
}

func (s *assignmentService) ListForUser(ctx context.Context, userID string) ([]*AssignedMaterial, error) {
	exists, err := s.repo.User().Exists(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	assignments, err := s.repo.Assignment().ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	materials := make([]*AssignedMaterial, 0, len(assignments))
	for _, assignment := range assignments {
		if assignment.Material == nil {
			continue
		}
		stats, err := s.repo.Assignment().StatsByMaterial(ctx, nil, assignment.MaterialID)
		if err != nil {
			return nil, fmt.Errorf("failed to load assignment stats: %w", err)
		}
		material := assignment.Material
		material.AssignedToUserIDs = stats.UserIDs
		material.AssignedCount = stats.AssignedCount
		material.ReadCount = stats.ReadCount

		materials = append(materials, &AssignedMaterial{
			Material:   material,
			ReadStatus: assignment.ReadStatus,
		})
	}
	return materials, nil
}
