package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/NJ-LDS/reading-service/internal/models"
	"github.com/NJ-LDS/reading-service/internal/repositories"
	"github.com/NJ-LDS/reading-service/internal/validator"
)

type materialService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewMaterialService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator) MaterialService {
	return &materialService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
	}
}

func (s *materialService) Create(ctx context.Context, req *CreateMaterialRequest) (*models.Material, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	if req.ID != nil && *req.ID != "" {
		id = *req.ID
	}

	material := &models.Material{
		ID:       id,
		Title:    req.Title,
		Author:   "Unknown",
		Type:     req.Type,
		Content:  req.Content,
		CoverURL: req.CoverURL,
	}
	if req.Author != nil {
		material.Author = *req.Author
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := s.repo.Material().Exists(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("failed to check material existence: %w", err)
		}
		if exists {
			return ErrMaterialExists
		}
		if err := s.repo.Material().Create(ctx, tx, material); err != nil {
			if repositories.IsDuplicateKeyError(err) {
				return ErrMaterialExists
			}
			return fmt.Errorf("failed to create material: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Material created", "material_id", material.ID, "type", material.Type)
	return s.withProjection(ctx, material)
}

func (s *materialService) GetByID(ctx context.Context, id string) (*models.Material, error) {
	material, err := s.repo.Material().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}
	return s.withProjection(ctx, material)
}

func (s *materialService) List(ctx context.Context) ([]*models.Material, error) {
	materials, err := s.repo.Material().List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	for _, material := range materials {
		if _, err := s.withProjection(ctx, material); err != nil {
			return nil, err
		}
	}
	return materials, nil
}

func (s *materialService) Update(ctx context.Context, id string, req *UpdateMaterialRequest) (*models.Material, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var material *models.Material
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		material, err = s.repo.Material().GetByID(ctx, tx, id)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrMaterialNotFound
			}
			return fmt.Errorf("failed to get material: %w", err)
		}

		if req.Title != nil {
			material.Title = *req.Title
		}
		if req.Author != nil {
			material.Author = *req.Author
		}
		if req.Type != nil {
			material.Type = *req.Type
		}
		if req.Content != nil {
			material.Content = *req.Content
		}
		if req.CoverURL != nil {
			material.CoverURL = req.CoverURL
		}

		if err := s.repo.Material().Update(ctx, tx, material); err != nil {
			return fmt.Errorf("failed to update material: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Material updated", "material_id", id)
	return s.withProjection(ctx, material)
}

// Delete removes the material and all dependent rows in one transaction,
// dependents first.
func (s *materialService) Delete(ctx context.Context, id string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := s.repo.Material().Exists(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("failed to check material existence: %w", err)
		}
		if !exists {
			return ErrMaterialNotFound
		}

		if err := s.repo.FormConfig().DeleteByMaterial(ctx, tx, id); err != nil {
			return fmt.Errorf("failed to delete material form configs: %w", err)
		}
		if err := s.repo.Log().DeleteByMaterial(ctx, tx, id); err != nil {
			return fmt.Errorf("failed to delete material logs: %w", err)
		}
		if err := s.repo.Response().DeleteByMaterial(ctx, tx, id); err != nil {
			return fmt.Errorf("failed to delete material responses: %w", err)
		}
		if err := s.repo.Assignment().DeleteByMaterial(ctx, tx, id); err != nil {
			return fmt.Errorf("failed to delete material assignments: %w", err)
		}
		if err := s.repo.Material().Delete(ctx, tx, id); err != nil {
			return fmt.Errorf("failed to delete material: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Material deleted", "material_id", id)
	return nil
}

// withProjection fills the computed assignment fields with explicit aggregate
// queries.
func (s *materialService) withProjection(ctx context.Context, material *models.Material) (*models.Material, error) {
	stats, err := s.repo.Assignment().StatsByMaterial(ctx, nil, material.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assignment stats: %w", err)
	}
	material.AssignedToUserIDs = stats.UserIDs
	material.AssignedCount = stats.AssignedCount
	material.ReadCount = stats.ReadCount
	return material, nil
}
