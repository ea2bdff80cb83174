package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/NJ-LDS/reading-service/internal/models"
	"github.com/NJ-LDS/reading-service/internal/repositories"
	"github.com/NJ-LDS/reading-service/internal/validator"
)

type formConfigService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewFormConfigService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator) FormConfigService {
	return &formConfigService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
	}
}

func (s *formConfigService) Create(ctx context.Context, req *CreateFormConfigRequest) (*models.MaterialFormConfig, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	cfg := &models.MaterialFormConfig{
		MaterialID:    req.MaterialID,
		FormID:        req.FormID,
		TriggerTiming: models.TimingPostRead,
		IsActive:      true,
	}
	if req.TriggerTiming != nil {
		cfg.TriggerTiming = *req.TriggerTiming
	}
	if req.IsActive != nil {
		cfg.IsActive = *req.IsActive
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := s.repo.Material().Exists(ctx, tx, req.MaterialID)
		if err != nil {
			return fmt.Errorf("failed to check material existence: %w", err)
		}
		if !exists {
			return ErrMaterialNotFound
		}
		exists, err = s.repo.Form().Exists(ctx, tx, req.FormID)
		if err != nil {
			return fmt.Errorf("failed to check form existence: %w", err)
		}
		if !exists {
			return ErrFormNotFound
		}

		if err := s.repo.FormConfig().Create(ctx, tx, cfg); err != nil {
			return fmt.Errorf("failed to create form config: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Form config created",
		"config_id", cfg.ID,
		"material_id", cfg.MaterialID,
		"form_id", cfg.FormID,
		"trigger_timing", cfg.TriggerTiming)
	return cfg, nil
}

func (s *formConfigService) Update(ctx context.Context, id uint, req *UpdateFormConfigRequest) (*models.MaterialFormConfig, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var cfg *models.MaterialFormConfig
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		cfg, err = s.repo.FormConfig().GetByID(ctx, tx, id)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrFormConfigNotFound
			}
			return fmt.Errorf("failed to get form config: %w", err)
		}

		if req.TriggerTiming != nil {
			cfg.TriggerTiming = *req.TriggerTiming
		}
		if req.IsActive != nil {
			cfg.IsActive = *req.IsActive
		}

		if err := s.repo.FormConfig().Update(ctx, tx, cfg); err != nil {
			return fmt.Errorf("failed to update form config: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Form config updated",
		"config_id", cfg.ID,
		"trigger_timing", cfg.TriggerTiming,
		"is_active", cfg.IsActive)
	return cfg, nil
}

func (s *formConfigService) Delete(ctx context.Context, id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.repo.FormConfig().GetByID(ctx, tx, id); err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrFormConfigNotFound
			}
			return fmt.Errorf("failed to get form config: %w", err)
		}
		if err := s.repo.FormConfig().Delete(ctx, tx, id); err != nil {
			return fmt.Errorf("failed to delete form config: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Form config deleted", "config_id", id)
	return nil
}

func (s *formConfigService) Resolve(ctx context.Context, materialID string, timing *models.TriggerTiming) ([]*models.MaterialFormConfig, error) {
	exists, err := s.repo.Material().Exists(ctx, nil, materialID)
	if err != nil {
		return nil, fmt.Errorf("failed to check material existence: %w", err)
	}
	if !exists {
		return nil, ErrMaterialNotFound
	}

	configs, err := s.repo.FormConfig().ListActiveByMaterial(ctx, nil, materialID, timing)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve form configs: %w", err)
	}
	return configs, nil
}
