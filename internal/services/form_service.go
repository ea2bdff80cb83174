package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/NJ-LDS/reading-service/internal/models"
	"github.com/NJ-LDS/reading-service/internal/repositories"
	"github.com/NJ-LDS/reading-service/internal/validator"
)

type formService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewFormService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator) FormService {
	return &formService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
	}
}

func (s *formService) Create(ctx context.Context, req *CreateFormRequest) (*models.Form, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	if req.ID != nil && *req.ID != "" {
		id = *req.ID
	}

	form := &models.Form{
		ID:      id,
		Title:   req.Title,
		Type:    req.Type,
		Content: req.Content,
	}
	if len(req.Questions) > 0 {
		form.Questions = datatypes.JSON(req.Questions)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := s.repo.Form().Exists(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("failed to check form existence: %w", err)
		}
		if exists {
			return ErrFormExists
		}
		if err := s.repo.Form().Create(ctx, tx, form); err != nil {
			if repositories.IsDuplicateKeyError(err) {
				return ErrFormExists
			}
			return fmt.Errorf("failed to create form: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Form created", "form_id", form.ID, "type", form.Type)
	return form, nil
}

func (s *formService) GetByID(ctx context.Context, id string) (*models.Form, error) {
	form, err := s.repo.Form().GetByID(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrFormNotFound
		}
		return nil, fmt.Errorf("failed to get form: %w", err)
	}
	return form, nil
}

func (s *formService) List(ctx context.Context) ([]*models.Form, error) {
	forms, err := s.repo.Form().List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}
	return forms, nil
}

func (s *formService) Update(ctx context.Context, id string, req *UpdateFormRequest) (*models.Form, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var form *models.Form
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		form, err = s.repo.Form().GetByID(ctx, tx, id)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrFormNotFound
			}
			return fmt.Errorf("failed to get form: %w", err)
		}

		if req.Title != nil {
			form.Title = *req.Title
		}
		if req.Type != nil {
			form.Type = *req.Type
		}
		if req.Content != nil {
			form.Content = *req.Content
		}
		if req.Questions != nil {
			form.Questions = datatypes.JSON(req.Questions)
		}

		if err := s.repo.Form().Update(ctx, tx, form); err != nil {
			return fmt.Errorf("failed to update form: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Form updated", "form_id", id)
	return form, nil
}

func (s *formService) Delete(ctx context.Context, id string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := s.repo.Form().Exists(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("failed to check form existence: %w", err)
		}
		if !exists {
			return ErrFormNotFound
		}
		if err := s.repo.Form().Delete(ctx, tx, id); err != nil {
			return fmt.Errorf("failed to delete form: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Form deleted", "form_id", id)
	return nil
}
