package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/NJ-LDS/reading-service/internal/models"
	"github.com/NJ-LDS/reading-service/internal/repositories"
	"github.com/NJ-LDS/reading-service/internal/validator"
)

type logService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewLogService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator) LogService {
	return &logService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
	}
}

// Record appends one audit entry. Details is stored as-is; callers decide what
// context (client IP, user agent, timings) belongs in it.
func (s *logService) Record(ctx context.Context, req *CreateLogRequest) (*models.Log, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	entry := &models.Log{
		UserID:     req.UserID,
		Action:     req.Action,
		MaterialID: req.MaterialID,
	}
	if len(req.Details) > 0 {
		entry.Details = datatypes.JSON(req.Details)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := s.repo.User().Exists(ctx, tx, req.UserID)
		if err != nil {
			return fmt.Errorf("failed to check user existence: %w", err)
		}
		if !exists {
			return ErrUserNotFound
		}
		if err := s.repo.Log().Create(ctx, tx, entry); err != nil {
			return fmt.Errorf("failed to create log entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *logService) ListAll(ctx context.Context) ([]*models.Log, error) {
	entries, err := s.repo.Log().ListAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	return entries, nil
}

func (s *logService) ListByUser(ctx context.Context, userID string) ([]*models.Log, error) {
	entries, err := s.repo.Log().ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	return entries, nil
}

func (s *logService) ListByMaterial(ctx context.Context, materialID string) ([]*models.Log, error) {
	entries, err := s.repo.Log().ListByMaterial(ctx, nil, materialID)
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	return entries, nil
}
