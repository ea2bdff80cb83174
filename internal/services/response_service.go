package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/NJ-LDS/reading-service/internal/models"
	"github.com/NJ-LDS/reading-service/internal/repositories"
	"github.com/NJ-LDS/reading-service/internal/validator"
)

type responseService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewResponseService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator) ResponseService {
	return &responseService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
	}
}

// Submit stores the answer set unconditionally; resubmissions for the same
// (user, material, form) triple become separate history entries. Answers are
// opaque here, never checked against the form's question list.
func (s *responseService) Submit(ctx context.Context, req *SubmitResponseRequest) (*models.UserResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	response := &models.UserResponse{
		UserID:          req.UserID,
		MaterialID:      req.MaterialID,
		FormID:          req.FormID,
		Answers:         datatypes.JSON(req.Answers),
		DurationSeconds: req.DurationSeconds,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := s.repo.User().Exists(ctx, tx, req.UserID)
		if err != nil {
			return fmt.Errorf("failed to check user existence: %w", err)
		}
		if !exists {
			return ErrUserNotFound
		}
		exists, err = s.repo.Material().Exists(ctx, tx, req.MaterialID)
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

		if err := s.repo.Response().Create(ctx, tx, response); err != nil {
			return fmt.Errorf("failed to create response: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Response submitted",
		"response_id", response.ID,
		"user_id", req.UserID,
		"material_id", req.MaterialID,
		"form_id", req.FormID)
	return response, nil
}

func (s *responseService) ListByUser(ctx context.Context, userID string) ([]*models.UserResponse, error) {
	responses, err := s.repo.Response().ListByUser(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	return responses, nil
}

func (s *responseService) ListByMaterial(ctx context.Context, materialID string) ([]*models.UserResponse, error) {
	responses, err := s.repo.Response().ListByMaterial(ctx, nil, materialID)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	return responses, nil
}

func (s *responseService) GetAll(ctx context.Context) ([]*ResponseDetail, error) {
	responses, err := s.repo.Response().ListAllWithRelations(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list responses: %w", err)
	}
	return enrichAll(responses), nil
}

func (s *responseService) GetByID(ctx context.Context, id uint) (*ResponseDetail, error) {
	response, err := s.repo.Response().GetByIDWithRelations(ctx, nil, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrResponseNotFound
		}
		return nil, fmt.Errorf("failed to get response: %w", err)
	}
	return enrich(response), nil
}

func (s *responseService) Update(ctx context.Context, id uint, req *UpdateResponseRequest) (*ResponseDetail, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		response, err := s.repo.Response().GetByID(ctx, tx, id)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrResponseNotFound
			}
			return fmt.Errorf("failed to get response: %w", err)
		}

		if req.Answers != nil {
			response.Answers = datatypes.JSON(req.Answers)
		}
		if req.DurationSeconds != nil {
			response.DurationSeconds = req.DurationSeconds
		}

		if err := s.repo.Response().Update(ctx, tx, response); err != nil {
			return fmt.Errorf("failed to update response: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Response updated", "response_id", id)
	return s.GetByID(ctx, id)
}

func (s *responseService) Delete(ctx context.Context, id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.repo.Response().GetByID(ctx, tx, id); err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrResponseNotFound
			}
			return fmt.Errorf("failed to get response: %w", err)
		}
		if err := s.repo.Response().Delete(ctx, tx, id); err != nil {
			return fmt.Errorf("failed to delete response: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Response deleted", "response_id", id)
	return nil
}

// Export builds an xlsx workbook of the selected responses (all of them when
// ids is empty), one row per submission with enriched display columns.
func (s *responseService) Export(ctx context.Context, ids []uint) (*excelize.File, error) {
	var responses []*models.UserResponse
	var err error
	if len(ids) == 0 {
		responses, err = s.repo.Response().ListAllWithRelations(ctx, nil)
	} else {
		responses, err = s.repo.Response().ListByIDsWithRelations(ctx, nil, ids)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load responses for export: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Responses"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headers := []interface{}{"ID", "User", "Phone", "Material", "Form", "Answers", "Duration (s)", "Submitted At"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	for i, response := range responses {
		detail := enrich(response)
		duration := ""
		if response.DurationSeconds != nil {
			duration = fmt.Sprintf("%d", *response.DurationSeconds)
		}
		row := []interface{}{
			response.ID,
			detail.UserName,
			response.UserID,
			detail.MaterialTitle,
			detail.FormTitle,
			string(response.Answers),
			duration,
			response.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row: %w", err)
		}
	}

	s.logger.Info("Responses exported", "count", len(responses))
	return f, nil
}

func enrich(response *models.UserResponse) *ResponseDetail {
	detail := &ResponseDetail{UserResponse: response}
	if response.User != nil {
		detail.UserName = response.User.Name
	}
	if response.Material != nil {
		detail.MaterialTitle = response.Material.Title
	}
	if response.Form != nil {
		detail.FormTitle = response.Form.Title
	}
	return detail
}

func enrichAll(responses []*models.UserResponse) []*ResponseDetail {
	details := make([]*ResponseDetail, 0, len(responses))
	for _, response := range responses {
		details = append(details, enrich(response))
	}
	return details
}
