package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/NJ-LDS/reading-service/internal/models"
	"github.com/NJ-LDS/reading-service/internal/repositories"
	"github.com/NJ-LDS/reading-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator

	// allowLegacyPasswords keeps the plaintext-credential fallback open for
	// stores migrated from the pre-hashing era. Configuration decision, not
	// hardcoded.
	allowLegacyPasswords bool
}

func NewUserService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, allowLegacyPasswords bool) UserService {
	return &userService{
		repo:                 repo,
		db:                   db,
		logger:               logger,
		validator:            validator,
		allowLegacyPasswords: allowLegacyPasswords,
	}
}

func (s *userService) Create(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.User().Exists(ctx, nil, req.PhoneNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	user := &models.User{
		PhoneNumber: req.PhoneNumber,
		Name:        req.Name,
		Email:       req.Email,
		Role:        req.Role,
		Group:       req.Group,
		Age:         req.Age,
		Gender:      req.Gender,
		Education:   req.Education,
		Income:      req.Income,
		Occupation:  req.Occupation,
	}

	if req.Password != nil {
		hashed, err := hashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = &hashed
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.User().Create(ctx, tx, user); err != nil {
			if repositories.IsDuplicateKeyError(err) {
				return ErrUserExists
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User created", "phone_number", user.PhoneNumber, "role", user.Role)
	return user, nil
}

func (s *userService) GetByPhone(ctx context.Context, phone string) (*models.User, error) {
	user, err := s.repo.User().GetByPhone(ctx, nil, phone)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	count, err := s.repo.Assignment().CountByUser(ctx, nil, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to count assignments: %w", err)
	}
	user.AssignedMaterialsCount = count

	return user, nil
}

func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.repo.User().List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	for _, user := range users {
		count, err := s.repo.Assignment().CountByUser(ctx, nil, user.PhoneNumber)
		if err != nil {
			return nil, fmt.Errorf("failed to count assignments: %w", err)
		}
		user.AssignedMaterialsCount = count
	}

	return users, nil
}

func (s *userService) Update(ctx context.Context, phone string, req *UpdateUserRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var user *models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = s.repo.User().GetByPhone(ctx, tx, phone)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to get user: %w", err)
		}

		if req.Name != nil {
			user.Name = *req.Name
		}
		if req.Email != nil {
			user.Email = req.Email
		}
		if req.Role != nil {
			user.Role = *req.Role
		}
		if req.Group != nil {
			user.Group = req.Group
		}
		if req.Age != nil {
			user.Age = req.Age
		}
		if req.Gender != nil {
			user.Gender = req.Gender
		}
		if req.Education != nil {
			user.Education = req.Education
		}
		if req.Income != nil {
			user.Income = req.Income
		}
		if req.Occupation != nil {
			user.Occupation = req.Occupation
		}
		if req.Password != nil {
			hashed, err := hashPassword(*req.Password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			user.Password = &hashed
		}

		if err := s.repo.User().Update(ctx, tx, user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User updated", "phone_number", phone)
	return user, nil
}

// Delete removes the user and, first, everything referencing it. Ordering is
// explicit rather than delegated to DB cascades so logs and assignments are
// always gone before the user row.
func (s *userService) Delete(ctx context.Context, phone string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		exists, err := s.repo.User().Exists(ctx, tx, phone)
		if err != nil {
			return fmt.Errorf("failed to check user existence: %w", err)
		}
		if !exists {
			return ErrUserNotFound
		}

		if err := s.repo.Log().DeleteByUser(ctx, tx, phone); err != nil {
			return fmt.Errorf("failed to delete user logs: %w", err)
		}
		if err := s.repo.Assignment().DeleteByUser(ctx, tx, phone); err != nil {
			return fmt.Errorf("failed to delete user assignments: %w", err)
		}
		if err := s.repo.Response().DeleteByUser(ctx, tx, phone); err != nil {
			return fmt.Errorf("failed to delete user responses: %w", err)
		}
		if err := s.repo.User().Delete(ctx, tx, phone); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("User deleted", "phone_number", phone)
	return nil
}

func (s *userService) Login(ctx context.Context, req *LoginRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByPhone(ctx, nil, req.PhoneNumber)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user.Password == nil {
		return nil, ErrInvalidCredentials
	}

	ok, needsUpgrade := checkPassword(*user.Password, req.Password, s.allowLegacyPasswords)
	if !ok {
		return nil, ErrInvalidCredentials
	}

	if needsUpgrade {
		// Self-healing migration: re-hash the plaintext credential in place.
		hashed, err := hashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = &hashed

		err = s.db.Transaction(func(tx *gorm.DB) error {
			return s.repo.User().Update(ctx, tx, user)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to upgrade credential: %w", err)
		}
		s.logger.Info("Upgraded legacy plaintext credential", "phone_number", user.PhoneNumber)
	}

	count, err := s.repo.Assignment().CountByUser(ctx, nil, user.PhoneNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to count assignments: %w", err)
	}
	user.AssignedMaterialsCount = count

	s.logger.Info("User logged in", "phone_number", user.PhoneNumber)
	return user, nil
}

func (s *userService) UpdateConsent(ctx context.Context, phone string, consentGiven bool) (*models.User, error) {
	var user *models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = s.repo.User().GetByPhone(ctx, tx, phone)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to get user: %w", err)
		}

		// One-way transition; a repeated or revoking request is a no-op.
		if !user.ConsentGiven && consentGiven {
			user.ConsentGiven = true
			if err := s.repo.User().Update(ctx, tx, user); err != nil {
				return fmt.Errorf("failed to update consent: %w", err)
			}
			s.logger.Info("Consent recorded", "phone_number", phone)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// checkPassword verifies supplied against the stored credential. When the
// stored value is not a bcrypt hash and allowLegacy is set, it falls back to
// literal comparison; a match then reports needsUpgrade so the caller can
// re-hash.
func checkPassword(stored, supplied string, allowLegacy bool) (ok bool, needsUpgrade bool) {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied))
	if err == nil {
		return true, false
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, false
	}
	// Stored value is structurally not a bcrypt hash.
	if !allowLegacy {
		return false, false
	}
	if stored == supplied {
		return true, true
	}
	return false, false
}
