package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/NJ-LDS/reading-service/internal/models"
	"github.com/NJ-LDS/reading-service/internal/repositories"
)

type UserPostgreSQL struct {
	sharedDB
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &UserPostgreSQL{sharedDB{db: db}}
}

func (r *UserPostgreSQL) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	return r.getDB(tx).WithContext(ctx).Create(user).Error
}

func (r *UserPostgreSQL) GetByPhone(ctx context.Context, tx *gorm.DB, phone string) (*models.User, error) {
	var user models.User
	if err := r.getDB(tx).WithContext(ctx).First(&user, "phone_number = ?", phone).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserPostgreSQL) List(ctx context.Context, tx *gorm.DB) ([]*models.User, error) {
	var users []*models.User
	if err := r.getDB(tx).WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserPostgreSQL) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	return r.getDB(tx).WithContext(ctx).Save(user).Error
}

func (r *UserPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, phone string) error {
	return r.getDB(tx).WithContext(ctx).Delete(&models.User{}, "phone_number = ?", phone).Error
}

func (r *UserPostgreSQL) Exists(ctx context.Context, tx *gorm.DB, phone string) (bool, error) {
	var count int64
	err := r.getDB(tx).WithContext(ctx).
		Model(&models.User{}).
		Where("phone_number = ?", phone).
		Count(&count).Error
	return count > 0, err
}
