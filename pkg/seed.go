package pkg

import (
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/NJ-LDS/reading-service/internal/models"
)

// Seed inserts default accounts on an empty database so a fresh deployment is
// immediately usable. Existing data short-circuits the whole routine.
func Seed(db *gorm.DB, logger *slog.Logger) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for existing users: %w", err)
	}
	if count > 0 {
		return nil
	}

	logger.Info("Seeding default users")

	users := []seedUser{
		{
			phone:     "13800138001",
			name:      "Participant One",
			email:     "participant1@example.com",
			role:      models.RoleParticipant,
			group:     "A",
			password:  "password1",
			gender:    "Female",
			education: "Bachelor",
			income:    5000,
		},
		{
			phone:     "13800138002",
			name:      "Participant Two",
			email:     "participant2@example.com",
			role:      models.RoleParticipant,
			group:     "B",
			password:  "password2",
			gender:    "Male",
			education: "Master",
			income:    6000,
		},
		{
			phone:    "13800138000",
			name:     "Administrator",
			email:    "admin@example.com",
			role:     models.RoleAdmin,
			group:    "A",
			password: "change-me-on-first-login",
			consent:  true,
		},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, u := range users {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("failed to hash seed password: %w", err)
			}
			user := &models.User{
				PhoneNumber:  u.phone,
				Name:         u.name,
				Role:         u.role,
				ConsentGiven: u.consent,
			}
			hashStr := string(hash)
			user.Password = &hashStr
			if u.email != "" {
				email := u.email
				user.Email = &email
			}
			if u.group != "" {
				group := u.group
				user.Group = &group
			}
			if u.gender != "" {
				gender := u.gender
				user.Gender = &gender
			}
			if u.education != "" {
				education := u.education
				user.Education = &education
			}
			if u.income > 0 {
				income := u.income
				user.Income = &income
			}
			if err := tx.Create(user).Error; err != nil {
				return fmt.Errorf("failed to seed user %s: %w", u.phone, err)
			}
		}
		return nil
	})
}

type seedUser struct {
	phone     string
	name      string
	email     string
	role      models.UserRole
	group     string
	password  string
	gender    string
	education string
	income    int
	consent   bool
}
