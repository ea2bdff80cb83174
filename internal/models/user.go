package models

import (
	"time"
)

type UserRole string

const (
	RoleParticipant UserRole = "PARTICIPANT"
	RoleAdmin       UserRole = "ADMIN"
)

// User is a study participant or an administrator. The phone number is the
// natural key and never changes after creation.
type User struct {
	PhoneNumber string   `json:"phone_number" gorm:"primaryKey;size:20"`
	Name        string   `json:"name" gorm:"not null;size:50"`
	Email       *string  `json:"email" gorm:"uniqueIndex;size:100"`
	Role        UserRole `json:"role" gorm:"not null;size:20"`
	Group       *string  `json:"group" gorm:"size:50;default:A"`
	Password    *string  `json:"-" gorm:"size:255"`

	// ConsentGiven starts false and flips to true exactly once via the
	// explicit consent endpoint.
	ConsentGiven bool `json:"consent_given" gorm:"not null;default:false"`

	// Demographics
	Age        *int    `json:"age"`
	Gender     *string `json:"gender" gorm:"size:10"`
	Education  *string `json:"education" gorm:"size:50"`
	Income     *int    `json:"income"`
	Occupation *string `json:"occupation" gorm:"size:50"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Computed fields (not stored)
	AssignedMaterialsCount int64 `json:"assigned_materials_count" gorm:"-"`
}

func (User) TableName() string {
	return "users"
}
