package models

import (
	"time"

	"gorm.io/datatypes"
)

// UserResponse is one submission of answers for a material/form pair.
// No uniqueness across (user, material, form): resubmissions are retained as
// separate history entries. Answers is opaque jsonb (question id -> value).
type UserResponse struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	UserID          string         `json:"userId" gorm:"not null;size:20;index"`
	MaterialID      string         `json:"materialId" gorm:"not null;size:36;index"`
	FormID          string         `json:"formId" gorm:"not null;size:36"`
	Answers         datatypes.JSON `json:"answers" gorm:"type:jsonb;not null"`
	DurationSeconds *int           `json:"durationSeconds"`
	CreatedAt       time.Time      `json:"createdAt"`

	// Relations
	User     *User     `json:"-" gorm:"foreignKey:UserID"`
	Material *Material `json:"-" gorm:"foreignKey:MaterialID"`
	Form     *Form     `json:"-" gorm:"foreignKey:FormID"`
}

func (UserResponse) TableName() string {
	return "user_responses"
}
