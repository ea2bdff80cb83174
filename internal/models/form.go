package models

import (
	"time"

	"gorm.io/datatypes"
)

type FormType string

const (
	FormConsent       FormType = "CONSENT"
	FormQuestionnaire FormType = "QUESTIONNAIRE"
)

// Form stores a consent document or a questionnaire. Questions is an opaque
// ordered JSON array (id, prompt, answer type, optional options per entry);
// the core never validates answers against it.
type Form struct {
	ID        string         `json:"id" gorm:"primaryKey;size:36"`
	Title     string         `json:"title" gorm:"not null;size:255"`
	Type      FormType       `json:"type" gorm:"not null;size:20"`
	Content   string         `json:"content" gorm:"type:text;not null"`
	Questions datatypes.JSON `json:"questions,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Form) TableName() string {
	return "forms"
}
