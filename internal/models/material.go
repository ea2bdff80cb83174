package models

import (
	"time"
)

type MaterialType string

const (
	MaterialText  MaterialType = "TEXT"
	MaterialVideo MaterialType = "VIDEO"
	MaterialHTML  MaterialType = "HTML"
	MaterialAudio MaterialType = "AUDIO"
	MaterialEPUB  MaterialType = "EPUB"
)

// Material is a piece of reading content handed to participants. Content holds
// inline text/HTML or a URL/file path depending on Type.
type Material struct {
	ID       string       `json:"id" gorm:"primaryKey;size:36"`
	Title    string       `json:"title" gorm:"not null;size:255"`
	Author   string       `json:"author" gorm:"not null;size:100;default:Unknown"`
	Type     MaterialType `json:"type" gorm:"not null;size:20"`
	Content  string       `json:"content" gorm:"type:text;not null"`
	CoverURL *string      `json:"coverUrl" gorm:"size:255"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Computed fields (not stored) - assembled by explicit aggregate queries,
	// never by walking a live relationship collection.
	AssignedToUserIDs []string `json:"assignedToUserIds" gorm:"-"`
	AssignedCount     int64    `json:"assignedCount" gorm:"-"`
	ReadCount         int64    `json:"readCount" gorm:"-"`
}

func (Material) TableName() string {
	return "materials"
}
