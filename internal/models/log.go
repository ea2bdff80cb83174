package models

import (
	"time"

	"gorm.io/datatypes"
)

// Log is an append-only action record (LOGIN, OPEN_MATERIAL, AI_QUERY, ...).
// Details carries arbitrary caller context verbatim; the writer never
// interprets it. No update or delete path exists in normal flow.
type Log struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	UserID     string         `json:"userId" gorm:"not null;size:20;index"`
	Action     string         `json:"action" gorm:"not null;size:50"`
	MaterialID *string        `json:"materialId" gorm:"size:36;index"`
	Details    datatypes.JSON `json:"details" gorm:"type:jsonb"`
	CreatedAt  time.Time      `json:"createdAt"`

	// Relations
	User     *User     `json:"-" gorm:"foreignKey:UserID"`
	Material *Material `json:"-" gorm:"foreignKey:MaterialID"`
}

func (Log) TableName() string {
	return "logs"
}
