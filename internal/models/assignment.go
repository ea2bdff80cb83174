package models

import (
	"time"
)

// MaterialAssignment records that a material has been made available to a
// user. One row per (material, user) pair; ReadStatus is the only mutable
// field. Created explicitly by assign, or implicitly the first time a read is
// recorded for an untracked pair.
type MaterialAssignment struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	MaterialID string    `json:"materialId" gorm:"not null;size:36;uniqueIndex:idx_assignments_material_user"`
	UserID     string    `json:"userId" gorm:"not null;size:20;uniqueIndex:idx_assignments_material_user"`
	AssignedAt time.Time `json:"assignedAt" gorm:"not null;autoCreateTime"`
	ReadStatus bool      `json:"readStatus" gorm:"not null;default:false"`

	// Relations
	Material *Material `json:"-" gorm:"foreignKey:MaterialID"`
	User     *User     `json:"-" gorm:"foreignKey:UserID"`
}

func (MaterialAssignment) TableName() string {
	return "material_assignments"
}

type TriggerTiming string

const (
	TimingPreRead  TriggerTiming = "pre_read"
	TimingPostRead TriggerTiming = "post_read"
)

// MaterialFormConfig links a form to a material with a trigger timing.
// Multiple configs may exist per material; only active ones are resolved.
type MaterialFormConfig struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	MaterialID    string        `json:"materialId" gorm:"not null;size:36;index"`
	FormID        string        `json:"formId" gorm:"not null;size:36"`
	TriggerTiming TriggerTiming `json:"triggerTiming" gorm:"size:20;default:post_read"`
	IsActive      bool          `json:"isActive" gorm:"default:true"`

	// Relations
	Material *Material `json:"-" gorm:"foreignKey:MaterialID"`
	Form     *Form     `json:"form,omitempty" gorm:"foreignKey:FormID"`
}

func (MaterialFormConfig) TableName() string {
	return "material_form_configs"
}
