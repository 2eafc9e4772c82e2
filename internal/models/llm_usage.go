package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LlmUsage records a single billed call to the completion provider.
// Rows are append-only; they are read back only in aggregate for
// rate-limit counting.
type LlmUsage struct {
	ID               uuid.UUID  `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt        time.Time  `gorm:"index" json:"created_at"`
	UserID           uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	RecipeID         *uuid.UUID `gorm:"type:uuid;index" json:"recipe_id,omitempty"`
	Provider         string     `gorm:"size:50;not null" json:"provider"`
	Model            string     `gorm:"size:100;not null" json:"model"`
	Prompt           string     `gorm:"type:text" json:"prompt"`
	PromptTokens     int        `gorm:"not null;default:0" json:"prompt_tokens"`
	CompletionTokens int        `gorm:"not null;default:0" json:"completion_tokens"`
}

func (u *LlmUsage) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
