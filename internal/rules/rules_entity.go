package rules

import (
	"time"

	"github.com/google/uuid"
)

// A single shared document, one row per deployment.
type RulesDocument struct {
	ID        int        `gorm:"primaryKey;default:1"`
	Content   string     `gorm:"type:text;not null"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (RulesDocument) TableName() string {
	return "rules_documents"
}
