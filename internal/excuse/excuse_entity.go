package excuse

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

type Excuse struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_excuses_user"`

	// Denormalized so the approval list renders without a join.
	Username string `gorm:"type:varchar(100);not null"`
	Email    string `gorm:"type:varchar(255);not null"`

	Date    time.Time `gorm:"type:date;not null"`
	Message string    `gorm:"type:text;not null"`
	Status  string    `gorm:"type:varchar(20);not null;default:'Pending';index:idx_excuses_status"`

	DecidedBy *uuid.UUID `gorm:"type:uuid"`
	DecidedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_excuses_deleted_at"`
}

func (Excuse) TableName() string {
	return "excuses"
}
