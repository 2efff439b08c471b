package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Statuses the server persists. A day with no record is presented as Absent
// by clients but never materialized here.
const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
	StatusExcused = "Excused"
)

type Attendance struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index:idx_attendance_user_date,unique"`
	Date         time.Time      `gorm:"column:date;type:date;not null;index:idx_attendance_user_date,unique"`
	Status       string         `gorm:"column:status;type:varchar(20);not null;default:Present"`
	LoginTime    *time.Time     `gorm:"column:login_time;type:timestamptz"`
	LogoutTime   *time.Time     `gorm:"column:logout_time;type:timestamptz"`
	WorkingHours *float64       `gorm:"column:working_hours"`
	CreatedAt    time.Time      `gorm:"column:created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Attendance) TableName() string {
	return "attendances"
}
