package app

import (
	"errors"
	"os"

	"go-attend/internal/attendance"
	"go-attend/internal/excuse"
	"go-attend/internal/rbac"
	"go-attend/internal/rules"
	"go-attend/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// The outbox is queried with raw SQL, so its table is created the same way.
const outboxDDL = `
CREATE TABLE IF NOT EXISTS outbox_events (
	id UUID PRIMARY KEY,
	request_id TEXT,
	aggregate_type TEXT NOT NULL,
	aggregate_id TEXT NOT NULL,
	event_type TEXT NOT NULL,
	topic TEXT NOT NULL,
	payload JSONB NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	retry_count INT NOT NULL DEFAULT 0,
	error_message TEXT,
	next_retry_at TIMESTAMPTZ,
	processed_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_outbox_events_status_created
	ON outbox_events (status, created_at);
`

func migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(
		&user.User{},
		&attendance.Attendance{},
		&excuse.Excuse{},
		&rules.RulesDocument{},
	); err != nil {
		return err
	}
	if err := gormDB.Exec(outboxDDL).Error; err != nil {
		return err
	}
	return seedSuperAdmin(gormDB)
}

// seedSuperAdmin creates the first account from SEED_ADMIN_EMAIL and
// SEED_ADMIN_PASSWORD so a fresh deployment can be signed into. Skipped when
// unset or when the email already exists.
func seedSuperAdmin(gormDB *gorm.DB) error {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	var existing user.User
	err := gormDB.First(&existing, "email = ?", email).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	seeded := user.User{
		ID:       uuid.New(),
		Username: "admin",
		Email:    email,
		Password: string(hashed),
		Role:     rbac.RoleSuperAdmin,
	}
	if err := gormDB.Create(&seeded).Error; err != nil {
		return err
	}

	zap.L().Info("seeded superadmin account", zap.String("email", email))
	return nil
}
