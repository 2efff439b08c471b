package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-attend/internal/shared/dateutil"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	Update(ctx context.Context, a *Attendance) error
	FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)
	FindByUserSince(ctx context.Context, userID string, since time.Time) ([]Attendance, error)
	FindAllSince(ctx context.Context, since time.Time) ([]Attendance, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository onto the caller's transaction so domain
// writes commit or roll back together with the outbox insert. The session
// clone keeps the root handle on the pool.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	txdb := r.db.Session(&gorm.Session{NewDB: true, Context: r.db.Statement.Context})
	txdb.Statement.ConnPool = tx
	return &repository{db: txdb}
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date = ?", date.Format(dateutil.DateLayout)).
		First(&a).Error
	return &a, err
}

func (r *repository) FindByUserSince(ctx context.Context, userID string, since time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("date >= ?", since.Format(dateutil.DateLayout)).
		Order("date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAllSince(ctx context.Context, since time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("date >= ?", since.Format(dateutil.DateLayout)).
		Order("date DESC").
		Find(&rows).Error
	return rows, err
}
