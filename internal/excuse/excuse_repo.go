package excuse

import (
	"context"
	"database/sql"
	"time"

	"go-attend/internal/shared/dateutil"

	"gorm.io/gorm"
)

//go:generate mockgen -source=excuse_repo.go -destination=mock/excuse_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Excuse) error
	Update(ctx context.Context, e *Excuse) error
	FindByID(ctx context.Context, id string) (*Excuse, error)
	FindPending(ctx context.Context) ([]Excuse, error)
	FindByUser(ctx context.Context, userID string) ([]Excuse, error)
	HasPendingForDate(ctx context.Context, userID string, date time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository onto the caller's transaction; see the
// attendance repository for the session-clone shape.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	txdb := r.db.Session(&gorm.Session{NewDB: true, Context: r.db.Statement.Context})
	txdb.Statement.ConnPool = tx
	return &repository{db: txdb}
}

func (r *repository) Create(ctx context.Context, e *Excuse) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) Update(ctx context.Context, e *Excuse) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Excuse, error) {
	var e Excuse
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *repository) FindPending(ctx context.Context) ([]Excuse, error) {
	var rows []Excuse
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByUser(ctx context.Context, userID string) ([]Excuse, error) {
	var rows []Excuse
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) HasPendingForDate(ctx context.Context, userID string, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Excuse{}).
		Where("user_id = ?", userID).
		Where("date = ?", date.Format(dateutil.DateLayout)).
		Where("status = ?", StatusPending).
		Count(&count).Error
	return count > 0, err
}
