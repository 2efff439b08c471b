package rules

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=rules_repo.go -destination=mock/rules_repo_mock.go -package=mock
type Repository interface {
	Get(ctx context.Context) (*RulesDocument, error)
	Upsert(ctx context.Context, doc *RulesDocument) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Get(ctx context.Context) (*RulesDocument, error) {
	var doc RulesDocument
	err := r.db.WithContext(ctx).First(&doc, "id = ?", 1).Error
	return &doc, err
}

func (r *repository) Upsert(ctx context.Context, doc *RulesDocument) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(doc).Error
}
