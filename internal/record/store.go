package record

import (
	"context"

	"github.com/eleven-am/sight-backend/internal/shared"
	"gorm.io/gorm"
)

const defaultRecentLimit = 50

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Analysis{})
}

func (s *Store) Create(ctx context.Context, a *Analysis) error {
	if a.ID == "" {
		a.ID = shared.NewID("ana_")
	}
	return s.db.WithContext(ctx).Create(a).Error
}

// Recent returns the newest analyses first. A non-positive or
// oversized limit falls back to the default page size.
func (s *Store) Recent(ctx context.Context, limit int) ([]Analysis, error) {
	if limit <= 0 || limit > 200 {
		limit = defaultRecentLimit
	}

	var records []Analysis
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

// CountAmbiguous reports how many logged analyses needed clarification.
func (s *Store) CountAmbiguous(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&Analysis{}).
		Where("ambiguous = ?", true).
		Count(&n).Error
	return n, err
}
