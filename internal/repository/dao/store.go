package dao

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the table-scoped CRUD shared by every entity table.
type Store[M any] struct {
	db           *gorm.DB
	defaultOrder string
	preload      []string
}

func NewStore[M any](db *gorm.DB, defaultOrder string, preload ...string) *Store[M] {
	return &Store[M]{
		db:           db,
		defaultOrder: defaultOrder,
		preload:      preload,
	}
}

func (s *Store[M]) query(ctx context.Context) *gorm.DB {
	q := s.db.WithContext(ctx)
	for _, p := range s.preload {
		q = q.Preload(p)
	}
	return q
}

func (s *Store[M]) List(ctx context.Context, f Filter) ([]M, error) {
	var rows []M

	result := f.apply(s.query(ctx), s.defaultOrder).Find(&rows)
	if result.Error != nil {
		return nil, translate(result.Error)
	}

	return rows, nil
}

func (s *Store[M]) First(ctx context.Context, f Filter) (M, error) {
	var row M

	result := f.Limit(1).apply(s.query(ctx), s.defaultOrder).Take(&row)
	if result.Error != nil {
		return row, translate(result.Error)
	}

	return row, nil
}

func (s *Store[M]) Count(ctx context.Context, f Filter) (int64, error) {
	var count int64

	result := f.apply(s.db.WithContext(ctx).Model(new(M)), "").Count(&count)
	if result.Error != nil {
		return 0, translate(result.Error)
	}

	return count, nil
}

func (s *Store[M]) Get(ctx context.Context, id uuid.UUID) (M, error) {
	var row M

	result := s.query(ctx).Where("id = ?", id).Take(&row)
	if result.Error != nil {
		return row, translate(result.Error)
	}

	return row, nil
}

func (s *Store[M]) Insert(ctx context.Context, row M) (M, error) {
	result := s.db.WithContext(ctx).Omit(clause.Associations).Create(&row)
	if result.Error != nil {
		return row, translate(result.Error)
	}

	return row, nil
}

// Update overwrites every column of the row with the given id. The last
// write wins; there is no version check.
func (s *Store[M]) Update(ctx context.Context, id uuid.UUID, row M) (M, error) {
	result := s.db.WithContext(ctx).
		Model(new(M)).
		Where("id = ?", id).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(&row)
	if result.Error != nil {
		return row, translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return row, ErrNotFound
	}

	return s.Get(ctx, id)
}

func (s *Store[M]) Delete(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(new(M))
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
