package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/asclub/club-api/internal/repository/dao"
)

var (
	ErrNotFound         = dao.ErrNotFound
	ErrAlreadyExists    = dao.ErrAlreadyExists
	ErrInvalidReference = dao.ErrInvalidReference
)

// crud maps a dao.Store of table rows M onto domain values D.
type crud[D any, M any] struct {
	store    *dao.Store[M]
	toDomain func(M) D
	toDAO    func(D) M
}

func (r *crud[D, M]) list(ctx context.Context, f dao.Filter) ([]D, error) {
	rows, err := r.store.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("r.store.List -> %w", err)
	}

	items := make([]D, 0, len(rows))
	for _, row := range rows {
		items = append(items, r.toDomain(row))
	}

	return items, nil
}

func (r *crud[D, M]) first(ctx context.Context, f dao.Filter) (D, error) {
	row, err := r.store.First(ctx, f)
	if err != nil {
		var zero D
		return zero, fmt.Errorf("r.store.First -> %w", err)
	}

	return r.toDomain(row), nil
}

func (r *crud[D, M]) Get(ctx context.Context, id uuid.UUID) (D, error) {
	row, err := r.store.Get(ctx, id)
	if err != nil {
		var zero D
		return zero, fmt.Errorf("r.store.Get -> %w", err)
	}

	return r.toDomain(row), nil
}

func (r *crud[D, M]) Create(ctx context.Context, item D) (D, error) {
	created, err := r.store.Insert(ctx, r.toDAO(item))
	if err != nil {
		var zero D
		return zero, fmt.Errorf("r.store.Insert -> %w", err)
	}

	return r.Get(ctx, r.idOf(created))
}

func (r *crud[D, M]) Update(ctx context.Context, id uuid.UUID, item D) (D, error) {
	updated, err := r.store.Update(ctx, id, r.toDAO(item))
	if err != nil {
		var zero D
		return zero, fmt.Errorf("r.store.Update -> %w", err)
	}

	return r.toDomain(updated), nil
}

func (r *crud[D, M]) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.store.Delete -> %w", err)
	}

	return nil
}

func (r *crud[D, M]) idOf(row M) uuid.UUID {
	if b, ok := any(&row).(interface{ PrimaryKey() uuid.UUID }); ok {
		return b.PrimaryKey()
	}
	return uuid.Nil
}
