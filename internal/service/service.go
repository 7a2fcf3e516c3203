package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/asclub/club-api/internal/repository"
)

var (
	ErrNotFound         = repository.ErrNotFound
	ErrAlreadyExists    = repository.ErrAlreadyExists
	ErrInvalidReference = repository.ErrInvalidReference
)

// CRUDRepository is the storage contract shared by every admin-managed entity.
type CRUDRepository[T any] interface {
	Get(ctx context.Context, id uuid.UUID) (T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id uuid.UUID, item T) (T, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type crudService[T any] struct {
	repo CRUDRepository[T]
}

func (s *crudService[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return item, fmt.Errorf("s.repo.Get -> %w", err)
	}

	return item, nil
}

func (s *crudService[T]) Create(ctx context.Context, item T) (T, error) {
	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return created, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *crudService[T]) Update(ctx context.Context, id uuid.UUID, item T) (T, error) {
	updated, err := s.repo.Update(ctx, id, item)
	if err != nil {
		return updated, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *crudService[T]) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
