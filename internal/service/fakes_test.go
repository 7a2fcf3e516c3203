package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// memRepo is an in-memory CRUDRepository. idOf and setID give it access to
// the entity's primary key.
type memRepo[T any] struct {
	mu    sync.Mutex
	items map[uuid.UUID]T
	idOf  func(T) uuid.UUID
	setID func(*T, uuid.UUID)
}

func newMemRepo[T any](idOf func(T) uuid.UUID, setID func(*T, uuid.UUID)) *memRepo[T] {
	return &memRepo[T]{
		items: make(map[uuid.UUID]T),
		idOf:  idOf,
		setID: setID,
	}
}

func (r *memRepo[T]) Get(_ context.Context, id uuid.UUID) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return item, nil
}

func (r *memRepo[T]) Create(_ context.Context, item T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.setID(&item, uuid.New())
	r.items[r.idOf(item)] = item
	return item, nil
}

func (r *memRepo[T]) Update(_ context.Context, id uuid.UUID, item T) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		var zero T
		return zero, ErrNotFound
	}
	r.setID(&item, id)
	r.items[id] = item
	return item, nil
}

func (r *memRepo[T]) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memRepo[T]) all() []T {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]T, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out
}
