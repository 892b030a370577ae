package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	apperr "github.com/sirtis/backoffice/pkg/errors"
)

// BaseRepository defines common CRUD operations. All implementations here
// are in-memory: an arena (id → record) plus an ordered id list, which keeps
// listing order stable at insertion order. Missing ids fail with not_found;
// no operation is a silent no-op.
type BaseRepository[T any] interface {
	Create(ctx context.Context, obj *T) error
	GetByID(ctx context.Context, id uuid.UUID, dest *T) error
	Update(ctx context.Context, obj *T) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]T, error)
}

type baseRepository[T any] struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*T
	order []uuid.UUID

	id    func(*T) uuid.UUID
	setID func(*T, uuid.UUID)
}

// NewBaseRepository builds an empty in-memory repository. The id accessors
// let the generic store stay ignorant of entity shapes.
func NewBaseRepository[T any](id func(*T) uuid.UUID, setID func(*T, uuid.UUID)) BaseRepository[T] {
	return &baseRepository[T]{
		items: make(map[uuid.UUID]*T),
		id:    id,
		setID: setID,
	}
}

func (r *baseRepository[T]) Create(_ context.Context, obj *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.id(obj) == uuid.Nil {
		r.setID(obj, uuid.New())
	}
	id := r.id(obj)
	if _, exists := r.items[id]; exists {
		return apperr.Newf(apperr.CodeConflict, "entity %s already exists", id)
	}
	cp := *obj
	r.items[id] = &cp
	r.order = append(r.order, id)
	return nil
}

func (r *baseRepository[T]) GetByID(_ context.Context, id uuid.UUID, dest *T) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	obj, ok := r.items[id]
	if !ok {
		return apperr.Newf(apperr.CodeNotFound, "entity %s not found", id)
	}
	*dest = *obj
	return nil
}

func (r *baseRepository[T]) Update(_ context.Context, obj *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.id(obj)
	if _, ok := r.items[id]; !ok {
		return apperr.Newf(apperr.CodeNotFound, "entity %s not found", id)
	}
	cp := *obj
	r.items[id] = &cp
	return nil
}

func (r *baseRepository[T]) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return apperr.Newf(apperr.CodeNotFound, "entity %s not found", id)
	}
	delete(r.items, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *baseRepository[T]) List(_ context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.items[id])
	}
	return out, nil
}
