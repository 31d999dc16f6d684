package memory

import (
	"context"
	"errors"
	"strings"

	"pet-grooming-manager/internal/domain/shop"
)

// table guarda filas en orden de inserción; todas las búsquedas son scans
// lineales filtrados por el usuario del contexto.
type table[T any] struct {
	rows []T

	id   func(T) string
	user func(T) string
	copy func(T) T // opcional: deep copy de slices internos
}

func newTable[T any](id, user func(T) string, cp func(T) T) *table[T] {
	if cp == nil {
		cp = func(v T) T { return v }
	}
	return &table[T]{id: id, user: user, copy: cp}
}

func visible(ctx context.Context, owner string) bool {
	u := shop.UserFrom(ctx)
	return u == "" || u == owner
}

func (t *table[T]) index(ctx context.Context, id string) int {
	for i, r := range t.rows {
		if t.id(r) == id && visible(ctx, t.user(r)) {
			return i
		}
	}
	return -1
}

func (t *table[T]) create(row T) error {
	id := t.id(row)
	if strings.TrimSpace(id) == "" {
		return errors.New("id required")
	}
	for _, r := range t.rows {
		if t.id(r) == id {
			return errors.New("already exists")
		}
	}
	t.rows = append(t.rows, t.copy(row))
	return nil
}

func (t *table[T]) update(ctx context.Context, row T) error {
	i := t.index(ctx, t.id(row))
	if i < 0 {
		return shop.ErrNotFound
	}
	t.rows[i] = t.copy(row)
	return nil
}

func (t *table[T]) delete(ctx context.Context, id string) error {
	i := t.index(ctx, id)
	if i < 0 {
		return shop.ErrNotFound
	}
	t.rows = append(t.rows[:i:i], t.rows[i+1:]...)
	return nil
}

func (t *table[T]) get(ctx context.Context, id string) (T, error) {
	i := t.index(ctx, id)
	if i < 0 {
		var zero T
		return zero, shop.ErrNotFound
	}
	return t.copy(t.rows[i]), nil
}

// list devuelve las filas visibles que cumplen keep (nil = todas).
func (t *table[T]) list(ctx context.Context, keep func(T) bool) []T {
	out := make([]T, 0)
	for _, r := range t.rows {
		if !visible(ctx, t.user(r)) {
			continue
		}
		if keep != nil && !keep(r) {
			continue
		}
		out = append(out, t.copy(r))
	}
	return out
}

func (t *table[T]) exists(ctx context.Context, match func(T) bool) bool {
	for _, r := range t.rows {
		if visible(ctx, t.user(r)) && match(r) {
			return true
		}
	}
	return false
}

func (t *table[T]) clone() *table[T] {
	rows := make([]T, len(t.rows))
	for i, r := range t.rows {
		rows[i] = t.copy(r)
	}
	return &table[T]{rows: rows, id: t.id, user: t.user, copy: t.copy}
}
