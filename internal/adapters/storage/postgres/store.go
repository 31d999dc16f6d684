package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pet-grooming-manager/internal/domain/shop"
)

// querier es lo común entre *sql.DB y *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// Store implementa shop.Repository sobre Postgres. Todas las consultas filtran
// por user_id cuando el contexto trae usuario.
type Store struct {
	db *sql.DB // nil dentro de una transacción
	q  querier
}

var _ shop.Repository = (*Store)(nil)

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, q: db}
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx shop.Repository) error) error {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(&Store{q: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// tenant es el filtro multi-tenant: '' deja pasar todo.
func tenant(n int) string {
	return fmt.Sprintf("($%d::text = '' OR user_id = $%d)", n, n)
}

// optionalID guarda el id vacío como NULL para las FK opcionales.
func optionalID(id string) any {
	if id == "" {
		return nil
	}
	return id
}

func affected(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return shop.ErrNotFound
	}
	return nil
}

func queryOne[T any](ctx context.Context, q querier, scan func(scanner) (T, error), query string, args ...any) (T, error) {
	v, err := scan(q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, shop.ErrNotFound
	}
	return v, err
}

func queryAll[T any](ctx context.Context, q querier, scan func(scanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func exists(ctx context.Context, q querier, query string, args ...any) (bool, error) {
	var ok bool
	if err := q.QueryRowContext(ctx, "SELECT EXISTS ("+query+")", args...).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
