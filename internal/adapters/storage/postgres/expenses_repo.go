package postgres

import (
	"context"

	"pet-grooming-manager/internal/domain/shop"
)

const expenseColumns = `id, user_id, description, amount, category, date, notes, created_at, updated_at`

func scanExpense(sc scanner) (shop.Expense, error) {
	var v shop.Expense
	err := sc.Scan(&v.ID, &v.UserID, &v.Description, &v.Amount, &v.Category, &v.Date, &v.Notes, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

func (s *Store) CreateExpense(ctx context.Context, v shop.Expense) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO expenses (`+expenseColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		v.ID, v.UserID, v.Description, v.Amount, v.Category, v.Date, v.Notes, v.CreatedAt, v.UpdatedAt)
	return err
}

func (s *Store) UpdateExpense(ctx context.Context, v shop.Expense) error {
	return affected(s.q.ExecContext(ctx, `
		UPDATE expenses
		SET description = $3, amount = $4, category = $5, date = $6, notes = $7, updated_at = $8
		WHERE id = $1 AND `+tenant(2),
		v.ID, shop.UserFrom(ctx), v.Description, v.Amount, v.Category, v.Date, v.Notes, v.UpdatedAt))
}

func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	return affected(s.q.ExecContext(ctx,
		`DELETE FROM expenses WHERE id = $1 AND `+tenant(2), id, shop.UserFrom(ctx)))
}

func (s *Store) GetExpense(ctx context.Context, id string) (shop.Expense, error) {
	return queryOne(ctx, s.q, scanExpense,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = $1 AND `+tenant(2),
		id, shop.UserFrom(ctx))
}

func (s *Store) ListExpenses(ctx context.Context) ([]shop.Expense, error) {
	return queryAll(ctx, s.q, scanExpense,
		`SELECT `+expenseColumns+` FROM expenses WHERE `+tenant(1)+` ORDER BY seq`,
		shop.UserFrom(ctx))
}
