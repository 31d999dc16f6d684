package postgres

import (
	"context"

	"pet-grooming-manager/internal/domain/shop"
)

const clientColumns = `
	id, user_id,
	name, phone, email, address, neighborhood, city,
	pending_balance, notes,
	created_at, updated_at`

func scanClient(sc scanner) (shop.Client, error) {
	var c shop.Client
	err := sc.Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&c.Phone,
		&c.Email,
		&c.Address,
		&c.Neighborhood,
		&c.City,
		&c.PendingBalance,
		&c.Notes,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func (s *Store) CreateClient(ctx context.Context, c shop.Client) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO clients (`+clientColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		c.ID,
		c.UserID,
		c.Name,
		c.Phone,
		c.Email,
		c.Address,
		c.Neighborhood,
		c.City,
		c.PendingBalance,
		c.Notes,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return err
}

func (s *Store) UpdateClient(ctx context.Context, c shop.Client) error {
	return affected(s.q.ExecContext(ctx, `
		UPDATE clients
		SET
			name = $3,
			phone = $4,
			email = $5,
			address = $6,
			neighborhood = $7,
			city = $8,
			pending_balance = $9,
			notes = $10,
			updated_at = $11
		WHERE id = $1 AND `+tenant(2),
		c.ID,
		shop.UserFrom(ctx),
		c.Name,
		c.Phone,
		c.Email,
		c.Address,
		c.Neighborhood,
		c.City,
		c.PendingBalance,
		c.Notes,
		c.UpdatedAt,
	))
}

func (s *Store) DeleteClient(ctx context.Context, id string) error {
	return affected(s.q.ExecContext(ctx,
		`DELETE FROM clients WHERE id = $1 AND `+tenant(2), id, shop.UserFrom(ctx)))
}

func (s *Store) GetClient(ctx context.Context, id string) (shop.Client, error) {
	return queryOne(ctx, s.q, scanClient,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1 AND `+tenant(2),
		id, shop.UserFrom(ctx))
}

func (s *Store) ListClients(ctx context.Context) ([]shop.Client, error) {
	return queryAll(ctx, s.q, scanClient,
		`SELECT `+clientColumns+` FROM clients WHERE `+tenant(1)+` ORDER BY seq`,
		shop.UserFrom(ctx))
}
