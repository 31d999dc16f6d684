package postgres

import (
	"context"

	"pet-grooming-manager/internal/domain/shop"
)

const profileColumns = `id, user_id, name, business_name, email, phone, address, logo, created_at, updated_at`

func scanProfile(sc scanner) (shop.UserProfile, error) {
	var p shop.UserProfile
	err := sc.Scan(&p.ID, &p.UserID, &p.Name, &p.BusinessName, &p.Email, &p.Phone, &p.Address, &p.Logo, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// GetProfile busca por user_id exacto (sin usuario = perfil del modo single-tenant).
func (s *Store) GetProfile(ctx context.Context) (shop.UserProfile, error) {
	return queryOne(ctx, s.q, scanProfile,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`,
		shop.UserFrom(ctx))
}

// SaveProfile hace upsert: hay un único perfil por user_id.
func (s *Store) SaveProfile(ctx context.Context, p shop.UserProfile) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			business_name = EXCLUDED.business_name,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			address = EXCLUDED.address,
			logo = EXCLUDED.logo,
			updated_at = EXCLUDED.updated_at
	`,
		p.ID, p.UserID, p.Name, p.BusinessName, p.Email, p.Phone, p.Address, p.Logo, p.CreatedAt, p.UpdatedAt)
	return err
}
