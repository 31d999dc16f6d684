package postgres

import (
	"context"
	"database/sql"

	"pet-grooming-manager/internal/domain/shop"

	"github.com/shopspring/decimal"
)

const petColumns = `
	id, user_id, owner_id,
	name, species, breed, age, weight, notes,
	created_at, updated_at`

func scanPet(sc scanner) (shop.Pet, error) {
	var (
		p      shop.Pet
		age    sql.NullInt64
		weight decimal.NullDecimal
	)
	if err := sc.Scan(
		&p.ID,
		&p.UserID,
		&p.OwnerID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&age,
		&weight,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return shop.Pet{}, err
	}

	if age.Valid {
		v := int(age.Int64)
		p.Age = &v
	}
	if weight.Valid {
		w := weight.Decimal
		p.Weight = &w
	}
	return p, nil
}

func toNullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func toNullDecimal(v *decimal.Decimal) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *v, Valid: true}
}

func (s *Store) CreatePet(ctx context.Context, p shop.Pet) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		p.ID,
		p.UserID,
		p.OwnerID,
		p.Name,
		p.Species,
		p.Breed,
		toNullInt(p.Age),
		toNullDecimal(p.Weight),
		p.Notes,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (s *Store) UpdatePet(ctx context.Context, p shop.Pet) error {
	return affected(s.q.ExecContext(ctx, `
		UPDATE pets
		SET
			owner_id = $3,
			name = $4,
			species = $5,
			breed = $6,
			age = $7,
			weight = $8,
			notes = $9,
			updated_at = $10
		WHERE id = $1 AND `+tenant(2),
		p.ID,
		shop.UserFrom(ctx),
		p.OwnerID,
		p.Name,
		p.Species,
		p.Breed,
		toNullInt(p.Age),
		toNullDecimal(p.Weight),
		p.Notes,
		p.UpdatedAt,
	))
}

func (s *Store) DeletePet(ctx context.Context, id string) error {
	return affected(s.q.ExecContext(ctx,
		`DELETE FROM pets WHERE id = $1 AND `+tenant(2), id, shop.UserFrom(ctx)))
}

func (s *Store) GetPet(ctx context.Context, id string) (shop.Pet, error) {
	return queryOne(ctx, s.q, scanPet,
		`SELECT `+petColumns+` FROM pets WHERE id = $1 AND `+tenant(2),
		id, shop.UserFrom(ctx))
}

func (s *Store) ListPets(ctx context.Context) ([]shop.Pet, error) {
	return queryAll(ctx, s.q, scanPet,
		`SELECT `+petColumns+` FROM pets WHERE `+tenant(1)+` ORDER BY seq`,
		shop.UserFrom(ctx))
}

func (s *Store) ListPetsByOwner(ctx context.Context, clientID string) ([]shop.Pet, error) {
	return queryAll(ctx, s.q, scanPet,
		`SELECT `+petColumns+` FROM pets WHERE owner_id = $1 AND `+tenant(2)+` ORDER BY seq`,
		clientID, shop.UserFrom(ctx))
}

func (s *Store) HasPetsForOwner(ctx context.Context, clientID string) (bool, error) {
	return exists(ctx, s.q,
		`SELECT 1 FROM pets WHERE owner_id = $1 AND `+tenant(2),
		clientID, shop.UserFrom(ctx))
}
