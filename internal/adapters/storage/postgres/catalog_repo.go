package postgres

import (
	"context"

	"pet-grooming-manager/internal/domain/shop"
)

// Services

const serviceColumns = `id, user_id, name, description, price, duration, created_at, updated_at`

func scanService(sc scanner) (shop.GroomingService, error) {
	var v shop.GroomingService
	err := sc.Scan(&v.ID, &v.UserID, &v.Name, &v.Description, &v.Price, &v.Duration, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

func (s *Store) CreateService(ctx context.Context, v shop.GroomingService) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO services (`+serviceColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		v.ID, v.UserID, v.Name, v.Description, v.Price, v.Duration, v.CreatedAt, v.UpdatedAt)
	return err
}

func (s *Store) UpdateService(ctx context.Context, v shop.GroomingService) error {
	return affected(s.q.ExecContext(ctx, `
		UPDATE services
		SET name = $3, description = $4, price = $5, duration = $6, updated_at = $7
		WHERE id = $1 AND `+tenant(2),
		v.ID, shop.UserFrom(ctx), v.Name, v.Description, v.Price, v.Duration, v.UpdatedAt))
}

func (s *Store) DeleteService(ctx context.Context, id string) error {
	return affected(s.q.ExecContext(ctx,
		`DELETE FROM services WHERE id = $1 AND `+tenant(2), id, shop.UserFrom(ctx)))
}

func (s *Store) GetService(ctx context.Context, id string) (shop.GroomingService, error) {
	return queryOne(ctx, s.q, scanService,
		`SELECT `+serviceColumns+` FROM services WHERE id = $1 AND `+tenant(2),
		id, shop.UserFrom(ctx))
}

func (s *Store) ListServices(ctx context.Context) ([]shop.GroomingService, error) {
	return queryAll(ctx, s.q, scanService,
		`SELECT `+serviceColumns+` FROM services WHERE `+tenant(1)+` ORDER BY seq`,
		shop.UserFrom(ctx))
}

// Products

const productColumns = `id, user_id, name, description, price, stock, created_at, updated_at`

func scanProduct(sc scanner) (shop.Product, error) {
	var v shop.Product
	err := sc.Scan(&v.ID, &v.UserID, &v.Name, &v.Description, &v.Price, &v.Stock, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

func (s *Store) CreateProduct(ctx context.Context, v shop.Product) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO products (`+productColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		v.ID, v.UserID, v.Name, v.Description, v.Price, v.Stock, v.CreatedAt, v.UpdatedAt)
	return err
}

func (s *Store) UpdateProduct(ctx context.Context, v shop.Product) error {
	return affected(s.q.ExecContext(ctx, `
		UPDATE products
		SET name = $3, description = $4, price = $5, stock = $6, updated_at = $7
		WHERE id = $1 AND `+tenant(2),
		v.ID, shop.UserFrom(ctx), v.Name, v.Description, v.Price, v.Stock, v.UpdatedAt))
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	return affected(s.q.ExecContext(ctx,
		`DELETE FROM products WHERE id = $1 AND `+tenant(2), id, shop.UserFrom(ctx)))
}

func (s *Store) GetProduct(ctx context.Context, id string) (shop.Product, error) {
	return queryOne(ctx, s.q, scanProduct,
		`SELECT `+productColumns+` FROM products WHERE id = $1 AND `+tenant(2),
		id, shop.UserFrom(ctx))
}

func (s *Store) ListProducts(ctx context.Context) ([]shop.Product, error) {
	return queryAll(ctx, s.q, scanProduct,
		`SELECT `+productColumns+` FROM products WHERE `+tenant(1)+` ORDER BY seq`,
		shop.UserFrom(ctx))
}

// Taxi dog

const taxiDogColumns = `id, user_id, neighborhood, price, notes, created_at, updated_at`

func scanTaxiDog(sc scanner) (shop.TaxiDog, error) {
	var v shop.TaxiDog
	err := sc.Scan(&v.ID, &v.UserID, &v.Neighborhood, &v.Price, &v.Notes, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

func (s *Store) CreateTaxiDog(ctx context.Context, v shop.TaxiDog) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO taxi_dogs (`+taxiDogColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		v.ID, v.UserID, v.Neighborhood, v.Price, v.Notes, v.CreatedAt, v.UpdatedAt)
	return err
}

func (s *Store) UpdateTaxiDog(ctx context.Context, v shop.TaxiDog) error {
	return affected(s.q.ExecContext(ctx, `
		UPDATE taxi_dogs
		SET neighborhood = $3, price = $4, notes = $5, updated_at = $6
		WHERE id = $1 AND `+tenant(2),
		v.ID, shop.UserFrom(ctx), v.Neighborhood, v.Price, v.Notes, v.UpdatedAt))
}

func (s *Store) DeleteTaxiDog(ctx context.Context, id string) error {
	return affected(s.q.ExecContext(ctx,
		`DELETE FROM taxi_dogs WHERE id = $1 AND `+tenant(2), id, shop.UserFrom(ctx)))
}

func (s *Store) GetTaxiDog(ctx context.Context, id string) (shop.TaxiDog, error) {
	return queryOne(ctx, s.q, scanTaxiDog,
		`SELECT `+taxiDogColumns+` FROM taxi_dogs WHERE id = $1 AND `+tenant(2),
		id, shop.UserFrom(ctx))
}

func (s *Store) ListTaxiDogs(ctx context.Context) ([]shop.TaxiDog, error) {
	return queryAll(ctx, s.q, scanTaxiDog,
		`SELECT `+taxiDogColumns+` FROM taxi_dogs WHERE `+tenant(1)+` ORDER BY seq`,
		shop.UserFrom(ctx))
}
