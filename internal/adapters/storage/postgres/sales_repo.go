package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"pet-grooming-manager/internal/domain/shop"
)

// Las líneas de la venta van en JSONB: [{productId, quantity, price}].
const saleColumns = `
	id, user_id, client_id,
	lines, date, total, payment_method, paid,
	created_at, updated_at`

func scanSale(sc scanner) (shop.Sale, error) {
	var (
		v      shop.Sale
		lines  []byte
		client sql.NullString
	)
	if err := sc.Scan(
		&v.ID,
		&v.UserID,
		&client,
		&lines,
		&v.Date,
		&v.Total,
		&v.PaymentMethod,
		&v.Paid,
		&v.CreatedAt,
		&v.UpdatedAt,
	); err != nil {
		return shop.Sale{}, err
	}
	v.ClientID = client.String
	if len(lines) > 0 {
		if err := json.Unmarshal(lines, &v.Lines); err != nil {
			return shop.Sale{}, fmt.Errorf("decode sale lines: %w", err)
		}
	}
	return v, nil
}

func (s *Store) CreateSale(ctx context.Context, v shop.Sale) error {
	lines, err := encodeJSON(nonNil(v.Lines))
	if err != nil {
		return err
	}
	_, err = s.q.ExecContext(ctx, `
		INSERT INTO sales (`+saleColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		v.ID,
		v.UserID,
		optionalID(v.ClientID),
		lines,
		v.Date,
		v.Total,
		string(v.PaymentMethod),
		v.Paid,
		v.CreatedAt,
		v.UpdatedAt,
	)
	return err
}

func (s *Store) GetSale(ctx context.Context, id string) (shop.Sale, error) {
	return queryOne(ctx, s.q, scanSale,
		`SELECT `+saleColumns+` FROM sales WHERE id = $1 AND `+tenant(2),
		id, shop.UserFrom(ctx))
}

func (s *Store) ListSales(ctx context.Context) ([]shop.Sale, error) {
	return queryAll(ctx, s.q, scanSale,
		`SELECT `+saleColumns+` FROM sales WHERE `+tenant(1)+` ORDER BY seq`,
		shop.UserFrom(ctx))
}

func (s *Store) ListSalesByClient(ctx context.Context, clientID string) ([]shop.Sale, error) {
	return queryAll(ctx, s.q, scanSale,
		`SELECT `+saleColumns+` FROM sales WHERE client_id = $1 AND `+tenant(2)+` ORDER BY seq`,
		clientID, shop.UserFrom(ctx))
}

func (s *Store) HasSalesForProduct(ctx context.Context, productID string) (bool, error) {
	return exists(ctx, s.q,
		`SELECT 1 FROM sales WHERE lines @> jsonb_build_array(jsonb_build_object('productId', $1::text)) AND `+tenant(2),
		productID, shop.UserFrom(ctx))
}
