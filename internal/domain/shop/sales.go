package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type SaleInput struct {
	ClientID      string
	Lines         []SaleLine
	Total         decimal.Decimal
	PaymentMethod PaymentMethod
	Paid          bool
}

func (in SaleInput) validate() error {
	if len(in.Lines) == 0 {
		return invalid("products")
	}
	for _, l := range in.Lines {
		if strings.TrimSpace(l.ProductID) == "" {
			return invalid("product_id")
		}
		if l.Quantity <= 0 {
			return invalid("quantity")
		}
		if l.Price.IsNegative() {
			return invalid("price")
		}
	}
	if in.Total.IsNegative() {
		return invalid("total")
	}
	if !in.PaymentMethod.Valid() {
		return invalid("payment_method")
	}
	return nil
}

// AddSale registra la venta con fecha de hoy, descuenta stock (piso 0) y, si
// hay cliente y no está paga, suma el total al saldo pendiente. Las tres
// escrituras van en una sola transacción.
func (s *Service) AddSale(ctx context.Context, in SaleInput) (Sale, error) {
	if err := in.validate(); err != nil {
		return Sale{}, s.reject(ctx, "sale.invalid", "Dados da venda inválidos.", "", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sale := Sale{
		ID:            s.newID(),
		UserID:        UserFrom(ctx),
		ClientID:      strings.TrimSpace(in.ClientID),
		Lines:         make([]SaleLine, 0, len(in.Lines)),
		Date:          s.today(),
		Total:         in.Total,
		PaymentMethod: in.PaymentMethod,
		// "pending" nunca queda como pago.
		Paid:      in.Paid && in.PaymentMethod.Paid(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, l := range in.Lines {
		l.ProductID = strings.TrimSpace(l.ProductID)
		sale.Lines = append(sale.Lines, l)
	}

	err := s.repo.WithinTx(ctx, func(tx Repository) error {
		if sale.ClientID != "" {
			if _, err := tx.GetClient(ctx, sale.ClientID); err != nil {
				return err
			}
		}

		for _, l := range sale.Lines {
			p, err := tx.GetProduct(ctx, l.ProductID)
			if err != nil {
				return err
			}
			p.Stock -= l.Quantity
			if p.Stock < 0 {
				p.Stock = 0
			}
			p.UpdatedAt = now
			if err := tx.UpdateProduct(ctx, p); err != nil {
				return err
			}
		}

		if err := tx.CreateSale(ctx, sale); err != nil {
			return err
		}

		if sale.ClientID != "" && !sale.Paid {
			return addPending(ctx, tx, sale.ClientID, sale.Total, now)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Sale{}, s.reject(ctx, "sale.rejected", "Cliente ou produto não encontrado.", "",
				fmt.Errorf("%w: client or product", err))
		}
		return Sale{}, s.storeFailure(ctx, "sale.create", err)
	}

	s.log.Info("sale recorded", map[string]any{
		"sale_id": sale.ID,
		"total":   sale.Total.String(),
		"paid":    sale.Paid,
	})
	s.success(ctx, "sale.created", "Venda registrada com sucesso!", sale.ID)
	return sale, nil
}

func (s *Service) GetSale(ctx context.Context, id string) (Sale, error) {
	return s.repo.GetSale(ctx, id)
}

func (s *Service) ListSales(ctx context.Context) ([]Sale, error) {
	return s.repo.ListSales(ctx)
}
