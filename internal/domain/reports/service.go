package reports

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-grooming-manager/internal/domain/shop"

	"github.com/shopspring/decimal"
)

var ErrInvalidPeriod = errors.New("invalid period")

// Source es lo mínimo del Entity Store que necesita el rollup.
type Source interface {
	ListSales(ctx context.Context) ([]shop.Sale, error)
	ListAppointments(ctx context.Context) ([]shop.Appointment, error)
	ListExpenses(ctx context.Context) ([]shop.Expense, error)
}

type Service struct {
	src Source
}

func NewService(src Source) *Service {
	return &Service{src: src}
}

// Summary es el resultado de un período: ingresos, gastos y saldo.
type Summary struct {
	Period   string
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
}

// Snapshot lee todo de nuevo en cada llamada.
func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	sales, err := s.src.ListSales(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list sales: %w", err)
	}
	appts, err := s.src.ListAppointments(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list appointments: %w", err)
	}
	exps, err := s.src.ListExpenses(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list expenses: %w", err)
	}
	return Snapshot{Sales: sales, Appointments: appts, Expenses: exps}, nil
}

func (s *Service) Daily(ctx context.Context, date string) (Summary, error) {
	date = strings.TrimSpace(date)
	if _, err := time.Parse(shop.DateLayout, date); err != nil {
		return Summary{}, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidPeriod)
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return Summary{}, err
	}
	return summarize(date, DailyIncome(snap, date), DailyExpenses(snap, date)), nil
}

func (s *Service) Monthly(ctx context.Context, year, month int) (Summary, error) {
	if year < 1 || year > 9999 || month < 1 || month > 12 {
		return Summary{}, fmt.Errorf("%w: year/month out of range", ErrInvalidPeriod)
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return Summary{}, err
	}
	return summarize(MonthPrefix(year, month), MonthlyIncome(snap, year, month), MonthlyExpenses(snap, year, month)), nil
}

func summarize(period string, in, out decimal.Decimal) Summary {
	return Summary{
		Period:   period,
		Income:   in,
		Expenses: out,
		Balance:  in.Sub(out),
	}
}
