package reports

import (
	"fmt"
	"strings"

	"pet-grooming-manager/internal/domain/shop"

	"github.com/shopspring/decimal"
)

// Snapshot es la foto del Entity Store sobre la que se calculan los totales.
// Las funciones de este archivo son puras: no mutan ni cachean nada.
type Snapshot struct {
	Sales        []shop.Sale
	Appointments []shop.Appointment
	Expenses     []shop.Expense
}

// MonthPrefix devuelve "YYYY-MM" para filtrar fechas del mes.
func MonthPrefix(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

func income(s Snapshot, match func(date string) bool) decimal.Decimal {
	total := decimal.Zero
	for _, sale := range s.Sales {
		if sale.Paid && match(sale.Date) {
			total = total.Add(sale.Total)
		}
	}
	for _, a := range s.Appointments {
		if a.Paid && match(a.Date) {
			total = total.Add(a.Price)
		}
	}
	return total
}

func expenses(s Snapshot, match func(date string) bool) decimal.Decimal {
	total := decimal.Zero
	for _, e := range s.Expenses {
		if match(e.Date) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

func onDay(date string) func(string) bool {
	return func(d string) bool { return d == date }
}

func inMonth(year, month int) func(string) bool {
	prefix := MonthPrefix(year, month)
	return func(d string) bool { return strings.HasPrefix(d, prefix) }
}

// DailyIncome suma ventas y atendimentos pagos del día.
func DailyIncome(s Snapshot, date string) decimal.Decimal {
	return income(s, onDay(date))
}

func MonthlyIncome(s Snapshot, year, month int) decimal.Decimal {
	return income(s, inMonth(year, month))
}

func DailyExpenses(s Snapshot, date string) decimal.Decimal {
	return expenses(s, onDay(date))
}

func MonthlyExpenses(s Snapshot, year, month int) decimal.Decimal {
	return expenses(s, inMonth(year, month))
}
