package reports

import (
	"context"
	"errors"
	"testing"

	"pet-grooming-manager/internal/domain/shop"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func maySnapshot() Snapshot {
	return Snapshot{
		Sales: []shop.Sale{
			{ID: "s1", Date: "2024-05-03", Total: d(120), Paid: true},
			{ID: "s2", Date: "2024-05-03", Total: d(80), Paid: false},
			{ID: "s3", Date: "2024-06-01", Total: d(999), Paid: true},
		},
		Appointments: []shop.Appointment{
			{ID: "a1", Date: "2024-05-20", Price: d(55), Paid: true},
			{ID: "a2", Date: "2024-05-20", Price: d(40), Paid: false},
		},
		Expenses: []shop.Expense{
			{ID: "e1", Date: "2024-05-03", Amount: d(30)},
			{ID: "e2", Date: "2024-05-28", Amount: decimal.RequireFromString("12.50")},
			{ID: "e3", Date: "2024-04-30", Amount: d(7)},
		},
	}
}

func TestMonthlyIncome_PaidOnly(t *testing.T) {
	snap := maySnapshot()
	assert.True(t, MonthlyIncome(snap, 2024, 5).Equal(d(175)), "got %s", MonthlyIncome(snap, 2024, 5))
}

func TestDailyIncome_ExactDate(t *testing.T) {
	snap := maySnapshot()
	assert.True(t, DailyIncome(snap, "2024-05-03").Equal(d(120)))
	assert.True(t, DailyIncome(snap, "2024-05-20").Equal(d(55)))
	assert.True(t, DailyIncome(snap, "2024-05-04").IsZero())
}

func TestDailyIncome_Idempotent(t *testing.T) {
	snap := maySnapshot()
	first := DailyIncome(snap, "2024-05-03")
	second := DailyIncome(snap, "2024-05-03")
	assert.True(t, first.Equal(second))
}

func TestExpenses_DailyAndMonthly(t *testing.T) {
	snap := maySnapshot()
	assert.True(t, DailyExpenses(snap, "2024-05-03").Equal(d(30)))
	assert.Equal(t, "42.5", MonthlyExpenses(snap, 2024, 5).String())
	assert.True(t, MonthlyExpenses(snap, 2024, 4).Equal(d(7)))
}

func TestMonthPrefix_Pads(t *testing.T) {
	assert.Equal(t, "2024-05", MonthPrefix(2024, 5))
	assert.Equal(t, "0999-12", MonthPrefix(999, 12))
}

type fakeSource struct {
	snap Snapshot
	err  error
}

func (f fakeSource) ListSales(context.Context) ([]shop.Sale, error) { return f.snap.Sales, f.err }
func (f fakeSource) ListAppointments(context.Context) ([]shop.Appointment, error) {
	return f.snap.Appointments, nil
}
func (f fakeSource) ListExpenses(context.Context) ([]shop.Expense, error) { return f.snap.Expenses, nil }

func TestService_Monthly(t *testing.T) {
	svc := NewService(fakeSource{snap: maySnapshot()})

	sum, err := svc.Monthly(context.Background(), 2024, 5)
	require.NoError(t, err)
	assert.Equal(t, "2024-05", sum.Period)
	assert.True(t, sum.Income.Equal(d(175)))
	assert.Equal(t, "132.5", sum.Balance.String())
}

func TestService_RejectsBadPeriods(t *testing.T) {
	svc := NewService(fakeSource{})

	_, err := svc.Daily(context.Background(), "03/05/2024")
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	_, err = svc.Monthly(context.Background(), 2024, 13)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestService_PropagatesStoreErrors(t *testing.T) {
	boom := errors.New("boom")
	svc := NewService(fakeSource{err: boom})

	_, err := svc.Daily(context.Background(), "2024-05-03")
	assert.ErrorIs(t, err, boom)
}
