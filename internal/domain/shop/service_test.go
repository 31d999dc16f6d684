package shop_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"pet-grooming-manager/internal/adapters/storage/memory"
	"pet-grooming-manager/internal/domain/shop"
	"pet-grooming-manager/internal/ports/notify"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []notify.Event
}

func (r *recorder) Notify(_ context.Context, e notify.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) last() notify.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return notify.Event{}
	}
	return r.events[len(r.events)-1]
}

type fixture struct {
	svc   *shop.Service
	store *memory.Store
	rec   *recorder
	ctx   context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	n := 0
	rec := &recorder{}
	st := memory.NewStore()
	svc := shop.NewService(st,
		shop.WithNotifier(rec),
		shop.WithClock(func() time.Time { return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC) }),
		shop.WithIDGenerator(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	)
	return &fixture{svc: svc, store: st, rec: rec, ctx: shop.WithUser(context.Background(), "u1")}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// booked deja un cliente, un pet, un servicio de 100 y un agendamento.
func (f *fixture) booked(t *testing.T) (shop.Client, shop.Appointment) {
	t.Helper()
	c, err := f.svc.AddClient(f.ctx, shop.ClientInput{Name: "Ana", Phone: "(11) 99999-0000"})
	require.NoError(t, err)
	p, err := f.svc.AddPet(f.ctx, shop.PetInput{OwnerID: c.ID, Name: "Rex", Species: "cão"})
	require.NoError(t, err)
	s, err := f.svc.AddService(f.ctx, shop.ServiceInput{Name: "Banho", Price: dec("100"), Duration: 60})
	require.NoError(t, err)
	a, err := f.svc.AddAppointment(f.ctx, shop.AppointmentInput{
		ClientID: c.ID, PetID: p.ID, Date: "2024-05-11", Time: "10:00", ServiceIDs: []string{s.ID},
	})
	require.NoError(t, err)
	return c, a
}

func TestAddClient_RoundTrip(t *testing.T) {
	f := newFixture(t)

	c, err := f.svc.AddClient(f.ctx, shop.ClientInput{Name: " Ana ", Phone: "11999990000", City: "São Paulo"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", c.Name)
	assert.True(t, c.PendingBalance.IsZero())
	assert.Equal(t, "u1", c.UserID)

	got, err := f.svc.GetClient(f.ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, got)

	assert.Equal(t, notify.KindSuccess, f.rec.last().Kind)
	assert.Equal(t, "client.created", f.rec.last().Code)
}

func TestAddClient_Invalid(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AddClient(f.ctx, shop.ClientInput{Name: "Ana"})
	require.ErrorIs(t, err, shop.ErrInvalidInput)
	assert.Equal(t, notify.KindError, f.rec.last().Kind)

	items, err := f.svc.ListClients(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestUpdateClient_MissingIsNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.UpdateClient(f.ctx, "nope", shop.ClientInput{Name: "Ana", Phone: "1"})
	require.ErrorIs(t, err, shop.ErrNotFound)
}

func TestDeleteClient_BlockedUntilReferencesAreGone(t *testing.T) {
	f := newFixture(t)
	c, a := f.booked(t)

	// agendamento + pet
	err := f.svc.DeleteClient(f.ctx, c.ID)
	require.ErrorIs(t, err, shop.ErrInUse)
	assert.Equal(t, "client.delete_blocked", f.rec.last().Code)

	require.NoError(t, f.svc.DeleteAppointment(f.ctx, a.ID))

	// solo el pet
	err = f.svc.DeleteClient(f.ctx, c.ID)
	require.ErrorIs(t, err, shop.ErrInUse)
	_, err = f.svc.GetClient(f.ctx, c.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeletePet(f.ctx, a.PetID))

	require.NoError(t, f.svc.DeleteClient(f.ctx, c.ID))
	assert.Equal(t, "client.deleted", f.rec.last().Code)
	_, err = f.svc.GetClient(f.ctx, c.ID)
	require.ErrorIs(t, err, shop.ErrNotFound)
}

func TestDeleteClient_BlockedByAppointmentsOnly(t *testing.T) {
	f := newFixture(t)
	c, err := f.svc.AddClient(f.ctx, shop.ClientInput{Name: "Bia", Phone: "1"})
	require.NoError(t, err)

	// agendamento importado sin pet vigente del cliente
	require.NoError(t, f.store.CreateAppointment(f.ctx, shop.Appointment{
		ID: "legacy-1", UserID: "u1", ClientID: c.ID, PetID: "gone",
		Date: "2024-01-02", Time: "09:00", Status: shop.StatusScheduled,
	}))

	err = f.svc.DeleteClient(f.ctx, c.ID)
	require.ErrorIs(t, err, shop.ErrInUse)
	_, err = f.svc.GetClient(f.ctx, c.ID)
	require.NoError(t, err)
}

func TestDeleteClient_WithoutReferences(t *testing.T) {
	f := newFixture(t)
	c, err := f.svc.AddClient(f.ctx, shop.ClientInput{Name: "Bia", Phone: "1"})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteClient(f.ctx, c.ID))
	_, err = f.svc.GetClient(f.ctx, c.ID)
	require.ErrorIs(t, err, shop.ErrNotFound)
}

func TestAddPet_UnknownOwner(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AddPet(f.ctx, shop.PetInput{OwnerID: "ghost", Name: "Rex", Species: "cão"})
	require.ErrorIs(t, err, shop.ErrNotFound)
}

func TestDeleteCatalog_BlockedByReferences(t *testing.T) {
	f := newFixture(t)
	_, a := f.booked(t)

	err := f.svc.DeleteService(f.ctx, a.ServiceIDs[0])
	require.ErrorIs(t, err, shop.ErrInUse)

	err = f.svc.DeletePet(f.ctx, a.PetID)
	require.ErrorIs(t, err, shop.ErrInUse)

	p, err := f.svc.AddProduct(f.ctx, shop.ProductInput{Name: "Shampoo", Price: dec("10"), Stock: 5})
	require.NoError(t, err)
	_, err = f.svc.AddSale(f.ctx, shop.SaleInput{
		Lines:         []shop.SaleLine{{ProductID: p.ID, Quantity: 1, Price: dec("10")}},
		Total:         dec("10"),
		PaymentMethod: shop.PaymentCash,
		Paid:          true,
	})
	require.NoError(t, err)
	require.ErrorIs(t, f.svc.DeleteProduct(f.ctx, p.ID), shop.ErrInUse)
}

func TestAddAppointment_PriceFrozen(t *testing.T) {
	f := newFixture(t)
	c, err := f.svc.AddClient(f.ctx, shop.ClientInput{Name: "Ana", Phone: "1"})
	require.NoError(t, err)
	p, err := f.svc.AddPet(f.ctx, shop.PetInput{OwnerID: c.ID, Name: "Rex", Species: "cão"})
	require.NoError(t, err)
	bath, err := f.svc.AddService(f.ctx, shop.ServiceInput{Name: "Banho", Price: dec("50"), Duration: 30})
	require.NoError(t, err)
	cut, err := f.svc.AddService(f.ctx, shop.ServiceInput{Name: "Tosa", Price: dec("70"), Duration: 45})
	require.NoError(t, err)
	taxi, err := f.svc.AddTaxiDog(f.ctx, shop.TaxiDogInput{Neighborhood: "Centro", Price: dec("15")})
	require.NoError(t, err)

	a, err := f.svc.AddAppointment(f.ctx, shop.AppointmentInput{
		ClientID: c.ID, PetID: p.ID, Date: "2024-05-11", Time: "09:00",
		ServiceIDs: []string{bath.ID, cut.ID}, TaxiDogID: taxi.ID,
	})
	require.NoError(t, err)
	assert.True(t, dec("135").Equal(a.Price))
	assert.Equal(t, shop.StatusScheduled, a.Status)
	assert.False(t, a.Paid)

	_, err = f.svc.UpdateService(f.ctx, bath.ID, shop.ServiceInput{Name: "Banho", Price: dec("80"), Duration: 30})
	require.NoError(t, err)

	got, err := f.svc.GetAppointment(f.ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, dec("135").Equal(got.Price))
}

func TestAddAppointment_UnknownService(t *testing.T) {
	f := newFixture(t)
	c, err := f.svc.AddClient(f.ctx, shop.ClientInput{Name: "Ana", Phone: "1"})
	require.NoError(t, err)
	p, err := f.svc.AddPet(f.ctx, shop.PetInput{OwnerID: c.ID, Name: "Rex", Species: "cão"})
	require.NoError(t, err)

	_, err = f.svc.AddAppointment(f.ctx, shop.AppointmentInput{
		ClientID: c.ID, PetID: p.ID, Date: "2024-05-11", Time: "09:00", ServiceIDs: []string{"ghost"},
	})
	require.ErrorIs(t, err, shop.ErrNotFound)
}

func TestAddAppointment_PetOfAnotherClient(t *testing.T) {
	f := newFixture(t)
	ana, a := f.booked(t)
	bia, err := f.svc.AddClient(f.ctx, shop.ClientInput{Name: "Bia", Phone: "2"})
	require.NoError(t, err)

	_, err = f.svc.AddAppointment(f.ctx, shop.AppointmentInput{
		ClientID: bia.ID, PetID: a.PetID, Date: "2024-05-11", Time: "11:00", ServiceIDs: a.ServiceIDs,
	})
	require.ErrorIs(t, err, shop.ErrInvalidInput)
	assert.Equal(t, notify.KindError, f.rec.last().Kind)

	items, err := f.svc.ListAppointments(f.ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, ana.ID, items[0].ClientID)
}

func TestAppointmentTransitions(t *testing.T) {
	f := newFixture(t)
	_, a := f.booked(t)

	got, err := f.svc.ConfirmAppointment(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, shop.StatusConfirmed, got.Status)

	_, err = f.svc.ConfirmAppointment(f.ctx, a.ID)
	require.ErrorIs(t, err, shop.ErrInvalidTransition)

	got, err = f.svc.MarkAppointmentReady(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, shop.StatusReady, got.Status)

	_, err = f.svc.ConfirmAppointment(f.ctx, a.ID)
	require.ErrorIs(t, err, shop.ErrInvalidTransition)

	got, err = f.svc.FinalizeAppointment(f.ctx, a.ID, shop.PaymentPix)
	require.NoError(t, err)
	assert.Equal(t, shop.StatusFinalized, got.Status)
	assert.True(t, got.Paid)

	_, err = f.svc.MarkAppointmentReady(f.ctx, a.ID)
	require.ErrorIs(t, err, shop.ErrInvalidTransition)
	_, err = f.svc.FinalizeAppointment(f.ctx, a.ID, shop.PaymentCash)
	require.ErrorIs(t, err, shop.ErrInvalidTransition)
}

func TestFinalizedAppointment_CannotBeChanged(t *testing.T) {
	f := newFixture(t)
	_, a := f.booked(t)

	finalized, err := f.svc.FinalizeAppointment(f.ctx, a.ID, shop.PaymentCash)
	require.NoError(t, err)

	require.ErrorIs(t, f.svc.DeleteAppointment(f.ctx, a.ID), shop.ErrFinalized)
	got, err := f.svc.GetAppointment(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, finalized, got)

	_, err = f.svc.UpdateAppointment(f.ctx, a.ID, shop.AppointmentUpdate{Date: "2024-05-12", Time: "10:00", Notes: "reagendar"})
	require.ErrorIs(t, err, shop.ErrFinalized)
	got, err = f.svc.GetAppointment(f.ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, finalized, got)
	assert.Equal(t, "2024-05-11", got.Date)
}

func TestFinalizePending_AddsToBalance(t *testing.T) {
	f := newFixture(t)
	c, a := f.booked(t)

	_, err := f.svc.MarkAppointmentReady(f.ctx, a.ID)
	require.NoError(t, err)

	got, err := f.svc.FinalizeAppointment(f.ctx, a.ID, shop.PaymentPending)
	require.NoError(t, err)
	assert.False(t, got.Paid)
	assert.Equal(t, shop.PaymentPending, got.PaymentMethod)

	client, err := f.svc.GetClient(f.ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, dec("100").Equal(client.PendingBalance), client.PendingBalance.String())
}

func TestRegisterPaymentPendingAfterFinalize_CountsTwice(t *testing.T) {
	f := newFixture(t)
	c, a := f.booked(t)

	_, err := f.svc.FinalizeAppointment(f.ctx, a.ID, shop.PaymentPending)
	require.NoError(t, err)
	_, err = f.svc.RegisterPayment(f.ctx, a.ID, shop.PaymentPending)
	require.NoError(t, err)

	client, err := f.svc.GetClient(f.ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, dec("200").Equal(client.PendingBalance), client.PendingBalance.String())
}

func TestRegisterPayment_KeepsStatus(t *testing.T) {
	f := newFixture(t)
	_, a := f.booked(t)

	got, err := f.svc.RegisterPayment(f.ctx, a.ID, shop.PaymentDebit)
	require.NoError(t, err)
	assert.True(t, got.Paid)
	assert.Equal(t, shop.StatusScheduled, got.Status)

	_, err = f.svc.RegisterPayment(f.ctx, a.ID, shop.PaymentMethod("cheque"))
	require.ErrorIs(t, err, shop.ErrInvalidInput)
}

func TestAddSale_DecrementsStockAndChargesClient(t *testing.T) {
	f := newFixture(t)
	c, err := f.svc.AddClient(f.ctx, shop.ClientInput{Name: "Ana", Phone: "1"})
	require.NoError(t, err)
	p, err := f.svc.AddProduct(f.ctx, shop.ProductInput{Name: "Perfume", Price: dec("120"), Stock: 15})
	require.NoError(t, err)

	sale, err := f.svc.AddSale(f.ctx, shop.SaleInput{
		ClientID:      c.ID,
		Lines:         []shop.SaleLine{{ProductID: p.ID, Quantity: 2, Price: dec("120")}},
		Total:         dec("240"),
		PaymentMethod: shop.PaymentPending,
		Paid:          true,
	})
	require.NoError(t, err)
	assert.False(t, sale.Paid)
	assert.Equal(t, "2024-05-10", sale.Date)

	prod, err := f.svc.GetProduct(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 13, prod.Stock)

	client, err := f.svc.GetClient(f.ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, dec("240").Equal(client.PendingBalance))
}

func TestAddSale_StockFloorsAtZero(t *testing.T) {
	f := newFixture(t)
	p, err := f.svc.AddProduct(f.ctx, shop.ProductInput{Name: "Laço", Price: dec("5"), Stock: 1})
	require.NoError(t, err)

	_, err = f.svc.AddSale(f.ctx, shop.SaleInput{
		Lines:         []shop.SaleLine{{ProductID: p.ID, Quantity: 3, Price: dec("5")}},
		Total:         dec("15"),
		PaymentMethod: shop.PaymentCash,
		Paid:          true,
	})
	require.NoError(t, err)

	prod, err := f.svc.GetProduct(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, prod.Stock)
}

func TestAddSale_UnknownProductRollsBack(t *testing.T) {
	f := newFixture(t)
	p, err := f.svc.AddProduct(f.ctx, shop.ProductInput{Name: "Laço", Price: dec("5"), Stock: 4})
	require.NoError(t, err)

	_, err = f.svc.AddSale(f.ctx, shop.SaleInput{
		Lines: []shop.SaleLine{
			{ProductID: p.ID, Quantity: 1, Price: dec("5")},
			{ProductID: "ghost", Quantity: 1, Price: dec("5")},
		},
		Total:         dec("10"),
		PaymentMethod: shop.PaymentCash,
		Paid:          true,
	})
	require.ErrorIs(t, err, shop.ErrNotFound)

	prod, err := f.svc.GetProduct(f.ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, prod.Stock)

	sales, err := f.svc.ListSales(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestSettlePendingPayment(t *testing.T) {
	f := newFixture(t)
	c, a := f.booked(t)
	_, err := f.svc.FinalizeAppointment(f.ctx, a.ID, shop.PaymentPending)
	require.NoError(t, err)

	_, err = f.svc.SettlePendingPayment(f.ctx, c.ID, dec("150"), shop.PaymentCash)
	require.ErrorIs(t, err, shop.ErrExceedsBalance)

	_, err = f.svc.SettlePendingPayment(f.ctx, c.ID, dec("-1"), shop.PaymentCash)
	require.ErrorIs(t, err, shop.ErrInvalidInput)

	got, err := f.svc.SettlePendingPayment(f.ctx, c.ID, dec("40"), shop.PaymentPix)
	require.NoError(t, err)
	assert.True(t, dec("60").Equal(got.PendingBalance))

	got, err = f.svc.SettlePendingPayment(f.ctx, c.ID, dec("60"), shop.PaymentPix)
	require.NoError(t, err)
	assert.True(t, got.PendingBalance.IsZero())
}

func TestUpdateClient_KeepsPendingBalance(t *testing.T) {
	f := newFixture(t)
	c, a := f.booked(t)
	_, err := f.svc.FinalizeAppointment(f.ctx, a.ID, shop.PaymentPending)
	require.NoError(t, err)

	got, err := f.svc.UpdateClient(f.ctx, c.ID, shop.ClientInput{Name: "Ana Maria", Phone: "1"})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", got.Name)
	assert.True(t, dec("100").Equal(got.PendingBalance))
}

func TestExpenses_CRUD(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AddExpense(f.ctx, shop.ExpenseInput{Description: "Luz", Amount: dec("0"), Category: "contas", Date: "2024-05-01"})
	require.ErrorIs(t, err, shop.ErrInvalidInput)

	e, err := f.svc.AddExpense(f.ctx, shop.ExpenseInput{Description: "Luz", Amount: dec("42.5"), Category: "contas", Date: "2024-05-01"})
	require.NoError(t, err)

	e, err = f.svc.UpdateExpense(f.ctx, e.ID, shop.ExpenseInput{Description: "Luz", Amount: dec("45"), Category: "contas", Date: "2024-05-02"})
	require.NoError(t, err)
	assert.Equal(t, "2024-05-02", e.Date)

	require.NoError(t, f.svc.DeleteExpense(f.ctx, e.ID))
	require.ErrorIs(t, f.svc.DeleteExpense(f.ctx, e.ID), shop.ErrNotFound)
}

func TestProfile_EmptyThenSaved(t *testing.T) {
	f := newFixture(t)

	p, err := f.svc.GetProfile(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UserID)
	assert.Empty(t, p.BusinessName)

	_, err = f.svc.UpdateProfile(f.ctx, shop.ProfileInput{Name: "Ana"})
	require.ErrorIs(t, err, shop.ErrInvalidInput)

	_, err = f.svc.UpdateProfile(f.ctx, shop.ProfileInput{Name: "Ana", BusinessName: "Pet Feliz"})
	require.NoError(t, err)
	saved, err := f.svc.UpdateProfile(f.ctx, shop.ProfileInput{Name: "Ana", BusinessName: "Pet Feliz Banho"})
	require.NoError(t, err)

	p, err = f.svc.GetProfile(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, p.ID)
	assert.Equal(t, "Pet Feliz Banho", p.BusinessName)
}

func TestTenantIsolation(t *testing.T) {
	f := newFixture(t)
	c, err := f.svc.AddClient(f.ctx, shop.ClientInput{Name: "Ana", Phone: "1"})
	require.NoError(t, err)

	other := shop.WithUser(context.Background(), "u2")
	_, err = f.svc.GetClient(other, c.ID)
	require.ErrorIs(t, err, shop.ErrNotFound)

	items, err := f.svc.ListClients(other)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestHistory_NewestFirst(t *testing.T) {
	items := []shop.Appointment{
		{ID: "a", Date: "2024-05-01", Time: "10:00"},
		{ID: "b", Date: "2024-05-03", Time: "09:00"},
		{ID: "c", Date: "2024-05-03", Time: "15:00"},
	}
	shop.SortByDateDesc(items)
	assert.Equal(t, "c", items[0].ID)
	assert.Equal(t, "b", items[1].ID)
	assert.Equal(t, "a", items[2].ID)
}
