package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"pet-grooming-manager/internal/domain/shop"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db), mock
}

func TestGetClient_ScansRowWithTenantFilter(t *testing.T) {
	st, mock := newMock(t)
	ctx := shop.WithUser(context.Background(), "u1")
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "name", "phone", "email", "address", "neighborhood", "city",
		"pending_balance", "notes", "created_at", "updated_at",
	}).AddRow("c1", "u1", "Ana", "11999990000", "", "Rua A", "Centro", "SP", "25.50", "", now, now)

	mock.ExpectQuery("SELECT .+ FROM clients WHERE id = \\$1").
		WithArgs("c1", "u1").
		WillReturnRows(rows)

	c, err := st.GetClient(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", c.Name)
	assert.True(t, c.PendingBalance.Equal(decimal.RequireFromString("25.50")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetClient_NoRows_ReturnsNotFound(t *testing.T) {
	st, mock := newMock(t)

	mock.ExpectQuery("SELECT .+ FROM clients").
		WithArgs("missing", "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := st.GetClient(context.Background(), "missing")
	assert.ErrorIs(t, err, shop.ErrNotFound)
}

func TestUpdateClient_NoRowsAffected_ReturnsNotFound(t *testing.T) {
	st, mock := newMock(t)

	mock.ExpectExec("UPDATE clients").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := st.UpdateClient(context.Background(), shop.Client{ID: "nope"})
	assert.ErrorIs(t, err, shop.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteProduct_OK(t *testing.T) {
	st, mock := newMock(t)

	mock.ExpectExec("DELETE FROM products").
		WithArgs("p1", "").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, st.DeleteProduct(context.Background(), "p1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAppointment_DecodesServiceIDs(t *testing.T) {
	st, mock := newMock(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "pet_id", "client_id", "date", "time", "service_ids", "taxi_dog_id",
		"status", "price", "paid", "payment_method", "notes", "created_at", "updated_at",
	}).AddRow("a1", "", "p1", "c1", "2024-05-10", "09:30", []byte(`["s1","s2"]`), "",
		"confirmado", "120.00", false, "", "", now, now)

	mock.ExpectQuery("SELECT .+ FROM appointments WHERE id = \\$1").
		WillReturnRows(rows)

	a, err := st.GetAppointment(context.Background(), "a1")
	require.NoError(t, err)
	assert.Equal(t, []string{"s1", "s2"}, a.ServiceIDs)
	assert.Equal(t, shop.StatusConfirmed, a.Status)
	assert.True(t, a.Price.Equal(decimal.NewFromInt(120)))
}

func TestGetPet_NullableColumns(t *testing.T) {
	st, mock := newMock(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "owner_id", "name", "species", "breed", "age", "weight", "notes",
		"created_at", "updated_at",
	}).AddRow("p1", "", "c1", "Rex", "dog", "", nil, "4.5", "", now, now)

	mock.ExpectQuery("SELECT .+ FROM pets").WillReturnRows(rows)

	p, err := st.GetPet(context.Background(), "p1")
	require.NoError(t, err)
	assert.Nil(t, p.Age)
	require.NotNil(t, p.Weight)
	assert.Equal(t, "4.5", p.Weight.String())
}

func TestHasSalesForProduct(t *testing.T) {
	st, mock := newMock(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("p1", "").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := st.HasSalesForProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	st, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE products").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO sales").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := st.WithinTx(context.Background(), func(tx shop.Repository) error {
		if err := tx.UpdateProduct(context.Background(), shop.Product{ID: "p1", Stock: 13}); err != nil {
			return err
		}
		return tx.CreateSale(context.Background(), shop.Sale{ID: "s1", PaymentMethod: shop.PaymentCash, Paid: true})
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	st, mock := newMock(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE products").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := st.WithinTx(context.Background(), func(tx shop.Repository) error {
		if err := tx.UpdateProduct(context.Background(), shop.Product{ID: "p1"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAppointment_EmptyTaxiDogIsNull(t *testing.T) {
	st, mock := newMock(t)
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO appointments").
		WithArgs("a1", "u1", "p1", "c1", "2024-05-11", "10:00", `["s1"]`, nil,
			"agendado", sqlmock.AnyArg(), false, "", "", now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := st.CreateAppointment(context.Background(), shop.Appointment{
		ID: "a1", UserID: "u1", PetID: "p1", ClientID: "c1", Date: "2024-05-11", Time: "10:00",
		ServiceIDs: []string{"s1"}, Status: shop.StatusScheduled, Price: decimal.NewFromInt(100),
		CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSale_NullClientIsWalkIn(t *testing.T) {
	st, mock := newMock(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "client_id", "lines", "date", "total", "payment_method", "paid",
		"created_at", "updated_at",
	}).AddRow("s1", "", nil, []byte(`[{"productId":"p1","quantity":2,"price":"15"}]`),
		"2024-05-10", "30", "cash", true, now, now)

	mock.ExpectQuery("SELECT .+ FROM sales WHERE id = \\$1").WillReturnRows(rows)

	v, err := st.GetSale(context.Background(), "s1")
	require.NoError(t, err)
	assert.Empty(t, v.ClientID)
	require.Len(t, v.Lines, 1)
	assert.Equal(t, 2, v.Lines[0].Quantity)
}

func TestInitMigration_DeclaresForeignKeys(t *testing.T) {
	b, err := migrationFiles.ReadFile("migrations/000001_init.up.sql")
	require.NoError(t, err)
	ddl := string(b)

	for _, fk := range []string{
		`pet_id\s+TEXT NOT NULL REFERENCES pets \(id\)`,
		`client_id\s+TEXT NOT NULL REFERENCES clients \(id\)`,
		`taxi_dog_id\s+TEXT REFERENCES taxi_dogs \(id\)`,
		`client_id\s+TEXT REFERENCES clients \(id\) ON DELETE SET NULL`,
	} {
		assert.Regexp(t, regexp.MustCompile(fk), ddl)
	}
}

func TestMigrationSource_StartsAtVersionOne(t *testing.T) {
	src, err := Source()
	require.NoError(t, err)
	defer src.Close()

	v, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), v)
}
