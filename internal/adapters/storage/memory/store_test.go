package memory

import (
	"context"
	"errors"
	"testing"

	"pet-grooming-manager/internal/domain/shop"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ListKeepsInsertionOrder(t *testing.T) {
	st := NewStore()
	ctx := context.Background()

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, st.CreateClient(ctx, shop.Client{ID: id, Name: id}))
	}

	items, err := st.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "c", items[0].ID)
	assert.Equal(t, "a", items[1].ID)
	assert.Equal(t, "b", items[2].ID)
}

func TestStore_UpdateDeleteMissing_ReturnNotFound(t *testing.T) {
	st := NewStore()
	ctx := context.Background()

	err := st.UpdateProduct(ctx, shop.Product{ID: "nope"})
	assert.ErrorIs(t, err, shop.ErrNotFound)

	err = st.DeleteProduct(ctx, "nope")
	assert.ErrorIs(t, err, shop.ErrNotFound)

	_, err = st.GetProduct(ctx, "nope")
	assert.ErrorIs(t, err, shop.ErrNotFound)
}

func TestStore_WithinTx_RollsBackOnError(t *testing.T) {
	st := NewStore()
	ctx := context.Background()
	require.NoError(t, st.CreateProduct(ctx, shop.Product{ID: "p1", Stock: 10, Price: decimal.NewFromInt(5)}))

	boom := errors.New("boom")
	err := st.WithinTx(ctx, func(tx shop.Repository) error {
		p, err := tx.GetProduct(ctx, "p1")
		require.NoError(t, err)
		p.Stock = 1
		require.NoError(t, tx.UpdateProduct(ctx, p))
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := st.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 10, p.Stock)
}

func TestStore_WithinTx_CommitsOnSuccess(t *testing.T) {
	st := NewStore()
	ctx := context.Background()
	require.NoError(t, st.CreateProduct(ctx, shop.Product{ID: "p1", Stock: 10}))

	err := st.WithinTx(ctx, func(tx shop.Repository) error {
		p, _ := tx.GetProduct(ctx, "p1")
		p.Stock = 7
		if err := tx.UpdateProduct(ctx, p); err != nil {
			return err
		}
		return tx.CreateSale(ctx, shop.Sale{ID: "s1", Lines: []shop.SaleLine{{ProductID: "p1", Quantity: 3}}})
	})
	require.NoError(t, err)

	p, _ := st.GetProduct(ctx, "p1")
	assert.Equal(t, 7, p.Stock)

	used, err := st.HasSalesForProduct(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, used)
}

func TestStore_TenantIsolation(t *testing.T) {
	st := NewStore()
	alice := shop.WithUser(context.Background(), "alice")
	bob := shop.WithUser(context.Background(), "bob")

	require.NoError(t, st.CreateClient(alice, shop.Client{ID: "c1", UserID: "alice", Name: "Ana"}))

	_, err := st.GetClient(bob, "c1")
	assert.ErrorIs(t, err, shop.ErrNotFound)

	items, err := st.ListClients(bob)
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.ErrorIs(t, st.DeleteClient(bob, "c1"), shop.ErrNotFound)

	got, err := st.GetClient(alice, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
}

func TestStore_ReturnedRecordsAreCopies(t *testing.T) {
	st := NewStore()
	ctx := context.Background()
	require.NoError(t, st.CreateAppointment(ctx, shop.Appointment{ID: "a1", ServiceIDs: []string{"s1"}}))

	a, _ := st.GetAppointment(ctx, "a1")
	a.ServiceIDs[0] = "mutated"

	used, err := st.HasAppointmentsForService(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, used)
}

func TestStore_ProfilePerUser(t *testing.T) {
	st := NewStore()
	ctx := shop.WithUser(context.Background(), "u1")

	_, err := st.GetProfile(ctx)
	require.ErrorIs(t, err, shop.ErrNotFound)

	require.NoError(t, st.SaveProfile(ctx, shop.UserProfile{ID: "p1", UserID: "u1", BusinessName: "Pet Feliz"}))
	require.NoError(t, st.SaveProfile(ctx, shop.UserProfile{ID: "p1", UserID: "u1", BusinessName: "Pet Feliz II"}))

	p, err := st.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Pet Feliz II", p.BusinessName)
}

func TestStore_DeleteClient_DetachesSales(t *testing.T) {
	st := NewStore()
	ctx := context.Background()

	require.NoError(t, st.CreateClient(ctx, shop.Client{ID: "c1", Name: "Ana"}))
	require.NoError(t, st.CreateSale(ctx, shop.Sale{ID: "s1", ClientID: "c1", Total: decimal.NewFromInt(30), Paid: true}))

	require.NoError(t, st.DeleteClient(ctx, "c1"))

	v, err := st.GetSale(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, v.ClientID)
	assert.True(t, v.Total.Equal(decimal.NewFromInt(30)))
}
