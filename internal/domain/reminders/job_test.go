package reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-grooming-manager/internal/adapters/storage/memory"
	"pet-grooming-manager/internal/domain/shop"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct{ phone, body string }

type fakeSender struct {
	msgs   []sent
	failOn string
}

func (f *fakeSender) Send(_ context.Context, phone, body string) error {
	if phone == f.failOn {
		return errors.New("provider down")
	}
	f.msgs = append(f.msgs, sent{phone, body})
	return nil
}

func seed(t *testing.T) *memory.Store {
	t.Helper()
	st := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, st.CreateClient(ctx, shop.Client{ID: "c1", UserID: "u1", Name: "Ana", Phone: "11999990000"}))
	require.NoError(t, st.CreateClient(ctx, shop.Client{ID: "c2", UserID: "u1", Name: "Bia", Phone: "11888880000"}))
	require.NoError(t, st.CreatePet(ctx, shop.Pet{ID: "p1", UserID: "u1", OwnerID: "c1", Name: "Rex"}))
	require.NoError(t, st.CreatePet(ctx, shop.Pet{ID: "p2", UserID: "u1", OwnerID: "c2", Name: "Mel"}))

	appts := []shop.Appointment{
		{ID: "a1", UserID: "u1", ClientID: "c1", PetID: "p1", Date: "2024-05-11", Time: "09:30", Status: shop.StatusScheduled},
		{ID: "a2", UserID: "u1", ClientID: "c2", PetID: "p2", Date: "2024-05-11", Time: "14:00", Status: shop.StatusConfirmed},
		{ID: "a3", UserID: "u1", ClientID: "c1", PetID: "p1", Date: "2024-05-11", Time: "16:00", Status: shop.StatusFinalized},
		{ID: "a4", UserID: "u1", ClientID: "c1", PetID: "p1", Date: "2024-05-12", Time: "10:00", Status: shop.StatusScheduled},
	}
	for _, a := range appts {
		require.NoError(t, st.CreateAppointment(ctx, a))
	}
	return st
}

func fixedNow() time.Time { return time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC) }

func TestRun_SendsTomorrowOpenAppointments(t *testing.T) {
	snd := &fakeSender{}
	j := NewJob(seed(t), snd)
	j.now = fixedNow

	res, err := j.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2024-05-11", res.Date)
	assert.Equal(t, 2, res.Sent)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 0, res.Failed)

	require.Len(t, snd.msgs, 2)
	assert.Equal(t, "11999990000", snd.msgs[0].phone)
	assert.Equal(t,
		"Olá Ana, gostaríamos de lembrar que o Rex tem um agendamento para o dia 11/05/2024 às 09:30. Por favor, confirme sua presença. Obrigado!",
		snd.msgs[0].body)
}

func TestRun_SendFailureDoesNotStopOthers(t *testing.T) {
	snd := &fakeSender{failOn: "11999990000"}
	j := NewJob(seed(t), snd)
	j.now = fixedNow

	res, err := j.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent)
	assert.Equal(t, 1, res.Failed)
}

func TestSchedule_InvalidSpec(t *testing.T) {
	_, err := Schedule("not a cron", NewJob(memory.NewStore(), &fakeSender{}))
	assert.Error(t, err)
}

func TestSchedule_RegistersEntry(t *testing.T) {
	c, err := Schedule("0 9 * * *", NewJob(memory.NewStore(), &fakeSender{}))
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
}
