package twilio

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

type fakeAPI struct {
	params *twilioApi.CreateMessageParams
	err    error
}

func (f *fakeAPI) CreateMessage(p *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	f.params = p
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM123"
	return &twilioApi.ApiV2010Message{Sid: &sid}, nil
}

func TestSend_BuildsWhatsAppParams(t *testing.T) {
	api := &fakeAPI{}
	s := newSender(api, "whatsapp:+14155238886", nil)

	err := s.Send(context.Background(), "(11) 98765-4321", "Olá!")
	require.NoError(t, err)

	require.NotNil(t, api.params)
	assert.Equal(t, "whatsapp:+5511987654321", *api.params.To)
	assert.Equal(t, "whatsapp:+14155238886", *api.params.From)
	assert.Equal(t, "Olá!", *api.params.Body)
}

func TestSend_WrapsAPIError(t *testing.T) {
	boom := errors.New("boom")
	s := newSender(&fakeAPI{err: boom}, "+5511000000000", nil)

	err := s.Send(context.Background(), "11999990000", "x")
	assert.ErrorIs(t, err, boom)
}

func TestSend_CanceledContext(t *testing.T) {
	api := &fakeAPI{}
	s := newSender(api, "+5511000000000", nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Send(ctx, "11999990000", "x"), context.Canceled)
	assert.Nil(t, api.params)
}

func TestNewSender_RequiresCredentials(t *testing.T) {
	_, err := NewSender(Config{AccountSID: "AC1"}, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestLogSender_NeverFails(t *testing.T) {
	assert.NoError(t, NewLogSender(nil).Send(context.Background(), "11 9999", "hi"))
}
