package twilio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pet-grooming-manager/internal/domain/shop"
	"pet-grooming-manager/internal/platform/logger"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

var ErrNotConfigured = errors.New("twilio credentials not configured")

// messageAPI es el subconjunto de la API REST de Twilio que usamos.
type messageAPI interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

type Config struct {
	AccountSID string
	AuthToken  string
	From       string // número WhatsApp habilitado, con o sin prefijo whatsapp:
}

// Sender manda mensajes WhatsApp por Twilio.
type Sender struct {
	api  messageAPI
	from string
	log  logger.Logger
}

func NewSender(cfg Config, l logger.Logger) (*Sender, error) {
	if strings.TrimSpace(cfg.AccountSID) == "" || strings.TrimSpace(cfg.AuthToken) == "" || strings.TrimSpace(cfg.From) == "" {
		return nil, ErrNotConfigured
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return newSender(client.Api, cfg.From, l), nil
}

func newSender(api messageAPI, from string, l logger.Logger) *Sender {
	if l == nil {
		l = logger.Nop()
	}
	return &Sender{api: api, from: senderAddr(from), log: l}
}

// whatsappAddr normaliza a whatsapp:+<dígitos>.
func whatsappAddr(phone string) string {
	phone = strings.TrimPrefix(strings.TrimSpace(phone), "whatsapp:")
	return "whatsapp:+" + shop.WhatsAppPhone(phone)
}

// senderAddr respeta el número del remitente tal cual (puede no ser de Brasil).
func senderAddr(from string) string {
	from = strings.TrimPrefix(strings.TrimSpace(from), "whatsapp:")
	if !strings.HasPrefix(from, "+") {
		from = "+" + from
	}
	return "whatsapp:" + from
}

// Send no reintenta; el SDK no expone contexto, así que solo se chequea ctx antes.
func (s *Sender) Send(ctx context.Context, phone, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(phone) == "" {
		return errors.New("twilio: empty phone")
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(whatsappAddr(phone))
	params.SetFrom(s.from)
	params.SetBody(body)

	msg, err := s.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio create message: %w", err)
	}

	sid := ""
	if msg != nil && msg.Sid != nil {
		sid = *msg.Sid
	}
	s.log.Debug("whatsapp message sent", map[string]any{"sid": sid})
	return nil
}

// LogSender es el fallback sin credenciales: solo deja el mensaje en el log.
type LogSender struct {
	log logger.Logger
}

func NewLogSender(l logger.Logger) *LogSender {
	if l == nil {
		l = logger.Nop()
	}
	return &LogSender{log: l}
}

func (s *LogSender) Send(_ context.Context, phone, body string) error {
	s.log.Info("whatsapp message (dry-run)", map[string]any{
		"to":   shop.WhatsAppPhone(phone),
		"body": body,
	})
	return nil
}
