package messaging

import "context"

// Sender entrega un mensaje de texto (WhatsApp) a un teléfono.
type Sender interface {
	Send(ctx context.Context, phone, body string) error
}
