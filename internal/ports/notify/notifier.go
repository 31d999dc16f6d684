package notify

import (
	"context"
	"time"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Event es un resultado con nombre que la UI muestra como toast.
type Event struct {
	Kind     Kind
	Code     string // ej: client.created, client.delete_blocked
	Message  string
	EntityID string
	UserID   string
	At       time.Time
}

// Notifier recibe los eventos; nunca debe bloquear ni fallar la operación.
type Notifier interface {
	Notify(ctx context.Context, e Event)
}

// Nop descarta todo.
type Nop struct{}

func (Nop) Notify(context.Context, Event) {}
