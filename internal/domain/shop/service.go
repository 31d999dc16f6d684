package shop

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"pet-grooming-manager/internal/platform/logger"
	"pet-grooming-manager/internal/ports/notify"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrInUse             = errors.New("referenced by other records")
	ErrFinalized         = errors.New("appointment is finalized")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrExceedsBalance    = errors.New("amount exceeds pending balance")
)

// Service concentra las reglas de negocio sobre el Entity Store.
// Las mutaciones se serializan con mu: cada operación lee el estado actual,
// valida y escribe sin intercalarse con otra.
type Service struct {
	repo     Repository
	notifier notify.Notifier
	log      logger.Logger

	now   func() time.Time
	newID func() string

	mu sync.Mutex
}

type Option func(*Service)

func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock fija el reloj (fecha de ventas y timestamps).
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Service) {
		if gen != nil {
			s.newID = gen
		}
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		notifier: notify.Nop{},
		log:      logger.Nop(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) today() string {
	return s.now().Format(DateLayout)
}

func (s *Service) success(ctx context.Context, code, msg, entityID string) {
	s.notifier.Notify(ctx, notify.Event{
		Kind:     notify.KindSuccess,
		Code:     code,
		Message:  msg,
		EntityID: entityID,
		UserID:   UserFrom(ctx),
		At:       s.now(),
	})
}

// reject notifica una ValidationRejection/NotFoundRejection y devuelve err tal cual.
func (s *Service) reject(ctx context.Context, code, msg, entityID string, err error) error {
	s.notifier.Notify(ctx, notify.Event{
		Kind:     notify.KindError,
		Code:     code,
		Message:  msg,
		EntityID: entityID,
		UserID:   UserFrom(ctx),
		At:       s.now(),
	})
	return err
}

// storeFailure registra una PersistenceFailure. No se reintenta.
func (s *Service) storeFailure(ctx context.Context, op string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return err
	}
	s.log.Error("store operation failed", map[string]any{
		"op":      op,
		"user_id": UserFrom(ctx),
		"error":   err.Error(),
	})
	s.notifier.Notify(ctx, notify.Event{
		Kind:    notify.KindError,
		Code:    op + "_failed",
		Message: "Erro ao salvar os dados. Tente novamente.",
		UserID:  UserFrom(ctx),
		At:      s.now(),
	})
	return fmt.Errorf("%s: %w", op, err)
}

func invalid(field string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, field)
}

func validDate(v string) bool {
	_, err := time.Parse(DateLayout, strings.TrimSpace(v))
	return err == nil
}

func validTime(v string) bool {
	_, err := time.Parse("15:04", strings.TrimSpace(v))
	return err == nil
}
