package reminders

import (
	"context"
	"fmt"
	"time"

	"pet-grooming-manager/internal/domain/shop"
	"pet-grooming-manager/internal/platform/logger"
	"pet-grooming-manager/internal/platform/metrics"
	"pet-grooming-manager/internal/ports/messaging"

	"github.com/robfig/cron/v3"
)

// Store es lo que el job lee del Entity Store.
type Store interface {
	ListAppointmentsByDate(ctx context.Context, date string) ([]shop.Appointment, error)
	GetClient(ctx context.Context, id string) (shop.Client, error)
	GetPet(ctx context.Context, id string) (shop.Pet, error)
}

// Job manda el recordatorio de WhatsApp para los atendimentos de mañana
// que todavía no empezaron (agendado o confirmado).
type Job struct {
	store   Store
	sender  messaging.Sender
	log     logger.Logger
	metrics *metrics.Metrics

	now func() time.Time
}

type Option func(*Job)

func WithLogger(l logger.Logger) Option {
	return func(j *Job) {
		if l != nil {
			j.log = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(j *Job) { j.metrics = m }
}

func NewJob(store Store, sender messaging.Sender, opts ...Option) *Job {
	j := &Job{
		store:  store,
		sender: sender,
		log:    logger.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

type Result struct {
	Date    string
	Sent    int
	Skipped int
	Failed  int
}

// Run procesa los atendimentos de mañana. Un envío fallido no corta el
// resto; solo un error leyendo la agenda se devuelve.
func (j *Job) Run(ctx context.Context) (Result, error) {
	date := j.now().AddDate(0, 0, 1).Format(shop.DateLayout)
	res := Result{Date: date}

	appts, err := j.store.ListAppointmentsByDate(ctx, date)
	if err != nil {
		return res, fmt.Errorf("list appointments for %s: %w", date, err)
	}

	for _, a := range appts {
		if a.Status != shop.StatusScheduled && a.Status != shop.StatusConfirmed {
			res.Skipped++
			continue
		}

		// El job corre sin usuario en el contexto; cada lectura se hace
		// con el dueño del atendimento.
		actx := shop.WithUser(ctx, a.UserID)
		client, err := j.store.GetClient(actx, a.ClientID)
		if err != nil {
			j.fail(&res, a, "client lookup", err)
			continue
		}
		pet, err := j.store.GetPet(actx, a.PetID)
		if err != nil {
			j.fail(&res, a, "pet lookup", err)
			continue
		}

		msg := shop.ReminderMessage(client.Name, pet.Name, a.Date, a.Time)
		if err := j.sender.Send(actx, client.Phone, msg); err != nil {
			j.fail(&res, a, "send", err)
			continue
		}
		res.Sent++
		j.count("sent")
	}

	j.log.Info("reminders processed", map[string]any{
		"date":    res.Date,
		"sent":    res.Sent,
		"skipped": res.Skipped,
		"failed":  res.Failed,
	})
	return res, nil
}

func (j *Job) fail(res *Result, a shop.Appointment, step string, err error) {
	res.Failed++
	j.count("failed")
	j.log.Warn("reminder not sent", map[string]any{
		"appointment_id": a.ID,
		"step":           step,
		"error":          err.Error(),
	})
}

func (j *Job) count(result string) {
	if j.metrics != nil {
		j.metrics.Reminders.WithLabelValues(result).Inc()
	}
}

// Schedule registra el job en un cron nuevo (sin arrancarlo).
func Schedule(spec string, j *Job) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if _, err := j.Run(context.Background()); err != nil {
			j.log.Error("reminder job failed", map[string]any{"error": err.Error()})
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", spec, err)
	}
	return c, nil
}
