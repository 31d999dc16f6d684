package notify

import (
	"context"
	"time"

	"pet-grooming-manager/internal/platform/httpclient"
	"pet-grooming-manager/internal/platform/logger"
	"pet-grooming-manager/internal/platform/metrics"
	"pet-grooming-manager/internal/ports/notify"
)

// LogSink escribe cada evento en el log: info para éxitos, warn para rechazos.
type LogSink struct {
	log logger.Logger
}

func NewLogSink(l logger.Logger) *LogSink {
	if l == nil {
		l = logger.Nop()
	}
	return &LogSink{log: l}
}

func (s *LogSink) Notify(_ context.Context, e notify.Event) {
	fields := map[string]any{
		"code":      e.Code,
		"entity_id": e.EntityID,
		"user_id":   e.UserID,
	}
	if e.Kind == notify.KindError {
		s.log.Warn(e.Message, fields)
		return
	}
	s.log.Info(e.Message, fields)
}

// MetricsSink cuenta eventos por kind y code.
type MetricsSink struct {
	m *metrics.Metrics
}

func NewMetricsSink(m *metrics.Metrics) *MetricsSink {
	return &MetricsSink{m: m}
}

func (s *MetricsSink) Notify(_ context.Context, e notify.Event) {
	s.m.Notifications.WithLabelValues(string(e.Kind), e.Code).Inc()
}

type webhookPayload struct {
	Kind     string    `json:"kind"`
	Code     string    `json:"code"`
	Message  string    `json:"message"`
	EntityID string    `json:"entity_id,omitempty"`
	UserID   string    `json:"user_id,omitempty"`
	At       time.Time `json:"at"`
}

// WebhookSink reenvía el evento por POST a una URL externa. Los envíos
// corren fuera del request; un fallo solo se loguea.
type WebhookSink struct {
	url    string
	client *httpclient.Client
	log    logger.Logger

	// async=false en tests para poder observar el envío.
	async bool
}

func NewWebhookSink(url string, client *httpclient.Client, l logger.Logger) *WebhookSink {
	if client == nil {
		client = httpclient.New(0, nil)
	}
	if l == nil {
		l = logger.Nop()
	}
	return &WebhookSink{url: url, client: client, log: l, async: true}
}

func (s *WebhookSink) Notify(ctx context.Context, e notify.Event) {
	payload := webhookPayload{
		Kind:     string(e.Kind),
		Code:     e.Code,
		Message:  e.Message,
		EntityID: e.EntityID,
		UserID:   e.UserID,
		At:       e.At,
	}

	send := func(ctx context.Context) {
		if err := s.client.PostJSON(ctx, s.url, nil, payload); err != nil {
			s.log.Warn("notification webhook failed", map[string]any{
				"code":  e.Code,
				"error": err.Error(),
			})
		}
	}

	if !s.async {
		send(ctx)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), httpclient.DefaultTimeout)
		defer cancel()
		send(ctx)
	}()
}

// Multi reparte el evento a todos los sinks en orden.
type Multi []notify.Notifier

func (m Multi) Notify(ctx context.Context, e notify.Event) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, e)
		}
	}
}
