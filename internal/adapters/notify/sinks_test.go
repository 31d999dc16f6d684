package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pet-grooming-manager/internal/platform/httpclient"
	"pet-grooming-manager/internal/platform/logger"
	"pet-grooming-manager/internal/platform/metrics"
	"pet-grooming-manager/internal/ports/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct{ events []notify.Event }

func (r *recorder) Notify(_ context.Context, e notify.Event) { r.events = append(r.events, e) }

func event(kind notify.Kind, code string) notify.Event {
	return notify.Event{Kind: kind, Code: code, Message: "msg", EntityID: "c1", UserID: "u1", At: time.Unix(0, 0).UTC()}
}

func TestLogSink_WritesLevelByKind(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatJSON, Output: &buf})

	NewLogSink(l).Notify(context.Background(), event(notify.KindError, "client.delete_blocked"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warning", line["level"])
	assert.Equal(t, "client.delete_blocked", line["code"])
}

func TestMetricsSink_Counts(t *testing.T) {
	m := metrics.New()
	s := NewMetricsSink(m)
	s.Notify(context.Background(), event(notify.KindSuccess, "sale.created"))

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rr.Body.String(), `grooming_shop_notifications_total{code="sale.created",kind="success"} 1`)
}

func TestWebhookSink_PostsPayload(t *testing.T) {
	var got webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewWebhookSink(srv.URL, httpclient.New(time.Second, nil), nil)
	s.async = false
	s.Notify(context.Background(), event(notify.KindSuccess, "appointment.finalized"))

	assert.Equal(t, "appointment.finalized", got.Code)
	assert.Equal(t, "success", got.Kind)
	assert.Equal(t, "c1", got.EntityID)
}

func TestMulti_FansOut(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	Multi{a, nil, b}.Notify(context.Background(), event(notify.KindSuccess, "x"))

	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
}
