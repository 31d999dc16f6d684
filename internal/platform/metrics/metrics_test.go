package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}

func TestHandler_ExposesCounters(t *testing.T) {
	m := New()
	m.Notifications.WithLabelValues("success", "client.created").Inc()
	m.Notifications.WithLabelValues("success", "client.created").Inc()

	body := scrape(t, m)
	assert.Contains(t, body, `grooming_shop_notifications_total{code="client.created",kind="success"} 2`)
}

func TestNew_IndependentRegistries(t *testing.T) {
	a := New()
	b := New()
	a.Reminders.WithLabelValues("sent").Inc()

	assert.Contains(t, scrape(t, a), `grooming_reminders_sent_total{result="sent"} 1`)
	assert.NotContains(t, scrape(t, b), `grooming_reminders_sent_total{result="sent"}`)
}
