package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pet-grooming-manager/internal/platform/metrics"
	"pet-grooming-manager/internal/router"

	"github.com/shopspring/decimal"
)

func TestHTTP_EndToEnd_GroomingDay(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	userID := "groomer-1"
	today := time.Now().Format("2006-01-02")

	// 1) Alta de cliente, pet, servicio y producto
	clientID := create(t, ts.URL, userID, "/clients", map[string]any{
		"name":         "Ana",
		"phone":        "(11) 99999-0000",
		"address":      "Rua A, 10",
		"neighborhood": "Centro",
		"city":         "Santos",
	})
	petID := create(t, ts.URL, userID, "/pets", map[string]any{
		"owner_id": clientID,
		"name":     "Rex",
		"species":  "cão",
		"age":      3,
	})
	serviceID := create(t, ts.URL, userID, "/services", map[string]any{
		"name":     "Banho",
		"price":    "100",
		"duration": 60,
	})
	productID := create(t, ts.URL, userID, "/products", map[string]any{
		"name":  "Shampoo",
		"price": "15",
		"stock": 10,
	})

	// 2) Agendamento para hoy
	apptID := create(t, ts.URL, userID, "/appointments", map[string]any{
		"client_id": clientID,
		"pet_id":    petID,
		"date":      today,
		"time":      "10:00",
		"services":  []string{serviceID},
	})

	// 3) Link de recordatorio por WhatsApp
	{
		st, body := doReq(t, ts.URL, "GET", "/appointments/"+apptID+"/reminder", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 reminder link, got %d body=%s", st, string(body))
		}
		var link struct {
			URL string `json:"url"`
		}
		_ = json.Unmarshal(body, &link)
		if !strings.HasPrefix(link.URL, "https://wa.me/5511999990000?text=") {
			t.Fatalf("unexpected reminder url %q", link.URL)
		}
	}

	// 4) Flujo de estados
	for _, action := range []string{"confirm", "ready"} {
		st, body := doReq(t, ts.URL, "POST", "/appointments/"+apptID+"/"+action, userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 %s, got %d body=%s", action, st, string(body))
		}
	}
	{
		st, _ := doReq(t, ts.URL, "POST", "/appointments/"+apptID+"/confirm", userID, nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 going backwards, got %d", st)
		}
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/appointments/"+apptID+"/finalize", userID, map[string]any{
			"payment_method": "pending",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 finalize, got %d body=%s", st, string(body))
		}
	}

	// 5) Finalizado no se borra; el cliente con pets tampoco
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/appointments/"+apptID, userID, nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 deleting finalized appointment, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/clients/"+clientID, userID, nil)
		if st != http.StatusConflict {
			t.Fatalf("expected 409 deleting client with pets, got %d", st)
		}
	}

	// 6) Venta pagada en caja
	create(t, ts.URL, userID, "/sales", map[string]any{
		"products": []map[string]any{
			{"productId": productID, "quantity": 2, "price": "15"},
		},
		"total":          "30",
		"payment_method": "cash",
		"paid":           true,
	})
	{
		st, body := doReq(t, ts.URL, "GET", "/products/"+productID, userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 get product, got %d body=%s", st, string(body))
		}
		var p struct {
			Stock int `json:"stock"`
		}
		_ = json.Unmarshal(body, &p)
		if p.Stock != 8 {
			t.Fatalf("expected stock 8, got %d", p.Stock)
		}
	}

	// 7) Saldo pendiente: 100 del atendimento
	if got := pendingBalance(t, ts.URL, userID, clientID); !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected pending 100, got %s", got)
	}
	{
		st, _ := doReq(t, ts.URL, "POST", "/clients/"+clientID+"/settle", userID, map[string]any{
			"amount":         "150",
			"payment_method": "pix",
		})
		if st != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 settling more than owed, got %d", st)
		}
	}
	{
		st, body := doReq(t, ts.URL, "POST", "/clients/"+clientID+"/settle", userID, map[string]any{
			"amount":         "100",
			"payment_method": "pix",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 settle, got %d body=%s", st, string(body))
		}
	}
	if got := pendingBalance(t, ts.URL, userID, clientID); !got.IsZero() {
		t.Fatalf("expected pending 0 after settle, got %s", got)
	}

	// 8) Gasto y resumen del día: solo la venta pagada entra como ingreso
	create(t, ts.URL, userID, "/expenses", map[string]any{
		"description": "Toalhas",
		"amount":      "12.5",
		"category":    "insumos",
		"date":        today,
	})
	{
		st, body := doReq(t, ts.URL, "GET", "/reports/daily?date="+today, userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 daily report, got %d body=%s", st, string(body))
		}
		var sum struct {
			Income   decimal.Decimal `json:"income"`
			Expenses decimal.Decimal `json:"expenses"`
			Balance  decimal.Decimal `json:"balance"`
		}
		_ = json.Unmarshal(body, &sum)
		if !sum.Income.Equal(decimal.NewFromInt(30)) {
			t.Fatalf("expected income 30, got %s", sum.Income)
		}
		if !sum.Balance.Equal(decimal.RequireFromString("17.5")) {
			t.Fatalf("expected balance 17.5, got %s", sum.Balance)
		}
	}
}

func TestHTTP_RequiresUser(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	for _, path := range []string{"/clients", "/appointments", "/reports/monthly?year=2024&month=5", "/profile"} {
		st, _ := doReq(t, ts.URL, "GET", path, "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s without user, got %d", path, st)
		}
	}
}

func TestHTTP_TenantsDoNotSeeEachOther(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	clientID := create(t, ts.URL, "groomer-1", "/clients", map[string]any{
		"name":  "Ana",
		"phone": "11999990000",
	})

	st, _ := doReq(t, ts.URL, "GET", "/clients/"+clientID, "groomer-2", nil)
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for another tenant, got %d", st)
	}
}

func TestHTTP_ValidationErrors(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	st, _ := doReq(t, ts.URL, "POST", "/clients", "groomer-1", map[string]any{"name": "Sem telefone"})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for client without phone, got %d", st)
	}

	st, _ = doReq(t, ts.URL, "POST", "/pets", "groomer-1", map[string]any{
		"owner_id": "ghost",
		"name":     "Rex",
		"species":  "cão",
	})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for pet with unknown owner, got %d", st)
	}
}

func TestHTTP_MetricsEndpoint(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{Metrics: metrics.New()}))
	defer ts.Close()

	if st, _ := doReq(t, ts.URL, "GET", "/health", "", nil); st != http.StatusOK {
		t.Fatalf("expected 200 health, got %d", st)
	}

	st, body := doReq(t, ts.URL, "GET", "/metrics", "", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 metrics, got %d", st)
	}
	if !strings.Contains(string(body), `grooming_http_requests_total{method="GET",route="/health",status="200"} 1`) {
		t.Fatalf("health request not counted:\n%s", string(body))
	}
}

func pendingBalance(t *testing.T, baseURL, userID, clientID string) decimal.Decimal {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/clients/"+clientID, userID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 get client, got %d body=%s", st, string(body))
	}
	var c struct {
		PendingBalance decimal.Decimal `json:"pending_balance"`
	}
	_ = json.Unmarshal(body, &c)
	return c.PendingBalance
}

func create(t *testing.T, baseURL, userID, path string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", path, userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 POST %s, got %d body=%s", path, st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("POST %s: missing id body=%s", path, string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
