package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lexanova/lexanova-api/internal/domain"
	"github.com/lexanova/lexanova-api/internal/handler"
	"github.com/lexanova/lexanova-api/internal/infra/cache"
	"github.com/lexanova/lexanova-api/internal/infra/observability"
	"github.com/lexanova/lexanova-api/internal/infra/resilience"
	"github.com/lexanova/lexanova-api/internal/infra/supabase"
	"github.com/lexanova/lexanova-api/internal/service"

	"go.uber.org/zap"
)

// fakePostgREST is a minimal in-memory stand-in for the Supabase REST API,
// covering just the tables and filters the API uses.
type fakePostgREST struct {
	mu           sync.Mutex
	lawyers      []map[string]any
	windows      []map[string]any
	appointments []map[string]any
	credentials  []map[string]any
	tokens       []map[string]any
	messages     []map[string]any
}

func (f *fakePostgREST) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		table := strings.TrimPrefix(r.URL.Path, "/rest/v1/")
		w.Header().Set("Content-Type", "application/json")

		switch r.Method {
		case http.MethodGet:
			rows := f.tableRows(table)
			json.NewEncoder(w).Encode(filterRows(rows, r.URL.Query()))
		case http.MethodPost:
			body, _ := io.ReadAll(r.Body)
			var row map[string]any
			if err := json.Unmarshal(body, &row); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			f.appendRow(table, row)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode([]map[string]any{row})
		case http.MethodPatch:
			body, _ := io.ReadAll(r.Body)
			var updates map[string]any
			if err := json.Unmarshal(body, &updates); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			rows := f.tableRows(table)
			for _, row := range filterRows(rows, r.URL.Query()) {
				for k, v := range updates {
					row[k] = v
				}
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
}

func (f *fakePostgREST) tableRows(table string) []map[string]any {
	switch table {
	case "lawyers":
		return f.lawyers
	case "availability_windows":
		return f.windows
	case "appointments":
		return f.appointments
	case "lawyer_credentials":
		return f.credentials
	case "refresh_tokens":
		return f.tokens
	case "contact_messages":
		return f.messages
	}
	return nil
}

func (f *fakePostgREST) appendRow(table string, row map[string]any) {
	switch table {
	case "lawyers":
		f.lawyers = append(f.lawyers, row)
	case "availability_windows":
		f.windows = append(f.windows, row)
	case "appointments":
		f.appointments = append(f.appointments, row)
	case "lawyer_credentials":
		f.credentials = append(f.credentials, row)
	case "refresh_tokens":
		f.tokens = append(f.tokens, row)
	case "contact_messages":
		f.messages = append(f.messages, row)
	}
}

// filterRows applies eq. and in.(...) filters from a PostgREST query string.
// Ordering, limits and or= filters are ignored; the tests do not rely on them.
func filterRows(rows []map[string]any, query map[string][]string) []map[string]any {
	out := []map[string]any{}
rowLoop:
	for _, row := range rows {
		for key, values := range query {
			if key == "order" || key == "limit" || key == "offset" || key == "or" {
				continue
			}
			v := values[0]
			switch {
			case strings.HasPrefix(v, "eq."):
				want := strings.TrimPrefix(v, "eq.")
				if fmt.Sprintf("%v", row[key]) != want {
					continue rowLoop
				}
			case strings.HasPrefix(v, "in.("):
				set := strings.TrimSuffix(strings.TrimPrefix(v, "in.("), ")")
				matched := false
				for _, item := range strings.Split(set, ",") {
					if fmt.Sprintf("%v", row[key]) == item {
						matched = true
						break
					}
				}
				if !matched {
					continue rowLoop
				}
			}
		}
		out = append(out, row)
	}
	return out
}

func newTestAPI(t *testing.T, backend *fakePostgREST) http.Handler {
	t.Helper()

	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	cb := resilience.NewCircuitBreaker("integration")
	cfg := resilience.Config{MaxRetries: 1, InitialBackoff: 10 * time.Millisecond}
	httpClient := &http.Client{Timeout: 5 * time.Second}

	store := supabase.NewClient(httpClient, server.URL, "anon", "service", cb, cfg, logger)
	readCache := cache.New[any](5 * time.Minute)

	svcs := handler.Services{
		Simulator: service.NewSimulatorService(metrics, logger),
		Directory: service.NewDirectoryService(store, readCache, metrics, logger),
		Booking:   service.NewBookingService(store, store, metrics, logger, 30, time.Hour, time.Hour),
		Content:   service.NewContentService(store, readCache, metrics, logger),
		Inbox:     service.NewInboxService(store, logger),
		Auth:      service.NewAuthService(store, "integration-secret", 15*time.Minute, 24*time.Hour, logger),
	}

	return handler.NewRouter(svcs, metrics, logger)
}

func seededBackend() *fakePostgREST {
	backend := &fakePostgREST{
		lawyers: []map[string]any{
			{
				"id": "lw-1", "full_name": "Claire Dumont", "email": "claire@example.com",
				"city": "Lyon", "bar_number": "LY-1234",
				"specialties": []string{"patrimoine", "transmission"},
				"verified":    true, "created_at": "2025-01-01T00:00:00Z",
			},
		},
	}
	// Open every day so availability exists whenever the test runs.
	for day := 0; day < 7; day++ {
		backend.windows = append(backend.windows, map[string]any{
			"id": fmt.Sprintf("win-%d", day), "lawyer_id": "lw-1",
			"day_of_week": day, "start_time": "09:00", "end_time": "17:00",
			"active": true,
		})
	}
	return backend
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestIntegration_BookingFlow(t *testing.T) {
	router := newTestAPI(t, seededBackend())

	// 1. Browse the directory.
	rec := doJSON(t, router, http.MethodGet, "/v1/lawyers?city=Lyon", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list lawyers: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var lawyers []domain.Lawyer
	if err := json.Unmarshal(rec.Body.Bytes(), &lawyers); err != nil {
		t.Fatalf("decode lawyers: %v", err)
	}
	if len(lawyers) != 1 || lawyers[0].ID != "lw-1" {
		t.Fatalf("unexpected lawyers: %+v", lawyers)
	}

	// 2. Fetch availability.
	rec = doJSON(t, router, http.MethodGet, "/v1/lawyers/lw-1/availability", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("availability: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var slots []domain.TimeSlot
	if err := json.Unmarshal(rec.Body.Bytes(), &slots); err != nil {
		t.Fatalf("decode slots: %v", err)
	}
	if len(slots) == 0 {
		t.Fatal("expected at least one available slot")
	}

	// 3. Book the first slot.
	booking := domain.BookingRequest{
		ClientName:  "Jean Petit",
		ClientEmail: "jean@example.com",
		Subject:     "Succession planning",
		StartsAt:    slots[0].Start,
	}
	rec = doJSON(t, router, http.MethodPost, "/v1/lawyers/lw-1/appointments", booking, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("book: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var appt domain.Appointment
	if err := json.Unmarshal(rec.Body.Bytes(), &appt); err != nil {
		t.Fatalf("decode appointment: %v", err)
	}
	if appt.Status != domain.StatusPending {
		t.Errorf("expected pending appointment, got %s", appt.Status)
	}

	// 4. The same slot cannot be booked twice.
	rec = doJSON(t, router, http.MethodPost, "/v1/lawyers/lw-1/appointments", booking, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("double book: expected 409, got %d: %s", rec.Code, rec.Body.String())
	}

	// 5. The booked slot no longer appears in availability.
	rec = doJSON(t, router, http.MethodGet, "/v1/lawyers/lw-1/availability", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("availability after booking: expected 200, got %d", rec.Code)
	}
	var after []domain.TimeSlot
	if err := json.Unmarshal(rec.Body.Bytes(), &after); err != nil {
		t.Fatalf("decode slots: %v", err)
	}
	for _, s := range after {
		if s.Start.Equal(appt.StartsAt) {
			t.Errorf("booked slot still offered: %v", s.Start)
		}
	}
}

func TestIntegration_AuthAndWorkspaceFlow(t *testing.T) {
	backend := seededBackend()
	router := newTestAPI(t, backend)

	// 1. Register a lawyer account.
	rec := doJSON(t, router, http.MethodPost, "/v1/auth/register", domain.RegisterRequest{
		FullName:  "Marc Lefevre",
		Email:     "marc@example.com",
		Password:  "super-secret-pw",
		City:      "Paris",
		BarNumber: "PA-9876",
	}, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// 2. Login.
	rec = doJSON(t, router, http.MethodPost, "/v1/auth/login", domain.LoginRequest{
		Email:    "marc@example.com",
		Password: "super-secret-pw",
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var login domain.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if login.AccessToken == "" {
		t.Fatal("expected access token")
	}

	// 3. Protected route rejects missing tokens.
	rec = doJSON(t, router, http.MethodGet, "/v1/appointments", nil, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	// 4. Protected route accepts the issued token.
	rec = doJSON(t, router, http.MethodGet, "/v1/appointments", nil, login.AccessToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", rec.Code, rec.Body.String())
	}

	// 5. Submit a contact message and read it from the inbox.
	rec = doJSON(t, router, http.MethodPost, "/v1/contact", domain.ContactRequest{
		Name:  "Sophie Martin",
		Email: "sophie@example.com",
		Body:  "I need advice on a donation to my children.",
	}, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("contact: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/messages", nil, login.AccessToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("messages: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var messages []domain.ContactMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &messages); err != nil {
		t.Fatalf("decode messages: %v", err)
	}
	if len(messages) != 1 || messages[0].Email != "sophie@example.com" {
		t.Fatalf("unexpected inbox: %+v", messages)
	}

	// 6. Refresh token rotation.
	rec = doJSON(t, router, http.MethodPost, "/v1/auth/refresh", domain.RefreshRequest{
		RefreshToken: login.RefreshToken,
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var refreshed domain.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &refreshed); err != nil {
		t.Fatalf("decode refresh: %v", err)
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Error("expected rotated refresh token")
	}
}

func TestIntegration_SimulatorsAvailableWithoutBackend(t *testing.T) {
	metrics := observability.NewMetrics()
	svcs := handler.Services{Simulator: service.NewSimulatorService(metrics, zap.NewNop())}
	router := handler.NewRouter(svcs, metrics, zap.NewNop())

	rec := doJSON(t, router, http.MethodPost, "/v1/simulators/bare-ownership", domain.BareOwnershipRequest{
		FullValue:       400000,
		UsufructuaryAge: 72,
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result domain.BareOwnershipResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.UsufructRate != 30 {
		t.Errorf("expected usufruct rate 30 at age 72, got %v", result.UsufructRate)
	}
}
