package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lexanova/lexanova-api/internal/handler"
	"github.com/lexanova/lexanova-api/internal/infra/observability"
	"github.com/lexanova/lexanova-api/internal/service"

	"go.uber.org/zap"
)

func newTestRouter() http.Handler {
	metrics := observability.NewMetrics()
	svcs := handler.Services{
		Simulator: service.NewSimulatorService(metrics, zap.NewNop()),
	}
	return handler.NewRouter(svcs, metrics, zap.NewNop())
}

func TestHealthz(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestReadyz(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestMetrics(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestSimulatorEndpoint(t *testing.T) {
	router := newTestRouter()

	body, _ := json.Marshal(map[string]any{
		"taxable_income": 60000,
		"married":        true,
		"children":       2,
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/simulators/income-tax", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result struct {
		Shares float64 `json:"shares"`
		Tax    float64 `json:"tax"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Shares != 3.0 {
		t.Errorf("expected 3 shares, got %v", result.Shares)
	}
	if result.Tax <= 0 {
		t.Errorf("expected positive tax, got %v", result.Tax)
	}
}

func TestSimulatorEndpoint_BadBody(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/v1/simulators/donation", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestSimulatorEndpoint_ValidationError(t *testing.T) {
	router := newTestRouter()

	body, _ := json.Marshal(map[string]any{
		"amount":       10000,
		"relationship": "stranger-relation",
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/simulators/donation", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestDirectoryUnavailableWithoutStore(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/lawyers", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
}

func TestAuthUnavailableWithoutStore(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
}
