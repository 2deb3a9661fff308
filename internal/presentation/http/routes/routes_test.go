package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ryanap7/diwan-print-agent/internal/application/service"
	"github.com/ryanap7/diwan-print-agent/internal/config"
	"github.com/ryanap7/diwan-print-agent/internal/prefs"
	"github.com/ryanap7/diwan-print-agent/internal/presentation/http/handler"
	"github.com/ryanap7/diwan-print-agent/pkg/printer"
	"github.com/ryanap7/diwan-print-agent/pkg/receipt"
	"github.com/ryanap7/diwan-print-agent/pkg/utils"
)

func newTestRouter(t *testing.T) (*gin.Engine, *utils.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := utils.NewJWTManager("test-secret", time.Hour)

	store, err := prefs.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("prefs.NewStore: %v", err)
	}

	transport := printer.NewNullTransport(logger)
	formatter := receipt.NewFormatter(receipt.DefaultConfig())
	handoffs := service.NewHandoffTracker(time.Minute, logger)
	printService := service.NewPrintService(transport, formatter, store, handoffs, logger, 384, 128)

	handlers := &Handlers{
		Print:       handler.NewPrintHandler(printService, 1<<20),
		Printer:     handler.NewPrinterHandler(printService),
		Preferences: handler.NewPreferencesHandler(store),
	}

	cfg := &config.Config{
		App:       config.AppConfig{Name: "diwan-print-agent-test"},
		RateLimit: config.RateLimitConfig{Requests: 100, Duration: 1},
	}
	router := Setup(handlers, &Deps{JWTManager: jwtManager, Cfg: cfg, Logger: logger})
	return router, jwtManager
}

func bearerToken(t *testing.T, jwtManager *utils.JWTManager) string {
	t.Helper()
	token, err := jwtManager.Generate(uuid.New(), "kasir@diwanmotor.id", []string{"cashier"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return "Bearer " + token
}

func TestHealthIsPublic(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestPrintRequiresAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/print", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestPrintShareFlow(t *testing.T) {
	router, jwtManager := newTestRouter(t)

	body, _ := json.Marshal(map[string]any{
		"receipt": map[string]any{
			"date":        "14/03/2025",
			"time":        "10:25",
			"cashierName": "Budi",
			"items": []map[string]any{
				{"name": "Oli Mesin Shell", "quantity": 2, "unitPrice": 45000, "subtotal": 90000},
			},
			"subtotal":   90000,
			"total":      90000,
			"amountPaid": 100000,
			"change":     10000,
		},
		"method": "share",
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/print", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearerToken(t, jwtManager))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			Method string `json:"method"`
			Text   string `json:"text"`
		} `json:"data"`
		Meta struct {
			RequestID string `json:"request_id"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !envelope.Success || envelope.Data.Method != "share" {
		t.Errorf("envelope = %+v", envelope)
	}
	if envelope.Data.Text == "" {
		t.Error("share response missing receipt text")
	}
	if envelope.Meta.RequestID == "" {
		t.Error("missing request id meta")
	}
}

func TestPreferencesRoundTripOverHTTP(t *testing.T) {
	router, jwtManager := newTestRouter(t)
	auth := bearerToken(t, jwtManager)

	update, _ := json.Marshal(map[string]any{"preferThermer": true, "preferredMethod": "thermer"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/v1/preferences", bytes.NewBuffer(update))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", auth)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("PUT status = %d, body = %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/preferences", nil)
	req.Header.Set("Authorization", auth)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET status = %d", w.Code)
	}

	var envelope struct {
		Data prefs.Preferences `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !envelope.Data.PreferThermer || envelope.Data.PreferredMethod != "thermer" {
		t.Errorf("preferences = %+v", envelope.Data)
	}
}

func TestPrinterStatusReportsNullTransport(t *testing.T) {
	router, jwtManager := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/printer/status", nil)
	req.Header.Set("Authorization", bearerToken(t, jwtManager))
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var envelope struct {
		Data printer.Status `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if envelope.Data.Connected || envelope.Data.Transport != "none" {
		t.Errorf("status = %+v", envelope.Data)
	}
}
