package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/goldenlock/internal/adapter/http/handler"
	apimiddleware "github.com/iho/goldenlock/internal/adapter/http/middleware"
	"github.com/iho/goldenlock/internal/adapter/repository/memory"
	"github.com/iho/goldenlock/internal/adapter/statement"
	"github.com/iho/goldenlock/internal/usecase"
)

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	customerRepo := memory.NewCustomerRepository()
	accountRepo := memory.NewAccountRepository()
	outboxRepo := memory.NewOutboxRepository()
	idGen := memory.NewULIDGenerator()

	directory := usecase.NewDirectoryUseCase(customerRepo, accountRepo, outboxRepo, idGen)
	accounts := usecase.NewAccountUseCase(outboxRepo, idGen, nil)
	bank := usecase.NewBank(directory, accounts)
	ledger := usecase.NewLedgerUseCase(accountRepo, accounts)

	cfg := RouterConfig{
		CustomerHandler:  handler.NewCustomerHandler(bank, directory),
		AccountHandler:   handler.NewAccountHandler(bank, directory, accounts),
		TransferHandler:  handler.NewTransferHandler(bank),
		LedgerHandler:    handler.NewLedgerHandler(ledger),
		StatementHandler: handler.NewStatementHandler(directory, accounts, statement.NewPDFRenderer("Golden Lock"), nil, zerolog.Nop()),
		HealthHandler:    handler.NewHealthHandler(nil),
		Logger:           zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func do(t *testing.T, router http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := do(t, router, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}

	rec = do(t, router, http.MethodGet, "/ready", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected /ready to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.MetricsGatherer = prometheus.NewRegistry()
	}))

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"GET /metrics",
		"POST /api/v1/customers/",
		"GET /api/v1/customers/",
		"GET /api/v1/customers/{contact}",
		"GET /api/v1/customers/{contact}/accounts",
		"POST /api/v1/accounts/",
		"GET /api/v1/accounts/",
		"GET /api/v1/accounts/{number}",
		"POST /api/v1/accounts/{number}/deposit",
		"POST /api/v1/accounts/{number}/withdraw",
		"GET /api/v1/accounts/{number}/balance",
		"GET /api/v1/accounts/{number}/transactions",
		"GET /api/v1/accounts/{number}/statement",
		"POST /api/v1/transfers",
		"GET /api/v1/ledger/consistency",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func TestNewRouter_BankingFlow(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := do(t, router, http.MethodPost, "/api/v1/customers/", `{"contact":"5550001","name":"Ada Lovelace","address":"12 St James Sq"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, router, http.MethodPost, "/api/v1/customers/", `{"contact":"5550002","name":"Charles Babbage"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, router, http.MethodPost, "/api/v1/customers/", `{"contact":"5550001","name":"Someone Else"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	for _, body := range []string{
		`{"contact":"5550001","account_number":"1001"}`,
		`{"contact":"5550002","account_number":"2001"}`,
	} {
		rec = do(t, router, http.MethodPost, "/api/v1/accounts/", body)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec = do(t, router, http.MethodPost, "/api/v1/accounts/", `{"contact":"5559999","account_number":"3001"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/v1/accounts/1001/deposit", `{"amount":"100"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "100.00", decode(t, rec)["balance_after"])

	rec = do(t, router, http.MethodPost, "/api/v1/accounts/1001/withdraw", `{"amount":"500"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/v1/transfers", `{"from_account":"1001","to_account":"2001","amount":"40"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, router, http.MethodPost, "/api/v1/transfers", `{"from_account":"1001","to_account":"1001","amount":"1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/v1/accounts/1001/balance", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "60.00", decode(t, rec)["balance"])

	rec = do(t, router, http.MethodGet, "/api/v1/accounts/2001/balance", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "40.00", decode(t, rec)["balance"])

	rec = do(t, router, http.MethodGet, "/api/v1/accounts/1001/transactions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["transactions"], 2)

	rec = do(t, router, http.MethodGet, "/api/v1/customers/5550001/accounts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["accounts"], 1)

	rec = do(t, router, http.MethodGet, "/api/v1/accounts/1001/statement", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))

	rec = do(t, router, http.MethodGet, "/api/v1/ledger/consistency", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	report := decode(t, rec)
	assert.Equal(t, true, report["consistent"])
	assert.Equal(t, "100.00", report["total_balance"])

	rec = do(t, router, http.MethodGet, "/api/v1/accounts/9999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewRouter_IdempotentDepositIsAppliedOnce(t *testing.T) {
	replays := 0
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = memory.NewIdempotencyStore()
		cfg.OnIdempotentReplay = func() { replays++ }
	}))

	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/api/v1/customers/", `{"contact":"5550001","name":"Ada Lovelace"}`).Code)
	require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/api/v1/accounts/", `{"contact":"5550001","account_number":"1001"}`).Code)

	first := do(t, router, http.MethodPost, "/api/v1/accounts/1001/deposit", `{"amount":"25"}`, apimiddleware.IdempotencyKeyHeader, "dep-1")
	second := do(t, router, http.MethodPost, "/api/v1/accounts/1001/deposit", `{"amount":"25"}`, apimiddleware.IdempotencyKeyHeader, "dep-1")

	require.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "true", second.Header().Get(apimiddleware.IdempotencyReplayHeader))
	assert.Equal(t, 1, replays)

	rec := do(t, router, http.MethodGet, "/api/v1/accounts/1001/balance", "")
	assert.Equal(t, "25.00", decode(t, rec)["balance"])
}

func TestNewRouter_MetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.HTTPMetrics = apimiddleware.NewHTTPMetrics(reg)
		cfg.MetricsGatherer = reg
	}))

	do(t, router, http.MethodGet, "/health", "")

	rec := do(t, router, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",path="/health",status="200"} 1`)
}
