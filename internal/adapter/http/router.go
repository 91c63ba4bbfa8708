package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/goldenlock/internal/adapter/http/handler"
	"github.com/iho/goldenlock/internal/adapter/http/middleware"
	"github.com/iho/goldenlock/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	CustomerHandler  *handler.CustomerHandler
	AccountHandler   *handler.AccountHandler
	TransferHandler  *handler.TransferHandler
	LedgerHandler    *handler.LedgerHandler
	StatementHandler *handler.StatementHandler
	HealthHandler    *handler.HealthHandler

	Logger zerolog.Logger

	// Optional
	IdempotencyStore   usecase.IdempotencyStore
	IdempotencyTTL     time.Duration
	OnIdempotentReplay func()
	RateLimiter        *middleware.RateLimiter
	ConcurrencyLimiter *middleware.ConcurrencyLimiter
	HTTPMetrics        *middleware.HTTPMetrics
	MetricsGatherer    prometheus.Gatherer
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	if cfg.HTTPMetrics != nil {
		r.Use(cfg.HTTPMetrics.Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsGatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.ConcurrencyLimiter != nil {
			r.Use(cfg.ConcurrencyLimiter.Wrap)
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			opts := []middleware.IdempotencyOption{middleware.WithIdempotencyLogger(cfg.Logger)}
			if cfg.IdempotencyTTL > 0 {
				opts = append(opts, middleware.WithIdempotencyTTL(cfg.IdempotencyTTL))
			}
			if cfg.OnIdempotentReplay != nil {
				opts = append(opts, middleware.WithReplayHook(cfg.OnIdempotentReplay))
			}
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, opts...).Wrap)
		}

		// Customers
		r.Route("/customers", func(r chi.Router) {
			r.Post("/", cfg.CustomerHandler.Create)
			r.Get("/", cfg.CustomerHandler.List)
			r.Get("/{contact}", cfg.CustomerHandler.Get)
			r.Get("/{contact}/accounts", cfg.AccountHandler.ListByCustomer)
		})

		// Accounts
		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Open)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{number}", cfg.AccountHandler.Get)
			r.Post("/{number}/deposit", cfg.AccountHandler.Deposit)
			r.Post("/{number}/withdraw", cfg.AccountHandler.Withdraw)
			r.Get("/{number}/balance", cfg.AccountHandler.Balance)
			r.Get("/{number}/transactions", cfg.AccountHandler.Transactions)
			r.Get("/{number}/statement", cfg.StatementHandler.Get)
		})

		// Transfers
		r.Post("/transfers", cfg.TransferHandler.Create)

		// Ledger
		r.Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)
	})

	return r
}
