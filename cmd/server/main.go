package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	httpAdapter "github.com/iho/goldenlock/internal/adapter/http"
	"github.com/iho/goldenlock/internal/adapter/http/handler"
	"github.com/iho/goldenlock/internal/adapter/http/middleware"
	"github.com/iho/goldenlock/internal/adapter/repository/memory"
	redisRepo "github.com/iho/goldenlock/internal/adapter/repository/redis"
	"github.com/iho/goldenlock/internal/adapter/statement"
	"github.com/iho/goldenlock/internal/infrastructure/config"
	"github.com/iho/goldenlock/internal/infrastructure/eventpublisher"
	"github.com/iho/goldenlock/internal/infrastructure/logger"
	"github.com/iho/goldenlock/internal/infrastructure/metrics"
	"github.com/iho/goldenlock/internal/infrastructure/redis"
	"github.com/iho/goldenlock/internal/infrastructure/seed"
	"github.com/iho/goldenlock/internal/usecase"
)

const (
	bankName             = "Golden Lock Bank"
	limiterCleanupPeriod = time.Hour
	idempotencySweep     = time.Minute
	shedTimeout          = 250 * time.Millisecond
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log.Logger); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
	log.Info().Msg("server stopped")
}

// app is the wired bank service.
type app struct {
	cfg         *config.Config
	logger      zerolog.Logger
	handler     http.Handler
	publisher   *eventpublisher.EventPublisher
	rateLimiter *middleware.RateLimiter
	// memoryStore is set when idempotency keys live in process memory.
	memoryStore *memory.IdempotencyStore
	redisClient *goredis.Client
}

func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*app, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	bankMetrics := metrics.New(registry)

	// Initialize repositories
	customerRepo := memory.NewCustomerRepository()
	accountRepo := memory.NewAccountRepository()
	outboxRepo := memory.NewOutboxRepository()
	idGen := memory.NewULIDGenerator()

	// Initialize use cases
	directory := usecase.NewDirectoryUseCase(customerRepo, accountRepo, outboxRepo, idGen)
	accounts := usecase.NewAccountUseCase(outboxRepo, idGen, bankMetrics)
	bank := usecase.NewBank(directory, accounts)
	ledger := usecase.NewLedgerUseCase(accountRepo, accounts)

	a := &app{cfg: cfg, logger: logger}

	var (
		idempotencyStore usecase.IdempotencyStore
		statementCache   handler.StatementCache
	)
	if cfg.RedisURL != "" {
		connectCfg := redis.DefaultConnectConfig()
		connectCfg.MaxElapsedTime = cfg.RedisConnectTimeout
		connectCfg.Logger = logger

		client, err := redis.NewClient(ctx, cfg.RedisURL, connectCfg)
		if err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info().Msg("connected to redis")

		a.redisClient = client
		idempotencyStore = redisRepo.NewBreakerIdempotencyStore(
			redisRepo.NewIdempotencyStore(client, ""),
			redisRepo.BreakerConfig{},
			logger,
		)
		// Account versions restart with the in-memory ledger.
		instance := idGen.Generate()
		statementCache = redisRepo.NewStatementCache(client, instance, cfg.StatementCacheTTL)
		logger.Info().Str("instance", instance).Msg("statement cache scoped to this process")
	} else {
		logger.Info().Msg("redis disabled, keeping idempotency keys in memory")
		a.memoryStore = memory.NewIdempotencyStore()
		idempotencyStore = a.memoryStore
	}

	if cfg.SeedFile != "" {
		fixture, err := seed.Load(cfg.SeedFile)
		if err != nil {
			a.close()
			return nil, err
		}
		if err := fixture.Apply(ctx, bank); err != nil {
			a.close()
			return nil, err
		}
		logger.Info().
			Str("file", cfg.SeedFile).
			Int("customers", len(fixture.Customers)).
			Int("accounts", len(fixture.Accounts)).
			Msg("seed fixtures applied")
	}

	a.publisher = eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: outboxRepo,
		Publisher:  eventpublisher.NewLogPublisher(logger),
		Recorder:   bankMetrics,
		Logger:     logger,
		BatchSize:  cfg.EventBatchSize,
		Interval:   cfg.EventPublishInterval,
	})

	a.rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst,
		middleware.WithLimitHook(bankMetrics.RateLimitHits.Inc))

	// Initialize handlers
	a.handler = httpAdapter.NewRouter(httpAdapter.RouterConfig{
		CustomerHandler:  handler.NewCustomerHandler(bank, directory),
		AccountHandler:   handler.NewAccountHandler(bank, directory, accounts),
		TransferHandler:  handler.NewTransferHandler(bank),
		LedgerHandler:    handler.NewLedgerHandler(ledger),
		StatementHandler: handler.NewStatementHandler(directory, accounts, statement.NewPDFRenderer(bankName), statementCache, logger),
		HealthHandler:    handler.NewHealthHandler(a.redisClient),
		Logger:           logger,

		IdempotencyStore:   idempotencyStore,
		IdempotencyTTL:     cfg.IdempotencyTTL,
		OnIdempotentReplay: bankMetrics.IdempotencyReplays.Inc,
		RateLimiter:        a.rateLimiter,
		ConcurrencyLimiter: middleware.NewConcurrencyLimiter(cfg.HTTPMaxInFlight, shedTimeout, bankMetrics.RequestsShed.Inc),
		HTTPMetrics:        middleware.NewHTTPMetrics(registry),
		MetricsGatherer:    registry,
	})

	return a, nil
}

func (a *app) close() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("failed to close redis client")
		}
	}
}

// run serves until ctx is cancelled, then shuts down gracefully.
func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.close()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      a.handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return ignoreCanceled(a.publisher.Start(gctx))
	})

	g.Go(func() error {
		a.maintain(gctx)
		return nil
	})

	return g.Wait()
}

// maintain periodically drops rate limiter state and expired idempotency keys.
func (a *app) maintain(ctx context.Context) {
	cleanup := time.NewTicker(limiterCleanupPeriod)
	defer cleanup.Stop()
	sweep := time.NewTicker(idempotencySweep)
	defer sweep.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cleanup.C:
			a.rateLimiter.CleanupLimiters()
		case <-sweep.C:
			if a.memoryStore != nil {
				a.memoryStore.Sweep()
			}
		}
	}
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
