package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	httpAdapter "github.com/iho/moneybook/internal/adapter/http"
	"github.com/iho/moneybook/internal/adapter/http/handler"
	"github.com/iho/moneybook/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/moneybook/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/moneybook/internal/adapter/repository/redis"
	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/infrastructure/config"
	"github.com/iho/moneybook/internal/infrastructure/eventpublisher"
	"github.com/iho/moneybook/internal/infrastructure/logger"
	"github.com/iho/moneybook/internal/infrastructure/metrics"
	"github.com/iho/moneybook/internal/infrastructure/postgres"
	"github.com/iho/moneybook/internal/infrastructure/redis"
	"github.com/iho/moneybook/internal/ledger"
	"github.com/iho/moneybook/internal/usecase"
)

const (
	metricsPath        = "/metrics"
	limiterCleanup     = 5 * time.Minute
	projectorEventsBuf = 64
)

func main() {
	// Console output until the configured logger is installed.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	l := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logger.Install(l)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, l); err != nil {
		l.Fatal().Err(err).Msg("server failed")
	}
	l.Info().Msg("server stopped")
}

func run(ctx context.Context, cfg *config.Config, l zerolog.Logger) error {
	// Schema first; the repositories assume it is current.
	if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.DatabaseTimeout)
	defer cancel()

	pool, err := postgres.NewPool(connectCtx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	l.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(connectCtx, redis.Config{URL: cfg.RedisURL})
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()
	l.Info().Msg("connected to redis")

	// Repositories and stores
	repos := postgresRepo.NewRepositories(pool)
	txManager := postgresRepo.NewTxManager(pool)
	retrier := postgresRepo.NewRetrier()
	idGen := postgresRepo.NewULIDGenerator()
	cache := redisRepo.NewCache(redisClient)
	locker := redisRepo.NewLocker(redisClient)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)

	reportUC := usecase.NewReportUseCase(usecase.ReportConfig{
		Repos:    repos,
		Cache:    cache,
		CacheTTL: cfg.ReportCacheTTL,
		Defaults: ledger.FilterOptions{HideLoanTransactions: cfg.HideLoanTransactions},
		Logger:   l,
	})

	// Change events fan out locally and to other instances through redis.
	// Reports are invalidated before the mutating call returns.
	publisher := redisRepo.NewChangePublisher(redisClient, cfg.ChangeChannel, l)
	hub := eventpublisher.NewHub(reportUC, publisher)

	// Use cases
	transactionUC := usecase.NewTransactionUseCase(repos, txManager, retrier, idGen, hub)
	accountUC := usecase.NewAccountUseCase(repos, txManager, retrier, idGen, hub, l)
	loanUC := usecase.NewLoanUseCase(repos, txManager, retrier, idGen, hub, l)
	categoryUC := usecase.NewCategoryUseCase(repos, txManager, retrier, hub, l)
	budgetUC := usecase.NewBudgetUseCase(repos, txManager, retrier, hub)
	dataUC := usecase.NewDataUseCase(repos, txManager, retrier, idGen, hub, l)
	ledgerUC := usecase.NewLedgerUseCase(repos, l)
	recurringUC := usecase.NewRecurringUseCase(usecase.RecurringConfig{
		Repos:     repos,
		TxManager: txManager,
		Retrier:   retrier,
		IDGen:     idGen,
		Notifier:  hub,
		Locker:    locker,
		LockTTL:   cfg.RecurringLockTTL,
		Logger:    l,
	})

	// Projections
	m := metrics.New()
	events, unsubscribe := hub.Subscribe(projectorEventsBuf)
	defer unsubscribe()
	projector := eventpublisher.NewProjector(eventpublisher.Config{
		Source:   repos,
		Reports:  reportUC,
		Metrics:  m,
		Events:   events,
		Interval: cfg.ProjectorInterval,
		Logger:   l,
	})

	if cfg.MaterializeOnStart {
		materializeOnStart(ctx, recurringUC, l)
	}

	// HTTP
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).WithMetrics(m)
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TransactionHandler: handler.NewTransactionHandler(transactionUC, projector),
		AccountHandler:     handler.NewAccountHandler(accountUC),
		LoanHandler:        handler.NewLoanHandler(loanUC),
		CategoryHandler:    handler.NewCategoryHandler(categoryUC),
		BudgetHandler:      handler.NewBudgetHandler(budgetUC),
		RecurringHandler:   handler.NewRecurringHandler(recurringUC),
		ReportHandler:      handler.NewReportHandler(reportUC),
		DataHandler:        handler.NewDataHandler(dataUC, l),
		LedgerHandler:      handler.NewLedgerHandler(ledgerUC),
		ProjectionHandler:  handler.NewProjectionHandler(projector),
		HealthHandler:      handler.NewHealthHandler(pool, redisClient),
		Logger:             &l,
		Metrics:            middleware.NewMetricsMiddleware(m),
		MetricsPath:        metricsPath,
		RateLimiter:        rateLimiter,
		Idempotency:        middleware.NewIdempotencyMiddleware(idempotencyStore, cfg.IdempotencyTTL, l),
	})
	server := newServer(cfg, router)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := projector.Start(gctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		if err := publisher.Subscribe(gctx, hub.DeliverRemote); err != nil && gctx.Err() == nil {
			l.Error().Err(err).Msg("change subscription ended")
		}
		return nil
	})

	g.Go(func() error {
		rateLimiter.Run(gctx, limiterCleanup)
		return nil
	})

	g.Go(func() error {
		l.Info().Str("addr", server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		l.Info().Msg("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

func newServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      h,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
}

type materializer interface {
	Materialize(ctx context.Context) (*usecase.MaterializeResult, error)
}

// materializeOnStart stamps due recurring transactions. Another instance
// holding the lock is not an error.
func materializeOnStart(ctx context.Context, m materializer, l zerolog.Logger) {
	res, err := m.Materialize(ctx)
	switch {
	case errors.Is(err, domain.ErrMaterializationInProgress):
		l.Warn().Msg("materialization already running elsewhere, skipped")
	case err != nil:
		l.Error().Err(err).Msg("materialization on start failed")
	default:
		l.Info().Int("created", len(res.Created)).Int("rules", res.RulesUpdated).Msg("materialized on start")
	}
}
