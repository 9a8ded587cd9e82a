package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/moneybook/internal/adapter/http/handler"
	"github.com/iho/moneybook/internal/adapter/http/middleware"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TransactionHandler *handler.TransactionHandler
	AccountHandler     *handler.AccountHandler
	LoanHandler        *handler.LoanHandler
	CategoryHandler    *handler.CategoryHandler
	BudgetHandler      *handler.BudgetHandler
	RecurringHandler   *handler.RecurringHandler
	ReportHandler      *handler.ReportHandler
	DataHandler        *handler.DataHandler
	LedgerHandler      *handler.LedgerHandler
	ProjectionHandler  *handler.ProjectionHandler
	HealthHandler      *handler.HealthHandler

	// Optional
	Logger      *zerolog.Logger
	Metrics     *middleware.MetricsMiddleware
	MetricsPath string
	RateLimiter *middleware.RateLimiter
	Idempotency *middleware.IdempotencyMiddleware
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	if cfg.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(*cfg.Logger).Wrap)
	}
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Wrap)
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsPath != "" {
		r.Handle(cfg.MetricsPath, promhttp.Handler())
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.Idempotency != nil {
			r.Use(cfg.Idempotency.Wrap)
		}

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Create)
			r.Get("/", cfg.TransactionHandler.List)
			r.Get("/{id}", cfg.TransactionHandler.Get)
			r.Put("/{id}", cfg.TransactionHandler.Update)
			r.Delete("/{id}", cfg.TransactionHandler.Delete)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Create)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/balances", cfg.AccountHandler.Balances)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Put("/{id}", cfg.AccountHandler.Update)
			r.Delete("/{id}", cfg.AccountHandler.Delete)
			r.Get("/{id}/balance", cfg.AccountHandler.Balance)
			r.Get("/{id}/flow", cfg.AccountHandler.Flow)
			r.Post("/{id}/adjust", cfg.TransactionHandler.Adjust)
		})

		r.Route("/loans", func(r chi.Router) {
			r.Post("/", cfg.LoanHandler.Create)
			r.Get("/", cfg.LoanHandler.List)
			r.Get("/{id}", cfg.LoanHandler.Get)
			r.Put("/{id}", cfg.LoanHandler.Update)
			r.Delete("/{id}", cfg.LoanHandler.Delete)
			r.Post("/{id}/transactions", cfg.LoanHandler.AddTransaction)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", cfg.CategoryHandler.List)
			r.Post("/", cfg.CategoryHandler.Create)
			r.Put("/{name}", cfg.CategoryHandler.Update)
			r.Delete("/{name}", cfg.CategoryHandler.Delete)
			r.Get("/{name}/usage", cfg.CategoryHandler.Usage)
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Get("/", cfg.BudgetHandler.List)
			r.Put("/{category}", cfg.BudgetHandler.Set)
			r.Delete("/{category}", cfg.BudgetHandler.Delete)
		})

		r.Route("/recurring", func(r chi.Router) {
			r.Get("/", cfg.RecurringHandler.List)
			r.Post("/", cfg.RecurringHandler.Create)
			r.Post("/materialize", cfg.RecurringHandler.Materialize)
			r.Put("/{id}", cfg.RecurringHandler.Update)
			r.Delete("/{id}", cfg.RecurringHandler.Delete)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/summary", cfg.ReportHandler.Summary)
			r.Get("/breakdown", cfg.ReportHandler.Breakdown)
			r.Get("/budgets", cfg.ReportHandler.Budgets)
			r.Get("/series", cfg.ReportHandler.Series)
			r.Get("/monthly", cfg.ReportHandler.Monthly)
			r.Get("/csv", cfg.ReportHandler.CSV)
		})

		r.Get("/data/export", cfg.DataHandler.Export)
		r.Post("/data/import", cfg.DataHandler.Import)

		r.Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)

		if cfg.ProjectionHandler != nil {
			r.Get("/projections/balances", cfg.ProjectionHandler.List)
			r.Get("/projections/balances/{id}", cfg.ProjectionHandler.Get)
		}
	})

	return r
}
