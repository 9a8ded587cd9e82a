package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/ledger"
)

// ReportUseCase serves period reports. Results are cached under a version
// counter; bumping the counter invalidates every cached report at once.
type ReportUseCase struct {
	repos    Repositories
	cache    Cache
	cacheTTL time.Duration
	defaults ledger.FilterOptions
	logger   zerolog.Logger
}

// ReportConfig configures a ReportUseCase. Cache is optional.
type ReportConfig struct {
	Repos    Repositories
	Cache    Cache
	CacheTTL time.Duration
	// Defaults apply when a request does not override them.
	Defaults ledger.FilterOptions
	Logger   zerolog.Logger
}

// NewReportUseCase creates a new ReportUseCase.
func NewReportUseCase(cfg ReportConfig) *ReportUseCase {
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = DefaultReportCacheTTL
	}
	return &ReportUseCase{
		repos:    cfg.Repos,
		cache:    cfg.Cache,
		cacheTTL: cfg.CacheTTL,
		defaults: cfg.Defaults,
		logger:   cfg.Logger.With().Str("component", "reports").Logger(),
	}
}

// ReportInput selects the period and display options of a report.
type ReportInput struct {
	Period ledger.Period
	// HideLoanTransactions overrides the configured default when set.
	HideLoanTransactions *bool
}

func (uc *ReportUseCase) options(input ReportInput) ledger.FilterOptions {
	opts := uc.defaults
	if input.HideLoanTransactions != nil {
		opts.HideLoanTransactions = *input.HideLoanTransactions
	}
	return opts
}

// Summary returns spend, income, fees and the category breakdown.
func (uc *ReportUseCase) Summary(ctx context.Context, input ReportInput) (*ledger.Summary, error) {
	opts := uc.options(input)
	var out ledger.Summary
	err := uc.cached(ctx, "summary", input.Period, opts, &out, func(snap *ledger.Snapshot) any {
		return ledger.Summarize(snap.Transactions, input.Period, opts)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Breakdown returns the category slices of the period.
func (uc *ReportUseCase) Breakdown(ctx context.Context, input ReportInput) ([]ledger.CategoryAmount, error) {
	opts := uc.options(input)
	var out []ledger.CategoryAmount
	err := uc.cached(ctx, "breakdown", input.Period, opts, &out, func(snap *ledger.Snapshot) any {
		return ledger.CategoryBreakdown(snap.Transactions, input.Period, opts)
	})
	return out, err
}

// Budgets compares every budget with the period's spend.
func (uc *ReportUseCase) Budgets(ctx context.Context, input ReportInput) ([]ledger.BudgetStatus, error) {
	opts := uc.options(input)
	var out []ledger.BudgetStatus
	err := uc.cached(ctx, "budgets", input.Period, opts, &out, func(snap *ledger.Snapshot) any {
		return ledger.CompareBudgets(snap.Budgets, snap.Transactions, input.Period, opts)
	})
	return out, err
}

// Series returns one chart point per day of the period.
func (uc *ReportUseCase) Series(ctx context.Context, input ReportInput) ([]ledger.SeriesPoint, error) {
	opts := uc.options(input)
	var out []ledger.SeriesPoint
	err := uc.cached(ctx, "series", input.Period, opts, &out, func(snap *ledger.Snapshot) any {
		return ledger.DailySeries(snap.Transactions, input.Period, opts)
	})
	return out, err
}

// Monthly returns per-month totals across the period.
func (uc *ReportUseCase) Monthly(ctx context.Context, input ReportInput) ([]ledger.MonthTotal, error) {
	opts := uc.options(input)
	var out []ledger.MonthTotal
	err := uc.cached(ctx, "monthly", input.Period, opts, &out, func(snap *ledger.Snapshot) any {
		return ledger.MonthlyTotals(snap.Transactions, input.Period.Start, input.Period.End, opts)
	})
	return out, err
}

// WriteCSV streams the period's transactions as CSV. It is never cached.
func (uc *ReportUseCase) WriteCSV(ctx context.Context, w io.Writer, input ReportInput) error {
	txs, err := uc.repos.Transactions.List(ctx)
	if err != nil {
		return err
	}
	return ledger.WriteCSV(w, txs, input.Period, uc.options(input))
}

// InvalidateCache drops every cached report.
func (uc *ReportUseCase) InvalidateCache(ctx context.Context) error {
	if uc.cache == nil {
		return nil
	}
	_, err := uc.cache.Incr(ctx, reportVersionKey)
	return err
}

// Notify drops cached reports after a committed change. Registered with the
// change hub it runs before the mutating call returns, so a report read after
// a write never sees the previous version.
func (uc *ReportUseCase) Notify(ctx context.Context, event domain.ChangeEvent) {
	if err := uc.InvalidateCache(context.WithoutCancel(ctx)); err != nil {
		uc.logger.Warn().Err(err).Str("entity", event.Entity).Str("kind", event.Kind).Msg("report cache invalidation failed")
	}
}

// cached loads the report from the cache or computes it from a fresh snapshot.
// Cache failures degrade to computing; they are logged, never returned.
func (uc *ReportUseCase) cached(
	ctx context.Context,
	kind string,
	period ledger.Period,
	opts ledger.FilterOptions,
	dest any,
	compute func(*ledger.Snapshot) any,
) error {
	if err := domain.ValidatePeriod(period.Start, period.End); err != nil {
		return err
	}

	key := ""
	if uc.cache != nil {
		version, err := uc.version(ctx)
		if err == nil {
			key = fmt.Sprintf("%sv%d:%s:%s:%s:%t", reportKeyPrefix, version, kind, period.Start, period.End, opts.HideLoanTransactions)
			if data, err := uc.cache.Get(ctx, key); err == nil && data != nil {
				if err := json.Unmarshal(data, dest); err == nil {
					return nil
				}
			}
		} else {
			uc.logger.Warn().Err(err).Msg("report cache unavailable")
		}
	}

	snap, err := uc.repos.Snapshot(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(compute(snap))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return err
	}

	if key != "" {
		if err := uc.cache.Set(ctx, key, data, uc.cacheTTL); err != nil {
			uc.logger.Warn().Err(err).Str("key", key).Msg("report cache write failed")
		}
	}
	return nil
}

func (uc *ReportUseCase) version(ctx context.Context) (int64, error) {
	data, err := uc.cache.Get(ctx, reportVersionKey)
	if err != nil {
		return 0, err
	}
	if data == nil {
		return 0, nil
	}
	return strconv.ParseInt(string(data), 10, 64)
}

// CurrentMonth is the calendar month containing today.
func CurrentMonth() ledger.Period {
	now := today()
	return ledger.MonthPeriod(now.Year(), now.Month())
}

// ParsePeriod builds a period from ISO dates. Empty bounds default to the
// current month.
func ParsePeriod(start, end string) (ledger.Period, error) {
	if start == "" && end == "" {
		return CurrentMonth(), nil
	}
	s, err := domain.ParseDate(start)
	if err != nil {
		return ledger.Period{}, fmt.Errorf("%w: start: %v", domain.ErrInvalidPeriod, err)
	}
	e, err := domain.ParseDate(end)
	if err != nil {
		return ledger.Period{}, fmt.Errorf("%w: end: %v", domain.ErrInvalidPeriod, err)
	}
	return ledger.NewPeriod(s, e)
}
