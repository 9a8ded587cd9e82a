package eventpublisher

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/infrastructure/metrics"
	"github.com/iho/moneybook/internal/ledger"
)

// SnapshotSource loads the full record set.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*ledger.Snapshot, error)
}

// CacheInvalidator drops derived views cached elsewhere.
type CacheInvalidator interface {
	InvalidateCache(ctx context.Context) error
}

// Projector keeps derived views current. On every change event, and on a
// fixed interval, it recomputes balances from a fresh snapshot, publishes
// them as gauges, reconciles unconfirmed balance drafts and invalidates the
// report cache.
type Projector struct {
	source   SnapshotSource
	reports  CacheInvalidator
	metrics  *metrics.Metrics
	events   <-chan domain.ChangeEvent
	interval time.Duration
	logger   zerolog.Logger

	mu       sync.RWMutex
	balances map[string]*domain.Pending[decimal.Decimal]
	// generation counts started refreshes; proposed maps an account's draft
	// to the generation current when it was proposed.
	generation uint64
	proposed   map[string]uint64
}

// Config for Projector.
type Config struct {
	Source   SnapshotSource
	Reports  CacheInvalidator // optional
	Metrics  *metrics.Metrics
	Events   <-chan domain.ChangeEvent
	Interval time.Duration // full refresh interval
	Logger   zerolog.Logger
}

// NewProjector creates a new Projector.
func NewProjector(cfg Config) *Projector {
	if cfg.Interval == 0 {
		cfg.Interval = time.Minute
	}

	return &Projector{
		source:   cfg.Source,
		reports:  cfg.Reports,
		metrics:  cfg.Metrics,
		events:   cfg.Events,
		interval: cfg.Interval,
		logger:   cfg.Logger.With().Str("component", "projector").Logger(),
		balances: make(map[string]*domain.Pending[decimal.Decimal]),
		proposed: make(map[string]uint64),
	}
}

// Start runs the projector until ctx is cancelled.
func (p *Projector) Start(ctx context.Context) error {
	p.logger.Info().Dur("interval", p.interval).Msg("projector started")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Changes committed before the subscription existed were never seen as
	// events, so cached reports are dropped along with the first projection.
	p.invalidateReports(ctx)
	if err := p.refresh(ctx); err != nil {
		p.logger.Error().Err(err).Msg("error projecting on start")
	}

	events := p.events
	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("projector shutting down")
			return ctx.Err()
		case <-ticker.C:
			if err := p.refresh(ctx); err != nil {
				p.logger.Error().Err(err).Msg("error projecting")
			}
		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			p.handle(ctx, event)
		}
	}
}

// handle reacts to one change event plus any already queued behind it.
func (p *Projector) handle(ctx context.Context, first domain.ChangeEvent) {
	p.count(first)
	for drained := false; !drained; {
		select {
		case event, ok := <-p.events:
			if !ok {
				drained = true
				continue
			}
			p.count(event)
		default:
			drained = true
		}
	}

	p.invalidateReports(ctx)
	if err := p.refresh(ctx); err != nil {
		p.logger.Error().Err(err).Str("entity", first.Entity).Msg("error projecting change")
	}
}

func (p *Projector) invalidateReports(ctx context.Context) {
	if p.reports == nil {
		return
	}
	if err := p.reports.InvalidateCache(ctx); err != nil {
		p.logger.Warn().Err(err).Msg("invalidate report cache")
	}
}

func (p *Projector) count(event domain.ChangeEvent) {
	p.metrics.ChangeEvents.WithLabelValues(event.Entity, event.Kind).Inc()
}

// refresh recomputes every balance and the consistency figures.
func (p *Projector) refresh(ctx context.Context) error {
	start := time.Now()
	defer func() { p.metrics.ProjectionDelay.Observe(time.Since(start).Seconds()) }()

	p.mu.Lock()
	p.generation++
	generation := p.generation
	p.mu.Unlock()

	snap, err := p.source.Snapshot(ctx)
	if err != nil {
		p.metrics.Projections.WithLabelValues("error").Inc()
		return err
	}

	balances := ledger.Balances(snap.Accounts, snap.Transactions)

	p.mu.Lock()
	for id, pending := range p.balances {
		if _, ok := balances[id]; !ok {
			delete(p.balances, id)
			delete(p.proposed, id)
			p.metrics.AccountBalance.DeleteLabelValues(id)
			if pending.IsPending() {
				p.logger.Debug().Str("account_id", id).Msg("dropped draft of deleted account")
			}
		}
	}
	total := decimal.Zero
	for id, balance := range balances {
		pending, ok := p.balances[id]
		if !ok {
			pending = domain.NewPending(balance, decimal.Decimal.Equal)
			p.balances[id] = pending
		} else if pending.Observe(balance) {
			delete(p.proposed, id)
			p.logger.Debug().Str("account_id", id).Str("balance", balance.String()).Msg("balance draft confirmed")
		} else if proposedAt, ok := p.proposed[id]; ok && proposedAt < generation {
			// The snapshot was taken after the proposal, and so after its
			// write committed. A mismatch means a later change landed.
			pending.Discard()
			delete(p.proposed, id)
			p.logger.Debug().Str("account_id", id).Str("balance", balance.String()).Msg("balance draft superseded")
		}
		p.metrics.AccountBalance.WithLabelValues(id).Set(pending.Value().InexactFloat64())
		total = total.Add(balance)
	}
	p.mu.Unlock()

	report := ledger.Check(snap)
	p.metrics.TotalBalance.Set(total.InexactFloat64())
	p.metrics.DestroyedValue.Set(report.Destroyed.InexactFloat64())
	p.metrics.LedgerIssues.Set(float64(len(report.Issues)))
	p.metrics.Projections.WithLabelValues("ok").Inc()

	if !report.OK {
		p.logger.Warn().Int("issues", len(report.Issues)).Msg("ledger consistency check failed")
	}
	return nil
}

// ProposeBalance records the balance an account has after a write that has
// already committed. Balance reports the draft until a refresh observes it.
// A proposal equal to the projected balance is already confirmed, and a draft
// contradicted by a snapshot taken after the proposal is dropped.
func (p *Projector) ProposeBalance(accountID string, balance decimal.Decimal) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pending, ok := p.balances[accountID]
	switch {
	case !ok:
		pending = domain.NewPending(decimal.Zero, decimal.Decimal.Equal)
		p.balances[accountID] = pending
	case pending.Confirmed().Equal(balance):
		pending.Discard()
		delete(p.proposed, accountID)
		p.metrics.AccountBalance.WithLabelValues(accountID).Set(balance.InexactFloat64())
		return
	}
	pending.Propose(balance)
	p.proposed[accountID] = p.generation
	p.metrics.AccountBalance.WithLabelValues(accountID).Set(balance.InexactFloat64())
}

// BalanceView is a projected balance.
type BalanceView struct {
	Balance   decimal.Decimal `json:"balance"`
	Confirmed decimal.Decimal `json:"confirmed"`
	Pending   bool            `json:"pending"`
}

// Balance returns the projected balance of an account.
func (p *Projector) Balance(accountID string) (BalanceView, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	pending, ok := p.balances[accountID]
	if !ok {
		return BalanceView{}, false
	}
	return BalanceView{
		Balance:   pending.Value(),
		Confirmed: pending.Confirmed(),
		Pending:   pending.IsPending(),
	}, true
}

// Balances returns every projected balance keyed by account id.
func (p *Projector) Balances() map[string]BalanceView {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[string]BalanceView, len(p.balances))
	for id, pending := range p.balances {
		out[id] = BalanceView{
			Balance:   pending.Value(),
			Confirmed: pending.Confirmed(),
			Pending:   pending.IsPending(),
		}
	}
	return out
}
