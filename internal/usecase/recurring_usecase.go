package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/ledger"
)

// RecurringUseCase manages recurring rules and materializes their due
// occurrences.
type RecurringUseCase struct {
	repos    Repositories
	runner   txRunner
	idGen    IDGenerator
	notifier ChangeNotifier
	locker   Locker
	lockTTL  time.Duration
	logger   zerolog.Logger

	flight singleflight.Group
}

// RecurringConfig configures a RecurringUseCase. Locker is optional; without
// it only passes inside this process are serialized.
type RecurringConfig struct {
	Repos     Repositories
	TxManager TransactionManager
	Retrier   Retrier
	IDGen     IDGenerator
	Notifier  ChangeNotifier
	Locker    Locker
	LockTTL   time.Duration
	Logger    zerolog.Logger
}

// NewRecurringUseCase creates a new RecurringUseCase.
func NewRecurringUseCase(cfg RecurringConfig) *RecurringUseCase {
	if cfg.LockTTL == 0 {
		cfg.LockTTL = DefaultRecurringLockTTL
	}
	return &RecurringUseCase{
		repos:    cfg.Repos,
		runner:   txRunner{txManager: cfg.TxManager, retrier: cfg.Retrier},
		idGen:    cfg.IDGen,
		notifier: cfg.Notifier,
		locker:   cfg.Locker,
		lockTTL:  cfg.LockTTL,
		logger:   cfg.Logger.With().Str("component", "recurring").Logger(),
	}
}

// RuleInput carries the editable fields of a recurring rule.
type RuleInput struct {
	Amount                  decimal.Decimal
	Category                string
	Description             string
	Frequency               domain.Frequency
	NextDueDate             domain.Date
	Type                    domain.TransactionType
	AccountID               *string
	TransferTargetAccountID *string
	FeeAmount               decimal.Decimal
	FeeConfigName           *string
}

// UpdateRuleInput represents input for editing a rule.
type UpdateRuleInput struct {
	ID string
	RuleInput
}

// CreateRule validates and stores a new recurring rule.
func (uc *RecurringUseCase) CreateRule(ctx context.Context, input RuleInput) (*domain.RecurringRule, error) {
	rule := &domain.RecurringRule{ID: uc.idGen.Generate()}
	if err := uc.apply(ctx, rule, input); err != nil {
		return nil, err
	}

	err := uc.runner.run(ctx, func(ctx context.Context, tx Transaction) error {
		return uc.repos.Rules.Upsert(ctx, tx, rule)
	})
	if err != nil {
		return nil, err
	}

	notify(ctx, uc.notifier, domain.EntityRecurringRule, domain.ChangeUpserted, rule.ID)
	return rule, nil
}

// UpdateRule replaces a rule's fields. A missing rule yields (nil, nil).
func (uc *RecurringUseCase) UpdateRule(ctx context.Context, input UpdateRuleInput) (*domain.RecurringRule, error) {
	existing, err := uc.repos.Rules.GetByID(ctx, input.ID)
	if err != nil {
		if missing(err) {
			return nil, nil
		}
		return nil, err
	}

	rule := &domain.RecurringRule{ID: existing.ID}
	if err := uc.apply(ctx, rule, input.RuleInput); err != nil {
		return nil, err
	}

	err = uc.runner.run(ctx, func(ctx context.Context, tx Transaction) error {
		return uc.repos.Rules.Upsert(ctx, tx, rule)
	})
	if err != nil {
		return nil, err
	}

	notify(ctx, uc.notifier, domain.EntityRecurringRule, domain.ChangeUpserted, rule.ID)
	return rule, nil
}

// DeleteRule removes a rule. Transactions it already produced are kept.
func (uc *RecurringUseCase) DeleteRule(ctx context.Context, id string) error {
	if _, err := uc.repos.Rules.GetByID(ctx, id); err != nil {
		if missing(err) {
			return nil
		}
		return err
	}

	err := uc.runner.run(ctx, func(ctx context.Context, tx Transaction) error {
		return uc.repos.Rules.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	notify(ctx, uc.notifier, domain.EntityRecurringRule, domain.ChangeDeleted, id)
	return nil
}

// RuleStatus is a rule with the number of occurrences waiting to be stamped.
type RuleStatus struct {
	Rule *domain.RecurringRule
	Due  int
}

// ListRules returns rules ordered by next due date.
func (uc *RecurringUseCase) ListRules(ctx context.Context) ([]RuleStatus, error) {
	rules, err := uc.repos.Rules.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].NextDueDate.Before(rules[j].NextDueDate)
	})

	asOf := materializeCutoff()
	out := make([]RuleStatus, 0, len(rules))
	for _, r := range rules {
		out = append(out, RuleStatus{Rule: r, Due: ledger.DueCount(r, asOf)})
	}
	return out, nil
}

// MaterializeResult reports one materialization pass.
type MaterializeResult struct {
	Created      []*domain.Transaction
	RulesUpdated int
}

// Materialize stamps out every occurrence dated before today and advances the
// rules, writing transactions and rules in one storage transaction. Only one
// pass runs at a time: concurrent callers in this process share the running
// pass, and a pass held by another process yields
// domain.ErrMaterializationInProgress. A started pass runs to completion even
// if its caller's context is cancelled.
func (uc *RecurringUseCase) Materialize(ctx context.Context) (*MaterializeResult, error) {
	v, err, shared := uc.flight.Do(materializeFlight, func() (any, error) {
		// The pass is shared, so it must not end when the caller that started
		// it goes away. The lock expires after lockTTL, which bounds it instead.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uc.lockTTL)
		defer cancel()
		return uc.materialize(ctx)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		uc.logger.Debug().Msg("joined in-flight materialization")
	}
	return v.(*MaterializeResult), nil
}

func (uc *RecurringUseCase) materialize(ctx context.Context) (*MaterializeResult, error) {
	if uc.locker != nil {
		ok, err := uc.locker.TryLock(ctx, recurringLockKey, uc.lockTTL)
		if err != nil {
			return nil, fmt.Errorf("acquire materialization lock: %w", err)
		}
		if !ok {
			return nil, domain.ErrMaterializationInProgress
		}
		defer func() {
			if err := uc.locker.Unlock(context.WithoutCancel(ctx), recurringLockKey); err != nil {
				uc.logger.Warn().Err(err).Msg("release materialization lock")
			}
		}()
	}

	rules, err := uc.repos.Rules.List(ctx)
	if err != nil {
		return nil, err
	}

	m := ledger.Materialize(rules, materializeCutoff(), time.Now().UTC(), uc.idGen.Generate)
	if len(m.UpdatedRules) == 0 {
		return &MaterializeResult{}, nil
	}

	err = uc.runner.run(ctx, func(ctx context.Context, tx Transaction) error {
		if err := uc.repos.Transactions.UpsertMany(ctx, tx, m.Transactions); err != nil {
			return err
		}
		return uc.repos.Rules.UpsertMany(ctx, tx, m.UpdatedRules)
	})
	if err != nil {
		uc.logger.Error().Err(err).Int("rules", len(m.UpdatedRules)).Msg("materialization failed")
		return nil, err
	}

	uc.logger.Info().
		Int("transactions", len(m.Transactions)).
		Int("rules", len(m.UpdatedRules)).
		Msg("recurring rules materialized")

	ids := make([]string, len(m.Transactions))
	for i, t := range m.Transactions {
		ids[i] = t.ID
	}
	notify(ctx, uc.notifier, domain.EntityTransaction, domain.ChangeUpserted, ids...)
	notify(ctx, uc.notifier, domain.EntityRecurringRule, domain.ChangeUpserted)

	return &MaterializeResult{Created: m.Transactions, RulesUpdated: len(m.UpdatedRules)}, nil
}

func (uc *RecurringUseCase) apply(ctx context.Context, rule *domain.RecurringRule, input RuleInput) error {
	rule.Amount = input.Amount
	rule.Category = input.Category
	rule.Description = input.Description
	rule.Frequency = input.Frequency
	rule.NextDueDate = input.NextDueDate
	rule.Type = input.Type
	rule.AccountID = input.AccountID
	rule.TransferTargetAccountID = input.TransferTargetAccountID
	rule.FeeAmount = input.FeeAmount
	rule.FeeConfigName = input.FeeConfigName
	rule.AnchorDay = 0

	if rule.Type == "" {
		rule.Type = domain.TransactionTypeExpense
	}
	if rule.Category == "" {
		rule.Category = domain.CategoryOthers
	}
	if rule.Frequency == domain.FrequencyMonthly {
		rule.AnchorDay = rule.NextDueDate.Day()
	}

	if err := rule.Validate(); err != nil {
		return err
	}
	if err := domain.ValidateAmount(rule.Amount); err != nil {
		return err
	}

	if rule.AccountID != nil {
		account, err := uc.repos.Accounts.GetByID(ctx, *rule.AccountID)
		if err != nil {
			return fmt.Errorf("source account: %w", err)
		}
		if rule.FeeConfigName != nil && rule.FeeAmount.IsZero() {
			rule.FeeAmount = account.FeeFor(*rule.FeeConfigName, rule.Amount)
		}
	}
	if rule.TransferTargetAccountID != nil {
		if _, err := uc.repos.Accounts.GetByID(ctx, *rule.TransferTargetAccountID); err != nil {
			return fmt.Errorf("target account: %w", err)
		}
	}
	return categoryExists(ctx, uc.repos.Categories, rule.Category)
}

// materializeCutoff is the last date a pass stamps. A rule due today stays due
// today, so after a pass no rule's next due date lies in the past.
func materializeCutoff() domain.Date {
	return today().AddDays(-1)
}
