package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/ledger"
)

// DataUseCase moves the whole record set in and out of the ledger.
type DataUseCase struct {
	repos    Repositories
	runner   txRunner
	idGen    IDGenerator
	notifier ChangeNotifier
	logger   zerolog.Logger
}

// NewDataUseCase creates a new DataUseCase.
func NewDataUseCase(
	repos Repositories,
	txManager TransactionManager,
	retrier Retrier,
	idGen IDGenerator,
	notifier ChangeNotifier,
	logger zerolog.Logger,
) *DataUseCase {
	return &DataUseCase{
		repos:    repos,
		runner:   txRunner{txManager: txManager, retrier: retrier},
		idGen:    idGen,
		notifier: notifier,
		logger:   logger.With().Str("component", "data").Logger(),
	}
}

// Export returns every stored record as one document.
func (uc *DataUseCase) Export(ctx context.Context) (*ledger.Document, error) {
	snap, err := uc.repos.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.Export(snap), nil
}

// ImportResult counts the records an import wrote.
type ImportResult struct {
	Transactions int `json:"transactions"`
	Accounts     int `json:"accounts"`
	Loans        int `json:"loans"`
	Categories   int `json:"categories"`
	Budgets      int `json:"budgets"`
	Rules        int `json:"recurringConfigs"`
}

// Import parses data and bulk-upserts every record in one storage
// transaction. A malformed document fails with domain.ErrInvalidFormat and
// writes nothing; importing the same document twice leaves the store as after
// the first import.
func (uc *DataUseCase) Import(ctx context.Context, data []byte) (*ImportResult, error) {
	categories, err := uc.repos.Categories.List(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.Name] = true
	}

	im := &ledger.Importer{
		Known: known,
		NewID: uc.idGen.Generate,
		Now:   func() time.Time { return time.Now().UTC() },
	}
	doc, err := im.Parse(data)
	if err != nil {
		uc.logger.Warn().Err(err).Msg("import rejected")
		return nil, err
	}

	err = uc.runner.run(ctx, func(ctx context.Context, tx Transaction) error {
		if err := uc.repos.Categories.UpsertMany(ctx, tx, doc.Categories); err != nil {
			return err
		}
		if err := uc.repos.Accounts.UpsertMany(ctx, tx, doc.Accounts); err != nil {
			return err
		}
		if err := uc.repos.Loans.UpsertMany(ctx, tx, doc.Loans); err != nil {
			return err
		}
		if err := uc.repos.Budgets.UpsertMany(ctx, tx, doc.Budgets); err != nil {
			return err
		}
		if err := uc.repos.Rules.UpsertMany(ctx, tx, doc.RecurringConfigs); err != nil {
			return err
		}
		return uc.repos.Transactions.UpsertMany(ctx, tx, doc.Expenses)
	})
	if err != nil {
		uc.logger.Error().Err(err).Msg("import failed")
		return nil, err
	}

	result := &ImportResult{
		Transactions: len(doc.Expenses),
		Accounts:     len(doc.Accounts),
		Loans:        len(doc.Loans),
		Categories:   len(doc.Categories),
		Budgets:      len(doc.Budgets),
		Rules:        len(doc.RecurringConfigs),
	}
	uc.logger.Info().
		Int("transactions", result.Transactions).
		Int("accounts", result.Accounts).
		Int("loans", result.Loans).
		Int("categories", result.Categories).
		Int("budgets", result.Budgets).
		Int("rules", result.Rules).
		Msg("import completed")

	for _, entity := range []string{
		domain.EntityCategory,
		domain.EntityAccount,
		domain.EntityLoan,
		domain.EntityBudget,
		domain.EntityRecurringRule,
		domain.EntityTransaction,
	} {
		notify(ctx, uc.notifier, entity, domain.ChangeImported)
	}
	return result, nil
}

// ImportOutcome is delivered once an asynchronous import finishes.
type ImportOutcome struct {
	Result *ImportResult
	Err    error
}

// ImportAsync runs Import in the background. The returned channel receives
// exactly one outcome and is then closed. Cancelling ctx after the call does
// not abort the import.
func (uc *DataUseCase) ImportAsync(ctx context.Context, data []byte) <-chan ImportOutcome {
	out := make(chan ImportOutcome, 1)
	ctx = context.WithoutCancel(ctx)
	go func() {
		defer close(out)
		result, err := uc.Import(ctx, data)
		out <- ImportOutcome{Result: result, Err: err}
	}()
	return out
}
