package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/ledger"
)

// Repositories groups the storage collaborator's per-entity repositories.
type Repositories struct {
	Transactions TransactionRepository
	Accounts     AccountRepository
	Loans        LoanRepository
	Categories   CategoryRepository
	Budgets      BudgetRepository
	Rules        RecurringRuleRepository
}

// Snapshot reads every record set concurrently. The engine recomputes all
// derived views from the result.
func (r Repositories) Snapshot(ctx context.Context) (*ledger.Snapshot, error) {
	var snap ledger.Snapshot

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Transactions, err = r.Transactions.List(ctx)
		return wrapList("transactions", err)
	})
	g.Go(func() (err error) {
		snap.Accounts, err = r.Accounts.List(ctx)
		return wrapList("accounts", err)
	})
	g.Go(func() (err error) {
		snap.Loans, err = r.Loans.List(ctx)
		return wrapList("loans", err)
	})
	g.Go(func() (err error) {
		snap.Categories, err = r.Categories.List(ctx)
		return wrapList("categories", err)
	})
	g.Go(func() (err error) {
		snap.Budgets, err = r.Budgets.List(ctx)
		return wrapList("budgets", err)
	})
	g.Go(func() (err error) {
		snap.Rules, err = r.Rules.List(ctx)
		return wrapList("recurring rules", err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

func wrapList(what string, err error) error {
	if err != nil {
		return fmt.Errorf("list %s: %w", what, err)
	}
	return nil
}

// txRunner runs a unit of work in one storage transaction, retrying transient
// conflicts when a retrier is configured.
type txRunner struct {
	txManager TransactionManager
	retrier   Retrier
}

func (r txRunner) run(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error {
	op := func() error {
		ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := r.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := fn(ctx, tx); err != nil {
			return err
		}

		return tx.Commit(ctx)
	}

	if r.retrier == nil {
		return op()
	}
	return r.retrier.Retry(ctx, op)
}

func notify(ctx context.Context, n ChangeNotifier, entity, kind string, ids ...string) {
	if n == nil {
		return
	}
	n.Notify(ctx, domain.ChangeEvent{
		Entity: entity,
		Kind:   kind,
		IDs:    ids,
		At:     time.Now().UTC(),
	})
}

// missing reports whether err is one of the not-found sentinels. Edits and
// deletes of a record that has since disappeared succeed as no-ops.
func missing(err error) bool {
	return errors.Is(err, domain.ErrTransactionNotFound) ||
		errors.Is(err, domain.ErrAccountNotFound) ||
		errors.Is(err, domain.ErrLoanNotFound) ||
		errors.Is(err, domain.ErrCategoryNotFound) ||
		errors.Is(err, domain.ErrBudgetNotFound) ||
		errors.Is(err, domain.ErrRuleNotFound)
}

// categoryExists returns domain.ErrCategoryNotFound unless name is a system
// category or a stored one.
func categoryExists(ctx context.Context, repo CategoryRepository, name string) error {
	if domain.IsSystemCategory(name) {
		return nil
	}
	_, err := repo.GetByName(ctx, name)
	return err
}

func today() domain.Date {
	return domain.DateOf(time.Now().UTC())
}
