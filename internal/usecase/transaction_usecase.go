package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/ledger"
)

// TransactionUseCase handles direct transaction entry.
type TransactionUseCase struct {
	repos    Repositories
	runner   txRunner
	idGen    IDGenerator
	notifier ChangeNotifier
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	repos Repositories,
	txManager TransactionManager,
	retrier Retrier,
	idGen IDGenerator,
	notifier ChangeNotifier,
) *TransactionUseCase {
	return &TransactionUseCase{
		repos:    repos,
		runner:   txRunner{txManager: txManager, retrier: retrier},
		idGen:    idGen,
		notifier: notifier,
	}
}

// TransactionInput carries the user-editable fields of a transaction.
type TransactionInput struct {
	Amount decimal.Decimal
	// FeeAmount overrides the fee. When nil and FeeConfigName is set, the fee
	// is computed from the source account's fee config.
	FeeAmount               *decimal.Decimal
	Category                string
	Type                    domain.TransactionType
	Date                    domain.Date
	AccountID               *string
	TransferTargetAccountID *string
	LoanID                  *string
	FeeConfigName           *string
	Description             string
	Note                    string
}

// UpdateTransactionInput represents input for editing a transaction.
type UpdateTransactionInput struct {
	ID string
	TransactionInput
}

// AddTransaction validates and records a new transaction.
func (uc *TransactionUseCase) AddTransaction(ctx context.Context, input TransactionInput) (*domain.Transaction, error) {
	t := &domain.Transaction{
		ID:        uc.idGen.Generate(),
		Timestamp: time.Now().UTC(),
	}
	if err := uc.apply(ctx, t, input); err != nil {
		return nil, err
	}

	err := uc.runner.run(ctx, func(ctx context.Context, tx Transaction) error {
		return uc.repos.Transactions.Upsert(ctx, tx, t)
	})
	if err != nil {
		return nil, err
	}

	notify(ctx, uc.notifier, domain.EntityTransaction, domain.ChangeUpserted, t.ID)
	return t, nil
}

// UpdateTransaction replaces the editable fields of an existing transaction.
// A transaction that no longer exists yields (nil, nil).
func (uc *TransactionUseCase) UpdateTransaction(ctx context.Context, input UpdateTransactionInput) (*domain.Transaction, error) {
	existing, err := uc.repos.Transactions.GetByID(ctx, input.ID)
	if err != nil {
		if missing(err) {
			return nil, nil
		}
		return nil, err
	}

	t := existing.Clone()
	if err := uc.apply(ctx, t, input.TransactionInput); err != nil {
		return nil, err
	}

	err = uc.runner.run(ctx, func(ctx context.Context, tx Transaction) error {
		return uc.repos.Transactions.Upsert(ctx, tx, t)
	})
	if err != nil {
		return nil, err
	}

	notify(ctx, uc.notifier, domain.EntityTransaction, domain.ChangeUpserted, t.ID)
	return t, nil
}

// DeleteTransaction removes a transaction. Deleting a missing id is a no-op.
func (uc *TransactionUseCase) DeleteTransaction(ctx context.Context, id string) error {
	if _, err := uc.repos.Transactions.GetByID(ctx, id); err != nil {
		if missing(err) {
			return nil
		}
		return err
	}

	err := uc.runner.run(ctx, func(ctx context.Context, tx Transaction) error {
		return uc.repos.Transactions.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	notify(ctx, uc.notifier, domain.EntityTransaction, domain.ChangeDeleted, id)
	return nil
}

// GetTransaction retrieves a transaction by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.repos.Transactions.GetByID(ctx, id)
}

// ListTransactionsInput filters the transaction list. Zero values match all.
type ListTransactionsInput struct {
	Period    *ledger.Period
	AccountID string
	Category  string
	LoanID    string
	Type      domain.TransactionType
}

// ListTransactions returns matching transactions, newest first.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	all, err := uc.repos.Transactions.List(ctx)
	if err != nil {
		return nil, err
	}

	var out []*domain.Transaction
	for _, t := range all {
		if input.Period != nil && !input.Period.Contains(t.Date) {
			continue
		}
		if input.AccountID != "" && !domain.SameRef(t.AccountID, input.AccountID) && !domain.SameRef(t.TransferTargetAccountID, input.AccountID) {
			continue
		}
		if input.Category != "" && t.Category != input.Category {
			continue
		}
		if input.LoanID != "" && !domain.SameRef(t.LoanID, input.LoanID) {
			continue
		}
		if input.Type != "" && t.Type != input.Type {
			continue
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[j].Before(out[i])
	})
	return out, nil
}

// AdjustBalanceInput represents input for reconciling an account balance.
type AdjustBalanceInput struct {
	AccountID string
	Target    decimal.Decimal
	Date      domain.Date
	Note      string
}

// AdjustBalance records the INCOME or EXPENSE that moves the account's current
// balance to Target. It returns (nil, nil) when the balance already matches.
func (uc *TransactionUseCase) AdjustBalance(ctx context.Context, input AdjustBalanceInput) (*domain.Transaction, error) {
	account, err := uc.repos.Accounts.GetByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	txs, err := uc.repos.Transactions.List(ctx)
	if err != nil {
		return nil, err
	}

	diff := input.Target.Sub(ledger.AccountBalance(account, txs))
	if diff.IsZero() {
		return nil, nil
	}

	txType := domain.TransactionTypeIncome
	if diff.IsNegative() {
		txType = domain.TransactionTypeExpense
	}

	date := input.Date
	if date.IsZero() {
		date = today()
	}

	t := &domain.Transaction{
		ID:          uc.idGen.Generate(),
		Amount:      diff.Abs(),
		FeeAmount:   decimal.Zero,
		Category:    domain.CategoryBalanceAdjustment,
		Type:        txType,
		Date:        date,
		Timestamp:   time.Now().UTC(),
		AccountID:   domain.StringPtr(account.ID),
		Description: domain.CategoryBalanceAdjustment,
		Note:        input.Note,
	}

	err = uc.runner.run(ctx, func(ctx context.Context, tx Transaction) error {
		return uc.repos.Transactions.Upsert(ctx, tx, t)
	})
	if err != nil {
		return nil, err
	}

	notify(ctx, uc.notifier, domain.EntityTransaction, domain.ChangeUpserted, t.ID)
	return t, nil
}

// apply copies input onto t, resolves the fee and validates the result.
func (uc *TransactionUseCase) apply(ctx context.Context, t *domain.Transaction, input TransactionInput) error {
	t.Amount = input.Amount
	t.Category = input.Category
	t.Type = input.Type
	t.Date = input.Date
	t.AccountID = input.AccountID
	t.TransferTargetAccountID = input.TransferTargetAccountID
	t.LoanID = input.LoanID
	t.FeeConfigName = input.FeeConfigName
	t.Description = input.Description
	t.Note = input.Note

	if t.Type == "" {
		t.Type = domain.TransactionTypeExpense
	}
	if t.Category == "" {
		t.Category = domain.CategoryOthers
	}

	if err := t.Validate(); err != nil {
		return err
	}

	var source *domain.Account
	if t.AccountID != nil {
		a, err := uc.repos.Accounts.GetByID(ctx, *t.AccountID)
		if err != nil {
			return fmt.Errorf("source account: %w", err)
		}
		source = a
	}
	if t.TransferTargetAccountID != nil {
		if _, err := uc.repos.Accounts.GetByID(ctx, *t.TransferTargetAccountID); err != nil {
			return fmt.Errorf("target account: %w", err)
		}
	}
	if t.LoanID != nil {
		if _, err := uc.repos.Loans.GetByID(ctx, *t.LoanID); err != nil {
			return err
		}
	}
	if err := categoryExists(ctx, uc.repos.Categories, t.Category); err != nil {
		return err
	}

	switch {
	case input.FeeAmount != nil:
		t.FeeAmount = *input.FeeAmount
	case t.FeeConfigName != nil && source != nil:
		t.FeeAmount = source.FeeFor(*t.FeeConfigName, t.Amount)
	default:
		t.FeeAmount = decimal.Zero
	}

	return domain.ValidateEntry(t)
}
