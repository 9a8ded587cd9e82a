package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/ledger"
)

// LoanUseCase handles loans and their transaction history.
type LoanUseCase struct {
	repos    Repositories
	runner   txRunner
	idGen    IDGenerator
	notifier ChangeNotifier
	logger   zerolog.Logger
}

// NewLoanUseCase creates a new LoanUseCase.
func NewLoanUseCase(
	repos Repositories,
	txManager TransactionManager,
	retrier Retrier,
	idGen IDGenerator,
	notifier ChangeNotifier,
	logger zerolog.Logger,
) *LoanUseCase {
	return &LoanUseCase{
		repos:    repos,
		runner:   txRunner{txManager: txManager, retrier: retrier},
		idGen:    idGen,
		notifier: notifier,
		logger:   logger.With().Str("component", "loans").Logger(),
	}
}

// CreateLoanInput represents input for opening a loan.
type CreateLoanInput struct {
	Name        string
	Type        domain.LoanType
	Amount      decimal.Decimal
	Description string
	// AccountID is the account the principal moves through. Without one the
	// opening transaction is a virtual loan entry.
	AccountID *string
	Date      domain.Date
	FeeAmount decimal.Decimal
}

// LoanResult pairs a loan with a transaction written alongside it.
type LoanResult struct {
	Loan        *domain.Loan
	Transaction *domain.Transaction
}

// CreateLoan stores the loan and its opening transaction together. LEND opens
// with an EXPENSE, BORROW with an INCOME, both in the Loan category.
func (uc *LoanUseCase) CreateLoan(ctx context.Context, input CreateLoanInput) (*LoanResult, error) {
	loan := &domain.Loan{
		ID:          uc.idGen.Generate(),
		Name:        input.Name,
		Type:        input.Type,
		Amount:      input.Amount,
		Description: input.Description,
	}
	if err := loan.Validate(); err != nil {
		return nil, err
	}
	if input.AccountID != nil {
		if _, err := uc.repos.Accounts.GetByID(ctx, *input.AccountID); err != nil {
			return nil, fmt.Errorf("loan account: %w", err)
		}
	}

	date := input.Date
	if date.IsZero() {
		date = today()
	}

	opening := &domain.Transaction{
		ID:          uc.idGen.Generate(),
		Amount:      input.Amount,
		FeeAmount:   input.FeeAmount,
		Category:    domain.CategoryLoan,
		Type:        input.Type.InitialTransactionType(),
		Date:        date,
		Timestamp:   time.Now().UTC(),
		AccountID:   input.AccountID,
		LoanID:      domain.StringPtr(loan.ID),
		Description: loanDescription(loan),
	}
	if err := domain.ValidateEntry(opening); err != nil {
		return nil, err
	}

	err := uc.runner.run(ctx, func(ctx context.Context, tx Transaction) error {
		if err := uc.repos.Loans.Upsert(ctx, tx, loan); err != nil {
			return err
		}
		return uc.repos.Transactions.Upsert(ctx, tx, opening)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info().
		Str("loan_id", loan.ID).
		Str("type", string(loan.Type)).
		Bool("virtual", opening.IsVirtualLoan()).
		Msg("loan opened")

	notify(ctx, uc.notifier, domain.EntityLoan, domain.ChangeUpserted, loan.ID)
	notify(ctx, uc.notifier, domain.EntityTransaction, domain.ChangeUpserted, opening.ID)
	return &LoanResult{Loan: loan, Transaction: opening}, nil
}

// UpdateLoanInput represents input for editing loan metadata.
type UpdateLoanInput struct {
	ID          string
	Name        *string
	Description *string
}

// UpdateLoan edits a loan's name and description. The principal and type are
// carried by the loan's transactions and cannot change here. A missing loan
// yields (nil, nil).
func (uc *LoanUseCase) UpdateLoan(ctx context.Context, input UpdateLoanInput) (*domain.Loan, error) {
	existing, err := uc.repos.Loans.GetByID(ctx, input.ID)
	if err != nil {
		if missing(err) {
			return nil, nil
		}
		return nil, err
	}

	loan := *existing
	if input.Name != nil {
		loan.Name = *input.Name
	}
	if input.Description != nil {
		loan.Description = *input.Description
	}
	if err := loan.Validate(); err != nil {
		return nil, err
	}

	err = uc.runner.run(ctx, func(ctx context.Context, tx Transaction) error {
		return uc.repos.Loans.Upsert(ctx, tx, &loan)
	})
	if err != nil {
		return nil, err
	}

	notify(ctx, uc.notifier, domain.EntityLoan, domain.ChangeUpserted, loan.ID)
	return &loan, nil
}

// AddLoanTransactionInput represents a repayment or a further advance.
type AddLoanTransactionInput struct {
	LoanID string
	// Type defaults to the loan's repayment type. The opening type records a
	// further advance.
	Type        domain.TransactionType
	Amount      decimal.Decimal
	FeeAmount   decimal.Decimal
	AccountID   *string
	Date        domain.Date
	Description string
	Note        string
}

// AddLoanTransaction records a transaction in a loan's history.
func (uc *LoanUseCase) AddLoanTransaction(ctx context.Context, input AddLoanTransactionInput) (*domain.Transaction, error) {
	loan, err := uc.repos.Loans.GetByID(ctx, input.LoanID)
	if err != nil {
		return nil, err
	}

	txType := input.Type
	if txType == "" {
		txType = loan.Type.RepaymentTransactionType()
	}
	if txType != domain.TransactionTypeExpense && txType != domain.TransactionTypeIncome {
		return nil, domain.ErrInvalidTransactionType
	}
	if input.AccountID != nil {
		if _, err := uc.repos.Accounts.GetByID(ctx, *input.AccountID); err != nil {
			return nil, fmt.Errorf("loan account: %w", err)
		}
	}

	date := input.Date
	if date.IsZero() {
		date = today()
	}
	description := input.Description
	if description == "" {
		description = loanDescription(loan)
	}

	t := &domain.Transaction{
		ID:          uc.idGen.Generate(),
		Amount:      input.Amount,
		FeeAmount:   input.FeeAmount,
		Category:    domain.CategoryLoan,
		Type:        txType,
		Date:        date,
		Timestamp:   time.Now().UTC(),
		AccountID:   input.AccountID,
		LoanID:      domain.StringPtr(loan.ID),
		Description: description,
		Note:        input.Note,
	}
	if err := domain.ValidateEntry(t); err != nil {
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

// LoanSummary is a loan with its derived figures.
type LoanSummary struct {
	Loan         *domain.Loan
	Outstanding  decimal.Decimal
	Transactions []*domain.Transaction
}

// GetLoan returns a loan with its outstanding balance and history.
func (uc *LoanUseCase) GetLoan(ctx context.Context, id string) (*LoanSummary, error) {
	loan, err := uc.repos.Loans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	txs, err := uc.repos.Transactions.List(ctx)
	if err != nil {
		return nil, err
	}
	return &LoanSummary{
		Loan:         loan,
		Outstanding:  ledger.LoanOutstanding(loan, txs),
		Transactions: ledger.LoanTransactions(loan.ID, txs),
	}, nil
}

// ListLoans returns every loan with its outstanding balance.
func (uc *LoanUseCase) ListLoans(ctx context.Context) ([]*LoanSummary, error) {
	loans, err := uc.repos.Loans.List(ctx)
	if err != nil {
		return nil, err
	}
	txs, err := uc.repos.Transactions.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(loans, func(i, j int) bool { return loans[i].Name < loans[j].Name })

	out := make([]*LoanSummary, 0, len(loans))
	for _, l := range loans {
		out = append(out, &LoanSummary{Loan: l, Outstanding: ledger.LoanOutstanding(l, txs)})
	}
	return out, nil
}

// DeleteLoanMode selects what happens to a deleted loan's history.
type DeleteLoanMode string

const (
	// DeleteLoanUnlink keeps the transactions and marks them as orphaned history.
	DeleteLoanUnlink DeleteLoanMode = "unlink"
	// DeleteLoanPurge deletes the transactions with the loan.
	DeleteLoanPurge DeleteLoanMode = "purge"
)

// DeleteLoan removes a loan. Deleting a missing loan is a no-op.
func (uc *LoanUseCase) DeleteLoan(ctx context.Context, id string, mode DeleteLoanMode) error {
	trigger := ledger.TriggerLoanDeleted
	switch mode {
	case DeleteLoanUnlink, "":
	case DeleteLoanPurge:
		trigger = ledger.TriggerLoanPurged
	default:
		return fmt.Errorf("unknown loan delete mode %q", mode)
	}

	if _, err := uc.repos.Loans.GetByID(ctx, id); err != nil {
		if missing(err) {
			return nil
		}
		return err
	}

	txs, err := uc.repos.Transactions.List(ctx)
	if err != nil {
		return err
	}
	plan := ledger.Cascade(trigger, id, txs)

	err = uc.runner.run(ctx, func(ctx context.Context, tx Transaction) error {
		if len(plan.Deleted) > 0 {
			if err := uc.repos.Transactions.DeleteMany(ctx, tx, plan.Deleted); err != nil {
				return err
			}
		}
		if len(plan.Updated) > 0 {
			if err := uc.repos.Transactions.UpsertMany(ctx, tx, plan.Updated); err != nil {
				return err
			}
		}
		return uc.repos.Loans.Delete(ctx, tx, id)
	})
	if err != nil {
		uc.logger.Error().Err(err).Str("loan_id", id).Msg("loan delete failed")
		return err
	}

	uc.logger.Info().
		Str("loan_id", id).
		Str("mode", string(trigger)).
		Int("transactions_deleted", len(plan.Deleted)).
		Int("transactions_unlinked", len(plan.Updated)).
		Msg("loan deleted")

	notify(ctx, uc.notifier, domain.EntityLoan, domain.ChangeDeleted, id)
	if !plan.IsEmpty() {
		notify(ctx, uc.notifier, domain.EntityTransaction, domain.ChangeUpserted)
	}
	return nil
}

func loanDescription(loan *domain.Loan) string {
	if loan.Description != "" {
		return loan.Description
	}
	return loan.Name
}
