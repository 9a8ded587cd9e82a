package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/infrastructure/postgres/generated"
	"github.com/iho/moneybook/internal/usecase"
)

// LoanRepository implements usecase.LoanRepository.
type LoanRepository struct {
	queries *generated.Queries
}

// NewLoanRepository creates a new LoanRepository.
func NewLoanRepository(pool *pgxpool.Pool) *LoanRepository {
	return newLoanRepository(pool)
}

func newLoanRepository(db generated.DBTX) *LoanRepository {
	return &LoanRepository{queries: generated.New(db)}
}

// List returns loans in creation order.
func (r *LoanRepository) List(ctx context.Context) ([]*domain.Loan, error) {
	rows, err := r.queries.ListLoans(ctx)
	if err != nil {
		return nil, err
	}

	loans := make([]*domain.Loan, 0, len(rows))
	for _, row := range rows {
		loans = append(loans, rowToLoan(row))
	}

	return loans, nil
}

// GetByID retrieves a loan by ID.
func (r *LoanRepository) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	row, err := r.queries.GetLoanByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLoanNotFound
		}

		return nil, err
	}

	return rowToLoan(row), nil
}

// Upsert inserts or replaces a loan.
func (r *LoanRepository) Upsert(ctx context.Context, tx usecase.Transaction, loan *domain.Loan) error {
	return txQueries(tx).UpsertLoan(ctx, loanParams(loan))
}

// UpsertMany inserts or replaces loans within tx.
func (r *LoanRepository) UpsertMany(ctx context.Context, tx usecase.Transaction, loans []*domain.Loan) error {
	queries := txQueries(tx)
	for _, loan := range loans {
		if err := queries.UpsertLoan(ctx, loanParams(loan)); err != nil {
			return err
		}
	}

	return nil
}

// Delete removes a loan.
func (r *LoanRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	return txQueries(tx).DeleteLoan(ctx, id)
}

func loanParams(loan *domain.Loan) generated.UpsertLoanParams {
	return generated.UpsertLoanParams{
		ID:          loan.ID,
		Name:        loan.Name,
		Type:        string(loan.Type),
		Amount:      decimalToNumeric(loan.Amount),
		Description: loan.Description,
	}
}

func rowToLoan(row generated.Loan) *domain.Loan {
	return &domain.Loan{
		ID:          row.ID,
		Name:        row.Name,
		Type:        domain.LoanType(row.Type),
		Amount:      numericToDecimal(row.Amount),
		Description: row.Description,
	}
}
