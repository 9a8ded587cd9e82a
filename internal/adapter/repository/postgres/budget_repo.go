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

// BudgetRepository implements usecase.BudgetRepository.
type BudgetRepository struct {
	queries *generated.Queries
}

// NewBudgetRepository creates a new BudgetRepository.
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return newBudgetRepository(pool)
}

func newBudgetRepository(db generated.DBTX) *BudgetRepository {
	return &BudgetRepository{queries: generated.New(db)}
}

// List returns budgets ordered by category.
func (r *BudgetRepository) List(ctx context.Context) ([]*domain.Budget, error) {
	rows, err := r.queries.ListBudgets(ctx)
	if err != nil {
		return nil, err
	}

	budgets := make([]*domain.Budget, 0, len(rows))
	for _, row := range rows {
		budgets = append(budgets, &domain.Budget{
			Category:    row.Category,
			LimitAmount: numericToDecimal(row.LimitAmount),
		})
	}

	return budgets, nil
}

// GetByCategory retrieves the budget of a category.
func (r *BudgetRepository) GetByCategory(ctx context.Context, category string) (*domain.Budget, error) {
	row, err := r.queries.GetBudgetByCategory(ctx, category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}

		return nil, err
	}

	return &domain.Budget{
		Category:    row.Category,
		LimitAmount: numericToDecimal(row.LimitAmount),
	}, nil
}

// Upsert inserts or replaces a budget.
func (r *BudgetRepository) Upsert(ctx context.Context, tx usecase.Transaction, budget *domain.Budget) error {
	return txQueries(tx).UpsertBudget(ctx, generated.UpsertBudgetParams{
		Category:    budget.Category,
		LimitAmount: decimalToNumeric(budget.LimitAmount),
	})
}

// UpsertMany inserts or replaces budgets within tx.
func (r *BudgetRepository) UpsertMany(ctx context.Context, tx usecase.Transaction, budgets []*domain.Budget) error {
	for _, budget := range budgets {
		if err := r.Upsert(ctx, tx, budget); err != nil {
			return err
		}
	}

	return nil
}

// Delete removes a budget. Deleting a missing budget is not an error.
func (r *BudgetRepository) Delete(ctx context.Context, tx usecase.Transaction, category string) error {
	return txQueries(tx).DeleteBudget(ctx, category)
}
