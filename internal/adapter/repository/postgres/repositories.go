package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/moneybook/internal/usecase"
)

// NewRepositories wires every PostgreSQL repository to pool.
func NewRepositories(pool *pgxpool.Pool) usecase.Repositories {
	return usecase.Repositories{
		Transactions: NewTransactionRepository(pool),
		Accounts:     NewAccountRepository(pool),
		Loans:        NewLoanRepository(pool),
		Categories:   NewCategoryRepository(pool),
		Budgets:      NewBudgetRepository(pool),
		Rules:        NewRecurringRuleRepository(pool),
	}
}
