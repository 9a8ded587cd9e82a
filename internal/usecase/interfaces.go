package usecase

import (
	"context"
	"time"

	"github.com/iho/moneybook/internal/domain"
)

// TransactionRepository defines data access for ledger transactions.
type TransactionRepository interface {
	List(ctx context.Context) ([]*domain.Transaction, error)
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	Upsert(ctx context.Context, tx Transaction, t *domain.Transaction) error
	UpsertMany(ctx context.Context, tx Transaction, ts []*domain.Transaction) error
	Delete(ctx context.Context, tx Transaction, id string) error
	DeleteMany(ctx context.Context, tx Transaction, ids []string) error
}

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	List(ctx context.Context) ([]*domain.Account, error)
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	Upsert(ctx context.Context, tx Transaction, account *domain.Account) error
	UpsertMany(ctx context.Context, tx Transaction, accounts []*domain.Account) error
	Delete(ctx context.Context, tx Transaction, id string) error
}

// LoanRepository defines data access for loans.
type LoanRepository interface {
	List(ctx context.Context) ([]*domain.Loan, error)
	GetByID(ctx context.Context, id string) (*domain.Loan, error)
	Upsert(ctx context.Context, tx Transaction, loan *domain.Loan) error
	UpsertMany(ctx context.Context, tx Transaction, loans []*domain.Loan) error
	Delete(ctx context.Context, tx Transaction, id string) error
}

// CategoryRepository defines data access for user categories. System
// categories are not stored.
type CategoryRepository interface {
	List(ctx context.Context) ([]*domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	Upsert(ctx context.Context, tx Transaction, category *domain.Category) error
	UpsertMany(ctx context.Context, tx Transaction, categories []*domain.Category) error
	Delete(ctx context.Context, tx Transaction, name string) error
}

// BudgetRepository defines data access for budgets, keyed by category.
type BudgetRepository interface {
	List(ctx context.Context) ([]*domain.Budget, error)
	GetByCategory(ctx context.Context, category string) (*domain.Budget, error)
	Upsert(ctx context.Context, tx Transaction, budget *domain.Budget) error
	UpsertMany(ctx context.Context, tx Transaction, budgets []*domain.Budget) error
	Delete(ctx context.Context, tx Transaction, category string) error
}

// RecurringRuleRepository defines data access for recurring rules.
type RecurringRuleRepository interface {
	List(ctx context.Context) ([]*domain.RecurringRule, error)
	GetByID(ctx context.Context, id string) (*domain.RecurringRule, error)
	Upsert(ctx context.Context, tx Transaction, rule *domain.RecurringRule) error
	UpsertMany(ctx context.Context, tx Transaction, rules []*domain.RecurringRule) error
	Delete(ctx context.Context, tx Transaction, id string) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation that failed with a transient storage conflict.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Incr(ctx context.Context, key string) (int64, error)
}

// Locker is a cross-process mutual exclusion lock.
type Locker interface {
	// TryLock returns false without error when someone else holds key.
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}

// ChangeNotifier receives an event after every committed mutation.
type ChangeNotifier interface {
	Notify(ctx context.Context, event domain.ChangeEvent)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release forgets a key whose request failed so the client may retry it.
	Release(ctx context.Context, key string) error
}
