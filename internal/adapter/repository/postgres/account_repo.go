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

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	queries *generated.Queries
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return newAccountRepository(pool)
}

func newAccountRepository(db generated.DBTX) *AccountRepository {
	return &AccountRepository{queries: generated.New(db)}
}

// List returns accounts in display order.
func (r *AccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	rows, err := r.queries.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		account, err := rowToAccount(row)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	return accounts, nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	row, err := r.queries.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToAccount(row)
}

// Upsert inserts or replaces an account.
func (r *AccountRepository) Upsert(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	params, err := accountParams(account)
	if err != nil {
		return err
	}

	return txQueries(tx).UpsertAccount(ctx, params)
}

// UpsertMany inserts or replaces accounts within tx.
func (r *AccountRepository) UpsertMany(ctx context.Context, tx usecase.Transaction, accounts []*domain.Account) error {
	queries := txQueries(tx)
	for _, account := range accounts {
		params, err := accountParams(account)
		if err != nil {
			return err
		}
		if err := queries.UpsertAccount(ctx, params); err != nil {
			return err
		}
	}

	return nil
}

// Delete removes an account.
func (r *AccountRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	return txQueries(tx).DeleteAccount(ctx, id)
}

func accountParams(account *domain.Account) (generated.UpsertAccountParams, error) {
	fees, err := feeConfigsToJSON(account.FeeConfigs)
	if err != nil {
		return generated.UpsertAccountParams{}, err
	}

	return generated.UpsertAccountParams{
		ID:             account.ID,
		Name:           account.Name,
		InitialBalance: decimalToNumeric(account.InitialBalance),
		FeeConfigs:     fees,
		SortOrder:      int32(account.SortOrder),
	}, nil
}

func rowToAccount(row generated.Account) (*domain.Account, error) {
	fees, err := jsonToFeeConfigs(row.FeeConfigs)
	if err != nil {
		return nil, err
	}

	return &domain.Account{
		ID:             row.ID,
		Name:           row.Name,
		InitialBalance: numericToDecimal(row.InitialBalance),
		FeeConfigs:     fees,
		SortOrder:      int(row.SortOrder),
	}, nil
}
