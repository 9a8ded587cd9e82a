package usecase

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/ledger"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	repos    Repositories
	runner   txRunner
	idGen    IDGenerator
	notifier ChangeNotifier
	logger   zerolog.Logger
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	repos Repositories,
	txManager TransactionManager,
	retrier Retrier,
	idGen IDGenerator,
	notifier ChangeNotifier,
	logger zerolog.Logger,
) *AccountUseCase {
	return &AccountUseCase{
		repos:    repos,
		runner:   txRunner{txManager: txManager, retrier: retrier},
		idGen:    idGen,
		notifier: notifier,
		logger:   logger.With().Str("component", "accounts").Logger(),
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Name           string
	InitialBalance decimal.Decimal
	FeeConfigs     []domain.FeeConfig
	SortOrder      int
}

// CreateAccount creates a new account.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	account := &domain.Account{
		ID:             uc.idGen.Generate(),
		Name:           input.Name,
		InitialBalance: input.InitialBalance,
		FeeConfigs:     input.FeeConfigs,
		SortOrder:      input.SortOrder,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	err := uc.runner.run(ctx, func(ctx context.Context, tx Transaction) error {
		return uc.repos.Accounts.Upsert(ctx, tx, account)
	})
	if err != nil {
		return nil, err
	}

	notify(ctx, uc.notifier, domain.EntityAccount, domain.ChangeUpserted, account.ID)
	return account, nil
}

// UpdateAccountInput represents input for editing an account. Nil fields are
// left unchanged.
type UpdateAccountInput struct {
	ID             string
	Name           *string
	InitialBalance *decimal.Decimal
	FeeConfigs     []domain.FeeConfig
	SortOrder      *int
}

// UpdateAccount edits an account. Changing the initial balance is rejected
// once any transaction references the account; use a balance adjustment
// instead. A missing account yields (nil, nil).
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, input UpdateAccountInput) (*domain.Account, error) {
	existing, err := uc.repos.Accounts.GetByID(ctx, input.ID)
	if err != nil {
		if missing(err) {
			return nil, nil
		}
		return nil, err
	}

	account := *existing
	if input.Name != nil {
		account.Name = *input.Name
	}
	if input.FeeConfigs != nil {
		account.FeeConfigs = input.FeeConfigs
	}
	if input.SortOrder != nil {
		account.SortOrder = *input.SortOrder
	}
	if input.InitialBalance != nil && !input.InitialBalance.Equal(existing.InitialBalance) {
		used, err := uc.hasTransactions(ctx, existing.ID)
		if err != nil {
			return nil, err
		}
		if used {
			return nil, domain.ErrInitialBalanceLocked
		}
		account.InitialBalance = *input.InitialBalance
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	err = uc.runner.run(ctx, func(ctx context.Context, tx Transaction) error {
		return uc.repos.Accounts.Upsert(ctx, tx, &account)
	})
	if err != nil {
		return nil, err
	}

	notify(ctx, uc.notifier, domain.EntityAccount, domain.ChangeUpserted, account.ID)
	return &account, nil
}

// DeleteAccount removes an account and applies the integrity cascade: linked
// INCOME is deleted, other linked transactions are unlinked, transfers into
// the account become expenses, and recurring rules are unlinked. Everything is
// written in one storage transaction. Deleting a missing account is a no-op.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, id string) error {
	if _, err := uc.repos.Accounts.GetByID(ctx, id); err != nil {
		if missing(err) {
			return nil
		}
		return err
	}

	txs, err := uc.repos.Transactions.List(ctx)
	if err != nil {
		return err
	}
	rules, err := uc.repos.Rules.List(ctx)
	if err != nil {
		return err
	}

	plan := ledger.Cascade(ledger.TriggerAccountDeleted, id, txs)
	updatedRules := ledger.CascadeRulesForAccount(id, rules)

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
		if len(updatedRules) > 0 {
			if err := uc.repos.Rules.UpsertMany(ctx, tx, updatedRules); err != nil {
				return err
			}
		}
		return uc.repos.Accounts.Delete(ctx, tx, id)
	})
	if err != nil {
		uc.logger.Error().Err(err).Str("account_id", id).Msg("account delete failed")
		return err
	}

	uc.logger.Info().
		Str("account_id", id).
		Int("transactions_deleted", len(plan.Deleted)).
		Int("transactions_unlinked", len(plan.Updated)).
		Int("rules_unlinked", len(updatedRules)).
		Msg("account deleted")

	notify(ctx, uc.notifier, domain.EntityAccount, domain.ChangeDeleted, id)
	if !plan.IsEmpty() {
		notify(ctx, uc.notifier, domain.EntityTransaction, domain.ChangeUpserted)
	}
	return nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.repos.Accounts.GetByID(ctx, id)
}

// ListAccounts lists accounts by sort order, then name.
func (uc *AccountUseCase) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	accounts, err := uc.repos.Accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	sortAccounts(accounts)
	return accounts, nil
}

// AccountBalance pairs an account with its derived balance.
type AccountBalance struct {
	Account *domain.Account
	Balance decimal.Decimal
}

// BalancesResult is the balance view over all accounts.
type BalancesResult struct {
	Accounts []AccountBalance
	Total    decimal.Decimal
	AsOf     *domain.Date
}

// GetBalances computes every account's balance, either current or as of a date.
func (uc *AccountUseCase) GetBalances(ctx context.Context, asOf *domain.Date) (*BalancesResult, error) {
	accounts, err := uc.repos.Accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	txs, err := uc.repos.Transactions.List(ctx)
	if err != nil {
		return nil, err
	}
	sortAccounts(accounts)

	result := &BalancesResult{Total: decimal.Zero, AsOf: asOf}

	var current map[string]decimal.Decimal
	if asOf == nil {
		current = ledger.Balances(accounts, txs)
	}

	for _, a := range accounts {
		var b decimal.Decimal
		if asOf == nil {
			b = current[a.ID]
		} else {
			b = ledger.AccountBalanceAsOf(a, txs, *asOf)
		}
		result.Accounts = append(result.Accounts, AccountBalance{Account: a, Balance: b})
		result.Total = result.Total.Add(b)
	}

	return result, nil
}

// GetBalance computes one account's current balance.
func (uc *AccountUseCase) GetBalance(ctx context.Context, id string) (decimal.Decimal, error) {
	account, err := uc.repos.Accounts.GetByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	txs, err := uc.repos.Transactions.List(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return ledger.AccountBalance(account, txs), nil
}

// GetAccountFlow returns inflow and outflow for an account over a period.
func (uc *AccountUseCase) GetAccountFlow(ctx context.Context, id string, period ledger.Period) (ledger.Flow, error) {
	if _, err := uc.repos.Accounts.GetByID(ctx, id); err != nil {
		return ledger.Flow{}, err
	}
	txs, err := uc.repos.Transactions.List(ctx)
	if err != nil {
		return ledger.Flow{}, err
	}
	return ledger.AccountFlow(id, txs, period), nil
}

func (uc *AccountUseCase) hasTransactions(ctx context.Context, accountID string) (bool, error) {
	txs, err := uc.repos.Transactions.List(ctx)
	if err != nil {
		return false, err
	}
	for _, t := range txs {
		if domain.SameRef(t.AccountID, accountID) || domain.SameRef(t.TransferTargetAccountID, accountID) {
			return true, nil
		}
	}
	return false, nil
}

func sortAccounts(accounts []*domain.Account) {
	sort.SliceStable(accounts, func(i, j int) bool {
		if accounts[i].SortOrder != accounts[j].SortOrder {
			return accounts[i].SortOrder < accounts[j].SortOrder
		}
		return accounts[i].Name < accounts[j].Name
	})
}
