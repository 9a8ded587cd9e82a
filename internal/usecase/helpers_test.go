package usecase_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/usecase"
	"github.com/iho/moneybook/internal/usecase/mocks"
)

type fixture struct {
	repos    usecase.Repositories
	store    *mocks.Store
	txm      *mocks.MockTransactionManager
	ids      *mocks.MockIDGenerator
	recorder *mocks.ChangeRecorder
	logger   zerolog.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos, store := mocks.NewRepositories()
	return &fixture{
		repos:    repos,
		store:    store,
		txm:      mocks.NewMockTransactionManager(),
		ids:      mocks.NewMockIDGenerator(),
		recorder: mocks.NewChangeRecorder(),
		logger:   zerolog.Nop(),
	}
}

func (f *fixture) transactions() *usecase.TransactionUseCase {
	return usecase.NewTransactionUseCase(f.repos, f.txm, nil, f.ids, f.recorder)
}

func (f *fixture) accounts() *usecase.AccountUseCase {
	return usecase.NewAccountUseCase(f.repos, f.txm, nil, f.ids, f.recorder, f.logger)
}

func (f *fixture) loans() *usecase.LoanUseCase {
	return usecase.NewLoanUseCase(f.repos, f.txm, nil, f.ids, f.recorder, f.logger)
}

func (f *fixture) categories() *usecase.CategoryUseCase {
	return usecase.NewCategoryUseCase(f.repos, f.txm, nil, f.recorder, f.logger)
}

func (f *fixture) budgets() *usecase.BudgetUseCase {
	return usecase.NewBudgetUseCase(f.repos, f.txm, nil, f.recorder)
}

func (f *fixture) data() *usecase.DataUseCase {
	return usecase.NewDataUseCase(f.repos, f.txm, nil, f.ids, f.recorder, f.logger)
}

func (f *fixture) addAccount(id string, initial float64) *domain.Account {
	a := &domain.Account{ID: id, Name: "Account " + id, InitialBalance: decimal.NewFromFloat(initial)}
	f.store.Accounts.Seed(a)
	return a
}

func (f *fixture) addTx(t *domain.Transaction) *domain.Transaction {
	if t.Category == "" {
		t.Category = domain.CategoryOthers
	}
	if t.Date.IsZero() {
		t.Date = domain.MustParseDate("2024-03-01")
	}
	f.store.Transactions.Seed(t)
	return t
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func ref(s string) *string {
	return &s
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("expected %s, got %s", want, got)
	}
}
