package handler

import (
	"context"
	"io"

	"github.com/shopspring/decimal"

	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/infrastructure/eventpublisher"
	"github.com/iho/moneybook/internal/ledger"
	"github.com/iho/moneybook/internal/usecase"
)

type accountServiceStub struct {
	createFn   func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	updateFn   func(ctx context.Context, input usecase.UpdateAccountInput) (*domain.Account, error)
	deleteFn   func(ctx context.Context, id string) error
	getFn      func(ctx context.Context, id string) (*domain.Account, error)
	listFn     func(ctx context.Context) ([]*domain.Account, error)
	balancesFn func(ctx context.Context, asOf *domain.Date) (*usecase.BalancesResult, error)
	balanceFn  func(ctx context.Context, id string) (decimal.Decimal, error)
	flowFn     func(ctx context.Context, id string, period ledger.Period) (ledger.Flow, error)
}

func (s *accountServiceStub) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return s.createFn(ctx, input)
}

func (s *accountServiceStub) UpdateAccount(ctx context.Context, input usecase.UpdateAccountInput) (*domain.Account, error) {
	return s.updateFn(ctx, input)
}

func (s *accountServiceStub) DeleteAccount(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *accountServiceStub) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	return s.listFn(ctx)
}

func (s *accountServiceStub) GetBalances(ctx context.Context, asOf *domain.Date) (*usecase.BalancesResult, error) {
	return s.balancesFn(ctx, asOf)
}

func (s *accountServiceStub) GetBalance(ctx context.Context, id string) (decimal.Decimal, error) {
	return s.balanceFn(ctx, id)
}

func (s *accountServiceStub) GetAccountFlow(ctx context.Context, id string, period ledger.Period) (ledger.Flow, error) {
	return s.flowFn(ctx, id, period)
}

type transactionServiceStub struct {
	addFn    func(ctx context.Context, input usecase.TransactionInput) (*domain.Transaction, error)
	updateFn func(ctx context.Context, input usecase.UpdateTransactionInput) (*domain.Transaction, error)
	deleteFn func(ctx context.Context, id string) error
	getFn    func(ctx context.Context, id string) (*domain.Transaction, error)
	listFn   func(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error)
	adjustFn func(ctx context.Context, input usecase.AdjustBalanceInput) (*domain.Transaction, error)
}

func (s *transactionServiceStub) AddTransaction(ctx context.Context, input usecase.TransactionInput) (*domain.Transaction, error) {
	return s.addFn(ctx, input)
}

func (s *transactionServiceStub) UpdateTransaction(ctx context.Context, input usecase.UpdateTransactionInput) (*domain.Transaction, error) {
	return s.updateFn(ctx, input)
}

func (s *transactionServiceStub) DeleteTransaction(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *transactionServiceStub) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return s.getFn(ctx, id)
}

func (s *transactionServiceStub) ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error) {
	return s.listFn(ctx, input)
}

func (s *transactionServiceStub) AdjustBalance(ctx context.Context, input usecase.AdjustBalanceInput) (*domain.Transaction, error) {
	return s.adjustFn(ctx, input)
}

type proposerStub struct {
	accountID string
	balance   decimal.Decimal
	calls     int
}

func (p *proposerStub) ProposeBalance(accountID string, balance decimal.Decimal) {
	p.accountID = accountID
	p.balance = balance
	p.calls++
}

type loanServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateLoanInput) (*usecase.LoanResult, error)
	deleteFn func(ctx context.Context, id string, mode usecase.DeleteLoanMode) error
	getFn    func(ctx context.Context, id string) (*usecase.LoanSummary, error)
}

func (s *loanServiceStub) CreateLoan(ctx context.Context, input usecase.CreateLoanInput) (*usecase.LoanResult, error) {
	return s.createFn(ctx, input)
}

func (s *loanServiceStub) UpdateLoan(ctx context.Context, input usecase.UpdateLoanInput) (*domain.Loan, error) {
	return nil, nil
}

func (s *loanServiceStub) AddLoanTransaction(ctx context.Context, input usecase.AddLoanTransactionInput) (*domain.Transaction, error) {
	return &domain.Transaction{ID: "tx", LoanID: domain.StringPtr(input.LoanID)}, nil
}

func (s *loanServiceStub) GetLoan(ctx context.Context, id string) (*usecase.LoanSummary, error) {
	return s.getFn(ctx, id)
}

func (s *loanServiceStub) ListLoans(ctx context.Context) ([]*usecase.LoanSummary, error) {
	return nil, nil
}

func (s *loanServiceStub) DeleteLoan(ctx context.Context, id string, mode usecase.DeleteLoanMode) error {
	return s.deleteFn(ctx, id, mode)
}

type categoryServiceStub struct {
	updateFn func(ctx context.Context, input usecase.UpdateCategoryInput) (*domain.Category, error)
	deleteFn func(ctx context.Context, name string) error
	usageFn  func(ctx context.Context, name string) (ledger.CategoryUsage, error)
}

func (s *categoryServiceStub) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return nil, nil
}

func (s *categoryServiceStub) CreateCategory(ctx context.Context, input usecase.CreateCategoryInput) (*domain.Category, error) {
	return &domain.Category{Name: input.Name}, nil
}

func (s *categoryServiceStub) UpdateCategory(ctx context.Context, input usecase.UpdateCategoryInput) (*domain.Category, error) {
	return s.updateFn(ctx, input)
}

func (s *categoryServiceStub) DeleteCategory(ctx context.Context, name string) error {
	return s.deleteFn(ctx, name)
}

func (s *categoryServiceStub) GetUsage(ctx context.Context, name string) (ledger.CategoryUsage, error) {
	return s.usageFn(ctx, name)
}

type recurringServiceStub struct {
	materializeFn func(ctx context.Context) (*usecase.MaterializeResult, error)
	listFn        func(ctx context.Context) ([]usecase.RuleStatus, error)
}

func (s *recurringServiceStub) CreateRule(ctx context.Context, input usecase.RuleInput) (*domain.RecurringRule, error) {
	return &domain.RecurringRule{ID: "rule"}, nil
}

func (s *recurringServiceStub) UpdateRule(ctx context.Context, input usecase.UpdateRuleInput) (*domain.RecurringRule, error) {
	return nil, nil
}

func (s *recurringServiceStub) DeleteRule(ctx context.Context, id string) error {
	return nil
}

func (s *recurringServiceStub) ListRules(ctx context.Context) ([]usecase.RuleStatus, error) {
	return s.listFn(ctx)
}

func (s *recurringServiceStub) Materialize(ctx context.Context) (*usecase.MaterializeResult, error) {
	return s.materializeFn(ctx)
}

type reportServiceStub struct {
	inputs    []usecase.ReportInput
	summaryFn func(ctx context.Context, input usecase.ReportInput) (*ledger.Summary, error)
	csvFn     func(ctx context.Context, w io.Writer, input usecase.ReportInput) error
}

func (s *reportServiceStub) Summary(ctx context.Context, input usecase.ReportInput) (*ledger.Summary, error) {
	s.inputs = append(s.inputs, input)
	return s.summaryFn(ctx, input)
}

func (s *reportServiceStub) Breakdown(ctx context.Context, input usecase.ReportInput) ([]ledger.CategoryAmount, error) {
	s.inputs = append(s.inputs, input)
	return []ledger.CategoryAmount{}, nil
}

func (s *reportServiceStub) Budgets(ctx context.Context, input usecase.ReportInput) ([]ledger.BudgetStatus, error) {
	s.inputs = append(s.inputs, input)
	return []ledger.BudgetStatus{}, nil
}

func (s *reportServiceStub) Series(ctx context.Context, input usecase.ReportInput) ([]ledger.SeriesPoint, error) {
	s.inputs = append(s.inputs, input)
	return []ledger.SeriesPoint{}, nil
}

func (s *reportServiceStub) Monthly(ctx context.Context, input usecase.ReportInput) ([]ledger.MonthTotal, error) {
	s.inputs = append(s.inputs, input)
	return []ledger.MonthTotal{}, nil
}

func (s *reportServiceStub) WriteCSV(ctx context.Context, w io.Writer, input usecase.ReportInput) error {
	s.inputs = append(s.inputs, input)
	return s.csvFn(ctx, w, input)
}

type dataServiceStub struct {
	exportFn func(ctx context.Context) (*ledger.Document, error)
	importFn func(ctx context.Context, data []byte) (*usecase.ImportResult, error)
	asyncFn  func(ctx context.Context, data []byte) <-chan usecase.ImportOutcome
}

func (s *dataServiceStub) Export(ctx context.Context) (*ledger.Document, error) {
	return s.exportFn(ctx)
}

func (s *dataServiceStub) Import(ctx context.Context, data []byte) (*usecase.ImportResult, error) {
	return s.importFn(ctx, data)
}

func (s *dataServiceStub) ImportAsync(ctx context.Context, data []byte) <-chan usecase.ImportOutcome {
	return s.asyncFn(ctx, data)
}

type ledgerServiceStub struct {
	report *ledger.Report
	err    error
}

func (s *ledgerServiceStub) CheckConsistency(ctx context.Context) (*ledger.Report, error) {
	return s.report, s.err
}

type projectionStub map[string]eventpublisher.BalanceView

func (p projectionStub) Balance(accountID string) (eventpublisher.BalanceView, bool) {
	v, ok := p[accountID]
	return v, ok
}

func (p projectionStub) Balances() map[string]eventpublisher.BalanceView {
	return p
}
