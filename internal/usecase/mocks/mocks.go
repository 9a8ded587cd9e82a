package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/usecase"
)

// MockTransactionRepository is an in-memory implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.Transaction
	order []string

	ListFunc       func(ctx context.Context) ([]*domain.Transaction, error)
	GetByIDFunc    func(ctx context.Context, id string) (*domain.Transaction, error)
	UpsertFunc     func(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error
	UpsertManyFunc func(ctx context.Context, tx usecase.Transaction, ts []*domain.Transaction) error
	DeleteFunc     func(ctx context.Context, tx usecase.Transaction, id string) error
	DeleteManyFunc func(ctx context.Context, tx usecase.Transaction, ids []string) error
}

func NewMockTransactionRepository(seed ...*domain.Transaction) *MockTransactionRepository {
	m := &MockTransactionRepository{items: make(map[string]*domain.Transaction)}
	for _, v := range seed {
		m.put(v)
	}
	return m
}

// Seed stores records directly, outside any transaction.
func (m *MockTransactionRepository) Seed(items ...*domain.Transaction) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range items {
		m.put(v)
	}
}

func (m *MockTransactionRepository) put(t *domain.Transaction) {
	if _, ok := m.items[t.ID]; !ok {
		m.order = append(m.order, t.ID)
	}
	m.items[t.ID] = t
}

func (m *MockTransactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Transaction, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, m.items[k])
	}
	return out, nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.items[id]; ok {
		return v, nil
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) Upsert(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, tx, t)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(t)
	return nil
}

func (m *MockTransactionRepository) UpsertMany(ctx context.Context, tx usecase.Transaction, ts []*domain.Transaction) error {
	if m.UpsertManyFunc != nil {
		return m.UpsertManyFunc(ctx, tx, ts)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range ts {
		m.put(v)
	}
	return nil
}

func (m *MockTransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remove(id)
	return nil
}

func (m *MockTransactionRepository) remove(key string) {
	if _, ok := m.items[key]; !ok {
		return
	}
	delete(m.items, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of stored records.
func (m *MockTransactionRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

func (m *MockTransactionRepository) DeleteMany(ctx context.Context, tx usecase.Transaction, ids []string) error {
	if m.DeleteManyFunc != nil {
		return m.DeleteManyFunc(ctx, tx, ids)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		m.remove(id)
	}
	return nil
}

// MockAccountRepository is an in-memory implementation of AccountRepository.
type MockAccountRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.Account
	order []string

	ListFunc       func(ctx context.Context) ([]*domain.Account, error)
	GetByIDFunc    func(ctx context.Context, id string) (*domain.Account, error)
	UpsertFunc     func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	UpsertManyFunc func(ctx context.Context, tx usecase.Transaction, accounts []*domain.Account) error
	DeleteFunc     func(ctx context.Context, tx usecase.Transaction, id string) error
}

func NewMockAccountRepository(seed ...*domain.Account) *MockAccountRepository {
	m := &MockAccountRepository{items: make(map[string]*domain.Account)}
	for _, v := range seed {
		m.put(v)
	}
	return m
}

// Seed stores records directly, outside any transaction.
func (m *MockAccountRepository) Seed(items ...*domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range items {
		m.put(v)
	}
}

func (m *MockAccountRepository) put(account *domain.Account) {
	if _, ok := m.items[account.ID]; !ok {
		m.order = append(m.order, account.ID)
	}
	m.items[account.ID] = account
}

func (m *MockAccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Account, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, m.items[k])
	}
	return out, nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.items[id]; ok {
		return v, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) Upsert(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(account)
	return nil
}

func (m *MockAccountRepository) UpsertMany(ctx context.Context, tx usecase.Transaction, accounts []*domain.Account) error {
	if m.UpsertManyFunc != nil {
		return m.UpsertManyFunc(ctx, tx, accounts)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range accounts {
		m.put(v)
	}
	return nil
}

func (m *MockAccountRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remove(id)
	return nil
}

func (m *MockAccountRepository) remove(key string) {
	if _, ok := m.items[key]; !ok {
		return
	}
	delete(m.items, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of stored records.
func (m *MockAccountRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// MockLoanRepository is an in-memory implementation of LoanRepository.
type MockLoanRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.Loan
	order []string

	ListFunc       func(ctx context.Context) ([]*domain.Loan, error)
	GetByIDFunc    func(ctx context.Context, id string) (*domain.Loan, error)
	UpsertFunc     func(ctx context.Context, tx usecase.Transaction, loan *domain.Loan) error
	UpsertManyFunc func(ctx context.Context, tx usecase.Transaction, loans []*domain.Loan) error
	DeleteFunc     func(ctx context.Context, tx usecase.Transaction, id string) error
}

func NewMockLoanRepository(seed ...*domain.Loan) *MockLoanRepository {
	m := &MockLoanRepository{items: make(map[string]*domain.Loan)}
	for _, v := range seed {
		m.put(v)
	}
	return m
}

// Seed stores records directly, outside any transaction.
func (m *MockLoanRepository) Seed(items ...*domain.Loan) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range items {
		m.put(v)
	}
}

func (m *MockLoanRepository) put(loan *domain.Loan) {
	if _, ok := m.items[loan.ID]; !ok {
		m.order = append(m.order, loan.ID)
	}
	m.items[loan.ID] = loan
}

func (m *MockLoanRepository) List(ctx context.Context) ([]*domain.Loan, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Loan, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, m.items[k])
	}
	return out, nil
}

func (m *MockLoanRepository) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.items[id]; ok {
		return v, nil
	}
	return nil, domain.ErrLoanNotFound
}

func (m *MockLoanRepository) Upsert(ctx context.Context, tx usecase.Transaction, loan *domain.Loan) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, tx, loan)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(loan)
	return nil
}

func (m *MockLoanRepository) UpsertMany(ctx context.Context, tx usecase.Transaction, loans []*domain.Loan) error {
	if m.UpsertManyFunc != nil {
		return m.UpsertManyFunc(ctx, tx, loans)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range loans {
		m.put(v)
	}
	return nil
}

func (m *MockLoanRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remove(id)
	return nil
}

func (m *MockLoanRepository) remove(key string) {
	if _, ok := m.items[key]; !ok {
		return
	}
	delete(m.items, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of stored records.
func (m *MockLoanRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// MockCategoryRepository is an in-memory implementation of CategoryRepository.
type MockCategoryRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.Category
	order []string

	ListFunc       func(ctx context.Context) ([]*domain.Category, error)
	GetByNameFunc  func(ctx context.Context, name string) (*domain.Category, error)
	UpsertFunc     func(ctx context.Context, tx usecase.Transaction, category *domain.Category) error
	UpsertManyFunc func(ctx context.Context, tx usecase.Transaction, categories []*domain.Category) error
	DeleteFunc     func(ctx context.Context, tx usecase.Transaction, name string) error
}

func NewMockCategoryRepository(seed ...*domain.Category) *MockCategoryRepository {
	m := &MockCategoryRepository{items: make(map[string]*domain.Category)}
	for _, v := range seed {
		m.put(v)
	}
	return m
}

// Seed stores records directly, outside any transaction.
func (m *MockCategoryRepository) Seed(items ...*domain.Category) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range items {
		m.put(v)
	}
}

func (m *MockCategoryRepository) put(category *domain.Category) {
	if _, ok := m.items[category.Name]; !ok {
		m.order = append(m.order, category.Name)
	}
	m.items[category.Name] = category
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Category, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, m.items[k])
	}
	return out, nil
}

func (m *MockCategoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	if m.GetByNameFunc != nil {
		return m.GetByNameFunc(ctx, name)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.items[name]; ok {
		return v, nil
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *MockCategoryRepository) Upsert(ctx context.Context, tx usecase.Transaction, category *domain.Category) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, tx, category)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(category)
	return nil
}

func (m *MockCategoryRepository) UpsertMany(ctx context.Context, tx usecase.Transaction, categories []*domain.Category) error {
	if m.UpsertManyFunc != nil {
		return m.UpsertManyFunc(ctx, tx, categories)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range categories {
		m.put(v)
	}
	return nil
}

func (m *MockCategoryRepository) Delete(ctx context.Context, tx usecase.Transaction, name string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remove(name)
	return nil
}

func (m *MockCategoryRepository) remove(key string) {
	if _, ok := m.items[key]; !ok {
		return
	}
	delete(m.items, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of stored records.
func (m *MockCategoryRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// MockBudgetRepository is an in-memory implementation of BudgetRepository.
type MockBudgetRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.Budget
	order []string

	ListFunc          func(ctx context.Context) ([]*domain.Budget, error)
	GetByCategoryFunc func(ctx context.Context, category string) (*domain.Budget, error)
	UpsertFunc        func(ctx context.Context, tx usecase.Transaction, budget *domain.Budget) error
	UpsertManyFunc    func(ctx context.Context, tx usecase.Transaction, budgets []*domain.Budget) error
	DeleteFunc        func(ctx context.Context, tx usecase.Transaction, category string) error
}

func NewMockBudgetRepository(seed ...*domain.Budget) *MockBudgetRepository {
	m := &MockBudgetRepository{items: make(map[string]*domain.Budget)}
	for _, v := range seed {
		m.put(v)
	}
	return m
}

// Seed stores records directly, outside any transaction.
func (m *MockBudgetRepository) Seed(items ...*domain.Budget) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range items {
		m.put(v)
	}
}

func (m *MockBudgetRepository) put(budget *domain.Budget) {
	if _, ok := m.items[budget.Category]; !ok {
		m.order = append(m.order, budget.Category)
	}
	m.items[budget.Category] = budget
}

func (m *MockBudgetRepository) List(ctx context.Context) ([]*domain.Budget, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Budget, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, m.items[k])
	}
	return out, nil
}

func (m *MockBudgetRepository) GetByCategory(ctx context.Context, category string) (*domain.Budget, error) {
	if m.GetByCategoryFunc != nil {
		return m.GetByCategoryFunc(ctx, category)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.items[category]; ok {
		return v, nil
	}
	return nil, domain.ErrBudgetNotFound
}

func (m *MockBudgetRepository) Upsert(ctx context.Context, tx usecase.Transaction, budget *domain.Budget) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, tx, budget)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(budget)
	return nil
}

func (m *MockBudgetRepository) UpsertMany(ctx context.Context, tx usecase.Transaction, budgets []*domain.Budget) error {
	if m.UpsertManyFunc != nil {
		return m.UpsertManyFunc(ctx, tx, budgets)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range budgets {
		m.put(v)
	}
	return nil
}

func (m *MockBudgetRepository) Delete(ctx context.Context, tx usecase.Transaction, category string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, category)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remove(category)
	return nil
}

func (m *MockBudgetRepository) remove(key string) {
	if _, ok := m.items[key]; !ok {
		return
	}
	delete(m.items, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of stored records.
func (m *MockBudgetRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// MockRecurringRuleRepository is an in-memory implementation of RecurringRuleRepository.
type MockRecurringRuleRepository struct {
	mu    sync.RWMutex
	items map[string]*domain.RecurringRule
	order []string

	ListFunc       func(ctx context.Context) ([]*domain.RecurringRule, error)
	GetByIDFunc    func(ctx context.Context, id string) (*domain.RecurringRule, error)
	UpsertFunc     func(ctx context.Context, tx usecase.Transaction, rule *domain.RecurringRule) error
	UpsertManyFunc func(ctx context.Context, tx usecase.Transaction, rules []*domain.RecurringRule) error
	DeleteFunc     func(ctx context.Context, tx usecase.Transaction, id string) error
}

func NewMockRecurringRuleRepository(seed ...*domain.RecurringRule) *MockRecurringRuleRepository {
	m := &MockRecurringRuleRepository{items: make(map[string]*domain.RecurringRule)}
	for _, v := range seed {
		m.put(v)
	}
	return m
}

// Seed stores records directly, outside any transaction.
func (m *MockRecurringRuleRepository) Seed(items ...*domain.RecurringRule) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range items {
		m.put(v)
	}
}

func (m *MockRecurringRuleRepository) put(rule *domain.RecurringRule) {
	if _, ok := m.items[rule.ID]; !ok {
		m.order = append(m.order, rule.ID)
	}
	m.items[rule.ID] = rule
}

func (m *MockRecurringRuleRepository) List(ctx context.Context) ([]*domain.RecurringRule, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.RecurringRule, 0, len(m.order))
	for _, k := range m.order {
		out = append(out, m.items[k])
	}
	return out, nil
}

func (m *MockRecurringRuleRepository) GetByID(ctx context.Context, id string) (*domain.RecurringRule, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.items[id]; ok {
		return v, nil
	}
	return nil, domain.ErrRuleNotFound
}

func (m *MockRecurringRuleRepository) Upsert(ctx context.Context, tx usecase.Transaction, rule *domain.RecurringRule) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, tx, rule)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(rule)
	return nil
}

func (m *MockRecurringRuleRepository) UpsertMany(ctx context.Context, tx usecase.Transaction, rules []*domain.RecurringRule) error {
	if m.UpsertManyFunc != nil {
		return m.UpsertManyFunc(ctx, tx, rules)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range rules {
		m.put(v)
	}
	return nil
}

func (m *MockRecurringRuleRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remove(id)
	return nil
}

func (m *MockRecurringRuleRepository) remove(key string) {
	if _, ok := m.items[key]; !ok {
		return
	}
	delete(m.items, key)
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of stored records.
func (m *MockRecurringRuleRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// NewRepositories wires a fresh in-memory repository set.
func NewRepositories() (usecase.Repositories, *Store) {
	s := &Store{
		Transactions: NewMockTransactionRepository(),
		Accounts:     NewMockAccountRepository(),
		Loans:        NewMockLoanRepository(),
		Categories:   NewMockCategoryRepository(),
		Budgets:      NewMockBudgetRepository(),
		Rules:        NewMockRecurringRuleRepository(),
	}
	return s.Repositories(), s
}

// Store exposes the concrete mocks behind a Repositories value.
type Store struct {
	Transactions *MockTransactionRepository
	Accounts     *MockAccountRepository
	Loans        *MockLoanRepository
	Categories   *MockCategoryRepository
	Budgets      *MockBudgetRepository
	Rules        *MockRecurringRuleRepository
}

func (s *Store) Repositories() usecase.Repositories {
	return usecase.Repositories{
		Transactions: s.Transactions,
		Accounts:     s.Accounts,
		Loans:        s.Loans,
		Categories:   s.Categories,
		Budgets:      s.Budgets,
		Rules:        s.Rules,
	}
}

// MockTransactionManager is a mock implementation of TransactionManager. It
// counts the transactions it hands out and how they ended.
type MockTransactionManager struct {
	mu         sync.Mutex
	Begun      int
	Committed  int
	RolledBack int

	BeginFunc  func(ctx context.Context) (usecase.Transaction, error)
	CommitFunc func(ctx context.Context) error
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	m.Begun++
	m.mu.Unlock()
	return &MockTransaction{manager: m, CommitFunc: m.CommitFunc}, nil
}

// Counts returns begun, committed and rolled back totals.
func (m *MockTransactionManager) Counts() (begun, committed, rolledBack int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Begun, m.Committed, m.RolledBack
}

// MockTransaction is a mock implementation of Transaction. Rollback after a
// successful commit is a no-op, as with pgx.
type MockTransaction struct {
	manager *MockTransactionManager
	done    bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		if err := m.CommitFunc(ctx); err != nil {
			return err
		}
	}
	m.done = true
	if m.manager != nil {
		m.manager.mu.Lock()
		m.manager.Committed++
		m.manager.mu.Unlock()
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	if m.done {
		return nil
	}
	m.done = true
	if m.manager != nil {
		m.manager.mu.Lock()
		m.manager.RolledBack++
		m.manager.mu.Unlock()
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// ChangeRecorder is a ChangeNotifier that keeps every event.
type ChangeRecorder struct {
	mu     sync.Mutex
	events []domain.ChangeEvent
}

func NewChangeRecorder() *ChangeRecorder {
	return &ChangeRecorder{}
}

func (r *ChangeRecorder) Notify(_ context.Context, event domain.ChangeEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events.
func (r *ChangeRecorder) Events() []domain.ChangeEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.ChangeEvent(nil), r.events...)
}

// Entities returns the entity of every recorded event in order.
func (r *ChangeRecorder) Entities() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Entity
	}
	return out
}

// MockIdempotencyStore is a mock implementation of IdempotencyStore.
type MockIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
	ReleaseFunc     func(ctx context.Context, key string) error
}

func NewMockIdempotencyStore() *MockIdempotencyStore {
	return &MockIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MockIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte(usecase.IdempotencyPlaceholder)
	}
	return false, nil, nil
}

func (m *MockIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

func (m *MockIdempotencyStore) Release(ctx context.Context, key string) error {
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Stored returns the value kept under key.
func (m *MockIdempotencyStore) Stored(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}
