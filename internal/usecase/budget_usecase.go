package usecase

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/iho/moneybook/internal/domain"
)

// BudgetUseCase handles per-category spending limits.
type BudgetUseCase struct {
	repos    Repositories
	runner   txRunner
	notifier ChangeNotifier
}

// NewBudgetUseCase creates a new BudgetUseCase.
func NewBudgetUseCase(repos Repositories, txManager TransactionManager, retrier Retrier, notifier ChangeNotifier) *BudgetUseCase {
	return &BudgetUseCase{
		repos:    repos,
		runner:   txRunner{txManager: txManager, retrier: retrier},
		notifier: notifier,
	}
}

// SetBudgetInput represents input for setting a budget.
type SetBudgetInput struct {
	Category    string
	LimitAmount decimal.Decimal
}

// SetBudget creates or replaces the budget of a category.
func (uc *BudgetUseCase) SetBudget(ctx context.Context, input SetBudgetInput) (*domain.Budget, error) {
	budget := &domain.Budget{Category: input.Category, LimitAmount: input.LimitAmount}
	if err := budget.Validate(); err != nil {
		return nil, err
	}
	if err := domain.ValidateAmount(budget.LimitAmount); err != nil {
		return nil, err
	}
	if err := categoryExists(ctx, uc.repos.Categories, budget.Category); err != nil {
		return nil, err
	}

	err := uc.runner.run(ctx, func(ctx context.Context, tx Transaction) error {
		return uc.repos.Budgets.Upsert(ctx, tx, budget)
	})
	if err != nil {
		return nil, err
	}

	notify(ctx, uc.notifier, domain.EntityBudget, domain.ChangeUpserted, budget.Category)
	return budget, nil
}

// DeleteBudget removes a budget, making the category unlimited.
func (uc *BudgetUseCase) DeleteBudget(ctx context.Context, category string) error {
	if _, err := uc.repos.Budgets.GetByCategory(ctx, category); err != nil {
		if missing(err) {
			return nil
		}
		return err
	}

	err := uc.runner.run(ctx, func(ctx context.Context, tx Transaction) error {
		return uc.repos.Budgets.Delete(ctx, tx, category)
	})
	if err != nil {
		return err
	}

	notify(ctx, uc.notifier, domain.EntityBudget, domain.ChangeDeleted, category)
	return nil
}

// ListBudgets returns budgets ordered by category.
func (uc *BudgetUseCase) ListBudgets(ctx context.Context) ([]*domain.Budget, error) {
	budgets, err := uc.repos.Budgets.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(budgets, func(i, j int) bool { return budgets[i].Category < budgets[j].Category })
	return budgets, nil
}
