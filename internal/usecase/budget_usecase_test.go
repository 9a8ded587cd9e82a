package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/usecase"
)

func TestBudgetUseCase_SetBudget(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.SetBudgetInput
		expectedErr error
	}{
		{name: "system category", input: usecase.SetBudgetInput{Category: domain.CategoryOthers, LimitAmount: dec("100")}},
		{name: "user category", input: usecase.SetBudgetInput{Category: "Hobby", LimitAmount: dec("40")}},
		{name: "unknown category", input: usecase.SetBudgetInput{Category: "Yachts", LimitAmount: dec("1")}, expectedErr: domain.ErrCategoryNotFound},
		{name: "negative limit", input: usecase.SetBudgetInput{Category: "Hobby", LimitAmount: dec("-1")}, expectedErr: domain.ErrNegativeAmount},
		{name: "empty category", input: usecase.SetBudgetInput{LimitAmount: dec("1")}, expectedErr: domain.ErrInvalidCategoryName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.store.Categories.Seed(&domain.Category{Name: "Hobby"})

			got, err := f.budgets().SetBudget(context.Background(), tt.input)

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Errorf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			stored, err := f.store.Budgets.GetByCategory(context.Background(), tt.input.Category)
			if err != nil {
				t.Fatalf("expected budget stored: %v", err)
			}
			if !stored.LimitAmount.Equal(got.LimitAmount) {
				t.Errorf("expected %s, got %s", got.LimitAmount, stored.LimitAmount)
			}
		})
	}
}

func TestBudgetUseCase_SetBudget_Replaces(t *testing.T) {
	f := newFixture(t)
	uc := f.budgets()

	for _, limit := range []string{"100", "250"} {
		if _, err := uc.SetBudget(context.Background(), usecase.SetBudgetInput{Category: domain.CategoryOthers, LimitAmount: dec(limit)}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	budgets, err := uc.ListBudgets(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(budgets) != 1 {
		t.Fatalf("expected 1 budget, got %d", len(budgets))
	}
	assertDecimal(t, "250", budgets[0].LimitAmount)
}

func TestBudgetUseCase_DeleteBudget(t *testing.T) {
	f := newFixture(t)
	f.store.Budgets.Seed(&domain.Budget{Category: domain.CategoryOthers, LimitAmount: dec("5")})
	uc := f.budgets()

	if err := uc.DeleteBudget(context.Background(), domain.CategoryOthers); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.store.Budgets.Len() != 0 {
		t.Error("expected budget removed")
	}
	if err := uc.DeleteBudget(context.Background(), domain.CategoryOthers); err != nil {
		t.Errorf("expected second delete to be a no-op, got %v", err)
	}
	if begun, _, _ := f.txm.Counts(); begun != 1 {
		t.Errorf("expected one storage transaction, got %d", begun)
	}
}
