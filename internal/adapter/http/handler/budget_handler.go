package handler

import (
	"context"
	"net/http"

	"github.com/iho/moneybook/internal/adapter/http/dto"
	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/usecase"
)

// BudgetService defines the behavior needed by BudgetHandler.
type BudgetService interface {
	SetBudget(ctx context.Context, input usecase.SetBudgetInput) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, category string) error
	ListBudgets(ctx context.Context) ([]*domain.Budget, error)
}

// BudgetHandler handles budget-related HTTP requests.
type BudgetHandler struct {
	budgetUC BudgetService
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetUC BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetUC: budgetUC}
}

// List returns every budget.
func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.budgetUC.ListBudgets(r.Context())
	if err != nil {
		writeDomainError(w, "failed to list budgets", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewList(budgets))
}

// Set creates or replaces the budget of the category in the path.
func (h *BudgetHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req dto.SetBudgetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	budget, err := h.budgetUC.SetBudget(r.Context(), req.ToUseCaseInput(pathParam(r, "category")))
	if err != nil {
		writeDomainError(w, "failed to set budget", err)
		return
	}

	writeJSON(w, http.StatusOK, budget)
}

// Delete removes a budget.
func (h *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.budgetUC.DeleteBudget(r.Context(), pathParam(r, "category")); err != nil {
		writeDomainError(w, "failed to delete budget", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
