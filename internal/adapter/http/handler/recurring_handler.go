package handler

import (
	"context"
	"net/http"

	"github.com/iho/moneybook/internal/adapter/http/dto"
	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/usecase"
)

// RecurringService defines the behavior needed by RecurringHandler.
type RecurringService interface {
	CreateRule(ctx context.Context, input usecase.RuleInput) (*domain.RecurringRule, error)
	UpdateRule(ctx context.Context, input usecase.UpdateRuleInput) (*domain.RecurringRule, error)
	DeleteRule(ctx context.Context, id string) error
	ListRules(ctx context.Context) ([]usecase.RuleStatus, error)
	Materialize(ctx context.Context) (*usecase.MaterializeResult, error)
}

// RecurringHandler handles recurring rule HTTP requests.
type RecurringHandler struct {
	recurringUC RecurringService
}

// NewRecurringHandler creates a new RecurringHandler.
func NewRecurringHandler(recurringUC RecurringService) *RecurringHandler {
	return &RecurringHandler{recurringUC: recurringUC}
}

// List returns rules by next due date with their due counts.
func (h *RecurringHandler) List(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.recurringUC.ListRules(r.Context())
	if err != nil {
		writeDomainError(w, "failed to list recurring rules", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewList(dto.RulesFromStatuses(statuses)))
}

// Create adds a recurring rule.
func (h *RecurringHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.RuleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rule, err := h.recurringUC.CreateRule(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to create recurring rule", err)
		return
	}

	writeJSON(w, http.StatusCreated, rule)
}

// Update replaces a rule's fields.
func (h *RecurringHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.RuleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rule, err := h.recurringUC.UpdateRule(r.Context(), usecase.UpdateRuleInput{
		ID:        pathParam(r, "id"),
		RuleInput: req.ToUseCaseInput(),
	})
	if err != nil {
		writeDomainError(w, "failed to update recurring rule", err)
		return
	}
	if rule == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, rule)
}

// Delete removes a rule. Transactions it produced are kept.
func (h *RecurringHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.recurringUC.DeleteRule(r.Context(), pathParam(r, "id")); err != nil {
		writeDomainError(w, "failed to delete recurring rule", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Materialize stamps every overdue occurrence.
func (h *RecurringHandler) Materialize(w http.ResponseWriter, r *http.Request) {
	result, err := h.recurringUC.Materialize(r.Context())
	if err != nil {
		writeDomainError(w, "failed to materialize recurring rules", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MaterializeFromResult(result))
}
