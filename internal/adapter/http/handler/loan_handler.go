package handler

import (
	"context"
	"net/http"

	"github.com/iho/moneybook/internal/adapter/http/dto"
	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/usecase"
)

// LoanService defines the behavior needed by LoanHandler.
type LoanService interface {
	CreateLoan(ctx context.Context, input usecase.CreateLoanInput) (*usecase.LoanResult, error)
	UpdateLoan(ctx context.Context, input usecase.UpdateLoanInput) (*domain.Loan, error)
	AddLoanTransaction(ctx context.Context, input usecase.AddLoanTransactionInput) (*domain.Transaction, error)
	GetLoan(ctx context.Context, id string) (*usecase.LoanSummary, error)
	ListLoans(ctx context.Context) ([]*usecase.LoanSummary, error)
	DeleteLoan(ctx context.Context, id string, mode usecase.DeleteLoanMode) error
}

// LoanHandler handles loan-related HTTP requests.
type LoanHandler struct {
	loanUC LoanService
}

// NewLoanHandler creates a new LoanHandler.
func NewLoanHandler(loanUC LoanService) *LoanHandler {
	return &LoanHandler{loanUC: loanUC}
}

// Create opens a loan with its initial transaction.
func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLoanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.loanUC.CreateLoan(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to create loan", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.CreateLoanResponse{Loan: result.Loan, Transaction: result.Transaction})
}

// Get returns a loan with its outstanding amount and history.
func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	summary, err := h.loanUC.GetLoan(r.Context(), pathParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get loan", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LoanFromSummary(summary))
}

// List lists loans with their outstanding amounts.
func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.loanUC.ListLoans(r.Context())
	if err != nil {
		writeDomainError(w, "failed to list loans", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewList(dto.LoansFromSummaries(summaries)))
}

// Update edits a loan's name and description.
func (h *LoanHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateLoanRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	loan, err := h.loanUC.UpdateLoan(r.Context(), req.ToUseCaseInput(pathParam(r, "id")))
	if err != nil {
		writeDomainError(w, "failed to update loan", err)
		return
	}
	if loan == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, loan)
}

// AddTransaction records a repayment or further advance on a loan.
func (h *LoanHandler) AddTransaction(w http.ResponseWriter, r *http.Request) {
	var req dto.LoanTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	t, err := h.loanUC.AddLoanTransaction(r.Context(), req.ToUseCaseInput(pathParam(r, "id")))
	if err != nil {
		writeDomainError(w, "failed to add loan transaction", err)
		return
	}

	writeJSON(w, http.StatusCreated, t)
}

// Delete removes a loan. mode=purge deletes its transactions too; the
// default unlinks them.
func (h *LoanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	mode := usecase.DeleteLoanMode(r.URL.Query().Get("mode"))
	switch mode {
	case "", usecase.DeleteLoanUnlink, usecase.DeleteLoanPurge:
	default:
		writeError(w, http.StatusBadRequest, "invalid delete mode", string(mode))
		return
	}

	if err := h.loanUC.DeleteLoan(r.Context(), pathParam(r, "id"), mode); err != nil {
		writeDomainError(w, "failed to delete loan", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
