package handler

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/iho/moneybook/internal/adapter/http/dto"
	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	AddTransaction(ctx context.Context, input usecase.TransactionInput) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, input usecase.UpdateTransactionInput) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error)
	AdjustBalance(ctx context.Context, input usecase.AdjustBalanceInput) (*domain.Transaction, error)
}

// BalanceProposer shows a balance before the store confirms it.
type BalanceProposer interface {
	ProposeBalance(accountID string, balance decimal.Decimal)
}

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	txUC     TransactionService
	proposer BalanceProposer
}

// NewTransactionHandler creates a new TransactionHandler. proposer may be nil.
func NewTransactionHandler(txUC TransactionService, proposer BalanceProposer) *TransactionHandler {
	return &TransactionHandler{txUC: txUC, proposer: proposer}
}

// Create records a new transaction.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.TransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	t, err := h.txUC.AddTransaction(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to create transaction", err)
		return
	}

	writeJSON(w, http.StatusCreated, t)
}

// Get retrieves a transaction by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.txUC.GetTransaction(r.Context(), pathParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, t)
}

// List lists transactions, newest first, with optional filters.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := usecase.ListTransactionsInput{
		AccountID: q.Get("accountId"),
		Category:  q.Get("category"),
		LoanID:    q.Get("loanId"),
		Type:      domain.TransactionType(q.Get("type")),
	}
	if input.Type != "" && !input.Type.IsValid() {
		writeError(w, http.StatusBadRequest, "invalid transaction type", string(input.Type))
		return
	}
	if q.Get("start") != "" || q.Get("end") != "" {
		period, err := parsePeriodQuery(r)
		if err != nil {
			writeDomainError(w, "invalid period", err)
			return
		}
		input.Period = &period
	}

	txs, err := h.txUC.ListTransactions(r.Context(), input)
	if err != nil {
		writeDomainError(w, "failed to list transactions", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewList(txs))
}

// Update replaces a transaction's fields. Editing a transaction that no
// longer exists succeeds without content.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.TransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	t, err := h.txUC.UpdateTransaction(r.Context(), usecase.UpdateTransactionInput{
		ID:               pathParam(r, "id"),
		TransactionInput: req.ToUseCaseInput(),
	})
	if err != nil {
		writeDomainError(w, "failed to update transaction", err)
		return
	}
	if t == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, t)
}

// Delete removes a transaction.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.txUC.DeleteTransaction(r.Context(), pathParam(r, "id")); err != nil {
		writeDomainError(w, "failed to delete transaction", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Adjust moves an account to a target balance with a single adjustment entry.
func (h *TransactionHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	var req dto.AdjustBalanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	accountID := pathParam(r, "id")
	t, err := h.txUC.AdjustBalance(r.Context(), req.ToUseCaseInput(accountID))
	if err != nil {
		writeDomainError(w, "failed to adjust balance", err)
		return
	}
	if h.proposer != nil {
		h.proposer.ProposeBalance(accountID, req.Target)
	}

	status := http.StatusOK
	if t != nil {
		status = http.StatusCreated
	}
	writeJSON(w, status, dto.AdjustmentResponse{Transaction: t, Target: req.Target})
}
