package handler

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/iho/moneybook/internal/adapter/http/dto"
	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/ledger"
	"github.com/iho/moneybook/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	UpdateAccount(ctx context.Context, input usecase.UpdateAccountInput) (*domain.Account, error)
	DeleteAccount(ctx context.Context, id string) error
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	ListAccounts(ctx context.Context) ([]*domain.Account, error)
	GetBalances(ctx context.Context, asOf *domain.Date) (*usecase.BalancesResult, error)
	GetBalance(ctx context.Context, id string) (decimal.Decimal, error)
	GetAccountFlow(ctx context.Context, id string, period ledger.Period) (ledger.Flow, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService) *AccountHandler {
	return &AccountHandler{accountUC: accountUC}
}

// Create creates a new account.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := h.accountUC.CreateAccount(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, "failed to create account", err)
		return
	}

	writeJSON(w, http.StatusCreated, account)
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	account, err := h.accountUC.GetAccount(r.Context(), pathParam(r, "id"))
	if err != nil {
		writeDomainError(w, "failed to get account", err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// List lists accounts in display order.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountUC.ListAccounts(r.Context())
	if err != nil {
		writeDomainError(w, "failed to list accounts", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewList(accounts))
}

// Update edits an account.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := h.accountUC.UpdateAccount(r.Context(), req.ToUseCaseInput(pathParam(r, "id")))
	if err != nil {
		writeDomainError(w, "failed to update account", err)
		return
	}
	if account == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

// Delete removes an account and cascades to its transactions and rules.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.accountUC.DeleteAccount(r.Context(), pathParam(r, "id")); err != nil {
		writeDomainError(w, "failed to delete account", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Balances returns every account balance and the total, optionally as of a date.
func (h *AccountHandler) Balances(w http.ResponseWriter, r *http.Request) {
	asOf, err := parseDateQuery(r, "asOf")
	if err != nil {
		writeDomainError(w, "invalid asOf", err)
		return
	}

	result, err := h.accountUC.GetBalances(r.Context(), asOf)
	if err != nil {
		writeDomainError(w, "failed to get balances", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalancesFromResult(result))
}

// Balance returns the current balance of one account.
func (h *AccountHandler) Balance(w http.ResponseWriter, r *http.Request) {
	id := pathParam(r, "id")
	balance, err := h.accountUC.GetBalance(r.Context(), id)
	if err != nil {
		writeDomainError(w, "failed to get balance", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"accountId": id, "balance": balance})
}

// Flow returns an account's inflow and outflow over a period.
func (h *AccountHandler) Flow(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriodQuery(r)
	if err != nil {
		writeDomainError(w, "invalid period", err)
		return
	}

	id := pathParam(r, "id")
	flow, err := h.accountUC.GetAccountFlow(r.Context(), id, period)
	if err != nil {
		writeDomainError(w, "failed to get account flow", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.FlowFromLedger(id, period, flow))
}
