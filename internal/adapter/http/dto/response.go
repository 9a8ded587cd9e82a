package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/ledger"
	"github.com/iho/moneybook/internal/usecase"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ListResponse wraps a collection.
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Count int `json:"count"`
}

// NewList builds a ListResponse. A nil slice is encoded as an empty array.
func NewList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Data: items, Count: len(items)}
}

// AccountBalanceResponse is an account with its computed balance.
type AccountBalanceResponse struct {
	*domain.Account
	Balance decimal.Decimal `json:"balance"`
}

// BalancesResponse lists account balances and their total.
type BalancesResponse struct {
	Accounts []AccountBalanceResponse `json:"accounts"`
	Total    decimal.Decimal          `json:"total"`
	AsOf     *domain.Date             `json:"asOf,omitempty"`
}

// BalancesFromResult converts a balances result to a response.
func BalancesFromResult(r *usecase.BalancesResult) *BalancesResponse {
	out := &BalancesResponse{
		Accounts: make([]AccountBalanceResponse, len(r.Accounts)),
		Total:    r.Total,
		AsOf:     r.AsOf,
	}
	for i, ab := range r.Accounts {
		out.Accounts[i] = AccountBalanceResponse{Account: ab.Account, Balance: ab.Balance}
	}
	return out
}

// FlowResponse is an account's movement over a period.
type FlowResponse struct {
	AccountID string          `json:"accountId"`
	Period    ledger.Period   `json:"period"`
	Inflow    decimal.Decimal `json:"inflow"`
	Outflow   decimal.Decimal `json:"outflow"`
	Net       decimal.Decimal `json:"net"`
}

// FlowFromLedger converts a ledger flow to a response.
func FlowFromLedger(accountID string, period ledger.Period, f ledger.Flow) *FlowResponse {
	return &FlowResponse{
		AccountID: accountID,
		Period:    period,
		Inflow:    f.Inflow,
		Outflow:   f.Outflow,
		Net:       f.Net(),
	}
}

// AdjustmentResponse reports a balance adjustment. Transaction is nil when
// the account already had the target balance.
type AdjustmentResponse struct {
	Transaction *domain.Transaction `json:"transaction"`
	Target      decimal.Decimal     `json:"target"`
}

// LoanResponse is a loan with its derived figures.
type LoanResponse struct {
	*domain.Loan
	Outstanding  decimal.Decimal       `json:"outstanding"`
	Transactions []*domain.Transaction `json:"transactions,omitempty"`
}

// LoanFromSummary converts a loan summary to a response.
func LoanFromSummary(s *usecase.LoanSummary) *LoanResponse {
	return &LoanResponse{Loan: s.Loan, Outstanding: s.Outstanding, Transactions: s.Transactions}
}

// LoansFromSummaries converts loan summaries to responses.
func LoansFromSummaries(summaries []*usecase.LoanSummary) []*LoanResponse {
	out := make([]*LoanResponse, len(summaries))
	for i, s := range summaries {
		out[i] = LoanFromSummary(s)
	}
	return out
}

// CreateLoanResponse is a new loan with its opening transaction.
type CreateLoanResponse struct {
	Loan        *domain.Loan        `json:"loan"`
	Transaction *domain.Transaction `json:"transaction"`
}

// RuleResponse is a recurring rule with its count of due occurrences.
type RuleResponse struct {
	*domain.RecurringRule
	Due int `json:"due"`
}

// RulesFromStatuses converts rule statuses to responses.
func RulesFromStatuses(statuses []usecase.RuleStatus) []RuleResponse {
	out := make([]RuleResponse, len(statuses))
	for i, s := range statuses {
		out[i] = RuleResponse{RecurringRule: s.Rule, Due: s.Due}
	}
	return out
}

// MaterializeResponse reports one materialization pass.
type MaterializeResponse struct {
	Created      []*domain.Transaction `json:"created"`
	RulesUpdated int                   `json:"rulesUpdated"`
}

// MaterializeFromResult converts a materialization result to a response.
func MaterializeFromResult(r *usecase.MaterializeResult) *MaterializeResponse {
	created := r.Created
	if created == nil {
		created = []*domain.Transaction{}
	}
	return &MaterializeResponse{Created: created, RulesUpdated: r.RulesUpdated}
}

// ImportAcceptedResponse acknowledges an asynchronous import.
type ImportAcceptedResponse struct {
	Status string `json:"status"`
}

// ProjectedBalanceResponse is the projector's view of one account.
type ProjectedBalanceResponse struct {
	AccountID string          `json:"accountId"`
	Balance   decimal.Decimal `json:"balance"`
	Confirmed decimal.Decimal `json:"confirmed"`
	Pending   bool            `json:"pending"`
}
