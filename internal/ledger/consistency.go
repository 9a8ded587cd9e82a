package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/iho/moneybook/internal/domain"
)

// Issue is one problem found by Check.
type Issue struct {
	Kind          string `json:"kind"`
	TransactionID string `json:"transactionId,omitempty"`
	Detail        string `json:"detail"`
}

const (
	IssueDanglingAccount   = "dangling_account"
	IssueDanglingTarget    = "dangling_target"
	IssueDanglingLoan      = "dangling_loan"
	IssueUnknownCategory   = "unknown_category"
	IssueInvalidShape      = "invalid_shape"
	IssueBalanceMismatch   = "balance_mismatch"
	IssueDestroyedMismatch = "destroyed_mismatch"
)

// Report is the outcome of a consistency check.
type Report struct {
	AccountCount     int             `json:"accountCount"`
	TransactionCount int             `json:"transactionCount"`
	InitialTotal     decimal.Decimal `json:"initialTotal"`
	BalanceTotal     decimal.Decimal `json:"balanceTotal"`
	// Destroyed is the net value transfers removed from tracked accounts. Fees
	// always count; so does the amount of a transfer whose target is gone.
	Destroyed decimal.Decimal `json:"destroyed"`
	Issues    []Issue         `json:"issues"`
	OK        bool            `json:"ok"`
}

// Check verifies that balances are fully explained by initial balances and
// per-transaction effects, that transfers destroy exactly their fees, and that
// every reference resolves.
func Check(snap *Snapshot) Report {
	r := Report{
		AccountCount:     len(snap.Accounts),
		TransactionCount: len(snap.Transactions),
		InitialTotal:     decimal.Zero,
		Destroyed:        decimal.Zero,
		Issues:           []Issue{},
	}

	accounts := make(map[string]bool, len(snap.Accounts))
	for _, a := range snap.Accounts {
		accounts[a.ID] = true
		r.InitialTotal = r.InitialTotal.Add(a.InitialBalance)
	}
	loans := make(map[string]bool, len(snap.Loans))
	for _, l := range snap.Loans {
		loans[l.ID] = true
	}
	categories := snap.CategoryNames()

	expected := r.InitialTotal
	for _, t := range snap.Transactions {
		if err := t.Validate(); err != nil {
			r.Issues = append(r.Issues, Issue{Kind: IssueInvalidShape, TransactionID: t.ID, Detail: err.Error()})
		}
		if t.AccountID != nil && !accounts[*t.AccountID] {
			r.Issues = append(r.Issues, Issue{Kind: IssueDanglingAccount, TransactionID: t.ID, Detail: *t.AccountID})
		}
		if t.TransferTargetAccountID != nil && !accounts[*t.TransferTargetAccountID] {
			r.Issues = append(r.Issues, Issue{Kind: IssueDanglingTarget, TransactionID: t.ID, Detail: *t.TransferTargetAccountID})
		}
		if t.LoanID != nil && !loans[*t.LoanID] {
			r.Issues = append(r.Issues, Issue{Kind: IssueDanglingLoan, TransactionID: t.ID, Detail: *t.LoanID})
		}
		if !categories[t.Category] {
			r.Issues = append(r.Issues, Issue{Kind: IssueUnknownCategory, TransactionID: t.ID, Detail: t.Category})
		}

		src := t.AccountID != nil && accounts[*t.AccountID]
		dst := t.Type == domain.TransactionTypeTransfer && t.TransferTargetAccountID != nil && accounts[*t.TransferTargetAccountID]

		if src {
			expected = expected.Add(Effect(t, *t.AccountID))
		}
		if dst {
			expected = expected.Add(t.Amount)
		}
		if t.Type == domain.TransactionTypeTransfer && src {
			r.Destroyed = r.Destroyed.Add(t.FeeAmount)
			if !dst {
				r.Destroyed = r.Destroyed.Add(t.Amount)
			}
		}
		if t.Type == domain.TransactionTypeTransfer && !src && dst {
			r.Destroyed = r.Destroyed.Sub(t.Amount)
		}
	}

	r.BalanceTotal = TotalBalance(snap.Accounts, snap.Transactions)
	if !r.BalanceTotal.Equal(expected) {
		r.Issues = append(r.Issues, Issue{
			Kind:   IssueBalanceMismatch,
			Detail: fmt.Sprintf("balances sum to %s, effects explain %s", r.BalanceTotal, expected),
		})
	}

	// Value flowing into or out of the system through EXPENSE and INCOME is
	// accounted separately; what remains must be the transfer leakage.
	external := decimal.Zero
	for _, t := range snap.Transactions {
		if t.AccountID == nil || !accounts[*t.AccountID] {
			continue
		}
		switch t.Type {
		case domain.TransactionTypeExpense:
			external = external.Sub(t.Total())
		case domain.TransactionTypeIncome:
			external = external.Add(t.Amount.Sub(t.FeeAmount))
		}
	}
	leak := r.InitialTotal.Add(external).Sub(r.BalanceTotal)
	if !leak.Equal(r.Destroyed) {
		r.Issues = append(r.Issues, Issue{
			Kind:   IssueDestroyedMismatch,
			Detail: fmt.Sprintf("transfers destroyed %s, expected %s", leak, r.Destroyed),
		})
	}

	r.OK = len(r.Issues) == 0
	return r
}
