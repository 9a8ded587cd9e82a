package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TransactionTypeExpense  TransactionType = "EXPENSE"
	TransactionTypeIncome   TransactionType = "INCOME"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeExpense, TransactionTypeIncome, TransactionTypeTransfer:
		return true
	}
	return false
}

// Transaction is one recorded money movement.
type Transaction struct {
	ID                      string          `json:"id"`
	Amount                  decimal.Decimal `json:"amount"`
	FeeAmount               decimal.Decimal `json:"feeAmount"`
	Category                string          `json:"category"`
	Type                    TransactionType `json:"transactionType"`
	Date                    Date            `json:"date"`
	Timestamp               time.Time       `json:"timestamp"`
	AccountID               *string         `json:"accountId"`
	TransferTargetAccountID *string         `json:"transferTargetAccountId"`
	LoanID                  *string         `json:"loanId"`
	IsRecurring             bool            `json:"isRecurring"`
	FeeConfigName           *string         `json:"feeConfigName"`
	Description             string          `json:"description"`
	Note                    string          `json:"note"`
}

// Validate checks the transaction shape invariants.
func (t *Transaction) Validate() error {
	if !t.Type.IsValid() {
		return ErrInvalidTransactionType
	}

	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}

	if t.FeeAmount.IsNegative() {
		return ErrNegativeFee
	}

	if t.TransferTargetAccountID != nil {
		if t.Type != TransactionTypeTransfer {
			return ErrTargetOnNonTransfer
		}
		if t.AccountID != nil && *t.AccountID == *t.TransferTargetAccountID {
			return ErrSameAccount
		}
	}

	return nil
}

// Total is the amount debited from the source account: amount plus fee.
func (t *Transaction) Total() decimal.Decimal {
	return t.Amount.Add(t.FeeAmount)
}

// IsLoanLinked reports whether the transaction belongs to a loan's history.
func (t *Transaction) IsLoanLinked() bool {
	return t.LoanID != nil
}

// IsVirtualLoan reports whether the transaction is a loan entry that touches no
// account (cash or untracked lending).
func (t *Transaction) IsVirtualLoan() bool {
	return t.LoanID != nil && t.AccountID == nil
}

// Clone returns a deep copy so that callers can rewrite fields without
// aliasing the snapshot they were given.
func (t *Transaction) Clone() *Transaction {
	c := *t
	c.AccountID = cloneString(t.AccountID)
	c.TransferTargetAccountID = cloneString(t.TransferTargetAccountID)
	c.LoanID = cloneString(t.LoanID)
	c.FeeConfigName = cloneString(t.FeeConfigName)
	return &c
}

// Before orders transactions by date, then creation timestamp, then id.
func (t *Transaction) Before(o *Transaction) bool {
	if c := t.Date.Compare(o.Date); c != 0 {
		return c < 0
	}
	if !t.Timestamp.Equal(o.Timestamp) {
		return t.Timestamp.Before(o.Timestamp)
	}
	return t.ID < o.ID
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences p, returning "" for nil.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// SameRef reports whether an optional reference points at id.
func SameRef(p *string, id string) bool {
	return p != nil && *p == id
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	s := *p
	return &s
}
