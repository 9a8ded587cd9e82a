package domain

import "github.com/shopspring/decimal"

// LoanType says which way the principal moved.
type LoanType string

const (
	// LoanTypeLend means money was lent out and is owed back.
	LoanTypeLend LoanType = "LEND"
	// LoanTypeBorrow means money was borrowed and must be repaid.
	LoanTypeBorrow LoanType = "BORROW"
)

// IsValid reports whether t is a known loan type.
func (t LoanType) IsValid() bool {
	return t == LoanTypeLend || t == LoanTypeBorrow
}

// InitialTransactionType is the type of the transaction that opens the loan.
func (t LoanType) InitialTransactionType() TransactionType {
	if t == LoanTypeBorrow {
		return TransactionTypeIncome
	}
	return TransactionTypeExpense
}

// RepaymentTransactionType is the type of a transaction that pays the loan back.
func (t LoanType) RepaymentTransactionType() TransactionType {
	if t == LoanTypeBorrow {
		return TransactionTypeExpense
	}
	return TransactionTypeIncome
}

// Loan is a lending or borrowing relationship. Its outstanding balance is never
// stored; it is derived from the transactions carrying its id.
type Loan struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        LoanType        `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// Validate checks the loan invariants.
func (l *Loan) Validate() error {
	if !l.Type.IsValid() {
		return ErrInvalidLoanType
	}
	if l.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if err := ValidateAccountName(l.Name); err != nil {
		return err
	}
	return nil
}
