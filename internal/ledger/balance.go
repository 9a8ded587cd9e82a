package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/iho/moneybook/internal/domain"
)

// Effect returns how t moves the balance of accountID.
//
// As source: EXPENSE and TRANSFER debit amount+fee, INCOME credits amount-fee.
// As transfer target: credit amount only. A transfer fee is charged once at the
// source and credited nowhere, so a transfer destroys exactly its fee.
func Effect(t *domain.Transaction, accountID string) decimal.Decimal {
	effect := decimal.Zero

	if domain.SameRef(t.AccountID, accountID) {
		switch t.Type {
		case domain.TransactionTypeExpense, domain.TransactionTypeTransfer:
			effect = effect.Sub(t.Total())
		case domain.TransactionTypeIncome:
			effect = effect.Add(t.Amount).Sub(t.FeeAmount)
		}
	}

	if t.Type == domain.TransactionTypeTransfer && domain.SameRef(t.TransferTargetAccountID, accountID) {
		effect = effect.Add(t.Amount)
	}

	return effect
}

// AccountBalance is the current balance: initial balance plus every effect.
func AccountBalance(account *domain.Account, txs []*domain.Transaction) decimal.Decimal {
	balance := account.InitialBalance
	for _, t := range txs {
		balance = balance.Add(Effect(t, account.ID))
	}
	return balance
}

// AccountBalanceAsOf is the balance counting only transactions dated on or before asOf.
func AccountBalanceAsOf(account *domain.Account, txs []*domain.Transaction, asOf domain.Date) decimal.Decimal {
	balance := account.InitialBalance
	for _, t := range txs {
		if t.Date.After(asOf) {
			continue
		}
		balance = balance.Add(Effect(t, account.ID))
	}
	return balance
}

// Balances computes every account's current balance in one pass.
func Balances(accounts []*domain.Account, txs []*domain.Transaction) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal, len(accounts))
	for _, a := range accounts {
		balances[a.ID] = a.InitialBalance
	}

	credit := func(id *string, amount decimal.Decimal) {
		if id == nil {
			return
		}
		if b, ok := balances[*id]; ok {
			balances[*id] = b.Add(amount)
		}
	}

	for _, t := range txs {
		switch t.Type {
		case domain.TransactionTypeExpense:
			credit(t.AccountID, t.Total().Neg())
		case domain.TransactionTypeIncome:
			credit(t.AccountID, t.Amount.Sub(t.FeeAmount))
		case domain.TransactionTypeTransfer:
			credit(t.AccountID, t.Total().Neg())
			credit(t.TransferTargetAccountID, t.Amount)
		}
	}

	return balances
}

// TotalBalance sums the balances of all accounts.
func TotalBalance(accounts []*domain.Account, txs []*domain.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, b := range Balances(accounts, txs) {
		total = total.Add(b)
	}
	return total
}

// Flow is money in and out of one account over a period.
type Flow struct {
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
}

// Net is inflow minus outflow, the balance change over the period.
func (f Flow) Net() decimal.Decimal {
	return f.Inflow.Sub(f.Outflow)
}

// AccountFlow splits the in-period effects on accountID into inflow and outflow.
// Fees are outflow, including fees withheld from income.
func AccountFlow(accountID string, txs []*domain.Transaction, period Period) Flow {
	flow := Flow{Inflow: decimal.Zero, Outflow: decimal.Zero}

	for _, t := range txs {
		if !period.Contains(t.Date) {
			continue
		}

		if domain.SameRef(t.AccountID, accountID) {
			switch t.Type {
			case domain.TransactionTypeExpense, domain.TransactionTypeTransfer:
				flow.Outflow = flow.Outflow.Add(t.Total())
			case domain.TransactionTypeIncome:
				flow.Inflow = flow.Inflow.Add(t.Amount)
				flow.Outflow = flow.Outflow.Add(t.FeeAmount)
			}
		}

		if t.Type == domain.TransactionTypeTransfer && domain.SameRef(t.TransferTargetAccountID, accountID) {
			flow.Inflow = flow.Inflow.Add(t.Amount)
		}
	}

	return flow
}

// LoanOutstanding derives what is still owed on a loan from its transactions.
// For LEND it is money lent minus repayments received; for BORROW it is money
// received minus repayments made. Fees do not count against the principal.
func LoanOutstanding(loan *domain.Loan, txs []*domain.Transaction) decimal.Decimal {
	out, back := decimal.Zero, decimal.Zero
	opening := loan.Type.InitialTransactionType()

	for _, t := range txs {
		if !domain.SameRef(t.LoanID, loan.ID) {
			continue
		}
		switch t.Type {
		case opening:
			out = out.Add(t.Amount)
		case loan.Type.RepaymentTransactionType():
			back = back.Add(t.Amount)
		}
	}

	return out.Sub(back)
}

// LoanTransactions returns the history of one loan in date order.
func LoanTransactions(loanID string, txs []*domain.Transaction) []*domain.Transaction {
	var out []*domain.Transaction
	for _, t := range txs {
		if domain.SameRef(t.LoanID, loanID) {
			out = append(out, t)
		}
	}
	return SortedTransactions(out)
}
