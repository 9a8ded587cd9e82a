package ledger

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/iho/moneybook/internal/domain"
)

var testNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(s string) domain.Date {
	return domain.MustParseDate(s)
}

func ref(s string) *string {
	return domain.StringPtr(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "want %s, got %s %v", want, got, msgAndArgs)
}

func expense(id, account, amount, fee, date string) *domain.Transaction {
	return &domain.Transaction{
		ID:        id,
		Amount:    d(amount),
		FeeAmount: d(fee),
		Category:  "Food",
		Type:      domain.TransactionTypeExpense,
		Date:      day(date),
		Timestamp: testNow,
		AccountID: ref(account),
	}
}

func income(id, account, amount, fee, date string) *domain.Transaction {
	t := expense(id, account, amount, fee, date)
	t.Type = domain.TransactionTypeIncome
	t.Category = "Salary"
	return t
}

func transfer(id, from, to, amount, fee, date string) *domain.Transaction {
	t := expense(id, from, amount, fee, date)
	t.Type = domain.TransactionTypeTransfer
	t.Category = domain.CategoryTransfer
	t.TransferTargetAccountID = ref(to)
	return t
}

func account(id, initial string) *domain.Account {
	return &domain.Account{ID: id, Name: "Account " + id, InitialBalance: d(initial)}
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}
