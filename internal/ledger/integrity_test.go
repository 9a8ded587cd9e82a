package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/moneybook/internal/domain"
)

func TestCascade_AccountDeleted(t *testing.T) {
	inc := income("inc", "A", "100", "0", "2024-03-01")
	exp := expense("exp", "A", "20", "0", "2024-03-02")
	out := transfer("out", "A", "B", "30", "1", "2024-03-03")
	in := transfer("in", "B", "A", "40", "0", "2024-03-04")
	other := expense("other", "B", "5", "0", "2024-03-05")

	txs := []*domain.Transaction{inc, exp, out, in, other}
	plan := Cascade(TriggerAccountDeleted, "A", txs)

	assert.Equal(t, []string{"inc"}, plan.Deleted)
	require.Len(t, plan.Updated, 3)

	byID := make(map[string]*domain.Transaction)
	for _, u := range plan.Updated {
		byID[u.ID] = u
	}

	assert.Nil(t, byID["exp"].AccountID)
	assert.Equal(t, domain.TransactionTypeExpense, byID["exp"].Type)

	assert.Nil(t, byID["out"].AccountID)
	assert.Equal(t, domain.TransactionTypeTransfer, byID["out"].Type, "source unlink keeps the type")
	assert.Equal(t, "B", domain.StringValue(byID["out"].TransferTargetAccountID))

	assert.Nil(t, byID["in"].TransferTargetAccountID)
	assert.Equal(t, domain.TransactionTypeExpense, byID["in"].Type)
	assert.Equal(t, "B", domain.StringValue(byID["in"].AccountID))

	assert.Equal(t, "A", domain.StringValue(exp.AccountID), "input must not change")
	assert.Equal(t, domain.TransactionTypeTransfer, in.Type)
}

func TestCascade_AccountDeletedSingleLinks(t *testing.T) {
	t.Run("income is removed", func(t *testing.T) {
		plan := Cascade(TriggerAccountDeleted, "A", []*domain.Transaction{income("1", "A", "10", "0", "2024-03-01")})
		assert.Equal(t, []string{"1"}, plan.Deleted)
		assert.Empty(t, plan.Updated)
	})

	t.Run("expense is kept unlinked", func(t *testing.T) {
		plan := Cascade(TriggerAccountDeleted, "A", []*domain.Transaction{expense("1", "A", "10", "0", "2024-03-01")})
		assert.Empty(t, plan.Deleted)
		require.Len(t, plan.Updated, 1)
		assert.Nil(t, plan.Updated[0].AccountID)
	})
}

func TestCascade_Loan(t *testing.T) {
	linked := expense("1", "A", "100", "0", "2024-03-01")
	linked.LoanID = ref("L1")
	linked.Description = "lent to Sam"
	repay := income("2", "A", "50", "0", "2024-03-05")
	repay.LoanID = ref("L1")
	otherLoan := expense("3", "A", "10", "0", "2024-03-01")
	otherLoan.LoanID = ref("L2")

	txs := []*domain.Transaction{linked, repay, otherLoan}

	t.Run("unlink", func(t *testing.T) {
		plan := Cascade(TriggerLoanDeleted, "L1", txs)

		assert.Empty(t, plan.Deleted)
		require.Len(t, plan.Updated, 2)
		assert.Nil(t, plan.Updated[0].LoanID)
		assert.Equal(t, "lent to Sam"+DeletedLoanSuffix, plan.Updated[0].Description)
		assertDecimal(t, "100", plan.Updated[0].Amount)
		assert.Equal(t, "A", domain.StringValue(plan.Updated[0].AccountID))
	})

	t.Run("purge", func(t *testing.T) {
		plan := Cascade(TriggerLoanPurged, "L1", txs)

		assert.Equal(t, []string{"1", "2"}, plan.Deleted)
		assert.Empty(t, plan.Updated)
	})
}

func TestCascade_NoMatches(t *testing.T) {
	plan := Cascade(TriggerAccountDeleted, "missing", []*domain.Transaction{expense("1", "A", "1", "0", "2024-03-01")})
	assert.True(t, plan.IsEmpty())
}

func TestCascadeRulesForAccount(t *testing.T) {
	fromA := weeklyRule("fromA", "2024-04-01")
	toA := weeklyRule("toA", "2024-04-01")
	toA.Type = domain.TransactionTypeTransfer
	toA.AccountID = ref("B")
	toA.TransferTargetAccountID = ref("A")
	unrelated := weeklyRule("x", "2024-04-01")
	unrelated.AccountID = ref("C")

	updated := CascadeRulesForAccount("A", []*domain.RecurringRule{fromA, toA, unrelated})

	require.Len(t, updated, 2)
	assert.Nil(t, updated[0].AccountID)
	assert.Equal(t, domain.TransactionTypeExpense, updated[1].Type)
	assert.Nil(t, updated[1].TransferTargetAccountID)
	assert.Equal(t, "B", domain.StringValue(updated[1].AccountID))
}
