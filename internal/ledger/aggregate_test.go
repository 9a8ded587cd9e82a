package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/moneybook/internal/domain"
)

func TestCategoryBreakdown_FeeBucket(t *testing.T) {
	txs := []*domain.Transaction{
		expense("1", "A", "20", "0", "2024-03-02"),
		expense("2", "A", "30", "0", "2024-03-05"),
		income("3", "A", "1000", "2", "2024-03-06"),
	}

	got := CategoryBreakdown(txs, MonthPeriod(2024, time.March), FilterOptions{})

	require.Len(t, got, 2)
	assert.Equal(t, "Food", got[0].Name)
	assertDecimal(t, "50", got[0].Amount)
	assert.Equal(t, domain.TransactionFeeBucket, got[1].Name)
	assertDecimal(t, "2", got[1].Amount)
}

func TestCategoryBreakdown_OmitsZeroFeeBucket(t *testing.T) {
	txs := []*domain.Transaction{
		expense("1", "A", "20", "0", "2024-03-02"),
		income("2", "A", "100", "0", "2024-03-03"),
	}

	got := CategoryBreakdown(txs, MonthPeriod(2024, time.March), FilterOptions{})

	require.Len(t, got, 1)
	assert.Equal(t, "Food", got[0].Name)
}

func TestCategoryBreakdown_StableOnTies(t *testing.T) {
	mk := func(id, cat, amount string) *domain.Transaction {
		tx := expense(id, "A", amount, "0", "2024-03-02")
		tx.Category = cat
		return tx
	}
	txs := []*domain.Transaction{
		mk("1", "Bills", "10"),
		mk("2", "Health", "40"),
		mk("3", "Transport", "10"),
		mk("4", "Gift", "10"),
	}
	txs[0].FeeAmount = d("10")

	got := CategoryBreakdown(txs, MonthPeriod(2024, time.March), FilterOptions{})

	names := make([]string, len(got))
	for i, s := range got {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"Health", "Bills", "Transport", "Gift", domain.TransactionFeeBucket}, names)
}

func TestSummarize(t *testing.T) {
	virtual := expense("4", "", "500", "0", "2024-03-10")
	virtual.LoanID = ref("L1")
	tracked := expense("5", "A", "60", "0", "2024-03-11")
	tracked.LoanID = ref("L2")

	txs := []*domain.Transaction{
		expense("1", "A", "20", "1", "2024-03-02"),
		income("2", "A", "1000", "2", "2024-03-06"),
		transfer("3", "A", "B", "100", "3", "2024-03-07"),
		virtual,
		tracked,
		expense("6", "A", "99", "0", "2024-04-01"),
	}
	march := MonthPeriod(2024, time.March)

	tests := []struct {
		name       string
		opts       FilterOptions
		spend      string
		income     string
		fees       string
		transCount int
	}{
		{"loans shown", FilterOptions{}, "86", "998", "6", 4},
		{"loans hidden", FilterOptions{HideLoanTransactions: true}, "26", "998", "6", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(txs, march, tt.opts)
			assertDecimal(t, tt.spend, s.TotalSpend)
			assertDecimal(t, tt.income, s.TotalIncome)
			assertDecimal(t, tt.fees, s.TotalFees)
			assert.Equal(t, tt.transCount, s.TransactionCount)
		})
	}
}

func TestCompareBudgets(t *testing.T) {
	txs := []*domain.Transaction{
		expense("1", "A", "80", "5", "2024-03-02"),
		expense("2", "A", "40", "0", "2024-03-03"),
	}
	budgets := []*domain.Budget{
		{Category: "Food", LimitAmount: d("100")},
		{Category: "Bills", LimitAmount: d("50")},
		{Category: "Gift", LimitAmount: d("0")},
	}

	got := CompareBudgets(budgets, txs, MonthPeriod(2024, time.March), FilterOptions{})

	require.Len(t, got, 3)
	assertDecimal(t, "120", got[0].Spent)
	assertDecimal(t, "-20", got[0].Remaining)
	assertDecimal(t, "120", got[0].PercentUsed)
	assert.True(t, got[0].Exceeded)

	assertDecimal(t, "0", got[1].Spent)
	assert.False(t, got[1].Exceeded)

	assertDecimal(t, "0", got[2].PercentUsed)
}

func TestDailySeries(t *testing.T) {
	period, err := NewPeriod(day("2024-03-01"), day("2024-03-03"))
	require.NoError(t, err)

	txs := []*domain.Transaction{
		expense("1", "A", "10", "1", "2024-03-01"),
		income("2", "A", "50", "0", "2024-03-03"),
		expense("3", "A", "10", "0", "2024-03-04"),
	}

	points := DailySeries(txs, period, FilterOptions{})

	require.Len(t, points, 3)
	assertDecimal(t, "11", points[0].Spend)
	assertDecimal(t, "0", points[1].Spend)
	assertDecimal(t, "50", points[2].Income)
	assert.Equal(t, "2024-03-02", points[1].Date.String())
}

func TestMonthlyTotals(t *testing.T) {
	txs := []*domain.Transaction{
		expense("1", "A", "10", "0", "2024-01-31"),
		expense("2", "A", "20", "0", "2024-03-01"),
	}

	totals := MonthlyTotals(txs, day("2024-01-15"), day("2024-03-02"), FilterOptions{})

	require.Len(t, totals, 3)
	assertDecimal(t, "10", totals[0].Spend)
	assertDecimal(t, "0", totals[1].Spend)
	assert.Equal(t, time.February, totals[1].Month)
	assertDecimal(t, "20", totals[2].Spend)
}

func TestNewPeriod_RejectsInverted(t *testing.T) {
	_, err := NewPeriod(day("2024-03-02"), day("2024-03-01"))
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestNewPeriod_CapsLength(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		wantErr  bool
		wantDays int
	}{
		{name: "leap year", start: "2024-01-01", end: "2024-12-31", wantDays: 366},
		{name: "longest allowed", start: "2015-01-01", end: "2025-01-07", wantDays: domain.MaxPeriodDays},
		{name: "one day over", start: "2015-01-01", end: "2025-01-08", wantErr: true},
		{name: "across the epoch", start: "1965-06-01", end: "1975-05-31", wantDays: 3652},
		{name: "whole calendar", start: "0002-01-01", end: "9999-12-31", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPeriod(day(tt.start), day(tt.end))
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDays, p.Days())
		})
	}
}

func TestDailySeries_LongestPeriod(t *testing.T) {
	period, err := NewPeriod(day("2015-01-01"), day("2025-01-07"))
	require.NoError(t, err)

	txs := []*domain.Transaction{
		expense("1", "A", "3", "0", "2015-01-01"),
		expense("2", "A", "4", "0", "2025-01-07"),
	}

	points := DailySeries(txs, period, FilterOptions{})

	require.Len(t, points, domain.MaxPeriodDays)
	assertDecimal(t, "3", points[0].Spend)
	assertDecimal(t, "4", points[len(points)-1].Spend)
	assert.Equal(t, "2025-01-07", points[len(points)-1].Date.String())
}
