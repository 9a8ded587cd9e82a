package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/moneybook/internal/domain"
)

// FilterOptions carries the display settings that affect aggregation.
type FilterOptions struct {
	// HideLoanTransactions suppresses every loan-linked transaction.
	HideLoanTransactions bool `json:"hideLoanTransactions"`
}

// Counts reports whether t takes part in spend and income figures. Virtual loan
// entries never do; other loan entries are dropped when the setting hides them.
func Counts(t *domain.Transaction, opts FilterOptions) bool {
	if t.IsVirtualLoan() {
		return false
	}
	if opts.HideLoanTransactions && t.IsLoanLinked() {
		return false
	}
	return true
}

// InPeriod returns the counted transactions inside the period, in input order.
func InPeriod(txs []*domain.Transaction, period Period, opts FilterOptions) []*domain.Transaction {
	var out []*domain.Transaction
	for _, t := range txs {
		if period.Contains(t.Date) && Counts(t, opts) {
			out = append(out, t)
		}
	}
	return out
}

// CategoryAmount is one slice of a breakdown.
type CategoryAmount struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Summary is the period view behind the dashboard.
type Summary struct {
	Period           Period           `json:"period"`
	TotalSpend       decimal.Decimal  `json:"totalSpend"`
	TotalIncome      decimal.Decimal  `json:"totalIncome"`
	TotalFees        decimal.Decimal  `json:"totalFees"`
	Breakdown        []CategoryAmount `json:"breakdown"`
	TransactionCount int              `json:"transactionCount"`
}

// Summarize computes spend, income, fees and the category breakdown.
//
// Spend is every EXPENSE amount plus the fees of all types. Income is INCOME
// amount minus its fee.
func Summarize(txs []*domain.Transaction, period Period, opts FilterOptions) Summary {
	s := Summary{
		Period:      period,
		TotalSpend:  decimal.Zero,
		TotalIncome: decimal.Zero,
		TotalFees:   decimal.Zero,
	}

	counted := InPeriod(txs, period, opts)
	for _, t := range counted {
		s.TotalFees = s.TotalFees.Add(t.FeeAmount)
		switch t.Type {
		case domain.TransactionTypeExpense:
			s.TotalSpend = s.TotalSpend.Add(t.Amount)
		case domain.TransactionTypeIncome:
			s.TotalIncome = s.TotalIncome.Add(t.Amount.Sub(t.FeeAmount))
		}
	}
	s.TotalSpend = s.TotalSpend.Add(s.TotalFees)
	s.TransactionCount = len(counted)
	s.Breakdown = breakdown(counted)

	return s
}

// CategoryBreakdown groups in-period EXPENSE amounts by category and appends a
// synthetic fee bucket when fees are non-zero. Slices are sorted by value,
// descending; equal values keep first-seen order with the fee bucket last.
func CategoryBreakdown(txs []*domain.Transaction, period Period, opts FilterOptions) []CategoryAmount {
	return breakdown(InPeriod(txs, period, opts))
}

func breakdown(counted []*domain.Transaction) []CategoryAmount {
	index := make(map[string]int)
	var slices []CategoryAmount
	fees := decimal.Zero

	for _, t := range counted {
		fees = fees.Add(t.FeeAmount)
		if t.Type != domain.TransactionTypeExpense {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(slices)
			index[t.Category] = i
			slices = append(slices, CategoryAmount{Name: t.Category, Amount: decimal.Zero})
		}
		slices[i].Amount = slices[i].Amount.Add(t.Amount)
	}

	if fees.IsPositive() {
		slices = append(slices, CategoryAmount{Name: domain.TransactionFeeBucket, Amount: fees})
	}

	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].Amount.GreaterThan(slices[j].Amount)
	})

	return slices
}

// BudgetStatus compares one budget with actual spending.
type BudgetStatus struct {
	Category    string          `json:"category"`
	LimitAmount decimal.Decimal `json:"limitAmount"`
	Spent       decimal.Decimal `json:"spent"`
	Remaining   decimal.Decimal `json:"remaining"`
	PercentUsed decimal.Decimal `json:"percentUsed"`
	Exceeded    bool            `json:"exceeded"`
}

// CompareBudgets reports budget against in-period EXPENSE spend per category.
// Fees are not attributed to categories. Output follows budget order.
func CompareBudgets(budgets []*domain.Budget, txs []*domain.Transaction, period Period, opts FilterOptions) []BudgetStatus {
	spent := make(map[string]decimal.Decimal)
	for _, t := range InPeriod(txs, period, opts) {
		if t.Type == domain.TransactionTypeExpense {
			spent[t.Category] = spent[t.Category].Add(t.Amount)
		}
	}

	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		s := spent[b.Category]
		status := BudgetStatus{
			Category:    b.Category,
			LimitAmount: b.LimitAmount,
			Spent:       s,
			Remaining:   b.LimitAmount.Sub(s),
			PercentUsed: decimal.Zero,
			Exceeded:    s.GreaterThan(b.LimitAmount),
		}
		if b.LimitAmount.IsPositive() {
			status.PercentUsed = s.Div(b.LimitAmount).Mul(decimal.NewFromInt(100)).Round(1)
		}
		statuses = append(statuses, status)
	}

	return statuses
}

// SeriesPoint is one day of a chart.
type SeriesPoint struct {
	Date   domain.Date     `json:"date"`
	Spend  decimal.Decimal `json:"spend"`
	Income decimal.Decimal `json:"income"`
}

// DailySeries returns one point per day of the period, including empty days.
func DailySeries(txs []*domain.Transaction, period Period, opts FilterOptions) []SeriesPoint {
	points := make([]SeriesPoint, period.Days())
	for i := range points {
		points[i] = SeriesPoint{Date: period.Start.AddDays(i), Spend: decimal.Zero, Income: decimal.Zero}
	}

	for _, t := range InPeriod(txs, period, opts) {
		i := t.Date.DaysSince(period.Start)
		p := &points[i]
		p.Spend = p.Spend.Add(t.FeeAmount)
		switch t.Type {
		case domain.TransactionTypeExpense:
			p.Spend = p.Spend.Add(t.Amount)
		case domain.TransactionTypeIncome:
			p.Income = p.Income.Add(t.Amount.Sub(t.FeeAmount))
		}
	}

	return points
}

// MonthTotal is spend and income for one calendar month.
type MonthTotal struct {
	Year   int             `json:"year"`
	Month  time.Month      `json:"month"`
	Spend  decimal.Decimal `json:"spend"`
	Income decimal.Decimal `json:"income"`
}

// MonthlyTotals summarizes every month from the month of from to the month of to.
func MonthlyTotals(txs []*domain.Transaction, from, to domain.Date, opts FilterOptions) []MonthTotal {
	var totals []MonthTotal
	for m := from.StartOfMonth(); !m.After(to); m = m.AddMonthsClamped(1, 1) {
		s := Summarize(txs, MonthPeriod(m.Year(), m.Month()), opts)
		totals = append(totals, MonthTotal{
			Year:   m.Year(),
			Month:  m.Month(),
			Spend:  s.TotalSpend,
			Income: s.TotalIncome,
		})
	}
	return totals
}
