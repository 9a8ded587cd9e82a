package ledger

import (
	"time"

	"github.com/iho/moneybook/internal/domain"
)

// Period is an inclusive range of calendar dates.
type Period struct {
	Start domain.Date `json:"start"`
	End   domain.Date `json:"end"`
}

// NewPeriod validates and builds a custom range.
func NewPeriod(start, end domain.Date) (Period, error) {
	if err := domain.ValidatePeriod(start, end); err != nil {
		return Period{}, err
	}
	return Period{Start: start, End: end}, nil
}

// MonthPeriod covers one calendar month.
func MonthPeriod(year int, month time.Month) Period {
	start := domain.NewDate(year, month, 1)
	return Period{Start: start, End: start.EndOfMonth()}
}

// Contains reports whether d falls inside the period.
func (p Period) Contains(d domain.Date) bool {
	return !d.Before(p.Start) && !d.After(p.End)
}

// Days returns the number of days covered.
func (p Period) Days() int {
	return p.End.DaysSince(p.Start) + 1
}
