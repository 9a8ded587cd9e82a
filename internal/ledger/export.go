package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/iho/moneybook/internal/domain"
)

// Document is the export format. The first four arrays are the long-standing
// shape; loans and categories were added later and may be absent on import.
type Document struct {
	Expenses         []*domain.Transaction   `json:"expenses"`
	Budgets          []*domain.Budget        `json:"budgets"`
	Accounts         []*domain.Account       `json:"accounts"`
	RecurringConfigs []*domain.RecurringRule `json:"recurringConfigs"`
	Loans            []*domain.Loan          `json:"loans,omitempty"`
	Categories       []*domain.Category      `json:"categories,omitempty"`
}

// Export builds the document for a snapshot. Arrays are never nil so that the
// JSON form always carries every key.
func Export(snap *Snapshot) *Document {
	doc := &Document{
		Expenses:         SortedTransactions(snap.Transactions),
		Budgets:          append([]*domain.Budget{}, snap.Budgets...),
		Accounts:         append([]*domain.Account{}, snap.Accounts...),
		RecurringConfigs: append([]*domain.RecurringRule{}, snap.Rules...),
		Loans:            append([]*domain.Loan{}, snap.Loans...),
		Categories:       append([]*domain.Category{}, snap.Categories...),
	}
	return doc
}

// CSVHeader is the first row of a report export.
var CSVHeader = []string{"Date", "Category", "Type", "Amount", "Fee", "Description", "Recurring"}

// WriteCSV writes one row per in-period transaction in date order. Fields are
// quoted where needed, so descriptions may contain commas and quotes.
func WriteCSV(w io.Writer, txs []*domain.Transaction, period Period, opts FilterOptions) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, t := range SortedTransactions(InPeriod(txs, period, opts)) {
		row := []string{
			t.Date.String(),
			t.Category,
			string(t.Type),
			t.Amount.StringFixed(2),
			t.FeeAmount.StringFixed(2),
			t.Description,
			strconv.FormatBool(t.IsRecurring),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %s: %w", t.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
