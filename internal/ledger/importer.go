package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/moneybook/internal/domain"
)

// Older exports omit most optional fields, so every field is decoded through a
// pointer and defaulted explicitly.
type rawTransaction struct {
	ID                      *string          `json:"id"`
	Amount                  *decimal.Decimal `json:"amount"`
	FeeAmount               *decimal.Decimal `json:"feeAmount"`
	Category                *string          `json:"category"`
	Type                    *string          `json:"transactionType"`
	Date                    *domain.Date     `json:"date"`
	Timestamp               *time.Time       `json:"timestamp"`
	AccountID               *string          `json:"accountId"`
	TransferTargetAccountID *string          `json:"transferTargetAccountId"`
	LoanID                  *string          `json:"loanId"`
	IsRecurring             *bool            `json:"isRecurring"`
	FeeConfigName           *string          `json:"feeConfigName"`
	Description             *string          `json:"description"`
	Note                    *string          `json:"note"`
}

type rawRule struct {
	ID                      *string          `json:"id"`
	Amount                  *decimal.Decimal `json:"amount"`
	Category                *string          `json:"category"`
	Description             *string          `json:"description"`
	Frequency               *string          `json:"frequency"`
	NextDueDate             *domain.Date     `json:"nextDueDate"`
	Type                    *string          `json:"transactionType"`
	AccountID               *string          `json:"accountId"`
	TransferTargetAccountID *string          `json:"transferTargetAccountId"`
	FeeAmount               *decimal.Decimal `json:"feeAmount"`
	FeeConfigName           *string          `json:"feeConfigName"`
	AnchorDay               *int             `json:"anchorDay"`
}

type rawAccount struct {
	ID             *string            `json:"id"`
	Name           *string            `json:"name"`
	InitialBalance *decimal.Decimal   `json:"initialBalance"`
	FeeConfigs     []domain.FeeConfig `json:"feeConfigs"`
	SortOrder      *int               `json:"sortOrder"`
}

var documentKeys = []string{"expenses", "budgets", "accounts", "recurringConfigs", "loans", "categories"}

// Importer normalizes an external document into records ready for a bulk
// upsert.
type Importer struct {
	// Known holds the category names that already exist in the store.
	Known map[string]bool
	NewID func() string
	Now   func() time.Time
}

// Parse decodes and normalizes data. Any structural problem fails the whole
// document with domain.ErrInvalidFormat; nothing is returned partially.
func (im *Importer) Parse(data []byte) (*Document, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidFormat, err)
	}

	found := false
	for _, k := range documentKeys {
		if _, ok := top[k]; ok {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: no recognised sections", domain.ErrInvalidFormat)
	}

	var (
		rawTxs      []rawTransaction
		rawRules    []rawRule
		rawAccounts []rawAccount
		doc         Document
	)
	sections := []struct {
		key  string
		dest any
	}{
		{"expenses", &rawTxs},
		{"budgets", &doc.Budgets},
		{"accounts", &rawAccounts},
		{"recurringConfigs", &rawRules},
		{"loans", &doc.Loans},
		{"categories", &doc.Categories},
	}
	for _, s := range sections {
		raw, ok := top[s.key]
		if !ok || string(raw) == "null" {
			continue
		}
		if err := json.Unmarshal(raw, s.dest); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidFormat, s.key, err)
		}
	}

	known := make(map[string]bool, len(im.Known))
	for name := range im.Known {
		known[name] = true
	}
	for _, c := range domain.SystemCategories {
		known[c.Name] = true
	}
	for i, c := range doc.Categories {
		if c == nil || domain.ValidateCategoryName(c.Name) != nil {
			return nil, fmt.Errorf("%w: categories[%d]: invalid name", domain.ErrInvalidFormat, i)
		}
		known[c.Name] = true
	}
	category := func(p *string) string {
		if p == nil || !known[*p] {
			return domain.CategoryOthers
		}
		return *p
	}

	for i, raw := range rawAccounts {
		a, err := im.account(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: accounts[%d]: %v", domain.ErrInvalidFormat, i, err)
		}
		doc.Accounts = append(doc.Accounts, a)
	}

	for i, raw := range rawTxs {
		t, err := im.transaction(raw, category)
		if err != nil {
			return nil, fmt.Errorf("%w: expenses[%d]: %v", domain.ErrInvalidFormat, i, err)
		}
		doc.Expenses = append(doc.Expenses, t)
	}

	for i, raw := range rawRules {
		r, err := im.rule(raw, category)
		if err != nil {
			return nil, fmt.Errorf("%w: recurringConfigs[%d]: %v", domain.ErrInvalidFormat, i, err)
		}
		doc.RecurringConfigs = append(doc.RecurringConfigs, r)
	}

	for i, b := range doc.Budgets {
		if b == nil {
			return nil, fmt.Errorf("%w: budgets[%d]: null", domain.ErrInvalidFormat, i)
		}
		b.Category = category(&b.Category)
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("%w: budgets[%d]: %v", domain.ErrInvalidFormat, i, err)
		}
	}

	for i, l := range doc.Loans {
		if l == nil {
			return nil, fmt.Errorf("%w: loans[%d]: null", domain.ErrInvalidFormat, i)
		}
		if l.ID == "" {
			l.ID = im.NewID()
		}
		if err := l.Validate(); err != nil {
			return nil, fmt.Errorf("%w: loans[%d]: %v", domain.ErrInvalidFormat, i, err)
		}
	}

	return &doc, nil
}

func (im *Importer) transaction(raw rawTransaction, category func(*string) string) (*domain.Transaction, error) {
	if raw.Amount == nil {
		return nil, errors.New("missing amount")
	}
	if raw.Date == nil || raw.Date.IsZero() {
		return nil, errors.New("missing date")
	}

	txType, err := parseType(raw.Type)
	if err != nil {
		return nil, err
	}

	t := &domain.Transaction{
		ID:                      stringOr(raw.ID, ""),
		Amount:                  *raw.Amount,
		FeeAmount:               decimalOr(raw.FeeAmount),
		Category:                category(raw.Category),
		Type:                    txType,
		Date:                    *raw.Date,
		AccountID:               optional(raw.AccountID),
		TransferTargetAccountID: optional(raw.TransferTargetAccountID),
		LoanID:                  optional(raw.LoanID),
		FeeConfigName:           optional(raw.FeeConfigName),
		Description:             stringOr(raw.Description, ""),
		Note:                    stringOr(raw.Note, ""),
	}
	if t.ID == "" {
		t.ID = im.NewID()
	}
	if raw.Timestamp != nil {
		t.Timestamp = *raw.Timestamp
	} else {
		t.Timestamp = im.Now()
	}
	if raw.IsRecurring != nil {
		t.IsRecurring = *raw.IsRecurring
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (im *Importer) rule(raw rawRule, category func(*string) string) (*domain.RecurringRule, error) {
	if raw.Amount == nil {
		return nil, errors.New("missing amount")
	}
	if raw.NextDueDate == nil || raw.NextDueDate.IsZero() {
		return nil, errors.New("missing nextDueDate")
	}

	txType, err := parseType(raw.Type)
	if err != nil {
		return nil, err
	}

	r := &domain.RecurringRule{
		ID:                      stringOr(raw.ID, ""),
		Amount:                  *raw.Amount,
		Category:                category(raw.Category),
		Description:             stringOr(raw.Description, ""),
		Frequency:               domain.Frequency(strings.ToUpper(stringOr(raw.Frequency, ""))),
		NextDueDate:             *raw.NextDueDate,
		Type:                    txType,
		AccountID:               optional(raw.AccountID),
		TransferTargetAccountID: optional(raw.TransferTargetAccountID),
		FeeAmount:               decimalOr(raw.FeeAmount),
		FeeConfigName:           optional(raw.FeeConfigName),
	}
	if r.ID == "" {
		r.ID = im.NewID()
	}
	if raw.AnchorDay != nil {
		r.AnchorDay = *raw.AnchorDay
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (im *Importer) account(raw rawAccount) (*domain.Account, error) {
	a := &domain.Account{
		ID:             stringOr(raw.ID, ""),
		Name:           stringOr(raw.Name, ""),
		InitialBalance: decimalOr(raw.InitialBalance),
		FeeConfigs:     raw.FeeConfigs,
	}
	if a.ID == "" {
		a.ID = im.NewID()
	}
	if raw.SortOrder != nil {
		a.SortOrder = *raw.SortOrder
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func parseType(p *string) (domain.TransactionType, error) {
	if p == nil || *p == "" {
		return domain.TransactionTypeExpense, nil
	}
	t := domain.TransactionType(strings.ToUpper(*p))
	if !t.IsValid() {
		return "", fmt.Errorf("unknown transaction type %q", *p)
	}
	return t, nil
}

func stringOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

func decimalOr(p *decimal.Decimal) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	return *p
}

func optional(p *string) *string {
	if p == nil {
		return nil
	}
	return domain.StringPtr(*p)
}

// Merge applies doc to snap as a bulk upsert: records with an existing id (or
// category name, or budget category) replace the stored one, everything else is
// appended. Merging the same document twice yields the same snapshot.
func Merge(snap *Snapshot, doc *Document) *Snapshot {
	return &Snapshot{
		Transactions: upsert(snap.Transactions, doc.Expenses, func(t *domain.Transaction) string { return t.ID }),
		Accounts:     upsert(snap.Accounts, doc.Accounts, func(a *domain.Account) string { return a.ID }),
		Loans:        upsert(snap.Loans, doc.Loans, func(l *domain.Loan) string { return l.ID }),
		Categories:   upsert(snap.Categories, doc.Categories, func(c *domain.Category) string { return c.Name }),
		Budgets:      upsert(snap.Budgets, doc.Budgets, func(b *domain.Budget) string { return b.Category }),
		Rules:        upsert(snap.Rules, doc.RecurringConfigs, func(r *domain.RecurringRule) string { return r.ID }),
	}
}

func upsert[T any](existing, incoming []T, key func(T) string) []T {
	out := make([]T, len(existing), len(existing)+len(incoming))
	copy(out, existing)

	index := make(map[string]int, len(out))
	for i, v := range out {
		index[key(v)] = i
	}
	for _, v := range incoming {
		k := key(v)
		if i, ok := index[k]; ok {
			out[i] = v
			continue
		}
		index[k] = len(out)
		out = append(out, v)
	}
	return out
}
