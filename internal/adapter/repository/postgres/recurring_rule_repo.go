package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/infrastructure/postgres/generated"
	"github.com/iho/moneybook/internal/usecase"
)

// RecurringRuleRepository implements usecase.RecurringRuleRepository.
type RecurringRuleRepository struct {
	queries *generated.Queries
}

// NewRecurringRuleRepository creates a new RecurringRuleRepository.
func NewRecurringRuleRepository(pool *pgxpool.Pool) *RecurringRuleRepository {
	return newRecurringRuleRepository(pool)
}

func newRecurringRuleRepository(db generated.DBTX) *RecurringRuleRepository {
	return &RecurringRuleRepository{queries: generated.New(db)}
}

// List returns rules ordered by next due date.
func (r *RecurringRuleRepository) List(ctx context.Context) ([]*domain.RecurringRule, error) {
	rows, err := r.queries.ListRecurringRules(ctx)
	if err != nil {
		return nil, err
	}

	rules := make([]*domain.RecurringRule, 0, len(rows))
	for _, row := range rows {
		rules = append(rules, rowToRule(row))
	}

	return rules, nil
}

// GetByID retrieves a rule by ID.
func (r *RecurringRuleRepository) GetByID(ctx context.Context, id string) (*domain.RecurringRule, error) {
	row, err := r.queries.GetRecurringRuleByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRuleNotFound
		}

		return nil, err
	}

	return rowToRule(row), nil
}

// Upsert inserts or replaces a rule.
func (r *RecurringRuleRepository) Upsert(ctx context.Context, tx usecase.Transaction, rule *domain.RecurringRule) error {
	return txQueries(tx).UpsertRecurringRule(ctx, ruleParams(rule))
}

// UpsertMany inserts or replaces rules within tx.
func (r *RecurringRuleRepository) UpsertMany(ctx context.Context, tx usecase.Transaction, rules []*domain.RecurringRule) error {
	queries := txQueries(tx)
	for _, rule := range rules {
		if err := queries.UpsertRecurringRule(ctx, ruleParams(rule)); err != nil {
			return err
		}
	}

	return nil
}

// Delete removes a rule.
func (r *RecurringRuleRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	return txQueries(tx).DeleteRecurringRule(ctx, id)
}

func ruleParams(rule *domain.RecurringRule) generated.UpsertRecurringRuleParams {
	return generated.UpsertRecurringRuleParams{
		ID:                      rule.ID,
		Amount:                  decimalToNumeric(rule.Amount),
		Category:                rule.Category,
		Description:             rule.Description,
		Frequency:               string(rule.Frequency),
		NextDueDate:             dateToPgDate(rule.NextDueDate),
		TransactionType:         string(rule.Type),
		AccountID:               stringToPgText(rule.AccountID),
		TransferTargetAccountID: stringToPgText(rule.TransferTargetAccountID),
		FeeAmount:               decimalToNumeric(rule.FeeAmount),
		FeeConfigName:           stringToPgText(rule.FeeConfigName),
		AnchorDay:               int32(rule.AnchorDay),
	}
}

func rowToRule(row generated.RecurringRule) *domain.RecurringRule {
	return &domain.RecurringRule{
		ID:                      row.ID,
		Amount:                  numericToDecimal(row.Amount),
		Category:                row.Category,
		Description:             row.Description,
		Frequency:               domain.Frequency(row.Frequency),
		NextDueDate:             pgDateToDate(row.NextDueDate),
		Type:                    domain.TransactionType(row.TransactionType),
		AccountID:               pgTextToString(row.AccountID),
		TransferTargetAccountID: pgTextToString(row.TransferTargetAccountID),
		FeeAmount:               numericToDecimal(row.FeeAmount),
		FeeConfigName:           pgTextToString(row.FeeConfigName),
		AnchorDay:               int(row.AnchorDay),
	}
}
