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

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return newTransactionRepository(pool)
}

func newTransactionRepository(db generated.DBTX) *TransactionRepository {
	return &TransactionRepository{queries: generated.New(db)}
}

// List returns every transaction in chronological order.
func (r *TransactionRepository) List(ctx context.Context) ([]*domain.Transaction, error) {
	rows, err := r.queries.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	txs := make([]*domain.Transaction, 0, len(rows))
	for _, row := range rows {
		txs = append(txs, rowToTransaction(row))
	}

	return txs, nil
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	row, err := r.queries.GetTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return rowToTransaction(row), nil
}

// Upsert inserts or replaces a transaction.
func (r *TransactionRepository) Upsert(ctx context.Context, tx usecase.Transaction, t *domain.Transaction) error {
	return txQueries(tx).UpsertTransaction(ctx, transactionParams(t))
}

// UpsertMany inserts or replaces transactions within tx.
func (r *TransactionRepository) UpsertMany(ctx context.Context, tx usecase.Transaction, ts []*domain.Transaction) error {
	queries := txQueries(tx)
	for _, t := range ts {
		if err := queries.UpsertTransaction(ctx, transactionParams(t)); err != nil {
			return err
		}
	}

	return nil
}

// Delete removes a transaction.
func (r *TransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	return txQueries(tx).DeleteTransaction(ctx, id)
}

// DeleteMany removes transactions in one statement.
func (r *TransactionRepository) DeleteMany(ctx context.Context, tx usecase.Transaction, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	return txQueries(tx).DeleteTransactions(ctx, ids)
}

func transactionParams(t *domain.Transaction) generated.UpsertTransactionParams {
	return generated.UpsertTransactionParams{
		ID:                      t.ID,
		Amount:                  decimalToNumeric(t.Amount),
		FeeAmount:               decimalToNumeric(t.FeeAmount),
		Category:                t.Category,
		TransactionType:         string(t.Type),
		Date:                    dateToPgDate(t.Date),
		RecordedAt:              timeToPgTimestamptz(t.Timestamp),
		AccountID:               stringToPgText(t.AccountID),
		TransferTargetAccountID: stringToPgText(t.TransferTargetAccountID),
		LoanID:                  stringToPgText(t.LoanID),
		IsRecurring:             t.IsRecurring,
		FeeConfigName:           stringToPgText(t.FeeConfigName),
		Description:             t.Description,
		Note:                    t.Note,
	}
}

func rowToTransaction(row generated.Transaction) *domain.Transaction {
	return &domain.Transaction{
		ID:                      row.ID,
		Amount:                  numericToDecimal(row.Amount),
		FeeAmount:               numericToDecimal(row.FeeAmount),
		Category:                row.Category,
		Type:                    domain.TransactionType(row.TransactionType),
		Date:                    pgDateToDate(row.Date),
		Timestamp:               row.RecordedAt.Time.UTC(),
		AccountID:               pgTextToString(row.AccountID),
		TransferTargetAccountID: pgTextToString(row.TransferTargetAccountID),
		LoanID:                  pgTextToString(row.LoanID),
		IsRecurring:             row.IsRecurring,
		FeeConfigName:           pgTextToString(row.FeeConfigName),
		Description:             row.Description,
		Note:                    row.Note,
	}
}
