package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/iho/moneybook/internal/domain"
	"github.com/iho/moneybook/internal/infrastructure/postgres/generated"
	"github.com/iho/moneybook/internal/usecase"
)

// txQueries binds the generated queries to the caller's transaction.
func txQueries(tx usecase.Transaction) *generated.Queries {
	return generated.New(tx.(*Tx).PgxTx())
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		t = time.Now()
	}
	return pgtype.Timestamptz{Time: t.UTC(), Valid: true}
}

func dateToPgDate(d domain.Date) pgtype.Date {
	return pgtype.Date{Time: d.Time(), Valid: !d.IsZero()}
}

func pgDateToDate(d pgtype.Date) domain.Date {
	if !d.Valid {
		return domain.Date{}
	}
	return domain.DateOf(d.Time)
}

func stringToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func pgTextToString(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

func feeConfigsToJSON(fcs []domain.FeeConfig) ([]byte, error) {
	if fcs == nil {
		fcs = []domain.FeeConfig{}
	}
	data, err := json.Marshal(fcs)
	if err != nil {
		return nil, fmt.Errorf("encode fee configs: %w", err)
	}
	return data, nil
}

func jsonToFeeConfigs(data []byte) ([]domain.FeeConfig, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var fcs []domain.FeeConfig
	if err := json.Unmarshal(data, &fcs); err != nil {
		return nil, fmt.Errorf("decode fee configs: %w", err)
	}
	return fcs, nil
}
