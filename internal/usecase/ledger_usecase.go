package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/iho/moneybook/internal/ledger"
)

// LedgerUseCase handles ledger-wide checks.
type LedgerUseCase struct {
	repos  Repositories
	logger zerolog.Logger
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(repos Repositories, logger zerolog.Logger) *LedgerUseCase {
	return &LedgerUseCase{
		repos:  repos,
		logger: logger.With().Str("component", "ledger").Logger(),
	}
}

// CheckConsistency verifies that every balance is explained by initial
// balances and transaction effects, and that every reference resolves.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*ledger.Report, error) {
	snap, err := uc.repos.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	report := ledger.Check(snap)
	if !report.OK {
		uc.logger.Warn().
			Int("issues", len(report.Issues)).
			Str("destroyed", report.Destroyed.String()).
			Msg("ledger is inconsistent")
	}
	return &report, nil
}
