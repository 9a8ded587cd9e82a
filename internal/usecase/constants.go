package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// IdempotencyPlaceholder marks a key whose first request is still running.
	IdempotencyPlaceholder = "processing"

	// DefaultReportCacheTTL bounds how long a cached report survives without an
	// explicit invalidation.
	DefaultReportCacheTTL = 5 * time.Minute

	// DefaultRecurringLockTTL bounds a materialization pass held by a crashed process.
	DefaultRecurringLockTTL = time.Minute

	recurringLockKey  = "recurring:materialize"
	reportVersionKey  = "report:version"
	reportKeyPrefix   = "report:"
	materializeFlight = "materialize"
)
