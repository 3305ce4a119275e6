package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction.
	// This prevents long-running transactions from blocking rows.
	DefaultTransactionTimeout = 10 * time.Second

	// publishTimeout bounds a single best-effort event publish.
	publishTimeout = 5 * time.Second

	// DefaultPageLimit and MaxPageLimit bound history pagination.
	DefaultPageLimit = 20
	MaxPageLimit     = 100

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
