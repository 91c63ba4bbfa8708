package usecase

import "time"

const (
	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// OutboxRetention is how long published outbox events are kept before pruning.
	OutboxRetention = time.Hour
)
