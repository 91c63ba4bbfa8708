package usecase

import (
	"context"
	"time"

	"github.com/iho/goldenlock/internal/domain"
)

// CustomerRepository defines data access for customers.
type CustomerRepository interface {
	// Create inserts customer unless its contact number is taken, in which case
	// it returns domain.DuplicateCustomerError. Check and insert are atomic.
	Create(ctx context.Context, customer *domain.Customer) error
	// Delete undoes a Create whose follow-up failed. Unknown contacts are a no-op.
	Delete(ctx context.Context, contact string) error
	GetByContact(ctx context.Context, contact string) (*domain.Customer, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Customer, error)
}

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	// Create inserts account unless its number is taken, in which case it
	// returns domain.DuplicateAccountError. Check and insert are atomic.
	Create(ctx context.Context, account *domain.Account) error
	// Delete undoes a Create whose follow-up failed. Unknown numbers are a no-op.
	Delete(ctx context.Context, number string) error
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	ListByOwner(ctx context.Context, contact string) ([]*domain.Account, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	All(ctx context.Context) ([]*domain.Account, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// OperationRecorder observes the outcome of account service operations.
type OperationRecorder interface {
	RecordOperation(op string, duration time.Duration, err error)
	RecordBalance(accountNumber string, balance float64)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a key so the request can be retried.
	Release(ctx context.Context, key string) error
}
