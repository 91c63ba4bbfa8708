package domain

import "time"

// Event types
const (
	EventTypeCustomerCreated    = "customer.created"
	EventTypeAccountOpened      = "account.opened"
	EventTypeDepositRecorded    = "deposit.recorded"
	EventTypeWithdrawalRecorded = "withdrawal.recorded"
	EventTypeTransferCompleted  = "transfer.completed"
)

// Aggregate types
const (
	AggregateTypeCustomer = "customer"
	AggregateTypeAccount  = "account"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}
