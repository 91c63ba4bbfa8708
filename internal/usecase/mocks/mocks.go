package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/goldenlock/internal/domain"
)

// StubIDGenerator hands out sequential IDs unless GenerateFunc is set.
type StubIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewStubIDGenerator() *StubIDGenerator {
	return &StubIDGenerator{}
}

func (m *StubIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%04d", m.counter)
}

// StubOutboxRepository keeps created events in memory. Set CreateFunc to inject failures.
type StubOutboxRepository struct {
	mu     sync.Mutex
	events []*domain.OutboxEvent

	CreateFunc func(ctx context.Context, event *domain.OutboxEvent) error
}

func NewStubOutboxRepository() *StubOutboxRepository {
	return &StubOutboxRepository{}
}

func (m *StubOutboxRepository) Create(ctx context.Context, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		if err := m.CreateFunc(ctx, event); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *StubOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published && (limit <= 0 || len(out) < limit) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *StubOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *StubOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	return nil
}

// EventTypes returns the types of the created events in order.
func (m *StubOutboxRepository) EventTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]string, len(m.events))
	for i, e := range m.events {
		types[i] = e.EventType
	}
	return types
}

// StubOperationRecorder counts recorded operations by name and outcome.
type StubOperationRecorder struct {
	mu        sync.Mutex
	Successes map[string]int
	Failures  map[string]int
	Balances  map[string]float64
}

func NewStubOperationRecorder() *StubOperationRecorder {
	return &StubOperationRecorder{
		Successes: make(map[string]int),
		Failures:  make(map[string]int),
		Balances:  make(map[string]float64),
	}
}

func (m *StubOperationRecorder) RecordOperation(op string, duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.Failures[op]++
		return
	}
	m.Successes[op]++
}

func (m *StubOperationRecorder) RecordBalance(accountNumber string, balance float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Balances[accountNumber] = balance
}
