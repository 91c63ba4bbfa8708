package eventpublisher

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/goldenlock/internal/adapter/repository/memory"
	"github.com/iho/goldenlock/internal/domain"
)

func TestProcessEventsPublishesAndMarks(t *testing.T) {
	repo := memory.NewOutboxRepository()
	seed(t, repo, "evt-1")
	pub := &stubPublisher{}
	rec := &stubRecorder{}
	ep := newTestPublisher(repo, pub)
	ep.recorder = rec

	require.NoError(t, ep.processEvents(context.Background()))

	require.Len(t, pub.published, 1)
	assert.Equal(t, "evt-1", pub.published[0].ID)

	pending, err := repo.GetUnpublished(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
	assert.Equal(t, []string{"ok"}, rec.outcomes)
}

func TestProcessEventsContinuesOnPublishError(t *testing.T) {
	repo := memory.NewOutboxRepository()
	seed(t, repo, "evt-1", "evt-2")
	pub := &stubPublisher{
		errorsByID: map[string]error{"evt-1": errors.New("fail")},
	}
	rec := &stubRecorder{}
	ep := newTestPublisher(repo, pub)
	ep.recorder = rec

	require.NoError(t, ep.processEvents(context.Background()))

	require.Len(t, pub.published, 1)
	assert.Equal(t, "evt-2", pub.published[0].ID)

	pending, err := repo.GetUnpublished(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "evt-1", pending[0].ID)
	assert.Equal(t, []string{"error", "ok"}, rec.outcomes)
}

func TestProcessEventsRespectsBatchSize(t *testing.T) {
	repo := memory.NewOutboxRepository()
	seed(t, repo, "evt-1", "evt-2", "evt-3")
	pub := &stubPublisher{}
	ep := newTestPublisher(repo, pub)
	ep.batchSize = 2

	require.NoError(t, ep.processEvents(context.Background()))
	assert.Len(t, pub.published, 2)

	require.NoError(t, ep.processEvents(context.Background()))
	assert.Len(t, pub.published, 3)
}

func TestPruneDeletesOldPublishedEvents(t *testing.T) {
	repo := memory.NewOutboxRepository()
	seed(t, repo, "evt-1")
	ep := newTestPublisher(repo, &stubPublisher{})

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	ep.now = func() time.Time { return base }
	require.NoError(t, ep.processEvents(context.Background()))

	ep.now = func() time.Time { return base.Add(30 * time.Minute) }
	require.NoError(t, ep.prune(context.Background()))
	assert.Equal(t, 1, repo.Len())

	ep.now = func() time.Time { return base.Add(2 * time.Hour) }
	require.NoError(t, ep.prune(context.Background()))
	assert.Equal(t, 0, repo.Len())
}

func TestStartStopsOnContextCancellation(t *testing.T) {
	repo := memory.NewOutboxRepository()
	pub := &stubPublisher{}
	ep := newTestPublisher(repo, pub)
	ep.interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ep.Start(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("publisher did not stop after cancel")
	}
}

func TestLogPublisherWritesEvent(t *testing.T) {
	var buf bytes.Buffer
	pub := NewLogPublisher(zerolog.New(&buf))

	err := pub.Publish(context.Background(), &domain.OutboxEvent{
		ID:            "evt-9",
		AggregateID:   "1001",
		AggregateType: domain.AggregateTypeAccount,
		EventType:     domain.EventTypeDepositRecorded,
		Payload:       map[string]any{"amount": "100"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.Contains(out, `"event_id":"evt-9"`), out)
	assert.True(t, strings.Contains(out, `"amount":"100"`), out)
}

func newTestPublisher(repo *memory.OutboxRepository, pub *stubPublisher) *EventPublisher {
	return NewEventPublisher(Config{
		OutboxRepo: repo,
		Publisher:  pub,
		Logger:     zerolog.Nop(),
		BatchSize:  10,
		Interval:   5 * time.Millisecond,
	})
}

func seed(t *testing.T, repo *memory.OutboxRepository, ids ...string) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, repo.Create(context.Background(), &domain.OutboxEvent{
			ID:        id,
			EventType: domain.EventTypeAccountOpened,
			CreatedAt: time.Now().UTC(),
		}))
	}
}

type stubPublisher struct {
	published  []*domain.OutboxEvent
	errorsByID map[string]error
}

func (s *stubPublisher) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	if err := s.errorsByID[event.ID]; err != nil {
		return err
	}
	s.published = append(s.published, event)
	return nil
}

type stubRecorder struct {
	outcomes []string
}

func (s *stubRecorder) RecordPublished(eventType string, err error) {
	if err != nil {
		s.outcomes = append(s.outcomes, "error")
		return
	}
	s.outcomes = append(s.outcomes, "ok")
}
