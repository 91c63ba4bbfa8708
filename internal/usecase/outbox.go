package usecase

import (
	"context"
	"errors"

	"github.com/iho/goldenlock/internal/domain"
)

// emit assigns event an ID and appends it to the outbox. A nil repository disables events.
func emit(ctx context.Context, repo OutboxRepository, idGen IDGenerator, event *domain.OutboxEvent) error {
	if repo == nil {
		return nil
	}
	event.ID = idGen.Generate()
	return repo.Create(ctx, event)
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
