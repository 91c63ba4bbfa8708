package redis

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"github.com/iho/goldenlock/internal/usecase"
)

// ErrStoreUnavailable is returned while the breaker is open.
var ErrStoreUnavailable = errors.New("idempotency store unavailable")

type checkResult struct {
	exists bool
	value  []byte
}

// BreakerConfig tunes the circuit breaker around an idempotency store.
type BreakerConfig struct {
	Name string
	// ConsecutiveFailures trips the breaker.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

// BreakerIdempotencyStore guards an IdempotencyStore with a circuit breaker so a
// failing Redis is shed quickly instead of stalling every mutating request.
type BreakerIdempotencyStore struct {
	next usecase.IdempotencyStore
	cb   *gobreaker.CircuitBreaker[*checkResult]
}

// NewBreakerIdempotencyStore wraps next.
func NewBreakerIdempotencyStore(next usecase.IdempotencyStore, cfg BreakerConfig, logger zerolog.Logger) *BreakerIdempotencyStore {
	if cfg.Name == "" {
		cfg.Name = "idempotency-store"
	}
	if cfg.ConsecutiveFailures == 0 {
		cfg.ConsecutiveFailures = 5
	}
	if cfg.OpenTimeout == 0 {
		cfg.OpenTimeout = 30 * time.Second
	}

	settings := gobreaker.Settings{
		Name:    cfg.Name,
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	}

	return &BreakerIdempotencyStore{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[*checkResult](settings),
	}
}

// CheckAndSet implements usecase.IdempotencyStore.
func (s *BreakerIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	res, err := s.cb.Execute(func() (*checkResult, error) {
		exists, value, err := s.next.CheckAndSet(ctx, key, response, ttl)
		if err != nil {
			return nil, err
		}
		return &checkResult{exists: exists, value: value}, nil
	})
	if err != nil {
		return false, nil, translateBreakerErr(err)
	}
	return res.exists, res.value, nil
}

// Update implements usecase.IdempotencyStore.
func (s *BreakerIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	_, err := s.cb.Execute(func() (*checkResult, error) {
		return nil, s.next.Update(ctx, key, response, ttl)
	})
	return translateBreakerErr(err)
}

// Release implements usecase.IdempotencyStore.
func (s *BreakerIdempotencyStore) Release(ctx context.Context, key string) error {
	_, err := s.cb.Execute(func() (*checkResult, error) {
		return nil, s.next.Release(ctx, key)
	})
	return translateBreakerErr(err)
}

// State reports the breaker state, for readiness checks.
func (s *BreakerIdempotencyStore) State() gobreaker.State {
	return s.cb.State()
}

func translateBreakerErr(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrStoreUnavailable
	}
	return err
}
