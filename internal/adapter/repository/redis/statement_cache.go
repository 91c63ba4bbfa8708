package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// StatementCache stores rendered account statements in Redis.
//
// Entries are keyed by instance, account number and version. The ledger lives
// in memory, so versions restart with the process; the instance ID keeps a new
// process from reading statements rendered for an earlier ledger.
type StatementCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewStatementCache creates a StatementCache scoped to instance.
func NewStatementCache(client *redis.Client, instance string, ttl time.Duration) *StatementCache {
	return &StatementCache{
		client: client,
		prefix: "statement:" + instance + ":",
		ttl:    ttl,
	}
}

func (c *StatementCache) key(number string, version int64) string {
	return fmt.Sprintf("%s%s:%d", c.prefix, number, version)
}

// Get returns the cached statement, or ok=false on a miss.
func (c *StatementCache) Get(ctx context.Context, number string, version int64) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.key(number, version)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Put stores a rendered statement.
func (c *StatementCache) Put(ctx context.Context, number string, version int64, data []byte) error {
	return c.client.Set(ctx, c.key(number, version), data, c.ttl).Err()
}
