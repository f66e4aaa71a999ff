package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/redis/go-redis/v9"
)

// journalKey is the Redis hash holding all entries, keyed by flow ID.
const journalKey = "studio:flows"

// RedisStore persists the journal to Redis, for setups where several
// studio instances share one tracker.
type RedisStore struct {
	client *redis.Client
	mu     sync.RWMutex
	closed bool
}

// NewRedisStore creates a Redis journal store from a URL such as
// "redis://localhost:6379/0". The connection is verified with a ping.
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// Record implements Store.
func (r *RedisStore) Record(ctx context.Context, e Entry) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return ErrStoreClosed
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal journal entry: %w", err)
	}
	if err := r.client.HSet(ctx, journalKey, e.FlowID, data).Err(); err != nil {
		return fmt.Errorf("record flow: %w", err)
	}
	return nil
}

// Get implements Store.
func (r *RedisStore) Get(ctx context.Context, flowID string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return Entry{}, ErrStoreClosed
	}

	data, err := r.client.HGet(ctx, journalKey, flowID).Result()
	if err == redis.Nil {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get flow: %w", err)
	}

	var e Entry
	if err := json.Unmarshal([]byte(data), &e); err != nil {
		return Entry{}, fmt.Errorf("unmarshal journal entry: %w", err)
	}
	return e, nil
}

// List implements Store.
func (r *RedisStore) List(ctx context.Context) ([]Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, ErrStoreClosed
	}

	raw, err := r.client.HGetAll(ctx, journalKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list flows: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, data := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(data), &e); err != nil {
			return nil, fmt.Errorf("unmarshal journal entry: %w", err)
		}
		entries = append(entries, e)
	}

	// Newest first
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].SubmittedAt.After(entries[j].SubmittedAt)
	})

	return entries, nil
}

// Delete implements Store.
func (r *RedisStore) Delete(ctx context.Context, flowID string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return ErrStoreClosed
	}

	if err := r.client.HDel(ctx, journalKey, flowID).Err(); err != nil {
		return fmt.Errorf("delete flow: %w", err)
	}
	return nil
}

// Close implements Store.
func (r *RedisStore) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	return r.client.Close()
}
