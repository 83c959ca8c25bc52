package history

import (
	"context"
	"encoding/json"
	"errors"
	"slices"

	"github.com/redis/go-redis/v9"
)

// Redis defaults.
const (
	DefaultRedisKey = "mnes:history"
	DefaultRedisCap = DefaultCapacity
)

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithRedisKey sets the list key. Default: "mnes:history".
func WithRedisKey(key string) RedisOption {
	return func(s *RedisStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithRedisCap sets how many records the list keeps. Default: DefaultCapacity.
func WithRedisCap(n int) RedisOption {
	return func(s *RedisStore) {
		if n > 0 {
			s.cap = n
		}
	}
}

// RedisStore keeps records as JSON strings in a capped Redis list, newest at the head.
type RedisStore struct {
	client redis.UniversalClient
	key    string
	cap    int
}

// NewRedisStore returns a store using client.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		key:    DefaultRedisKey,
		cap:    DefaultRedisCap,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append pushes rec and trims the list to its cap atomically.
func (s *RedisStore) Append(ctx context.Context, rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return errors.Join(ErrAppendFailed, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, s.key, data)
		pipe.LTrim(ctx, s.key, 0, int64(s.cap-1))
		return nil
	})
	if err != nil {
		return errors.Join(ErrAppendFailed, err)
	}
	return nil
}

// List implements Store.
func (s *RedisStore) List(ctx context.Context, limit int) ([]Record, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	items, err := s.client.LRange(ctx, s.key, 0, stop).Result()
	if err != nil {
		return nil, errors.Join(ErrListFailed, err)
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		var rec Record
		if err := json.Unmarshal([]byte(item), &rec); err != nil {
			return nil, errors.Join(ErrListFailed, err)
		}
		records = append(records, rec)
	}

	slices.Reverse(records)
	return records, nil
}

var _ Store = (*RedisStore)(nil)
