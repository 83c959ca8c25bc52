//go:build integration

package history_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mnes/pkg/history"
	"github.com/dmitrymomot/mnes/pkg/redis"
)

func TestRedisStore(t *testing.T) {
	t.Parallel()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = "redis://localhost:6379/0"
	}

	ctx := context.Background()
	client, err := redis.Open(ctx, redis.Config{URL: url, RetryAttempts: 1})
	require.NoError(t, err)

	key := "mnes:test:history:" + t.Name()
	t.Cleanup(func() {
		_ = client.Del(ctx, key).Err()
		_ = client.Close()
	})

	s := history.NewRedisStore(client, history.WithRedisKey(key), history.WithRedisCap(3))
	for i := range 5 {
		require.NoError(t, s.Append(ctx, testRecord(i)))
	}

	all, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "rec-c", all[0].ID)
	require.Equal(t, "rec-e", all[2].ID)

	last, err := s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, last, 1)
	require.Equal(t, "rec-e", last[0].ID)
}
