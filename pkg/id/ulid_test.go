package id_test

import (
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mnes/pkg/id"
)

var crockford = regexp.MustCompile(`^[0-9A-HJ-NP-TV-Z]{26}$`)

func TestNewULID(t *testing.T) {
	t.Parallel()

	t.Run("length and alphabet", func(t *testing.T) {
		t.Parallel()

		ulid := id.NewULID()
		require.Regexp(t, crockford, ulid)
	})

	t.Run("unique", func(t *testing.T) {
		t.Parallel()

		seen := make(map[string]bool, 1000)
		for range 1000 {
			ulid := id.NewULID()
			require.False(t, seen[ulid], "duplicate ULID: %s", ulid)
			seen[ulid] = true
		}
	})

	t.Run("concurrent generation is unique", func(t *testing.T) {
		t.Parallel()

		const goroutines, perGoroutine = 50, 100
		results := make(chan string, goroutines*perGoroutine)

		var wg sync.WaitGroup
		for range goroutines {
			wg.Go(func() {
				for range perGoroutine {
					results <- id.NewULID()
				}
			})
		}
		wg.Wait()
		close(results)

		seen := make(map[string]bool, goroutines*perGoroutine)
		for ulid := range results {
			require.False(t, seen[ulid], "duplicate ULID: %s", ulid)
			seen[ulid] = true
		}
		assert.Len(t, seen, goroutines*perGoroutine)
	})
}

func TestNewULIDAt(t *testing.T) {
	t.Parallel()

	t.Run("encodes timestamp", func(t *testing.T) {
		t.Parallel()

		ulid := id.NewULIDAt(time.UnixMilli(1469918176385))
		require.Equal(t, "01ARYZ6S41", ulid[:10])

		zero := id.NewULIDAt(time.UnixMilli(0))
		require.Equal(t, "0000000000", zero[:10])
	})

	t.Run("sorts by time", func(t *testing.T) {
		t.Parallel()

		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		prev := id.NewULIDAt(base)
		for i := 1; i < 100; i++ {
			next := id.NewULIDAt(base.Add(time.Duration(i) * time.Millisecond))
			require.Greater(t, next, prev)
			prev = next
		}
	})

	t.Run("random part differs at the same instant", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		a, b := id.NewULIDAt(now), id.NewULIDAt(now)
		require.Equal(t, a[:10], b[:10])
		require.NotEqual(t, a[10:], b[10:])
	})
}
