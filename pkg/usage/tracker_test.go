package usage_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mnes/pkg/usage"
)

func TestTracker_RecordUse(t *testing.T) {
	t.Parallel()

	tr := usage.New()
	require.Zero(t, tr.Total())
	require.Empty(t, tr.TopN(5))

	tr.RecordUse([]string{"ကျော်", "ဝင်း"})
	tr.RecordUse([]string{"ကျော်", "ကျော်"})
	tr.RecordUse(nil)

	assert.Equal(t, 3, tr.Total())
	assert.Equal(t, 3, tr.Count("ကျော်"))
	assert.Equal(t, 1, tr.Count("ဝင်း"))
	assert.Zero(t, tr.Count("အောင်"))
	assert.Equal(t, 2, tr.Distinct())
}

func TestTracker_TopN(t *testing.T) {
	t.Parallel()

	tr := usage.New()
	tr.RecordUse([]string{"a", "b", "c"})
	tr.RecordUse([]string{"c", "b"})
	tr.RecordUse([]string{"d"})

	t.Run("ties keep first-seen order", func(t *testing.T) {
		t.Parallel()
		got := tr.TopN(0)
		require.Equal(t, []usage.Count{
			{Syllable: "b", Count: 2},
			{Syllable: "c", Count: 2},
			{Syllable: "a", Count: 1},
			{Syllable: "d", Count: 1},
		}, got)
	})

	t.Run("limited", func(t *testing.T) {
		t.Parallel()
		got := tr.TopN(1)
		require.Len(t, got, 1)
		require.Equal(t, "b", got[0].Syllable)
	})

	t.Run("limit above size", func(t *testing.T) {
		t.Parallel()
		require.Len(t, tr.TopN(10), 4)
	})
}

func TestTracker_Reset(t *testing.T) {
	t.Parallel()

	tr := usage.New()
	tr.RecordUse([]string{"a"})
	tr.Reset()

	require.Zero(t, tr.Total())
	require.Zero(t, tr.Count("a"))
	require.Empty(t, tr.TopN(0))

	tr.RecordUse([]string{"b"})
	require.Equal(t, []usage.Count{{Syllable: "b", Count: 1}}, tr.TopN(0))
}

func TestTracker_Concurrent(t *testing.T) {
	t.Parallel()

	const workers, perWorker = 16, 100

	tr := usage.New()
	var wg sync.WaitGroup
	for range workers {
		wg.Go(func() {
			for range perWorker {
				tr.RecordUse([]string{"x", "y"})
				_ = tr.TopN(1)
			}
		})
	}
	wg.Wait()

	require.Equal(t, workers*perWorker, tr.Total())
	require.Equal(t, workers*perWorker, tr.Count("x"))
	require.Equal(t, workers*perWorker, tr.Count("y"))
}
