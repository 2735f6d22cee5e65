package idgen

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixed = time.Date(2012, time.September, 15, 12, 0, 0, 0, time.UTC)

func newTestGenerator(t *testing.T, opts ...Option) *Generator {
	t.Helper()
	g, err := New(opts...)
	require.NoError(t, err)
	return g
}

func TestNext_Format(t *testing.T) {
	g := newTestGenerator(t, WithRand(func(int) int { return 41 }))

	id := g.Next(fixed)

	assert.Equal(t, "20120915120000041", id)
	base, suffix, ok := Parse(id)
	require.True(t, ok)
	assert.True(t, base.Equal(fixed))
	assert.Equal(t, 41, suffix)
}

func TestNext_ZeroBaseUsesClock(t *testing.T) {
	now := time.Date(2024, time.March, 1, 9, 30, 15, 500, time.UTC)
	g := newTestGenerator(t, WithClock(func() time.Time { return now }), WithRand(func(int) int { return 0 }))

	assert.Equal(t, "20240301093015000", g.Next(time.Time{}))
}

func TestNext_SuffixWraps(t *testing.T) {
	g := newTestGenerator(t, WithRand(func(int) int { return 998 }))

	assert.Equal(t, "20120915120000998", g.Next(fixed))
	assert.Equal(t, "20120915120000999", g.Next(fixed))
	assert.Equal(t, "20120915120000000", g.Next(fixed))
}

func TestNext_BurstNeverRepeats(t *testing.T) {
	g := newTestGenerator(t)
	seen := make(map[string]bool)

	for i := 0; i < 1000; i++ {
		id := g.Next(fixed)
		require.Len(t, id, 17)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		assert.Equal(t, "20120915120000", id[:14])
	}
}

func TestNext_ExhaustedBaseMovesForward(t *testing.T) {
	g := newTestGenerator(t, WithRand(func(int) int { return 0 }))
	for i := 0; i < 1000; i++ {
		g.Next(fixed)
	}

	id := g.Next(fixed)

	assert.Equal(t, "20120915120001000", id)
}

func TestNext_Concurrent(t *testing.T) {
	g := newTestGenerator(t)
	const workers, perWorker = 8, 250

	var (
		mu   sync.Mutex
		seen = make(map[string]bool)
		wg   sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				id := g.Next(fixed)
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers*perWorker)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		id   string
		ok   bool
	}{
		{"valid", "20120915120000042", true},
		{"too short", "2012091512000004", false},
		{"letters", "2012091512000004A", false},
		{"invalid month", "20121315120000042", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, ok := Parse(tt.id)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestWithCapacity_Invalid(t *testing.T) {
	g := newTestGenerator(t, WithCapacity(-1))
	assert.NotNil(t, g)
}
