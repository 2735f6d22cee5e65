// Package idgen issues 17-digit document identifiers: a YYYYMMDDhhmmss
// base followed by a 3-digit suffix.
package idgen

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/custodia-labs/legalchunk/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.IDGenerator = (*Generator)(nil)

const (
	baseLayout = "20060102150405"

	// suffixSpace is the number of distinct suffixes per base second.
	suffixSpace = 1000

	// DefaultCapacity is the number of base seconds tracked at once.
	DefaultCapacity = 4096
)

// sequence tracks the suffixes handed out for one base second.
// Suffixes run from a random start and wrap around the suffix space.
type sequence struct {
	start int
	used  int
}

// Generator implements driven.IDGenerator.
// It is safe for concurrent use.
type Generator struct {
	mu    sync.Mutex
	seqs  *lru.Cache[string, *sequence]
	now   func() time.Time
	randN func(n int) int
}

// Option configures a Generator.
type Option func(*config)

type config struct {
	capacity int
	now      func() time.Time
	randN    func(n int) int
}

// WithClock sets the clock used when no base time is given.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}

// WithRand sets the source of suffix start offsets.
func WithRand(randN func(n int) int) Option {
	return func(c *config) {
		if randN != nil {
			c.randN = randN
		}
	}
}

// WithCapacity sets how many base seconds are tracked.
func WithCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// New creates a generator.
func New(opts ...Option) (*Generator, error) {
	cfg := config{
		capacity: DefaultCapacity,
		now:      time.Now,
		randN:    rand.IntN,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	seqs, err := lru.New[string, *sequence](cfg.capacity)
	if err != nil {
		return nil, fmt.Errorf("creating suffix cache: %w", err)
	}
	return &Generator{seqs: seqs, now: cfg.now, randN: cfg.randN}, nil
}

// Next returns a fresh identifier for the given base time; a zero base
// means now. Once every suffix of a second is used, the base moves one
// second forward, so no identifier repeats while its base is tracked.
func (g *Generator) Next(base time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if base.IsZero() {
		base = g.now()
	}
	base = base.Truncate(time.Second)

	for {
		key := base.Format(baseLayout)
		seq, ok := g.seqs.Get(key)
		if !ok {
			seq = &sequence{start: g.randN(suffixSpace)}
			g.seqs.Add(key, seq)
		}
		if seq.used < suffixSpace {
			suffix := (seq.start + seq.used) % suffixSpace
			seq.used++
			return fmt.Sprintf("%s%03d", key, suffix)
		}
		base = base.Add(time.Second)
	}
}

// Parse splits an identifier into its base time and suffix.
// It returns false when id is not 17 digits with a valid date-time.
func Parse(id string) (time.Time, int, bool) {
	if len(id) != 17 {
		return time.Time{}, 0, false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return time.Time{}, 0, false
		}
	}
	t, err := time.Parse(baseLayout, id[:14])
	if err != nil {
		return time.Time{}, 0, false
	}
	var suffix int
	if _, err := fmt.Sscanf(id[14:], "%03d", &suffix); err != nil {
		return time.Time{}, 0, false
	}
	return t, suffix, true
}
