// Package award defines the contract for drawing claim awards.
package award

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
)

// Default award range constants. The original product copy advertises a
// 100-1000 range in one place while the server draws 1-10; the server-side
// range is canonical here and both bounds stay configurable.
const (
	DefaultMin = 1
	DefaultMax = 10
)

// Option applies a configuration option to the RandomDrawer.
type Option func(*RandomDrawer)

// WithRange sets the inclusive award range.
func WithRange(minPoints, maxPoints int) Option {
	return func(d *RandomDrawer) {
		if minPoints > 0 && maxPoints >= minPoints {
			d.min = minPoints
			d.max = maxPoints
		}
	}
}

// WithSeed makes the drawer deterministic, for tests.
func WithSeed(seed int64) Option {
	return func(d *RandomDrawer) {
		d.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // award draws need no crypto strength
	}
}

// Drawer draws the number of points awarded by a single claim.
type Drawer interface {
	// Draw returns a positive award amount, honoring ctx for cancellation.
	Draw(ctx context.Context) (int, error)
}

// RandomDrawer implements Drawer with a uniform pseudo-random draw.
type RandomDrawer struct {
	mu  sync.Mutex
	rng *rand.Rand
	min int
	max int
}

// NewRandomDrawer creates a drawer with configuration options.
func NewRandomDrawer(opts ...Option) *RandomDrawer {
	d := &RandomDrawer{
		rng: rand.New(rand.NewSource(rand.Int63())), //nolint:gosec // award draws need no crypto strength
		min: DefaultMin,
		max: DefaultMax,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Draw returns a uniform integer in [min, max].
func (d *RandomDrawer) Draw(ctx context.Context) (int, error) {
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.min + d.rng.Intn(d.max-d.min+1), nil
}

// Range returns the configured inclusive bounds.
func (d *RandomDrawer) Range() (int, int) {
	return d.min, d.max
}

// Fixed is a Drawer that always returns the same amount. It exists as a
// test seam so the claim path can be exercised with a known award.
type Fixed int

// Draw returns the fixed amount.
func (f Fixed) Draw(ctx context.Context) (int, error) {
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
		return int(f), nil
	}
}
