// Package jitter provides the randomized pacing delays inserted between
// automation actions. Delays are pacing devices, not correctness
// mechanisms; tests inject None without changing outcomes.
package jitter

import (
	"context"
	"math/rand/v2"
	"time"
)

// Delayer pauses the caller for a duration picked from [min, max).
type Delayer interface {
	Wait(ctx context.Context, min, max time.Duration)
}

// NewRandom returns the production delayer.
func NewRandom() Delayer {
	return randomDelayer{}
}

type randomDelayer struct{}

func (randomDelayer) Wait(ctx context.Context, min, max time.Duration) {
	d := min
	if max > min {
		d = min + rand.N(max-min)
	}
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// None skips all delays. For tests.
var None Delayer = noneDelayer{}

type noneDelayer struct{}

func (noneDelayer) Wait(context.Context, time.Duration, time.Duration) {}
