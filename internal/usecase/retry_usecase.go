package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/user/review-scraper/internal/entity"
	"github.com/user/review-scraper/internal/repository"
	"github.com/user/review-scraper/pkg/metrics"
)

// ErrRetriesExhausted signals that the attempt budget is spent and the run
// terminated with a checkpoint flush of partial results.
var ErrRetriesExhausted = errors.New("retry attempts exhausted")

const defaultMaxAttempts = 5

// RetryCoordinator wraps full orchestrator runs. On a propagated failure it
// backs off exponentially and re-runs against the same WorkState, so
// entities committed by earlier attempts are never reprocessed. The results
// snapshot is flushed to the sink exactly once: on success or on exhaustion.
type RetryCoordinator struct {
	orchestrator *ScrapeOrchestrator
	state        *WorkState
	sink         repository.ResultSink
	maxAttempts  int
	sleep        func(time.Duration) // swapped out in tests
}

func NewRetryCoordinator(orchestrator *ScrapeOrchestrator, state *WorkState, sink repository.ResultSink, maxAttempts int) *RetryCoordinator {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &RetryCoordinator{
		orchestrator: orchestrator,
		state:        state,
		sink:         sink,
		maxAttempts:  maxAttempts,
		sleep:        time.Sleep,
	}
}

// Run executes the scrape until it succeeds or the attempt budget runs out.
// It returns the flushed snapshot in both cases; the error is
// ErrRetriesExhausted only on the fatal path.
func (r *RetryCoordinator) Run(ctx context.Context) ([]entity.EntityResult, error) {
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		err := r.orchestrator.Run(ctx)
		if err == nil {
			snapshot := r.state.Snapshot()
			if ferr := r.sink.Flush(snapshot); ferr != nil {
				return snapshot, fmt.Errorf("flush results: %w", ferr)
			}
			slog.Info("Scrape run completed", "attempt", attempt, "entities", len(snapshot))
			return snapshot, nil
		}

		slog.Error("Scrape run failed", "attempt", attempt, "max_attempts", r.maxAttempts, "error", err)
		metrics.RunRetries.Inc()

		if attempt == r.maxAttempts {
			break
		}
		backoff := time.Duration(math.Pow(3, float64(attempt))) * time.Second
		slog.Info("Backing off before retry", "attempt", attempt, "backoff", backoff.String())
		r.sleep(backoff)
	}

	// Budget spent: flush what was committed so partial progress survives.
	snapshot := r.state.Snapshot()
	if err := r.sink.Flush(snapshot); err != nil {
		slog.Error("Checkpoint flush failed", "error", err)
	}
	slog.Error("Retry attempts exhausted, checkpoint written", "entities", len(snapshot))
	return snapshot, ErrRetriesExhausted
}
