package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/user/review-scraper/pkg/metrics"
)

// ScrapeOrchestrator works through the remaining queue, invoking the
// per-entity pipeline and committing each successful result. A hard failure
// propagates out immediately; entities committed before it stay committed.
type ScrapeOrchestrator struct {
	pipeline *EntityPipeline
	state    *WorkState
}

func NewScrapeOrchestrator(pipeline *EntityPipeline, state *WorkState) *ScrapeOrchestrator {
	return &ScrapeOrchestrator{pipeline: pipeline, state: state}
}

// Run processes a stable copy of the remaining queue sequentially.
func (o *ScrapeOrchestrator) Run(ctx context.Context) error {
	remaining := o.state.Remaining()
	for i, e := range remaining {
		slog.Info("Processing entity", "entity", e.Name, "url", e.URL, "position", i+1, "remaining", len(remaining))

		start := time.Now()
		reviews, proceed, err := o.pipeline.Run(ctx, &e)
		if err != nil {
			return fmt.Errorf("entity %s: %w", e.URL, err)
		}
		metrics.EntityDuration.Observe(time.Since(start).Seconds())

		if !proceed {
			metrics.EntitiesProcessed.WithLabelValues("skipped").Inc()
			continue
		}

		o.state.Commit(e, reviews)
		metrics.EntitiesProcessed.WithLabelValues("committed").Inc()
		slog.Info("Committed entity", "entity", e.Name, "url", e.URL, "reviews", len(reviews))
	}
	return nil
}
