package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/user/review-scraper/internal/entity"
	"github.com/user/review-scraper/internal/repository"
	"github.com/user/review-scraper/pkg/jitter"
	"github.com/user/review-scraper/pkg/metrics"
)

// PaginationEngine drives one entity's review listing to exhaustion: expand
// truncated entries, decode the rendered fragments, advance to the next page
// until the next control is absent or disabled.
type PaginationEngine struct {
	driver repository.PageDriver
	delay  jitter.Delayer
}

func NewPaginationEngine(driver repository.PageDriver, delay jitter.Delayer) *PaginationEngine {
	return &PaginationEngine{driver: driver, delay: delay}
}

// CollectReviews returns the complete review sequence across all pages, in
// on-page document order with pages visited in ascending order. The driver
// must already be positioned on the first listing page.
func (p *PaginationEngine) CollectReviews(ctx context.Context) ([]entity.Review, error) {
	var all []entity.Review

	for page := 1; ; page++ {
		if err := p.expandTruncated(ctx); err != nil {
			return nil, err
		}

		listHTML, err := p.driver.OuterHTML(ctx, selReviewList)
		if err != nil {
			return nil, fmt.Errorf("capture review list on page %d: %w", page, err)
		}
		reviews, err := DecodeReviews(listHTML)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		all = append(all, reviews...)

		metrics.PagesVisited.Inc()
		metrics.ReviewsDecoded.Add(float64(len(reviews)))
		slog.Info("Decoded review page", "page", page, "reviews", len(reviews), "total", len(all))

		if !p.advance(ctx) {
			return all, nil
		}
	}
}

// expandTruncated clicks the "show more" control when present, expanding
// every truncated entry on the page in place.
func (p *PaginationEngine) expandTruncated(ctx context.Context) error {
	found, err := p.driver.Exists(ctx, selExpandControl)
	if err != nil {
		return fmt.Errorf("locate expand control: %w", err)
	}
	if !found {
		return nil
	}
	if err := p.driver.Click(ctx, selExpandControl); err != nil {
		return fmt.Errorf("expand truncated reviews: %w", err)
	}
	// Let the expansion render before reading text.
	p.delay.Wait(ctx, expandDelayMin, expandDelayMax)
	return nil
}

// advance moves to the next listing page. Any failure locating or evaluating
// the next control means "no further pages" — a soft stop, never an error.
func (p *PaginationEngine) advance(ctx context.Context) bool {
	class, found, err := p.driver.Attribute(ctx, selNextPage, "class")
	if err != nil || !found {
		slog.Debug("No next-page control, stopping pagination", "error", err)
		return false
	}
	if strings.Contains(class, disabledMarker) {
		slog.Debug("Next-page control disabled, stopping pagination")
		return false
	}

	if err := p.driver.Evaluate(ctx, scrollToBottomScript, nil); err != nil {
		slog.Debug("Scroll before advancing failed", "error", err)
	}
	if err := p.driver.Click(ctx, selNextPage); err != nil {
		slog.Debug("Next-page click failed, stopping pagination", "error", err)
		return false
	}

	if _, err := p.driver.WaitHidden(ctx, selLoadingOverlay, loadingWaitTimeout); err != nil {
		slog.Debug("Loading overlay wait failed", "error", err)
	}
	p.delay.Wait(ctx, advanceDelayMin, advanceDelayMax)
	return true
}
