package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/user/review-scraper/internal/entity"
	"github.com/user/review-scraper/internal/repository"
	"github.com/user/review-scraper/pkg/jitter"
)

// EntityPipeline runs the per-entity sequence: navigation, consent-banner
// dismissal, address extraction, language-filter gating, pagination.
type EntityPipeline struct {
	driver     repository.PageDriver
	pagination *PaginationEngine
}

func NewEntityPipeline(driver repository.PageDriver, delay jitter.Delayer) *EntityPipeline {
	return &EntityPipeline{
		driver:     driver,
		pagination: NewPaginationEngine(driver, delay),
	}
}

// Run navigates to the entity's page and extracts its reviews. proceed is
// false when the language-filter gate decided to skip the entity; in that
// case the caller must not commit a result for it.
//
// Address is stored on the entity as a side effect of the navigation step.
func (pl *EntityPipeline) Run(ctx context.Context, e *entity.Entity) (reviews []entity.Review, proceed bool, err error) {
	if err := pl.driver.Navigate(ctx, e.URL); err != nil {
		return nil, false, fmt.Errorf("navigate to %s: %w", e.URL, err)
	}

	pl.dismissConsent(ctx)

	address, err := pl.driver.Text(ctx, selAddress)
	if err != nil {
		return nil, false, fmt.Errorf("extract address for %s: %w", e.URL, err)
	}
	e.Address = strings.TrimSpace(address)

	proceed, err = pl.applyLanguageFilter(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("apply language filter for %s: %w", e.URL, err)
	}
	if !proceed {
		slog.Info("No reviews", "entity", e.Name, "url", e.URL)
		return nil, false, nil
	}

	reviews, err = pl.pagination.CollectReviews(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("collect reviews for %s: %w", e.URL, err)
	}
	return reviews, true, nil
}

// dismissConsent clicks the consent banner when it shows up within the
// bounded wait. Absence means already dismissed; nothing here propagates.
func (pl *EntityPipeline) dismissConsent(ctx context.Context) {
	found, err := pl.driver.WaitVisible(ctx, selConsentAccept, consentWaitTimeout)
	if err != nil {
		slog.Debug("Consent banner lookup failed", "error", err)
		return
	}
	if !found {
		slog.Debug("Consent banner not shown")
		return
	}
	if err := pl.driver.Click(ctx, selConsentAccept); err != nil {
		slog.Debug("Consent banner click failed", "error", err)
		return
	}
	_ = pl.driver.Sleep(ctx, consentSettleDelay)
}

// applyLanguageFilter switches the listing to all languages. A missing
// control within the bounded wait means the entity has no reviews: the
// caller skips it.
func (pl *EntityPipeline) applyLanguageFilter(ctx context.Context) (bool, error) {
	found, err := pl.driver.WaitVisible(ctx, selLanguageAll, languageWaitTimeout)
	if err != nil {
		slog.Warn("Language filter lookup failed, skipping entity", "error", err)
		return false, nil
	}
	if !found {
		return false, nil
	}

	if err := pl.driver.Click(ctx, selLanguageAll); err != nil {
		return false, fmt.Errorf("click language filter: %w", err)
	}
	if err := pl.driver.Sleep(ctx, languageSettleDelay); err != nil {
		return false, err
	}
	if _, err := pl.driver.WaitHidden(ctx, selLoadingOverlay, loadingWaitTimeout); err != nil {
		slog.Debug("Loading overlay wait failed", "error", err)
	}
	return true, nil
}
