package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/user/review-scraper/internal/repository"
	"github.com/user/review-scraper/pkg/jitter"
)

func positionDriver(t *testing.T, site *fakeSite) *fakeDriver {
	t.Helper()
	driver := newFakeDriver()
	driver.sites["https://example.test/r1"] = site
	if err := driver.Navigate(context.Background(), "https://example.test/r1"); err != nil {
		t.Fatalf("position driver: %v", err)
	}
	return driver
}

func TestCollectReviewsAcrossPages(t *testing.T) {
	t.Parallel()

	site := &fakeSite{
		pages: []fakePage{
			{
				html: listingHTML(
					fragmentHTML("P1 first", "July 1, 2019", "bubble_50", "a", ""),
					fragmentHTML("P1 second", "July 2, 2019", "bubble_40", "b", ""),
				),
				expandable: true,
				nextClass:  "nav next ui_button primary",
			},
			{
				html: listingHTML(
					fragmentHTML("P2 first", "July 3, 2019", "bubble_30", "c", ""),
				),
				nextClass: "nav next ui_button primary disabled",
			},
		},
	}
	driver := positionDriver(t, site)

	engine := NewPaginationEngine(driver, jitter.None)
	reviews, err := engine.CollectReviews(context.Background())
	if err != nil {
		t.Fatalf("CollectReviews error: %v", err)
	}

	want := []string{"P1 first", "P1 second", "P2 first"}
	if len(reviews) != len(want) {
		t.Fatalf("expected %d reviews, got %d", len(want), len(reviews))
	}
	for i, title := range want {
		if reviews[i].Title != title {
			t.Fatalf("review %d: expected %q, got %q", i, title, reviews[i].Title)
		}
	}

	expanded := 0
	for _, sel := range driver.clicks {
		if sel == selExpandControl {
			expanded++
		}
	}
	if expanded != 1 {
		t.Fatalf("expected 1 expand click, got %d", expanded)
	}
}

func TestCollectReviewsStopsWhenNextAbsent(t *testing.T) {
	t.Parallel()

	site := &fakeSite{
		pages: []fakePage{
			{html: listingHTML(fragmentHTML("Only", "July 1, 2019", "bubble_50", "a", ""))},
		},
	}
	driver := positionDriver(t, site)

	engine := NewPaginationEngine(driver, jitter.None)
	reviews, err := engine.CollectReviews(context.Background())
	if err != nil {
		t.Fatalf("CollectReviews error: %v", err)
	}
	if len(reviews) != 1 {
		t.Fatalf("expected 1 review, got %d", len(reviews))
	}
	for _, sel := range driver.clicks {
		if sel == selNextPage {
			t.Fatalf("next control must not be clicked when absent")
		}
	}
}

func TestCollectReviewsDisabledNextHalts(t *testing.T) {
	t.Parallel()

	site := &fakeSite{
		pages: []fakePage{
			{
				html:      listingHTML(fragmentHTML("Only", "July 1, 2019", "bubble_20", "a", "")),
				nextClass: "nav next disabled",
			},
			{
				// Never reached.
				html: listingHTML(fragmentHTML("Ghost", "July 2, 2019", "bubble_10", "b", "")),
			},
		},
	}
	driver := positionDriver(t, site)

	engine := NewPaginationEngine(driver, jitter.None)
	reviews, err := engine.CollectReviews(context.Background())
	if err != nil {
		t.Fatalf("CollectReviews error: %v", err)
	}
	if len(reviews) != 1 || reviews[0].Title != "Only" {
		t.Fatalf("expected only the first page's review, got %+v", reviews)
	}
}

func TestCollectReviewsDecodeErrorPropagates(t *testing.T) {
	t.Parallel()

	site := &fakeSite{
		pages: []fakePage{
			{html: listingHTML(`<div class="review-container"><p class="partial_entry">broken</p></div>`)},
		},
	}
	driver := positionDriver(t, site)

	engine := NewPaginationEngine(driver, jitter.None)
	_, err := engine.CollectReviews(context.Background())
	if !errors.Is(err, repository.ErrExtractionFailed) {
		t.Fatalf("expected ErrExtractionFailed, got %v", err)
	}
}
