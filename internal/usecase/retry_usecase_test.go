package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/user/review-scraper/internal/entity"
	"github.com/user/review-scraper/pkg/jitter"
)

func singlePageSite(address string, fragments ...string) *fakeSite {
	return &fakeSite{
		consent:    true,
		address:    address,
		langFilter: true,
		pages:      []fakePage{{html: listingHTML(fragments...)}},
	}
}

func newCoordinator(driver *fakeDriver, entities []entity.Entity, sink *fakeSink, maxAttempts int) (*RetryCoordinator, *WorkState, *[]time.Duration) {
	state := NewWorkState(entities)
	pipeline := NewEntityPipeline(driver, jitter.None)
	orchestrator := NewScrapeOrchestrator(pipeline, state)
	coordinator := NewRetryCoordinator(orchestrator, state, sink, maxAttempts)

	var backoffs []time.Duration
	coordinator.sleep = func(d time.Duration) { backoffs = append(backoffs, d) }
	return coordinator, state, &backoffs
}

func TestRunSingleEntitySinglePage(t *testing.T) {
	t.Parallel()

	driver := newFakeDriver()
	driver.sites["https://example.test/a"] = singlePageSite("1 Pier Rd",
		fragmentHTML("First", "July 1, 2019", "bubble_50", "a", ""),
		fragmentHTML("Second", "July 2, 2019", "bubble_40", "b", ""),
		fragmentHTML("Third", "July 3, 2019", "bubble_30", "c", ""),
	)
	sink := &fakeSink{}
	coordinator, _, _ := newCoordinator(driver, []entity.Entity{
		{Name: "A", Ranking: "1", URL: "https://example.test/a"},
	}, sink, 5)

	results, err := coordinator.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 committed entity, got %d", len(results))
	}
	got := results[0]
	if got.Name != "A" || got.Address != "1 Pier Rd" {
		t.Fatalf("unexpected result header: %+v", got)
	}
	if len(got.Reviews) != 3 {
		t.Fatalf("expected 3 reviews, got %d", len(got.Reviews))
	}
	for i, want := range []string{"First", "Second", "Third"} {
		if got.Reviews[i].Title != want {
			t.Fatalf("review %d: expected %q, got %q", i, want, got.Reviews[i].Title)
		}
	}
	if sink.flushes != 1 {
		t.Fatalf("expected exactly 1 flush, got %d", sink.flushes)
	}
}

func TestRunLanguageFilterTimeoutSkipsEntity(t *testing.T) {
	t.Parallel()

	driver := newFakeDriver()
	driver.sites["https://example.test/a"] = &fakeSite{
		address:    "1 Pier Rd",
		langFilter: false,
	}
	sink := &fakeSink{}
	coordinator, state, _ := newCoordinator(driver, []entity.Entity{
		{Name: "A", URL: "https://example.test/a"},
	}, sink, 5)

	results, err := coordinator.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("skipped entity must not be committed: %+v", results)
	}
	if len(state.Remaining()) != 1 {
		t.Fatalf("skipped entity must stay in the queue")
	}
	if sink.flushes != 1 {
		t.Fatalf("expected exactly 1 flush, got %d", sink.flushes)
	}
}

func TestRunRetryResumesWithRemainingEntities(t *testing.T) {
	t.Parallel()

	driver := newFakeDriver()
	driver.sites["https://example.test/a"] = singlePageSite("Addr A",
		fragmentHTML("RA", "July 1, 2019", "bubble_50", "a", ""))
	driver.sites["https://example.test/b"] = singlePageSite("Addr B",
		fragmentHTML("RB", "July 2, 2019", "bubble_40", "b", ""))
	driver.sites["https://example.test/c"] = singlePageSite("Addr C",
		fragmentHTML("RC", "July 3, 2019", "bubble_30", "c", ""))
	driver.navFailures["https://example.test/c"] = 1

	sink := &fakeSink{}
	coordinator, _, backoffs := newCoordinator(driver, []entity.Entity{
		{Name: "A", URL: "https://example.test/a"},
		{Name: "B", URL: "https://example.test/b"},
		{Name: "C", URL: "https://example.test/c"},
	}, sink, 5)

	results, err := coordinator.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 committed entities, got %d", len(results))
	}

	// A and B were committed on the first attempt and must not be revisited.
	if n := driver.countNavigations("https://example.test/a"); n != 1 {
		t.Fatalf("entity A navigated %d times, want 1", n)
	}
	if n := driver.countNavigations("https://example.test/b"); n != 1 {
		t.Fatalf("entity B navigated %d times, want 1", n)
	}
	if n := driver.countNavigations("https://example.test/c"); n != 2 {
		t.Fatalf("entity C navigated %d times, want 2", n)
	}

	if len(*backoffs) != 1 || (*backoffs)[0] != 3*time.Second {
		t.Fatalf("expected a single 3s backoff, got %v", *backoffs)
	}
	if sink.flushes != 1 {
		t.Fatalf("expected exactly 1 flush, got %d", sink.flushes)
	}
}

func TestRunExhaustionWritesSingleCheckpoint(t *testing.T) {
	t.Parallel()

	driver := newFakeDriver()
	driver.sites["https://example.test/a"] = singlePageSite("Addr A",
		fragmentHTML("RA", "July 1, 2019", "bubble_50", "a", ""))
	// B has no scripted site, so every navigation to it fails hard.

	sink := &fakeSink{}
	coordinator, _, backoffs := newCoordinator(driver, []entity.Entity{
		{Name: "A", URL: "https://example.test/a"},
		{Name: "B", URL: "https://example.test/b"},
	}, sink, 3)

	results, err := coordinator.Run(context.Background())
	if !errors.Is(err, ErrRetriesExhausted) {
		t.Fatalf("expected ErrRetriesExhausted, got %v", err)
	}

	if sink.flushes != 1 {
		t.Fatalf("checkpoint must be flushed exactly once, got %d", sink.flushes)
	}
	if len(results) != 1 || results[0].Name != "A" {
		t.Fatalf("checkpoint must hold only committed entities: %+v", results)
	}
	if len(sink.last) != 1 || sink.last[0].Name != "A" {
		t.Fatalf("flushed snapshot mismatch: %+v", sink.last)
	}

	want := []time.Duration{3 * time.Second, 9 * time.Second}
	if len(*backoffs) != len(want) {
		t.Fatalf("expected %d backoffs, got %v", len(want), *backoffs)
	}
	for i, d := range want {
		if (*backoffs)[i] != d {
			t.Fatalf("backoff %d: expected %v, got %v", i, d, (*backoffs)[i])
		}
	}
}
