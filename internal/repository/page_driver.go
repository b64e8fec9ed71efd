package repository

import (
	"context"
	"time"
)

// PageDriver is the capability contract over one remotely controlled browser
// page. The scraping core consumes this interface only; it never owns the
// browser lifecycle and never sees the automation library's object model.
//
// Bounded waits are soft: a timeout is reported through the boolean result,
// not through the error. Errors are reserved for genuine driver failures.
type PageDriver interface {
	// Navigate loads the URL and waits for the document to be ready.
	Navigate(ctx context.Context, url string) error
	// WaitVisible waits up to timeout for sel to become visible.
	// Expiry yields (false, nil).
	WaitVisible(ctx context.Context, sel string, timeout time.Duration) (bool, error)
	// WaitHidden waits up to timeout for sel to disappear.
	// Expiry yields (false, nil).
	WaitHidden(ctx context.Context, sel string, timeout time.Duration) (bool, error)
	// Exists reports whether at least one element matches sel right now.
	Exists(ctx context.Context, sel string) (bool, error)
	// Click clicks the first element matching sel.
	Click(ctx context.Context, sel string) error
	// Text returns the visible text of the first element matching sel.
	Text(ctx context.Context, sel string) (string, error)
	// Attribute reads an attribute of the first element matching sel.
	// A missing element or attribute yields ("", false, nil).
	Attribute(ctx context.Context, sel, name string) (string, bool, error)
	// OuterHTML returns the outer HTML of the first element matching sel.
	OuterHTML(ctx context.Context, sel string) (string, error)
	// Evaluate runs an inline script on the page, unmarshaling its result
	// into out when out is non-nil.
	Evaluate(ctx context.Context, script string, out interface{}) error
	// Sleep suspends the caller for d alongside the page session.
	Sleep(ctx context.Context, d time.Duration) error
}
