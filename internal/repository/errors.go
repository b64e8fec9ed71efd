package repository

import "errors"

// Hard-failure taxonomy. Soft absences (consent banner, language filter,
// next-page control) never surface as errors; they are boolean outcomes on
// the PageDriver contract.
var (
	// ErrNavigationFailed marks a page load that did not complete.
	ErrNavigationFailed = errors.New("navigation failed")
	// ErrExtractionFailed marks a fragment or element missing an expected
	// sub-element or attribute.
	ErrExtractionFailed = errors.New("extraction failed")
)
