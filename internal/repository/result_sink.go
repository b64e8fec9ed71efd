package repository

import "github.com/user/review-scraper/internal/entity"

// ResultSink receives the accumulated results exactly once per process
// execution, either at normal completion or at retry exhaustion.
type ResultSink interface {
	// Flush writes the snapshot as a single batch artifact.
	Flush(results []entity.EntityResult) error
}
