package repository

import "github.com/user/review-scraper/internal/entity"

// EntitySource loads the target list the run will work through.
type EntitySource interface {
	// Load parses the input list into entities with empty Address.
	Load() ([]entity.Entity, error)
}
