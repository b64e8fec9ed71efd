package usecase

import (
	"sync"

	"github.com/user/review-scraper/internal/entity"
)

// WorkState holds the remaining-work queue and the accumulated results map
// shared across retry attempts. Commit is atomic per entity: a key appears
// in the results iff the entity's full review extraction succeeded, and the
// entity leaves the queue in the same step.
//
// Single-writer discipline: only the orchestrator commits; the retry
// coordinator only snapshots.
type WorkState struct {
	mu        sync.Mutex
	remaining []entity.Entity
	results   map[string]entity.EntityResult
	order     []string
}

func NewWorkState(entities []entity.Entity) *WorkState {
	remaining := make([]entity.Entity, len(entities))
	copy(remaining, entities)
	return &WorkState{
		remaining: remaining,
		results:   make(map[string]entity.EntityResult),
	}
}

// Remaining returns a stable copy of the current queue.
func (s *WorkState) Remaining() []entity.Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Entity, len(s.remaining))
	copy(out, s.remaining)
	return out
}

// Commit records the entity's complete review list and removes the entity
// from the remaining queue. Each key is written exactly once; a repeated
// commit for the same URL is ignored.
func (s *WorkState) Commit(e entity.Entity, reviews []entity.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.results[e.URL]; !ok {
		s.results[e.URL] = entity.EntityResult{
			Name:    e.Name,
			Ranking: e.Ranking,
			URL:     e.URL,
			Address: e.Address,
			Reviews: reviews,
		}
		s.order = append(s.order, e.URL)
	}

	for i, rem := range s.remaining {
		if rem.URL == e.URL {
			s.remaining = append(s.remaining[:i], s.remaining[i+1:]...)
			break
		}
	}
}

// Snapshot returns a read-only copy of the results in commit order, for
// checkpointing or final output.
func (s *WorkState) Snapshot() []entity.EntityResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.EntityResult, 0, len(s.order))
	for _, url := range s.order {
		out = append(out, s.results[url])
	}
	return out
}
