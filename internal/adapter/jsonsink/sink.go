package jsonsink

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/user/review-scraper/internal/entity"
)

// Sink writes the results snapshot as a single JSON array artifact.
type Sink struct {
	path string
}

func New(path string) *Sink {
	return &Sink{path: path}
}

// Flush writes the artifact atomically: a temp file in the target directory
// renamed into place, so a crash mid-write never leaves a torn artifact.
func (s *Sink) Flush(results []entity.EntityResult) error {
	if results == nil {
		results = []entity.EntityResult{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".results-*.json")
	if err != nil {
		return fmt.Errorf("create temp artifact: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("publish artifact: %w", err)
	}
	return nil
}
