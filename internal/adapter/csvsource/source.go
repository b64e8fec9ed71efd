package csvsource

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/user/review-scraper/internal/entity"
)

// Source loads the target list from a CSV file with a
// "Name,Ranking,Url" header row.
type Source struct {
	path string
}

func New(path string) *Source {
	return &Source{path: path}
}

// Load parses the file into entities with empty Address. A malformed header
// or row is an error; the run fails before any browsing starts.
func (s *Source) Load() ([]entity.Entity, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open input list: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse input list %s: %w", s.path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("input list %s is empty", s.path)
	}

	idx, err := columnIndex(records[0])
	if err != nil {
		return nil, fmt.Errorf("input list %s: %w", s.path, err)
	}

	entities := make([]entity.Entity, 0, len(records)-1)
	for i, rec := range records[1:] {
		e := entity.Entity{
			Name:    strings.TrimSpace(rec[idx.name]),
			Ranking: strings.TrimSpace(rec[idx.ranking]),
			URL:     strings.TrimSpace(rec[idx.url]),
		}
		if e.URL == "" {
			return nil, fmt.Errorf("input list %s: row %d has no url", s.path, i+2)
		}
		entities = append(entities, e)
	}
	return entities, nil
}

type columns struct {
	name, ranking, url int
}

func columnIndex(header []string) (columns, error) {
	idx := columns{name: -1, ranking: -1, url: -1}
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "name":
			idx.name = i
		case "ranking":
			idx.ranking = i
		case "url":
			idx.url = i
		}
	}
	if idx.name < 0 || idx.ranking < 0 || idx.url < 0 {
		return idx, fmt.Errorf("header must contain Name, Ranking and Url columns, got %v", header)
	}
	return idx, nil
}
