package entity

// Entity is one scrape target (e.g. a restaurant). The URL is its identity:
// the work queue and the results map both key on it.
type Entity struct {
	Name    string `json:"Name"`
	Ranking string `json:"Ranking"`
	URL     string `json:"Url"`
	// Address is populated once during the pipeline's navigation step and
	// never mutated afterward.
	Address string `json:"Address"`
}
