package entity

// Review is one decoded review record. Immutable once constructed.
type Review struct {
	Title string `json:"title"`
	// Date keeps the raw display form from the page; it is not parsed into
	// a calendar type.
	Date   string `json:"date"`
	Text   string `json:"text"`
	Rating int    `json:"rating"` // 1..5
}

// EntityResult is one element of the output artifact: a committed entity
// together with its complete, ordered review list.
type EntityResult struct {
	Name    string   `json:"Name"`
	Ranking string   `json:"Ranking"`
	URL     string   `json:"Url"`
	Address string   `json:"Address"`
	Reviews []Review `json:"Reviews"`
}
