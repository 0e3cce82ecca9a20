package models

import "encoding/json"

// BatchOutcome is the result of scraping a single URL of a batch.
// Exactly one of Extracted or Error is meaningful: a failed URL carries an
// error description and no media.
type BatchOutcome struct {
	URL       string      `json:"url"`
	Extracted []MediaItem `json:"extracted,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// Failed reports whether the URL could not be scraped.
func (o BatchOutcome) Failed() bool {
	return o.Error != ""
}

// MarshalJSON emits either {url, error} or {url, extracted}. A page with no
// media still carries an empty extracted list.
func (o BatchOutcome) MarshalJSON() ([]byte, error) {
	if o.Failed() {
		return json.Marshal(struct {
			URL   string `json:"url"`
			Error string `json:"error"`
		}{o.URL, o.Error})
	}

	extracted := o.Extracted
	if extracted == nil {
		extracted = []MediaItem{}
	}
	return json.Marshal(struct {
		URL       string      `json:"url"`
		Extracted []MediaItem `json:"extracted"`
	}{o.URL, extracted})
}

// BatchResult aggregates the per-URL outcomes of one batch in input order.
type BatchResult struct {
	Outcomes       []BatchOutcome `json:"outcomes"`
	TotalExtracted int            `json:"totalExtracted"`
	FailedURLs     int            `json:"failedUrls"`
	Persisted      bool           `json:"persisted"`
}

// NewBatchResult builds a result from ordered outcomes and computes its counters.
func NewBatchResult(outcomes []BatchOutcome) *BatchResult {
	result := &BatchResult{Outcomes: outcomes}
	for _, o := range outcomes {
		if o.Failed() {
			result.FailedURLs++
			continue
		}
		result.TotalExtracted += len(o.Extracted)
	}
	return result
}

// Items flattens every successfully extracted item, preserving input order.
func (r *BatchResult) Items() []MediaItem {
	items := make([]MediaItem, 0, r.TotalExtracted)
	for _, o := range r.Outcomes {
		items = append(items, o.Extracted...)
	}
	return items
}

// Slice returns one page of the flattened extraction for immediate display,
// together with the total number of extracted items in the batch.
// A pageSize below 1 returns everything.
func (r *BatchResult) Slice(page, pageSize int) ([]MediaItem, int) {
	items := r.Items()
	total := len(items)
	if pageSize < 1 {
		return items, total
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	if start >= total {
		return []MediaItem{}, total
	}
	end := min(start+pageSize, total)
	return items[start:end], total
}

// AdoptStored replaces the extracted items with their stored versions.
// stored must be in Items() order.
func (r *BatchResult) AdoptStored(stored []MediaItem) {
	k := 0
	for i := range r.Outcomes {
		for j := range r.Outcomes[i].Extracted {
			if k >= len(stored) {
				return
			}
			r.Outcomes[i].Extracted[j] = stored[k]
			k++
		}
	}
}
