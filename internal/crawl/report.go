package crawl

import "time"

// Outcome classifies how one candidate URL was handled.
type Outcome string

// Per-URL outcomes. Skips cover parser rejections (not a recipe page);
// failures cover fetch errors and unparsable markup. Neither aborts the
// crawl.
const (
	OutcomeOK      Outcome = "ok"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// Item records the outcome for one candidate URL.
type Item struct {
	URL     string  `json:"url"`
	Outcome Outcome `json:"outcome"`
	Error   string  `json:"error,omitempty"`
}

// Report summarizes a crawl: every candidate accounted for, with
// duplicates counted separately from skips.
type Report struct {
	Candidates int           `json:"candidates"`
	Succeeded  int           `json:"succeeded"`
	Skipped    int           `json:"skipped"`
	Failed     int           `json:"failed"`
	Duplicates int           `json:"duplicates"`
	Duration   time.Duration `json:"duration"`
	Items      []Item        `json:"items"`
}
