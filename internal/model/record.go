package model

import "time"

// Fact is one categorized coverage item extracted from a single article's
// generated summary. Company, quarter, and publish date default to the
// article's values unless the originating line carried an explicit override.
type Fact struct {
	FactID         string   `json:"fact_id"`
	CategoryPath   string   `json:"category_path"`
	Section        string   `json:"section"`
	Subheading     string   `json:"subheading"`
	Company        string   `json:"company"`
	Quarter        string   `json:"quarter"`
	PublishedAt    Date     `json:"published_at"`
	ContentLine    string   `json:"content_line"`
	SummaryBullets []string `json:"summary_bullets"`
}

// Record is the persisted unit: one article's metadata plus the ordered,
// non-empty list of facts assembled from it, with ingest provenance.
// Records are append-only; they are never edited or deleted.
type Record struct {
	ID            string        `json:"id"`
	Company       string        `json:"company"`
	Quarter       string        `json:"quarter"`
	Title         string        `json:"title"`
	Source        string        `json:"source"`
	URL           string        `json:"url"`
	PublishedAt   Date          `json:"published_at"`
	CapturedAt    time.Time     `json:"captured_at"`
	IngestSource  string        `json:"ingest_source"`
	IngestVersion string        `json:"ingest_version"`
	CompanyMatch  MatchStrength `json:"company_match,omitempty"`
	Facts         []Fact        `json:"facts"`
}

// RunStatus represents the state of one article's pipeline run.
type RunStatus string

const (
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is one audit-trail row for a pipeline invocation.
type Run struct {
	ID         string    `json:"id"`
	ArticleURL string    `json:"article_url"`
	Company    string    `json:"company"`
	Quarter    string    `json:"quarter"`
	Status     RunStatus `json:"status"`
	Facts      int       `json:"facts"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
