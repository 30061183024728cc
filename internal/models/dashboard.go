package models

// Read-mostly analytics payloads for the exclusions dashboard, served under
// /api/exclusions/workbench. Shapes are pinned to the deployed backend
// contract; see DESIGN.md for the drift resolution.

// DashboardStats are the headline counts on the dashboard.
type DashboardStats struct {
	Companies  int `json:"companies"`
	Exclusions int `json:"exclusions"`
	Sources    int `json:"sources"`
	Categories int `json:"categories"`
}

// LogEntry is a recent ingestion log line.
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
	Message   string `json:"message"`
}

// CategoryData aggregates exclusion counts per category, with optional
// analyst guidance attached.
type CategoryData struct {
	Category    string   `json:"category"`
	Companies   int      `json:"companies"`
	Exclusions  int      `json:"exclusions"`
	Sources     int      `json:"sources"`
	Description string   `json:"description,omitempty"`
	AIGuidance  string   `json:"ai_guidance,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Examples    string   `json:"examples,omitempty"`
	PolicyLink  string   `json:"policy_link,omitempty"`
}

// CategoryOverlap lists companies excluded under multiple categories.
type CategoryOverlap struct {
	Company       string `json:"company"`
	CategoryCount int    `json:"category_count"`
	Categories    string `json:"categories"`
}

// CategoriesReport combines per-category aggregates with overlaps.
type CategoriesReport struct {
	Categories []CategoryData    `json:"categories"`
	Overlaps   []CategoryOverlap `json:"overlaps"`
}

// SourceMapping describes how an upstream data source maps onto a category.
type SourceMapping struct {
	Source       string  `json:"source"`
	Category     string  `json:"category"`
	MappedType   string  `json:"mapped_type"`
	MappedReason string  `json:"mapped_reason"`
	Confidence   float64 `json:"confidence"`
	Usage        int     `json:"usage"`
}

// Duplicate flags companies excluded more than once for the same reason.
type Duplicate struct {
	Company string `json:"company"`
	Reason  string `json:"reason"`
	Count   int    `json:"count"`
	Sources string `json:"sources"`
}

// Completeness reports field fill rates across the exclusions dataset.
type Completeness struct {
	Metric     string  `json:"metric"`
	WithValue  int     `json:"with_value"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// DataQualityReport combines duplicate and completeness checks.
type DataQualityReport struct {
	Duplicates   []Duplicate    `json:"duplicates"`
	Completeness []Completeness `json:"completeness"`
}

// SharadarSummary totals the match between exclusions and the Sharadar ticker
// universe.
type SharadarSummary struct {
	TotalExclusions     int     `json:"total_exclusions"`
	TotalSharadar       int     `json:"total_sharadar"`
	MatchedExclusions   int     `json:"matched_exclusions"`
	MatchRate           float64 `json:"match_rate"`
	UnmatchedExclusions int     `json:"unmatched_exclusions"`
}

// CategoryCoverage is the Sharadar match rate for one category.
type CategoryCoverage struct {
	Category      string  `json:"category"`
	Matched       int     `json:"matched"`
	Total         int     `json:"total"`
	Rate          float64 `json:"rate"`
	WithMarketCap int     `json:"with_market_cap"`
}

// TopMatch is a matched excluded company with Sharadar metadata.
type TopMatch struct {
	Ticker    string `json:"ticker"`
	Company   string `json:"company"`
	Sector    string `json:"sector"`
	Category  string `json:"category"`
	MarketCap string `json:"market_cap"`
}

// UnmatchedCompany is an excluded company with no Sharadar match.
type UnmatchedCompany struct {
	Company  string `json:"company"`
	Category string `json:"category"`
}

// SharadarCoverageReport is the full Sharadar coverage payload.
type SharadarCoverageReport struct {
	Summary          SharadarSummary    `json:"summary"`
	CategoryCoverage []CategoryCoverage `json:"category_coverage"`
	TopMatches       []TopMatch         `json:"top_matches"`
	UnmatchedSample  []UnmatchedCompany `json:"unmatched_sample"`
	UnmatchedTotal   int                `json:"unmatched_total"`
}

// IngestionLog is one ingestion run of an upstream source.
type IngestionLog struct {
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Source       string `json:"source"`
	Processed    int    `json:"processed"`
	Added        int    `json:"added"`
	Updated      int    `json:"updated"`
	Skipped      int    `json:"skipped"`
	Errors       int    `json:"errors"`
	Status       string `json:"status"`
	ErrorDetails string `json:"error_details,omitempty"`
}

// IngestionLogsReport splits recent runs from failed ones.
type IngestionLogsReport struct {
	Logs      []IngestionLog `json:"logs"`
	ErrorLogs []IngestionLog `json:"error_logs"`
}

// CategoryGuidance is the editable analyst guidance for a category.
type CategoryGuidance struct {
	Category   string   `json:"category"`
	AIGuidance string   `json:"ai_guidance,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
	Examples   string   `json:"examples,omitempty"`
	PolicyLink string   `json:"policy_link,omitempty"`
}
