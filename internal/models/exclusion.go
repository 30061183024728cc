package models

import "encoding/json"

// Exclusion bars a security from investable universes for a stated reason.
type Exclusion struct {
	ID               int             `json:"id"`
	Symbol           string          `json:"symbol"`
	CategoryName     string          `json:"category_name"`
	CategoryColor    string          `json:"category_color"`
	CategoryPriority int             `json:"category_priority"`
	Reason           string          `json:"reason"`
	ExcludedAt       string          `json:"excluded_at"`
	ExcludedBy       string          `json:"excluded_by"`
	ReviewedAt       string          `json:"reviewed_at,omitempty"`
	ReviewedBy       string          `json:"reviewed_by,omitempty"`
	IsActive         int             `json:"is_active"`
	Source           string          `json:"source"`
	Metadata         json.RawMessage `json:"metadata,omitempty"`
}

// ExclusionCategory is static reference data for grouping exclusions.
type ExclusionCategory struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Priority    int    `json:"priority"`
	Description string `json:"description,omitempty"`
}

// CreateExclusionRequest is the payload for creating a single exclusion.
type CreateExclusionRequest struct {
	Symbol     string `json:"symbol" validate:"required"`
	Reason     string `json:"reason" validate:"required"`
	CategoryID *int   `json:"category_id,omitempty"`
	Source     string `json:"source,omitempty"`
}

// CreateCategoryRequest is the payload for creating a category.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Color       string `json:"color" validate:"required"`
	Priority    int    `json:"priority"`
	Description string `json:"description,omitempty"`
}

// ExclusionFilter narrows an exclusions listing.
type ExclusionFilter struct {
	Symbol   string
	Category string
	IsActive *bool
	Limit    int
	Offset   int
}

// ReviewDecision is the outcome of reviewing an exclusion.
type ReviewDecision string

const (
	ReviewApprove ReviewDecision = "approve"
	ReviewReject  ReviewDecision = "reject"
)

// BulkRowError reports a rejected row from a bulk create, 1-based.
type BulkRowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// BulkResult summarises a bulk create: partial success is the normal case.
type BulkResult struct {
	Created int            `json:"created"`
	Errors  []BulkRowError `json:"errors"`
}

// ExclusionEvent is one entry in an exclusion's audit history.
type ExclusionEvent struct {
	Timestamp string          `json:"timestamp"`
	Action    string          `json:"action"`
	Actor     string          `json:"actor,omitempty"`
	Details   json.RawMessage `json:"details,omitempty"`
}

// ExportFormat selects the exclusions export encoding.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportJSON ExportFormat = "json"
)
