// Package workbench provides sentinel errors for client-side validation.
package workbench

import "errors"

var (
	// ErrSymbolAndReasonRequired indicates an exclusion is missing its
	// required fields
	ErrSymbolAndReasonRequired = errors.New("symbol and reason are required")

	// ErrScoreOutOfRange indicates a tick score outside [-100, 100]
	ErrScoreOutOfRange = errors.New("tick score out of range")

	// ErrInvalidDecision indicates a review decision other than
	// approve/reject
	ErrInvalidDecision = errors.New("invalid review decision")

	// ErrInvalidExportFormat indicates an export format other than csv/json
	ErrInvalidExportFormat = errors.New("invalid export format")

	// ErrNoBulkRows indicates bulk input contained no usable rows
	ErrNoBulkRows = errors.New("no valid exclusions found in bulk data")

	// ErrReasonRequired indicates a quick exclusion toggle without a reason
	ErrReasonRequired = errors.New("a reason is required to exclude a security")

	// ErrInvalidPortfolio indicates a portfolio create without a name or
	// with a min_tick outside the tick score range
	ErrInvalidPortfolio = errors.New("portfolio needs a name and a min_tick within the tick range")
)
