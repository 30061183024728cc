package workbench

import (
	"strconv"
	"strings"

	"github.com/ethicic/workbench/internal/models"
)

// bulkImportSource tags exclusions created through bulk import.
const bulkImportSource = "bulk_import"

// ParseBulkLines parses bulk exclusion input, one "symbol,reason[,category_id]"
// row per line. Blank lines are skipped; malformed rows are reported with
// their 1-based line number instead of aborting the parse, since partial
// success is the expected outcome of a bulk import.
func ParseBulkLines(text string) ([]models.CreateExclusionRequest, []models.BulkRowError) {
	var (
		rows    []models.CreateExclusionRequest
		rowErrs []models.BulkRowError
	)

	for i, line := range strings.Split(strings.TrimSpace(text), "\n") {
		row := i + 1
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Split(line, ",")
		for j := range parts {
			parts[j] = strings.TrimSpace(parts[j])
		}

		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			rowErrs = append(rowErrs, models.BulkRowError{
				Row:   row,
				Error: ErrSymbolAndReasonRequired.Error(),
			})
			continue
		}

		req := models.CreateExclusionRequest{
			Symbol: parts[0],
			Reason: parts[1],
			Source: bulkImportSource,
		}
		if len(parts) >= 3 && parts[2] != "" {
			id, err := strconv.Atoi(parts[2])
			if err != nil {
				rowErrs = append(rowErrs, models.BulkRowError{
					Row:   row,
					Error: "invalid category_id: " + parts[2],
				})
				continue
			}
			req.CategoryID = &id
		}
		rows = append(rows, req)
	}

	return rows, rowErrs
}
