// Package universe provides pure, synchronous transforms over fetched
// security lists: substring filtering and key-selectable sorting. No network
// interaction and no hidden state; the same inputs always yield the same
// output.
package universe

import (
	"sort"
	"strings"

	"github.com/ethicic/workbench/internal/models"
)

// SortKey selects the comparator for SortBy.
type SortKey string

const (
	// SortBySymbol orders alphabetically by ticker symbol.
	SortBySymbol SortKey = "symbol"
	// SortByName orders alphabetically by company name.
	SortByName SortKey = "name"
	// SortByScore orders by tick score, highest first. Securities without a
	// score sort last; equal scores keep their original fetch order.
	SortByScore SortKey = "score"
)

// Filter returns the securities matching a case-insensitive substring query
// against symbol and name, and an exact sector match. Empty query or sector
// match everything. The input slice is never modified.
func Filter(list []models.Security, query, sector string) []models.Security {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Security, 0, len(list))
	for _, s := range list {
		if sector != "" && s.Sector != sector {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(s.Symbol), q) &&
			!strings.Contains(strings.ToLower(s.Name), q) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// SortBy returns a sorted copy of list. Sorting is stable: ties preserve the
// original fetch order.
func SortBy(list []models.Security, key SortKey) []models.Security {
	out := make([]models.Security, len(list))
	copy(out, list)

	switch key {
	case SortByName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
		})
	case SortByScore:
		sort.SliceStable(out, func(i, j int) bool {
			return scoreOf(out[i]) > scoreOf(out[j])
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Symbol < out[j].Symbol
		})
	}
	return out
}

func scoreOf(s models.Security) int {
	if s.TickScore == nil {
		return models.TickScoreMin - 1
	}
	return *s.TickScore
}
