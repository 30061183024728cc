package workbench

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBulkLines(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		rows      int
		errorRows []int
	}{
		{
			name:  "well formed rows",
			input: "AAPL,privacy concerns\nXOM,fossil fuels,3",
			rows:  2,
		},
		{
			name:  "blank lines skipped silently",
			input: "\nAAPL,reason one\n\n\nMSFT,reason two\n",
			rows:  2,
		},
		{
			name:      "missing reason reported with row number",
			input:     "AAPL,good reason\nBADROW\nMSFT,another reason",
			rows:      2,
			errorRows: []int{2},
		},
		{
			name:      "empty symbol reported",
			input:     ",no symbol here",
			rows:      0,
			errorRows: []int{1},
		},
		{
			name:      "empty reason reported",
			input:     "AAPL,",
			rows:      0,
			errorRows: []int{1},
		},
		{
			name:      "bad category id reported",
			input:     "AAPL,reason,notanumber",
			rows:      0,
			errorRows: []int{1},
		},
		{
			name:  "whitespace trimmed per field",
			input: "  AAPL , some reason , 2  ",
			rows:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, rowErrs := ParseBulkLines(tt.input)
			assert.Len(t, rows, tt.rows)
			require.Len(t, rowErrs, len(tt.errorRows))
			for i, want := range tt.errorRows {
				assert.Equal(t, want, rowErrs[i].Row)
			}
		})
	}
}

func TestParseBulkLinesFields(t *testing.T) {
	rows, rowErrs := ParseBulkLines("AAPL, privacy concerns ,7")
	require.Empty(t, rowErrs)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "AAPL", row.Symbol)
	assert.Equal(t, "privacy concerns", row.Reason)
	assert.Equal(t, bulkImportSource, row.Source)
	require.NotNil(t, row.CategoryID)
	assert.Equal(t, 7, *row.CategoryID)
}

func TestParseBulkLinesRowNumbersCountBlankLines(t *testing.T) {
	// Row numbers reflect the original line numbering, including blanks, so
	// the analyst can find the offending line in their file.
	input := "AAPL,fine\n\nBROKEN\n"
	rows, rowErrs := ParseBulkLines(input)
	require.Len(t, rows, 1)
	require.Len(t, rowErrs, 1)
	assert.Equal(t, 3, rowErrs[0].Row)
	assert.Equal(t, ErrSymbolAndReasonRequired.Error(), rowErrs[0].Error)
}

func TestParseBulkLinesOptionalCategory(t *testing.T) {
	rows, rowErrs := ParseBulkLines("AAPL,reason only")
	require.Empty(t, rowErrs)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].CategoryID)
}

func TestParseBulkLinesEmpty(t *testing.T) {
	rows, rowErrs := ParseBulkLines("")
	assert.Empty(t, rows)
	assert.Empty(t, rowErrs)
}
