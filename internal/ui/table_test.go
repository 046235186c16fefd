package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestTable_ColumnWidths(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Title", "Category"},
		Rows: [][]string{
			{"1", "Buy milk", "Home"},
			{"12", "Prepare quarterly report", "Work"},
		},
	}

	widths := table.ColumnWidths()

	assert.Equal(t, 2, widths[0])  // header "ID" is widest
	assert.Equal(t, 24, widths[1]) // "Prepare quarterly report"
	assert.Equal(t, 8, widths[2])  // header "Category"
}

func TestTable_ColumnWidths_MaxWidth(t *testing.T) {
	table := &Table{
		Headers:  []string{"ID", "Title"},
		Rows:     [][]string{{"1", "This is a very long title that should be truncated"}},
		MaxWidth: 20,
	}

	widths := table.ColumnWidths()

	assert.Equal(t, 2, widths[0])
	assert.Equal(t, 20, widths[1])
}

func TestTable_ColumnWidths_Wide(t *testing.T) {
	table := &Table{
		Headers: []string{"T"},
		Rows:    [][]string{{"✓ done"}},
	}
	assert.Equal(t, 6, table.ColumnWidths()[0])
}

func TestTable_Render(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Title"},
		Rows: [][]string{
			{"1", "Buy milk"},
			{"2", "Walk dog"},
		},
	}

	output := table.Render()

	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "Title")
	assert.Contains(t, output, "Buy milk")
	assert.Contains(t, output, "Walk dog")
	assert.Contains(t, output, "─")
}

func TestTable_Render_Empty(t *testing.T) {
	table := &Table{}
	assert.Empty(t, table.Render())
}

func TestTable_Render_Truncation(t *testing.T) {
	table := &Table{
		Headers:  []string{"Text"},
		Rows:     [][]string{{"This is way too long"}},
		MaxWidth: 10,
	}

	assert.Contains(t, table.Render(), "…")
}

func TestTable_Render_CellStyles(t *testing.T) {
	called := 0
	table := &Table{
		Headers: []string{"ID", "Priority"},
		Rows:    [][]string{{"1", "High"}, {"2", "Low"}},
		Styles: func(row, col int) *lipgloss.Style {
			called++
			return nil
		},
	}

	output := table.Render()
	assert.Equal(t, 4, called)
	assert.Contains(t, output, "High")
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"abcdef", 10, "abcdef"},
		{"abcdef", 4, "abc…"},
		{"abcdef", 1, "…"},
		{"", 3, ""},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, truncate(tc.input, tc.width))
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"abc", 5, "abc  "},
		{"hello", 5, "hello"},
		{"longer", 3, "longer"},
		{"", 3, "   "},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, padRight(tc.input, tc.width))
	}
}

func TestTable_Render_RowsHaveFewerColumns(t *testing.T) {
	table := &Table{
		Headers: []string{"ID", "Title", "Status"},
		Rows: [][]string{
			{"1", "Buy milk"}, // Missing Status column
		},
	}

	output := table.Render()

	assert.Contains(t, output, "ID")
	assert.Contains(t, output, "Buy milk")
	lines := strings.Split(strings.TrimSpace(output), "\n")
	assert.Equal(t, 3, len(lines))
}
