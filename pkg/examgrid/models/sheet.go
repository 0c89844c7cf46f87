package models

// MergeRange is a merged cell area with 0-based inclusive bounds.
type MergeRange struct {
	// StartRow is the top row of the range.
	StartRow int `json:"start_row"`
	// StartCol is the left column of the range.
	StartCol int `json:"start_col"`
	// EndRow is the bottom row of the range.
	EndRow int `json:"end_row"`
	// EndCol is the right column of the range.
	EndCol int `json:"end_col"`
}

// Contains reports whether the cell at (row, col) lies within the range.
func (m MergeRange) Contains(row, col int) bool {
	return row >= m.StartRow && row <= m.EndRow && col >= m.StartCol && col <= m.EndCol
}

// RawSheet is a decoded sheet as delivered by a workbook reader.
type RawSheet struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// Rows is the cell grid; rows may be ragged.
	Rows [][]Cell `json:"rows"`
	// Merges lists the merged cell ranges declared by the sheet.
	Merges []MergeRange `json:"merges,omitempty"`
}

// NewRawSheet builds a RawSheet from string rows as returned by most readers.
func NewRawSheet(name string, rows [][]string, merges []MergeRange) *RawSheet {
	grid := make([][]Cell, len(rows))
	for i, row := range rows {
		grid[i] = make([]Cell, len(row))
		for j, v := range row {
			grid[i][j] = ParseCell(v)
		}
	}
	return &RawSheet{Name: name, Rows: grid, Merges: merges}
}
