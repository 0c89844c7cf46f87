package models

// Column describes one column of a block.
type Column struct {
	// Key is unique within the owning block.
	Key string `json:"key"`
	// Label is the display text: header plus the spreadsheet column letter.
	Label string `json:"label"`
	// Header is the header text the label was derived from.
	Header string `json:"header"`
	// ColumnIndex is the 0-based sheet column.
	ColumnIndex int `json:"column_index"`
}

// Row maps column keys to cells. Columns absent from the map are empty.
type Row map[string]Cell

// Get returns the cell stored under key, or an empty cell.
func (r Row) Get(key string) Cell {
	if key == "" {
		return Cell{}
	}
	return r[key]
}

// BlockMeta records where a block was cut from its sheet.
type BlockMeta struct {
	StartCol       int `json:"start_col"`
	EndCol         int `json:"end_col"`
	HeaderStartRow int `json:"header_start_row"`
	HeaderRowsUsed int `json:"header_rows_used"`
}

// Block is a contiguous column range of a sheet treated as one table.
type Block struct {
	// ID identifies the block within its sheet.
	ID string `json:"block_id"`
	// RangeLabel is the spreadsheet column span, e.g. "A:E".
	RangeLabel string `json:"range_label"`
	// Columns are ordered left to right.
	Columns []Column `json:"columns"`
	// Rows excludes rows that are empty across the whole block.
	Rows []Row `json:"rows"`
	// Meta holds the sheet coordinates of the block.
	Meta BlockMeta `json:"meta"`
	// Score is the quality score assigned when the sheet had several blocks.
	Score float64 `json:"score"`
}

// Column returns the column with the given key.
func (b *Block) Column(key string) (Column, bool) {
	for _, c := range b.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// SampleRows returns at most n leading rows.
func (b *Block) SampleRows(n int) []Row {
	return SampleRows(b.Rows, n)
}

// SampleRows returns at most n leading rows of rows.
func SampleRows(rows []Row, n int) []Row {
	if n >= 0 && len(rows) > n {
		return rows[:n]
	}
	return rows
}
