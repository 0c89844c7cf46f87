package parser

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/examgrid-go/pkg/examgrid/models"
)

// colRange is an inclusive 0-based column span.
type colRange struct{ start, end int }

func (r colRange) width() int { return r.end - r.start + 1 }

// SplitBlocks cuts the sheet into side-by-side tables. A column whose first
// two rows from the header start are empty separates blocks; runs of such
// columns form one cut. Ranges narrower than MinBlockColumns are dropped.
func SplitBlocks(grid [][]models.Cell, header HeaderResult, params Params) []models.Block {
	if header.StartRow >= len(grid) {
		return nil
	}
	width := len(grid[header.StartRow])

	var ranges []colRange
	start := -1
	for c := 0; c < width; c++ {
		if isSeparatorColumn(grid, header.StartRow, c) {
			if start >= 0 {
				ranges = append(ranges, colRange{start, c - 1})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = c
		}
	}
	if start >= 0 {
		ranges = append(ranges, colRange{start, width - 1})
	}

	var blocks []models.Block
	for _, rg := range ranges {
		if rg.width() < params.MinBlockColumns {
			continue
		}
		blocks = append(blocks, buildBlock(grid, header, rg, len(blocks)+1))
	}
	return blocks
}

func isSeparatorColumn(grid [][]models.Cell, startRow, c int) bool {
	for r := startRow; r < startRow+2 && r < len(grid); r++ {
		if !cellAt(grid[r], c).IsEmpty() {
			return false
		}
	}
	return true
}

func buildBlock(grid [][]models.Cell, header HeaderResult, rg colRange, seq int) models.Block {
	block := models.Block{
		ID:         "block-" + strconv.Itoa(seq),
		RangeLabel: columnLetter(rg.start) + ":" + columnLetter(rg.end),
		Meta: models.BlockMeta{
			StartCol:       rg.start,
			EndCol:         rg.end,
			HeaderStartRow: header.StartRow,
			HeaderRowsUsed: header.RowsUsed,
		},
	}

	for c := rg.start; c <= rg.end; c++ {
		label := UnnamedLabel
		if c < len(header.Labels) {
			label = header.Labels[c]
		}
		block.Columns = append(block.Columns, models.Column{
			Key:         columnKey(label, c),
			Label:       fmt.Sprintf("%s (%s)", label, columnLetter(c)),
			Header:      label,
			ColumnIndex: c,
		})
	}

	for r := header.DataStart(); r < len(grid); r++ {
		if nonEmptyInRow(grid[r], rg.start, rg.end) == 0 {
			continue
		}
		row := make(models.Row, len(block.Columns))
		for _, col := range block.Columns {
			if cell := cellAt(grid[r], col.ColumnIndex); !cell.IsEmpty() {
				row[col.Key] = cell
			}
		}
		block.Rows = append(block.Rows, row)
	}
	return block
}

// columnKey is unique per block because the column index is part of it.
func columnKey(label string, c int) string {
	norm := NormalizeHeader(label)
	if norm == "" {
		norm = "col"
	}
	return norm + "_" + strconv.Itoa(c)
}

// columnLetter converts a 0-based index to a spreadsheet column name.
func columnLetter(c int) string {
	name, err := excelize.ColumnNumberToName(c + 1)
	if err != nil {
		return strconv.Itoa(c + 1)
	}
	return name
}
