package parser

import "github.com/ukaji3/examgrid-go/pkg/examgrid/models"

// NormalizeMatrix pads rows to a rectangle and fills merged ranges whose top
// row lies within maxRows. Such a range is filled over its whole extent, but
// only its empty cells are written.
func NormalizeMatrix(rows [][]models.Cell, merges []models.MergeRange, maxRows int) [][]models.Cell {
	if len(rows) == 0 {
		return [][]models.Cell{}
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	grid := make([][]models.Cell, len(rows))
	for i, row := range rows {
		grid[i] = make([]models.Cell, width)
		copy(grid[i], row)
	}

	for _, m := range merges {
		if m.StartRow < 0 || m.StartCol < 0 || m.StartRow >= maxRows {
			continue
		}
		if m.StartRow >= len(grid) || m.StartCol >= width {
			continue
		}
		val := grid[m.StartRow][m.StartCol]
		if val.IsEmpty() {
			continue
		}
		for r := m.StartRow; r <= m.EndRow && r < len(grid); r++ {
			for c := m.StartCol; c <= m.EndCol && c < width; c++ {
				if grid[r][c].IsEmpty() {
					grid[r][c] = val
				}
			}
		}
	}

	return grid
}

// nonEmptyInRow counts filled cells of row within [c1, c2].
func nonEmptyInRow(row []models.Cell, c1, c2 int) int {
	cnt := 0
	for c := c1; c <= c2 && c < len(row); c++ {
		if !row[c].IsEmpty() {
			cnt++
		}
	}
	return cnt
}
