package parser

import (
	"strings"

	"github.com/ukaji3/examgrid-go/pkg/examgrid/models"
)

// UnnamedLabel is given to columns with no header text.
const UnnamedLabel = "未命名"

// HeaderResult is the label set derived from the header window.
type HeaderResult struct {
	// StartRow is the first header row.
	StartRow int
	// RowsUsed is 1 or 2.
	RowsUsed int
	// Labels holds one label per matrix column.
	Labels []string
}

// DataStart returns the first row below the header.
func (h HeaderResult) DataStart() int { return h.StartRow + h.RowsUsed }

// LocateHeader picks the most plausible header row among the leading rows.
// Title rows (a single long cell) are never chosen; sparse rows are only
// considered when they carry a header keyword. Ties keep the earliest row.
func LocateHeader(grid [][]models.Cell, params Params) int {
	limit := params.HeaderScanRows
	if len(grid) < limit {
		limit = len(grid)
	}

	best, bestScore := 0, -1
	for r := 0; r < limit; r++ {
		row := grid[r]
		filled := 0
		var parts []string
		for _, c := range row {
			if c.IsEmpty() {
				continue
			}
			filled++
			parts = append(parts, c.Text)
		}
		if filled == 1 && runeLen(parts[0]) >= params.TitleMinRunes {
			continue
		}
		hit := containsAny(NormalizeHeader(strings.Join(parts, "")), headerKeywords)
		if filled < params.HeaderMinCells && !hit {
			continue
		}
		score := filled
		if hit {
			score += params.HeaderKeywordBonus
		}
		if score > bestScore {
			best, bestScore = r, score
		}
	}
	return best
}

// BuildHeader decides between a one- and two-row header starting at
// startRow and produces one label per column.
func BuildHeader(grid [][]models.Cell, startRow int, params Params) HeaderResult {
	res := HeaderResult{StartRow: startRow, RowsUsed: 1}
	if startRow >= len(grid) {
		return res
	}
	width := len(grid[startRow])
	top := grid[startRow]

	var sub []models.Cell
	if startRow+1 < len(grid) {
		sub = grid[startRow+1]
	}

	if isTwoRowHeader(top, sub, params) {
		res.RowsUsed = 2
		group := forwardFill(top)
		res.Labels = make([]string, width)
		for c := 0; c < width; c++ {
			res.Labels[c] = combineLabels(group[c].Text, cellAt(sub, c).Text)
		}
		return res
	}

	res.Labels = make([]string, width)
	for c := 0; c < width; c++ {
		res.Labels[c] = combineLabels(top[c].Text, "")
	}
	return res
}

func isTwoRowHeader(top, sub []models.Cell, params Params) bool {
	width := len(top)
	if width == 0 || len(sub) == 0 {
		return false
	}
	subFilled := nonEmptyInRow(sub, 0, width-1)
	if subFilled == 0 {
		return false
	}
	subHits := keywordHits(sub)

	if subHits == 0 && looksLikeDataRow(sub, subFilled, params) {
		return false
	}
	if subHits >= 1 || hasStrongTerm(sub) {
		return true
	}

	topFill := float64(nonEmptyInRow(top, 0, width-1)) / float64(width)
	subFill := float64(subFilled) / float64(width)
	topSparse := topFill <= params.GroupRowSparseRatio || keywordHits(top) >= 1
	return topSparse && subFill >= params.SubRowDenseRatio
}

// looksLikeDataRow detects a first data row sitting right under the header.
func looksLikeDataRow(row []models.Cell, filled int, params Params) bool {
	names, numbers := 0, 0
	for _, c := range row {
		if c.IsEmpty() {
			continue
		}
		if LooksLikePersonName(c.Text) {
			names++
		}
		if c.Kind == models.CellNumeric || looksLikeBareNumber(c.Text) {
			numbers++
		}
	}
	total := float64(filled)
	return float64(names)/total >= params.DataRowNameRatio ||
		float64(numbers)/total >= params.DataRowNumericRatio
}

// forwardFill spreads group labels right across empty cells.
func forwardFill(row []models.Cell) []models.Cell {
	out := make([]models.Cell, len(row))
	var last models.Cell
	for i, c := range row {
		if !c.IsEmpty() {
			last = c
		}
		out[i] = last
	}
	return out
}

func cellAt(row []models.Cell, c int) models.Cell {
	if c < 0 || c >= len(row) {
		return models.Cell{}
	}
	return row[c]
}

func combineLabels(group, sub string) string {
	group, sub = strings.TrimSpace(group), strings.TrimSpace(sub)
	switch {
	case group != "" && sub != "" && group != sub:
		return group + "_" + sub
	case sub != "":
		return sub
	case group != "":
		return group
	}
	return UnnamedLabel
}
