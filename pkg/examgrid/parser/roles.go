package parser

import (
	"fmt"

	"github.com/ukaji3/examgrid-go/pkg/examgrid/models"
)

// Roles is the semantic column assignment of a block. Empty keys mean the
// role is absent.
type Roles struct {
	IDCol      string
	NameCol    string
	ClassCol   string
	TotalCol   string
	MetricCols map[models.Metric]string

	// NameHeaderCols lists every column whose header alone reads as a name.
	NameHeaderCols []string
	// RejectedClassCol is a class column dropped for being nearly empty.
	RejectedClassCol string
}

type traceFunc func(stage, column string, score float64, detail string)

func normalizedHeaders(cols []models.Column) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = NormalizeHeader(c.Header)
	}
	return out
}

// classify assigns column roles over a sampled window of the block.
func (p *Parser) classify(block *models.Block, tr traceFunc) Roles {
	cols := block.Columns
	norms := normalizedHeaders(cols)
	sample := block.SampleRows(p.params.RoleSampleRows)

	var roles Roles
	for i, h := range norms {
		if roles.IDCol == "" && isIDHeader(h) {
			roles.IDCol = cols[i].Key
		}
		if isNameHeader(h) {
			roles.NameHeaderCols = append(roles.NameHeaderCols, cols[i].Key)
		}
	}

	if len(roles.NameHeaderCols) < 2 {
		roles.NameCol = p.guessNameColumn(cols, norms, sample, tr)
	} else {
		tr("name", "", float64(len(roles.NameHeaderCols)), "ambiguous name headers")
	}

	roles.ClassCol = guessClassColumn(cols, norms)
	if roles.ClassCol != "" && !p.classColumnFilled(block, roles.ClassCol, roles.NameCol) {
		tr("class", roles.ClassCol, 0, "rejected: functionally empty")
		roles.RejectedClassCol = roles.ClassCol
		roles.ClassCol = ""
	}

	roles.TotalCol = p.guessTotalColumn(cols, norms, sample, tr)
	roles.MetricCols = detectMetrics(cols, norms, roles.TotalCol)
	return roles
}

// guessNameColumn scores header evidence (+6) and the share of sampled values
// that look like personal names (up to +10). Columns headed as another role
// only compete through their header.
func (p *Parser) guessNameColumn(cols []models.Column, norms []string, sample []models.Row, tr traceFunc) string {
	best, bestScore, bestHeader := "", 0.0, false
	for i, col := range cols {
		h := norms[i]
		header := isNameHeader(h)
		if !header && (isIdentityHeader(h) || isRankHeader(h) || isTotalHeader(h) || isMetricHeader(h)) {
			continue
		}

		score := 0.0
		if header {
			score += 6
		}
		filled, names := 0, 0
		for _, row := range sample {
			cell := row.Get(col.Key)
			if cell.IsEmpty() {
				continue
			}
			filled++
			if LooksLikePersonName(cell.Text) {
				names++
			}
		}
		if filled > 0 {
			score += 10 * float64(names) / float64(filled)
		}
		if !header && score < p.params.NameMinScore {
			continue
		}
		tr("name", col.Key, score, "")

		if best == "" || score > bestScore || (score == bestScore && header && !bestHeader) {
			best, bestScore, bestHeader = col.Key, score, header
		}
	}
	return best
}

// guessClassColumn prefers canonical class headers over looser matches.
func guessClassColumn(cols []models.Column, norms []string) string {
	for i, h := range norms {
		if isClassHeaderExact(h) {
			return cols[i].Key
		}
	}
	for i, h := range norms {
		if isClassHeaderLoose(h) {
			return cols[i].Key
		}
	}
	return ""
}

// classColumnFilled checks the class column against rows that carry a name
// (all sampled rows when no name column exists).
func (p *Parser) classColumnFilled(block *models.Block, classKey, nameKey string) bool {
	considered, filled := 0, 0
	for _, row := range block.SampleRows(p.params.ClassSampleRows) {
		if nameKey != "" && row.Get(nameKey).IsEmpty() {
			continue
		}
		considered++
		if !row.Get(classKey).IsEmpty() {
			filled++
		}
	}
	if considered == 0 {
		return true
	}
	return float64(filled)/float64(considered) >= p.params.ClassFillRatioMin
}

// scoreTotalColumn rates how likely a column holds raw total scores.
func (p *Parser) scoreTotalColumn(norm, key string, sample []models.Row) float64 {
	if isRankHeader(norm) || isIdentityHeader(norm) {
		return -9999
	}
	score := 0.0
	if isTotalHeader(norm) {
		score += 20
	}
	if containsAny(norm, scaledWords) {
		score -= 50
	}

	values, numeric, inRange, huge := 0, 0, 0, 0
	for _, row := range sample {
		cell := row.Get(key)
		if cell.IsEmpty() {
			continue
		}
		values++
		v, ok := cell.Number()
		if !ok {
			continue
		}
		numeric++
		if v >= 0 && v <= p.params.TotalScoreMax {
			inRange++
		}
		if v >= p.params.TotalIDValueMin {
			huge++
		}
	}
	if values == 0 {
		return -50
	}
	n := float64(values)
	score += 5 * float64(numeric) / n
	score += 30 * float64(inRange) / n
	score -= 200 * float64(huge) / n
	return score
}

// guessTotalColumn returns the best scoring column, or "" when no column
// reaches TotalMinScore.
func (p *Parser) guessTotalColumn(cols []models.Column, norms []string, sample []models.Row, tr traceFunc) string {
	best, bestScore := "", 0.0
	for i, col := range cols {
		score := p.scoreTotalColumn(norms[i], col.Key, sample)
		tr("total", col.Key, score, "")
		if score <= -9999 {
			continue
		}
		if best == "" || score > bestScore {
			best, bestScore = col.Key, score
		}
	}
	if best == "" || bestScore < p.params.TotalMinScore {
		if best != "" {
			tr("total", best, bestScore, fmt.Sprintf("below threshold %g", p.params.TotalMinScore))
		}
		return ""
	}
	return best
}

func isMetricHeader(h string) bool {
	for _, m := range models.Metrics() {
		if containsAny(h, m.Info().Keywords) {
			return true
		}
	}
	return false
}

// detectMetrics binds metrics to columns, first match per metric wins in
// column order. The total metric follows the guarded total column.
func detectMetrics(cols []models.Column, norms []string, totalCol string) map[models.Metric]string {
	out := make(map[models.Metric]string)
	if totalCol != "" {
		out[models.MetricTotal] = totalCol
	}
	for i, col := range cols {
		h := norms[i]
		if isIdentityHeader(h) {
			continue
		}
		for _, m := range models.Metrics() {
			if _, done := out[m]; done || m == models.MetricTotal {
				continue
			}
			var ok bool
			switch m {
			case models.MetricClassRank:
				ok = isClassRankHeader(h)
			case models.MetricSchoolRank:
				ok = isSchoolRankHeader(h)
			default:
				ok = !isRankHeader(h) && containsAny(h, m.Info().Keywords)
			}
			if ok {
				out[m] = col.Key
				break
			}
		}
	}
	return out
}
