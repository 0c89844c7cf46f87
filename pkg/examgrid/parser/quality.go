package parser

import "github.com/ukaji3/examgrid-go/pkg/examgrid/models"

// scoreBlock rates how strongly a block resembles a student score table.
func (p *Parser) scoreBlock(b *models.Block, tr traceFunc) float64 {
	if len(b.Columns) == 0 || len(b.Rows) == 0 {
		return -999
	}
	norms := normalizedHeaders(b.Columns)

	score := 0.0
	hasName, hasTotal := false, false
	for _, h := range norms {
		hasName = hasName || containsAny(h, nameKeywords)
		hasTotal = hasTotal || isTotalHeader(h)
	}
	if hasName {
		score += 15
	}
	if hasTotal {
		score += 15
	}

	sample := b.SampleRows(p.params.BlockSampleRows)
	nameKey := p.guessNameColumn(b.Columns, norms, sample, tr)
	totalKey := p.guessTotalColumn(b.Columns, norms, sample, tr)
	if len(sample) > 0 {
		names, totals := 0, 0
		for _, row := range sample {
			if nameKey != "" && LooksLikePersonName(row.Get(nameKey).Text) {
				names++
			}
			if totalKey != "" {
				if _, ok := row.Get(totalKey).Number(); ok {
					totals++
				}
			}
		}
		n := float64(len(sample))
		score += 20 * float64(names) / n
		score += 15 * float64(totals) / n
	}

	switch {
	case len(b.Columns) >= 6:
		score += 3
	case len(b.Columns) < 4:
		score -= 10
	}
	return score
}

// selectBlock scores every block in place and returns the index of the best
// one. Ties keep the leftmost block.
func (p *Parser) selectBlock(blocks []models.Block, tr traceFunc) int {
	best := 0
	for i := range blocks {
		blocks[i].Score = p.scoreBlock(&blocks[i], tr)
		tr("block", blocks[i].ID, blocks[i].Score, blocks[i].RangeLabel)
		if blocks[i].Score > blocks[best].Score {
			best = i
		}
	}
	return best
}
