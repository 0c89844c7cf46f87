package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/examgrid-go/pkg/examgrid/models"
)

// validate derives fatal errors and warnings from a classification.
func (p *Parser) validate(block *models.Block, roles Roles) (fatal, warnings []models.Diagnostic) {
	if len(roles.NameHeaderCols) >= 2 {
		labels := make([]string, 0, len(roles.NameHeaderCols))
		for _, key := range roles.NameHeaderCols {
			if col, ok := block.Column(key); ok {
				labels = append(labels, col.Label)
			}
		}
		fatal = append(fatal, models.Diagnostic{
			Code:    models.CodeDuplicateNameColumns,
			Message: fmt.Sprintf("multiple name columns: %s", strings.Join(labels, ", ")),
		})
	} else if roles.NameCol == "" {
		fatal = append(fatal, models.Diagnostic{
			Code:    models.CodeNoNameColumn,
			Message: "no name column could be identified",
		})
	}

	if roles.RejectedClassCol != "" {
		col, _ := block.Column(roles.RejectedClassCol)
		warnings = append(warnings, models.Diagnostic{
			Code:    models.CodeEmptyClassColumn,
			Message: fmt.Sprintf("class column %s is nearly empty and was ignored", col.Label),
		})
	}

	if roles.TotalCol == "" {
		warnings = append(warnings, models.Diagnostic{
			Code:    models.CodeNoTotalColumn,
			Message: "no total score column identified",
		})
	} else if p.lowTotalValues(block, roles.TotalCol) {
		col, _ := block.Column(roles.TotalCol)
		warnings = append(warnings, models.Diagnostic{
			Code:    models.CodeSuspiciousTotal,
			Message: fmt.Sprintf("total column %s is mostly <= %g; it may be a rank column", col.Label, p.params.LowTotalValue),
		})
	}
	return fatal, warnings
}

// lowTotalValues reports whether most sampled totals are implausibly small.
func (p *Parser) lowTotalValues(block *models.Block, key string) bool {
	n, low := 0, 0
	for _, row := range block.SampleRows(p.params.RoleSampleRows) {
		v, ok := row.Get(key).Number()
		if !ok {
			continue
		}
		n++
		if v <= p.params.LowTotalValue {
			low++
		}
	}
	if n < p.params.LowTotalMinSamples {
		return false
	}
	return float64(low)/float64(n) >= p.params.LowTotalRatio
}
