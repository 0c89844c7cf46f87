package parser

import (
	"fmt"

	"github.com/ukaji3/examgrid-go/pkg/examgrid/models"
)

// Parser runs the per-sheet pipeline. It holds no mutable state and may be
// shared between goroutines.
type Parser struct {
	params Params
	tracer Tracer
}

// New creates a Parser. A nil tracer discards trace events.
func New(params Params, tracer Tracer) *Parser {
	if tracer == nil {
		tracer = NopTracer()
	}
	return &Parser{params: params, tracer: tracer}
}

// Params returns the thresholds in use.
func (p *Parser) Params() Params { return p.params }

// SheetResult is the outcome of parsing one sheet.
type SheetResult struct {
	// Blocks are all candidate tables of the sheet.
	Blocks []models.Block
	// BlockID is the chosen block, empty when no table was found.
	BlockID     string
	Roles       Roles
	FatalErrors []models.Diagnostic
	Warnings    []models.Diagnostic
}

// Block returns the chosen block.
func (r *SheetResult) Block() *models.Block {
	for i := range r.Blocks {
		if r.Blocks[i].ID == r.BlockID {
			return &r.Blocks[i]
		}
	}
	return nil
}

// ParseSheet normalizes the grid, locates and builds the header, splits
// blocks, picks the best block and classifies its columns.
func (p *Parser) ParseSheet(sheet *models.RawSheet) SheetResult {
	tr := p.sheetTrace(sheet.Name)

	grid := NormalizeMatrix(sheet.Rows, sheet.Merges, p.params.MergeFillRows)
	if len(grid) == 0 {
		return noTable("sheet is empty")
	}

	headerRow := LocateHeader(grid, p.params)
	header := BuildHeader(grid, headerRow, p.params)
	tr("header", "", float64(headerRow), fmt.Sprintf("rows_used=%d", header.RowsUsed))

	blocks := SplitBlocks(grid, header, p.params)
	if len(blocks) == 0 {
		return noTable(fmt.Sprintf("no table of at least %d columns found", p.params.MinBlockColumns))
	}

	chosen := 0
	if len(blocks) > 1 {
		chosen = p.selectBlock(blocks, tr)
	}
	block := &blocks[chosen]

	roles := p.classify(block, tr)
	fatal, warnings := p.validate(block, roles)
	return SheetResult{
		Blocks:      blocks,
		BlockID:     block.ID,
		Roles:       roles,
		FatalErrors: fatal,
		Warnings:    warnings,
	}
}

func noTable(msg string) SheetResult {
	return SheetResult{
		Roles:       Roles{MetricCols: map[models.Metric]string{}},
		FatalErrors: []models.Diagnostic{{Code: models.CodeNoTable, Message: msg}},
	}
}

func (p *Parser) sheetTrace(sheet string) traceFunc {
	return func(stage, column string, score float64, detail string) {
		p.tracer.Trace(TraceEvent{Sheet: sheet, Stage: stage, Column: column, Score: score, Detail: detail})
	}
}
