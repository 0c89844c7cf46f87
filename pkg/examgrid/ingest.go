package examgrid

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/examgrid-go/pkg/examgrid/inference"
	"github.com/ukaji3/examgrid-go/pkg/examgrid/models"
	"github.com/ukaji3/examgrid-go/pkg/examgrid/parser"
	"github.com/ukaji3/examgrid-go/pkg/examgrid/source"
)

var genericSheetRe = regexp.MustCompile(`(?i)^(sheet|工作表)\s*\d*$`)

type sheetTask struct {
	file  int
	src   *models.WorkbookSource
	sheet string
}

type sheetOutcome struct {
	record *models.ExamRecord
	err    error
}

// Ingest runs the two-pass pipeline over the given workbooks. The first pass
// parses every sheet independently (in parallel, bounded by opts.Workers);
// the second pass infers classes once every sheet is done. Records keep file
// then sheet submission order. Decoding failures are reported in
// Batch.Failures; the returned error is only non-nil when ctx is cancelled.
func Ingest(ctx context.Context, sources []models.WorkbookSource, opts Options) (*models.Batch, error) {
	log := opts.logger()
	batch := &models.Batch{ID: uuid.NewString()}
	tracer := opts.Tracer
	if tracer == nil && opts.Logger != nil {
		tracer = NewZapTracer(opts.Logger)
	}
	p := parser.New(opts.Parser, tracer)
	engine := opts.Engine()

	var tasks []sheetTask
	perFile := make([]int, len(sources))
	for i := range sources {
		src := &sources[i]
		if src.Provider == nil {
			continue
		}
		for _, sheet := range src.SheetNames {
			if strings.TrimSpace(sheet) == InstructionsSheet {
				continue
			}
			tasks = append(tasks, sheetTask{file: i, src: src, sheet: sheet})
			perFile[i]++
		}
	}

	outcomes := make([]sheetOutcome, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}
	for i, task := range tasks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outcomes[i] = ingestSheet(p, engine, task)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := make([]int, len(sources))
	for k, o := range outcomes {
		if o.err != nil {
			failed[tasks[k].file]++
		}
	}

	for i, src := range sources {
		switch {
		case src.Provider == nil:
			batch.Failures = append(batch.Failures, failure(NewExtractionError(src.FileName, "", "decode", errors.New("no sheet provider"))))
		case perFile[i] == 0:
			batch.Failures = append(batch.Failures, failure(NewExtractionError(src.FileName, "", "decode", ErrNoSheets)))
		case failed[i] == perFile[i]:
			log.Warn("file could not be decoded", zap.String("file", src.FileName))
			batch.Failures = append(batch.Failures, failure(NewExtractionError(src.FileName, "", "decode",
				fmt.Errorf("none of %d sheets could be read", perFile[i]))))
		}
	}
	for k, o := range outcomes {
		task := tasks[k]
		if o.err != nil {
			if failed[task.file] < perFile[task.file] {
				log.Warn("sheet could not be decoded", zap.String("file", task.src.FileName), zap.String("sheet", task.sheet), zap.Error(o.err))
				batch.Failures = append(batch.Failures, failure(o.err))
			}
			continue
		}
		batch.Records = append(batch.Records, o.record)
	}

	if _, err := engine.Apply(ctx, batch.Records, opts.Workers); err != nil {
		return nil, err
	}

	log.Info("ingestion finished",
		zap.String("batch", batch.ID),
		zap.Int("files", len(sources)),
		zap.Int("records", len(batch.Records)),
		zap.Int("usable", len(batch.Usable())),
		zap.Int("failures", len(batch.Failures)))
	return batch, nil
}

func ingestSheet(p *parser.Parser, engine *inference.Engine, task sheetTask) sheetOutcome {
	raw, err := task.src.Provider(task.sheet)
	if err != nil {
		return sheetOutcome{err: NewExtractionError(task.src.FileName, task.sheet, "decode", err)}
	}
	if raw == nil {
		raw = &models.RawSheet{Name: task.sheet}
	}
	res := p.ParseSheet(raw)
	return sheetOutcome{record: newRecord(task.src.FileName, task.sheet, res, engine)}
}

func newRecord(fileName, sheetName string, res parser.SheetResult, engine *inference.Engine) *models.ExamRecord {
	rec := &models.ExamRecord{
		ID:            models.RecordID(fileName, sheetName),
		FileName:      fileName,
		SheetName:     sheetName,
		ExamName:      examName(fileName, sheetName),
		Blocks:        res.Blocks,
		BlockID:       res.BlockID,
		Columns:       []models.Column{},
		Rows:          []models.Row{},
		IDCol:         res.Roles.IDCol,
		NameCol:       res.Roles.NameCol,
		ClassCol:      res.Roles.ClassCol,
		TotalCol:      res.Roles.TotalCol,
		MetricCols:    res.Roles.MetricCols,
		InferredClass: models.ClassUnknown,
		FatalErrors:   append([]models.Diagnostic{}, res.FatalErrors...),
		Warnings:      append([]models.Diagnostic{}, res.Warnings...),
	}
	if rec.MetricCols == nil {
		rec.MetricCols = map[models.Metric]string{}
	}
	if b := res.Block(); b != nil {
		rec.Columns = b.Columns
		if b.Rows != nil {
			rec.Rows = b.Rows
		}
	}
	rec.Scope = engine.ColumnScope(rec)
	return rec
}

// examName falls back to the file stem for generic sheet names.
func examName(fileName, sheetName string) string {
	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	if sheetName == "" || sheetName == stem || genericSheetRe.MatchString(strings.TrimSpace(sheetName)) {
		return stem
	}
	return sheetName
}

func failure(err error) models.Failure {
	f := models.Failure{Error: err.Error()}
	var xerr *ExtractionError
	if errors.As(err, &xerr) {
		f.FileName, f.SheetName = xerr.FileName, xerr.SheetName
	}
	return f
}

// IngestPaths opens each path (.csv as a single sheet, anything else as
// xlsx) and ingests them as one batch. Files that cannot be opened are
// reported in Batch.Failures.
func IngestPaths(ctx context.Context, paths []string, opts Options) (*models.Batch, error) {
	log := opts.logger()
	var (
		sources  []models.WorkbookSource
		failures []models.Failure
	)
	for _, path := range paths {
		src, closeFn, err := openSource(path)
		if err != nil {
			log.Warn("cannot open input", zap.String("path", path), zap.Error(err))
			failures = append(failures, failure(NewExtractionError(filepath.Base(path), "", "open", err)))
			continue
		}
		if closeFn != nil {
			defer closeFn()
		}
		sources = append(sources, src)
	}

	batch, err := Ingest(ctx, sources, opts)
	if err != nil {
		return nil, err
	}
	batch.Failures = append(failures, batch.Failures...)
	return batch, nil
}

func openSource(path string) (models.WorkbookSource, func() error, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return models.WorkbookSource{}, nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		src, err := source.OpenCSV(path)
		if err != nil {
			return src, nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
		return src, nil, nil
	}
	wb, err := source.OpenWorkbook(path)
	if err != nil {
		return models.WorkbookSource{}, nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return wb.Source(), wb.Close, nil
}
