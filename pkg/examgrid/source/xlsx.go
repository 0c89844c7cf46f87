// Package source decodes workbook files into the grids consumed by the
// ingestion pipeline.
package source

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/examgrid-go/pkg/examgrid/models"
)

// ErrSheetNotFound is returned by providers asked for a sheet the workbook
// does not contain.
var ErrSheetNotFound = errors.New("sheet not found")

// Workbook is an open xlsx file. Sheets are read on demand; reads are
// serialized so the provider can be called from several goroutines.
type Workbook struct {
	name string
	mu   sync.Mutex
	f    *excelize.File
}

// OpenWorkbook opens an xlsx file from disk.
func OpenWorkbook(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return &Workbook{name: filepath.Base(path), f: f}, nil
}

// OpenWorkbookReader opens an xlsx stream, e.g. an uploaded file body.
func OpenWorkbookReader(fileName string, r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	return &Workbook{name: fileName, f: f}, nil
}

// Close releases the underlying file.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// Source returns the workbook as an ingestion input.
func (w *Workbook) Source() models.WorkbookSource {
	return models.WorkbookSource{
		FileName:   w.name,
		SheetNames: w.f.GetSheetList(),
		Provider:   w.ReadSheet,
	}
}

// ReadSheet returns the cell grid and merge ranges of a sheet.
func (w *Workbook) ReadSheet(sheetName string) (*models.RawSheet, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if idx, err := w.f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheetName)
	}
	rows, err := w.f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read rows of %q: %w", sheetName, err)
	}
	mergeCells, err := w.f.GetMergeCells(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read merges of %q: %w", sheetName, err)
	}

	merges := make([]models.MergeRange, 0, len(mergeCells))
	for _, mc := range mergeCells {
		if m, ok := parseMergeRange(mc.GetStartAxis(), mc.GetEndAxis()); ok {
			merges = append(merges, m)
		}
	}
	return models.NewRawSheet(sheetName, rows, merges), nil
}

// ParseRange parses a reference like "$A$1:$C$2" into a 0-based merge range.
func ParseRange(ref string) (models.MergeRange, bool) {
	ref = strings.ReplaceAll(ref, "$", "")
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		ref = ref[idx+1:]
	}
	parts := strings.Split(ref, ":")
	if len(parts) != 2 {
		return models.MergeRange{}, false
	}
	return parseMergeRange(parts[0], parts[1])
}

func parseMergeRange(start, end string) (models.MergeRange, bool) {
	startCol, startRow, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return models.MergeRange{}, false
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return models.MergeRange{}, false
	}
	return models.MergeRange{
		StartRow: startRow - 1,
		StartCol: startCol - 1,
		EndRow:   endRow - 1,
		EndCol:   endCol - 1,
	}, true
}
