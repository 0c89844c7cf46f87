package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/examgrid-go/pkg/examgrid/models"
)

const utf8BOM = "\ufeff"

// OpenCSV reads a CSV file as a single-sheet workbook named after the file
// stem.
func OpenCSV(path string) (models.WorkbookSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return models.WorkbookSource{}, err
	}
	defer f.Close()
	return ReadCSV(filepath.Base(path), f)
}

// ReadCSV reads CSV data from r. Ragged rows are accepted.
func ReadCSV(fileName string, r io.Reader) (models.WorkbookSource, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return models.WorkbookSource{}, fmt.Errorf("parse csv %s: %w", fileName, err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], utf8BOM)
	}

	sheetName := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	sheet := models.NewRawSheet(sheetName, rows, nil)
	return models.WorkbookSource{
		FileName:   fileName,
		SheetNames: []string{sheetName},
		Provider: func(name string) (*models.RawSheet, error) {
			if name != sheetName {
				return nil, fmt.Errorf("%w: csv %s has no sheet %q", ErrSheetNotFound, fileName, name)
			}
			return sheet, nil
		},
	}, nil
}
