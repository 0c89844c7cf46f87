package examgrid

import (
	"errors"
	"fmt"

	"github.com/ukaji3/examgrid-go/pkg/examgrid/source"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a readable workbook.
var ErrInvalidFormat = errors.New("invalid workbook format")

// ErrNoSheets indicates a workbook without any ingestible sheet.
var ErrNoSheets = errors.New("no sheets to ingest")

// ErrSheetNotFound indicates a provider was asked for a sheet it lacks.
var ErrSheetNotFound = source.ErrSheetNotFound

// ExtractionError represents a decoding failure for a file or one sheet.
type ExtractionError struct {
	FileName  string
	SheetName string
	Component string // "open", "decode"
	Err       error
}

func (e *ExtractionError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("extraction error in file %q (%s): %v", e.FileName, e.Component, e.Err)
	}
	return fmt.Sprintf("extraction error in sheet %q of %q (%s): %v", e.SheetName, e.FileName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(fileName, sheetName, component string, err error) *ExtractionError {
	return &ExtractionError{
		FileName:  fileName,
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
