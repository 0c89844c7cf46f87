package models

// SheetProvider materializes one sheet of a workbook.
type SheetProvider func(sheetName string) (*RawSheet, error)

// WorkbookSource is the input contract of the decoding collaborator: a file
// name, its ordered sheet names and a way to obtain each sheet's grid.
type WorkbookSource struct {
	// FileName is the workbook file name (no path).
	FileName string
	// SheetNames is the submission order of sheets.
	SheetNames []string
	// Provider returns the raw grid for a sheet name.
	Provider SheetProvider
}

// Failure records a file or sheet that could not be decoded.
type Failure struct {
	FileName  string `json:"file_name"`
	SheetName string `json:"sheet_name,omitempty"`
	Error     string `json:"error"`
}

// Batch is the ordered result of one import.
type Batch struct {
	// ID identifies the import run.
	ID string `json:"batch_id"`
	// Records keeps file then sheet submission order.
	Records []*ExamRecord `json:"records"`
	// Failures lists inputs that produced no record.
	Failures []Failure `json:"failures,omitempty"`
}

// Record looks a record up by its composite id.
func (b *Batch) Record(id string) (*ExamRecord, bool) {
	for _, r := range b.Records {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// Usable returns the records without fatal errors, in order.
func (b *Batch) Usable() []*ExamRecord {
	var out []*ExamRecord
	for _, r := range b.Records {
		if r.Usable() {
			out = append(out, r)
		}
	}
	return out
}
