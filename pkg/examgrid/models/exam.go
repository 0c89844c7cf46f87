package models

import "strings"

// Scope tells whether a sheet covers one class or a whole school or grade.
type Scope string

const (
	ScopeUnknown Scope = "unknown"
	ScopeClass   Scope = "class"
	ScopeSchool  Scope = "school"
)

// Reserved class labels.
const (
	// ClassUnknown means no class could be attributed.
	ClassUnknown = "unknown"
	// ClassSchoolWide marks a grade-level or merged roster.
	ClassSchoolWide = "school-wide"
)

// Status summarizes how a record may be consumed.
type Status string

const (
	StatusUsable   Status = "usable"
	StatusCaveats  Status = "caveats"
	StatusUnusable Status = "unusable"
)

// Diagnostic codes.
const (
	CodeDuplicateNameColumns = "duplicate_name_columns"
	CodeNoNameColumn         = "no_name_column"
	CodeNoTable              = "no_table"
	CodeSuspiciousTotal      = "suspicious_total_values"
	CodeEmptyClassColumn     = "empty_class_column"
	CodeNoTotalColumn        = "no_total_column"
)

// Diagnostic is a fatal error or warning attached to a record.
type Diagnostic struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ExamRecord is the structured result for one (file, sheet) pair.
type ExamRecord struct {
	ID        string `json:"id"`
	FileName  string `json:"file_name"`
	SheetName string `json:"sheet_name"`
	ExamName  string `json:"exam_name"`

	// Blocks holds every candidate block; their rows are not serialized.
	Blocks  []Block  `json:"-"`
	BlockID string   `json:"block_id,omitempty"`
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`

	IDCol      string            `json:"id_col,omitempty"`
	NameCol    string            `json:"name_col,omitempty"`
	ClassCol   string            `json:"class_col,omitempty"`
	TotalCol   string            `json:"total_col,omitempty"`
	MetricCols map[Metric]string `json:"metric_cols"`

	Scope         Scope  `json:"scope"`
	InferredClass string `json:"inferred_class"`
	OverrideClass string `json:"override_class,omitempty"`

	FatalErrors []Diagnostic `json:"fatal_errors"`
	Warnings    []Diagnostic `json:"warnings"`
}

// RecordID builds the composite record identifier.
func RecordID(fileName, sheetName string) string {
	return fileName + "::" + sheetName
}

// SetOverrideClass records a user-chosen class label. A blank label clears it.
func (r *ExamRecord) SetOverrideClass(label string) {
	r.OverrideClass = strings.TrimSpace(label)
}

// Usable reports whether the record has no fatal errors.
func (r *ExamRecord) Usable() bool { return len(r.FatalErrors) == 0 }

// Status classifies the record for downstream consumers.
func (r *ExamRecord) Status() Status {
	switch {
	case !r.Usable():
		return StatusUnusable
	case r.TotalCol == "":
		return StatusCaveats
	}
	return StatusUsable
}

// Block returns the chosen block.
func (r *ExamRecord) Block() (*Block, bool) {
	for i := range r.Blocks {
		if r.Blocks[i].ID == r.BlockID {
			return &r.Blocks[i], true
		}
	}
	return nil, false
}

// Column returns the column with the given key from the chosen block.
func (r *ExamRecord) Column(key string) (Column, bool) {
	for _, c := range r.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}
