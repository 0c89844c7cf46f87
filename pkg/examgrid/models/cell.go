// Package models defines data structures for exam sheet ingestion.
package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// CellKind discriminates the three cell variants.
type CellKind uint8

const (
	// CellEmpty is a blank cell.
	CellEmpty CellKind = iota
	// CellNumeric is a cell whose whole text parses as a number.
	CellNumeric
	// CellText is any other non-blank cell.
	CellText
)

// Cell is a single spreadsheet value.
type Cell struct {
	// Kind selects which of Num and Text is meaningful.
	Kind CellKind
	// Num is the parsed value for numeric cells.
	Num float64
	// Text is the trimmed source text (set for numeric and text cells).
	Text string
}

// Empty returns a blank cell.
func Empty() Cell { return Cell{} }

// Numeric returns a numeric cell.
func Numeric(v float64) Cell {
	return Cell{Kind: CellNumeric, Num: v, Text: strconv.FormatFloat(v, 'f', -1, 64)}
}

// Text returns a text cell, or an empty cell when s is blank.
func Text(s string) Cell {
	s = strings.TrimSpace(s)
	if s == "" {
		return Cell{}
	}
	return Cell{Kind: CellText, Text: s}
}

// ParseCell classifies raw text from a decoded sheet.
func ParseCell(raw string) Cell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Cell{}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Cell{Kind: CellNumeric, Num: f, Text: s}
	}
	return Cell{Kind: CellText, Text: s}
}

// IsEmpty reports whether the cell is blank.
func (c Cell) IsEmpty() bool { return c.Kind == CellEmpty }

// String returns the display text of the cell.
func (c Cell) String() string { return c.Text }

// Number converts the cell to a number. Text cells are stripped of every
// character other than digits, '.' and '-' before conversion; a cell that
// yields no digits is not a number.
func (c Cell) Number() (float64, bool) {
	switch c.Kind {
	case CellNumeric:
		return c.Num, true
	case CellText:
		return ParseNumber(c.Text)
	}
	return 0, false
}

// ParseNumber applies the lenient numeric conversion used for score cells.
func ParseNumber(s string) (float64, bool) {
	digits := 0
	stripped := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9':
			digits++
			return r
		case r == '.' || r == '-':
			return r
		}
		return -1
	}, s)
	if digits == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// MarshalJSON encodes empty cells as null, numeric cells as numbers and
// text cells as strings.
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CellNumeric:
		return json.Marshal(c.Num)
	case CellText:
		return json.Marshal(c.Text)
	}
	return []byte("null"), nil
}

// UnmarshalJSON reverses MarshalJSON.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*c = Cell{}
	case float64:
		*c = Numeric(t)
	case string:
		*c = Text(t)
	default:
		*c = Text(string(data))
	}
	return nil
}
