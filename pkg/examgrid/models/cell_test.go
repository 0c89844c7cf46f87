package models

import (
	"encoding/json"
	"testing"
)

func TestParseCell(t *testing.T) {
	tests := []struct {
		input    string
		kind     CellKind
		expected string
	}{
		{"123", CellNumeric, "123"},
		{" 98.5 ", CellNumeric, "98.5"},
		{"-100", CellNumeric, "-100"},
		{"张三", CellText, "张三"},
		{"  ", CellEmpty, ""},
		{"", CellEmpty, ""},
	}

	for _, tt := range tests {
		result := ParseCell(tt.input)
		if result.Kind != tt.kind || result.String() != tt.expected {
			t.Errorf("ParseCell(%q) = (%v, %q), expected (%v, %q)",
				tt.input, result.Kind, result.String(), tt.kind, tt.expected)
		}
	}
}

func TestCellNumber(t *testing.T) {
	tests := []struct {
		cell     Cell
		expected float64
		ok       bool
	}{
		{Numeric(42), 42, true},
		{Text("95分"), 95, true},
		{Text("1,234.5"), 1234.5, true},
		{Text("-3名"), -3, true},
		{Text("缺考"), 0, false},
		{Text("--"), 0, false},
		{Empty(), 0, false},
	}

	for _, tt := range tests {
		got, ok := tt.cell.Number()
		if got != tt.expected || ok != tt.ok {
			t.Errorf("%q.Number() = (%v, %v), expected (%v, %v)", tt.cell.Text, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestCellJSON(t *testing.T) {
	row := Row{"a": Numeric(1.5), "b": Text("x"), "c": Empty()}
	data, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"a":1.5,"b":"x","c":null}` {
		t.Errorf("unexpected JSON %s", data)
	}
}

func TestMetricText(t *testing.T) {
	for _, m := range Metrics() {
		text, err := m.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d): %v", m, err)
		}
		var back Metric
		if err := back.UnmarshalText(text); err != nil || back != m {
			t.Errorf("UnmarshalText(%q) = %v, %v; expected %v", text, back, err, m)
		}
	}
	if _, err := Metric(99).MarshalText(); err == nil {
		t.Error("expected error for unknown metric")
	}
}

func TestRecordStatus(t *testing.T) {
	rec := &ExamRecord{TotalCol: "total_3"}
	if rec.Status() != StatusUsable {
		t.Errorf("expected usable, got %s", rec.Status())
	}
	rec.TotalCol = ""
	if rec.Status() != StatusCaveats {
		t.Errorf("expected caveats, got %s", rec.Status())
	}
	rec.FatalErrors = []Diagnostic{{Code: CodeNoNameColumn}}
	if rec.Status() != StatusUnusable {
		t.Errorf("expected unusable, got %s", rec.Status())
	}
	rec.SetOverrideClass("  3 ")
	if rec.OverrideClass != "3" {
		t.Errorf("override not trimmed: %q", rec.OverrideClass)
	}
}
