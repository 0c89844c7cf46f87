// Package parser turns raw exam sheets into typed tables with column roles.
package parser

import "fmt"

// Params holds every threshold used by the sheet heuristics.
type Params struct {
	// MergeFillRows bounds merge propagation to the leading rows.
	MergeFillRows int `yaml:"merge_fill_rows" envconfig:"MERGE_FILL_ROWS"`
	// HeaderScanRows is the window searched for the header row.
	HeaderScanRows int `yaml:"header_scan_rows" envconfig:"HEADER_SCAN_ROWS"`
	// HeaderKeywordBonus is added to a row score on a keyword hit.
	HeaderKeywordBonus int `yaml:"header_keyword_bonus" envconfig:"HEADER_KEYWORD_BONUS"`
	// TitleMinRunes is the length from which a lone cell is a title.
	TitleMinRunes int `yaml:"title_min_runes" envconfig:"TITLE_MIN_RUNES"`
	// HeaderMinCells is the minimum filled cells of a header without keywords.
	HeaderMinCells int `yaml:"header_min_cells" envconfig:"HEADER_MIN_CELLS"`

	DataRowNameRatio    float64 `yaml:"data_row_name_ratio" envconfig:"DATA_ROW_NAME_RATIO"`
	DataRowNumericRatio float64 `yaml:"data_row_numeric_ratio" envconfig:"DATA_ROW_NUMERIC_RATIO"`
	GroupRowSparseRatio float64 `yaml:"group_row_sparse_ratio" envconfig:"GROUP_ROW_SPARSE_RATIO"`
	SubRowDenseRatio    float64 `yaml:"sub_row_dense_ratio" envconfig:"SUB_ROW_DENSE_RATIO"`

	// MinBlockColumns drops narrower blocks as noise.
	MinBlockColumns int `yaml:"min_block_columns" envconfig:"MIN_BLOCK_COLUMNS"`
	// BlockSampleRows caps rows inspected when ranking blocks.
	BlockSampleRows int `yaml:"block_sample_rows" envconfig:"BLOCK_SAMPLE_ROWS"`
	// RoleSampleRows caps rows inspected when assigning column roles.
	RoleSampleRows int `yaml:"role_sample_rows" envconfig:"ROLE_SAMPLE_ROWS"`
	// ClassSampleRows caps rows inspected for the class column fill check.
	ClassSampleRows int `yaml:"class_sample_rows" envconfig:"CLASS_SAMPLE_ROWS"`
	// ClassFillRatioMin rejects class columns filled below this ratio.
	ClassFillRatioMin float64 `yaml:"class_fill_ratio_min" envconfig:"CLASS_FILL_RATIO_MIN"`

	NameMinScore    float64 `yaml:"name_min_score" envconfig:"NAME_MIN_SCORE"`
	TotalMinScore   float64 `yaml:"total_min_score" envconfig:"TOTAL_MIN_SCORE"`
	TotalScoreMax   float64 `yaml:"total_score_max" envconfig:"TOTAL_SCORE_MAX"`
	TotalIDValueMin float64 `yaml:"total_id_value_min" envconfig:"TOTAL_ID_VALUE_MIN"`

	// LowTotalValue, LowTotalRatio and LowTotalMinSamples drive the
	// rank-mistaken-for-total warning.
	LowTotalValue      float64 `yaml:"low_total_value" envconfig:"LOW_TOTAL_VALUE"`
	LowTotalRatio      float64 `yaml:"low_total_ratio" envconfig:"LOW_TOTAL_RATIO"`
	LowTotalMinSamples int     `yaml:"low_total_min_samples" envconfig:"LOW_TOTAL_MIN_SAMPLES"`
}

// DefaultParams returns the calibrated defaults.
func DefaultParams() Params {
	return Params{
		MergeFillRows:       30,
		HeaderScanRows:      18,
		HeaderKeywordBonus:  5,
		TitleMinRunes:       6,
		HeaderMinCells:      3,
		DataRowNameRatio:    0.25,
		DataRowNumericRatio: 0.6,
		GroupRowSparseRatio: 0.25,
		SubRowDenseRatio:    0.35,
		MinBlockColumns:     3,
		BlockSampleRows:     500,
		RoleSampleRows:      450,
		ClassSampleRows:     300,
		ClassFillRatioMin:   0.1,
		NameMinScore:        5,
		TotalMinScore:       10,
		TotalScoreMax:       1200,
		TotalIDValueMin:     100000,
		LowTotalValue:       20,
		LowTotalRatio:       0.7,
		LowTotalMinSamples:  10,
	}
}

// Validate rejects parameter sets the heuristics cannot run with.
func (p Params) Validate() error {
	for name, v := range map[string]int{
		"merge_fill_rows":   p.MergeFillRows,
		"header_scan_rows":  p.HeaderScanRows,
		"min_block_columns": p.MinBlockColumns,
		"block_sample_rows": p.BlockSampleRows,
		"role_sample_rows":  p.RoleSampleRows,
		"class_sample_rows": p.ClassSampleRows,
	} {
		if v <= 0 {
			return fmt.Errorf("parser: %s must be positive, got %d", name, v)
		}
	}
	for name, v := range map[string]float64{
		"data_row_name_ratio":    p.DataRowNameRatio,
		"data_row_numeric_ratio": p.DataRowNumericRatio,
		"group_row_sparse_ratio": p.GroupRowSparseRatio,
		"sub_row_dense_ratio":    p.SubRowDenseRatio,
		"class_fill_ratio_min":   p.ClassFillRatioMin,
		"low_total_ratio":        p.LowTotalRatio,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("parser: %s must be within [0,1], got %g", name, v)
		}
	}
	return nil
}
