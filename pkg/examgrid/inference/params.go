// Package inference attributes classes to exam sheets that lack a usable
// class column, using names seen on sheets that have one.
package inference

import "fmt"

// Params holds the voting thresholds.
type Params struct {
	// NameSample is the number of distinct names polled per sheet.
	NameSample int `yaml:"name_sample" envconfig:"NAME_SAMPLE"`
	// MinContributors is the minimum number of names with known classes.
	MinContributors int `yaml:"min_contributors" envconfig:"MIN_CONTRIBUTORS"`
	// AssignRatio is the vote share needed to assign the best class.
	AssignRatio float64 `yaml:"assign_ratio" envconfig:"ASSIGN_RATIO"`
	// SchoolWideRatio and SchoolWideMinRows classify large rosters with
	// scattered votes as school-wide.
	SchoolWideRatio   float64 `yaml:"school_wide_ratio" envconfig:"SCHOOL_WIDE_RATIO"`
	SchoolWideMinRows int     `yaml:"school_wide_min_rows" envconfig:"SCHOOL_WIDE_MIN_ROWS"`
	// ClassSampleRows caps rows read from a class column.
	ClassSampleRows int `yaml:"class_sample_rows" envconfig:"CLASS_SAMPLE_ROWS"`
}

// DefaultParams returns the calibrated defaults.
func DefaultParams() Params {
	return Params{
		NameSample:        6,
		MinContributors:   3,
		AssignRatio:       0.7,
		SchoolWideRatio:   0.85,
		SchoolWideMinRows: 150,
		ClassSampleRows:   300,
	}
}

// Validate rejects unusable parameter sets.
func (p Params) Validate() error {
	if p.NameSample <= 0 || p.MinContributors <= 0 || p.ClassSampleRows <= 0 {
		return fmt.Errorf("inference: name_sample, min_contributors and class_sample_rows must be positive")
	}
	if p.MinContributors > p.NameSample {
		return fmt.Errorf("inference: min_contributors (%d) exceeds name_sample (%d)", p.MinContributors, p.NameSample)
	}
	if p.AssignRatio < 0 || p.AssignRatio > 1 || p.SchoolWideRatio < 0 || p.SchoolWideRatio > 1 {
		return fmt.Errorf("inference: ratios must be within [0,1]")
	}
	return nil
}
