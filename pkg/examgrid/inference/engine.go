package inference

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ukaji3/examgrid-go/pkg/examgrid/models"
)

// Result is the outcome of voting for one sheet.
type Result struct {
	// Class is a class label, models.ClassSchoolWide or models.ClassUnknown.
	Class string
	// Contributors is the number of polled names with known classes.
	Contributors int
	// Votes is the vote count of the best class.
	Votes int
	// Ratio is Votes / Contributors.
	Ratio float64
}

// Engine runs the second pass over a complete batch.
type Engine struct {
	params Params
}

// New creates an Engine.
func New(params Params) *Engine {
	return &Engine{params: params}
}

// HasUsableClassData reports whether the record has a class column with at
// least one non-empty value among the sampled rows.
func (e *Engine) HasUsableClassData(rec *models.ExamRecord) bool {
	if rec.ClassCol == "" {
		return false
	}
	for _, row := range models.SampleRows(rec.Rows, e.params.ClassSampleRows) {
		if !row.Get(rec.ClassCol).IsEmpty() {
			return true
		}
	}
	return false
}

// DistinctClasses returns the distinct class values of the sampled rows in
// first-seen order.
func (e *Engine) DistinctClasses(rec *models.ExamRecord) []string {
	if rec.ClassCol == "" {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, row := range models.SampleRows(rec.Rows, e.params.ClassSampleRows) {
		v := row.Get(rec.ClassCol).String()
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// ColumnScope derives the scope from the class column alone.
func (e *Engine) ColumnScope(rec *models.ExamRecord) models.Scope {
	switch n := len(e.DistinctClasses(rec)); {
	case n == 1:
		return models.ScopeClass
	case n >= 2:
		return models.ScopeSchool
	}
	return models.ScopeUnknown
}

// BuildIndex collects name/class pairs from every record with usable class
// data.
func (e *Engine) BuildIndex(records []*models.ExamRecord) *ClassIndex {
	ix := NewClassIndex()
	for _, rec := range records {
		if rec.NameCol == "" || !e.HasUsableClassData(rec) {
			continue
		}
		for _, row := range rec.Rows {
			ix.add(row.Get(rec.NameCol).String(), row.Get(rec.ClassCol).String())
		}
	}
	return ix
}

// Infer votes on the class of a sheet that lacks class data.
func (e *Engine) Infer(rec *models.ExamRecord, ix *ClassIndex) Result {
	res := Result{Class: models.ClassUnknown}
	if rec.NameCol == "" {
		return res
	}

	votes := make(map[string]int)
	seen := make(map[string]bool)
	for _, row := range rec.Rows {
		if len(seen) >= e.params.NameSample {
			break
		}
		name := row.Get(rec.NameCol).String()
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		classes := ix.ClassesOf(name)
		if len(classes) == 0 {
			continue
		}
		res.Contributors++
		for _, c := range classes {
			votes[c]++
		}
	}
	if res.Contributors < e.params.MinContributors || len(votes) == 0 {
		return res
	}

	best := ""
	for _, c := range votedClasses(votes) {
		if votes[c] > res.Votes {
			best, res.Votes = c, votes[c]
		}
	}
	res.Ratio = float64(res.Votes) / float64(res.Contributors)

	switch {
	case len(rec.Rows) >= e.params.SchoolWideMinRows && res.Ratio < e.params.SchoolWideRatio:
		res.Class = models.ClassSchoolWide
	case res.Ratio >= e.params.AssignRatio:
		res.Class = best
	}
	return res
}

// Apply builds the index from the complete batch and then infers classes for
// every record that needs it. It must only run after the first pass finished.
func (e *Engine) Apply(ctx context.Context, records []*models.ExamRecord, workers int) (*ClassIndex, error) {
	ix := e.BuildIndex(records)

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, rec := range records {
		if e.HasUsableClassData(rec) {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := e.Infer(rec, ix)
			rec.InferredClass = res.Class
			switch res.Class {
			case models.ClassUnknown:
				rec.Scope = models.ScopeUnknown
			case models.ClassSchoolWide:
				rec.Scope = models.ScopeSchool
			default:
				rec.Scope = models.ScopeClass
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ix, nil
}

// EffectiveClass resolves the class attributed to a record: a non-empty
// override, then the class column (no sampled value is unknown, one distinct
// value is the class, several mean school-wide), then the inferred class,
// then unknown.
func (e *Engine) EffectiveClass(rec *models.ExamRecord) string {
	if rec.OverrideClass != "" {
		return rec.OverrideClass
	}
	if rec.ClassCol != "" {
		switch distinct := e.DistinctClasses(rec); len(distinct) {
		case 0:
			return models.ClassUnknown
		case 1:
			return distinct[0]
		default:
			return models.ClassSchoolWide
		}
	}
	if rec.InferredClass != "" {
		return rec.InferredClass
	}
	return models.ClassUnknown
}

// votedClasses returns the voted classes sorted so ties resolve the same way
// on every run.
func votedClasses(votes map[string]int) []string {
	out := make([]string, 0, len(votes))
	for c := range votes {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

var defaultEngine = New(DefaultParams())

// EffectiveClass applies the default engine's precedence chain.
func EffectiveClass(rec *models.ExamRecord) string { return defaultEngine.EffectiveClass(rec) }

// HasUsableClassData applies the default engine's sampling window.
func HasUsableClassData(rec *models.ExamRecord) bool { return defaultEngine.HasUsableClassData(rec) }
