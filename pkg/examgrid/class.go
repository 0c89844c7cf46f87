package examgrid

import (
	"github.com/ukaji3/examgrid-go/pkg/examgrid/inference"
	"github.com/ukaji3/examgrid-go/pkg/examgrid/models"
)

// EffectiveClass returns the class label downstream consumers should use:
// override, then class column, then inferred class, then unknown. It samples
// the class column with default inference parameters; use
// Options.EffectiveClass to honor configured ones.
func EffectiveClass(rec *models.ExamRecord) string {
	return inference.EffectiveClass(rec)
}

// HasUsableClassData reports whether the record carries its own class data,
// sampling with default inference parameters.
func HasUsableClassData(rec *models.ExamRecord) bool {
	return inference.HasUsableClassData(rec)
}

// EffectiveClass is the package-level EffectiveClass under o.Inference.
func (o Options) EffectiveClass(rec *models.ExamRecord) string {
	return o.Engine().EffectiveClass(rec)
}

// HasUsableClassData is the package-level HasUsableClassData under
// o.Inference.
func (o Options) HasUsableClassData(rec *models.ExamRecord) bool {
	return o.Engine().HasUsableClassData(rec)
}
