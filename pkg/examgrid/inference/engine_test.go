package inference

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/examgrid-go/pkg/examgrid/models"
)

// roster builds a record with a name column and, when classes is non-nil, a
// class column holding classes[i] for names[i].
func roster(id string, names []string, classes []string) *models.ExamRecord {
	rec := &models.ExamRecord{ID: id, NameCol: "name", InferredClass: models.ClassUnknown}
	if classes != nil {
		rec.ClassCol = "class"
	}
	for i, n := range names {
		row := models.Row{"name": models.Text(n)}
		if classes != nil && classes[i] != "" {
			row["class"] = models.Text(classes[i])
		}
		rec.Rows = append(rec.Rows, row)
	}
	return rec
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}

func names(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return out
}

func TestHasUsableClassData(t *testing.T) {
	e := New(DefaultParams())
	assert.False(t, e.HasUsableClassData(roster("a", names("n", 3), nil)))
	assert.False(t, e.HasUsableClassData(roster("b", names("n", 3), repeat("", 3))))
	assert.True(t, e.HasUsableClassData(roster("c", names("n", 3), []string{"", "", "1班"})))

	params := DefaultParams()
	params.ClassSampleRows = 2
	assert.False(t, New(params).HasUsableClassData(roster("d", names("n", 3), []string{"", "", "1班"})))
}

func TestClassIndex(t *testing.T) {
	e := New(DefaultParams())
	ix := e.BuildIndex([]*models.ExamRecord{
		roster("a", []string{"张三", "李四", ""}, []string{"1班", "1班", "1班"}),
		roster("b", []string{"张三", "王五"}, []string{"2班", ""}),
		roster("c", []string{"赵六"}, nil),
	})
	assert.Equal(t, []string{"1班", "2班"}, ix.Classes())
	assert.Equal(t, []string{"1班", "2班"}, ix.ClassesOf("张三"))
	assert.Equal(t, []string{"1班"}, ix.ClassesOf("李四"))
	assert.Empty(t, ix.ClassesOf("王五"))
	assert.Empty(t, ix.ClassesOf("赵六"))
	assert.Equal(t, 2, ix.Names())
}

func TestInfer(t *testing.T) {
	e := New(DefaultParams())
	ix := e.BuildIndex([]*models.ExamRecord{
		roster("a", []string{"a1", "a2", "a3", "a4", "a5", "a6"}, repeat("A", 6)),
		roster("b", []string{"b1", "b2", "b3"}, repeat("B", 3)),
	})

	tests := []struct {
		name    string
		names   []string
		want    string
		contrib int
	}{
		{"unanimous", []string{"a1", "a2", "a3"}, "A", 3},
		{"three names two to one", []string{"a1", "a2", "b1"}, models.ClassUnknown, 3},
		{"three names three to zero", []string{"a1", "a2", "a4"}, "A", 3},
		{"two contributors", []string{"a1", "b1", "x", "y"}, models.ClassUnknown, 2},
		{"split vote", []string{"a1", "a2", "b1", "b2"}, models.ClassUnknown, 4},
		{"clear majority", []string{"a1", "a2", "a3", "a4", "a5", "b1"}, "A", 6},
		{"only first six distinct names", []string{"a1", "a1", "x1", "x2", "x3", "x4", "x5", "a2", "a3"}, models.ClassUnknown, 1},
		{"no known names", []string{"x", "y", "z"}, models.ClassUnknown, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := e.Infer(roster("t", tt.names, nil), ix)
			assert.Equal(t, tt.want, res.Class)
			assert.Equal(t, tt.contrib, res.Contributors)
		})
	}
}

func TestInferMultiClassNamesVoteForEach(t *testing.T) {
	e := New(DefaultParams())
	ix := e.BuildIndex([]*models.ExamRecord{
		roster("a", []string{"s1", "s2", "s3"}, repeat("A", 3)),
		roster("b", []string{"s1"}, []string{"B"}),
	})
	res := e.Infer(roster("t", []string{"s1", "s2", "s3"}, nil), ix)
	assert.Equal(t, "A", res.Class)
	assert.Equal(t, 3, res.Votes)
	assert.InDelta(t, 1.0, res.Ratio, 1e-9)
}

func TestInferTieBreaksByName(t *testing.T) {
	params := DefaultParams()
	params.AssignRatio = 0.5
	e := New(params)
	ix := e.BuildIndex([]*models.ExamRecord{
		roster("a", []string{"b1", "b2"}, repeat("B", 2)),
		roster("b", []string{"a1", "a2"}, repeat("A", 2)),
	})
	res := e.Infer(roster("t", []string{"b1", "b2", "a1", "a2"}, nil), ix)
	assert.Equal(t, "A", res.Class)
}

func TestInferSchoolWide(t *testing.T) {
	e := New(DefaultParams())
	ix := e.BuildIndex([]*models.ExamRecord{
		roster("a", []string{"s1", "s2", "s3", "s4"}, []string{"A", "A", "A", "A"}),
		roster("b", []string{"s5", "s6"}, []string{"B", "C"}),
	})

	big := append([]string{"s1", "s2", "s3", "s4", "s5", "s6"}, names("x", 150)...)
	res := e.Infer(roster("t", big, nil), ix)
	assert.Equal(t, models.ClassSchoolWide, res.Class)

	small := []string{"s1", "s2", "s3", "s4", "s5", "s6"}
	res = e.Infer(roster("t", small, nil), ix)
	assert.Equal(t, models.ClassUnknown, res.Class, "ratio 4/6 is below the assign threshold")
}

func TestApply(t *testing.T) {
	withClass := roster("a", []string{"s1", "s2", "s3"}, repeat("A", 3))
	missing := roster("b", []string{"s1", "s2", "s3"}, nil)
	emptyCol := roster("c", []string{"s3", "s2", "s1"}, repeat("", 3))
	stranger := roster("d", []string{"x1", "x2", "x3"}, nil)

	e := New(DefaultParams())
	ix, err := e.Apply(context.Background(), []*models.ExamRecord{withClass, missing, emptyCol, stranger}, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, ix.Classes())

	assert.Equal(t, "A", missing.InferredClass)
	assert.Equal(t, models.ScopeClass, missing.Scope)
	assert.Equal(t, "A", emptyCol.InferredClass)
	assert.Equal(t, models.ClassUnknown, stranger.InferredClass)
	assert.Equal(t, models.ScopeUnknown, stranger.Scope)
	assert.Equal(t, models.ClassUnknown, withClass.InferredClass, "records with class data are not inferred")
}

func TestApplyCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(DefaultParams()).Apply(ctx, []*models.ExamRecord{roster("a", names("n", 3), nil)}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEffectiveClass(t *testing.T) {
	tests := []struct {
		name string
		rec  *models.ExamRecord
		want string
	}{
		{
			name: "override wins",
			rec: func() *models.ExamRecord {
				r := roster("a", names("n", 2), repeat("5", 2))
				r.SetOverrideClass(" 3 ")
				return r
			}(),
			want: "3",
		},
		{"single class column value", roster("a", names("n", 3), repeat("5", 3)), "5"},
		{"several class values", roster("a", names("n", 2), []string{"1", "2"}), models.ClassSchoolWide},
		{
			name: "empty class column is unknown",
			rec: func() *models.ExamRecord {
				r := roster("a", names("n", 2), repeat("", 2))
				r.InferredClass = "7"
				return r
			}(),
			want: models.ClassUnknown,
		},
		{
			name: "no class column uses inferred",
			rec: func() *models.ExamRecord {
				r := roster("a", names("n", 2), nil)
				r.InferredClass = "7"
				return r
			}(),
			want: "7",
		},
		{
			name: "blank override ignored",
			rec: func() *models.ExamRecord {
				r := roster("a", names("n", 2), nil)
				r.SetOverrideClass("  ")
				r.InferredClass = ""
				return r
			}(),
			want: models.ClassUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectiveClass(tt.rec))
		})
	}
}

func TestParamsValidate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())

	p := DefaultParams()
	p.MinContributors = 10
	assert.Error(t, p.Validate())

	p = DefaultParams()
	p.AssignRatio = 1.5
	assert.Error(t, p.Validate())
}
