package parser

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func splitGrid(t *testing.T, rows ...[]string) ([]string, []int) {
	t.Helper()
	params := DefaultParams()
	g := NormalizeMatrix(grid(rows...), nil, params.MergeFillRows)
	header := BuildHeader(g, LocateHeader(g, params), params)
	blocks := SplitBlocks(g, header, params)
	labels := make([]string, len(blocks))
	widths := make([]int, len(blocks))
	for i, b := range blocks {
		labels[i] = b.RangeLabel
		widths[i] = len(b.Columns)
	}
	return labels, widths
}

func TestSplitBlocksSideBySide(t *testing.T) {
	labels, widths := splitGrid(t,
		[]string{"学号", "姓名", "班级", "语文", "总分", "", "", "姓名", "学号", "数学", "英语", "总分"},
		[]string{"1", "张三", "1班", "90", "300", "", "", "李四", "2", "88", "92", "280"},
		[]string{"3", "王五", "1班", "70", "260", "", "", "赵六", "4", "81", "77", "250"},
	)
	assert.Equal(t, []string{"A:E", "H:L"}, labels)
	assert.Equal(t, []int{5, 5}, widths)
}

func TestSplitBlocksGapWidth(t *testing.T) {
	for gap := 0; gap <= 3; gap++ {
		t.Run(strconv.Itoa(gap), func(t *testing.T) {
			header := []string{"a", "b", "c"}
			data := []string{"1", "2", "3"}
			for i := 0; i < gap; i++ {
				header = append(header, "")
				data = append(data, "")
			}
			header = append(header, "d", "e", "f")
			data = append(data, "4", "5", "6")

			_, widths := splitGrid(t, header, data)
			if gap == 0 {
				assert.Equal(t, []int{6}, widths)
			} else {
				assert.Equal(t, []int{3, 3}, widths)
			}
		})
	}
}

func TestSplitBlocksDropsNarrowRanges(t *testing.T) {
	labels, _ := splitGrid(t,
		[]string{"备注", "", "姓名", "班级", "总分"},
		[]string{"x", "", "张三", "1班", "300"},
	)
	assert.Equal(t, []string{"C:E"}, labels)
}

func TestSplitBlocksColumnsAndRows(t *testing.T) {
	params := DefaultParams()
	g := NormalizeMatrix(grid(
		[]string{"姓名", "总分", "总分", "x"},
		[]string{"张三", "300", "", ""},
		[]string{"", "", "", ""},
		[]string{"李四", "", "280", ""},
	), nil, params.MergeFillRows)
	header := BuildHeader(g, 0, params)
	blocks := SplitBlocks(g, header, params)
	require.Len(t, blocks, 1)
	b := blocks[0]

	keys := map[string]bool{}
	for _, c := range b.Columns {
		assert.False(t, keys[c.Key], "duplicate key %s", c.Key)
		keys[c.Key] = true
	}
	assert.Equal(t, "总分 (B)", b.Columns[1].Label)
	assert.NotEqual(t, b.Columns[1].Key, b.Columns[2].Key)

	require.Len(t, b.Rows, 2, "fully empty rows are dropped")
	assert.Equal(t, "李四", b.Rows[1].Get(b.Columns[0].Key).Text)
	assert.Equal(t, 0, b.Meta.StartCol)
	assert.Equal(t, 3, b.Meta.EndCol)
	assert.Equal(t, 1, b.Meta.HeaderRowsUsed)
}
