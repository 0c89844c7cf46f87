package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/examgrid-go/pkg/examgrid/models"
)

func TestReadCSV(t *testing.T) {
	data := utf8BOM + "姓名,班级,总分\n张三,1班,300\n李四,1班\n"
	src, err := ReadCSV("月考.csv", strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, "月考.csv", src.FileName)
	assert.Equal(t, []string{"月考"}, src.SheetNames)

	sheet, err := src.Provider("月考")
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "姓名", sheet.Rows[0][0].Text, "BOM is stripped")
	assert.Len(t, sheet.Rows[2], 2, "ragged rows are kept")
	assert.Equal(t, models.CellNumeric, sheet.Rows[1][2].Kind)

	_, err = src.Provider("other")
	assert.ErrorIs(t, err, ErrSheetNotFound)
}

func TestOpenCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b,c\n1,2,3\n"), 0o644))

	src, err := OpenCSV(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"scores"}, src.SheetNames)

	_, err = OpenCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
