package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func encodeWorkbook(t *testing.T, build func(w *Workbook)) *excelize.File {
	t.Helper()

	wb := NewWorkbook("Tepnology LLC", time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC))
	defer wb.Close()
	build(wb)

	data, err := wb.Bytes()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestWorkbookTwoSheets(t *testing.T) {
	rows1 := []Row{{NoticeID: "a-1", Title: "First"}}
	rows2 := []Row{{NoticeID: "b-1", Title: "Second"}, {NoticeID: "b-2", Title: "Third"}}

	f := encodeWorkbook(t, func(w *Workbook) {
		require.NoError(t, w.AddSheet("A", rows1))
		require.NoError(t, w.AddSheet("B", rows2))
	})

	assert.Equal(t, []string{"A", "B"}, f.GetSheetList())

	for _, sheet := range []string{"A", "B"} {
		got, err := f.GetRows(sheet)
		require.NoError(t, err)
		require.NotEmpty(t, got)
		assert.Equal(t, Headers(), got[0], "sheet %q header row", sheet)
	}

	rowsA, err := f.GetRows("A")
	require.NoError(t, err)
	require.Len(t, rowsA, 2)
	assert.Equal(t, "a-1", rowsA[1][0])

	rowsB, err := f.GetRows("B")
	require.NoError(t, err)
	require.Len(t, rowsB, 3)
	assert.Equal(t, "b-2", rowsB[2][0])
}

func TestWorkbookRowOrderAndValues(t *testing.T) {
	rows := []Row{
		{NoticeID: "n-1", Title: "Parking", NaicsCodes: "812930, 485991", POCEmail: "poc@agency.gov"},
		{NoticeID: "n-2", Title: "Janitorial"},
	}

	f := encodeWorkbook(t, func(w *Workbook) {
		require.NoError(t, w.AddSheet("Sheet", rows))
	})

	got, err := f.GetRows("Sheet")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "n-1", got[1][0])
	assert.Equal(t, "Parking", got[1][1])
	assert.Equal(t, "812930, 485991", got[1][11])
	assert.Equal(t, "poc@agency.gov", got[1][19])
	assert.Equal(t, "n-2", got[2][0])
}

func TestWorkbookHyperlinks(t *testing.T) {
	rows := []Row{
		{NoticeID: "n-1", Title: "Linked", UILink: "https://example.gov/x"},
		{NoticeID: "n-2", Title: "Plain", UILink: "N/A"},
	}

	f := encodeWorkbook(t, func(w *Workbook) {
		require.NoError(t, w.AddSheet("Sheet", rows))
	})

	// UI Link column.
	uiCol := -1
	for i, col := range Columns {
		if col.Header == "UI Link" {
			uiCol = i + 1
		}
	}
	require.Positive(t, uiCol)

	linked, _ := excelize.CoordinatesToCellName(uiCol, 2)
	ok, target, err := f.GetCellHyperLink("Sheet", linked)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "https://example.gov/x", target)

	display, err := f.GetCellValue("Sheet", linked)
	require.NoError(t, err)
	assert.Equal(t, "https://example.gov/x", display, "display text equals the target URL")

	plain, _ := excelize.CoordinatesToCellName(uiCol, 3)
	ok, _, err = f.GetCellHyperLink("Sheet", plain)
	require.NoError(t, err)
	assert.False(t, ok, "non-URL values stay plain string cells")

	value, err := f.GetCellValue("Sheet", plain)
	require.NoError(t, err)
	assert.Equal(t, "N/A", value)
}

func TestWorkbookFreezesHeaderRow(t *testing.T) {
	f := encodeWorkbook(t, func(w *Workbook) {
		require.NoError(t, w.AddSheet("Sheet", []Row{{NoticeID: "n-1", Title: "T"}}))
	})

	panes, err := f.GetPanes("Sheet")
	require.NoError(t, err)
	assert.True(t, panes.Freeze)
	assert.Equal(t, 1, panes.YSplit)
}

func TestWorkbookEmptySheet(t *testing.T) {
	f := encodeWorkbook(t, func(w *Workbook) {
		require.NoError(t, w.AddSheet("Empty", nil))
	})

	got, err := f.GetRows("Empty")
	require.NoError(t, err)
	require.Len(t, got, 1, "header only")
	assert.Equal(t, Headers(), got[0])
}

func TestFilename(t *testing.T) {
	runDate := time.Date(2024, time.June, 15, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "sam-contract-opportunities-2024-06-15.xlsx", Filename(runDate))
}
