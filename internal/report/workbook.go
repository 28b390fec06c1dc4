package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Workbook assembles the report spreadsheet sheet by sheet, then encodes it
// once. Created fresh per run and never reused after encoding.
type Workbook struct {
	f          *excelize.File
	creator    string
	created    time.Time
	sheetCount int

	headerStyle int
	wrapStyle   int
}

// NewWorkbook creates an empty workbook with the given authorship metadata.
func NewWorkbook(creator string, created time.Time) *Workbook {
	return &Workbook{
		f:           excelize.NewFile(),
		creator:     creator,
		created:     created,
		headerStyle: -1,
		wrapStyle:   -1,
	}
}

// AddSheet appends one named sheet: a bold, frozen header row from the column
// schema, one row per flattened record in order, hyperlinks on link-column
// cells whose value starts with "http", and word-wrap on resource-link cells.
// Sheet name uniqueness is the caller's responsibility.
func (w *Workbook) AddSheet(name string, rows []Row) error {
	// excelize seeds every file with "Sheet1"; claim it for the first sheet.
	if w.sheetCount == 0 {
		if err := w.f.SetSheetName("Sheet1", name); err != nil {
			return fmt.Errorf("naming first sheet: %w", err)
		}
	} else {
		if _, err := w.f.NewSheet(name); err != nil {
			return fmt.Errorf("adding sheet %q: %w", name, err)
		}
	}
	w.sheetCount++

	headers := make([]interface{}, len(Columns))
	for i, col := range Columns {
		headers[i] = col.Header

		letter, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("column %d: %w", i+1, err)
		}
		if err := w.f.SetColWidth(name, letter, letter, col.Width); err != nil {
			return fmt.Errorf("setting width of column %s: %w", letter, err)
		}
	}
	if err := w.f.SetSheetRow(name, "A1", &headers); err != nil {
		return fmt.Errorf("writing header row: %w", err)
	}

	if err := w.styleHeader(name); err != nil {
		return err
	}

	for r, row := range rows {
		values := make([]interface{}, len(Columns))
		for i, col := range Columns {
			values[i] = col.Value(row)
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("row %d: %w", r+2, err)
		}
		if err := w.f.SetSheetRow(name, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", r+2, err)
		}
	}

	return w.styleData(name, rows)
}

// styleHeader bolds row 1 and freezes it under scroll.
func (w *Workbook) styleHeader(name string) error {
	if w.headerStyle < 0 {
		style, err := w.f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fmt.Errorf("creating header style: %w", err)
		}
		w.headerStyle = style
	}

	last, err := excelize.CoordinatesToCellName(len(Columns), 1)
	if err != nil {
		return err
	}
	if err := w.f.SetCellStyle(name, "A1", last, w.headerStyle); err != nil {
		return fmt.Errorf("styling header row: %w", err)
	}

	if err := w.f.SetPanes(name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing header row: %w", err)
	}
	return nil
}

// styleData applies the per-column cell behaviors to the data rows: link
// columns become clickable hyperlinks (plain-string cells when the value is
// not a URL), wrap columns render embedded newlines as visible lines.
func (w *Workbook) styleData(name string, rows []Row) error {
	for i, col := range Columns {
		if !col.Link && !col.Wrap {
			continue
		}

		if col.Wrap {
			if w.wrapStyle < 0 {
				style, err := w.f.NewStyle(&excelize.Style{
					Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
				})
				if err != nil {
					return fmt.Errorf("creating wrap style: %w", err)
				}
				w.wrapStyle = style
			}
			if len(rows) > 0 {
				first, err := excelize.CoordinatesToCellName(i+1, 2)
				if err != nil {
					return err
				}
				last, err := excelize.CoordinatesToCellName(i+1, len(rows)+1)
				if err != nil {
					return err
				}
				if err := w.f.SetCellStyle(name, first, last, w.wrapStyle); err != nil {
					return fmt.Errorf("wrapping column %q: %w", col.Header, err)
				}
			}
		}

		if col.Link {
			for r, row := range rows {
				value := col.Value(row)
				if !strings.HasPrefix(value, "http") {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(i+1, r+2)
				if err != nil {
					return err
				}
				if err := w.f.SetCellHyperLink(name, cell, value, "External"); err != nil {
					return fmt.Errorf("linking %s!%s: %w", name, cell, err)
				}
			}
		}
	}
	return nil
}

// Bytes stamps the authorship metadata and serializes the workbook. The
// workbook must not be mutated afterwards.
func (w *Workbook) Bytes() ([]byte, error) {
	if err := w.f.SetDocProps(&excelize.DocProperties{
		Creator: w.creator,
		Created: w.created.UTC().Format(time.RFC3339),
	}); err != nil {
		return nil, fmt.Errorf("setting doc properties: %w", err)
	}

	buf, err := w.f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encoding workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Close releases the underlying file resources.
func (w *Workbook) Close() error {
	return w.f.Close()
}

// Filename returns the report filename for the given run date.
func Filename(runDate time.Time) string {
	return fmt.Sprintf("sam-contract-opportunities-%s.xlsx", runDate.UTC().Format("2006-01-02"))
}
