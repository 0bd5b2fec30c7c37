// Package xlsx reads one worksheet of an Excel workbook into a
// source.Table using excelize's streaming row iterator.
package xlsx

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"csv2ddl/internal/apperrors"
	"csv2ddl/internal/infer"
	"csv2ddl/internal/source"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func init() {
	source.Register(".xlsx", Read)
}

// Read parses the workbook in r. Cells are read raw: numbers keep their
// stored value whatever the display format, date-formatted numbers come out
// as ISO dates and text cells are taken as typed. Blank rows are ignored.
func Read(ctx context.Context, r io.Reader, opts source.Options) (*source.Table, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet, err := pickSheet(f, opts.Sheet)
	if err != nil {
		return nil, err
	}
	opts.Logger.Debug("xlsx sheet", zap.String("sheet", sheet))

	// the cell reader loads the worksheet model, so it comes before the
	// row iterator snapshots the sheet.
	cv := newCellReader(f, sheet)
	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	defer rows.Close()

	var b *source.Builder
	row := []infer.Value{}
	for n := 1; rows.Next(); n++ {
		if n%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		cells, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %q row %d: %w", sheet, n, err)
		}
		if blank(cells) {
			continue
		}

		if b == nil {
			if err := opts.CheckColumns(len(cells)); err != nil {
				return nil, err
			}
			header := make([]string, len(cells))
			copy(header, cells)
			b = source.NewBuilder(header)
			continue
		}

		if len(cells) > b.Width() {
			// excelize trims trailing empties, so anything left past the
			// header is a real value in an unnamed column.
			b.Skip()
			continue
		}
		row = row[:0]
		for i, c := range cells {
			row = append(row, cv.value(c, i+1, n))
		}
		b.Add(row)
		if b.Rows() >= opts.SampleSize {
			break
		}
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	if b == nil || b.Rows() == 0 {
		return nil, apperrors.ErrEmptySource
	}
	return b.Table(), nil
}

// pickSheet returns want when it exists, or the first sheet when want is
// empty.
func pickSheet(f *excelize.File, want string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", apperrors.ErrEmptySource
	}
	if want == "" {
		return sheets[0], nil
	}
	for _, s := range sheets {
		if s == want {
			return s, nil
		}
	}
	return "", fmt.Errorf("sheet %q not found (available: %s)", want, strings.Join(sheets, ", "))
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// cellReader turns raw cell text into values. Numeric cells are told apart
// from numeric-looking text by their cell type, and dates by their number
// format.
type cellReader struct {
	f        *excelize.File
	sheet    string
	date1904 bool
	dateFmt  map[int]bool // style ID -> number format is a date
}

func newCellReader(f *excelize.File, sheet string) *cellReader {
	cr := &cellReader{f: f, sheet: sheet, dateFmt: map[int]bool{}}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		cr.date1904 = *props.Date1904
	}
	_, _ = f.GetCellType(sheet, "A1")
	return cr
}

func (cr *cellReader) value(raw string, col, row int) infer.Value {
	num, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return source.CellValue(raw)
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return source.CellValue(raw)
	}
	if typ, err := cr.f.GetCellType(cr.sheet, cell); err != nil ||
		(typ != excelize.CellTypeUnset && typ != excelize.CellTypeNumber) {
		return source.CellValue(raw)
	}

	if cr.isDate(cell) {
		if t, err := excelize.ExcelDateToTime(num, cr.date1904); err == nil {
			return infer.Text(isoDate(t))
		}
	}
	return infer.Number(num)
}

func (cr *cellReader) isDate(cell string) bool {
	id, err := cr.f.GetCellStyle(cr.sheet, cell)
	if err != nil {
		return false
	}
	if d, ok := cr.dateFmt[id]; ok {
		return d
	}
	d := false
	if st, err := cr.f.GetStyle(id); err == nil && st != nil {
		d = dateFormat(st.NumFmt, st.CustomNumFmt)
	}
	cr.dateFmt[id] = d
	return d
}

// dateFormat reports whether a built-in or custom number format displays a
// date or time.
func dateFormat(id int, custom *string) bool {
	if custom != nil && *custom != "" {
		return customDateFormat(*custom)
	}
	switch {
	case id >= 14 && id <= 22, id >= 27 && id <= 36, id >= 45 && id <= 47,
		id >= 50 && id <= 58, id >= 71 && id <= 81:
		return true
	}
	return false
}

// customDateFormat looks for date or time tokens outside quoted literals,
// bracketed sections and escaped characters.
func customDateFormat(code string) bool {
	if strings.EqualFold(code, "general") {
		return false
	}
	var quoted, bracket, escaped bool
	for _, r := range strings.ToLower(code) {
		switch {
		case escaped:
			escaped = false
		case quoted:
			quoted = r != '"'
		case bracket:
			bracket = r != ']'
		case r == '\\':
			escaped = true
		case r == '"':
			quoted = true
		case r == '[':
			bracket = true
		case r == 'y', r == 'd', r == 'h', r == 's':
			return true
		}
	}
	return false
}

// isoDate drops the time of day when it is midnight.
func isoDate(t time.Time) string {
	t = t.Round(time.Second)
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02 15:04:05")
}
