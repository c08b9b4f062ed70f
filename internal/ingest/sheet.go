package ingest

import (
	"credit-engine/internal/pkg/apperrors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// column is a logical field of a bulk file with the header spellings it is
// known under. Optional columns may be missing from the header; headerOnly
// columns are not part of the fallback positional layout.
type column struct {
	name       string
	aliases    []string
	optional   bool
	headerOnly bool
}

// sheet is a header-indexed view over the rows of one worksheet.
type sheet struct {
	index map[string]int
	rows  [][]string
}

// readSheet opens an xlsx file and returns the data rows of sheetName, or of
// the active sheet when sheetName is empty. Columns are located by header;
// when the header does not name every column the fallback order is used.
func readSheet(path, sheetName string, columns []column) (*sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to open %s: %w", apperrors.ErrIngestion, path, err)
	}
	defer f.Close()

	if sheetName == "" {
		sheetName = f.GetSheetName(f.GetActiveSheetIndex())
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: unable to read sheet %q of %s: %w", apperrors.ErrIngestion, sheetName, path, err)
	}
	if len(rows) == 0 {
		return &sheet{index: positionalIndex(columns)}, nil
	}

	byHeader := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		byHeader[normalizeHeader(h)] = i
	}
	return &sheet{index: headerIndex(byHeader, columns), rows: rows[1:]}, nil
}

func headerIndex(byHeader map[string]int, columns []column) map[string]int {
	index := make(map[string]int, len(columns))
	for _, col := range columns {
		for _, alias := range col.aliases {
			if pos, ok := byHeader[alias]; ok {
				index[col.name] = pos
				break
			}
		}
		if _, ok := index[col.name]; !ok && !col.optional {
			return positionalIndex(columns)
		}
	}
	return index
}

func positionalIndex(columns []column) map[string]int {
	index := make(map[string]int, len(columns))
	pos := 0
	for _, col := range columns {
		if col.headerOnly {
			continue
		}
		index[col.name] = pos
		pos++
	}
	return index
}

// normalizeHeader keeps letters and digits only, lowercased, so that
// "EMIs paid on Time" and "emis_paid_on_time" compare equal.
func normalizeHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// cell returns the trimmed value of a named column, or "" when the row is short.
func (s *sheet) cell(row []string, name string) string {
	pos, ok := s.index[name]
	if !ok || pos >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[pos])
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseInt(field, raw string) (int64, error) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	if cleaned == "" {
		return 0, fmt.Errorf("%s is empty", field)
	}
	if v, err := strconv.ParseInt(cleaned, 10, 64); err == nil {
		return v, nil
	}
	// numeric cells may carry a trailing ".0"
	d, err := decimal.NewFromString(cleaned)
	if err != nil || !d.IsInteger() {
		return 0, fmt.Errorf("%s: %q is not a whole number", field, raw)
	}
	return d.IntPart(), nil
}

// parseDecimal rounds to cents; raw numeric cells carry binary float noise.
func parseDecimal(field, raw string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(raw, ",", "")
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("%s is empty", field)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %q is not a number", field, raw)
	}
	return d.Round(2), nil
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"01-02-06",
	"1/2/06",
	"1/2/2006",
}

// parseDate accepts Excel serial dates as well as common text layouts.
func parseDate(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("%s is empty", field)
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("%s: %w", field, err)
		}
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%s: %q is not a recognised date", field, raw)
}
