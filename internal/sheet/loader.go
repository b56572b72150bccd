package sheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// workbookExts are the OOXML workbook extensions excelize can read.
// Legacy binary formats (.xls, .xlsb, .xlt) are not supported.
var workbookExts = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xltx": true,
	".xltm": true,
}

// IsSupported reports whether the path's extension is a recognized
// spreadsheet or delimited-text kind.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return workbookExts[ext] || ext == ".csv"
}

// IsWorkbook reports whether the path names a multi-sheet workbook
// (as opposed to a single-sheet delimited file).
func IsWorkbook(path string) bool {
	return workbookExts[strings.ToLower(filepath.Ext(path))]
}

// Load reads every logical sheet of the source into memory: each tab
// of a workbook, or the whole file as a single sheet for CSV. The full
// row set is materialized; truncation happens only downstream in the
// preview builder.
func Load(path string) ([]*Sheet, error) {
	if err := statSource(path); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case workbookExts[ext]:
		return loadWorkbook(path)
	case ext == ".csv":
		s, err := loadCSV(path)
		if err != nil {
			return nil, err
		}
		return []*Sheet{s}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// LoadOne reads a single logical sheet for the chart path. Workbook
// sources require a sheet name; CSV sources ignore it.
func LoadOne(path, name string) (*Sheet, error) {
	if err := statSource(path); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case workbookExts[ext]:
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("open workbook: %w", err)
		}
		defer f.Close()

		if !containsSheet(f.GetSheetList(), name) {
			return nil, fmt.Errorf("%w: sheet %q", ErrNotFound, name)
		}
		return readWorkbookSheet(f, name)
	case ext == ".csv":
		return loadCSV(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

func statSource(path string) error {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return nil
}

func containsSheet(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func loadWorkbook(path string) ([]*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var sheets []*Sheet
	for _, name := range f.GetSheetList() {
		s, err := readWorkbookSheet(f, name)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, s)
	}
	return sheets, nil
}

func readWorkbookSheet(f *excelize.File, name string) (*Sheet, error) {
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", name, err)
	}
	return tableFromStrings(name, rows), nil
}

func loadCSV(path string) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return tableFromStrings(stem, records), nil
}

// tableFromStrings shapes raw rows into a Sheet: the first row is the
// header, remaining rows are padded to the declared column count so
// every row has an entry for every column.
func tableFromStrings(name string, raw [][]string) *Sheet {
	s := &Sheet{Name: name}
	if len(raw) == 0 {
		return s
	}

	for i, h := range raw[0] {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		s.Columns = append(s.Columns, h)
	}

	for _, rec := range raw[1:] {
		row := make(Row, len(s.Columns))
		for i := range s.Columns {
			if i < len(rec) {
				row[i] = ParseCell(rec[i])
			} else {
				row[i] = Null()
			}
		}
		s.Rows = append(s.Rows, row)
	}
	return s
}
