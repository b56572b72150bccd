package sheet

import "errors"

// Sentinel errors for the load and preview paths. Callers match with
// errors.Is and map each kind to a user-facing status; messages are
// never pattern-matched.
var (
	// ErrNotFound indicates the source path does not resolve to a
	// readable file, or a named workbook sheet does not exist.
	ErrNotFound = errors.New("sheet source not found")

	// ErrUnsupportedFormat indicates the source extension is outside
	// the supported spreadsheet/delimited-text set.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrEmptySheet indicates the sheet has zero data rows before any
	// filtering.
	ErrEmptySheet = errors.New("sheet is empty")
)
