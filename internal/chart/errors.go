package chart

import "errors"

// Sentinel errors for the chart pipeline. All are terminal for the
// request that raised them; the engine never retries and never fails
// silently on a request-fatal condition. Row-level and predicate-level
// partial failures (unparseable cells, unknown filter fields) are
// tolerated by exclusion instead.
var (
	// ErrInvalidRequest indicates a malformed chart request: missing
	// x-field, unknown chart kind or aggregation, or a pie chart
	// carrying a series-field.
	ErrInvalidRequest = errors.New("invalid chart request")

	// ErrInvalidFilter indicates a filter with an operator outside the
	// defined set.
	ErrInvalidFilter = errors.New("invalid filter")

	// ErrEmptyResult indicates the filter chain removed every row.
	ErrEmptyResult = errors.New("no data after applying filters")

	// ErrMissingMeasure indicates sum/avg aggregation without a usable
	// measure column.
	ErrMissingMeasure = errors.New("missing measure column")

	// ErrNonNumericMeasure indicates the measure column has zero
	// numeric-parseable values.
	ErrNonNumericMeasure = errors.New("measure column is not numeric")

	// ErrUnsupportedChartKind indicates a chart kind outside
	// {bar, line, pie} reached the Vega builder. Request parsing
	// normally rejects these first.
	ErrUnsupportedChartKind = errors.New("unsupported chart kind")
)
