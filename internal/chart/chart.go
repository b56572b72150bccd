package chart

import (
	"fmt"

	"sheetviz/internal/sheet"
	v1 "sheetviz/pkg/contracts/api/v1"
)

// Result is the chart-ready output: the resolved fields, the named
// series and the equivalent Vega-Lite document.
type Result struct {
	ChartType string
	XField    string
	YFields   []string
	Series    []v1.ChartSeries
	VegaSpec  *VegaSpec
}

// Build runs the full pipeline over one loaded sheet: filter, group,
// aggregate, shape, spec. It is a pure function of its inputs; calling
// it twice with identical inputs yields an identical Result.
func Build(s *sheet.Sheet, req Request) (*Result, error) {
	if len(s.Rows) == 0 {
		return nil, fmt.Errorf("%w: %q", sheet.ErrEmptySheet, s.Name)
	}

	rows, err := applyFilters(s, req.Filters)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrEmptyResult
	}

	agg, err := aggregate(s, rows, req)
	if err != nil {
		return nil, err
	}

	series := shapeSeries(agg, req.SeriesField != "", agg.measureLabel)

	spec, err := buildVegaSpec(req.Kind, series, req.XField, agg.measureLabel, req.SeriesField)
	if err != nil {
		return nil, err
	}

	return &Result{
		ChartType: string(req.Kind),
		XField:    req.XField,
		YFields:   agg.yFields,
		Series:    series,
		VegaSpec:  spec,
	}, nil
}
