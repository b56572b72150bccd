package chart

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sheetviz/internal/sheet"
	v1 "sheetviz/pkg/contracts/api/v1"
)

func TestParseRequestDefaults(t *testing.T) {
	req, err := ParseRequest(v1.ChartRequest{XField: "region"})
	require.NoError(t, err)
	assert.Equal(t, KindBar, req.Kind)
	assert.Equal(t, AggSum, req.Agg)
}

func TestParseRequestRejections(t *testing.T) {
	tests := []struct {
		name string
		dto  v1.ChartRequest
	}{
		{name: "unknown chart type", dto: v1.ChartRequest{ChartType: "scatter", XField: "x"}},
		{name: "unknown aggregation", dto: v1.ChartRequest{XField: "x", Agg: "median"}},
		{name: "missing x field", dto: v1.ChartRequest{ChartType: "bar"}},
		{name: "pie with series split", dto: v1.ChartRequest{ChartType: "pie", XField: "x", SeriesField: "s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRequest(tt.dto)
			assert.ErrorIs(t, err, ErrInvalidRequest)
		})
	}
}

func TestParseRequestRejectsUnknownOperator(t *testing.T) {
	_, err := ParseRequest(v1.ChartRequest{
		XField:  "x",
		Filters: []v1.ChartFilter{{Field: "f", Op: "like", Value: "x"}},
	})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}

func TestParseRequestTypesFilterValues(t *testing.T) {
	req, err := ParseRequest(v1.ChartRequest{
		XField: "x",
		Filters: []v1.ChartFilter{
			{Field: "when", Op: "gte", Value: "2024-01-01"},
			{Field: "amount", Op: "lte", Value: float64(10)},
		},
	})
	require.NoError(t, err)
	require.Len(t, req.Filters, 2)
	assert.Equal(t, sheet.KindTime, req.Filters[0].Value.Kind())
	assert.Equal(t, sheet.KindNumber, req.Filters[1].Value.Kind())
}

func TestBuildBarChart(t *testing.T) {
	s := salesSheet()
	req, err := ParseRequest(v1.ChartRequest{
		ChartType: "bar",
		XField:    "region",
		YFields:   []string{"amount"},
		Agg:       "sum",
	})
	require.NoError(t, err)

	result, err := Build(s, req)
	require.NoError(t, err)

	assert.Equal(t, "bar", result.ChartType)
	assert.Equal(t, "region", result.XField)
	assert.Equal(t, []string{"amount"}, result.YFields)
	require.Len(t, result.Series, 1)
	assert.Equal(t, "amount", result.Series[0].Name)
	require.Len(t, result.Series[0].Data, 4)
	assert.Equal(t, "East", result.Series[0].Data[0].X)
	assert.Equal(t, 150.0, result.Series[0].Data[0].Y)
	assert.Nil(t, result.Series[0].Data[3].X, "null group exports as nil x")
}

func TestBuildSeriesSplit(t *testing.T) {
	s := salesSheet()
	req, err := ParseRequest(v1.ChartRequest{
		XField:      "region",
		YFields:     []string{"amount"},
		SeriesField: "status",
	})
	require.NoError(t, err)

	result, err := Build(s, req)
	require.NoError(t, err)

	require.Len(t, result.Series, 2)
	assert.Equal(t, "closed", result.Series[0].Name)
	assert.Equal(t, "open", result.Series[1].Name)
	assert.NotNil(t, result.VegaSpec.Encoding.Color, "multi-series charts color by series")
}

func TestBuildNullSeriesLabel(t *testing.T) {
	s := salesSheet()
	req, err := ParseRequest(v1.ChartRequest{
		XField:      "amount",
		SeriesField: "region",
		Agg:         "count",
	})
	require.NoError(t, err)

	result, err := Build(s, req)
	require.NoError(t, err)

	names := make([]string, len(result.Series))
	for i, srs := range result.Series {
		names[i] = srs.Name
	}
	assert.Contains(t, names, "(empty)")
}

func TestBuildWithFilters(t *testing.T) {
	s := salesSheet()
	req, err := ParseRequest(v1.ChartRequest{
		XField:  "region",
		YFields: []string{"amount"},
		Filters: []v1.ChartFilter{{Field: "status", Op: "eq", Value: "closed"}},
	})
	require.NoError(t, err)

	result, err := Build(s, req)
	require.NoError(t, err)

	require.Len(t, result.Series, 1)
	require.Len(t, result.Series[0].Data, 2)
	assert.Equal(t, 50.0, result.Series[0].Data[0].Y, "only the closed East row remains")
}

func TestBuildEmptySheet(t *testing.T) {
	s := &sheet.Sheet{Name: "empty", Columns: []string{"a"}}
	req, err := ParseRequest(v1.ChartRequest{XField: "a", Agg: "count"})
	require.NoError(t, err)

	_, err = Build(s, req)
	assert.ErrorIs(t, err, sheet.ErrEmptySheet)
}

func TestBuildEmptyResult(t *testing.T) {
	s := salesSheet()
	req, err := ParseRequest(v1.ChartRequest{
		XField: "region",
		Agg:    "count",
		Filters: []v1.ChartFilter{
			{Field: "region", Op: "eq", Value: "Nowhere"},
		},
	})
	require.NoError(t, err)

	_, err = Build(s, req)
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestBuildDeterministic(t *testing.T) {
	s := salesSheet()
	req, err := ParseRequest(v1.ChartRequest{
		XField:      "region",
		YFields:     []string{"amount"},
		SeriesField: "status",
	})
	require.NoError(t, err)

	first, err := Build(s, req)
	require.NoError(t, err)
	second, err := Build(s, req)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}
