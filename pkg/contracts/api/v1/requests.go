// Package api contains API contract definitions for the sheetviz service.
// Version v1 represents the current stable API version.
package api

// Structure API Requests

// StructureRequest represents the query parameters of a structure preview request.
type StructureRequest struct {
	MaxRows int `json:"max_rows" query:"max_rows" validate:"min=1,max=1000"`
}

// Chart API Requests

// ChartFilter represents one predicate of a chart request filter chain.
// Value carries a single scalar for eq/neq/gte/lte; Values carries the
// list for the in operator. A scalar Value with op=in is accepted and
// treated as a one-element list.
type ChartFilter struct {
	Field  string        `json:"field"`
	Op     string        `json:"op"`
	Value  interface{}   `json:"value,omitempty"`
	Values []interface{} `json:"values,omitempty"`
}

// ChartRequest represents a chart build request as received on the wire.
// ChartType defaults to "bar" and Agg to "sum" when omitted.
type ChartRequest struct {
	SheetName   string        `json:"sheet_name,omitempty" validate:"omitempty,max=255"`
	ChartType   string        `json:"chart_type,omitempty" validate:"omitempty,oneof=bar line pie"`
	XField      string        `json:"x_field" validate:"required"`
	YFields     []string      `json:"y_fields,omitempty" validate:"omitempty,dive,required"`
	SeriesField string        `json:"series_field,omitempty"`
	Agg         string        `json:"agg,omitempty" validate:"omitempty,oneof=sum count avg"`
	Filters     []ChartFilter `json:"filters,omitempty"`
}
