package api

// Structure API Responses

// ColumnDescriptor describes one column of a previewed sheet.
// Type is one of "number", "category", "datetime".
type ColumnDescriptor struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// SheetStructure is the preview of one logical sheet: column descriptors,
// a bounded sample (rows as ordered value arrays, in column order) and
// truncation metadata.
type SheetStructure struct {
	Name       string             `json:"name"`
	Columns    []ColumnDescriptor `json:"columns"`
	SampleRows [][]interface{}    `json:"sample_rows"`
	TotalRows  int                `json:"total_rows"`
	Truncated  bool               `json:"truncated"`
}

// StructureResponse is the body of a successful structure preview request.
type StructureResponse struct {
	Sheets []SheetStructure `json:"sheets"`
}

// Chart API Responses

// ChartPoint is a single (x, y) point of a series. X is a number, string
// or ISO-8601 timestamp string depending on the source column.
type ChartPoint struct {
	X interface{} `json:"x"`
	Y float64     `json:"y"`
}

// ChartSeries is one named series of ordered points.
type ChartSeries struct {
	Name string       `json:"name"`
	Data []ChartPoint `json:"data"`
}

// ChartResponse is the body of a successful chart build request. VegaSpec
// is a self-contained Vega-Lite v5 document consumed by the rendering layer.
type ChartResponse struct {
	ChartType string        `json:"chart_type"`
	XField    string        `json:"x_field"`
	YFields   []string      `json:"y_fields"`
	Series    []ChartSeries `json:"series"`
	VegaSpec  interface{}   `json:"vega_spec"`
}
