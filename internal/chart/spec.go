package chart

import (
	"fmt"

	v1 "sheetviz/pkg/contracts/api/v1"
)

const vegaSchemaURL = "https://vega.github.io/schema/vega-lite/v5.json"

// VegaSpec is a self-contained Vega-Lite v5 document: the flattened
// data, a mark and its encodings. It is the single artifact the
// external rendering layer consumes.
type VegaSpec struct {
	Schema   string       `json:"$schema"`
	Data     VegaData     `json:"data"`
	Mark     interface{}  `json:"mark"`
	Encoding VegaEncoding `json:"encoding"`
}

// VegaData embeds the flattened records inline.
type VegaData struct {
	Values []VegaDatum `json:"values"`
}

// VegaDatum is one flattened point: series order first, point order
// within a series second, mirroring the series list exactly.
type VegaDatum struct {
	X      interface{} `json:"x"`
	Y      float64     `json:"y"`
	Series string      `json:"series"`
}

// VegaMark is the structured mark form used for arcs.
type VegaMark struct {
	Type    string `json:"type"`
	Tooltip bool   `json:"tooltip,omitempty"`
}

// VegaEncoding holds the channel encodings; unused channels are omitted.
type VegaEncoding struct {
	X     *VegaField `json:"x,omitempty"`
	Y     *VegaField `json:"y,omitempty"`
	Theta *VegaField `json:"theta,omitempty"`
	Color *VegaField `json:"color,omitempty"`
}

// VegaField is one channel encoding.
type VegaField struct {
	Field string `json:"field"`
	Type  string `json:"type"`
	Title string `json:"title,omitempty"`
}

// buildVegaSpec maps the chart kind and shaped series into a Vega-Lite
// document. Bar uses a nominal x axis, line a temporal one (the caller
// guarantees date-like x values for line charts; that is not
// re-validated here), pie an arc mark with the value on the angle and
// the x category on color. Bar and line gain a color-by-series encoding
// only when more than one series is present.
func buildVegaSpec(kind Kind, series []v1.ChartSeries, xField, measureLabel, seriesField string) (*VegaSpec, error) {
	values := flatten(series)

	colorTitle := seriesField
	if colorTitle == "" {
		colorTitle = "series"
	}

	switch kind {
	case KindBar, KindLine:
		xType := "nominal"
		if kind == KindLine {
			xType = "temporal"
		}
		spec := &VegaSpec{
			Schema: vegaSchemaURL,
			Data:   VegaData{Values: values},
			Mark:   string(kind),
			Encoding: VegaEncoding{
				X: &VegaField{Field: "x", Type: xType, Title: xField},
				Y: &VegaField{Field: "y", Type: "quantitative", Title: measureLabel},
			},
		}
		if len(series) > 1 {
			spec.Encoding.Color = &VegaField{Field: "series", Type: "nominal", Title: colorTitle}
		}
		return spec, nil

	case KindPie:
		return &VegaSpec{
			Schema: vegaSchemaURL,
			Data:   VegaData{Values: values},
			Mark:   VegaMark{Type: "arc", Tooltip: true},
			Encoding: VegaEncoding{
				Theta: &VegaField{Field: "y", Type: "quantitative", Title: measureLabel},
				Color: &VegaField{Field: "x", Type: "nominal", Title: xField},
			},
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedChartKind, kind)
	}
}

// flatten produces one record per point, preserving series order then
// point order.
func flatten(series []v1.ChartSeries) []VegaDatum {
	var values []VegaDatum
	for _, s := range series {
		for _, p := range s.Data {
			values = append(values, VegaDatum{X: p.X, Y: p.Y, Series: s.Name})
		}
	}
	return values
}
