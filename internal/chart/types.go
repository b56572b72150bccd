// Package chart executes the filter -> group -> aggregate -> shape
// pipeline that turns raw sheet rows into chart-ready series plus a
// declarative Vega-Lite document. Requests are parsed eagerly into
// strict structures at the boundary so the pipeline stages never
// re-validate shape.
package chart

import (
	"fmt"

	"sheetviz/internal/sheet"
	v1 "sheetviz/pkg/contracts/api/v1"
)

// Kind is the requested chart kind.
type Kind string

const (
	KindBar  Kind = "bar"
	KindLine Kind = "line"
	KindPie  Kind = "pie"
)

// Aggregation is the reduction applied per group.
type Aggregation string

const (
	AggSum   Aggregation = "sum"
	AggCount Aggregation = "count"
	AggAvg   Aggregation = "avg"
)

// Operator is a filter comparison operator.
type Operator string

const (
	OpEq  Operator = "eq"
	OpNeq Operator = "neq"
	OpIn  Operator = "in"
	OpGte Operator = "gte"
	OpLte Operator = "lte"
)

var validOperators = map[Operator]bool{
	OpEq: true, OpNeq: true, OpIn: true, OpGte: true, OpLte: true,
}

// Predicate is one parsed filter. A predicate with an empty Field or
// Op is carried through and skipped by the evaluator; this tolerance
// keeps stale saved filters from breaking requests.
type Predicate struct {
	Field  string
	Op     Operator
	Value  sheet.Value
	Values []sheet.Value
}

// Request is a fully validated chart request.
type Request struct {
	SheetName   string
	Kind        Kind
	XField      string
	YFields     []string
	SeriesField string
	Agg         Aggregation
	Filters     []Predicate
}

// ParseRequest converts a wire-level chart request into a strict
// Request, applying defaults (bar, sum) and rejecting contract
// violations before any row is read.
func ParseRequest(dto v1.ChartRequest) (Request, error) {
	kind := Kind(dto.ChartType)
	if dto.ChartType == "" {
		kind = KindBar
	}
	switch kind {
	case KindBar, KindLine, KindPie:
	default:
		return Request{}, fmt.Errorf("%w: unsupported chart type %q", ErrInvalidRequest, dto.ChartType)
	}

	agg := Aggregation(dto.Agg)
	if dto.Agg == "" {
		agg = AggSum
	}
	switch agg {
	case AggSum, AggCount, AggAvg:
	default:
		return Request{}, fmt.Errorf("%w: unsupported aggregation %q", ErrInvalidRequest, dto.Agg)
	}

	if dto.XField == "" {
		return Request{}, fmt.Errorf("%w: x_field is required", ErrInvalidRequest)
	}

	// Pie charts are single-series only.
	if kind == KindPie && dto.SeriesField != "" {
		return Request{}, fmt.Errorf("%w: pie chart does not support series_field", ErrInvalidRequest)
	}

	filters, err := parsePredicates(dto.Filters)
	if err != nil {
		return Request{}, err
	}

	return Request{
		SheetName:   dto.SheetName,
		Kind:        kind,
		XField:      dto.XField,
		YFields:     dto.YFields,
		SeriesField: dto.SeriesField,
		Agg:         agg,
		Filters:     filters,
	}, nil
}

func parsePredicates(filters []v1.ChartFilter) ([]Predicate, error) {
	if len(filters) == 0 {
		return nil, nil
	}

	preds := make([]Predicate, 0, len(filters))
	for _, f := range filters {
		op := Operator(f.Op)
		if f.Op != "" && !validOperators[op] {
			return nil, fmt.Errorf("%w: unsupported operator %q", ErrInvalidFilter, f.Op)
		}

		p := Predicate{Field: f.Field, Op: op, Value: sheet.FromAny(f.Value)}
		if f.Values != nil {
			p.Values = make([]sheet.Value, len(f.Values))
			for i, v := range f.Values {
				p.Values[i] = sheet.FromAny(v)
			}
		}
		preds = append(preds, p)
	}
	return preds, nil
}
