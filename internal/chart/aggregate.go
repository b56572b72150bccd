package chart

import (
	"fmt"
	"sort"

	"sheetviz/internal/sheet"
)

// groupRow is one aggregated tuple: a distinct (x, series) combination
// carrying the reduced scalar.
type groupRow struct {
	x      sheet.Value
	series sheet.Value
	value  float64
}

// aggregated is the output of the grouping stage, sorted ascending by
// (x, series). The sort is a hard contract: line charts render
// incorrectly without monotonic x order.
type aggregated struct {
	groups       []groupRow
	measureLabel string
	yFields      []string
}

type bucket struct {
	x      sheet.Value
	series sheet.Value
	sum    float64
	valid  int
	rows   int
}

// aggregate groups the filtered rows by x-field (and series-field when
// present) and reduces the measure per group. Null group-key values
// form their own group; they are not dropped. For sum/avg the measure
// column is coerced to numeric per value, excluding unparseable cells
// from the aggregate but not the row.
func aggregate(s *sheet.Sheet, rows []sheet.Row, req Request) (*aggregated, error) {
	xCol, ok := s.ColumnIndex(req.XField)
	if !ok {
		return nil, fmt.Errorf("%w: x_field %q not found in sheet", ErrInvalidRequest, req.XField)
	}

	seriesCol := -1
	if req.SeriesField != "" {
		seriesCol, ok = s.ColumnIndex(req.SeriesField)
		if !ok {
			return nil, fmt.Errorf("%w: series_field %q not found in sheet", ErrInvalidRequest, req.SeriesField)
		}
	}

	out := &aggregated{measureLabel: "count", yFields: req.YFields}

	measureCol := -1
	if req.Agg != AggCount {
		if len(req.YFields) == 0 {
			return nil, fmt.Errorf("%w: y_fields is required for %s aggregation", ErrMissingMeasure, req.Agg)
		}
		measure := req.YFields[0]
		measureCol, ok = s.ColumnIndex(measure)
		if !ok {
			return nil, fmt.Errorf("%w: column %q not found in sheet", ErrMissingMeasure, measure)
		}
		out.measureLabel = measure
		out.yFields = []string{measure}

		parseable := 0
		for _, row := range rows {
			if _, ok := row[measureCol].AsNumber(); ok {
				parseable++
			}
		}
		if parseable == 0 {
			return nil, fmt.Errorf("%w: %q has no numeric values", ErrNonNumericMeasure, measure)
		}
	} else if len(out.yFields) == 0 {
		out.yFields = []string{"count"}
	}

	buckets := make(map[string]*bucket)
	for _, row := range rows {
		x := row[xCol]
		series := sheet.Null()
		if seriesCol >= 0 {
			series = row[seriesCol]
		}

		key := x.GroupKey() + "\x00" + series.GroupKey()
		b, ok := buckets[key]
		if !ok {
			b = &bucket{x: x, series: series}
			buckets[key] = b
		}
		b.rows++
		if measureCol >= 0 {
			if f, ok := row[measureCol].AsNumber(); ok {
				b.sum += f
				b.valid++
			}
		}
	}

	groups := make([]groupRow, 0, len(buckets))
	for _, b := range buckets {
		groups = append(groups, groupRow{x: b.x, series: b.series, value: reduce(b, req.Agg)})
	}
	sort.Slice(groups, func(i, j int) bool {
		if !groups[i].x.Equal(groups[j].x) {
			return sheet.Less(groups[i].x, groups[j].x)
		}
		return sheet.Less(groups[i].series, groups[j].series)
	})

	out.groups = groups
	return out, nil
}

func reduce(b *bucket, agg Aggregation) float64 {
	switch agg {
	case AggCount:
		return float64(b.rows)
	case AggAvg:
		if b.valid == 0 {
			return 0
		}
		return b.sum / float64(b.valid)
	default:
		return b.sum
	}
}
