package chart

import (
	v1 "sheetviz/pkg/contracts/api/v1"
)

// shapeSeries converts sorted group rows into named series. Without a
// series split there is a single series named after the measure label.
// With a split, one series is emitted per distinct series-key value in
// first-seen order over the x-sorted groups, so each series is itself
// sorted by x. A null series key gets the literal "(empty)" label. The
// y value is always the reduced float; timestamp x values export as
// ISO-8601 strings.
func shapeSeries(agg *aggregated, hasSeries bool, measureLabel string) []v1.ChartSeries {
	if !hasSeries {
		points := make([]v1.ChartPoint, len(agg.groups))
		for i, g := range agg.groups {
			points[i] = v1.ChartPoint{X: g.x.Export(), Y: g.value}
		}
		return []v1.ChartSeries{{Name: measureLabel, Data: points}}
	}

	index := make(map[string]int)
	var series []v1.ChartSeries
	for _, g := range agg.groups {
		name := g.series.Label()
		i, ok := index[name]
		if !ok {
			i = len(series)
			index[name] = i
			series = append(series, v1.ChartSeries{Name: name})
		}
		series[i].Data = append(series[i].Data, v1.ChartPoint{X: g.x.Export(), Y: g.value})
	}
	return series
}
