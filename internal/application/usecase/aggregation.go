package usecase

import (
	"fmt"
	"sort"
	"time"

	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/domain/entity"
	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/shared/types"
)

// Aggregator executes declarative metric requests over a filtered record
// set. Scalars stay unrounded here; rounding happens only when charts and
// summary cards are built.
type Aggregator struct {
	schema entity.Schema
	window entity.Window
}

// NewAggregator creates an aggregation engine for one schema and window.
func NewAggregator(schema entity.Schema, window entity.Window) *Aggregator {
	return &Aggregator{schema: schema, window: window}
}

// Run computes every requested metric in order. Best-effort batch: a failed
// metric is collected and the remaining requests still compute.
func (a *Aggregator) Run(set entity.RecordSet, requests []entity.MetricRequest) *entity.AggregationResult {
	return a.RunWithProgress(set, requests, nil)
}

// RunWithProgress is Run with a completion callback per metric, used to
// drive console progress display.
func (a *Aggregator) RunWithProgress(set entity.RecordSet, requests []entity.MetricRequest, done func(metric string)) *entity.AggregationResult {
	result := entity.NewAggregationResult()
	for _, req := range requests {
		value, err := a.compute(set, req)
		if err != nil {
			result.AddError(req.Name, err)
		} else {
			result.Add(req.Name, value)
		}
		if done != nil {
			done(req.Name)
		}
	}
	return result
}

func (a *Aggregator) compute(set entity.RecordSet, req entity.MetricRequest) (entity.MetricValue, error) {
	if req.FilterField != "" {
		if err := a.requireLabelField(req.Name, req.FilterField); err != nil {
			return entity.MetricValue{}, err
		}
		set = a.filterByLabel(set, req.FilterField, req.FilterValue)
	}

	switch req.Kind {
	case entity.MetricCount:
		return entity.MetricValue{Kind: req.Kind, Unit: "count", Scalar: float64(set.Len())}, nil

	case entity.MetricRate:
		return entity.MetricValue{Kind: req.Kind, Unit: "percent", Scalar: a.rate(set, req.Status)}, nil

	case entity.MetricAverage:
		if err := a.requireNumberField(req.Name, req.Field); err != nil {
			return entity.MetricValue{}, err
		}
		return entity.MetricValue{Kind: req.Kind, Scalar: a.average(set, req.Field)}, nil

	case entity.MetricUnique:
		if err := a.requireLabelField(req.Name, req.Field); err != nil {
			return entity.MetricValue{}, err
		}
		return entity.MetricValue{Kind: req.Kind, Unit: "count", Scalar: a.unique(set, req.Field)}, nil

	case entity.MetricSeries:
		return a.series(set, req)

	case entity.MetricBreakdown:
		return a.breakdown(set, req)

	case entity.MetricComparison:
		return a.comparison(set, req), nil

	default:
		return entity.MetricValue{}, fmt.Errorf("unsupported metric kind %q", req.Kind)
	}
}

// rate is the share of records with the given status, as an unrounded
// percentage of all records. An empty set yields an explicit zero.
func (a *Aggregator) rate(set entity.RecordSet, status string) float64 {
	if set.Len() == 0 {
		return 0
	}
	matched := 0
	for i := 0; i < set.Len(); i++ {
		if set.At(i).Status == status {
			matched++
		}
	}
	return float64(matched) / float64(set.Len()) * 100.0
}

// average is the mean of a numeric field over the records where it is
// present. Missing values are excluded from numerator and denominator.
func (a *Aggregator) average(set entity.RecordSet, field string) float64 {
	sum, n := 0.0, 0
	for i := 0; i < set.Len(); i++ {
		if v, ok := set.At(i).Number(field); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func (a *Aggregator) unique(set entity.RecordSet, field string) float64 {
	seen := make(map[string]struct{})
	for i := 0; i < set.Len(); i++ {
		if v, ok := a.labelValue(set.At(i), field); ok {
			seen[v] = struct{}{}
		}
	}
	return float64(len(seen))
}

// series buckets the window by calendar day or month and applies the inner
// scalar per bucket. Every bucket emits an entry, zero included, so a D-day
// window always yields exactly D daily points.
func (a *Aggregator) series(set entity.RecordSet, req entity.MetricRequest) (entity.MetricValue, error) {
	inner := req.Inner
	if inner == "" {
		inner = entity.MetricCount
	}
	if inner == entity.MetricAverage {
		if err := a.requireNumberField(req.Name, req.Field); err != nil {
			return entity.MetricValue{}, err
		}
	}

	granularity := req.Granularity
	if granularity == "" {
		granularity = entity.GranularityDay
	}

	buckets := make(map[time.Time][]entity.Record)
	for i := 0; i < set.Len(); i++ {
		rec := set.At(i)
		key := bucketKey(rec.Date, granularity)
		buckets[key] = append(buckets[key], rec)
	}

	unit := ""
	switch inner {
	case entity.MetricCount:
		unit = "count"
	case entity.MetricRate:
		unit = "percent"
	}

	var points []entity.SeriesPoint
	for _, key := range bucketStarts(a.window, granularity) {
		group := entity.NewRecordSet(buckets[key])
		var v float64
		switch inner {
		case entity.MetricCount:
			v = float64(group.Len())
		case entity.MetricRate:
			v = a.rate(group, req.Status)
		case entity.MetricAverage:
			v = a.average(group, req.Field)
		}
		points = append(points, entity.SeriesPoint{Date: key, Value: v})
	}

	return entity.MetricValue{
		Kind:        entity.MetricSeries,
		Unit:        unit,
		Series:      points,
		Granularity: granularity,
	}, nil
}

// breakdown groups by a label field and counts records or sums a numeric
// field per group, sorted descending. Ties keep the category's first-seen
// input order so reruns on the same input are identical. TopK truncates.
func (a *Aggregator) breakdown(set entity.RecordSet, req entity.MetricRequest) (entity.MetricValue, error) {
	if err := a.requireLabelField(req.Name, req.Field); err != nil {
		return entity.MetricValue{}, err
	}
	if req.SumField != "" {
		if err := a.requireNumberField(req.Name, req.SumField); err != nil {
			return entity.MetricValue{}, err
		}
	}

	totals := make(map[string]float64)
	firstSeen := make(map[string]int)
	var order []string

	for i := 0; i < set.Len(); i++ {
		rec := set.At(i)
		label, ok := a.labelValue(rec, req.Field)
		if !ok {
			continue
		}
		if _, known := firstSeen[label]; !known {
			firstSeen[label] = len(order)
			order = append(order, label)
		}
		if req.SumField != "" {
			if v, has := rec.Number(req.SumField); has {
				totals[label] += v
			}
		} else {
			totals[label]++
		}
	}

	entries := make([]entity.BreakdownEntry, 0, len(order))
	for _, label := range order {
		entries = append(entries, entity.BreakdownEntry{Label: label, Value: totals[label]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})
	if req.TopK > 0 && len(entries) > req.TopK {
		entries = entries[:req.TopK]
	}

	unit := "count"
	if req.SumField != "" {
		unit = ""
	}

	return entity.MetricValue{Kind: entity.MetricBreakdown, Unit: unit, Breakdown: entries}, nil
}

// comparison splits the window at the boundary date and counts each side
// independently. Percent change comes from the unrounded counts; nil when
// the before side is empty.
func (a *Aggregator) comparison(set entity.RecordSet, req entity.MetricRequest) entity.MetricValue {
	before, after := a.window.SplitAt(req.Boundary)

	beforeCount, afterCount := 0.0, 0.0
	for i := 0; i < set.Len(); i++ {
		d := set.At(i).Date
		if before.Contains(d) {
			beforeCount++
		} else if after.Contains(d) {
			afterCount++
		}
	}

	value := entity.ComparisonValue{
		BeforeLabel: "Before",
		AfterLabel:  "During",
		Before:      beforeCount,
		After:       afterCount,
	}
	if beforeCount > 0 {
		change := (afterCount - beforeCount) / beforeCount * 100.0
		value.PercentChange = &change
	}

	return entity.MetricValue{Kind: entity.MetricComparison, Unit: "count", Comparison: &value}
}

// filterByLabel keeps only the records whose label field equals value,
// preserving order.
func (a *Aggregator) filterByLabel(set entity.RecordSet, field, value string) entity.RecordSet {
	var kept []entity.Record
	for i := 0; i < set.Len(); i++ {
		rec := set.At(i)
		if v, ok := a.labelValue(rec, field); ok && v == value {
			kept = append(kept, rec)
		}
	}
	return entity.NewRecordSet(kept)
}

// labelValue resolves a status, geo or category field to its label for one
// record. ok is false for missing values and for numeric fields.
func (a *Aggregator) labelValue(rec entity.Record, field string) (string, bool) {
	col, ok := a.schema.Column(field)
	if !ok {
		return "", false
	}
	switch col.Kind {
	case entity.ColumnStatus:
		return rec.Status, rec.Status != ""
	case entity.ColumnGeo:
		return rec.State, rec.State != ""
	case entity.ColumnCategory:
		v := rec.Category(field)
		return v, v != ""
	default:
		return "", false
	}
}

func (a *Aggregator) requireLabelField(metric, field string) error {
	col, ok := a.schema.Column(field)
	if !ok || col.Kind == entity.ColumnNumber || col.Kind == entity.ColumnDate {
		return &types.UnknownMetricError{Metric: metric, Field: field}
	}
	return nil
}

func (a *Aggregator) requireNumberField(metric, field string) error {
	col, ok := a.schema.Column(field)
	if !ok || col.Kind != entity.ColumnNumber {
		return &types.UnknownMetricError{Metric: metric, Field: field}
	}
	return nil
}

func bucketKey(t time.Time, g entity.Granularity) time.Time {
	if g == entity.GranularityMonth {
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// bucketStarts enumerates every bucket start covered by the window, in
// ascending order.
func bucketStarts(w entity.Window, g entity.Granularity) []time.Time {
	var starts []time.Time
	if g == entity.GranularityMonth {
		for m := time.Date(w.Start.Year(), w.Start.Month(), 1, 0, 0, 0, 0, time.UTC); !m.After(w.End); m = m.AddDate(0, 1, 0) {
			starts = append(starts, m)
		}
		return starts
	}
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		starts = append(starts, d)
	}
	return starts
}
