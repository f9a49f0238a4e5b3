package entity

import "time"

// MetricKind selects the computation applied by the aggregation engine.
type MetricKind string

const (
	MetricCount      MetricKind = "count"
	MetricRate       MetricKind = "rate"
	MetricAverage    MetricKind = "average"
	MetricUnique     MetricKind = "unique"
	MetricSeries     MetricKind = "series"
	MetricBreakdown  MetricKind = "breakdown"
	MetricComparison MetricKind = "comparison"
)

// Granularity is the bucket size of a time series.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
)

// MetricRequest declares one metric for the aggregation engine.
//
// Rate metrics count records whose status equals Status as a percentage of
// all records. Average and unique metrics read Field. Series metrics apply
// the Inner scalar kind per time bucket. Breakdown metrics group by Field,
// counting records or summing SumField. Comparison metrics split the window
// at Boundary and count each side. FilterField/FilterValue, when set,
// restrict the computation to records whose label equals FilterValue.
type MetricRequest struct {
	Name        string
	Kind        MetricKind
	Field       string
	Status      string
	Inner       MetricKind
	Granularity Granularity
	SumField    string
	TopK        int
	Boundary    time.Time
	FilterField string
	FilterValue string
}

// SeriesPoint is one bucket of a time series. Buckets with no records carry
// an explicit zero value so the date axis stays continuous.
type SeriesPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// BreakdownEntry is one category of a breakdown, already in descending
// value order.
type BreakdownEntry struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ComparisonValue holds two independently aggregated sub-window scalars and
// their percent change, computed from the unrounded values. PercentChange is
// nil when the before side is zero.
type ComparisonValue struct {
	BeforeLabel   string   `json:"before_label"`
	AfterLabel    string   `json:"after_label"`
	Before        float64  `json:"before"`
	After         float64  `json:"after"`
	PercentChange *float64 `json:"percent_change,omitempty"`
}

// MetricValue is one computed aggregation entry. Exactly one of the shape
// fields is populated according to Kind. Scalar values are unrounded;
// rounding happens at the presentation boundary.
type MetricValue struct {
	Kind        MetricKind       `json:"kind"`
	Unit        string           `json:"unit,omitempty"`
	Scalar      float64          `json:"scalar,omitempty"`
	Series      []SeriesPoint    `json:"series,omitempty"`
	Breakdown   []BreakdownEntry `json:"breakdown,omitempty"`
	Comparison  *ComparisonValue `json:"comparison,omitempty"`
	Granularity Granularity      `json:"granularity,omitempty"`
}

// MetricError pairs a failed metric request with its cause.
type MetricError struct {
	Metric string
	Err    error
}

// AggregationResult maps metric names to computed values, preserving the
// request order, alongside the per-metric errors collected during the same
// batch. Best-effort: a failed metric never blocks the others.
type AggregationResult struct {
	order  []string
	values map[string]MetricValue
	errs   []MetricError
}

// NewAggregationResult returns an empty result.
func NewAggregationResult() *AggregationResult {
	return &AggregationResult{values: make(map[string]MetricValue)}
}

// Add records a computed metric value, keeping insertion order.
func (r *AggregationResult) Add(name string, v MetricValue) {
	if _, exists := r.values[name]; !exists {
		r.order = append(r.order, name)
	}
	r.values[name] = v
}

// AddError records a per-metric failure.
func (r *AggregationResult) AddError(name string, err error) {
	r.errs = append(r.errs, MetricError{Metric: name, Err: err})
}

// Value looks up a metric by name.
func (r *AggregationResult) Value(name string) (MetricValue, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Names returns metric names in request order.
func (r *AggregationResult) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Errors returns the per-metric failures in occurrence order.
func (r *AggregationResult) Errors() []MetricError {
	return r.errs
}

// Len returns the number of computed metrics.
func (r *AggregationResult) Len() int {
	return len(r.order)
}
