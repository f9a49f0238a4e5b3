package entity

// ChartKind selects the visual encoding of one chart.
type ChartKind string

const (
	ChartLine        ChartKind = "line"
	ChartBar         ChartKind = "bar"
	ChartPie         ChartKind = "pie"
	ChartStackedArea ChartKind = "stacked_area"
	ChartGeoScatter  ChartKind = "geo_scatter"
)

// Series is one data series of a chart. Line, bar and stacked-area charts
// use X/Y; pie charts use Labels/Values; geo-scatter charts use
// Locations/Values with two-letter state codes.
type Series struct {
	Name      string    `json:"name,omitempty"`
	X         []string  `json:"x,omitempty"`
	Y         []float64 `json:"y,omitempty"`
	Labels    []string  `json:"labels,omitempty"`
	Values    []float64 `json:"values,omitempty"`
	Locations []string  `json:"locations,omitempty"`
	Color     string    `json:"color,omitempty"`
}

// TargetLine is a horizontal threshold drawn across a chart.
type TargetLine struct {
	Value float64 `json:"value"`
	Label string  `json:"label,omitempty"`
}

// ChartSpec is the renderer-agnostic description of one chart. Immutable
// once built; every field round-trips losslessly through plain JSON. Extra
// carries renderer hints and is restricted to primitive values by the
// serializer.
type ChartSpec struct {
	Name       string                 `json:"name"`
	Title      string                 `json:"title"`
	Kind       ChartKind              `json:"kind"`
	Series     []Series               `json:"series"`
	XTitle     string                 `json:"x_title,omitempty"`
	YTitle     string                 `json:"y_title,omitempty"`
	Horizontal bool                   `json:"horizontal,omitempty"`
	Colors     map[string]string      `json:"colors,omitempty"`
	Target     *TargetLine            `json:"target,omitempty"`
	Extra      map[string]interface{} `json:"extra,omitempty"`
}
