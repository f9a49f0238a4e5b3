package usecase

import (
	"fmt"
	"math"
	"time"

	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/domain/entity"
	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/shared/types"
)

// ChartMetric binds one aggregation result entry to a rendered series.
type ChartMetric struct {
	Metric string
	Label  string
	Color  string
}

// ChartDef declares how a chart is assembled from aggregation results. The
// catalog for each profile is a list of these.
type ChartDef struct {
	Name       string
	Title      string
	Kind       entity.ChartKind
	XTitle     string
	YTitle     string
	Horizontal bool
	Metrics    []ChartMetric
	Colors     map[string]string
	Target     *entity.TargetLine
	Extra      map[string]interface{}
}

// BuildChart turns aggregation results into a renderable chart spec. Values
// are rounded here, at the presentation boundary. A request whose data
// cannot form the declared shape fails with a ChartShapeError.
func BuildChart(def ChartDef, result *entity.AggregationResult, precision int) (entity.ChartSpec, error) {
	if len(def.Metrics) == 0 {
		return entity.ChartSpec{}, &types.ChartShapeError{Chart: def.Name, Reason: "no metrics bound"}
	}

	series := make([]entity.Series, 0, len(def.Metrics))
	for _, cm := range def.Metrics {
		value, ok := result.Value(cm.Metric)
		if !ok {
			return entity.ChartSpec{}, &types.ChartShapeError{
				Chart:  def.Name,
				Metric: cm.Metric,
				Reason: "metric unavailable",
			}
		}
		s, err := buildSeries(def, cm, value, precision)
		if err != nil {
			return entity.ChartSpec{}, err
		}
		series = append(series, s)
	}

	if def.Kind == entity.ChartLine || def.Kind == entity.ChartStackedArea {
		for i := 1; i < len(series); i++ {
			if len(series[i].X) != len(series[0].X) {
				return entity.ChartSpec{}, &types.ChartShapeError{
					Chart:  def.Name,
					Metric: def.Metrics[i].Metric,
					Reason: fmt.Sprintf("series length %d does not match %d", len(series[i].X), len(series[0].X)),
				}
			}
		}
	}

	return entity.ChartSpec{
		Name:       def.Name,
		Title:      def.Title,
		Kind:       def.Kind,
		Series:     series,
		XTitle:     def.XTitle,
		YTitle:     def.YTitle,
		Horizontal: def.Horizontal,
		Colors:     def.Colors,
		Target:     def.Target,
		Extra:      def.Extra,
	}, nil
}

func buildSeries(def ChartDef, cm ChartMetric, value entity.MetricValue, precision int) (entity.Series, error) {
	switch def.Kind {
	case entity.ChartLine, entity.ChartStackedArea:
		if value.Kind != entity.MetricSeries {
			return entity.Series{}, shapeMismatch(def, cm, value)
		}
		return timeSeries(cm, value, precision), nil

	case entity.ChartBar:
		switch value.Kind {
		case entity.MetricSeries:
			return timeSeries(cm, value, precision), nil
		case entity.MetricBreakdown:
			s := entity.Series{Name: cm.Label, Color: cm.Color}
			for _, e := range value.Breakdown {
				s.X = append(s.X, e.Label)
				s.Y = append(s.Y, roundTo(e.Value, precision))
			}
			return s, nil
		case entity.MetricComparison:
			c := value.Comparison
			return entity.Series{
				Name:  cm.Label,
				X:     []string{c.BeforeLabel, c.AfterLabel},
				Y:     []float64{roundTo(c.Before, precision), roundTo(c.After, precision)},
				Color: cm.Color,
			}, nil
		default:
			return entity.Series{}, shapeMismatch(def, cm, value)
		}

	case entity.ChartPie:
		if value.Kind != entity.MetricBreakdown {
			return entity.Series{}, shapeMismatch(def, cm, value)
		}
		if len(value.Breakdown) == 0 {
			return entity.Series{}, &types.ChartShapeError{Chart: def.Name, Metric: cm.Metric, Reason: "no categories to plot"}
		}
		s := entity.Series{Name: cm.Label, Color: cm.Color}
		for _, e := range value.Breakdown {
			s.Labels = append(s.Labels, e.Label)
			s.Values = append(s.Values, roundTo(e.Value, precision))
		}
		return s, nil

	case entity.ChartGeoScatter:
		if value.Kind != entity.MetricBreakdown {
			return entity.Series{}, shapeMismatch(def, cm, value)
		}
		if len(value.Breakdown) == 0 {
			return entity.Series{}, &types.ChartShapeError{Chart: def.Name, Metric: cm.Metric, Reason: "no locations to plot"}
		}
		s := entity.Series{Name: cm.Label, Color: cm.Color}
		for _, e := range value.Breakdown {
			s.Locations = append(s.Locations, e.Label)
			s.Values = append(s.Values, roundTo(e.Value, precision))
		}
		return s, nil

	default:
		return entity.Series{}, &types.ChartShapeError{Chart: def.Name, Reason: fmt.Sprintf("unsupported chart kind %q", def.Kind)}
	}
}

func timeSeries(cm ChartMetric, value entity.MetricValue, precision int) entity.Series {
	s := entity.Series{Name: cm.Label, Color: cm.Color}
	for _, p := range value.Series {
		s.X = append(s.X, formatDateLabel(p.Date, value.Granularity))
		s.Y = append(s.Y, roundTo(p.Value, precision))
	}
	return s
}

func shapeMismatch(def ChartDef, cm ChartMetric, value entity.MetricValue) error {
	return &types.ChartShapeError{
		Chart:  def.Name,
		Metric: cm.Metric,
		Reason: fmt.Sprintf("metric kind %q cannot render as %q", value.Kind, def.Kind),
	}
}

func formatDateLabel(t time.Time, g entity.Granularity) string {
	if g == entity.GranularityMonth {
		return t.Format("2006-01")
	}
	return t.Format("2006-01-02")
}

// roundTo rounds half away from zero to the given number of decimals.
func roundTo(v float64, precision int) float64 {
	if precision < 0 {
		precision = 0
	}
	factor := math.Pow(10, float64(precision))
	return math.Round(v*factor) / factor
}
