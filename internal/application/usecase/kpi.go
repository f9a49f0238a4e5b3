package usecase

import (
	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/domain/entity"
)

// KPIRequest describes one summary indicator. The scalar is computed twice,
// once for the current analysis period and once for the period before it,
// to produce a trend.
type KPIRequest struct {
	Name   string
	Label  string
	Unit   string
	Kind   entity.MetricKind
	Status string
	Field  string
}

// BuildKPIs computes each indicator for the current and previous analysis
// periods. When the report window is too short to hold two full periods it
// is halved instead, so a trend is still available.
func BuildKPIs(set entity.RecordSet, schema entity.Schema, window entity.Window, analysisDays int, requests []KPIRequest) []entity.KPI {
	previousWindow, currentWindow := analysisSplit(window, analysisDays)
	currentSet := set.Filter(currentWindow)
	previousSet := set.Filter(previousWindow)
	agg := NewAggregator(schema, window)

	kpis := make([]entity.KPI, 0, len(requests))
	for _, req := range requests {
		current := kpiScalar(agg, currentSet, req)
		previous := kpiScalar(agg, previousSet, req)

		var percentChange *float64
		if previous > 0 {
			change := (current - previous) / previous * 100.0
			percentChange = &change
		}

		kpis = append(kpis, entity.KPI{
			Name:          req.Name,
			Label:         req.Label,
			Unit:          req.Unit,
			Value:         current,
			Previous:      previous,
			PercentChange: percentChange,
		})
	}
	return kpis
}

// analysisSplit returns the previous and current periods inside the window.
// With room for two full periods both have analysisDays days and end at the
// window end; otherwise the window is split in half.
func analysisSplit(w entity.Window, analysisDays int) (previous, current entity.Window) {
	if analysisDays > 0 && w.Days() >= 2*analysisDays {
		current = entity.Window{Start: w.End.AddDate(0, 0, -(analysisDays - 1)), End: w.End}
		previous = entity.Window{Start: current.Start.AddDate(0, 0, -analysisDays), End: current.Start.AddDate(0, 0, -1)}
		return previous, current
	}
	half := w.Days() / 2
	previous = entity.Window{Start: w.Start, End: w.Start.AddDate(0, 0, half-1)}
	current = entity.Window{Start: w.Start.AddDate(0, 0, half), End: w.End}
	return previous, current
}

func kpiScalar(a *Aggregator, set entity.RecordSet, req KPIRequest) float64 {
	switch req.Kind {
	case entity.MetricRate:
		return a.rate(set, req.Status)
	case entity.MetricAverage:
		return a.average(set, req.Field)
	case entity.MetricUnique:
		return a.unique(set, req.Field)
	default:
		return float64(set.Len())
	}
}
