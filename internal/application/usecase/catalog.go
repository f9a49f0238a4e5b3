package usecase

import (
	"fmt"
	"time"

	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/domain/entity"
	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/shared/types"
)

// SectionDef places built charts into a titled report section.
type SectionDef struct {
	Name   string
	Title  string
	Charts []string
}

var delayTypes = []string{"carrier", "weather", "nas", "security", "late_aircraft"}

var delayTypeColors = map[string]string{
	"carrier":       "#3498db",
	"weather":       "#9b59b6",
	"nas":           "#f39c12",
	"security":      "#e74c3c",
	"late_aircraft": "#1abc9c",
}

var statusColors = map[string]string{
	entity.StatusOnTime:    "#2ecc71",
	entity.StatusDelayed:   "#f39c12",
	entity.StatusCancelled: "#e74c3c",
	entity.StatusDiverted:  "#9b59b6",
}

var damageColors = map[string]string{
	"None":        "#2ecc71",
	"Minor":       "#f1c40f",
	"Substantial": "#e67e22",
	"Destroyed":   "#e74c3c",
}

// MetricCatalog returns the standard metric requests of a profile. Names
// here are the vocabulary of the metrics config option.
func MetricCatalog(cfg *types.Config) []entity.MetricRequest {
	if cfg.Profile == "wildlife" {
		return wildlifeMetrics(cfg)
	}
	return flightMetrics(cfg)
}

func flightMetrics(cfg *types.Config) []entity.MetricRequest {
	requests := []entity.MetricRequest{
		{Name: "total_flights", Kind: entity.MetricCount},
		{Name: "on_time_rate", Kind: entity.MetricRate, Status: entity.StatusOnTime},
		{Name: "cancellation_rate", Kind: entity.MetricRate, Status: entity.StatusCancelled},
		{Name: "avg_delay", Kind: entity.MetricAverage, Field: "delay_minutes"},
		{Name: "daily_flights", Kind: entity.MetricSeries, Inner: entity.MetricCount, Granularity: entity.GranularityDay},
		{Name: "monthly_volume", Kind: entity.MetricSeries, Inner: entity.MetricCount, Granularity: entity.GranularityMonth},
		{Name: "daily_delayed", Kind: entity.MetricSeries, Inner: entity.MetricCount, Granularity: entity.GranularityDay, FilterField: "status", FilterValue: entity.StatusDelayed},
		{Name: "daily_cancelled", Kind: entity.MetricSeries, Inner: entity.MetricCount, Granularity: entity.GranularityDay, FilterField: "status", FilterValue: entity.StatusCancelled},
		{Name: "on_time_daily", Kind: entity.MetricSeries, Inner: entity.MetricRate, Status: entity.StatusOnTime, Granularity: entity.GranularityDay},
		{Name: "avg_delay_daily", Kind: entity.MetricSeries, Inner: entity.MetricAverage, Field: "delay_minutes", Granularity: entity.GranularityDay},
		{Name: "status_mix", Kind: entity.MetricBreakdown, Field: "status"},
		{Name: "delay_types", Kind: entity.MetricBreakdown, Field: "delay_type"},
		{Name: "airlines_top", Kind: entity.MetricBreakdown, Field: "airline", TopK: cfg.TopK},
	}
	for _, dt := range delayTypes {
		requests = append(requests, entity.MetricRequest{
			Name:        "daily_delay_" + dt,
			Kind:        entity.MetricSeries,
			Inner:       entity.MetricCount,
			Granularity: entity.GranularityDay,
			FilterField: "delay_type",
			FilterValue: dt,
		})
	}
	return requests
}

func wildlifeMetrics(cfg *types.Config) []entity.MetricRequest {
	boundary := parseBoundary(cfg.BoundaryDate)
	return []entity.MetricRequest{
		{Name: "total_strikes", Kind: entity.MetricCount},
		{Name: "monthly_strikes", Kind: entity.MetricSeries, Inner: entity.MetricCount, Granularity: entity.GranularityMonth},
		{Name: "strikes_by_state", Kind: entity.MetricBreakdown, Field: "state"},
		{Name: "top_species", Kind: entity.MetricBreakdown, Field: "species", TopK: cfg.TopK},
		{Name: "top_airports", Kind: entity.MetricBreakdown, Field: "airport", TopK: cfg.TopK},
		{Name: "damage_mix", Kind: entity.MetricBreakdown, Field: "damage"},
		{Name: "phase_mix", Kind: entity.MetricBreakdown, Field: "phase_of_flight"},
		{Name: "time_of_day_mix", Kind: entity.MetricBreakdown, Field: "time_of_day"},
		{Name: "before_during", Kind: entity.MetricComparison, Boundary: boundary},
		{Name: "unique_states", Kind: entity.MetricUnique, Field: "state"},
		{Name: "unique_species", Kind: entity.MetricUnique, Field: "species"},
		{Name: "unique_aircraft", Kind: entity.MetricUnique, Field: "aircraft"},
		{Name: "unique_airports", Kind: entity.MetricUnique, Field: "airport"},
		{Name: "avg_height", Kind: entity.MetricAverage, Field: "height"},
	}
}

// ChartCatalog returns the standard charts of a profile, bound to catalog
// metric names.
func ChartCatalog(cfg *types.Config) []ChartDef {
	if cfg.Profile == "wildlife" {
		return wildlifeCharts(cfg)
	}
	return flightCharts(cfg)
}

func flightCharts(cfg *types.Config) []ChartDef {
	stacked := ChartDef{
		Name:   "delay-composition",
		Title:  "Delay Causes Over Time",
		Kind:   entity.ChartStackedArea,
		XTitle: "Date",
		YTitle: "Delayed Flights",
	}
	for _, dt := range delayTypes {
		stacked.Metrics = append(stacked.Metrics, ChartMetric{
			Metric: "daily_delay_" + dt,
			Label:  dt,
			Color:  delayTypeColors[dt],
		})
	}

	return []ChartDef{
		{
			Name:   "on-time-trend",
			Title:  "Daily On-Time Performance",
			Kind:   entity.ChartLine,
			XTitle: "Date",
			YTitle: "On-Time %",
			Metrics: []ChartMetric{
				{Metric: "on_time_daily", Label: "On-Time %", Color: "#2ecc71"},
			},
			Target: &entity.TargetLine{
				Value: cfg.TargetOnTime,
				Label: fmt.Sprintf("Target: %.0f%%", cfg.TargetOnTime),
			},
		},
		{
			Name:   "average-delay",
			Title:  "Average Delay Duration",
			Kind:   entity.ChartLine,
			XTitle: "Date",
			YTitle: "Minutes",
			Metrics: []ChartMetric{
				{Metric: "avg_delay_daily", Label: "Avg Delay (min)", Color: "#f39c12"},
			},
		},
		{
			Name:   "daily-operations",
			Title:  "Daily Flight Operations",
			Kind:   entity.ChartLine,
			XTitle: "Date",
			YTitle: "Flights",
			Metrics: []ChartMetric{
				{Metric: "daily_flights", Label: "Total", Color: "#3498db"},
				{Metric: "daily_delayed", Label: "Delayed", Color: "#f39c12"},
				{Metric: "daily_cancelled", Label: "Cancelled", Color: "#e74c3c"},
			},
		},
		{
			Name:  "status-distribution",
			Title: "Flight Status Distribution",
			Kind:  entity.ChartPie,
			Metrics: []ChartMetric{
				{Metric: "status_mix", Label: "Status"},
			},
			Colors: statusColors,
		},
		{
			Name:   "delay-types",
			Title:  "Delays by Cause",
			Kind:   entity.ChartBar,
			XTitle: "Cause",
			YTitle: "Delayed Flights",
			Metrics: []ChartMetric{
				{Metric: "delay_types", Label: "Delays", Color: "#3498db"},
			},
		},
		stacked,
	}
}

func wildlifeCharts(cfg *types.Config) []ChartDef {
	boundary := parseBoundary(cfg.BoundaryDate)
	return []ChartDef{
		{
			Name:   "monthly-strikes",
			Title:  "Wildlife Strikes per Month",
			Kind:   entity.ChartLine,
			XTitle: "Month",
			YTitle: "Strikes",
			Metrics: []ChartMetric{
				{Metric: "monthly_strikes", Label: "Strikes", Color: "#3498db"},
			},
		},
		{
			Name:  "strikes-by-state",
			Title: "Strikes by State",
			Kind:  entity.ChartGeoScatter,
			Metrics: []ChartMetric{
				{Metric: "strikes_by_state", Label: "Strikes"},
			},
		},
		{
			Name:       "top-species",
			Title:      "Most Struck Species",
			Kind:       entity.ChartBar,
			XTitle:     "Strikes",
			Horizontal: true,
			Metrics: []ChartMetric{
				{Metric: "top_species", Label: "Strikes", Color: "#9b59b6"},
			},
		},
		{
			Name:   "before-during",
			Title:  fmt.Sprintf("Strikes Before and After %s", boundary.Format("2006-01-02")),
			Kind:   entity.ChartBar,
			YTitle: "Strikes",
			Metrics: []ChartMetric{
				{Metric: "before_during", Label: "Strikes"},
			},
			Colors: map[string]string{"Before": "#2ecc71", "During": "#e74c3c"},
		},
		{
			Name:  "damage-severity",
			Title: "Damage Severity",
			Kind:  entity.ChartPie,
			Metrics: []ChartMetric{
				{Metric: "damage_mix", Label: "Damage"},
			},
			Colors: damageColors,
		},
		{
			Name:   "phase-of-flight",
			Title:  "Strikes by Phase of Flight",
			Kind:   entity.ChartBar,
			XTitle: "Phase",
			YTitle: "Strikes",
			Metrics: []ChartMetric{
				{Metric: "phase_mix", Label: "Strikes", Color: "#1abc9c"},
			},
		},
		{
			Name:       "top-airports",
			Title:      "Airports with Most Strikes",
			Kind:       entity.ChartBar,
			XTitle:     "Strikes",
			Horizontal: true,
			Metrics: []ChartMetric{
				{Metric: "top_airports", Label: "Strikes", Color: "#e67e22"},
			},
		},
		{
			Name:  "time-of-day",
			Title: "Strikes by Time of Day",
			Kind:  entity.ChartPie,
			Metrics: []ChartMetric{
				{Metric: "time_of_day_mix", Label: "Strikes"},
			},
		},
	}
}

// SectionLayout returns the report sections of a profile in render order.
func SectionLayout(profile string) []SectionDef {
	if profile == "wildlife" {
		return []SectionDef{
			{Name: "activity", Title: "Strike Activity", Charts: []string{"monthly-strikes", "before-during"}},
			{Name: "geography", Title: "Geography", Charts: []string{"strikes-by-state", "top-airports"}},
			{Name: "severity", Title: "Severity and Species", Charts: []string{"damage-severity", "top-species"}},
			{Name: "context", Title: "Operational Context", Charts: []string{"phase-of-flight", "time-of-day"}},
		}
	}
	return []SectionDef{
		{Name: "performance", Title: "Performance Trends", Charts: []string{"on-time-trend", "average-delay"}},
		{Name: "operations", Title: "Daily Operations", Charts: []string{"daily-operations", "delay-composition"}},
		{Name: "distributions", Title: "Distributions", Charts: []string{"status-distribution", "delay-types"}},
	}
}

// KPICatalog returns the trend indicators of a profile. The wildlife report
// builds its summary from plain scalars instead.
func KPICatalog(profile string) []KPIRequest {
	if profile == "wildlife" {
		return nil
	}
	return []KPIRequest{
		{Name: "total_flights", Label: "Total Flights", Kind: entity.MetricCount},
		{Name: "on_time_rate", Label: "On-Time Rate", Unit: "%", Kind: entity.MetricRate, Status: entity.StatusOnTime},
		{Name: "avg_delay", Label: "Avg Delay", Unit: "min", Kind: entity.MetricAverage, Field: "delay_minutes"},
		{Name: "cancellation_rate", Label: "Cancellation Rate", Unit: "%", Kind: entity.MetricRate, Status: entity.StatusCancelled},
	}
}

// SelectMetrics filters catalog requests down to the configured metric
// names. An empty list keeps the full catalog. Returned second is the list
// of configured names no catalog entry matches.
func SelectMetrics(requests []entity.MetricRequest, names []string) ([]entity.MetricRequest, []string) {
	if len(names) == 0 {
		return requests, nil
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	var kept []entity.MetricRequest
	for _, req := range requests {
		if wanted[req.Name] {
			kept = append(kept, req)
			delete(wanted, req.Name)
		}
	}
	var unknown []string
	for _, n := range names {
		if wanted[n] {
			unknown = append(unknown, n)
		}
	}
	return kept, unknown
}

// parseBoundary reads the configured comparison boundary, falling back to
// the 2020-01-01 default on a malformed value.
func parseBoundary(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
