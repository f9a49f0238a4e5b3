package entity

import "time"

// SummaryCard is one headline figure shown at the top of the report.
// Value and Delta are already formatted at the configured precision.
type SummaryCard struct {
	Label     string `json:"label"`
	Value     string `json:"value"`
	Delta     string `json:"delta,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// KPI is a summary scalar with trend context against the previous analysis
// period. Values stay unrounded; formatting happens at card construction.
type KPI struct {
	Name          string   `json:"name"`
	Label         string   `json:"label"`
	Unit          string   `json:"unit,omitempty"`
	Value         float64  `json:"value"`
	Previous      float64  `json:"previous"`
	PercentChange *float64 `json:"percent_change,omitempty"`
}

// Section groups an ordered run of charts under one report heading.
type Section struct {
	Name   string      `json:"name"`
	Title  string      `json:"title"`
	Charts []ChartSpec `json:"charts"`
}

// ReportDocument is the final artifact: summary cards, chart sections and
// run metadata. Constructed once per run, written once, never mutated after
// assembly.
type ReportDocument struct {
	Title       string        `json:"title"`
	Profile     string        `json:"profile"`
	RunID       string        `json:"run_id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Window      Window        `json:"window"`
	Summary     []SummaryCard `json:"summary"`
	Sections    []Section     `json:"sections"`
	Notes       []string      `json:"notes,omitempty"`
	Load        LoadReport    `json:"load"`
}

// Charts returns every chart of the document in section order.
func (d ReportDocument) Charts() []ChartSpec {
	var out []ChartSpec
	for _, s := range d.Sections {
		out = append(out, s.Charts...)
	}
	return out
}
