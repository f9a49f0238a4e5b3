package types

// Config represents the application configuration. Values land here from a
// config file (TOML, YAML or JSON by extension), FAA_* environment variables
// and finally command-line flags, in ascending precedence.
type Config struct {
	InputPath      string   `json:"input" yaml:"input" toml:"input" envconfig:"INPUT"`
	Profile        string   `json:"profile" yaml:"profile" toml:"profile" envconfig:"PROFILE" validate:"omitempty,oneof=flight wildlife"`
	ReportName     string   `json:"report_name" yaml:"report_name" toml:"report_name" envconfig:"REPORT_NAME"`
	ReportType     []string `json:"report_type" yaml:"report_type" toml:"report_type" envconfig:"REPORT_TYPE" validate:"omitempty,dive,oneof=html csv json pdf"`
	Dir            string   `json:"dir" yaml:"dir" toml:"dir" envconfig:"DIR"`
	HistoricalDays int      `json:"historical_days" yaml:"historical_days" toml:"historical_days" envconfig:"HISTORICAL_DAYS" validate:"min=30,max=365"`
	AnalysisDays   int      `json:"analysis_days" yaml:"analysis_days" toml:"analysis_days" envconfig:"ANALYSIS_DAYS" validate:"min=7,max=90"`
	TopK           int      `json:"top_k" yaml:"top_k" toml:"top_k" envconfig:"TOP_K" validate:"min=1,max=50"`
	Precision      int      `json:"precision" yaml:"precision" toml:"precision" envconfig:"PRECISION" validate:"min=0,max=6"`
	Metrics        []string `json:"metrics" yaml:"metrics" toml:"metrics" envconfig:"METRICS"`
	StartDate      string   `json:"start_date" yaml:"start_date" toml:"start_date" envconfig:"START_DATE" validate:"omitempty,datetime=2006-01-02"`
	EndDate        string   `json:"end_date" yaml:"end_date" toml:"end_date" envconfig:"END_DATE" validate:"omitempty,datetime=2006-01-02"`
	BoundaryDate   string   `json:"boundary_date" yaml:"boundary_date" toml:"boundary_date" envconfig:"BOUNDARY_DATE" validate:"omitempty,datetime=2006-01-02"`
	TargetOnTime   float64  `json:"target_on_time" yaml:"target_on_time" toml:"target_on_time" envconfig:"TARGET_ON_TIME" validate:"min=0,max=100"`
	Sample         bool     `json:"sample" yaml:"sample" toml:"sample" envconfig:"SAMPLE"`
	SampleDays     int      `json:"sample_days" yaml:"sample_days" toml:"sample_days" envconfig:"SAMPLE_DAYS" validate:"min=30,max=365"`
	Seed           int64    `json:"seed" yaml:"seed" toml:"seed" envconfig:"SEED"`
}

// DefaultConfig returns the documented defaults. Bounds are enforced on the
// merged result, never silently clamped.
func DefaultConfig() Config {
	return Config{
		Profile:        "flight",
		ReportName:     "faa-report",
		ReportType:     []string{"html"},
		Dir:            ".",
		HistoricalDays: 90,
		AnalysisDays:   30,
		TopK:           10,
		Precision:      1,
		BoundaryDate:   "2020-01-01",
		TargetOnTime:   80.0,
		SampleDays:     90,
		Seed:           42,
	}
}
