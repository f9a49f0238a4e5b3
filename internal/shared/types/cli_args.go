package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile     string
	InputPath      string
	Profile        string
	ReportName     string
	ReportType     []string
	Dir            string
	HistoricalDays *int
	AnalysisDays   *int
	TopK           *int
	Precision      *int
	Metrics        []string
	StartDate      string
	EndDate        string
	BoundaryDate   string
	TargetOnTime   *float64
	Sample         bool
	SampleDays     *int
	Seed           *int64
}
