package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/domain/entity"
	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/domain/repository"
	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/shared/types"
)

// ReportUseCase drives the report pipeline end to end: resolve config, load
// records, filter to the window, aggregate, build charts, serialize and
// assemble the artifacts.
type ReportUseCase struct {
	recordRepo repository.RecordRepository
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface
}

// NewReportUseCase creates a new report use case with its dependencies.
func NewReportUseCase(
	recordRepo repository.RecordRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *ReportUseCase {
	return &ReportUseCase{
		recordRepo: recordRepo,
		exportRepo: exportRepo,
		configRepo: configRepo,
		console:    console,
	}
}

// Run executes one full report generation. Configuration is resolved and
// validated before any record is read.
func (uc *ReportUseCase) Run(ctx context.Context, args types.CLIArgs) error {
	cfg, err := uc.configRepo.Resolve(args)
	if err != nil {
		return err
	}

	schema, ok := entity.SchemaForProfile(cfg.Profile)
	if !ok {
		return &types.ConfigError{Field: "profile", Value: cfg.Profile, Reason: "no such profile"}
	}
	if cfg.Sample && cfg.Profile != "flight" {
		return &types.ConfigError{Field: "sample", Value: cfg.Profile, Reason: "sample data is generated for the flight profile only"}
	}

	set, loadReport, err := uc.loadRecords(ctx, cfg, schema)
	if err != nil {
		return err
	}

	window, err := uc.resolveWindow(cfg, set)
	if err != nil {
		return err
	}
	uc.console.LogInfo("Reporting window: %s", window)

	filtered := set.Filter(window)
	if filtered.IsEmpty() {
		emptyErr := &types.EmptyWindowError{Start: window.Start, End: window.End}
		uc.console.LogWarning("%s; no report written", emptyErr)
		return nil
	}

	result := uc.aggregate(cfg, schema, window, filtered)
	for _, me := range result.Errors() {
		uc.console.LogWarning("Metric %s skipped: %s", me.Metric, me.Err)
	}

	kpis := BuildKPIs(filtered, schema, window, cfg.AnalysisDays, KPICatalog(cfg.Profile))
	cards := uc.buildSummary(cfg, result, kpis)
	doc := uc.assembleDocument(cfg, window, result, cards, loadReport)

	uc.displaySummary(cards)
	uc.displayTrend(cfg.Profile, result)

	return uc.export(cfg, doc, filtered, schema, result)
}

// loadRecords reads the input file, or generates the deterministic sample
// set when requested.
func (uc *ReportUseCase) loadRecords(ctx context.Context, cfg *types.Config, schema entity.Schema) (entity.RecordSet, entity.LoadReport, error) {
	if cfg.Sample {
		uc.console.LogInfo("Generating %d days of sample flight data (seed %d)", cfg.SampleDays, cfg.Seed)
		set, report := uc.recordRepo.GenerateSample(cfg.SampleDays, cfg.Seed, time.Now().UTC())
		return set, report, nil
	}
	if cfg.InputPath == "" {
		return entity.RecordSet{}, entity.LoadReport{}, types.ErrNoInputSource
	}

	status := uc.console.Status(fmt.Sprintf("Loading records from %s...", cfg.InputPath))
	set, report, err := uc.recordRepo.Load(ctx, cfg.InputPath, schema)
	status.Stop()
	if err != nil {
		return entity.RecordSet{}, entity.LoadReport{}, err
	}

	uc.console.LogSuccess("Loaded %d records from %s (%d rows dropped)",
		report.RowsKept, report.Path, report.RowsDropped)
	if report.MissingNumeric > 0 {
		uc.console.LogWarning("%d numeric values were missing or unparseable and excluded from averages", report.MissingNumeric)
	}
	return set, report, nil
}

// resolveWindow builds the reporting window from explicit dates, or as a
// trailing range anchored at the newest record.
func (uc *ReportUseCase) resolveWindow(cfg *types.Config, set entity.RecordSet) (entity.Window, error) {
	if cfg.StartDate != "" && cfg.EndDate != "" {
		start, err := time.Parse("2006-01-02", cfg.StartDate)
		if err != nil {
			return entity.Window{}, &types.ConfigError{Field: "start_date", Value: cfg.StartDate, Reason: "expected YYYY-MM-DD"}
		}
		end, err := time.Parse("2006-01-02", cfg.EndDate)
		if err != nil {
			return entity.Window{}, &types.ConfigError{Field: "end_date", Value: cfg.EndDate, Reason: "expected YYYY-MM-DD"}
		}
		return entity.NewWindow(start, end)
	}

	latest, ok := set.Latest()
	if !ok {
		latest = time.Now().UTC()
	}
	return entity.TrailingDays(cfg.HistoricalDays, latest), nil
}

// aggregate runs the metric catalog over the filtered set with a progress
// bar, recording configured metric names the catalog does not know.
func (uc *ReportUseCase) aggregate(cfg *types.Config, schema entity.Schema, window entity.Window, set entity.RecordSet) *entity.AggregationResult {
	requests, unknown := SelectMetrics(MetricCatalog(cfg), cfg.Metrics)

	agg := NewAggregator(schema, window)
	progress := uc.console.ProgressWithTotal(len(requests))
	result := agg.RunWithProgress(set, requests, func(string) {
		progress.Increment()
	})
	progress.Stop()

	for _, name := range unknown {
		result.AddError(name, &types.UnknownMetricError{Metric: name, Field: name})
	}
	return result
}

// buildSummary formats the headline cards at the configured precision.
func (uc *ReportUseCase) buildSummary(cfg *types.Config, result *entity.AggregationResult, kpis []entity.KPI) []entity.SummaryCard {
	if cfg.Profile == "wildlife" {
		return uc.wildlifeSummary(cfg, result)
	}

	cards := make([]entity.SummaryCard, 0, len(kpis))
	for _, kpi := range kpis {
		cards = append(cards, entity.SummaryCard{
			Label:     kpi.Label,
			Value:     formatCardValue(kpi.Value, kpi.Unit, cfg.Precision),
			Delta:     formatDelta(kpi.PercentChange, cfg.Precision),
			Direction: deltaDirection(kpi.PercentChange),
		})
	}
	return cards
}

func (uc *ReportUseCase) wildlifeSummary(cfg *types.Config, result *entity.AggregationResult) []entity.SummaryCard {
	var cards []entity.SummaryCard

	if v, ok := result.Value("total_strikes"); ok {
		cards = append(cards, entity.SummaryCard{
			Label: "Total Strikes",
			Value: formatCardValue(v.Scalar, "count", cfg.Precision),
		})
	}
	if v, ok := result.Value("before_during"); ok && v.Comparison != nil {
		cards = append(cards, entity.SummaryCard{
			Label:     fmt.Sprintf("Change After %s", cfg.BoundaryDate),
			Value:     formatDelta(v.Comparison.PercentChange, cfg.Precision),
			Direction: deltaDirection(v.Comparison.PercentChange),
		})
	}
	for _, c := range []struct{ metric, label string }{
		{"unique_species", "Species Involved"},
		{"unique_states", "States Affected"},
		{"unique_airports", "Airports Reporting"},
	} {
		if v, ok := result.Value(c.metric); ok {
			cards = append(cards, entity.SummaryCard{
				Label: c.label,
				Value: formatCardValue(v.Scalar, "count", cfg.Precision),
			})
		}
	}
	return cards
}

// assembleDocument builds charts from the aggregation results and lays them
// into the profile's sections. Skipped charts become console warnings and
// report notes; the report itself proceeds.
func (uc *ReportUseCase) assembleDocument(cfg *types.Config, window entity.Window, result *entity.AggregationResult, cards []entity.SummaryCard, loadReport entity.LoadReport) entity.ReportDocument {
	var notes []string
	built := make(map[string]entity.ChartSpec)

	for _, def := range ChartCatalog(cfg) {
		spec, err := BuildChart(def, result, cfg.Precision)
		if err != nil {
			uc.console.LogWarning("Chart %s skipped: %s", def.Name, err)
			notes = append(notes, fmt.Sprintf("Chart %q was skipped: %v", def.Title, err))
			continue
		}
		built[spec.Name] = spec
	}

	var sections []entity.Section
	for _, sd := range SectionLayout(cfg.Profile) {
		var charts []entity.ChartSpec
		for _, name := range sd.Charts {
			if spec, ok := built[name]; ok {
				charts = append(charts, spec)
			}
		}
		if len(charts) > 0 {
			sections = append(sections, entity.Section{Name: sd.Name, Title: sd.Title, Charts: charts})
		}
	}

	notes = append(notes, fmt.Sprintf("Source: %s. %d rows read, %d kept, %d dropped.",
		loadReport.Path, loadReport.RowsRead, loadReport.RowsKept, loadReport.RowsDropped))

	return entity.ReportDocument{
		Title:       reportTitle(cfg.Profile),
		Profile:     cfg.Profile,
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Window:      window,
		Summary:     cards,
		Sections:    sections,
		Notes:       notes,
		Load:        loadReport,
	}
}

// export serializes the chart payload and writes every requested artifact.
// The HTML report is the primary artifact; its failure aborts the run. The
// secondary exports log and continue.
func (uc *ReportUseCase) export(cfg *types.Config, doc entity.ReportDocument, set entity.RecordSet, schema entity.Schema, result *entity.AggregationResult) error {
	payload, err := uc.exportRepo.SerializeCharts(doc.Charts())
	if err != nil {
		return err
	}

	for _, reportType := range cfg.ReportType {
		switch reportType {
		case "html":
			htmlPath, err := uc.exportRepo.AssembleHTML(doc, payload, cfg.ReportName, cfg.Dir)
			if err != nil {
				return err
			}
			uc.console.LogSuccess("Successfully exported report to HTML: %s", htmlPath)
		case "csv":
			csvPath, err := uc.exportRepo.ExportRecordsToCSV(set, schema, cfg.ReportName, cfg.Dir)
			if err != nil {
				uc.console.LogError("Failed to export records to CSV: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported records to CSV: %s", csvPath)
			}
			aggPath, err := uc.exportRepo.ExportAggregatesToCSV(result, cfg.ReportName+"_metrics", cfg.Dir)
			if err != nil {
				uc.console.LogError("Failed to export metrics to CSV: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported metrics to CSV: %s", aggPath)
			}
		case "json":
			jsonPath, err := uc.exportRepo.ExportToJSON(doc, cfg.ReportName, cfg.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to JSON: %s", jsonPath)
			}
		case "pdf":
			pdfPath, err := uc.exportRepo.ExportToPDF(doc, cfg.ReportName, cfg.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to PDF: %s", pdfPath)
			}
		}
	}
	return nil
}

func (uc *ReportUseCase) displaySummary(cards []entity.SummaryCard) {
	if len(cards) == 0 {
		return
	}
	table := uc.console.CreateTable()
	table.AddColumn("Indicator")
	table.AddColumn("Value")
	table.AddColumn("Change")
	for _, c := range cards {
		table.AddRow(c.Label, c.Value, c.Delta)
	}
	uc.console.Print(table.Render())
}

// displayTrend renders the per-month volume bars in the terminal.
func (uc *ReportUseCase) displayTrend(profile string, result *entity.AggregationResult) {
	metric := "monthly_volume"
	if profile == "wildlife" {
		metric = "monthly_strikes"
	}
	value, ok := result.Value(metric)
	if !ok || len(value.Series) == 0 {
		return
	}
	volumes := make([]types.MonthlyVolume, 0, len(value.Series))
	for _, p := range value.Series {
		volumes = append(volumes, types.MonthlyVolume{Month: p.Date.Format("2006-01"), Count: p.Value})
	}
	uc.console.DisplayTrendBars(volumes)
}

func reportTitle(profile string) string {
	if profile == "wildlife" {
		return "FAA Wildlife Strike Dashboard"
	}
	return "FAA Flight Performance Dashboard"
}

func formatCardValue(v float64, unit string, precision int) string {
	switch unit {
	case "%":
		return fmt.Sprintf("%.*f%%", precision, roundTo(v, precision))
	case "min":
		return fmt.Sprintf("%.*f min", precision, roundTo(v, precision))
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

// formatDelta renders a signed percent change; n/a when the baseline was
// zero and no change is defined.
func formatDelta(pc *float64, precision int) string {
	if pc == nil {
		return "n/a"
	}
	return fmt.Sprintf("%+.*f%%", precision, roundTo(*pc, precision))
}

func deltaDirection(pc *float64) string {
	switch {
	case pc == nil:
		return "flat"
	case *pc > 0:
		return "up"
	case *pc < 0:
		return "down"
	default:
		return "flat"
	}
}
