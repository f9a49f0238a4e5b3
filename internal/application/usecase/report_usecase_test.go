package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/adapter/driven/config"
	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/adapter/driven/export"
	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/adapter/driven/records"
	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/domain/entity"
	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/shared/types"
)

type stubHandle struct{}

func (stubHandle) Update(string) {}
func (stubHandle) Increment()   {}
func (stubHandle) Stop()        {}

type stubTable struct{}

func (stubTable) AddColumn(string, ...interface{}) {}
func (stubTable) AddRow(...interface{})            {}
func (stubTable) Render() string                   { return "" }

type stubConsole struct {
	warnings []string
	errors   []string
}

func (c *stubConsole) Print(...interface{})           {}
func (c *stubConsole) Printf(string, ...interface{})  {}
func (c *stubConsole) Println(...interface{})         {}
func (c *stubConsole) LogInfo(string, ...interface{}) {}
func (c *stubConsole) LogWarning(format string, a ...interface{}) {
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}
func (c *stubConsole) LogError(format string, a ...interface{}) {
	c.errors = append(c.errors, fmt.Sprintf(format, a...))
}
func (c *stubConsole) LogSuccess(string, ...interface{})          {}
func (c *stubConsole) Status(string) types.StatusHandle           { return stubHandle{} }
func (c *stubConsole) Progress([]string) types.ProgressHandle     { return stubHandle{} }
func (c *stubConsole) CreateTable() types.TableInterface          { return stubTable{} }
func (c *stubConsole) DisplayTrendBars([]types.MonthlyVolume)     {}
func (c *stubConsole) ProgressWithTotal(int) types.ProgressHandle { return stubHandle{} }

type stubRecordRepo struct {
	loadCalled   bool
	sampleCalled bool
	set          entity.RecordSet
	report       entity.LoadReport
	err          error
}

func (s *stubRecordRepo) Load(ctx context.Context, path string, schema entity.Schema) (entity.RecordSet, entity.LoadReport, error) {
	s.loadCalled = true
	return s.set, s.report, s.err
}

func (s *stubRecordRepo) GenerateSample(days int, seed int64, reference time.Time) (entity.RecordSet, entity.LoadReport) {
	s.sampleCalled = true
	return s.set, s.report
}

type stubExportRepo struct {
	serializeCalled bool
	assembleCalled  bool
}

func (s *stubExportRepo) SerializeCharts(specs []entity.ChartSpec) ([]byte, error) {
	s.serializeCalled = true
	return []byte("{}"), nil
}

func (s *stubExportRepo) ParseCharts(payload []byte) ([]entity.ChartSpec, error) {
	return nil, nil
}

func (s *stubExportRepo) AssembleHTML(doc entity.ReportDocument, payload []byte, filename, outputDir string) (string, error) {
	s.assembleCalled = true
	return filepath.Join(outputDir, filename+".html"), nil
}

func (s *stubExportRepo) ExportRecordsToCSV(set entity.RecordSet, schema entity.Schema, filename, outputDir string) (string, error) {
	return "", nil
}

func (s *stubExportRepo) ExportAggregatesToCSV(result *entity.AggregationResult, filename, outputDir string) (string, error) {
	return "", nil
}

func (s *stubExportRepo) ExportToJSON(doc entity.ReportDocument, filename, outputDir string) (string, error) {
	return "", nil
}

func (s *stubExportRepo) ExportToPDF(doc entity.ReportDocument, filename, outputDir string) (string, error) {
	return "", nil
}

func newTestUseCase(recordRepo *stubRecordRepo, exportRepo *stubExportRepo, console *stubConsole) *ReportUseCase {
	return NewReportUseCase(recordRepo, exportRepo, config.NewConfigRepository(), console)
}

func TestRunRejectsInvertedDatesBeforeLoading(t *testing.T) {
	recordRepo := &stubRecordRepo{}
	exportRepo := &stubExportRepo{}
	uc := newTestUseCase(recordRepo, exportRepo, &stubConsole{})

	err := uc.Run(context.Background(), types.CLIArgs{
		InputPath: "events.csv",
		StartDate: "2024-12-31",
		EndDate:   "2024-01-01",
	})
	require.Error(t, err)

	var cfgErr *types.ConfigError
	require.ErrorAs(t, err, &cfgErr)

	// Validation happens before the loader ever runs.
	assert.False(t, recordRepo.loadCalled)
	assert.False(t, recordRepo.sampleCalled)
	assert.False(t, exportRepo.serializeCalled)
}

func TestRunRejectsOutOfBoundsConfig(t *testing.T) {
	tests := []struct {
		name string
		args types.CLIArgs
	}{
		{"historical days too small", types.CLIArgs{Sample: true, HistoricalDays: intPtr(29)}},
		{"historical days too large", types.CLIArgs{Sample: true, HistoricalDays: intPtr(366)}},
		{"analysis days too small", types.CLIArgs{Sample: true, AnalysisDays: intPtr(6)}},
		{"analysis days too large", types.CLIArgs{Sample: true, AnalysisDays: intPtr(91)}},
		{"top-k zero", types.CLIArgs{Sample: true, TopK: intPtr(0)}},
		{"unknown profile", types.CLIArgs{Sample: true, Profile: "maritime"}},
		{"unknown report type", types.CLIArgs{Sample: true, ReportType: []string{"xml"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recordRepo := &stubRecordRepo{}
			uc := newTestUseCase(recordRepo, &stubExportRepo{}, &stubConsole{})

			err := uc.Run(context.Background(), tt.args)
			require.Error(t, err)

			var cfgErr *types.ConfigError
			require.ErrorAs(t, err, &cfgErr, "got %v", err)
			assert.False(t, recordRepo.loadCalled)
			assert.False(t, recordRepo.sampleCalled)
		})
	}
}

func TestRunEmptyWindowWritesNothing(t *testing.T) {
	// Records exist, but all outside the requested window.
	recordRepo := &stubRecordRepo{
		set:    entity.NewRecordSet(flightRecords(day(2023, time.June, 1), entity.StatusOnTime, 50)),
		report: entity.LoadReport{Path: "events.csv", RowsRead: 50, RowsKept: 50},
	}
	exportRepo := &stubExportRepo{}
	console := &stubConsole{}
	uc := newTestUseCase(recordRepo, exportRepo, console)

	err := uc.Run(context.Background(), types.CLIArgs{
		InputPath: "events.csv",
		StartDate: "2024-01-01",
		EndDate:   "2024-03-31",
	})
	require.NoError(t, err)

	assert.True(t, recordRepo.loadCalled)
	assert.False(t, exportRepo.serializeCalled)
	assert.False(t, exportRepo.assembleCalled)
	require.NotEmpty(t, console.warnings)
	assert.Contains(t, console.warnings[0], "no records between")
}

func TestRunRequiresAnInputSource(t *testing.T) {
	uc := newTestUseCase(&stubRecordRepo{}, &stubExportRepo{}, &stubConsole{})

	err := uc.Run(context.Background(), types.CLIArgs{})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrNoInputSource)
}

func TestRunSampleRequiresFlightProfile(t *testing.T) {
	recordRepo := &stubRecordRepo{}
	uc := newTestUseCase(recordRepo, &stubExportRepo{}, &stubConsole{})

	err := uc.Run(context.Background(), types.CLIArgs{Sample: true, Profile: "wildlife"})
	require.Error(t, err)

	var cfgErr *types.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.False(t, recordRepo.sampleCalled)
}

func TestRunSampleEndToEnd(t *testing.T) {
	dir := t.TempDir()
	console := &stubConsole{}
	uc := NewReportUseCase(
		records.NewRecordRepository(),
		export.NewExportRepository(),
		config.NewConfigRepository(),
		console,
	)

	err := uc.Run(context.Background(), types.CLIArgs{
		Sample:     true,
		SampleDays: intPtr(45),
		Seed:       int64Ptr(7),
		ReportName: "it",
		ReportType: []string{"html", "json", "csv"},
		Dir:        dir,
	})
	require.NoError(t, err)
	assert.Empty(t, console.errors)

	htmlFiles, err := filepath.Glob(filepath.Join(dir, "it_*.html"))
	require.NoError(t, err)
	require.Len(t, htmlFiles, 1)

	content, err := os.ReadFile(htmlFiles[0])
	require.NoError(t, err)
	html := string(content)
	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "Plotly.newPlot")
	assert.Contains(t, html, "FAA Flight Performance Dashboard")
	assert.Contains(t, html, "chart-on-time-trend")

	jsonFiles, err := filepath.Glob(filepath.Join(dir, "it_2*.json"))
	require.NoError(t, err)
	assert.Len(t, jsonFiles, 1)

	csvFiles, err := filepath.Glob(filepath.Join(dir, "it*.csv"))
	require.NoError(t, err)
	assert.Len(t, csvFiles, 2)

	// No stray temp files from the atomic write.
	leftovers, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)

	for _, f := range append(htmlFiles, jsonFiles...) {
		name := filepath.Base(f)
		assert.True(t, strings.HasPrefix(name, "it_"), "unexpected artifact %s", name)
	}
}

func intPtr(v int) *int {
	return &v
}

func int64Ptr(v int64) *int64 {
	return &v
}
