package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/pkg/version"

	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/application/usecase"
	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/shared/types"
	"github.com/spf13/cobra"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd       *cobra.Command
	reportUseCase *usecase.ReportUseCase
	version       string
}

// NewCLIApp creates a new CLI application.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:     "faa-dashboard",
		Short:   "FAA operational data dashboard CLI",
		Long:    "Aggregates FAA flight-performance or wildlife-strike records into an interactive HTML dashboard with optional CSV, JSON and PDF exports.",
		Version: formattedVersion,
		RunE:    app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "FAA Dashboard version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("input", "i", "", "Path to a CSV or XLSX records file")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "Data profile: flight or wildlife")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Base name for the report files (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", nil, "Report types: html, csv, json, pdf")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	rootCmd.PersistentFlags().IntP("historical-days", "t", 0, "Reporting window size in days (30-365)")
	rootCmd.PersistentFlags().Int("analysis-days", 0, "Trend analysis period in days (7-90)")
	rootCmd.PersistentFlags().StringSliceP("metrics", "m", nil, "Metric names to compute (default: the full profile catalog)")
	rootCmd.PersistentFlags().String("start-date", "", "Explicit window start (YYYY-MM-DD, requires --end-date)")
	rootCmd.PersistentFlags().String("end-date", "", "Explicit window end (YYYY-MM-DD, requires --start-date)")
	rootCmd.PersistentFlags().String("boundary-date", "", "Comparison boundary date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().IntP("top-k", "k", 0, "Number of categories kept in breakdowns (1-50)")
	rootCmd.PersistentFlags().Int("precision", -1, "Decimal places shown in charts and cards (0-6)")
	rootCmd.PersistentFlags().Float64("target-on-time", 0, "On-time performance target percentage")
	rootCmd.PersistentFlags().Bool("sample", false, "Generate deterministic sample flight data instead of reading a file")
	rootCmd.PersistentFlags().Int("sample-days", 0, "Days of sample data to generate (30-365)")
	rootCmd.PersistentFlags().Int64("seed", 0, "Seed for the sample data generator")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct. Flags the
// user did not set stay nil so file and default values survive merging.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	flags := app.rootCmd.Flags()

	configFile, _ := flags.GetString("config-file")
	inputPath, _ := flags.GetString("input")
	profile, _ := flags.GetString("profile")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")
	metrics, _ := flags.GetStringSlice("metrics")
	startDate, _ := flags.GetString("start-date")
	endDate, _ := flags.GetString("end-date")
	boundaryDate, _ := flags.GetString("boundary-date")
	sample, _ := flags.GetBool("sample")

	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		dir = cwd
	} else {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	args := &types.CLIArgs{
		ConfigFile:   configFile,
		InputPath:    inputPath,
		Profile:      profile,
		ReportName:   reportName,
		ReportType:   reportType,
		Dir:          dir,
		Metrics:      metrics,
		StartDate:    startDate,
		EndDate:      endDate,
		BoundaryDate: boundaryDate,
		Sample:       sample,
	}

	if flags.Changed("historical-days") {
		v, _ := flags.GetInt("historical-days")
		args.HistoricalDays = &v
	}
	if flags.Changed("analysis-days") {
		v, _ := flags.GetInt("analysis-days")
		args.AnalysisDays = &v
	}
	if flags.Changed("top-k") {
		v, _ := flags.GetInt("top-k")
		args.TopK = &v
	}
	if flags.Changed("precision") {
		v, _ := flags.GetInt("precision")
		args.Precision = &v
	}
	if flags.Changed("target-on-time") {
		v, _ := flags.GetFloat64("target-on-time")
		args.TargetOnTime = &v
	}
	if flags.Changed("sample-days") {
		v, _ := flags.GetInt("sample-days")
		args.SampleDays = &v
	}
	if flags.Changed("seed") {
		v, _ := flags.GetInt64("seed")
		args.Seed = &v
	}

	return args, nil
}

// runCommand is the main entry point for the CLI command.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner(app.version)

	go version.CheckLatestVersion(app.version)

	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	ctx := context.Background()
	return app.reportUseCase.Run(ctx, *cliArgs)
}

// SetReportUseCase sets the report use case for the CLI app.
func (app *CLIApp) SetReportUseCase(useCase *usecase.ReportUseCase) {
	app.reportUseCase = useCase
}
