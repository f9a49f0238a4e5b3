package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/shared/types"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestResolveDefaults(t *testing.T) {
	repo := NewConfigRepository()

	cfg, err := repo.Resolve(types.CLIArgs{})
	require.NoError(t, err)

	assert.Equal(t, "flight", cfg.Profile)
	assert.Equal(t, "faa-report", cfg.ReportName)
	assert.Equal(t, []string{"html"}, cfg.ReportType)
	assert.Equal(t, 90, cfg.HistoricalDays)
	assert.Equal(t, 30, cfg.AnalysisDays)
	assert.Equal(t, 10, cfg.TopK)
	assert.Equal(t, 1, cfg.Precision)
	assert.Equal(t, "2020-01-01", cfg.BoundaryDate)
	assert.Equal(t, 80.0, cfg.TargetOnTime)
	assert.Equal(t, int64(42), cfg.Seed)
}

func TestResolveArgsTakePrecedence(t *testing.T) {
	repo := NewConfigRepository()

	days := 120
	topK := 5
	cfg, err := repo.Resolve(types.CLIArgs{
		Profile:        "wildlife",
		ReportName:     "strikes",
		ReportType:     []string{"csv", "pdf"},
		HistoricalDays: &days,
		TopK:           &topK,
	})
	require.NoError(t, err)

	assert.Equal(t, "wildlife", cfg.Profile)
	assert.Equal(t, "strikes", cfg.ReportName)
	assert.Equal(t, []string{"csv", "pdf"}, cfg.ReportType)
	assert.Equal(t, 120, cfg.HistoricalDays)
	assert.Equal(t, 5, cfg.TopK)
	// Untouched fields keep their defaults.
	assert.Equal(t, 30, cfg.AnalysisDays)
}

func TestResolveBoundsViolations(t *testing.T) {
	repo := NewConfigRepository()

	tests := []struct {
		name      string
		args      types.CLIArgs
		wantField string
	}{
		{"historical below minimum", types.CLIArgs{HistoricalDays: intPtr(29)}, "historical_days"},
		{"historical above maximum", types.CLIArgs{HistoricalDays: intPtr(366)}, "historical_days"},
		{"analysis below minimum", types.CLIArgs{AnalysisDays: intPtr(6)}, "analysis_days"},
		{"analysis above maximum", types.CLIArgs{AnalysisDays: intPtr(91)}, "analysis_days"},
		{"top-k below minimum", types.CLIArgs{TopK: intPtr(0)}, "top_k"},
		{"top-k above maximum", types.CLIArgs{TopK: intPtr(51)}, "top_k"},
		{"precision above maximum", types.CLIArgs{Precision: intPtr(7)}, "precision"},
		{"bad profile", types.CLIArgs{Profile: "maritime"}, "profile"},
		{"bad report type", types.CLIArgs{ReportType: []string{"xml"}}, "report_type"},
		{"bad date format", types.CLIArgs{StartDate: "01/02/2024", EndDate: "2024-03-01"}, "start_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Resolve(tt.args)
			require.Error(t, err)

			var cfgErr *types.ConfigError
			require.ErrorAs(t, err, &cfgErr, "got %v", err)
			assert.Contains(t, cfgErr.Field, tt.wantField)
		})
	}
}

func TestResolveRejectsInvertedWindow(t *testing.T) {
	repo := NewConfigRepository()

	_, err := repo.Resolve(types.CLIArgs{
		StartDate: "2024-06-30",
		EndDate:   "2024-01-01",
	})
	require.Error(t, err)

	var cfgErr *types.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "start_date", cfgErr.Field)
	assert.Contains(t, cfgErr.Reason, "after end")
}

func TestResolveRejectsPartialWindow(t *testing.T) {
	repo := NewConfigRepository()

	_, err := repo.Resolve(types.CLIArgs{StartDate: "2024-01-01"})
	require.Error(t, err)

	var cfgErr *types.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Reason, "together")
}

func TestLoadConfigFileFormats(t *testing.T) {
	repo := NewConfigRepository()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			"toml",
			"config.toml",
			"profile = \"wildlife\"\nhistorical_days = 180\nmetrics = [\"total_strikes\"]\n",
		},
		{
			"yaml",
			"config.yaml",
			"profile: wildlife\nhistorical_days: 180\nmetrics:\n  - total_strikes\n",
		},
		{
			"json",
			"config.json",
			`{"profile": "wildlife", "historical_days": 180, "metrics": ["total_strikes"]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempConfig(t, tt.file, tt.content)

			cfg, err := repo.LoadConfigFile(path)
			require.NoError(t, err)
			assert.Equal(t, "wildlife", cfg.Profile)
			assert.Equal(t, 180, cfg.HistoricalDays)
			assert.Equal(t, []string{"total_strikes"}, cfg.Metrics)
		})
	}
}

func TestLoadConfigFileErrors(t *testing.T) {
	repo := NewConfigRepository()

	_, err := repo.LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := writeTempConfig(t, "config.ini", "profile=flight")
	_, err = repo.LoadConfigFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported config file format")

	_, err = repo.LoadConfigFile(t.TempDir())
	assert.Error(t, err)
}

func TestResolveMergesFileAndArgs(t *testing.T) {
	repo := NewConfigRepository()
	path := writeTempConfig(t, "config.yaml", "profile: wildlife\nreport_name: from-file\ntop_k: 7\n")

	cfg, err := repo.Resolve(types.CLIArgs{
		ConfigFile: path,
		ReportName: "from-flag",
	})
	require.NoError(t, err)

	// Flag beats file, file beats default.
	assert.Equal(t, "from-flag", cfg.ReportName)
	assert.Equal(t, "wildlife", cfg.Profile)
	assert.Equal(t, 7, cfg.TopK)
}

func TestResolveReadsEnvironment(t *testing.T) {
	t.Setenv("FAA_HISTORICAL_DAYS", "200")
	t.Setenv("FAA_PROFILE", "wildlife")

	repo := NewConfigRepository()
	cfg, err := repo.Resolve(types.CLIArgs{})
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.HistoricalDays)
	assert.Equal(t, "wildlife", cfg.Profile)

	// A flag still outranks the environment.
	days := 45
	cfg, err = repo.Resolve(types.CLIArgs{HistoricalDays: &days})
	require.NoError(t, err)
	assert.Equal(t, 45, cfg.HistoricalDays)
}

func TestResolveRejectsOutOfBoundsEnvironment(t *testing.T) {
	t.Setenv("FAA_TOP_K", "99")

	repo := NewConfigRepository()
	_, err := repo.Resolve(types.CLIArgs{})
	require.Error(t, err)

	var cfgErr *types.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "top_k", cfgErr.Field)
}

func intPtr(v int) *int {
	return &v
}
