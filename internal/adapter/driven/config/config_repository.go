package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/domain/repository"
	"github.com/Gerald-Jinx-Mouse/FAA-Dashboard-Cleaned/internal/shared/types"
)

// ConfigRepositoryImpl implements the ConfigRepository.
type ConfigRepositoryImpl struct {
	validate *validator.Validate
}

// NewConfigRepository creates a new ConfigRepository implementation.
func NewConfigRepository() repository.ConfigRepository {
	v := validator.New()

	// Report field names as they appear in config files
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &ConfigRepositoryImpl{validate: v}
}

// LoadConfigFile loads a TOML, YAML or JSON configuration file.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}

	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config types.Config

	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &config); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	return &config, nil
}

// Resolve layers defaults, config file, FAA_* environment variables and CLI
// arguments, then validates the documented bounds. Values outside bounds
// fail with a ConfigError; nothing is silently clamped.
func (r *ConfigRepositoryImpl) Resolve(args types.CLIArgs) (*types.Config, error) {
	cfg := types.DefaultConfig()

	if args.ConfigFile != "" {
		fileCfg, err := r.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, err
		}
		mergeConfig(&cfg, fileCfg)
	}

	var envCfg types.Config
	if err := envconfig.Process("FAA", &envCfg); err != nil {
		return nil, fmt.Errorf("error reading environment configuration: %w", err)
	}
	mergeConfig(&cfg, &envCfg)

	applyArgs(&cfg, args)

	if err := r.checkBounds(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfig copies every non-zero field of src over dst.
func mergeConfig(dst, src *types.Config) {
	if src.InputPath != "" {
		dst.InputPath = src.InputPath
	}
	if src.Profile != "" {
		dst.Profile = src.Profile
	}
	if src.ReportName != "" {
		dst.ReportName = src.ReportName
	}
	if len(src.ReportType) > 0 {
		dst.ReportType = src.ReportType
	}
	if src.Dir != "" {
		dst.Dir = src.Dir
	}
	if src.HistoricalDays != 0 {
		dst.HistoricalDays = src.HistoricalDays
	}
	if src.AnalysisDays != 0 {
		dst.AnalysisDays = src.AnalysisDays
	}
	if src.TopK != 0 {
		dst.TopK = src.TopK
	}
	if src.Precision != 0 {
		dst.Precision = src.Precision
	}
	if len(src.Metrics) > 0 {
		dst.Metrics = src.Metrics
	}
	if src.StartDate != "" {
		dst.StartDate = src.StartDate
	}
	if src.EndDate != "" {
		dst.EndDate = src.EndDate
	}
	if src.BoundaryDate != "" {
		dst.BoundaryDate = src.BoundaryDate
	}
	if src.TargetOnTime != 0 {
		dst.TargetOnTime = src.TargetOnTime
	}
	if src.Sample {
		dst.Sample = true
	}
	if src.SampleDays != 0 {
		dst.SampleDays = src.SampleDays
	}
	if src.Seed != 0 {
		dst.Seed = src.Seed
	}
}

// applyArgs overlays command-line flags, the highest-precedence source.
func applyArgs(cfg *types.Config, args types.CLIArgs) {
	if args.InputPath != "" {
		cfg.InputPath = args.InputPath
	}
	if args.Profile != "" {
		cfg.Profile = args.Profile
	}
	if args.ReportName != "" {
		cfg.ReportName = args.ReportName
	}
	if len(args.ReportType) > 0 {
		cfg.ReportType = args.ReportType
	}
	if args.Dir != "" {
		cfg.Dir = args.Dir
	}
	if args.HistoricalDays != nil {
		cfg.HistoricalDays = *args.HistoricalDays
	}
	if args.AnalysisDays != nil {
		cfg.AnalysisDays = *args.AnalysisDays
	}
	if args.TopK != nil {
		cfg.TopK = *args.TopK
	}
	if args.Precision != nil {
		cfg.Precision = *args.Precision
	}
	if len(args.Metrics) > 0 {
		cfg.Metrics = args.Metrics
	}
	if args.StartDate != "" {
		cfg.StartDate = args.StartDate
	}
	if args.EndDate != "" {
		cfg.EndDate = args.EndDate
	}
	if args.BoundaryDate != "" {
		cfg.BoundaryDate = args.BoundaryDate
	}
	if args.TargetOnTime != nil {
		cfg.TargetOnTime = *args.TargetOnTime
	}
	if args.Sample {
		cfg.Sample = true
	}
	if args.SampleDays != nil {
		cfg.SampleDays = *args.SampleDays
	}
	if args.Seed != nil {
		cfg.Seed = *args.Seed
	}
}

// checkBounds runs tag validation plus the cross-field window checks.
func (r *ConfigRepositoryImpl) checkBounds(cfg *types.Config) error {
	if err := r.validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if ok := errors.As(err, &verrs); ok && len(verrs) > 0 {
			fe := verrs[0]
			return &types.ConfigError{
				Field:  fe.Field(),
				Value:  fe.Value(),
				Reason: boundsReason(fe),
			}
		}
		return fmt.Errorf("error validating configuration: %w", err)
	}

	if (cfg.StartDate == "") != (cfg.EndDate == "") {
		return &types.ConfigError{
			Field:  "start_date",
			Value:  cfg.StartDate,
			Reason: "start_date and end_date must be given together",
		}
	}

	if cfg.StartDate != "" {
		start, _ := time.Parse("2006-01-02", cfg.StartDate)
		end, _ := time.Parse("2006-01-02", cfg.EndDate)
		if start.After(end) {
			return &types.ConfigError{
				Field:  "start_date",
				Value:  cfg.StartDate,
				Reason: fmt.Sprintf("window start is after end (%s)", cfg.EndDate),
			}
		}
	}

	return nil
}

func boundsReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("below minimum %s", fe.Param())
	case "max":
		return fmt.Sprintf("above maximum %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "datetime":
		return fmt.Sprintf("must be a date in %s form", fe.Param())
	default:
		return fmt.Sprintf("fails %s constraint", fe.Tag())
	}
}
