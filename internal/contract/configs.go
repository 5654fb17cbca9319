package contract

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/qixiboss/gaitscore/schema"
)

// Default values for configuration.
const (
	DefaultPrecision = 2
	MaxPrecision     = 4
	DefaultExplain   = 3
	DefaultLogLevel  = "warn"
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// PolicyRawInput holds a policy override from the YAML config file.
// Use float64 pointers for optional fields.
type PolicyRawInput struct {
	Lo     *float64 `mapstructure:"lo"`
	Hi     *float64 `mapstructure:"hi"`
	Weight *float64 `mapstructure:"weight"`
}

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	InputPath  string
	Units      schema.Units
	Params     schema.AnalysisParams
	Policies   schema.PolicySet
	Subject    string
	Explain    int
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	PlotFormat schema.PlotFormat
	Width      int // Terminal width override (0 = auto-detect)
	LogLevel   slog.Level

	// MinComposite and MinSubScores gate the check command
	MinComposite float64
	MinSubScores map[schema.MetricKey]float64

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	InputPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	FPS              float64 `mapstructure:"fps"`
	MinStrikeSpacing float64 `mapstructure:"min-strike-spacing"`
	MinProminence    float64 `mapstructure:"min-prominence"`
	ArmNoiseFloor    float64 `mapstructure:"arm-noise-floor"`
	HeightAxis       string  `mapstructure:"height-axis"`
	VerticalAxis     string  `mapstructure:"vertical-axis"`
	HorizontalAxes   string  `mapstructure:"horizontal-axes"`
	Units            string  `mapstructure:"units"`
	Output           string  `mapstructure:"output"`
	OutputFile       string  `mapstructure:"output-file"`
	Precision        int     `mapstructure:"precision"`
	Width            int     `mapstructure:"width"`
	Color            string  `mapstructure:"color"`
	LogLevel         string  `mapstructure:"log-level"`
	CacheBackend     string  `mapstructure:"cache-backend"`
	CacheDBConnect   string  `mapstructure:"cache-db-connect"`
	HistoryBackend   string  `mapstructure:"history-backend"`
	HistoryDBConnect string  `mapstructure:"history-db-connect"`

	// --- Fields from analyzeCmd.Flags() ---
	Explain int    `mapstructure:"explain"`
	Subject string `mapstructure:"subject"`

	// --- Fields from signalsCmd.Flags() ---
	Format string `mapstructure:"format"`

	// --- Fields from checkCmd.Flags() ---
	MinComposite    float64 `mapstructure:"min-composite"`
	MinSubScoresStr string  `mapstructure:"min-subscores"`

	// --- Policy overrides from config file ---
	Policies map[string]PolicyRawInput `mapstructure:"policies"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Policies != nil {
		clone.Policies = c.Policies.Clone()
	}
	if c.MinSubScores != nil {
		clone.MinSubScores = make(map[schema.MetricKey]float64, len(c.MinSubScores))
		maps.Copy(clone.MinSubScores, c.MinSubScores)
	}
	return &clone
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processAnalysisParams(cfg, input); err != nil {
		return err
	}
	if err := processPolicies(cfg, input); err != nil {
		return err
	}
	if err := processCheckThresholds(cfg, input); err != nil {
		return err
	}
	if err := resolveInputPath(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	// For SQLite, resolve to actual file paths to catch default path conflicts
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		cachePath := cfg.CacheDBConnect
		if cachePath == "" {
			cachePath = GetCacheDBFilePath()
		}
		historyPath := cfg.HistoryDBConnect
		if historyPath == "" {
			historyPath = GetHistoryDBFilePath()
		}
		if cachePath == historyPath {
			return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cachePath)
		}
	}
	return nil
}

// validateSimpleInputs processes and validates output and storage fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Subject = strings.TrimSpace(input.Subject)

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	level := input.LogLevel
	if level == "" {
		level = DefaultLogLevel
	}
	cfg.LogLevel, err = ParseLogLevel(level)
	if err != nil {
		return fmt.Errorf("invalid --log-level '%s'. must be debug, info, warn, error", input.LogLevel)
	}

	// --- 1. Explain Validation ---
	if input.Explain < 0 || input.Explain > len(schema.ScoredMetrics) {
		return fmt.Errorf("explain must be between 0 and %d (received %d)", len(schema.ScoredMetrics), input.Explain)
	}
	cfg.Explain = input.Explain

	// --- 2. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file as a file prefix")
	}

	// --- 3. Units and Plot Format Validation ---
	cfg.Units = schema.Units(strings.ToLower(input.Units))
	if _, ok := schema.ValidUnits[cfg.Units]; !ok {
		return fmt.Errorf("invalid units '%s'. must be auto, m, mm", input.Units)
	}

	format := input.Format
	if format == "" {
		format = string(schema.HTMLPlot)
	}
	cfg.PlotFormat = schema.PlotFormat(strings.ToLower(format))
	if _, ok := schema.ValidPlotFormats[cfg.PlotFormat]; !ok {
		return fmt.Errorf("invalid plot format '%s'. must be html, png", input.Format)
	}

	// --- 4. Backend Validation ---
	return validateBackendConfigs(cfg, input)
}

// processAnalysisParams builds the core engine parameters.
func processAnalysisParams(cfg *Config, input *ConfigRawInput) error {
	params := schema.DefaultParams()
	params.FPS = input.FPS
	params.MinStrikeSpacingSec = input.MinStrikeSpacing
	params.MinProminence = input.MinProminence
	params.ArmNoiseFloor = input.ArmNoiseFloor

	var err error
	if input.HeightAxis != "" {
		if params.Axes.Height, err = ParseAxis(input.HeightAxis); err != nil {
			return fmt.Errorf("invalid --height-axis: %w", err)
		}
	}
	if input.VerticalAxis != "" {
		if params.Axes.Vertical, err = ParseAxis(input.VerticalAxis); err != nil {
			return fmt.Errorf("invalid --vertical-axis: %w", err)
		}
	}
	if input.HorizontalAxes != "" {
		parts := strings.Split(input.HorizontalAxes, ",")
		if len(parts) != 2 {
			return fmt.Errorf("invalid --horizontal-axes '%s', expected two axes such as 'x,z'", input.HorizontalAxes)
		}
		for i, p := range parts {
			if params.Axes.Horizontal[i], err = ParseAxis(p); err != nil {
				return fmt.Errorf("invalid --horizontal-axes: %w", err)
			}
		}
	}

	if err := params.Validate(); err != nil {
		return err
	}
	cfg.Params = params
	return nil
}

// ParseAxis parses an axis given as x, y, z or 0, 1, 2.
func ParseAxis(s string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x", "0":
		return 0, nil
	case "y", "1":
		return 1, nil
	case "z", "2":
		return 2, nil
	default:
		return 0, fmt.Errorf("unknown axis '%s', must be x, y or z", s)
	}
}

// ProcessPolicyOverrides applies raw overrides on top of the default policies.
func ProcessPolicyOverrides(raw map[string]PolicyRawInput) (schema.PolicySet, error) {
	policies := schema.DefaultPolicies()
	for name, override := range raw {
		key := schema.MetricKey(strings.ToLower(strings.TrimSpace(name)))
		p, ok := policies[key]
		if !ok {
			return nil, fmt.Errorf("unknown metric '%s' in policies. must be one of %s", name, strings.Join(scoredMetricNames(), ", "))
		}
		if override.Lo != nil {
			p.Lo = *override.Lo
		}
		if override.Hi != nil {
			p.Hi = *override.Hi
		}
		if override.Weight != nil {
			p.Weight = *override.Weight
		}
		if p.Weight < 0 {
			return nil, fmt.Errorf("weight for metric %s must be non-negative (received %.3f)", key, p.Weight)
		}
		if p.Lo > p.Hi {
			return nil, fmt.Errorf("healthy range for metric %s is inverted: lo %.3f > hi %.3f", key, p.Lo, p.Hi)
		}
		policies[key] = p
	}
	if policies.TotalWeight() <= 0 {
		return nil, fmt.Errorf("at least one metric must have a positive weight")
	}
	return policies, nil
}

// processPolicies converts the raw overrides into the final cfg.Policies set.
func processPolicies(cfg *Config, input *ConfigRawInput) error {
	policies, err := ProcessPolicyOverrides(input.Policies)
	if err != nil {
		return err
	}
	cfg.Policies = policies
	return nil
}

// processCheckThresholds handles the minimum composite and sub-score gates.
// Command-line --min-subscores takes the form "gait_speed:5,avg_arm_swing:4".
func processCheckThresholds(cfg *Config, input *ConfigRawInput) error {
	if !(input.MinComposite >= 0 && input.MinComposite <= 100) {
		return fmt.Errorf("min-composite must be between 0 and 100 (received %.2f)", input.MinComposite)
	}
	cfg.MinComposite = input.MinComposite

	thresholds, err := parseSubScoreThresholds(input.MinSubScoresStr)
	if err != nil {
		return fmt.Errorf("invalid --min-subscores format: %w", err)
	}
	cfg.MinSubScores = thresholds
	return nil
}

// parseSubScoreThresholds parses "metric:value" pairs into a map.
func parseSubScoreThresholds(s string) (map[schema.MetricKey]float64, error) {
	thresholds := make(map[schema.MetricKey]float64)
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		keyValue := strings.Split(part, ":")
		if len(keyValue) != 2 {
			return nil, fmt.Errorf("invalid threshold format '%s', expected 'metric:value'", part)
		}

		key := schema.MetricKey(strings.ToLower(strings.TrimSpace(keyValue[0])))
		if !key.IsScored() {
			return nil, fmt.Errorf("invalid metric '%s', must be one of %s", keyValue[0], strings.Join(scoredMetricNames(), ", "))
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(keyValue[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid threshold value '%s' for metric %s: %w", keyValue[1], key, err)
		}
		if !(value >= 0 && value <= 10) {
			return nil, fmt.Errorf("sub-score threshold for metric %s must be between 0 and 10 (received %.2f)", key, value)
		}
		thresholds[key] = value
	}
	return thresholds, nil
}

// scoredMetricNames lists the scored metric keys as strings.
func scoredMetricNames() []string {
	names := make([]string, len(schema.ScoredMetrics))
	for i, k := range schema.ScoredMetrics {
		names[i] = string(k)
	}
	return names
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// resolveInputPath resolves the joint log path when one was given.
func resolveInputPath(cfg *Config, input *ConfigRawInput) error {
	if input.InputPathStr == "" {
		cfg.InputPath = ""
		return nil
	}
	absPath, err := filepath.Abs(input.InputPathStr)
	if err != nil {
		return err
	}
	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("cannot read joint log %q: %w", input.InputPathStr, err)
	}
	if info.IsDir() {
		return fmt.Errorf("joint log %q is a directory", input.InputPathStr)
	}
	cfg.InputPath = filepath.Clean(absPath)
	return nil
}
