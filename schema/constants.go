package schema

// Custom string types for type safety.
type (
	// MetricKey identifies a gait metric in a MetricSet.
	MetricKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// Band represents the interpretation band of a composite score.
	Band string

	// Units represents the coordinate units of an input log.
	Units string

	// PlotFormat represents the format of a signal plot.
	PlotFormat string

	// DatabaseBackend represents the database backend for caching and history.
	DatabaseBackend string
)

// Scored metric keys.
const (
	GaitSpeed           MetricKey = "gait_speed"            // m/s
	AvgStepLength       MetricKey = "avg_step_length"       // m
	StepLengthCV        MetricKey = "step_length_cv"        // ratio
	StepLengthAsymmetry MetricKey = "step_length_asymmetry" // ratio
	AvgArmSwing         MetricKey = "avg_arm_swing"         // m
	ArmSwingAsymmetry   MetricKey = "arm_swing_asymmetry"   // ratio
	AvgTrunkFlexion     MetricKey = "avg_trunk_flexion"     // degrees
)

// Supplemental metric keys. These are reported but never scored.
const (
	Duration   MetricKey = "duration_s"
	Cadence    MetricKey = "cadence"
	LeftSteps  MetricKey = "left_steps"
	RightSteps MetricKey = "right_steps"
)

// ScoredMetrics lists the scored metrics in report order.
var ScoredMetrics = []MetricKey{
	GaitSpeed,
	AvgStepLength,
	StepLengthCV,
	StepLengthAsymmetry,
	AvgArmSwing,
	ArmSwingAsymmetry,
	AvgTrunkFlexion,
}

// SupplementalMetrics lists the unscored metrics in report order.
var SupplementalMetrics = []MetricKey{Duration, Cadence, LeftSteps, RightSteps}

// MetricUnits maps metrics to their display unit.
var MetricUnits = map[MetricKey]string{
	GaitSpeed:           "m/s",
	AvgStepLength:       "m",
	StepLengthCV:        "",
	StepLengthAsymmetry: "",
	AvgArmSwing:         "m",
	ArmSwingAsymmetry:   "",
	AvgTrunkFlexion:     "deg",
	Duration:            "s",
	Cadence:             "steps/min",
	LeftSteps:           "",
	RightSteps:          "",
}

// All interpretation bands.
const (
	HealthyBand  Band = "healthy"
	MildBand     Band = "mild"
	ModerateBand Band = "moderate"
	HighBand     Band = "high"
)

// Band thresholds on the composite score.
const (
	HealthyThreshold  = 80.0
	MildThreshold     = 60.0
	ModerateThreshold = 40.0
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All unit modes supported.
const (
	AutoUnits       Units = "auto" // default
	MetersUnits     Units = "m"
	MillimeterUnits Units = "mm"
)

// All plot formats supported.
const (
	HTMLPlot PlotFormat = "html" // default
	PNGPlot  PlotFormat = "png"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidBands lists all interpretation bands.
var ValidBands = map[Band]struct{}{
	HealthyBand:  {},
	MildBand:     {},
	ModerateBand: {},
	HighBand:     {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidUnits lists all valid unit modes.
var ValidUnits = map[Units]struct{}{
	AutoUnits:       {},
	MetersUnits:     {},
	MillimeterUnits: {},
}

// ValidPlotFormats lists all valid plot formats.
var ValidPlotFormats = map[PlotFormat]struct{}{
	HTMLPlot: {},
	PNGPlot:  {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// IsScored reports whether the key is one of the scored metrics.
func (k MetricKey) IsScored() bool {
	for _, s := range ScoredMetrics {
		if s == k {
			return true
		}
	}
	return false
}
