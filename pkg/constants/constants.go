// Package constants provides shared constants for the enrichment calculator.
package constants

// Numerical constants
const (
	// Epsilon bounds assays away from 0 and 1, floors the mode-4 denominator
	// and is the default bracket width at which the tails optimizer stops.
	Epsilon = 1e-9

	// MassBalanceTolerance is the absolute tolerance for F = P + W.
	MassBalanceTolerance = 1e-6

	// MaxOptimizerTolerance is the widest bracket a tails search may stop at.
	// It stays well below any practical feed assay.
	MaxOptimizerTolerance = 1e-6

	// DefaultMaxIterations caps the golden-section search.
	DefaultMaxIterations = 100

	// DefaultCurvePoints is the number of samples returned for a cost curve.
	DefaultCurvePoints = 50

	// MaxCurvePoints bounds a requested cost curve.
	MaxCurvePoints = 1000

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Mass unit conversion factors to kilograms.
const (
	// KilogramsPerPound is the international avoirdupois pound.
	KilogramsPerPound = 0.45359237

	// KilogramsPerTonne is one metric tonne.
	KilogramsPerTonne = 1000.0
)

// Display precision used by the presentation layer. The core never rounds.
const (
	// MassDisplayDecimals is the number of decimals shown for masses.
	MassDisplayDecimals = 6

	// SWUDisplayDecimals is the number of decimals shown for separative work.
	SWUDisplayDecimals = 3

	// AssayDisplayDecimals is the number of decimals shown for percent assays.
	AssayDisplayDecimals = 4

	// CurrencyDisplayDecimals is the number of decimals shown for costs.
	CurrencyDisplayDecimals = 2
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default scenario file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example scenario file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment overrides, e.g. ENRICH_LOGGING_LEVEL.
	EnvPrefix = "ENRICH"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML scenario files (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultHistoryLimit is the number of past calculations kept in memory.
	DefaultHistoryLimit = 50
)
