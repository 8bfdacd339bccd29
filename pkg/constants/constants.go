// Package constants provides shared constants for the lp-bulk application.
package constants

// Price unit factors. Units are single case-sensitive letters following the
// numeric portion of a price, e.g. "1.5M".
const (
	// UnitStep is the ratio between two adjacent price units
	UnitStep = 1_000.0

	// Thousand is the factor applied by the K unit
	Thousand = 1e3

	// Million is the factor applied by the M unit
	Million = 1e6

	// Billion is the factor applied by the B unit
	Billion = 1e9

	// MaxEncodable is the first amount that no longer fits the K/M/B ladder
	MaxEncodable = 1e12
)

// Page text markers.
const (
	// CurrencyMarker ends every priced entry and doubles as the entry separator
	// inside a requirements block.
	CurrencyMarker = "ISK"

	// RequirementsLabel prefixes the requirements block text.
	RequirementsLabel = "Requirements:"

	// PriceSeparator separates an item name from its price within an entry.
	PriceSeparator = "-"
)

// Multiplier constants
const (
	// MinMultiplier is the smallest multiplier that expands a row. A multiplier
	// of one is the baseline which is already shown.
	MinMultiplier = 2

	// DefaultCaptureWorkers bounds the number of rows captured concurrently
	DefaultCaptureWorkers = 8
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "offers.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML offer tables (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// MaxUploadSizeBytes caps the configurable upload limit (64 MB)
	MaxUploadSizeBytes int64 = 64 * 1024 * 1024

	// DefaultMultiplier is used when neither the request nor the offer table names a multiplier
	DefaultMultiplier = 10
)

// Validation constants
const (
	// RelativeTolerance is the tolerance used when comparing amounts that went
	// through float division, e.g. a decode/encode round trip
	RelativeTolerance = 1e-9

	// CurrencyTolerance is the absolute tolerance for amount comparisons (1 hundredth of an ISK)
	CurrencyTolerance = 0.01
)
