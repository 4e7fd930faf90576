// Package config provides configuration management for QCat.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Environment Variables
//
// Use QCAT_ prefix with underscores for nesting:
//
//	QCAT_CATALOG_AUTHORITY_ID=us.anss
//	QCAT_CATALOG_ID_STYLE=full
//	QCAT_ARCHIVE_HOST=localhost
//	QCAT_LOG_LEVEL=info
package config

import (
	"runtime"
)

// Config represents the complete QCat configuration.
type Config struct {
	// Catalog contains settings for catalog building and identifier
	// generation.
	Catalog CatalogConfig `mapstructure:"catalog" yaml:"catalog"`

	// Archive contains PostgreSQL connection settings for the catalog
	// archive database.
	Archive ArchiveConfig `mapstructure:"archive" yaml:"archive"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers when converting
	// several catalog files in one run. Parsing of a single file stays
	// strictly sequential.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// CatalogConfig contains settings for catalog building.
type CatalogConfig struct {
	// AuthorityID is the authority part of generated resource
	// identifiers ("smi:<authority>/<type>/<local id>").
	AuthorityID string `mapstructure:"authority_id" yaml:"authority_id"`

	// IDStyle selects how identifiers for new entities are generated.
	// Valid values: "full", "short", "numeric", "uuid".
	IDStyle string `mapstructure:"id_style" yaml:"id_style"`

	// SecondsDigits is the number of fractional-second digits used when
	// timestamps are rendered into XML or identifiers.
	SecondsDigits int `mapstructure:"seconds_digits" yaml:"seconds_digits"`

	// MagnitudeBinSize is the default bin width for magnitude rebinning.
	MagnitudeBinSize float64 `mapstructure:"magnitude_bin_size" yaml:"magnitude_bin_size"`
}

// ArchiveConfig contains PostgreSQL connection parameters for the
// archive database.
type ArchiveConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize defines the number of event rows per COPY batch when
	// loading a catalog into the archive. Larger batches are faster but
	// use more memory.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be 'stderr', 'stdout' or 'file'.
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Catalog: CatalogConfig{
			AuthorityID:      "local",
			IDStyle:          "full",
			SecondsDigits:    6,
			MagnitudeBinSize: 0.1,
		},
		Archive: ArchiveConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "qcat",
			SSLMode:   "disable",
			BatchSize: 50_000,
		},
		Log: LogConfig{
			Format:      "text",
			Level:       "info",
			Destination: "stderr",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
