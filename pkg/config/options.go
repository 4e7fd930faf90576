package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptCatalogAuthorityID sets the authority part of generated
// resource identifiers.
func OptCatalogAuthorityID(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Authority ID", s) {
			c.Catalog.AuthorityID = s
		}
	}
}

// OptCatalogIDStyle sets the identifier generation style.
// Valid values: "full", "short", "numeric", "uuid".
func OptCatalogIDStyle(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Catalog.IDStyle", s) {
			c.Catalog.IDStyle = s
		}
	}
}

// OptCatalogSecondsDigits sets the number of fractional-second digits
// for rendered timestamps.
func OptCatalogSecondsDigits(i int) Option {
	return func(c *Config) {
		if isValidInt("Seconds Digits", i) {
			c.Catalog.SecondsDigits = i
		}
	}
}

// OptCatalogMagnitudeBinSize sets the default magnitude rebin width.
func OptCatalogMagnitudeBinSize(f float64) Option {
	return func(c *Config) {
		if isValidFloat("Magnitude Bin Size", f) {
			c.Catalog.MagnitudeBinSize = f
		}
	}
}

// OptArchiveHost sets the PostgreSQL server hostname or IP address.
func OptArchiveHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Archive Host", s) {
			c.Archive.Host = s
		}
	}
}

// OptArchivePort sets the PostgreSQL server port number.
func OptArchivePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Archive Port", i) {
			c.Archive.Port = i
		}
	}
}

// OptArchiveUser sets the PostgreSQL database username.
func OptArchiveUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Archive User", s) {
			c.Archive.User = s
		}
	}
}

// OptArchivePassword sets the PostgreSQL database password.
func OptArchivePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Archive Password", s) {
			c.Archive.Password = s
		}
	}
}

// OptArchiveDatabase sets the PostgreSQL database name to connect to.
func OptArchiveDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Archive Database", s) {
			c.Archive.Database = s
		}
	}
}

// OptArchiveSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptArchiveSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Archive.SSLMode", s) {
			c.Archive.SSLMode = s
		}
	}
}

// OptArchiveBatchSize sets the number of event rows per COPY batch.
func OptArchiveBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Archive.BatchSize = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "stderr", "stdout", "file".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for multi-file
// conversion. Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
