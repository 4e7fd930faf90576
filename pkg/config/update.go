package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int

	s = c.Catalog.AuthorityID
	if s != "" {
		res = append(res, OptCatalogAuthorityID(s))
	}
	s = c.Catalog.IDStyle
	if s != "" {
		res = append(res, OptCatalogIDStyle(s))
	}
	i = c.Catalog.SecondsDigits
	if i > 0 {
		res = append(res, OptCatalogSecondsDigits(i))
	}
	if c.Catalog.MagnitudeBinSize > 0 {
		res = append(res, OptCatalogMagnitudeBinSize(c.Catalog.MagnitudeBinSize))
	}

	s = c.Archive.Host
	if s != "" {
		res = append(res, OptArchiveHost(s))
	}
	i = c.Archive.Port
	if i > 0 {
		res = append(res, OptArchivePort(i))
	}
	s = c.Archive.User
	if s != "" {
		res = append(res, OptArchiveUser(s))
	}
	s = c.Archive.Password
	if s != "" {
		res = append(res, OptArchivePassword(s))
	}
	s = c.Archive.Database
	if s != "" {
		res = append(res, OptArchiveDatabase(s))
	}
	s = c.Archive.SSLMode
	if s != "" {
		res = append(res, OptArchiveSSLMode(s))
	}
	i = c.Archive.BatchSize
	if i > 0 {
		res = append(res, OptArchiveBatchSize(i))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidFloat(name string, f float64) bool {
	res := f > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive, ignoring %f", name, f)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Archive.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Catalog.IDStyle": {"full": s, "short": s, "numeric": s,
			"uuid": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"stderr": s, "stdout": s, "file": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	} else {
		gn.Warn(
			"<em>%s</em> does not support '%s' as a value. "+
				"Valid values are: \n%s\nIgnoring...",
			[]string{name, val, strings.Join(lines, "\n")},
		)
		return false
	}
}
