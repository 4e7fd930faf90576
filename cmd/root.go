/*
Copyright © 2026 The QCat Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/quakepy/qcat/internal/iofs"
	"github.com/quakepy/qcat/internal/iologger"
	"github.com/quakepy/qcat/pkg/config"
	app "github.com/quakepy/qcat/pkg/qcat"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands
// registered. Extracted as a function to facilitate testing.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "qcat",
		Short:   "QCat manages seismic event catalogs",
		Long: `QCat reads, converts, filters and archives seismic event catalogs.

Catalogs are held in the QuakeML event hierarchy and can be read from
and written to a number of bulletin formats:

  - Import: QuakeML XML, ZMAP, NDK/CMT, STP, ANSS "reduced", NEIC PDE,
    JMA deck, GSE2.0, OGS HPL
  - Export: QuakeML XML, ZMAP (plain and CSEP), NDK/CMT, AtticIvy

Operations:
  - convert: translate catalogs between formats
  - cut: keep only events inside space, time, depth and magnitude bounds
  - rebin: snap magnitudes onto a regular grid of bins
  - compact: reduce a catalog to a columnar form (ASCII or SQLite)
  - create/migrate/archive: maintain a PostgreSQL event archive

Configuration precedence (highest to lowest):
  1. Environment variables (QCAT_*)
  2. Config file (config.yaml)
  3. Built-in defaults`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "qcat version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for qcat")

	rootCmd.AddCommand(getConvertCmd())
	rootCmd.AddCommand(getCutCmd())
	rootCmd.AddCommand(getRebinCmd())
	rootCmd.AddCommand(getCompactCmd())
	rootCmd.AddCommand(getCreateCmd())
	rootCmd.AddCommand(getMigrateCmd())
	rootCmd.AddCommand(getArchiveCmd())

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info(
		"Configuration files are available at <em>%s</em>",
		config.ConfigDir(homeDir),
	)

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings and proper log file location
	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded", "config_file", config.ConfigFilePath(homeDir))

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
// Creates log file in the proper location now that we know HomeDir.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log, true)
}

func runRoot(cmd *cobra.Command, args []string) error {
	versionFlag(cmd)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("QCAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Catalog configuration
	v.BindEnv("catalog.authority_id", "CATALOG_AUTHORITY_ID")
	v.BindEnv("catalog.id_style", "CATALOG_ID_STYLE")
	v.BindEnv("catalog.seconds_digits", "CATALOG_SECONDS_DIGITS")
	v.BindEnv("catalog.magnitude_bin_size", "CATALOG_MAGNITUDE_BIN_SIZE")

	// Archive database configuration
	v.BindEnv("archive.host", "ARCHIVE_HOST")
	v.BindEnv("archive.port", "ARCHIVE_PORT")
	v.BindEnv("archive.user", "ARCHIVE_USER")
	v.BindEnv("archive.password", "ARCHIVE_PASSWORD")
	v.BindEnv("archive.database", "ARCHIVE_DATABASE")
	v.BindEnv("archive.ssl_mode", "ARCHIVE_SSL_MODE")
	v.BindEnv("archive.batch_size", "ARCHIVE_BATCH_SIZE")

	// Log configuration
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
	v.BindEnv("log.destination", "LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "JOBS_NUMBER")

	v.AutomaticEnv()
}
