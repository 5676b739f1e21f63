package main

import (
	"fmt"
	"os"

	"github.com/jamesainslie/covdefaults/pkg/covdefaults/config"
	"github.com/jamesainslie/covdefaults/pkg/covdefaults/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile string

	// cfg is the effective plugin configuration, populated by
	// initConfig before any command runs.
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "covdefaults [config-file]",
		Short: "Apply opinionated coverage defaults to a config file",
		Long: `covdefaults applies opinionated defaults to a coverage config file:
branch coverage, strict exclusion patterns, omission of virtual
environment and packaging files, and a fail-under threshold of 100.

Caller-set values survive: scalar options you set are kept where the
defaults would only fill gaps, and list options are merged, never
clobbered.

Examples:
  covdefaults                          # Configure .coverage.toml or pyproject.toml
  covdefaults pyproject.toml           # Configure a specific file
  covdefaults --dry-run -f plain       # Preview without writing
  covdefaults show                     # Print the synthesized defaults
  covdefaults check src/               # Which files would be omitted?`,
		Args: cobra.MaximumNArgs(1),
		RunE: runApply,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		fmt.Sprintf("plugin config file (default: %s/config.yaml)", config.DefaultConfigDir))
	rootCmd.PersistentFlags().StringP("format", "f", "", "output format (pretty, plain, json, yaml, patterns)")
	rootCmd.PersistentFlags().StringSlice("subtract-omit", nil, "default omit patterns to drop (can be specified multiple times)")
	rootCmd.PersistentFlags().StringSlice("installed-package", nil, "installed package to measure, as name[:dest]")
	rootCmd.PersistentFlags().StringSlice("library-path", nil, "extra library-install directories to search")
	rootCmd.PersistentFlags().String("os-name", "", "override the os-family tag (nt, posix)")
	rootCmd.PersistentFlags().String("platform", "", "override the platform tag (cygwin, darwin, linux, msys, win32)")
	rootCmd.PersistentFlags().String("implementation", "", "override the implementation tag (cpython, pypy)")
	rootCmd.PersistentFlags().String("python-version", "", "interpreter version for version pragmas (e.g. 3.12)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output")
}

// initConfig loads the plugin configuration: file, environment, and
// the persistent flag overrides, in one pass through config.Load.
func initConfig() {
	loaded, err := config.Load(cfgFile, rootCmd.PersistentFlags())
	if err != nil {
		printError("loading configuration: %v", err)
		// Fall back to pure defaults so the run can still proceed.
		loaded = &config.Config{
			PythonVersion: config.DefaultPythonVersion,
			Format:        config.DefaultFormat,
		}
		loaded.Logging.Level = config.DefaultLogLevel
	}
	cfg = loaded

	initLogging()
}

// initLogging configures logging from the loaded config; the verbose
// and quiet flags override the configured level.
func initLogging() {
	level := cfg.Logging.Level
	if v, _ := rootCmd.PersistentFlags().GetBool("verbose"); v {
		level = "debug"
	} else if q, _ := rootCmd.PersistentFlags().GetBool("quiet"); q {
		level = "error"
	}
	_ = logging.Init(logging.Config{
		Level:      level,
		Components: cfg.Logging.Components,
	})
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// printError prints an error message to stderr.
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
