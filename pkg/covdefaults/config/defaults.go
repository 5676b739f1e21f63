// Package config provides configuration management for the
// covdefaults plugin itself: the construction options an embedding
// caller or the CLI hands to the configurer.
package config

// Default configuration values for covdefaults.
const (
	// DefaultConfigDir is the default configuration directory path.
	DefaultConfigDir = "~/.config/covdefaults"

	// DefaultPythonVersion is the interpreter line version pragmas
	// target when none is configured.
	DefaultPythonVersion = "3.12"

	// DefaultFormat is the default report formatter name.
	DefaultFormat = "pretty"

	// DefaultLogLevel is the default logging level.
	DefaultLogLevel = "warn"
)

// DefaultHostConfigFiles are the host config file names probed, in
// order, when the CLI is not given an explicit file.
var DefaultHostConfigFiles = []string{
	".coverage.toml",
	"pyproject.toml",
}
