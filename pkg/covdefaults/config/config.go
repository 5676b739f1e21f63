package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// IdentityConfig overrides the detected environment identity.
type IdentityConfig struct {
	OSName         string `mapstructure:"os_name"`
	Platform       string `mapstructure:"platform"`
	Implementation string `mapstructure:"implementation"`
}

// LoggingConfig configures plugin logging.
type LoggingConfig struct {
	Level      string            `mapstructure:"level"`
	Components map[string]string `mapstructure:"components"`
}

// Config represents the plugin configuration. It is parsed once at
// the construction boundary; nothing re-parses option strings later.
type Config struct {
	SubtractOmit      []string       `mapstructure:"subtract_omit"`
	InstalledPackages []string       `mapstructure:"installed_packages"`
	LibraryPaths      []string       `mapstructure:"library_paths"`
	Identity          IdentityConfig `mapstructure:"identity"`
	PythonVersion     string         `mapstructure:"python_version"`
	Format            string         `mapstructure:"format"`
	Logging           LoggingConfig  `mapstructure:"logging"`
}

// flagBindings maps config keys to the CLI flag overriding them.
// Binding happens here so file, environment, and flag precedence is
// decided in one place.
var flagBindings = map[string]string{
	"format":                  "format",
	"subtract_omit":           "subtract-omit",
	"installed_packages":      "installed-package",
	"library_paths":           "library-path",
	"identity.os_name":        "os-name",
	"identity.platform":       "platform",
	"identity.implementation": "implementation",
	"python_version":          "python-version",
}

// Load loads configuration from the given file (or, when cfgFile is
// empty, the default locations), environment variables, and the given
// flag set (may be nil). Default locations in order of precedence:
//   - $XDG_CONFIG_HOME/covdefaults/config.yaml
//   - $HOME/.config/covdefaults/config.yaml
//
// Environment variables are prefixed with COVDEFAULTS_
// (e.g., COVDEFAULTS_PYTHON_VERSION). Set flags win over both.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".config", "covdefaults"))
		}
	}

	v.SetEnvPrefix("COVDEFAULTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	v.SetDefault("python_version", DefaultPythonVersion)
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("logging.level", DefaultLogLevel)

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// ConfigDir returns $XDG_CONFIG_HOME/covdefaults.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, "covdefaults")
}
