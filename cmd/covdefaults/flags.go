package main

import (
	"fmt"

	"github.com/jamesainslie/covdefaults/pkg/covdefaults/configurer"
	"github.com/jamesainslie/covdefaults/pkg/covdefaults/pragma"
)

// buildOptions creates configurer.Options from the loaded plugin
// configuration. Option strings are parsed here, once, at the
// construction boundary.
func buildOptions() (configurer.Options, error) {
	opts := configurer.Options{
		SubtractOmit:      cfg.SubtractOmit,
		InstalledPackages: configurer.ParsePackages(cfg.InstalledPackages),
		LibraryPaths:      cfg.LibraryPaths,
		Identity: pragma.Identity{
			OSName:         cfg.Identity.OSName,
			Platform:       cfg.Identity.Platform,
			Implementation: cfg.Identity.Implementation,
		},
	}

	if cfg.PythonVersion != "" {
		version, err := pragma.ParseVersion(cfg.PythonVersion)
		if err != nil {
			return configurer.Options{}, fmt.Errorf("invalid python version: %w", err)
		}
		opts.PythonVersion = version
	}
	return opts, nil
}

// newConfigurer builds the named configurer through the registry, the
// same discovery path a host uses.
func newConfigurer() (*configurer.Configurer, error) {
	opts, err := buildOptions()
	if err != nil {
		return nil, err
	}
	factory, err := configurer.Get(configurer.Name)
	if err != nil {
		return nil, err
	}
	return factory(opts), nil
}

// outputFormat returns the selected formatter name.
func outputFormat() string {
	return cfg.Format
}
