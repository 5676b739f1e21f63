package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/jamesainslie/covdefaults/pkg/covdefaults/config"
	"github.com/jamesainslie/covdefaults/pkg/covdefaults/output"
	"github.com/jamesainslie/covdefaults/pkg/covdefaults/settings"
	"github.com/spf13/cobra"
)

var (
	dryRun       bool
	createConfig bool
)

func init() {
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the result without writing the config file")
	rootCmd.Flags().BoolVar(&createConfig, "create", false, "create the config file if it does not exist")
}

// trackedKeys are the options the configurer may touch, reported in
// this order.
var trackedKeys = []string{
	"run:branch",
	"run:source",
	"run:omit",
	"report:show_missing",
	"report:skip_covered",
	"report:fail_under",
	"report:exclude_lines",
	"report:partial_branches",
}

// runApply configures the host config file and prints a report.
func runApply(cmd *cobra.Command, args []string) error {
	store, err := openHostConfig(args)
	if err != nil {
		printError("%v", err)
		return err
	}

	cfgr, err := newConfigurer()
	if err != nil {
		printError("%v", err)
		return err
	}

	before := snapshot(store)
	if err := cfgr.Configure(store); err != nil {
		printError("configuring %s: %v", store.Path(), err)
		return err
	}

	if !dryRun {
		if err := store.Save(); err != nil {
			printError("%v", err)
			return err
		}
	}

	return printResult(buildResult(store, before))
}

// openHostConfig locates and opens the host config file.
func openHostConfig(args []string) (*settings.FileStore, error) {
	if len(args) == 1 {
		target := args[0]
		if _, err := os.Stat(target); errors.Is(err, os.ErrNotExist) && createConfig {
			return settings.Create(target), nil
		}
		return settings.Open(target)
	}

	for _, name := range config.DefaultHostConfigFiles {
		if _, err := os.Stat(name); err == nil {
			return settings.Open(name)
		}
	}
	if createConfig {
		return settings.Create(config.DefaultHostConfigFiles[0]), nil
	}
	return nil, fmt.Errorf("no coverage configuration found (looked for %v); pass a path or --create",
		config.DefaultHostConfigFiles)
}

// snapshot records the tracked option values before configuring.
func snapshot(store settings.Store) map[string]any {
	before := make(map[string]any, len(trackedKeys))
	for _, key := range trackedKeys {
		if v, ok := store.GetOption(key); ok {
			before[key] = v
		}
	}
	return before
}

// hostStore is the store surface the report builder needs.
type hostStore interface {
	settings.Store
	Path() string
}

// buildResult assembles the report from the configured store.
func buildResult(store hostStore, before map[string]any) *output.Result {
	r := &output.Result{
		ConfigPath:      store.Path(),
		DryRun:          dryRun,
		Source:          settings.Strings(store, "run:source"),
		Omit:            settings.Strings(store, "run:omit"),
		ExcludeLines:    settings.Strings(store, "report:exclude_lines"),
		PartialBranches: settings.Strings(store, "report:partial_branches"),
	}
	if paths := store.Paths(); len(paths) > 0 {
		r.Paths = paths
	}
	r.Changes = diffChanges(store, before)
	return r
}

// diffChanges compares tracked options against their pre-configure
// snapshot.
func diffChanges(store settings.Store, before map[string]any) []output.Change {
	var changes []output.Change
	for _, key := range trackedKeys {
		after, ok := store.GetOption(key)
		if !ok {
			continue
		}
		old, had := before[key]
		if had && reflect.DeepEqual(old, after) {
			continue
		}
		if !had {
			old = nil
		}
		changes = append(changes, output.Change{Key: key, Old: old, New: after})
	}
	return changes
}

// printResult renders a result with the selected formatter.
func printResult(r *output.Result) error {
	formatter, err := output.Get(outputFormat())
	if err != nil {
		printError("%v (available: %v)", err, output.Available())
		return err
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, r); err != nil {
		printError("formatting output: %v", err)
		return err
	}
	fmt.Print(buf.String())
	return nil
}
