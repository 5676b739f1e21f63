package main

import (
	"github.com/jamesainslie/covdefaults/pkg/covdefaults/settings"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the defaults without touching any file",
	Long: `Print the defaults without touching any file.

The full option set is synthesized against an empty in-memory store,
honoring the identity and version overrides, so the output is exactly
what an empty config file would receive.`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// runShow previews the synthesized defaults against an empty store.
func runShow(cmd *cobra.Command, args []string) error {
	cfgr, err := newConfigurer()
	if err != nil {
		printError("%v", err)
		return err
	}

	store := settings.NewMemStore()
	if err := cfgr.Configure(store); err != nil {
		printError("%v", err)
		return err
	}

	return printResult(buildResult(&previewStore{store}, nil))
}

// previewStore adapts a MemStore to the report builder, which wants a
// path and a save target.
type previewStore struct {
	*settings.MemStore
}

func (p *previewStore) Path() string { return "" }
