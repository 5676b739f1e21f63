package main

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/dustin/go-humanize"
	"github.com/jamesainslie/covdefaults/pkg/covdefaults/configurer"
	"github.com/jamesainslie/covdefaults/pkg/covdefaults/logging"
	"github.com/jamesainslie/covdefaults/pkg/covdefaults/omit"
	"github.com/jamesainslie/covdefaults/pkg/covdefaults/settings"
	"github.com/spf13/cobra"
)

var listOmitted bool

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Report which files the omit patterns would exclude",
	Long: `Report which files the omit patterns would exclude.

The directory tree is walked and every Python file is matched against
the omit patterns the defaults would synthesize for it. Use --list to
see each omitted file with the pattern that matched it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&listOmitted, "list", false, "list every omitted file with its matching pattern")
	rootCmd.AddCommand(checkCmd)
}

// checkResult accumulates walk results. fastwalk invokes the callback
// from multiple goroutines.
type checkResult struct {
	mu           sync.Mutex
	measured     int
	measuredSize uint64
	omitted      map[string]string
}

// runCheck walks a tree and matches Python files against the
// synthesized omit patterns.
func runCheck(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		printError("resolving %s: %v", root, err)
		return err
	}
	root = abs

	matcher, err := buildMatcher(root)
	if err != nil {
		printError("%v", err)
		return err
	}

	result := &checkResult{omitted: make(map[string]string)}
	conf := fastwalk.Config{
		Follow: false, // Don't follow symlinks.
	}
	if err := fastwalk.Walk(&conf, root, walkPython(matcher, result)); err != nil {
		printError("walking %s: %v", root, err)
		return err
	}

	printCheck(cmd, root, result)
	return nil
}

// buildMatcher synthesizes the omit patterns for root and compiles
// them.
func buildMatcher(root string) (*omit.Matcher, error) {
	opts, err := buildOptions()
	if err != nil {
		return nil, err
	}
	opts.WorkDir = root

	factory, err := configurer.Get(configurer.Name)
	if err != nil {
		return nil, err
	}
	cfgr := factory(opts)

	store := settings.NewMemStore()
	if err := cfgr.Configure(store); err != nil {
		return nil, err
	}

	patterns := settings.Strings(store, "run:omit")
	logging.Get("check").Debug("compiled omit patterns", "count", len(patterns))
	return omit.NewMatcher(patterns)
}

// walkPython returns the fastwalk callback collecting Python files.
func walkPython(matcher *omit.Matcher, result *checkResult) fs.WalkDirFunc {
	return func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logging.Get("check").Warn("skipping unreadable entry", "path", path, "error", err)
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(path, ".py") {
			return nil
		}

		pattern, ok := matcher.Pattern(path)

		result.mu.Lock()
		defer result.mu.Unlock()
		if ok {
			result.omitted[path] = pattern
			return nil
		}
		result.measured++
		if info, infoErr := d.Info(); infoErr == nil {
			result.measuredSize += uint64(info.Size())
		}
		return nil
	}
}

// printCheck writes the summary (and optionally the omitted list) to
// the command's stdout.
func printCheck(cmd *cobra.Command, root string, result *checkResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d measured (%s), %d omitted\n",
		root, result.measured, humanize.IBytes(result.measuredSize), len(result.omitted))

	if !listOmitted || len(result.omitted) == 0 {
		return
	}

	paths := make([]string, 0, len(result.omitted))
	for path := range result.omitted {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		fmt.Fprintf(out, "  %-50s %s\n", rel, result.omitted[path])
	}
}
