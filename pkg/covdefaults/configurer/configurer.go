// Package configurer implements the default-settings configurer: it
// applies opinionated coverage defaults to a caller-owned settings
// store. Scalar options are overridden, list options are merged as
// sorted set unions so existing caller values survive, and the
// fail-under threshold is only defaulted when the caller left it
// unset.
package configurer

import (
	"os"
	"sort"
	"strings"

	"github.com/jamesainslie/covdefaults/pkg/covdefaults/logging"
	"github.com/jamesainslie/covdefaults/pkg/covdefaults/pragma"
	"github.com/jamesainslie/covdefaults/pkg/covdefaults/settings"
)

// DefaultFailUnder is the minimum-passing-coverage threshold applied
// when the caller has not set one.
const DefaultFailUnder = 100

// PackageMapping maps an installed package name to an optional
// destination source tree.
type PackageMapping struct {
	Name string
	Dest string
}

// ParsePackages parses `name[:dest]` entries in declaration order.
// Entries with more than one colon are treated as a bare name,
// matching the permissive construction-time parsing of the plugin
// options.
func ParsePackages(entries []string) []PackageMapping {
	out := make([]PackageMapping, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		mapping := PackageMapping{Name: entry}
		if strings.Count(entry, ":") == 1 {
			name, dest, _ := strings.Cut(entry, ":")
			mapping = PackageMapping{Name: name, Dest: dest}
		}
		out = append(out, mapping)
	}
	return out
}

// Options configure a Configurer at construction time. Zero-value
// options produce the plain defaults with a detected identity.
type Options struct {
	// SubtractOmit lists synthesized omit patterns to drop after the
	// union merge, letting an embedding caller opt out of individual
	// defaults while keeping the rest.
	SubtractOmit []string

	// InstalledPackages are packages whose installed copies should be
	// measured and mapped back to their source trees.
	InstalledPackages []PackageMapping

	// LibraryPaths are extra install directories searched for
	// installed packages, ahead of the discovered virtualenv layouts.
	LibraryPaths []string

	// Identity overrides the detected platform identity. Zero fields
	// fall back to detection.
	Identity pragma.Identity

	// PythonVersion is the interpreter line version pragmas target.
	// Zero falls back to pragma.DefaultVersion.
	PythonVersion pragma.Version

	// WorkDir overrides the working directory used for source-root
	// resolution and omit synthesis. Empty uses os.Getwd.
	WorkDir string
}

// Configurer applies the default settings to a store.
type Configurer struct {
	opts    Options
	id      pragma.Identity
	version pragma.Version
	workdir string
	log     *logging.Logger
}

// New creates a Configurer from options.
func New(opts Options) *Configurer {
	id := opts.Identity.Merge(pragma.Detect())
	version := opts.PythonVersion
	if version.IsZero() {
		version = pragma.DefaultVersion
	}
	workdir := opts.WorkDir
	if workdir == "" {
		if wd, err := os.Getwd(); err == nil {
			workdir = wd
		} else {
			workdir = "."
		}
	}
	return &Configurer{
		opts:    opts,
		id:      id,
		version: version,
		workdir: workdir,
		log:     logging.Get("configurer"),
	}
}

// Identity returns the effective environment identity.
func (c *Configurer) Identity() pragma.Identity {
	return c.id
}

// Version returns the effective interpreter version.
func (c *Configurer) Version() pragma.Version {
	return c.version
}

// Configure mutates store in place. It fails only for the
// installed-package resolution errors; every other input is treated
// permissively (absent options get defaults, present options are
// merged, not overwritten).
func (c *Configurer) Configure(store settings.Store) error {
	if err := c.setSource(store); err != nil {
		return err
	}

	store.SetOption("run:branch", true)
	store.SetOption("report:show_missing", true)
	store.SetOption("report:skip_covered", true)

	mergeOption(store, "report:exclude_lines", pragma.ExcludeLines(c.id, c.version))
	mergeOption(store, "report:partial_branches", pragma.PartialBranches())

	c.fixOmit(store)

	// The host ships its own looser exclude defaults; drop them after
	// merging so the stricter word-anchored pragma supersedes them.
	exclude := toSet(settings.Strings(store, "report:exclude_lines"))
	for _, p := range pragma.HostDefaultExclude {
		delete(exclude, p)
	}
	store.SetOption("report:exclude_lines", sortedKeys(exclude))

	// A caller-set non-zero threshold always wins.
	if settings.Int(store, "report:fail_under") == 0 {
		store.SetOption("report:fail_under", DefaultFailUnder)
	}

	c.log.Debug("defaults applied",
		"identity", c.id,
		"version", c.version.String(),
		"omit", len(settings.Strings(store, "run:omit")),
		"exclude_lines", len(settings.Strings(store, "report:exclude_lines")))
	return nil
}

// mergeOption replaces a list option with the sorted union of its
// existing value and defaults. Reapplying never grows the list.
func mergeOption(store settings.Store, key string, defaults []string) {
	merged := toSet(settings.Strings(store, key))
	for _, d := range defaults {
		merged[d] = struct{}{}
	}
	store.SetOption(key, sortedKeys(merged))
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
