package configurer

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jamesainslie/covdefaults/pkg/covdefaults/settings"
)

// sourceSuffixes are the file extensions considered measurable when
// synthesizing sibling omit patterns.
var sourceSuffixes = []string{".py", ".pyc", ".pyo"}

// envFolders are conventional virtual-environment directory names.
// Prefix entries also cover name-prefixed variants (venv38, .venv-ci).
var envFolders = []struct {
	name   string
	prefix bool
}{
	{".tox", false},
	{".nox", false},
	{"venv", true},
	{".venv", true},
}

// fixOmit merges the default omit patterns into run:omit: the
// always-omitted packaging files, one pattern per virtual-environment
// folder name, and then the caller's subtractions. When a declared
// source root is nested inside such a folder a coarse pattern would
// omit the code under measurement, so the siblings of every ancestor
// segment are omitted instead.
func (c *Configurer) fixOmit(store settings.Store) {
	omit := toSet(settings.Strings(store, "run:omit"))
	omit["*/setup.py"] = struct{}{}
	omit["*/__main__.py"] = struct{}{}

	source := settings.Strings(store, "run:source")
	for _, folder := range envFolders {
		needle := string(os.PathSeparator) + folder.name + string(os.PathSeparator)
		nested := false
		for _, src := range source {
			if strings.Contains(src, needle) {
				c.omitSiblings(omit, src)
				nested = true
				break
			}
		}
		if !nested {
			pattern := "*/" + folder.name
			if folder.prefix {
				pattern += "*"
			}
			omit[pattern+"/*"] = struct{}{}
		}
	}

	for _, p := range c.opts.SubtractOmit {
		delete(omit, p)
	}
	store.SetOption("run:omit", sortedKeys(omit))
}

// omitSiblings climbs from the working directory toward src one path
// segment at a time, adding an omit pattern for every sibling entry
// that is not on the path to src. Directories get a wildcard suffix;
// files are only added when they carry a source-file extension. The
// walk is strictly descending, bounded by the depth of src.
func (c *Configurer) omitSiblings(omit map[string]struct{}, src string) {
	rel, err := filepath.Rel(c.workdir, src)
	if err != nil || strings.HasPrefix(rel, "..") {
		return
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	for at := 1; at < len(parts); at++ {
		level := filepath.Join(parts[:at]...)
		child := parts[at]
		entries, err := os.ReadDir(filepath.Join(c.workdir, level))
		if err != nil {
			c.log.Warn("listing directory for omit synthesis", "dir", level, "error", err)
			continue
		}
		for _, entry := range entries {
			if entry.Name() == child {
				continue
			}
			pattern := "*/" + filepath.ToSlash(level) + "/" + entry.Name()
			if entry.IsDir() {
				pattern += "/*"
			} else if !hasSourceSuffix(entry.Name()) {
				continue
			}
			omit[pattern] = struct{}{}
		}
	}
}

func hasSourceSuffix(name string) bool {
	for _, suffix := range sourceSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
