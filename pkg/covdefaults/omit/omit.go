// Package omit matches synthesized omit patterns against file paths.
//
// Omit patterns use the host's fnmatch-style semantics where `*`
// spans path separators: `*/setup.py` matches a setup.py anywhere
// below the measurement root but not one at the root itself. The
// matcher compiles patterns without separator characters so glob
// wildcards behave the same way.
package omit

import (
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"
)

// Matcher matches paths against a compiled set of omit patterns.
type Matcher struct {
	patterns []string
	globs    []glob.Glob
}

// NewMatcher compiles the given omit patterns. Invalid patterns are
// reported with the offending pattern named.
func NewMatcher(patterns []string) (*Matcher, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling omit pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return &Matcher{patterns: patterns, globs: globs}, nil
}

// Match reports whether path matches any omit pattern. Paths are
// normalized to forward slashes before matching.
func (m *Matcher) Match(path string) bool {
	_, ok := m.Pattern(path)
	return ok
}

// Pattern returns the first omit pattern matching path, if any.
func (m *Matcher) Pattern(path string) (string, bool) {
	normalized := filepath.ToSlash(path)
	for i, g := range m.globs {
		if g.Match(normalized) {
			return m.patterns[i], true
		}
	}
	return "", false
}

// Patterns returns the pattern set the matcher was built from.
func (m *Matcher) Patterns() []string {
	return m.patterns
}
