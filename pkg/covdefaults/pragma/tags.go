// Package pragma generates the line-exclusion regexes the configurer
// merges into the host's settings: the baseline defensive/typing
// patterns, platform- and implementation-specific pragmas, and
// version-comparison pragmas.
//
// All generation is a pure function of explicit identity and version
// inputs so the tables are deterministic and testable by injection;
// nothing here reads ambient state except the Detect helpers.
package pragma

import "runtime"

// Recognized tag families, in table order. Nine tags total: two
// os-family, five platform, two runtime implementation.
var (
	osNames         = []string{"nt", "posix"}
	platforms       = []string{"cygwin", "darwin", "linux", "msys", "win32"}
	implementations = []string{"cpython", "pypy"}
)

// All returns the nine recognized tags in table order.
func All() []string {
	out := make([]string, 0, len(osNames)+len(platforms)+len(implementations))
	out = append(out, osNames...)
	out = append(out, platforms...)
	out = append(out, implementations...)
	return out
}

// Identity is the environment triple pragma generation is evaluated
// against: os family, platform identifier, and runtime implementation
// name of the interpreter being measured.
type Identity struct {
	OSName         string
	Platform       string
	Implementation string
}

// Detect returns a default identity mapped from the running operating
// system. The measured interpreter may differ; callers override any
// field explicitly.
func Detect() Identity {
	switch runtime.GOOS {
	case "windows":
		return Identity{OSName: "nt", Platform: "win32", Implementation: "cpython"}
	case "darwin":
		return Identity{OSName: "posix", Platform: "darwin", Implementation: "cpython"}
	default:
		return Identity{OSName: "posix", Platform: "linux", Implementation: "cpython"}
	}
}

// Merge fills zero fields of id from other.
func (id Identity) Merge(other Identity) Identity {
	if id.OSName == "" {
		id.OSName = other.OSName
	}
	if id.Platform == "" {
		id.Platform = other.Platform
	}
	if id.Implementation == "" {
		id.Implementation = other.Implementation
	}
	return id
}

// contains reports whether tag is one of the identity's three tags.
func (id Identity) contains(tag string) bool {
	return tag == id.OSName || tag == id.Platform || tag == id.Implementation
}

// PlatImpl returns the platform/implementation pragma patterns for
// id: a "cover" pattern for each of the six foreign tags followed by
// a "no cover" pattern for each of the three matching tags. A
// "cover" pragma marks a line as only reachable under its tag, so it
// is excluded everywhere else; a "no cover" pragma is excluded
// exactly where its tag matches.
func PlatImpl(id Identity) []string {
	all := All()
	out := make([]string, 0, len(all))
	for _, tag := range all {
		if !id.contains(tag) {
			out = append(out, `# pragma: `+tag+` cover\b`)
		}
	}
	for _, tag := range all {
		if id.contains(tag) {
			out = append(out, `# pragma: `+tag+` no cover\b`)
		}
	}
	return out
}
