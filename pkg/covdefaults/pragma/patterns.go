package pragma

import "strings"

// baseExclude are the line-exclusion patterns applied regardless of
// environment: a strict no-cover pragma, defensive-code markers,
// typing-only constructs, and the script entry-point guard.
var baseExclude = []string{
	// a more strict default pragma
	`# pragma: no cover\b`,
	// defensive code
	`^\s*raise AssertionError\b`,
	`^\s*raise NotImplementedError\b`,
	`^\s*return NotImplemented\b`,
	`^\s*raise$`,
	// typing-only code
	`^if (False|TYPE_CHECKING):`,
	`: \.\.\.(\s*#.*)?$`,
	`^ +\.\.\.$`,
	`-> ['"]?NoReturn['"]?:`,
	// non-runnable code
	`^if __name__ == ['"]__main__['"]:$`,
}

// ExcludeLines returns the full default exclusion set for the given
// identity and interpreter version: the baseline table plus the
// generated platform/implementation and version pragmas.
func ExcludeLines(id Identity, v Version) []string {
	out := make([]string, 0, len(baseExclude)+len(All())+6)
	out = append(out, baseExclude...)
	out = append(out, PlatImpl(id)...)
	out = append(out, VersionPragmas(v)...)
	return out
}

// PartialBranches returns the default partial-branch patterns: the
// no-branch pragma plus patterns matching any version or
// platform/implementation pragma, so tag-guarded branches are never
// reported as partially covered.
func PartialBranches() []string {
	return []string{
		`# pragma: no branch\b`,
		`# pragma: (>=?|<=?|==|!=)\d+\.\d+ cover\b`,
		`# pragma: (` + strings.Join(All(), "|") + `) (no )?cover\b`,
	}
}

// HostDefaultExclude is the exclusion list the host ships on its own.
// The configurer removes these after merging; the stricter
// word-anchored pragma in baseExclude supersedes them.
var HostDefaultExclude = []string{
	`#\s*(pragma|PRAGMA)[:\s]?\s*(no|NO)\s*(cover|COVER)`,
}
