package pragma

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Version is the interpreter line that version pragmas are evaluated
// against.
type Version struct {
	Major int
	Minor int
}

// DefaultVersion is assumed when no interpreter version is configured.
var DefaultVersion = Version{Major: 3, Minor: 12}

// ErrInvalidVersion is returned when a version string cannot be parsed.
var ErrInvalidVersion = errors.New("invalid version")

// ParseVersion parses a "major.minor" string such as "3.12".
func ParseVersion(s string) (Version, error) {
	major, minor, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	maj, err := strconv.Atoi(major)
	if err != nil || maj < 0 {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	min, err := strconv.Atoi(minor)
	if err != nil || min < 0 {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	return Version{Major: maj, Minor: min}, nil
}

// IsZero reports whether v carries no version at all.
func (v Version) IsZero() bool {
	return v.Major == 0 && v.Minor == 0
}

// String returns the "major.minor" form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// VersionPragmas returns one pattern per comparator, each matching
// exactly the version pragmas (`# pragma: <op><X>.<Y> cover`) whose
// comparison against v is false: code guarded by such a pragma cannot
// run under v, so the host excludes it from coverage accounting.
//
// The patterns avoid lookaround so they compile under both RE2 and
// the host's backtracking engine.
func VersionPragmas(v Version) []string {
	out := make([]string, 0, 6)
	add := func(op, ver string) {
		if ver != "" {
			out = append(out, fmt.Sprintf(`# pragma: %s%s cover\b`, op, ver))
		}
	}
	// `<X.Y` is false when X.Y <= current.
	add("<", verArms(reBelow(v.Major), v.Major, reBelow(v.Minor+1)))
	// `<=X.Y` is false when X.Y < current.
	add("<=", verArms(reBelow(v.Major), v.Major, reBelow(v.Minor)))
	// `>X.Y` is false when X.Y >= current.
	add(">", verArms(reAbove(v.Major), v.Major, reAbove(v.Minor-1)))
	// `>=X.Y` is false when X.Y > current.
	add(">=", verArms(reAbove(v.Major), v.Major, reAbove(v.Minor)))
	// `==X.Y` is false when X.Y != current.
	add("==", verArms(reOther(v.Major), v.Major, reOther(v.Minor)))
	// `!=X.Y` is false when X.Y == current.
	add("!=", fmt.Sprintf(`%d\.%d`, v.Major, v.Minor))
	return out
}

// verArms assembles a two-component version regex out of a regex for
// "major in range" (any minor) and a regex for "minor in range" under
// the current major. Either arm may be empty when its range is.
func verArms(majorArm string, major int, minorArm string) string {
	var parts []string
	if majorArm != "" {
		parts = append(parts, majorArm+`\.\d+`)
	}
	if minorArm != "" {
		parts = append(parts, fmt.Sprintf(`%d\.%s`, major, minorArm))
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return "(" + strings.Join(parts, "|") + ")"
	}
}

// reBelow returns a regex matching decimal integers in [0, n), or ""
// when the range is empty. Values above 99 do not occur in version
// pragmas.
func reBelow(n int) string {
	switch {
	case n <= 0:
		return ""
	case n == 1:
		return "0"
	case n <= 10:
		return fmt.Sprintf("[0-%d]", n-1)
	}
	tens, ones := n/10, n%10
	parts := []string{`\d`}
	if tens > 1 {
		parts = append(parts, fmt.Sprintf(`[1-%d]\d`, tens-1))
	}
	switch {
	case ones == 1:
		parts = append(parts, fmt.Sprintf("%d0", tens))
	case ones > 1:
		parts = append(parts, fmt.Sprintf("%d[0-%d]", tens, ones-1))
	}
	return "(" + strings.Join(parts, "|") + ")"
}

// reAbove returns a regex matching decimal integers in (n, inf).
func reAbove(n int) string {
	switch {
	case n < 0:
		return `\d+`
	case n < 9:
		return fmt.Sprintf(`([%d-9]|\d{2,})`, n+1)
	case n == 9:
		return `\d{2,}`
	}
	tens, ones := n/10, n%10
	parts := []string{`\d{3,}`}
	if tens < 9 {
		parts = append(parts, fmt.Sprintf(`[%d-9]\d`, tens+1))
	}
	switch {
	case ones == 8:
		parts = append(parts, fmt.Sprintf("%d9", tens))
	case ones < 8:
		parts = append(parts, fmt.Sprintf("%d[%d-9]", tens, ones+1))
	}
	return "(" + strings.Join(parts, "|") + ")"
}

// reOther returns a regex matching any decimal integer except n.
func reOther(n int) string {
	below, above := reBelow(n), reAbove(n)
	switch {
	case below == "":
		return above
	case above == "":
		return below
	default:
		return "(" + below + "|" + above + ")"
	}
}
