package pragma

import (
	"regexp"
	"strings"
	"testing"
)

func TestAll(t *testing.T) {
	tags := All()
	if len(tags) != 9 {
		t.Fatalf("expected 9 tags, got %d: %v", len(tags), tags)
	}
	want := []string{"nt", "posix", "cygwin", "darwin", "linux", "msys", "win32", "cpython", "pypy"}
	for i, tag := range want {
		if tags[i] != tag {
			t.Errorf("tags[%d] = %q, want %q", i, tags[i], tag)
		}
	}
}

func TestIdentityMerge(t *testing.T) {
	base := Identity{OSName: "posix", Platform: "linux", Implementation: "cpython"}

	merged := Identity{Platform: "darwin"}.Merge(base)
	if merged.OSName != "posix" || merged.Platform != "darwin" || merged.Implementation != "cpython" {
		t.Errorf("Merge filled wrong fields: %+v", merged)
	}

	merged = Identity{}.Merge(base)
	if merged != base {
		t.Errorf("empty identity should merge to base, got %+v", merged)
	}
}

func TestDetect(t *testing.T) {
	id := Detect()
	if id.OSName == "" || id.Platform == "" || id.Implementation == "" {
		t.Fatalf("Detect returned incomplete identity: %+v", id)
	}
}

// Every identity selects exactly six foreign tags to always-exclude
// and three matching tags whose "no cover" pragma is honored.
func TestPlatImpl(t *testing.T) {
	tests := []struct {
		name string
		id   Identity
	}{
		{"linux", Identity{OSName: "posix", Platform: "linux", Implementation: "cpython"}},
		{"windows", Identity{OSName: "nt", Platform: "win32", Implementation: "cpython"}},
		{"pypy-darwin", Identity{OSName: "posix", Platform: "darwin", Implementation: "pypy"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patterns := PlatImpl(tt.id)
			if len(patterns) != 9 {
				t.Fatalf("expected 9 patterns, got %d: %v", len(patterns), patterns)
			}

			var cover, noCover int
			for _, p := range patterns {
				switch {
				case strings.HasSuffix(p, ` no cover\b`):
					noCover++
				case strings.HasSuffix(p, ` cover\b`):
					cover++
				default:
					t.Errorf("unexpected pattern shape: %q", p)
				}
			}
			if cover != 6 || noCover != 3 {
				t.Errorf("got %d cover / %d no cover patterns, want 6 / 3", cover, noCover)
			}
		})
	}
}

func TestPlatImplMatching(t *testing.T) {
	linux := Identity{OSName: "posix", Platform: "linux", Implementation: "cpython"}
	patterns := PlatImpl(linux)

	tests := []struct {
		line    string
		matched bool
	}{
		{"import msvcrt  # pragma: win32 cover", true},
		{"import fcntl  # pragma: win32 no cover", false},
		{"x = 1  # pragma: linux cover", false},
		{"x = 1  # pragma: linux no cover", true},
		{"x = 1  # pragma: posix no cover", true},
		{"x = 1  # pragma: cpython no cover", true},
		{"x = 1  # pragma: pypy cover", true},
		{"x = 1  # pragma: nt cover", true},
		{"x = 1  # pragma: win32 coverage", false},
	}

	for _, tt := range tests {
		got := false
		for _, p := range patterns {
			if regexp.MustCompile(p).MatchString(tt.line) {
				got = true
				break
			}
		}
		if got != tt.matched {
			t.Errorf("line %q: matched = %v, want %v", tt.line, got, tt.matched)
		}
	}
}
