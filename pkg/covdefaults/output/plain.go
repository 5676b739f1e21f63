package output

import (
	"bytes"
	"fmt"
)

// PlainFormatter formats output as unstyled text suitable for logs
// and non-terminal destinations.
type PlainFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *PlainFormatter) Format(w *bytes.Buffer, r *Result) error {
	if r.ConfigPath != "" {
		fmt.Fprintf(w, "config: %s\n", r.ConfigPath)
	}
	if r.DryRun {
		w.WriteString("dry run: no changes written\n")
	}

	if len(r.Changes) > 0 {
		w.WriteString("changes:\n")
		for _, ch := range r.Changes {
			if ch.Old == nil {
				fmt.Fprintf(w, "  %s = %v\n", ch.Key, summarize(ch.New))
			} else {
				fmt.Fprintf(w, "  %s: %v -> %v\n", ch.Key, summarize(ch.Old), summarize(ch.New))
			}
		}
	}

	writeList(w, "source", r.Source)
	writeList(w, "omit", r.Omit)
	writeList(w, "exclude_lines", r.ExcludeLines)
	writeList(w, "partial_branches", r.PartialBranches)

	if len(r.Paths) > 0 {
		w.WriteString("paths:\n")
		for name, paths := range r.Paths {
			fmt.Fprintf(w, "  %s: %v\n", name, paths)
		}
	}
	return nil
}

// writeList writes a named list section, one entry per line.
func writeList(w *bytes.Buffer, name string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", name)
	for _, v := range values {
		fmt.Fprintf(w, "  %s\n", v)
	}
}

// summarize renders a change value compactly; long lists collapse to
// a count so the change log stays readable.
func summarize(v any) string {
	if list, ok := v.([]string); ok && len(list) > 3 {
		return fmt.Sprintf("[%d patterns]", len(list))
	}
	return fmt.Sprintf("%v", v)
}

func init() {
	Register("plain", func() Formatter {
		return &PlainFormatter{}
	})
}

// Ensure PlainFormatter implements Formatter.
var _ Formatter = (*PlainFormatter)(nil)
