package output

import (
	"bytes"
)

// PatternsFormatter formats output as one omit pattern per line.
// It produces a simple list suitable for piping to other tools.
type PatternsFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *PatternsFormatter) Format(w *bytes.Buffer, r *Result) error {
	for _, pattern := range r.Omit {
		w.WriteString(pattern)
		w.WriteByte('\n')
	}
	return nil
}

func init() {
	Register("patterns", func() Formatter {
		return &PatternsFormatter{}
	})
}

// Ensure PatternsFormatter implements Formatter.
var _ Formatter = (*PatternsFormatter)(nil)
