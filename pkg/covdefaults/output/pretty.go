package output

import (
	"bytes"
	"fmt"
	"strings"
)

// PrettyFormatter formats output with colors and styling using
// lipgloss. It produces a visually appealing report suitable for
// terminal display.
type PrettyFormatter struct{}

// Format writes the formatted output to the buffer.
func (f *PrettyFormatter) Format(w *bytes.Buffer, r *Result) error {
	w.WriteString(f.formatHeader(r))
	w.WriteString("\n")
	w.WriteString(f.formatChanges(r))
	w.WriteString(f.formatFooter(r))
	w.WriteString("\n")
	return nil
}

// formatHeader builds the header box naming the configured file.
func (f *PrettyFormatter) formatHeader(r *Result) string {
	var lines []string

	target := r.ConfigPath
	if target == "" {
		target = "(preview)"
	}
	configLabel := LabelStyle.Render("Config:")
	configValue := ValueStyle.Render(target)
	lines = append(lines, fmt.Sprintf("%s %s", configLabel, configValue))

	if len(r.Source) > 0 {
		sourceLabel := LabelStyle.Render("Source:")
		sourceValue := ValueStyle.Render(strings.Join(r.Source, ", "))
		lines = append(lines, fmt.Sprintf("%s %s", sourceLabel, sourceValue))
	}

	if r.DryRun {
		lines = append(lines, KeptStyle.Bold(true).Render("Dry run: nothing written"))
	}

	return HeaderBox.Render(strings.Join(lines, "\n"))
}

// formatChanges renders the per-option change list.
func (f *PrettyFormatter) formatChanges(r *Result) string {
	if len(r.Changes) == 0 {
		return MutedStyle.Render("nothing to change") + "\n"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Applied defaults"))
	b.WriteString("\n")
	for _, ch := range r.Changes {
		key := ValueStyle.Render(ch.Key)
		if ch.Old == nil {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				AddedStyle.Render("+"), key, MutedStyle.Render(summarize(ch.New))))
		} else {
			b.WriteString(fmt.Sprintf("  %s %s %s %s %s\n",
				KeptStyle.Render("~"), key,
				MutedStyle.Render(summarize(ch.Old)),
				MutedStyle.Render("->"),
				MutedStyle.Render(summarize(ch.New))))
		}
	}
	return b.String()
}

// formatFooter builds the summary footer box.
func (f *PrettyFormatter) formatFooter(r *Result) string {
	summary := fmt.Sprintf("%s %d  %s %d  %s %d",
		LabelStyle.Render("omit:"), len(r.Omit),
		LabelStyle.Render("exclude:"), len(r.ExcludeLines),
		LabelStyle.Render("partial:"), len(r.PartialBranches))
	if len(r.Paths) > 0 {
		summary += fmt.Sprintf("  %s %d", LabelStyle.Render("paths:"), len(r.Paths))
	}
	return FooterBox.Render(summary)
}

func init() {
	Register("pretty", func() Formatter {
		return &PrettyFormatter{}
	})
}

// Ensure PrettyFormatter implements Formatter.
var _ Formatter = (*PrettyFormatter)(nil)
