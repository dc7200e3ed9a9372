package output

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Rule is the separator line framing the summary banner.
var Rule = strings.Repeat("=", 50)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text. Styling is only applied when w is a
// color-capable terminal.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "%s: %d logs in %d task/system combinations, %d files\n",
		report.UserID,
		report.Summary.TotalLogs,
		report.Summary.Groups,
		report.Summary.FilesCreated)
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	r := lipgloss.NewRenderer(w)
	heading := r.NewStyle().Bold(true)
	section := r.NewStyle().Underline(true)

	var b strings.Builder

	fmt.Fprintf(&b, "\n%s\n", Rule)
	fmt.Fprintln(&b, heading.Render("Summary for user "+report.UserID))
	fmt.Fprintln(&b, Rule)
	fmt.Fprintf(&b, "Total logs: %d\n", report.Summary.TotalLogs)
	fmt.Fprintf(&b, "Unique task/system combinations: %d\n", report.Summary.Groups)
	if report.HasFallbacks() {
		fmt.Fprintf(&b, "Unparsed event_data: %d\n", report.Summary.Fallbacks)
	}

	fmt.Fprintf(&b, "\n%s\n", section.Render("Logs per task:"))
	for _, t := range report.Tasks {
		fmt.Fprintf(&b, "  %s: %d logs\n", t.Task, t.Logs)
	}

	fmt.Fprintf(&b, "\n%s\n", section.Render("Event types:"))
	for _, e := range report.EventTypes {
		fmt.Fprintf(&b, "  %s: %d\n", e.Message, e.Count)
	}

	if f.opts.Verbose {
		fmt.Fprintln(&b)
		if report.Metadata.RunID != "" {
			fmt.Fprintf(&b, "Run: %s\n", report.Metadata.RunID)
		}
		fmt.Fprintf(&b, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	_, err := io.WriteString(w, b.String())
	return err
}
