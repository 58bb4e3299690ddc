package diagnostics

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Color helpers following the teacher's demo CLI palette (demo/cmd/main.go):
// one color.SprintFunc per semantic role, reused across every line instead
// of constructing color.New at each call site.
var (
	colorFatal   = color.New(color.FgRed, color.Bold).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
	colorWarning = color.New(color.FgYellow).SprintFunc()
	colorInfo    = color.New(color.FgCyan).SprintFunc()
	colorDim     = color.New(color.FgBlue).SprintFunc()
	colorBold    = color.New(color.Bold).SprintFunc()
)

func colorForSeverity(sev Severity) func(a ...any) string {
	switch sev {
	case SeverityFatal:
		return colorFatal
	case SeverityError:
		return colorError
	case SeverityWarning:
		return colorWarning
	default:
		return colorInfo
	}
}

// WriteText renders diags as human-readable lines, colored by severity.
// Under opts.ShowResolutionChain, each Diagnostic's ResolutionChain is
// rendered as a sequence of unified diffs between consecutive steps
// (internal/diagnostics.DiffChain), the same unified-diff shape the
// teacher's provider layer uses for before/after source (spec.md §4.10
// "optionally shows a resolution chain").
func WriteText(w io.Writer, diags []Diagnostic, opts StrictOptions) error {
	shown, omitted := opts.apply(sortedByPhaseThenFile(diags))

	for _, d := range shown {
		paint := colorForSeverity(d.Severity)
		loc := d.Phase
		if d.Plugin != "" {
			loc += "/" + d.Plugin
		}
		if d.File != "" {
			if d.Line > 0 {
				loc += fmt.Sprintf(" %s:%d", d.File, d.Line)
			} else {
				loc += " " + d.File
			}
		}
		if _, err := fmt.Fprintf(w, "%s %s [%s] %s\n", paint(string(d.Severity)), colorBold(d.Code), loc, d.Message); err != nil {
			return err
		}
		if d.Suggestion != "" {
			if _, err := fmt.Fprintf(w, "  %s %s\n", colorDim("suggestion:"), d.Suggestion); err != nil {
				return err
			}
		}
		if opts.ShowResolutionChain && len(d.ResolutionChain) > 1 {
			diff := DiffChain(d.ResolutionChain)
			if diff != "" {
				if _, err := fmt.Fprintf(w, "%s\n", indent(diff)); err != nil {
					return err
				}
			}
		}
	}

	if omitted > 0 {
		if _, err := fmt.Fprintf(w, "%s\n", colorDim(fmt.Sprintf("... %d more suppressed (rerun with --verbose)", omitted))); err != nil {
			return err
		}
	}
	return nil
}

func indent(s string) string {
	out := "  "
	for _, r := range s {
		out += string(r)
		if r == '\n' {
			out += "  "
		}
	}
	return out
}
