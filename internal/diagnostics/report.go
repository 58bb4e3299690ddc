package diagnostics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// StrictOptions configures the strict-mode formatter (spec.md §4.10: "a
// strict mode formatter optionally shows a resolution chain and suppresses
// output for counts above a threshold unless verbose").
type StrictOptions struct {
	// Threshold is the maximum number of diagnostics rendered when not
	// Verbose. Zero means unlimited.
	Threshold int
	// Verbose disables the Threshold cutoff.
	Verbose bool
	// ShowResolutionChain renders each Diagnostic's ResolutionChain as a
	// sequence of unified diffs between consecutive steps.
	ShowResolutionChain bool
}

// apply returns the diagnostics to render under opts, plus the number
// suppressed by the threshold (0 if nothing was cut).
func (opts StrictOptions) apply(diags []Diagnostic) (shown []Diagnostic, omitted int) {
	if opts.Verbose || opts.Threshold <= 0 || len(diags) <= opts.Threshold {
		return diags, 0
	}
	return diags[:opts.Threshold], len(diags) - opts.Threshold
}

func sortedByPhaseThenFile(diags []Diagnostic) []Diagnostic {
	out := make([]Diagnostic, len(diags))
	copy(out, diags)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Phase != out[j].Phase {
			return out[i].Phase < out[j].Phase
		}
		return out[i].File < out[j].File
	})
	return out
}

// WriteJSON renders diags as a single JSON array, one object per
// Diagnostic (spec.md §4.10 "Reporter renders text/JSON/CSV").
func WriteJSON(w io.Writer, diags []Diagnostic) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(diags)
}

var csvHeader = []string{
	"code", "severity", "message", "file", "line", "phase", "plugin",
	"timestamp", "suggestion",
}

// WriteCSV renders diags as CSV with a fixed header, one row per
// Diagnostic. ResolutionChain is omitted: it belongs to the text
// reporter's strict-mode diff view, not a flat table.
func WriteCSV(w io.Writer, diags []Diagnostic) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("diagnostics: write csv header: %w", err)
	}
	for _, d := range diags {
		row := []string{
			d.Code,
			string(d.Severity),
			d.Message,
			d.File,
			fmt.Sprintf("%d", d.Line),
			d.Phase,
			d.Plugin,
			fmt.Sprintf("%d", d.Timestamp),
			d.Suggestion,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("diagnostics: write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
