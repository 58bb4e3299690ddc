// Package orchestrate runs the five-phase analysis pipeline (spec.md
// §4.6): DISCOVERY, INDEXING, ANALYSIS, ENRICHMENT, VALIDATION. Each
// phase drains a bounded ants worker pool against a phase barrier before
// the next phase may observe its writes.
package orchestrate

// Phase identifies one stage of the state machine. String-valued so it
// reads directly into diagnostics.Diagnostic.Phase and obslog fields.
type Phase string

const (
	PhaseDiscovery  Phase = "DISCOVERY"
	PhaseIndexing   Phase = "INDEXING"
	PhaseAnalysis   Phase = "ANALYSIS"
	PhaseEnrichment Phase = "ENRICHMENT"
	PhaseValidation Phase = "VALIDATION"
)

// phaseOrder fixes the five-phase sequence the orchestrator advances
// through; there is no branching or skipping.
var phaseOrder = []Phase{
	PhaseDiscovery,
	PhaseIndexing,
	PhaseAnalysis,
	PhaseEnrichment,
	PhaseValidation,
}
