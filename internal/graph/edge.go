package graph

import "fmt"

// EdgeType is the closed set of edge kinds from spec.md §3.3. Constants use
// the spec's literal strings verbatim so external Datalog rules and API
// consumers can depend on them directly.
type EdgeType string

const (
	EdgeContains       EdgeType = "CONTAINS"
	EdgeHasScope       EdgeType = "HAS_SCOPE"
	EdgeHasParameter   EdgeType = "HAS_PARAMETER"
	EdgeHasProperty    EdgeType = "HAS_PROPERTY"
	EdgeHasElement     EdgeType = "HAS_ELEMENT"
	EdgeHasCallback    EdgeType = "HAS_CALLBACK"
	EdgeCalls          EdgeType = "CALLS"
	EdgeInvokes        EdgeType = "INVOKES"
	EdgeCalledBy       EdgeType = "CALLED_BY"
	EdgeImports        EdgeType = "IMPORTS"
	EdgeExports        EdgeType = "EXPORTS"
	EdgeDependsOn      EdgeType = "DEPENDS_ON"
	EdgeExtends        EdgeType = "EXTENDS"
	EdgeImplements     EdgeType = "IMPLEMENTS"
	EdgeInstanceOf     EdgeType = "INSTANCE_OF"
	EdgeAssignedFrom   EdgeType = "ASSIGNED_FROM"
	EdgeFlowsInto      EdgeType = "FLOWS_INTO"
	EdgeDerivesFrom    EdgeType = "DERIVES_FROM"
	EdgePassesArgument EdgeType = "PASSES_ARGUMENT"
	EdgeReadsFrom      EdgeType = "READS_FROM"
	EdgeModifies       EdgeType = "MODIFIES"
	EdgeCatchesFrom    EdgeType = "CATCHES_FROM"
	EdgeGoverns        EdgeType = "GOVERNS"
	EdgeAffects        EdgeType = "AFFECTS"
	EdgeIteratesOver   EdgeType = "ITERATES_OVER"
	EdgeGuards         EdgeType = "GUARDS"

	// Extensions beyond spec.md §3.3's closed set ("includes at least"
	// explicitly leaves room for more). Each earns its keep: EdgeDeclares,
	// EdgeReturns, and EdgeThrows give RETURN/THROW/VARIABLE_DECLARATION
	// nodes a more specific parent-edge than bare CONTAINS; and
	// EdgeUnresolvedCall is the sentinel edge to UNKNOWN_CALL_TARGET
	// (spec.md §3.4's "no dangling CALLS endpoint" escape hatch).
	EdgeDeclares       EdgeType = "DECLARES"
	EdgeReturns        EdgeType = "RETURNS"
	EdgeThrows         EdgeType = "THROWS"
	EdgeUnresolvedCall EdgeType = "UNRESOLVED_CALL"
)

// Edge is a directed, typed relation between two node IDs. Index is the
// optional ordinal spec.md §3.3 allows on any edge (used today for
// PASSES_ARGUMENT's "indexed by position" call-argument edges); nil means
// unordered. Unlike nodes, edges carry no per-type required-field table:
// the spec's edge invariants are about endpoint non-emptiness and type
// membership, not payload shape.
type Edge struct {
	From     string         `json:"from"`
	To       string         `json:"to"`
	Type     EdgeType       `json:"type"`
	Index    *int           `json:"index,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

var knownEdgeTypes = map[EdgeType]bool{
	EdgeContains: true, EdgeHasScope: true, EdgeHasParameter: true,
	EdgeHasProperty: true, EdgeHasElement: true, EdgeHasCallback: true,
	EdgeCalls: true, EdgeInvokes: true, EdgeCalledBy: true,
	EdgeImports: true, EdgeExports: true, EdgeDependsOn: true,
	EdgeExtends: true, EdgeImplements: true, EdgeInstanceOf: true,
	EdgeAssignedFrom: true, EdgeFlowsInto: true, EdgeDerivesFrom: true,
	EdgePassesArgument: true, EdgeReadsFrom: true, EdgeModifies: true,
	EdgeCatchesFrom: true, EdgeGoverns: true, EdgeAffects: true,
	EdgeIteratesOver: true, EdgeGuards: true,
	EdgeDeclares: true, EdgeReturns: true, EdgeThrows: true, EdgeUnresolvedCall: true,
}

// CreateEdge is the single constructor path every extractor and query
// mutation goes through, so the "no edge with an empty endpoint" and
// "type must be in the closed set" invariants (spec.md §3.3) are enforced
// in exactly one place rather than at each call site.
func CreateEdge(from, to string, typ EdgeType, metadata map[string]any) (Edge, error) {
	if from == "" || to == "" {
		return Edge{}, fmt.Errorf("graph: edge %s has an empty endpoint (from=%q, to=%q)", typ, from, to)
	}
	if !knownEdgeTypes[typ] {
		return Edge{}, fmt.Errorf("graph: unknown edge type %q", typ)
	}
	return Edge{From: from, To: to, Type: typ, Metadata: metadata}, nil
}

// CreateIndexedEdge is CreateEdge plus an ordinal position, for edge kinds
// spec.md §3.3 marks as positional (PASSES_ARGUMENT for call arguments,
// HAS_ELEMENT for array members).
func CreateIndexedEdge(from, to string, typ EdgeType, index int, metadata map[string]any) (Edge, error) {
	e, err := CreateEdge(from, to, typ, metadata)
	if err != nil {
		return Edge{}, err
	}
	e.Index = &index
	return e, nil
}

// ValidateEdge re-checks an already-constructed Edge, for callers (e.g. the
// store's strict-mode write path) that receive edges from outside this
// package's constructor, such as deserialized storage rows.
func ValidateEdge(e Edge) []string {
	var errs []string
	if e.From == "" {
		errs = append(errs, "from is required")
	}
	if e.To == "" {
		errs = append(errs, "to is required")
	}
	if !knownEdgeTypes[e.Type] {
		errs = append(errs, fmt.Sprintf("unknown edge type %q", e.Type))
	}
	return errs
}
