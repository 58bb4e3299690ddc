package orchestrate

import (
	"context"
	"fmt"

	"github.com/termfx/grafema/internal/graph"
	"github.com/termfx/grafema/internal/ident"
	"github.com/termfx/grafema/internal/store"
)

// resolveUnresolvedCalls is the ENRICHMENT phase's call-target resolution
// pass (spec.md §4.6). It runs sequentially after every worker's
// ANALYSIS writes are visible, builds a name→declaration index over the
// whole graph, and links each CALL node to the FUNCTION/METHOD it
// targets. A callee with no matching declaration anywhere in the graph
// is linked to a synthetic UNKNOWN_CALL_TARGET node via an
// UNRESOLVED_CALL edge instead, so downstream guarantees can still
// query "what calls are unresolved" without a nil-edge special case.
func resolveUnresolvedCalls(ctx context.Context, st store.Store) error {
	decls, err := declIndex(ctx, st)
	if err != nil {
		return fmt.Errorf("enrichment: build declaration index: %w", err)
	}

	stream, err := st.QueryNodes(ctx, store.Filter{Types: []graph.Type{graph.TypeCall}})
	if err != nil {
		return fmt.Errorf("enrichment: query calls: %w", err)
	}
	defer stream.Close()

	unknownTargets := make(map[string]bool)

	for {
		n, ok, err := stream.Next(ctx)
		if err != nil {
			return fmt.Errorf("enrichment: stream calls: %w", err)
		}
		if !ok {
			break
		}

		callee, _ := n.Fields["callee"].(string)
		if callee == "" || callee == "<computed>" {
			continue
		}

		targets, found := decls[callee]
		if found && len(targets) > 0 {
			for _, targetID := range targets {
				edge, err := graph.CreateEdge(n.ID, targetID, graph.EdgeCalls, nil)
				if err != nil {
					continue
				}
				if err := st.AddEdge(ctx, edge); err != nil {
					return err
				}
			}
			continue
		}

		unknownID := ident.ExternalModule(callee)
		if !unknownTargets[unknownID] {
			target, err := graph.New(unknownID, graph.TypeUnknownCallTarget, callee, "", 0, 0, nil)
			if err == nil {
				if err := st.AddNode(ctx, target); err != nil {
					return err
				}
			}
			unknownTargets[unknownID] = true
		}
		edge, err := graph.CreateEdge(n.ID, unknownID, graph.EdgeUnresolvedCall, nil)
		if err != nil {
			continue
		}
		if err := st.AddEdge(ctx, edge); err != nil {
			return err
		}
	}

	return nil
}

// resolveAssignments is the ENRICHMENT phase's data-flow linking pass. It
// runs after resolveUnresolvedCalls, builds a name→declaration index over
// every VARIABLE_DECLARATION and PARAMETER in the graph, and links each
// declaration carrying a pending "assignsFromName" marker (set by an
// extractor's AssignmentSource hook) to the declaration it was
// initialized from via an ASSIGNED_FROM edge. Declarations with no matching
// source anywhere in the graph (e.g. assigned from a call result or a
// literal) are left unmarked; query.TraceAlias simply stops there.
func resolveAssignments(ctx context.Context, st store.Store) error {
	index, err := variableIndex(ctx, st)
	if err != nil {
		return fmt.Errorf("enrichment: build variable index: %w", err)
	}

	stream, err := st.QueryNodes(ctx, store.Filter{Types: []graph.Type{graph.TypeVariableDeclaration}})
	if err != nil {
		return fmt.Errorf("enrichment: query variable declarations: %w", err)
	}
	defer stream.Close()

	for {
		n, ok, err := stream.Next(ctx)
		if err != nil {
			return fmt.Errorf("enrichment: stream variable declarations: %w", err)
		}
		if !ok {
			break
		}

		source, _ := n.Metadata["assignsFromName"].(string)
		if source == "" {
			continue
		}

		targets, found := index[source]
		if !found || len(targets) == 0 {
			continue
		}

		targetID := targets[0]
		for _, candidate := range targets {
			if candidate.file == n.File && candidate.id != n.ID {
				targetID = candidate.id
				break
			}
		}
		if targetID == n.ID {
			continue
		}

		edge, err := graph.CreateEdge(n.ID, targetID, graph.EdgeAssignedFrom, nil)
		if err != nil {
			continue
		}
		if err := st.AddEdge(ctx, edge); err != nil {
			return err
		}
	}

	return nil
}

// resolvePassedArguments is the ENRICHMENT phase's call-argument linking
// pass. It runs after resolveAssignments, builds a name→declaration index
// over every VARIABLE_DECLARATION and PARAMETER in the graph, and links
// each CALL node carrying a pending "argumentNames" marker (set by an
// extractor's CallArguments hook) to the declaration each positional,
// identifier-shaped argument refers to, via an indexed PASSES_ARGUMENT
// edge (spec.md §4.5). Arguments that aren't bare identifiers, or that
// resolve to no declaration anywhere in the graph, are skipped — the
// index they'd occupy is simply absent from the edge set.
func resolvePassedArguments(ctx context.Context, st store.Store) error {
	index, err := variableIndex(ctx, st)
	if err != nil {
		return fmt.Errorf("enrichment: build variable index: %w", err)
	}

	stream, err := st.QueryNodes(ctx, store.Filter{Types: []graph.Type{graph.TypeCall}})
	if err != nil {
		return fmt.Errorf("enrichment: query calls: %w", err)
	}
	defer stream.Close()

	for {
		n, ok, err := stream.Next(ctx)
		if err != nil {
			return fmt.Errorf("enrichment: stream calls: %w", err)
		}
		if !ok {
			break
		}

		names := stringSlice(n.Metadata["argumentNames"])
		if len(names) == 0 {
			continue
		}

		for pos, name := range names {
			if name == "" {
				continue
			}
			targets, found := index[name]
			if !found || len(targets) == 0 {
				continue
			}
			targetID := targets[0]
			for _, candidate := range targets {
				if candidate.file == n.File {
					targetID = candidate.id
					break
				}
			}
			edge, err := graph.CreateIndexedEdge(n.ID, targetID, graph.EdgePassesArgument, pos, nil)
			if err != nil {
				continue
			}
			if err := st.AddEdge(ctx, edge); err != nil {
				return err
			}
		}
	}

	return nil
}

// resolveClassHeritage is the ENRICHMENT phase's class-relationship
// linking pass. It builds a name→CLASS index over the whole graph and
// links each CLASS node carrying a pending "extendsName"/"implementsNames"
// marker (set by base.extractClass from an extractor's ClassHeritage
// hook) to the superclass/interfaces it names, via EXTENDS/IMPLEMENTS
// edges. Names with no matching CLASS anywhere in the graph (e.g. a
// builtin or a type from an unparsed dependency) are left unmarked.
func resolveClassHeritage(ctx context.Context, st store.Store) error {
	index, err := classIndex(ctx, st)
	if err != nil {
		return fmt.Errorf("enrichment: build class index: %w", err)
	}

	stream, err := st.QueryNodes(ctx, store.Filter{Types: []graph.Type{graph.TypeClass}})
	if err != nil {
		return fmt.Errorf("enrichment: query classes: %w", err)
	}
	defer stream.Close()

	for {
		n, ok, err := stream.Next(ctx)
		if err != nil {
			return fmt.Errorf("enrichment: stream classes: %w", err)
		}
		if !ok {
			break
		}

		if super, _ := n.Metadata["extendsName"].(string); super != "" {
			if targetID, found := index[super]; found && targetID != n.ID {
				edge, err := graph.CreateEdge(n.ID, targetID, graph.EdgeExtends, nil)
				if err == nil {
					if err := st.AddEdge(ctx, edge); err != nil {
						return err
					}
				}
			}
		}

		for _, iface := range stringSlice(n.Metadata["implementsNames"]) {
			if iface == "" {
				continue
			}
			targetID, found := index[iface]
			if !found || targetID == n.ID {
				continue
			}
			edge, err := graph.CreateEdge(n.ID, targetID, graph.EdgeImplements, nil)
			if err != nil {
				continue
			}
			if err := st.AddEdge(ctx, edge); err != nil {
				return err
			}
		}
	}

	return nil
}

// classIndex maps a CLASS node's simple name to its node ID. Later
// declarations in the scan order win on a name collision: only one ID is
// kept per name, unlike variableIndex/declIndex, which keep every
// declaration of a name.
func classIndex(ctx context.Context, st store.Store) (map[string]string, error) {
	index := make(map[string]string)

	stream, err := st.QueryNodes(ctx, store.Filter{Types: []graph.Type{graph.TypeClass}})
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	for {
		n, ok, err := stream.Next(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		index[n.Name] = n.ID
	}

	return index, nil
}

// stringSlice coerces a Metadata value holding either a native []string
// (MemoryStore, which keeps Go values as-is) or a []interface{} of
// strings (gormstore, whose Metadata round-trips through JSON) into a
// plain []string. Any other shape yields nil.
func stringSlice(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []interface{}:
		out := make([]string, 0, len(vv))
		for _, e := range vv {
			s, _ := e.(string)
			out = append(out, s)
		}
		return out
	default:
		return nil
	}
}

type declRef struct {
	id   string
	file string
}

// variableIndex maps a VARIABLE_DECLARATION/PARAMETER's simple name to
// every node declaring it, so resolveAssignments can prefer a same-file
// candidate when a name is declared more than once across the graph.
func variableIndex(ctx context.Context, st store.Store) (map[string][]declRef, error) {
	index := make(map[string][]declRef)

	for _, typ := range []graph.Type{graph.TypeVariableDeclaration, graph.TypeParameter} {
		stream, err := st.QueryNodes(ctx, store.Filter{Types: []graph.Type{typ}})
		if err != nil {
			return nil, err
		}
		for {
			n, ok, err := stream.Next(ctx)
			if err != nil {
				stream.Close()
				return nil, err
			}
			if !ok {
				break
			}
			index[n.Name] = append(index[n.Name], declRef{id: n.ID, file: n.File})
		}
		stream.Close()
	}

	return index, nil
}

// declIndex maps a FUNCTION/METHOD's simple name to every node ID
// declaring it, so member calls like obj.method resolve against any
// method named "method" regardless of receiver (a static, name-only
// resolution — spec.md §4.7's findCalls narrows further by className).
func declIndex(ctx context.Context, st store.Store) (map[string][]string, error) {
	index := make(map[string][]string)

	for _, typ := range []graph.Type{graph.TypeFunction, graph.TypeMethod} {
		stream, err := st.QueryNodes(ctx, store.Filter{Types: []graph.Type{typ}})
		if err != nil {
			return nil, err
		}
		for {
			n, ok, err := stream.Next(ctx)
			if err != nil {
				stream.Close()
				return nil, err
			}
			if !ok {
				break
			}
			index[n.Name] = append(index[n.Name], n.ID)
		}
		stream.Close()
	}

	return index, nil
}
