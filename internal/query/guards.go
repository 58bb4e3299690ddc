package query

import (
	"context"

	"github.com/termfx/grafema/internal/graph"
)

// Guard is one conditional SCOPE ancestor of a node, walked outward from
// innermost to outermost (spec.md §4.7 "walks parent SCOPE chain").
type Guard struct {
	Scope     graph.Node
	ScopeType string
	Condition string
}

// conditionalScopeTypes are the SCOPE sub-kinds findGuards treats as
// guards: if/else, for/while loop bodies, and try/catch. Function/method
// bodies and any other scope kind are not reported as guards.
var conditionalScopeTypes = map[string]bool{
	string(graph.ScopeIf):    true,
	string(graph.ScopeElse):  true,
	string(graph.ScopeFor):   true,
	string(graph.ScopeWhile): true,
	string(graph.ScopeTry):   true,
	string(graph.ScopeCatch): true,
}

// FindGuards walks nodeId's CONTAINS ancestry, returning every
// conditional SCOPE it passes through. Condition text is sourced from
// the scope's Metadata["condition"], which the extractor fills from the
// construct's "condition" field when it has one; an empty Condition means
// no condition source was captured (e.g. else/try/catch), not
// "unconditional".
func (s *Service) FindGuards(ctx context.Context, nodeID string) ([]Guard, error) {
	var guards []Guard
	current := nodeID
	visited := map[string]bool{}

	for {
		if visited[current] {
			break // defend against a malformed CONTAINS cycle
		}
		visited[current] = true

		parents, err := s.st.GetIncomingEdges(ctx, current, []graph.EdgeType{graph.EdgeContains})
		if err != nil {
			return nil, err
		}
		if len(parents) == 0 {
			break
		}
		parentID := parents[0].From

		parent, found, err := s.st.GetNode(ctx, parentID)
		if err != nil {
			return nil, err
		}
		if !found {
			break
		}

		if parent.Type == graph.TypeScope {
			scopeType, _ := parent.Fields["scopeType"].(string)
			if conditionalScopeTypes[scopeType] {
				condition, _ := parent.Metadata["condition"].(string)
				guards = append(guards, Guard{Scope: parent, ScopeType: scopeType, Condition: condition})
			}
		}
		current = parentID
	}
	return guards, nil
}
