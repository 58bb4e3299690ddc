package domain

import (
	"strings"

	"github.com/termfx/grafema/internal/graph"
)

var reactHooks = map[string]bool{
	"useState": true, "useEffect": true, "useLayoutEffect": true,
	"useContext": true, "useMemo": true, "useCallback": true,
	"useReducer": true, "useRef": true, "useImperativeHandle": true,
}

// classifyReactHook matches a bare call to one of React's built-in hooks
// (spec.md §4.5). useState/useReducer mint a react:state node (the hook
// call is the state's sole declaration site); the two effect hooks mint
// react:effect; every other hook falls back to the generic react:hook kind.
func classifyReactHook(callee, _ string) (Classification, bool) {
	if !reactHooks[callee] {
		return Classification{}, false
	}
	fields := map[string]any{"hook": callee}

	switch callee {
	case "useState", "useReducer":
		return Classification{Type: graph.TypeReactState, Fields: fields}, true
	case "useEffect", "useLayoutEffect":
		return Classification{Type: graph.TypeReactEffect, Fields: fields}, true
	default:
		return Classification{Type: graph.TypeReactHook, Fields: fields}, true
	}
}

// IsComponentName reports whether name follows React's component-naming
// convention (PascalCase), the de facto signal every JSX-aware tool (ESLint
// react/jsx-uses-react and similar) uses since the grammar itself doesn't
// distinguish a component function from any other.
func IsComponentName(name string) bool {
	return len(name) > 0 && name[0] >= 'A' && name[0] <= 'Z'
}

// IsReactFile reports whether path's extension carries JSX syntax, the
// only files classifyReactHook's sibling component detection applies to.
func IsReactFile(path string) bool {
	return strings.HasSuffix(path, ".jsx") || strings.HasSuffix(path, ".tsx")
}
