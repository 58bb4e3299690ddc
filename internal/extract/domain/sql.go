package domain

import "github.com/termfx/grafema/internal/graph"

// classifySQLQuery matches any receiver.query(...) call (spec.md §4.5's
// "SQL via .query(...)"): pg's Pool/Client, Go's database/sql, and most
// query-builder wrappers all expose the method under this same name.
func classifySQLQuery(callee, firstArg string) (Classification, bool) {
	_, method, ok := splitMemberCall(callee)
	if !ok || method != "query" {
		return Classification{}, false
	}
	fields := map[string]any{}
	if firstArg != "" {
		fields["sql"] = firstArg
	}
	return Classification{Type: graph.TypeDBQuery, Fields: fields}, true
}
