package domain

import (
	"strings"

	"github.com/termfx/grafema/internal/graph"
)

// httpVerbs is express/router's route-registration vocabulary. "use" is
// included since app.use(path, handler) is express's generic middleware
// mount and is commonly used for sub-routers at a fixed path.
var httpVerbs = map[string]bool{
	"get": true, "post": true, "put": true, "delete": true,
	"patch": true, "all": true, "use": true, "options": true,
}

// classifyExpressRoute matches "app.get", "router.post", and similar
// receiver.verb() call shapes from express's routing API (spec.md §4.5).
func classifyExpressRoute(callee, firstArg string) (Classification, bool) {
	receiver, verb, ok := splitMemberCall(callee)
	if !ok || !httpVerbs[verb] {
		return Classification{}, false
	}
	if receiver != "app" && receiver != "router" && !strings.HasSuffix(receiver, "Router") {
		return Classification{}, false
	}
	fields := map[string]any{"method": strings.ToUpper(verb)}
	if firstArg != "" {
		fields["path"] = firstArg
	}
	return Classification{Type: graph.TypeHTTPRoute, Fields: fields}, true
}

// splitMemberCall splits a CalleeName-rendered "obj.method" string into its
// two parts. "<computed>" and bare names (no ".") never split.
func splitMemberCall(callee string) (receiver, method string, ok bool) {
	i := strings.LastIndex(callee, ".")
	if i <= 0 || i == len(callee)-1 {
		return "", "", false
	}
	return callee[:i], callee[i+1:], true
}
