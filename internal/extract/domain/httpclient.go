package domain

import (
	"strings"

	"github.com/termfx/grafema/internal/graph"
)

var axiosVerbs = map[string]bool{
	"get": true, "post": true, "put": true, "delete": true, "patch": true, "head": true,
}

// classifyHTTPRequest matches the two outbound HTTP client shapes spec.md
// §4.5 names: bare fetch(...) and axios's callable-or-verb-method API
// (axios(...), axios.get(...), ...).
func classifyHTTPRequest(callee, firstArg string) (Classification, bool) {
	fields := map[string]any{}
	if firstArg != "" {
		fields["url"] = firstArg
	}

	if callee == "fetch" {
		fields["method"] = "GET"
		return Classification{Type: graph.TypeHTTPRequest, Fields: fields}, true
	}

	if callee == "axios" {
		fields["method"] = "GET"
		return Classification{Type: graph.TypeHTTPRequest, Fields: fields}, true
	}

	receiver, verb, ok := splitMemberCall(callee)
	if ok && receiver == "axios" && axiosVerbs[verb] {
		fields["method"] = strings.ToUpper(verb)
		return Classification{Type: graph.TypeHTTPRequest, Fields: fields}, true
	}

	return Classification{}, false
}
