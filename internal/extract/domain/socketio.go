package domain

import "github.com/termfx/grafema/internal/graph"

// classifySocketIO matches socket.io's emit/listen/room API: "socket.emit",
// "io.on", "socket.to"/"io.in" (spec.md §4.5). The event/room name, when the
// call's first argument is a string literal, is attached as "event" so
// downstream queries don't need to re-read the AST.
func classifySocketIO(callee, firstArg string) (Classification, bool) {
	_, method, ok := splitMemberCall(callee)
	if !ok {
		return Classification{}, false
	}

	var typ graph.Type
	switch method {
	case "emit":
		typ = graph.TypeSocketIOEmit
	case "on":
		typ = graph.TypeSocketIOOn
	case "to", "in":
		typ = graph.TypeSocketIORoom
	default:
		return Classification{}, false
	}

	fields := map[string]any{}
	if firstArg != "" {
		fields["event"] = firstArg
	}
	return Classification{Type: typ, Fields: fields}, true
}
