package domain

import (
	"testing"

	"github.com/termfx/grafema/internal/graph"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name     string
		callee   string
		firstArg string
		want     graph.Type
		wantOK   bool
	}{
		{"express get", "app.get", "/users", graph.TypeHTTPRoute, true},
		{"express router post", "router.post", "/login", graph.TypeHTTPRoute, true},
		{"socketio emit", "socket.emit", "message", graph.TypeSocketIOEmit, true},
		{"socketio on", "io.on", "connection", graph.TypeSocketIOOn, true},
		{"socketio room", "socket.to", "room1", graph.TypeSocketIORoom, true},
		{"fetch", "fetch", "/api", graph.TypeHTTPRequest, true},
		{"axios verb", "axios.post", "/api", graph.TypeHTTPRequest, true},
		{"sql query", "db.query", "SELECT 1", graph.TypeDBQuery, true},
		{"react state", "useState", "", graph.TypeReactState, true},
		{"react effect", "useEffect", "", graph.TypeReactEffect, true},
		{"react generic hook", "useMemo", "", graph.TypeReactHook, true},
		{"unrelated call", "doThing", "", "", false},
		{"unrelated member call", "obj.helper", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Classify(tc.callee, tc.firstArg)
			if ok != tc.wantOK {
				t.Fatalf("Classify(%q, %q) ok = %v, want %v", tc.callee, tc.firstArg, ok, tc.wantOK)
			}
			if ok && got.Type != tc.want {
				t.Errorf("Classify(%q, %q) = %q, want %q", tc.callee, tc.firstArg, got.Type, tc.want)
			}
		})
	}
}

func TestIsComponentName(t *testing.T) {
	if !IsComponentName("Widget") {
		t.Error("expected Widget to be a component name")
	}
	if IsComponentName("useState") {
		t.Error("expected useState not to be a component name")
	}
	if IsComponentName("") {
		t.Error("expected empty string not to be a component name")
	}
}

func TestIsReactFile(t *testing.T) {
	if !IsReactFile("widget.jsx") || !IsReactFile("widget.tsx") {
		t.Error("expected .jsx and .tsx to be react files")
	}
	if IsReactFile("widget.js") {
		t.Error("expected .js not to be a react file")
	}
}
