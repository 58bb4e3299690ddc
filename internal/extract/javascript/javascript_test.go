package javascript

import (
	"testing"

	"github.com/termfx/grafema/internal/extract"
	"github.com/termfx/grafema/internal/graph"
	"github.com/termfx/grafema/internal/scope"
)

func TestExtract_FunctionAndCall(t *testing.T) {
	src := []byte(`
function greet(name) {
  return fetch(name);
}
`)
	e := New()
	out := &extract.Collections{}
	tr := scope.New("app.js")
	mod := extract.ModuleInfo{File: "app.js", ModuleID: "app.js->MODULE->app.js", ContentHash: "0001"}

	if err := e.Extract(src, mod, out, tr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sawFunction, sawCall, sawParam, sawReturn bool
	for _, n := range out.Nodes {
		switch n.Type {
		case graph.TypeFunction:
			if n.Name == "greet" {
				sawFunction = true
			}
		case graph.TypeCall:
			if n.Name == "fetch" {
				sawCall = true
			}
		case graph.TypeParameter:
			if n.Name == "name" {
				sawParam = true
			}
		case graph.TypeReturn:
			sawReturn = true
		}
	}
	if !sawFunction {
		t.Error("expected a FUNCTION node named greet")
	}
	if !sawCall {
		t.Error("expected a CALL node named fetch")
	}
	if !sawParam {
		t.Error("expected a PARAMETER node named name")
	}
	if !sawReturn {
		t.Error("expected a RETURN node")
	}
}

func TestExtract_MemberCall(t *testing.T) {
	src := []byte(`
function run() {
  console.log("hi");
}
`)
	e := New()
	out := &extract.Collections{}
	tr := scope.New("app.js")
	mod := extract.ModuleInfo{File: "app.js", ModuleID: "app.js->MODULE->app.js", ContentHash: "0002"}

	if err := e.Extract(src, mod, out, tr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sawMemberCall bool
	for _, n := range out.Nodes {
		if n.Type == graph.TypeCall && n.Name == "console.log" {
			sawMemberCall = true
		}
	}
	if !sawMemberCall {
		t.Error("expected a CALL node named console.log")
	}
}

func TestExtract_ControlFlow(t *testing.T) {
	src := []byte(`
function run() {
  if (true) {
    doThing();
  }
}
`)
	e := New()
	out := &extract.Collections{}
	tr := scope.New("app.js")
	mod := extract.ModuleInfo{File: "app.js", ModuleID: "app.js->MODULE->app.js", ContentHash: "0003"}

	if err := e.Extract(src, mod, out, tr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sawScope, sawBranch bool
	var condition string
	for _, n := range out.Nodes {
		if n.Type == graph.TypeScope {
			sawScope = true
			condition, _ = n.Metadata["condition"].(string)
		}
		if n.Type == graph.TypeBranch {
			sawBranch = true
		}
	}
	if !sawScope || !sawBranch {
		t.Errorf("expected SCOPE and BRANCH nodes, got scope=%v branch=%v", sawScope, sawBranch)
	}
	if condition != "true" {
		t.Errorf("expected scope Metadata[condition] = %q, got %q", "true", condition)
	}
}

func TestExtract_VariableAssignmentSource(t *testing.T) {
	src := []byte(`
function run() {
  const x = y;
}
`)
	e := New()
	out := &extract.Collections{}
	tr := scope.New("app.js")
	mod := extract.ModuleInfo{File: "app.js", ModuleID: "app.js->MODULE->app.js", ContentHash: "0005"}
	if err := e.Extract(src, mod, out, tr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sawAssign bool
	for _, n := range out.Nodes {
		if n.Type == graph.TypeVariableDeclaration && n.Name == "x" {
			src, _ := n.Metadata["assignsFromName"].(string)
			if src != "y" {
				t.Errorf("expected assignsFromName %q, got %q", "y", src)
			}
			sawAssign = true
		}
	}
	if !sawAssign {
		t.Error("expected a VARIABLE_DECLARATION node named x")
	}
}

func TestExtract_ClassHeritage(t *testing.T) {
	src := []byte(`
class Dog extends Animal {
  bark() {
    return true;
  }
}
`)
	e := New()
	out := &extract.Collections{}
	tr := scope.New("app.js")
	mod := extract.ModuleInfo{File: "app.js", ModuleID: "app.js->MODULE->app.js", ContentHash: "0006"}
	if err := e.Extract(src, mod, out, tr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sawClass, sawMethod bool
	var extends string
	for _, n := range out.Nodes {
		if n.Type == graph.TypeClass && n.Name == "Dog" {
			sawClass = true
			extends, _ = n.Metadata["extendsName"].(string)
		}
		if n.Type == graph.TypeMethod && n.Name == "bark" {
			sawMethod = true
		}
	}
	if !sawClass {
		t.Fatal("expected a CLASS node named Dog")
	}
	if extends != "Animal" {
		t.Errorf("expected Metadata[extendsName] = %q, got %q", "Animal", extends)
	}
	if !sawMethod {
		t.Error("expected a METHOD node named bark contained by the class")
	}
}

func TestExtract_TryCatchFinally(t *testing.T) {
	src := []byte(`
function run() {
  try {
    risky();
  } catch (err) {
    handle(err);
  } finally {
    cleanup();
  }
}
`)
	e := New()
	out := &extract.Collections{}
	tr := scope.New("app.js")
	mod := extract.ModuleInfo{File: "app.js", ModuleID: "app.js->MODULE->app.js", ContentHash: "0007"}
	if err := e.Extract(src, mod, out, tr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var tryID, catchID, riskyCallID string
	var sawFinally bool
	for _, n := range out.Nodes {
		switch {
		case n.Type == graph.TypeTryBlock:
			tryID = n.ID
		case n.Type == graph.TypeCatchBlock:
			catchID = n.ID
		case n.Type == graph.TypeFinallyBlock:
			sawFinally = true
		case n.Type == graph.TypeCall && n.Name == "risky":
			riskyCallID = n.ID
		}
	}
	if tryID == "" || catchID == "" || !sawFinally {
		t.Fatalf("expected TRY_BLOCK, CATCH_BLOCK, FINALLY_BLOCK nodes, got try=%q catch=%q finally=%v", tryID, catchID, sawFinally)
	}
	if riskyCallID == "" {
		t.Fatal("expected a CALL node named risky")
	}

	var sawCatchesFrom bool
	for _, edge := range out.Edges {
		if edge.Type == graph.EdgeCatchesFrom && edge.From == catchID && edge.To == riskyCallID {
			sawCatchesFrom = true
		}
	}
	if !sawCatchesFrom {
		t.Error("expected a CATCHES_FROM edge from the catch block to the risky() call")
	}
}

func TestExtract_TryCatchDoesNotCrossNestedFunction(t *testing.T) {
	src := []byte(`
function run() {
  try {
    const cb = function () {
      risky();
    };
    cb();
  } catch (err) {
    handle(err);
  }
}
`)
	e := New()
	out := &extract.Collections{}
	tr := scope.New("app.js")
	mod := extract.ModuleInfo{File: "app.js", ModuleID: "app.js->MODULE->app.js", ContentHash: "0008"}
	if err := e.Extract(src, mod, out, tr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var catchID, nestedRiskyID string
	for _, n := range out.Nodes {
		if n.Type == graph.TypeCatchBlock {
			catchID = n.ID
		}
		if n.Type == graph.TypeCall && n.Name == "risky" {
			nestedRiskyID = n.ID
		}
	}
	if catchID == "" || nestedRiskyID == "" {
		t.Fatal("expected a CATCH_BLOCK node and a risky() CALL node")
	}

	for _, edge := range out.Edges {
		if edge.Type == graph.EdgeCatchesFrom && edge.To == nestedRiskyID {
			t.Errorf("risky() is called from a nested function body, should not be claimed by the outer catch: %+v", edge)
		}
	}
}

func TestExtract_DomainExpressRoute(t *testing.T) {
	src := []byte(`
app.get("/users", function (req, res) {
  res.send("ok");
});
`)
	e := New()
	out := &extract.Collections{}
	tr := scope.New("server.js")
	mod := extract.ModuleInfo{File: "server.js", ModuleID: "server.js->MODULE->server.js", ContentHash: "0009"}
	if err := e.Extract(src, mod, out, tr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var found bool
	for _, n := range out.Nodes {
		if n.Type == graph.TypeHTTPRoute {
			found = true
			if method, _ := n.Fields["method"].(string); method != "GET" {
				t.Errorf("expected Fields[method] = GET, got %q", method)
			}
			if path, _ := n.Fields["path"].(string); path != "/users" {
				t.Errorf("expected Fields[path] = /users, got %q", path)
			}
		}
	}
	if !found {
		t.Error("expected an http:route node for app.get(\"/users\", ...)")
	}
}

func TestExtract_DomainReactHookAndComponent(t *testing.T) {
	src := []byte(`
function Widget() {
  const [count, setCount] = useState(0);
  useEffect(function () {
    track(count);
  });
  return count;
}
`)
	e := New()
	out := &extract.Collections{}
	tr := scope.New("widget.jsx")
	mod := extract.ModuleInfo{File: "widget.jsx", ModuleID: "widget.jsx->MODULE->widget.jsx", ContentHash: "0010"}
	if err := e.Extract(src, mod, out, tr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sawState, sawEffect, sawComponent bool
	for _, n := range out.Nodes {
		switch n.Type {
		case graph.TypeReactState:
			sawState = true
		case graph.TypeReactEffect:
			sawEffect = true
		case graph.TypeReactComponent:
			if n.Name == "Widget" {
				sawComponent = true
			}
		}
	}
	if !sawState {
		t.Error("expected a react:state node for useState(0)")
	}
	if !sawEffect {
		t.Error("expected a react:effect node for useEffect(...)")
	}
	if !sawComponent {
		t.Error("expected a react:component node for Widget")
	}
}

func TestExtract_AllEdgesReferenceKnownNodes(t *testing.T) {
	src := []byte(`
function greet(name) {
  return fetch(name);
}
`)
	e := New()
	out := &extract.Collections{}
	tr := scope.New("app.js")
	mod := extract.ModuleInfo{File: "app.js", ModuleID: "app.js->MODULE->app.js", ContentHash: "0004"}
	if err := e.Extract(src, mod, out, tr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids := make(map[string]bool, len(out.Nodes))
	for _, n := range out.Nodes {
		ids[n.ID] = true
	}
	for _, edge := range out.Edges {
		if !ids[edge.From] {
			t.Errorf("edge %+v references unknown from-node", edge)
		}
		if !ids[edge.To] {
			t.Errorf("edge %+v references unknown to-node", edge)
		}
	}
}
