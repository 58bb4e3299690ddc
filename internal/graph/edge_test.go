package graph

import "testing"

func TestCreateEdge_Valid(t *testing.T) {
	e, err := CreateEdge("a->FUNCTION->f", "a->CALL->g", EdgeCalls, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.Type != EdgeCalls {
		t.Fatalf("got type %q", e.Type)
	}
}

func TestCreateEdge_EmptyEndpointRejected(t *testing.T) {
	if _, err := CreateEdge("", "a->CALL->g", EdgeCalls, nil); err == nil {
		t.Fatal("expected error for empty from")
	}
	if _, err := CreateEdge("a->FUNCTION->f", "", EdgeCalls, nil); err == nil {
		t.Fatal("expected error for empty to")
	}
}

func TestCreateEdge_UnknownTypeRejected(t *testing.T) {
	if _, err := CreateEdge("a", "b", EdgeType("BOGUS"), nil); err == nil {
		t.Fatal("expected error for unknown edge type")
	}
}

func TestValidateEdge(t *testing.T) {
	e := Edge{From: "a", To: "b", Type: EdgeContains}
	if errs := ValidateEdge(e); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	bad := Edge{From: "", To: "b", Type: EdgeType("NOPE")}
	if errs := ValidateEdge(bad); len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %v", errs)
	}
}
