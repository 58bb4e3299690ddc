package diagnostics

import "testing"

func TestCollector_AddAndFilter(t *testing.T) {
	c := NewCollector()
	c.Add(Diagnostic{Code: CodeParseFailed, Severity: SeverityError, Phase: "ANALYSIS", Plugin: "javascript", File: "a.js"})
	c.Add(Diagnostic{Code: CodeStorageUnavailable, Severity: SeverityFatal, Phase: "INDEXING"})
	c.AddFromError("ANALYSIS", "b.js", errString("boom"))

	if len(c.All()) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", len(c.All()))
	}
	if len(c.ByPhase("ANALYSIS")) != 2 {
		t.Errorf("expected 2 ANALYSIS diagnostics, got %d", len(c.ByPhase("ANALYSIS")))
	}
	if len(c.ByPlugin("javascript")) != 1 {
		t.Errorf("expected 1 javascript diagnostic, got %d", len(c.ByPlugin("javascript")))
	}
	if len(c.ByCode(CodeUnknown)) != 1 {
		t.Errorf("expected 1 unknown-code diagnostic, got %d", len(c.ByCode(CodeUnknown)))
	}
}

func TestCollector_HasFatalAndExitCode(t *testing.T) {
	c := NewCollector()
	if c.HasFatal() || c.ExitCode() != 0 {
		t.Fatal("expected clean collector to report success")
	}

	c.Add(Diagnostic{Severity: SeverityError})
	if c.ExitCode() != 1 {
		t.Errorf("expected exit code 1 after an error diagnostic, got %d", c.ExitCode())
	}

	c.Add(Diagnostic{Severity: SeverityFatal})
	if !c.HasFatal() || c.ExitCode() != 2 {
		t.Errorf("expected fatal diagnostic to force exit code 2, got hasFatal=%v code=%d", c.HasFatal(), c.ExitCode())
	}
}

func TestCollector_AddFromError_NilIsNoop(t *testing.T) {
	c := NewCollector()
	c.AddFromError("ANALYSIS", "a.js", nil)
	if len(c.All()) != 0 {
		t.Error("expected nil error to add nothing")
	}
}

type errString string

func (e errString) Error() string { return string(e) }
