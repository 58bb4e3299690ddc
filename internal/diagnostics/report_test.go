package diagnostics

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func sampleDiagnostics() []Diagnostic {
	return []Diagnostic{
		{Code: CodeParseFailed, Severity: SeverityError, Message: "unexpected token", File: "a.js", Line: 12, Phase: "ANALYSIS", Plugin: "javascript"},
		{Code: CodeGuaranteeViolation, Severity: SeverityWarning, Message: "eval() is never allowed", Phase: "guarantee", Plugin: "no-eval", Suggestion: "remove eval"},
	}
}

func TestWriteJSON_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleDiagnostics()); err != nil {
		t.Fatalf("write json: %v", err)
	}
	var got []Diagnostic
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 2 || got[0].Code != CodeParseFailed {
		t.Fatalf("unexpected round trip: %+v", got)
	}
}

func TestWriteCSV_HasHeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleDiagnostics()); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "code,severity,message") {
		t.Errorf("unexpected header: %q", lines[0])
	}
}

func TestWriteText_StrictModeSuppressesBelowThreshold(t *testing.T) {
	diags := sampleDiagnostics()
	var buf bytes.Buffer
	if err := WriteText(&buf, diags, StrictOptions{Threshold: 1}); err != nil {
		t.Fatalf("write text: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "1 more suppressed") {
		t.Errorf("expected suppression notice, got %q", out)
	}
	if strings.Contains(out, "no-eval") {
		t.Errorf("expected second diagnostic to be suppressed, got %q", out)
	}
}

func TestWriteText_VerboseShowsAll(t *testing.T) {
	diags := sampleDiagnostics()
	var buf bytes.Buffer
	if err := WriteText(&buf, diags, StrictOptions{Threshold: 1, Verbose: true}); err != nil {
		t.Fatalf("write text: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "no-eval") || strings.Contains(out, "suppressed") {
		t.Errorf("expected verbose output with no suppression, got %q", out)
	}
}

func TestWriteText_ResolutionChainRendersDiff(t *testing.T) {
	diags := []Diagnostic{{
		Code:            CodeValidationFailed,
		Severity:        SeverityInfo,
		Message:         "alias resolved",
		Phase:           "query",
		ResolutionChain: []string{"a.b", "this.b", "svc.Client.b"},
	}}
	var buf bytes.Buffer
	if err := WriteText(&buf, diags, StrictOptions{ShowResolutionChain: true}); err != nil {
		t.Fatalf("write text: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "step 0") || !strings.Contains(out, "step 1") {
		t.Errorf("expected unified diff markers in output, got %q", out)
	}
}

func TestDiffChain_SingleStepIsEmpty(t *testing.T) {
	if got := DiffChain([]string{"only"}); got != "" {
		t.Errorf("expected empty diff for single step, got %q", got)
	}
}

func TestJSONLWriter_WriteAllOneObjectPerLine(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONLWriter(&buf)
	if err := w.WriteAll(sampleDiagnostics()); err != nil {
		t.Fatalf("write all: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	var d Diagnostic
	if err := json.Unmarshal([]byte(lines[0]), &d); err != nil {
		t.Fatalf("unmarshal line: %v", err)
	}
	if d.Code != CodeParseFailed {
		t.Errorf("unexpected first line: %+v", d)
	}
}
