package diagnostics

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// JSONLWriter appends one JSON-encoded Diagnostic per line to an
// underlying writer, the `.grafema/diagnostics.log` format (SPEC_FULL.md
// §6.5). Safe for concurrent use by worker-pool goroutines.
type JSONLWriter struct {
	mu  sync.Mutex
	w   io.Writer
	enc *json.Encoder
}

// NewJSONLWriter wraps w; callers own w's lifecycle (flush/close).
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{w: w, enc: json.NewEncoder(w)}
}

// Write appends d as one line. Encoding errors are wrapped with the
// diagnostic's code for context.
func (j *JSONLWriter) Write(d Diagnostic) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.enc.Encode(d); err != nil {
		return fmt.Errorf("diagnostics: write jsonl for %s: %w", d.Code, err)
	}
	return nil
}

// WriteAll appends every diagnostic in diags in order.
func (j *JSONLWriter) WriteAll(diags []Diagnostic) error {
	for _, d := range diags {
		if err := j.Write(d); err != nil {
			return err
		}
	}
	return nil
}
