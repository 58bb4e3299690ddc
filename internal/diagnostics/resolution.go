package diagnostics

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DiffChain renders steps as a sequence of unified diffs between
// consecutive entries, the same shape the teacher's provider layer uses
// for before/after source (providers/base/provider.go's generateDiff),
// reused here for a ResolutionChain's step-by-step rewrite (spec.md
// §4.10, e.g. an alias trace's "a.b" -> "this.b.c" -> "svc.Client.b.c").
func DiffChain(steps []string) string {
	if len(steps) < 2 {
		return ""
	}
	var b strings.Builder
	for i := 1; i < len(steps); i++ {
		d := stepDiff(steps[i-1], steps[i], i-1, i)
		if d == "" {
			continue
		}
		b.WriteString(d)
	}
	return strings.TrimRight(b.String(), "\n")
}

func stepDiff(from, to string, fromIdx, toIdx int) string {
	if from == to {
		return ""
	}
	diff := difflib.UnifiedDiff{
		A:        strings.Split(from, "\n"),
		B:        strings.Split(to, "\n"),
		FromFile: fmt.Sprintf("step %d", fromIdx),
		ToFile:   fmt.Sprintf("step %d", toIdx),
		Context:  1,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return fmt.Sprintf("step %d -> %d: %q -> %q\n", fromIdx, toIdx, from, to)
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text
}
