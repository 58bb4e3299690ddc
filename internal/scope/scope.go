// Package scope tracks the lexical scope stack and per-scope item counters
// during a single file's extraction. A Tracker is single-threaded: each
// orchestrator worker owns exactly one, created fresh per file.
package scope

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/termfx/grafema/internal/ident"
)

// Kind classifies a scope entry. Named kinds (Class, Function) participate
// in v2 "nearest named ancestor" resolution; anonymous kinds do not.
type Kind string

const (
	KindClass    Kind = "class"
	KindFunction Kind = "function"
	KindIf       Kind = "if"
	KindElse     Kind = "else"
	KindFor      Kind = "for"
	KindWhile    Kind = "while"
	KindTry      Kind = "try"
	KindCatch    Kind = "catch"
	KindFinally  Kind = "finally"
	KindStatic   Kind = "static_block"
	KindCallback Kind = "callback_body"
)

func (k Kind) named() bool {
	return k == KindClass || k == KindFunction
}

// Entry is one frame on the scope stack.
type Entry struct {
	Name string
	Kind Kind
}

// Tracker holds the scope stack and counters for the file currently under
// extraction.
type Tracker struct {
	file string

	stack []Entry

	// scopeCounters is keyed by "parentPath:kind" for enterCounted, giving
	// each anonymous block kind its own per-parent sequence.
	scopeCounters map[string]int

	// itemCounters is keyed by "scopePath:itemType" for nextItemCounter,
	// used to discriminate repeated same-name items within one scope.
	itemCounters map[string]int
}

// New creates a Tracker for the given file.
func New(file string) *Tracker {
	return &Tracker{
		file:          file,
		scopeCounters: make(map[string]int),
		itemCounters:  make(map[string]int),
	}
}

// Enter pushes a named scope frame (class, function, etc).
func (t *Tracker) Enter(name string, kind Kind) {
	t.stack = append(t.stack, Entry{Name: name, Kind: kind})
}

// Exit pops the innermost scope frame. It is a no-op on an empty stack,
// which should never happen in well-formed extraction but must not panic
// a worker mid-file.
func (t *Tracker) Exit() {
	if len(t.stack) == 0 {
		return
	}
	t.stack = t.stack[:len(t.stack)-1]
}

// EnterCounted pushes an anonymous block scope (if/try/for/...) and returns
// its synthesized name ("<kind>#<k>") plus the counter value. k is scoped
// per (current parent path, kind) so sibling blocks of the same kind under
// the same parent get distinct indices, while blocks under different
// parents restart at 0.
func (t *Tracker) EnterCounted(kind Kind) (name string, k int) {
	key := t.currentPath() + ":" + string(kind)
	k = t.scopeCounters[key]
	t.scopeCounters[key] = k + 1
	name = string(kind) + "#" + strconv.Itoa(k)
	t.Enter(name, kind)
	return name, k
}

// NextItemCounter returns the next discriminator for itemType within the
// current scope, used to disambiguate e.g. repeated foo() calls in one
// scope.
func (t *Tracker) NextItemCounter(itemType string) int {
	key := t.currentPath() + ":" + itemType
	k := t.itemCounters[key]
	t.itemCounters[key] = k + 1
	return k
}

// currentPath renders the full scope stack (named and anonymous) as a
// stable join key for counter maps. This is internal bookkeeping only; it
// is never emitted as part of a v2 ID.
func (t *Tracker) currentPath() string {
	names := make([]string, len(t.stack))
	for i, e := range t.stack {
		names[i] = e.Name
	}
	return strings.Join(names, "/")
}

// GetContext snapshots the current file and full (named + anonymous) scope
// path, for callers that need a v1 ID.
func (t *Tracker) GetContext() ident.Context {
	path := make([]string, len(t.stack))
	for i, e := range t.stack {
		path[i] = e.Name
	}
	return ident.Context{File: t.file, ScopePath: path}
}

// GetNearestNamed returns the innermost scope entry whose kind is named
// (class or function), or "" if none is on the stack (e.g. a top-level
// statement). This feeds the v2 "in:" field.
func (t *Tracker) GetNearestNamed() string {
	for i := len(t.stack) - 1; i >= 0; i-- {
		if t.stack[i].Kind.named() {
			return t.stack[i].Name
		}
	}
	return ""
}

// Depth reports the number of frames currently on the stack, mostly useful
// for tests and sanity assertions.
func (t *Tracker) Depth() int {
	return len(t.stack)
}

// String renders the tracker state for debugging.
func (t *Tracker) String() string {
	return fmt.Sprintf("Tracker{file=%s, path=%s}", t.file, t.currentPath())
}
