// Package ident computes and parses the stable semantic identifiers that
// every graph entity owns. Two shapes coexist: the v1 path form (full scope
// path) and the v2 compact form (nearest named ancestor + content hash).
// v2 is canonical for everything the extractors mint; v1 remains available
// for callers that want a human-legible scope trail (diagnostics chains).
package ident

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Context carries the positional information Identity needs from the Scope
// Tracker (C2) to mint a v1 ID.
type Context struct {
	File      string
	ScopePath []string
}

// Opts controls optional fields present in a v2 compact ID.
type Opts struct {
	NamedParent string
	Hash        string // 4 hex digits, already computed via ContentHash
	Counter     int
}

// Special ID forms that never participate in scope-based parsing.
const (
	StdioSingleton   = "net:stdio->__stdio__"
	RequestSingleton = "net:request->*"
	externalPrefix   = "EXTERNAL_MODULE->"
)

// ExternalModule returns the special singleton ID for an external module
// import that has no in-tree MODULE node.
func ExternalModule(name string) string {
	return externalPrefix + name
}

// ComputeV1 builds a v1 path-form ID: file->scope1->scope2->TYPE->name[#k].
func ComputeV1(typ, name string, ctx Context, counter int) string {
	var b strings.Builder
	b.WriteString(ctx.File)
	for _, s := range ctx.ScopePath {
		b.WriteString("->")
		b.WriteString(s)
	}
	b.WriteString("->")
	b.WriteString(typ)
	b.WriteString("->")
	b.WriteString(name)
	if counter > 0 {
		fmt.Fprintf(&b, "#%d", counter)
	}
	return b.String()
}

// Compute is an alias for ComputeV1, kept for callers that only know the
// historical name used by the original TypeScript source.
func Compute(typ, name string, ctx Context, counter int) string {
	return ComputeV1(typ, name, ctx, counter)
}

// ComputeCompact builds a v2 compact-form ID:
// file->TYPE->name[in:namedParent][,h:hash][#counter].
//
// The bracketed group is emitted only when NamedParent or Hash is
// present; the individual pieces inside it are
// comma-joined in the order in:, h:. The #counter suffix is independent of
// the bracket and only appears when Counter > 0.
func ComputeCompact(typ, name, file string, opts Opts) string {
	var b strings.Builder
	b.WriteString(file)
	b.WriteString("->")
	b.WriteString(typ)
	b.WriteString("->")
	b.WriteString(name)

	var inner []string
	if opts.NamedParent != "" {
		inner = append(inner, "in:"+opts.NamedParent)
	}
	if opts.Hash != "" {
		inner = append(inner, "h:"+opts.Hash)
	}
	if len(inner) > 0 {
		b.WriteString("[")
		b.WriteString(strings.Join(inner, ","))
		b.WriteString("]")
	}
	if opts.Counter > 0 {
		fmt.Fprintf(&b, "#%d", opts.Counter)
	}
	return b.String()
}

// ParsedID is the result of successfully parsing either ID shape.
type ParsedID struct {
	Version     int // 1 or 2
	File        string
	ScopePath   []string // v1 only
	Type        string
	Name        string
	NamedParent string // v2 only, empty if absent
	Hash        string // v2 only, empty if absent
	Counter     int
	Special     string // one of the special forms, empty otherwise
}

var bracketRE = regexp.MustCompile(`^(.*)\[([^\]]*)\]$`)
var counterRE = regexp.MustCompile(`^(.*)#(\d+)$`)

// Parse recognizes both v1 and v2 shapes plus the special singleton/external
// forms. It returns (nil) on malformed input rather than an error, matching
// the spec's "parse(id) → ParsedId | None" contract.
func Parse(id string) *ParsedID {
	switch id {
	case StdioSingleton:
		return &ParsedID{Special: StdioSingleton}
	case RequestSingleton:
		return &ParsedID{Special: RequestSingleton}
	}
	if strings.HasPrefix(id, externalPrefix) {
		name := strings.TrimPrefix(id, externalPrefix)
		if name == "" {
			return nil
		}
		return &ParsedID{Special: externalPrefix, Name: name}
	}

	rest := id
	counter := 0
	if m := counterRE.FindStringSubmatch(rest); m != nil {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return nil
		}
		counter = n
		rest = m[1]
	}

	var namedParent, hash string
	hasBracket := false
	if m := bracketRE.FindStringSubmatch(rest); m != nil {
		hasBracket = true
		rest = m[1]
		for _, part := range strings.Split(m[2], ",") {
			switch {
			case strings.HasPrefix(part, "in:"):
				namedParent = strings.TrimPrefix(part, "in:")
			case strings.HasPrefix(part, "h:"):
				hash = strings.TrimPrefix(part, "h:")
			default:
				if part != "" {
					return nil
				}
			}
		}
	}

	segments := strings.Split(rest, "->")
	if len(segments) < 3 {
		return nil
	}
	name := segments[len(segments)-1]
	typ := segments[len(segments)-2]
	file := segments[0]
	middle := segments[1 : len(segments)-2]

	if hasBracket || (namedParent == "" && hash == "" && len(middle) == 0) {
		// v2 has no intervening scope segments between file and TYPE.
		if len(middle) == 0 {
			return &ParsedID{
				Version:     2,
				File:        file,
				Type:        typ,
				Name:        name,
				NamedParent: namedParent,
				Hash:        hash,
				Counter:     counter,
			}
		}
	}

	// v1: everything between file and TYPE is the scope path.
	return &ParsedID{
		Version:   1,
		File:      file,
		ScopePath: middle,
		Type:      typ,
		Name:      name,
		Counter:   counter,
	}
}

// Hints is the canonicalized input to ContentHash. Fields are concatenated
// in the fixed order a|l|p|r|t|o (arity, literal, param/property names,
// rhs-type, member chain, other) separated by "|"; absent fields are omitted
// entirely rather than represented as empty strings, so two hints differing
// only in an always-absent field hash identically.
type Hints struct {
	Arity       *int
	Literal     string
	RHSType     string
	ParamNames  []string
	MemberChain string
	Other       string
}

// ContentHash computes the 16-bit (4 hex digit) FNV-1a hash used to
// disambiguate colliding v2 IDs.
func ContentHash(h Hints) string {
	var parts []string
	if h.Arity != nil {
		parts = append(parts, "a:"+strconv.Itoa(*h.Arity))
	}
	if h.Literal != "" {
		parts = append(parts, "l:"+h.Literal)
	}
	if len(h.ParamNames) > 0 {
		parts = append(parts, "p:"+strings.Join(h.ParamNames, ","))
	}
	if h.RHSType != "" {
		parts = append(parts, "r:"+h.RHSType)
	}
	if h.MemberChain != "" {
		parts = append(parts, "t:"+h.MemberChain)
	}
	if h.Other != "" {
		parts = append(parts, "o:"+h.Other)
	}

	canon := strings.Join(parts, "|")
	sum := fnv.New32a()
	_, _ = sum.Write([]byte(canon))
	truncated := sum.Sum32() & 0xFFFF
	return fmt.Sprintf("%04x", truncated)
}

// ModuleContentHash computes MODULE.contentHash: a 64-bit FNV-1a hash of
// the parser's canonical source bytes, masked to its low 48 bits and
// rendered as 12 hex characters. This is distinct from ContentHash above, which
// disambiguates colliding v2 node IDs from positional/structural hints
// rather than hashing a whole file's bytes.
func ModuleContentHash(source []byte) string {
	sum := fnv.New64a()
	_, _ = sum.Write(source)
	const mask48 = 1<<48 - 1
	return fmt.Sprintf("%012x", sum.Sum64()&mask48)
}

// Located is the minimal interface ComputeDiscriminator needs from an
// extracted item: its source position.
type Located interface {
	Pos() (line, column int)
}

// ComputeDiscriminator sorts items by (line, column) and returns the
// 0-based index of the item at loc, or 0 when the set is a singleton or loc
// isn't found (callers are expected to pass loc as one of items' own
// positions).
func ComputeDiscriminator[T Located](items []T, loc T) int {
	if len(items) <= 1 {
		return 0
	}
	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		li, ci := sorted[i].Pos()
		lj, cj := sorted[j].Pos()
		if li != lj {
			return li < lj
		}
		return ci < cj
	})
	targetLine, targetCol := loc.Pos()
	for i, it := range sorted {
		l, c := it.Pos()
		if l == targetLine && c == targetCol {
			return i
		}
	}
	return 0
}
