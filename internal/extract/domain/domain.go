// Package domain supplies the pattern-directed detectors spec.md §4.5
// calls out under "Domain patterns": express routes, socket.io,
// fetch/axios, react hooks, and SQL `.query(...)` calls. Each pattern is
// isolated in its own file/detector, the way providers/base's extraction
// engine keeps grammar dispatch (IsFunctionLike, IsCallLike, ...) separate
// per concern; base.walker.extractCall calls Classify once per CALL node
// rather than importing each detector directly, the same one-call-site
// shape extractCall already uses for CalleeName/AssignmentSource.
package domain

import "github.com/termfx/grafema/internal/graph"

// Classification is what a detector returns when a CALL node's callee (and
// optionally its first literal argument) matches its pattern: the
// namespaced node kind to mint plus any kind-specific Fields to attach.
type Classification struct {
	Type   graph.Type
	Fields map[string]any
}

// detector is the shape every domain-specific file in this package
// implements: given a call's rendered callee name and (if the first
// argument is a literal) its text, report whether the call matches and
// what to mint for it.
type detector func(callee, firstArg string) (Classification, bool)

// detectors runs in a fixed order; the first match wins; a callee is never
// claimed by more than one domain pattern, matching express's ".get"
// taking priority over socket.io's similarly-shaped ".on"/".to" only
// because the two vocabularies don't overlap in practice.
var detectors = []detector{
	classifyExpressRoute,
	classifySocketIO,
	classifyHTTPRequest,
	classifySQLQuery,
	classifyReactHook,
}

// Classify runs every registered domain detector against one CALL node's
// rendered callee and (when present) its first literal argument, and
// returns the first match.
func Classify(callee, firstArg string) (Classification, bool) {
	for _, d := range detectors {
		if c, ok := d(callee, firstArg); ok {
			return c, true
		}
	}
	return Classification{}, false
}
