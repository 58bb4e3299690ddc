// Package typescript supplies base.Rules for TypeScript/TSX, the
// extraction analogue of providers/typescript.Config. TypeScript's grammar
// is a superset of JavaScript's for every construct the base walker
// classifies, so the classifier functions are shared; only Extensions and
// the underlying parse.Parser differ.
package typescript

import (
	"github.com/termfx/grafema/internal/extract"
	"github.com/termfx/grafema/internal/extract/base"
	"github.com/termfx/grafema/internal/extract/javascript"
	"github.com/termfx/grafema/internal/parse/treesitter"
)

// Rules returns the base.Rules for TypeScript.
func Rules() base.Rules {
	r := javascript.Rules()
	r.Language = "typescript"
	r.Extensions = []string{".ts", ".tsx", ".mts", ".cts"}
	r.Parser = treesitter.New(treesitter.LangTypeScript)
	return r
}

// New constructs the TypeScript extract.Extractor.
func New() extract.Extractor {
	return base.New(Rules())
}
