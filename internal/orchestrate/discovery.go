package orchestrate

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DiscoveredFile is one source file surfaced by the DISCOVERY phase,
// carrying enough to mint a MODULE node in INDEXING without re-reading
// the filesystem.
type DiscoveredFile struct {
	Path     string
	Language string
}

// extensionLanguage maps a source extension to the extractor.Language it
// belongs to (spec.md §4.5 dispatch table), mirroring the teacher's own
// detectLanguage table scoped down to the languages this module extracts.
var extensionLanguage = map[string]string{
	".js":  "javascript",
	".jsx": "javascript",
	".mjs": "javascript",
	".cjs": "javascript",
	".ts":  "typescript",
	".tsx": "typescript",
	".go":  "golang",
}

// discoverFiles walks root, honoring include/exclude glob patterns
// (doublestar, ** supported), the same matching library and precedence
// the teacher's FileWalker uses: a file survives if it is excluded by
// nothing and, when include patterns are given, matches at least one.
func discoverFiles(ctx context.Context, root string, include, exclude []string) ([]DiscoveredFile, error) {
	var out []DiscoveredFile

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries rather than abort the walk
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if matchesAny(rel, exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		lang, ok := extensionLanguage[strings.ToLower(filepath.Ext(path))]
		if !ok {
			return nil
		}
		if len(include) > 0 && !matchesAny(rel, include) {
			return nil
		}

		out = append(out, DiscoveredFile{Path: path, Language: lang})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func matchesAny(path string, patterns []string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, path); err == nil && ok {
			return true
		}
		if !strings.Contains(p, "/") {
			if ok, err := doublestar.Match(p, filepath.Base(path)); err == nil && ok {
				return true
			}
		}
	}
	return false
}
