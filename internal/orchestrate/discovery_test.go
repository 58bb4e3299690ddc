package orchestrate

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDiscoverFiles_IncludeExclude(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "app.go"), "package main")
	mustWrite(t, filepath.Join(dir, "app.js"), "console.log(1)")
	mustWrite(t, filepath.Join(dir, "vendor", "lib.go"), "package vendor")
	mustWrite(t, filepath.Join(dir, "README.md"), "# hi")

	files, err := discoverFiles(context.Background(), dir, nil, []string{"vendor/**"})
	if err != nil {
		t.Fatalf("discoverFiles: %v", err)
	}

	var sawGo, sawJS, sawVendor bool
	for _, f := range files {
		switch {
		case f.Path == filepath.Join(dir, "app.go"):
			sawGo = true
		case f.Path == filepath.Join(dir, "app.js"):
			sawJS = true
		case f.Language == "golang" && f.Path == filepath.Join(dir, "vendor", "lib.go"):
			sawVendor = true
		}
	}
	if !sawGo || !sawJS {
		t.Errorf("expected app.go and app.js discovered, got %+v", files)
	}
	if sawVendor {
		t.Error("expected vendor/ to be excluded")
	}
}

func TestDiscoverFiles_IncludeNarrows(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "a.go"), "package main")
	mustWrite(t, filepath.Join(dir, "b.go"), "package main")

	files, err := discoverFiles(context.Background(), dir, []string{"a.go"}, nil)
	if err != nil {
		t.Fatalf("discoverFiles: %v", err)
	}
	if len(files) != 1 || files[0].Path != filepath.Join(dir, "a.go") {
		t.Errorf("expected only a.go, got %+v", files)
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}
