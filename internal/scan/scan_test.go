package scan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/DeusData/dartgraph/internal/config"
	"github.com/DeusData/dartgraph/internal/discover"
	"github.com/DeusData/dartgraph/internal/extract"
	"github.com/DeusData/dartgraph/internal/lang"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func setupProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "lib", "a.dart"), `import 'package:flutter/material.dart';

class Widget {
  void build() {}
}
`)
	writeFile(t, filepath.Join(dir, "lib", "b.dart"), `class Widget {}

int helper(int x) => x + 1;
`)
	writeFile(t, filepath.Join(dir, "third_party", "pkg", "c.dart"), "void vendored() {}\n")
	return dir
}

func TestRunProject(t *testing.T) {
	dir := setupProject(t)

	res, err := Run(context.Background(), dir, config.Default())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Files) != 3 {
		t.Fatalf("Files = %d, want 3", len(res.Files))
	}

	wantOrder := []string{"lib/a.dart", "lib/b.dart", "third_party/pkg/c.dart"}
	for i, rec := range res.Files {
		want := filepath.Join(dir, filepath.FromSlash(wantOrder[i]))
		if rec.FilePath != want {
			t.Errorf("Files[%d] = %s, want %s", i, rec.FilePath, want)
		}
		if rec.Lang != lang.Dart {
			t.Errorf("Files[%d].Lang = %q", i, rec.Lang)
		}
	}

	if res.Files[0].IsDependency || res.Files[1].IsDependency {
		t.Error("lib files should not be dependencies")
	}
	if !res.Files[2].IsDependency {
		t.Error("third_party file should be a dependency")
	}
	if len(res.Files[0].Imports) != 1 {
		t.Errorf("a.dart imports = %d, want 1", len(res.Files[0].Imports))
	}

	if got := len(res.Symbols["Widget"]); got != 2 {
		t.Errorf("Widget declared in %d files, want 2", got)
	}
	if res.Stats.Files != 3 || res.Stats.Cached != 0 || res.Stats.Failed != 0 {
		t.Errorf("Stats = %+v", res.Stats)
	}
}

func TestRunReusesUnchangedFiles(t *testing.T) {
	dir := setupProject(t)
	s := New(config.Default())

	if _, err := s.Run(context.Background(), dir); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	res, err := s.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if res.Stats.Cached != 3 {
		t.Errorf("Cached = %d, want 3", res.Stats.Cached)
	}

	writeFile(t, filepath.Join(dir, "lib", "b.dart"), "class Widget {}\nclass Other {}\n")
	res, err = s.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("third Run: %v", err)
	}
	if res.Stats.Cached != 2 {
		t.Errorf("Cached = %d, want 2", res.Stats.Cached)
	}
	if len(res.Files[1].Classes) != 2 {
		t.Errorf("b.dart classes = %d, want 2", len(res.Files[1].Classes))
	}
}

func TestRunCancelled(t *testing.T) {
	dir := setupProject(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Run(ctx, dir, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestPreScanMatchesSequential(t *testing.T) {
	dir := setupProject(t)
	files, err := discover.Discover(context.Background(), dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	paths := discover.Paths(files)
	paths = append(paths, filepath.Join(dir, "missing.dart"))

	ps, err := extract.NewPreScanner(lang.Dart)
	if err != nil {
		t.Fatal(err)
	}
	defer ps.Close()
	want := ps.Scan(paths)

	for _, workers := range []int{0, 1, 2, 8} {
		got, err := PreScan(context.Background(), paths, workers)
		if err != nil {
			t.Fatalf("PreScan(workers=%d): %v", workers, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("PreScan(workers=%d) = %v, want %v", workers, got, want)
		}
	}
}

func TestPreScanEmpty(t *testing.T) {
	idx, err := PreScan(context.Background(), nil, 4)
	if err != nil {
		t.Fatalf("PreScan: %v", err)
	}
	if len(idx) != 0 {
		t.Errorf("expected empty index, got %v", idx)
	}
}

func TestSortedSymbols(t *testing.T) {
	idx := extract.SymbolIndex{"b": {"/x"}, "a": {"/y"}, "c": {"/z"}}
	got := SortedSymbols(idx)
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("SortedSymbols = %v", got)
	}
}
