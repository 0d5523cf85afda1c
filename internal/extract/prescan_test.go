package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DeusData/dartgraph/internal/lang"
)

func writeDart(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestPreScanner(t *testing.T) *PreScanner {
	t.Helper()
	s, err := NewPreScanner(lang.Dart)
	if err != nil {
		t.Fatalf("NewPreScanner: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestPreScanSharedSymbol(t *testing.T) {
	dir := t.TempDir()
	a := writeDart(t, dir, "a.dart", "class Foo {}\nvoid helper() {}\n")
	b := writeDart(t, dir, "b.dart", "class Foo {\n  Foo();\n}\nmixin Bar {}\n")

	s := newTestPreScanner(t)
	idx := s.Scan([]string{a, b})

	want := []string{ResolvePath(a), ResolvePath(b)}
	got := idx["Foo"]
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Foo = %v, want %v", got, want)
	}
	if paths := idx["helper"]; len(paths) != 1 || paths[0] != want[0] {
		t.Errorf("helper = %v, want [%s]", paths, want[0])
	}

	// Scanning the same files again must not duplicate paths.
	s.ScanInto(idx, []string{a, b})
	if got := idx["Foo"]; len(got) != 2 {
		t.Errorf("Foo after rescan = %v, want 2 entries", got)
	}
}

func TestPreScanSkipsUnreadableFile(t *testing.T) {
	dir := t.TempDir()
	good := writeDart(t, dir, "good.dart", "enum Color { red }\n")
	missing := filepath.Join(dir, "missing.dart")
	after := writeDart(t, dir, "after.dart", "int total() => 0;\n")

	s := newTestPreScanner(t)
	idx := s.Scan([]string{good, missing, after})

	if paths := idx["Color"]; len(paths) != 1 || paths[0] != ResolvePath(good) {
		t.Errorf("Color = %v", paths)
	}
	if paths := idx["total"]; len(paths) != 1 || paths[0] != ResolvePath(after) {
		t.Errorf("total = %v", paths)
	}
	for sym, paths := range idx {
		for _, p := range paths {
			if p == ResolvePath(missing) || p == missing {
				t.Errorf("missing file recorded under %q", sym)
			}
		}
	}
}

func TestPreScanAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	writeDart(t, dir, "rel.dart", "class Rel {}\n")

	t.Chdir(dir)

	s := newTestPreScanner(t)
	idx := s.Scan([]string{"rel.dart"})
	paths := idx["Rel"]
	if len(paths) != 1 || !filepath.IsAbs(paths[0]) {
		t.Errorf("Rel = %v, want one absolute path", paths)
	}
}

func TestSymbolIndexAddMerge(t *testing.T) {
	idx := SymbolIndex{}
	idx.Add("Foo", "/a")
	idx.Add("Foo", "/b")
	idx.Add("Foo", "/a")
	if got := idx["Foo"]; len(got) != 2 || got[0] != "/a" || got[1] != "/b" {
		t.Errorf("Foo = %v, want [/a /b]", got)
	}

	other := SymbolIndex{"Foo": {"/b", "/c"}, "Bar": {"/c"}}
	idx.Merge(other)
	if got := idx["Foo"]; len(got) != 3 || got[2] != "/c" {
		t.Errorf("Foo after merge = %v, want [/a /b /c]", got)
	}
	if got := idx["Bar"]; len(got) != 1 || got[0] != "/c" {
		t.Errorf("Bar after merge = %v", got)
	}
}
