package parser

import (
	"testing"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/dartgraph/internal/lang"
)

func TestParseDart(t *testing.T) {
	source := []byte(`int add(int a, int b) {
  return a + b;
}

class Dog {
  void bark() {
    print('woof');
  }
}
`)
	tree, err := Parse(lang.Dart, source)
	if err != nil {
		t.Fatalf("Parse Dart: %v", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		t.Fatal("root node is nil")
	}

	var sigCount, classCount int
	Walk(root, func(n *tree_sitter.Node) bool {
		switch n.Kind() {
		case "function_signature":
			sigCount++
		case "class_definition":
			classCount++
		}
		return true
	})
	if sigCount != 2 {
		t.Errorf("expected 2 function_signatures, got %d", sigCount)
	}
	if classCount != 1 {
		t.Errorf("expected 1 class_definition, got %d", classCount)
	}
}

func TestAllLanguagesLoad(t *testing.T) {
	for _, l := range lang.AllLanguages() {
		_, err := GetLanguage(l)
		if err != nil {
			t.Errorf("GetLanguage(%s): %v", l, err)
		}
	}
}

func TestUnsupportedLanguage(t *testing.T) {
	if _, err := Parse(lang.Language("cobol"), []byte("x")); err == nil {
		t.Error("Parse(cobol) should fail")
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	source := []byte("class A {\n  void f() {}\n}\n")
	tree, err := Parse(lang.Dart, source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	defer tree.Close()

	var visited int
	Walk(tree.RootNode(), func(n *tree_sitter.Node) bool {
		visited++
		return n.Kind() != "class_definition"
	})
	var all int
	Walk(tree.RootNode(), func(*tree_sitter.Node) bool {
		all++
		return true
	})
	if visited >= all {
		t.Errorf("pruned walk visited %d nodes, full walk %d", visited, all)
	}
}

func TestStripBOM(t *testing.T) {
	got := StripBOM([]byte{0xEF, 0xBB, 0xBF, 'a'})
	if string(got) != "a" {
		t.Errorf("StripBOM = %q, want %q", got, "a")
	}
	if string(StripBOM([]byte("abc"))) != "abc" {
		t.Error("StripBOM changed source without a BOM")
	}
}

func TestLine(t *testing.T) {
	if Line(0) != 1 {
		t.Errorf("Line(0) = %d, want 1", Line(0))
	}
	if Line(41) != 42 {
		t.Errorf("Line(41) = %d, want 42", Line(41))
	}
}
