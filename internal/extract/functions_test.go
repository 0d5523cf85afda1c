package extract

import (
	"testing"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/dartgraph/internal/lang"
	"github.com/DeusData/dartgraph/internal/parser"
)

func parseTree(t *testing.T, src string) (*tree_sitter.Tree, []byte) {
	t.Helper()
	source := []byte(src)
	tree, err := parser.Parse(lang.Dart, source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	t.Cleanup(tree.Close)
	return tree, source
}

func firstOfKind(root *tree_sitter.Node, kind string) *tree_sitter.Node {
	var found *tree_sitter.Node
	parser.Walk(root, func(n *tree_sitter.Node) bool {
		if found != nil {
			return false
		}
		if n.Kind() == kind {
			found = n
			return false
		}
		return true
	})
	return found
}

func TestUnnamedSignatureDropped(t *testing.T) {
	tree, source := parseTree(t, "class A {}\nvoid ok() {}\n")
	e := newTestExtractor(t, Options{})

	classNode := firstOfKind(tree.RootNode(), "class_definition")
	if classNode == nil {
		t.Fatal("class_definition not found")
	}
	if _, ok := e.buildFunction(&functionBucket{signature: classNode}, source, false); ok {
		t.Error("bucket without a resolvable name should be dropped")
	}

	rec, err := e.ParseSource("a.dart", source, false)
	if err != nil {
		t.Fatalf("ParseSource: %v", err)
	}
	if len(rec.Functions) != 1 || rec.Functions[0].Name != "ok" {
		t.Errorf("functions = %+v, want [ok]", rec.Functions)
	}
	if len(rec.Classes) != 1 || rec.Classes[0].Name != "A" {
		t.Errorf("classes = %+v, want [A]", rec.Classes)
	}
}

func TestResolveFunctionNamePrefersDerivedConstructorName(t *testing.T) {
	tree, source := parseTree(t, "class Point {\n  Point.origin() {}\n}\n")
	sig := firstOfKind(tree.RootNode(), "constructor_signature")
	if sig == nil {
		t.Fatal("constructor_signature not found")
	}
	if got := resolveFunctionName(sig, "origin", source); got != "Point.origin" {
		t.Errorf("resolveFunctionName = %q, want Point.origin", got)
	}
	if got := resolveFunctionName(sig, "", source); got != "Point.origin" {
		t.Errorf("resolveFunctionName(no capture) = %q, want Point.origin", got)
	}
}

func TestResolveFunctionNameKeepsCapturedName(t *testing.T) {
	tree, source := parseTree(t, "int run() {\n  return 1;\n}\n")
	sig := firstOfKind(tree.RootNode(), "function_signature")
	if sig == nil {
		t.Fatal("function_signature not found")
	}
	if got := resolveFunctionName(sig, "run", source); got != "run" {
		t.Errorf("resolveFunctionName = %q, want run", got)
	}
	if got := resolveFunctionName(sig, "", source); got != "run" {
		t.Errorf("resolveFunctionName(no capture) = %q, want run", got)
	}
}

func TestContainerAndBody(t *testing.T) {
	tree, _ := parseTree(t, "class A {\n  void m() {\n  }\n}\nvoid top() {}\n")
	root := tree.RootNode()

	var sigs []*tree_sitter.Node
	parser.Walk(root, func(n *tree_sitter.Node) bool {
		if n.Kind() == "function_signature" {
			sigs = append(sigs, n)
		}
		return true
	})
	if len(sigs) != 2 {
		t.Fatalf("function_signatures = %d, want 2", len(sigs))
	}

	method := sigs[0]
	container := containerOf(method)
	if container.Kind() != "method_signature" {
		t.Errorf("method container = %s, want method_signature", container.Kind())
	}
	if body := bodyOf(container, method); body == nil || body.Kind() != "function_body" {
		t.Errorf("method body = %v, want function_body", body)
	}

	top := sigs[1]
	if c := containerOf(top); c.Id() != top.Id() {
		t.Errorf("top-level container = %s, want the signature itself", c.Kind())
	}
	if body := bodyOf(top, top); body == nil || body.Kind() != "function_body" {
		t.Errorf("top-level body = %v, want function_body", body)
	}
}

func TestParameterNamesNilList(t *testing.T) {
	got := parameterNames(nil, nil)
	if got == nil || len(got) != 0 {
		t.Errorf("parameterNames(nil) = %v, want empty non-nil", got)
	}
}

func TestComplexity(t *testing.T) {
	if got := complexity(); got != 1 {
		t.Errorf("complexity() = %d, want 1", got)
	}
	if got := complexity(nil, nil); got != 1 {
		t.Errorf("complexity(nil, nil) = %d, want 1", got)
	}

	tree, _ := parseTree(t, `int f(int x) {
  if (x > 0) {
    return 1;
  } else if (x < 0) {
    return -1;
  }
  while (x > 10) {
    x--;
  }
  try {
    x++;
  } catch (e) {
    x = 0;
  }
  return x;
}
`)
	body := firstOfKind(tree.RootNode(), "function_body")
	if body == nil {
		t.Fatal("function_body not found")
	}
	// if, else-if, while, try
	if got := complexity(body); got < 5 {
		t.Errorf("complexity = %d, want >= 5", got)
	}
}

func TestKindLookup(t *testing.T) {
	if kindOf("no_such_kind") != KindUnknown {
		t.Error("unknown kind should map to KindUnknown")
	}
	if KindUnknown.String() != "unknown" {
		t.Errorf("KindUnknown.String() = %q", KindUnknown.String())
	}
	for name, k := range kindNames {
		if k.String() != name {
			t.Errorf("Kind(%d).String() = %q, want %q", k, k.String(), name)
		}
	}
	for _, k := range []Kind{KindFunctionSignature, KindGetterSignature, KindSetterSignature, KindConstructorSignature} {
		if !k.isSignature() {
			t.Errorf("%s should be a signature", k)
		}
	}
	if KindMethodSignature.isSignature() {
		t.Error("method_signature is a wrapper, not a signature")
	}
	if !KindAnnotation.isDecorative() || KindComment.isDecorative() {
		t.Error("decorative classification wrong")
	}
}
