package extract

import (
	"log/slog"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/dartgraph/internal/lang"
	"github.com/DeusData/dartgraph/internal/parser"
)

type variableBucket struct {
	decl  *tree_sitter.Node
	name  string
	value *string
}

// findVariables groups @name/@value captures by their declaration's span.
// Dart has no variables pattern yet, so this returns an empty list until one
// is registered.
func (e *Extractor) findVariables(root *tree_sitter.Node, source []byte, isDependency bool) []VariableEntity {
	out := []VariableEntity{}
	captures := e.captures(lang.Variables, root, source)
	if len(captures) == 0 {
		return out
	}

	buckets := make(map[span]*variableBucket)
	var order []span
	for _, c := range captures {
		if c.label != "name" && c.label != "value" {
			continue
		}
		decl := enclosingVariableDeclaration(c.node)
		if decl == nil {
			slog.Debug("extract.variable.orphan", "label", c.label, "kind", c.node.Kind())
			continue
		}
		key := spanOf(decl)
		b, ok := buckets[key]
		if !ok {
			b = &variableBucket{decl: decl}
			buckets[key] = b
			order = append(order, key)
		}
		text := parser.NodeText(c.node, source)
		if c.label == "name" {
			b.name = text
		} else {
			b.value = &text
		}
	}

	for _, key := range order {
		b := buckets[key]
		if b.name == "" {
			continue
		}
		out = append(out, VariableEntity{
			Name:         b.name,
			LineNumber:   parser.Line(b.decl.StartPosition().Row),
			Value:        b.value,
			Lang:         e.language,
			IsDependency: isDependency,
		})
	}
	return out
}

func enclosingVariableDeclaration(n *tree_sitter.Node) *tree_sitter.Node {
	for cur := n; cur != nil; cur = cur.Parent() {
		if kindOf(cur.Kind()).isVariableDeclaration() {
			return cur
		}
	}
	return nil
}
