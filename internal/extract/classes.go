package extract

import (
	"log/slog"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/dartgraph/internal/lang"
	"github.com/DeusData/dartgraph/internal/parser"
)

// anonymousExtension names an extension declared without an identifier
// (extension on String { ... }). Two such extensions in one file share it.
const anonymousExtension = "extension"

func (e *Extractor) findClasses(root *tree_sitter.Node, source []byte, isDependency bool) []ClassEntity {
	out := []ClassEntity{}
	for _, c := range e.captures(lang.Classes, root, source) {
		if c.label != "class" {
			continue
		}
		node := c.node
		if !kindOf(node.Kind()).isTypeDeclaration() {
			slog.Debug("extract.class.kind", "kind", node.Kind())
			continue
		}
		out = append(out, ClassEntity{
			Name:         className(node, source),
			LineNumber:   parser.Line(node.StartPosition().Row),
			EndLine:      parser.Line(node.EndPosition().Row),
			Bases:        []string{},
			Source:       parser.NodeText(node, source),
			Docstring:    leadingComment(node, source),
			Decorators:   []string{},
			Lang:         e.language,
			IsDependency: isDependency,
		})
	}
	return out
}

// className prefers the name field, then a positional identifier child
// (mixins), then the anonymous-extension placeholder.
func className(node *tree_sitter.Node, source []byte) string {
	if nm := node.ChildByFieldName("name"); nm != nil {
		return parser.NodeText(nm, source)
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && kindOf(child.Kind()) == KindIdentifier {
			return parser.NodeText(child, source)
		}
	}
	return anonymousExtension
}
