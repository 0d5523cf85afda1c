package extract

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/dartgraph/internal/lang"
	"github.com/DeusData/dartgraph/internal/parser"
)

// findImports turns every captured import/export/part path literal into an
// ImportEntity. Aliases (import 'x' as y) are not parsed.
func (e *Extractor) findImports(root *tree_sitter.Node, source []byte, isDependency bool) []ImportEntity {
	out := []ImportEntity{}
	for _, c := range e.captures(lang.Imports, root, source) {
		if c.label != "path" {
			continue
		}
		target := strings.Trim(parser.NodeText(c.node, source), `"'`)
		directive := enclosingDirective(c.node)
		out = append(out, ImportEntity{
			Name:           target,
			FullImportName: target,
			LineNumber:     parser.Line(directive.StartPosition().Row),
			Lang:           e.language,
			IsDependency:   isDependency,
		})
	}
	return out
}

// enclosingDirective returns the directive that owns a path literal, falling
// back to the literal's parent and finally the literal itself.
func enclosingDirective(n *tree_sitter.Node) *tree_sitter.Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if kindOf(p.Kind()).isDirective() {
			return p
		}
	}
	if p := n.Parent(); p != nil {
		return p
	}
	return n
}
