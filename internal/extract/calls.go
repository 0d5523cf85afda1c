package extract

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/dartgraph/internal/lang"
	"github.com/DeusData/dartgraph/internal/parser"
)

// findCalls reports one CallEntity per @name capture. Dart has no calls
// pattern yet, so the result is empty until one is registered.
func (e *Extractor) findCalls(root *tree_sitter.Node, source []byte, isDependency bool) []CallEntity {
	out := []CallEntity{}
	for _, c := range e.captures(lang.Calls, root, source) {
		if c.label != "name" {
			continue
		}
		full := c.node
		if p := c.node.Parent(); p != nil {
			full = p
		}
		out = append(out, CallEntity{
			Name:         parser.NodeText(c.node, source),
			FullName:     parser.NodeText(full, source),
			LineNumber:   parser.Line(c.node.StartPosition().Row),
			Args:         []string{},
			Lang:         e.language,
			IsDependency: isDependency,
		})
	}
	return out
}
