package extract

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/dartgraph/internal/parser"
)

// leadingComment returns the nearest comment preceding node, stepping over
// annotations. Any other sibling ends the search. Only one comment node is
// returned; consecutive line comments are not joined.
func leadingComment(node *tree_sitter.Node, source []byte) *string {
	for prev := node.PrevSibling(); prev != nil; prev = prev.PrevSibling() {
		k := kindOf(prev.Kind())
		switch {
		case k.isComment():
			doc := strings.TrimSpace(parser.NodeText(prev, source))
			return &doc
		case k.isDecorative():
			continue
		default:
			return nil
		}
	}
	return nil
}
