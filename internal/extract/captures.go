package extract

import (
	"sort"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// capture is one (node, label) pair produced by a query.
type capture struct {
	node  *tree_sitter.Node
	label string
}

type captureKey struct {
	id    uintptr
	index uint32
}

// collectCaptures runs q over root and returns every capture ordered by the
// node's start byte. A node captured under the same label by several matches
// is reported once.
func collectCaptures(q *tree_sitter.Query, root *tree_sitter.Node, source []byte) []capture {
	if q == nil || root == nil {
		return nil
	}

	cursor := tree_sitter.NewQueryCursor()
	defer cursor.Close()

	names := q.CaptureNames()
	seen := make(map[captureKey]bool)
	var out []capture

	matches := cursor.Matches(q, root, source)
	for match := matches.Next(); match != nil; match = matches.Next() {
		for _, c := range match.Captures {
			node := c.Node
			key := captureKey{id: node.Id(), index: c.Index}
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, capture{node: &node, label: names[c.Index]})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].node.StartByte() < out[j].node.StartByte()
	})
	return out
}

// span identifies a node by its byte range rather than object identity.
type span struct {
	start, end uint
}

func spanOf(n *tree_sitter.Node) span {
	return span{start: n.StartByte(), end: n.EndByte()}
}
