package extract

import tree_sitter "github.com/tree-sitter/go-tree-sitter"

// complexity approximates cyclomatic complexity as one plus the number of
// decision-point nodes under the given roots. Nil roots are ignored.
func complexity(roots ...*tree_sitter.Node) int {
	total := 1
	for _, r := range roots {
		total += decisionPoints(r)
	}
	return total
}

func decisionPoints(n *tree_sitter.Node) int {
	if n == nil {
		return 0
	}
	count := 0
	if kindOf(n.Kind()).isDecisionPoint() {
		count = 1
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		count += decisionPoints(n.Child(i))
	}
	return count
}
