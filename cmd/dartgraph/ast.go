package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/dartgraph/internal/lang"
	"github.com/DeusData/dartgraph/internal/parser"
)

func newASTCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ast FILE",
		Short: "Dump the tree-sitter syntax tree of a Dart file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			source = parser.StripBOM(source)
			tree, err := parser.Parse(lang.Dart, source)
			if err != nil {
				return err
			}
			defer tree.Close()
			printAST(cmd.OutOrStdout(), tree.RootNode(), source, 0)
			return nil
		},
	}
}

func printAST(w io.Writer, node *tree_sitter.Node, source []byte, indent int) {
	if node == nil {
		return
	}
	prefix := strings.Repeat("  ", indent)
	parentKind := "nil"
	if node.Parent() != nil {
		parentKind = node.Parent().Kind()
	}
	text := string(source[node.StartByte():node.EndByte()])
	if len(text) > 60 {
		text = text[:60] + "..."
	}
	fmt.Fprintf(w, "%s%s (parent=%s) [%d] %q\n", prefix, node.Kind(), parentKind, parser.Line(node.StartPosition().Row), text)
	for i := uint(0); i < node.ChildCount(); i++ {
		printAST(w, node.Child(i), source, indent+1)
	}
}
