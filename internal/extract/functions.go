package extract

import (
	"log/slog"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/dartgraph/internal/lang"
	"github.com/DeusData/dartgraph/internal/parser"
)

// functionBucket accumulates the captures belonging to one signature.
type functionBucket struct {
	signature *tree_sitter.Node
	name      string
	params    *tree_sitter.Node
}

// findFunctions groups function captures by signature span and turns each
// group into a FunctionEntity. Signatures without a resolvable name are
// dropped.
func (e *Extractor) findFunctions(root *tree_sitter.Node, source []byte, isDependency bool) []FunctionEntity {
	out := []FunctionEntity{}
	captures := e.captures(lang.Functions, root, source)
	if len(captures) == 0 {
		return out
	}

	buckets := make(map[span]*functionBucket)
	var order []span
	bucket := func(sig *tree_sitter.Node) *functionBucket {
		key := spanOf(sig)
		b, ok := buckets[key]
		if !ok {
			b = &functionBucket{signature: sig}
			buckets[key] = b
			order = append(order, key)
		}
		return b
	}

	for _, c := range captures {
		sig := enclosingSignature(c.node)
		if sig == nil {
			slog.Debug("extract.function.orphan", "label", c.label, "kind", c.node.Kind())
			continue
		}
		b := bucket(sig)
		switch c.label {
		case "function_node":
		case "name":
			b.name = parser.NodeText(c.node, source)
		case "params":
			b.params = c.node
		default:
			slog.Debug("extract.function.label", "label", c.label)
		}
	}

	for _, key := range order {
		if fn, ok := e.buildFunction(buckets[key], source, isDependency); ok {
			out = append(out, fn)
		}
	}
	return out
}

func (e *Extractor) buildFunction(b *functionBucket, source []byte, isDependency bool) (FunctionEntity, bool) {
	sig := b.signature
	name := resolveFunctionName(sig, b.name, source)
	if name == "" {
		return FunctionEntity{}, false
	}

	container := containerOf(sig)
	body := bodyOf(container, sig)
	end := container
	if body != nil {
		end = body
	}

	doc := leadingComment(sig, source)
	if doc == nil && container.Id() != sig.Id() {
		doc = leadingComment(container, source)
	}

	text := functionSource(sig, body, source)

	return FunctionEntity{
		Name:                 name,
		LineNumber:           parser.Line(container.StartPosition().Row),
		EndLine:              parser.Line(end.EndPosition().Row),
		Args:                 parameterNames(b.params, source),
		Source:               text,
		SourceCode:           text,
		Docstring:            doc,
		CyclomaticComplexity: complexity(container, body),
		Decorators:           []string{},
		Lang:                 e.language,
		IsDependency:         isDependency,
	}, true
}

// enclosingSignature walks up from n to the nearest callable signature,
// including n itself.
func enclosingSignature(n *tree_sitter.Node) *tree_sitter.Node {
	for cur := n; cur != nil; cur = cur.Parent() {
		if kindOf(cur.Kind()).isSignature() {
			return cur
		}
	}
	return nil
}

// resolveFunctionName prefers the captured name, except for constructors
// where the dotted form (Point.named) always wins.
func resolveFunctionName(sig *tree_sitter.Node, captured string, source []byte) string {
	derived := derivedName(sig, source)
	if captured == "" {
		return derived
	}
	if kindOf(sig.Kind()) == KindConstructorSignature && derived != "" {
		return derived
	}
	return captured
}

func derivedName(sig *tree_sitter.Node, source []byte) string {
	switch kindOf(sig.Kind()) {
	case KindFunctionSignature, KindGetterSignature, KindSetterSignature:
		if nm := sig.ChildByFieldName("name"); nm != nil {
			return parser.NodeText(nm, source)
		}
	case KindConstructorSignature:
		return dottedName(sig, source)
	}
	return ""
}

// dottedName joins the leading run of identifier and "." children.
func dottedName(sig *tree_sitter.Node, source []byte) string {
	var sb strings.Builder
	for i := uint(0); i < sig.ChildCount(); i++ {
		child := sig.Child(i)
		if child == nil {
			break
		}
		k := kindOf(child.Kind())
		if k != KindIdentifier && k != KindDot {
			break
		}
		sb.WriteString(parser.NodeText(child, source))
	}
	return sb.String()
}

// parameterNames returns parameter names in source order. Nested optional
// and named parameter groups are flattened; unnamed parameters are skipped.
func parameterNames(list *tree_sitter.Node, source []byte) []string {
	names := []string{}
	if list == nil {
		return names
	}
	for i := uint(0); i < list.NamedChildCount(); i++ {
		child := list.NamedChild(i)
		if child == nil {
			continue
		}
		switch k := kindOf(child.Kind()); {
		case k.isParameter():
			if name := parameterName(child, source); name != "" {
				names = append(names, name)
			}
		case k == KindFormalParameterList || k == KindOptionalFormalParameters:
			names = append(names, parameterNames(child, source)...)
		}
	}
	return names
}

// parameterName reads the name field of a typed parameter, or the trailing
// identifier of a bare one. Initializing parameters (this.x, super.key) are
// named by the identifier inside their constructor_param.
func parameterName(param *tree_sitter.Node, source []byte) string {
	if nm := param.ChildByFieldName("name"); nm != nil {
		return parser.NodeText(nm, source)
	}
	if last := trailingIdentifier(param); last != nil {
		return parser.NodeText(last, source)
	}
	for i := uint(0); i < param.NamedChildCount(); i++ {
		child := param.NamedChild(i)
		if child == nil || kindOf(child.Kind()) != KindConstructorParam {
			continue
		}
		if last := trailingIdentifier(child); last != nil {
			return parser.NodeText(last, source)
		}
	}
	return ""
}

func trailingIdentifier(n *tree_sitter.Node) *tree_sitter.Node {
	var last *tree_sitter.Node
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		if child != nil && kindOf(child.Kind()) == KindIdentifier {
			last = child
		}
	}
	return last
}

// containerOf returns the nearest wrapper ancestor of sig, or sig itself.
// The search stops at the first enclosing function body so local functions
// are never attributed to an outer declaration.
func containerOf(sig *tree_sitter.Node) *tree_sitter.Node {
	for p := sig.Parent(); p != nil; p = p.Parent() {
		k := kindOf(p.Kind())
		if k == KindFunctionBody {
			break
		}
		if k.isContainer() {
			return p
		}
	}
	return sig
}

// bodyOf returns the function body following the container (methods) or the
// signature (top-level functions), if any.
func bodyOf(container, sig *tree_sitter.Node) *tree_sitter.Node {
	for _, candidate := range []*tree_sitter.Node{container.NextNamedSibling(), sig.NextNamedSibling()} {
		if candidate != nil && kindOf(candidate.Kind()) == KindFunctionBody {
			return candidate
		}
	}
	return nil
}

func functionSource(sig, body *tree_sitter.Node, source []byte) string {
	segments := []string{parser.NodeText(sig, source)}
	if body != nil {
		segments = append(segments, parser.NodeText(body, source))
	}
	kept := segments[:0]
	for _, s := range segments {
		if strings.TrimSpace(s) != "" {
			kept = append(kept, s)
		}
	}
	return strings.Join(kept, "\n")
}
