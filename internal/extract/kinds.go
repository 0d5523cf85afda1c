package extract

// Kind is the closed set of tree-sitter-dart node kinds the extractor reasons
// about. Anything else maps to KindUnknown and is never matched implicitly.
type Kind int

const (
	KindUnknown Kind = iota

	// callable signatures
	KindFunctionSignature
	KindGetterSignature
	KindSetterSignature
	KindConstructorSignature

	// wrappers and bodies
	KindMethodSignature
	KindDeclaration
	KindFunctionBody

	// parameters
	KindFormalParameterList
	KindOptionalFormalParameters
	KindFormalParameter
	KindNormalFormalParameter
	KindSimpleFormalParameter
	KindConstructorParam

	// tokens
	KindIdentifier
	KindDot
	KindStringLiteral

	// trivia
	KindComment
	KindDocumentationComment
	KindMetadata
	KindAnnotation

	// type-level declarations
	KindClassDefinition
	KindMixinDeclaration
	KindEnumDeclaration
	KindExtensionDeclaration

	// directives
	KindImportOrExport
	KindPartDirective
	KindPartOfDirective

	// variables
	KindInitializedIdentifier
	KindInitializedVariableDefinition
	KindStaticFinalDeclaration

	// decision points
	KindIfStatement
	KindForStatement
	KindWhileStatement
	KindDoStatement
	KindSwitchStatement
	KindCaseClause
	KindDefaultClause
	KindSwitchStatementCase
	KindSwitchStatementDefault
	KindConditionalExpression
	KindLogicalOrExpression
	KindLogicalAndExpression
	KindBinaryExpression
	KindTryStatement
	KindCatchClause
)

var kindNames = map[string]Kind{
	"function_signature":    KindFunctionSignature,
	"getter_signature":      KindGetterSignature,
	"setter_signature":      KindSetterSignature,
	"constructor_signature": KindConstructorSignature,

	"method_signature": KindMethodSignature,
	"declaration":      KindDeclaration,
	"function_body":    KindFunctionBody,

	"formal_parameter_list":      KindFormalParameterList,
	"optional_formal_parameters": KindOptionalFormalParameters,
	"formal_parameter":           KindFormalParameter,
	"normal_formal_parameter":    KindNormalFormalParameter,
	"simple_formal_parameter":    KindSimpleFormalParameter,
	"constructor_param":          KindConstructorParam,

	"identifier":     KindIdentifier,
	".":              KindDot,
	"string_literal": KindStringLiteral,

	"comment":               KindComment,
	"documentation_comment": KindDocumentationComment,
	"metadata":              KindMetadata,
	"annotation":            KindAnnotation,

	"class_definition":      KindClassDefinition,
	"mixin_declaration":     KindMixinDeclaration,
	"enum_declaration":      KindEnumDeclaration,
	"extension_declaration": KindExtensionDeclaration,

	"import_or_export":  KindImportOrExport,
	"part_directive":    KindPartDirective,
	"part_of_directive": KindPartOfDirective,

	"initialized_identifier":          KindInitializedIdentifier,
	"initialized_variable_definition": KindInitializedVariableDefinition,
	"static_final_declaration":        KindStaticFinalDeclaration,

	"if_statement":             KindIfStatement,
	"for_statement":            KindForStatement,
	"while_statement":          KindWhileStatement,
	"do_statement":             KindDoStatement,
	"switch_statement":         KindSwitchStatement,
	"case_clause":              KindCaseClause,
	"default_clause":           KindDefaultClause,
	"switch_statement_case":    KindSwitchStatementCase,
	"switch_statement_default": KindSwitchStatementDefault,
	"conditional_expression":   KindConditionalExpression,
	"logical_or_expression":    KindLogicalOrExpression,
	"logical_and_expression":   KindLogicalAndExpression,
	"binary_expression":        KindBinaryExpression,
	"try_statement":            KindTryStatement,
	"catch_clause":             KindCatchClause,
}

func kindOf(name string) Kind {
	return kindNames[name]
}

// String returns the grammar's node kind name.
func (k Kind) String() string {
	for name, kind := range kindNames {
		if kind == k {
			return name
		}
	}
	return "unknown"
}

func (k Kind) isSignature() bool {
	switch k {
	case KindFunctionSignature, KindGetterSignature, KindSetterSignature, KindConstructorSignature:
		return true
	default:
		return false
	}
}

// isContainer reports wrapper kinds that enclose a signature together with
// its modifiers.
func (k Kind) isContainer() bool {
	switch k {
	case KindMethodSignature, KindGetterSignature, KindSetterSignature,
		KindConstructorSignature, KindDeclaration:
		return true
	default:
		return false
	}
}

func (k Kind) isComment() bool {
	return k == KindComment || k == KindDocumentationComment
}

// isDecorative reports siblings the documentation linker steps over.
func (k Kind) isDecorative() bool {
	return k == KindMetadata || k == KindAnnotation
}

func (k Kind) isTypeDeclaration() bool {
	switch k {
	case KindClassDefinition, KindMixinDeclaration, KindEnumDeclaration, KindExtensionDeclaration:
		return true
	default:
		return false
	}
}

func (k Kind) isDirective() bool {
	switch k {
	case KindImportOrExport, KindPartDirective, KindPartOfDirective:
		return true
	default:
		return false
	}
}

func (k Kind) isVariableDeclaration() bool {
	switch k {
	case KindInitializedIdentifier, KindInitializedVariableDefinition, KindStaticFinalDeclaration:
		return true
	default:
		return false
	}
}

func (k Kind) isParameter() bool {
	switch k {
	case KindFormalParameter, KindNormalFormalParameter, KindSimpleFormalParameter:
		return true
	default:
		return false
	}
}

func (k Kind) isDecisionPoint() bool {
	switch k {
	case KindIfStatement, KindForStatement, KindWhileStatement, KindDoStatement,
		KindSwitchStatement, KindCaseClause, KindDefaultClause,
		KindSwitchStatementCase, KindSwitchStatementDefault,
		KindConditionalExpression,
		KindLogicalOrExpression, KindLogicalAndExpression, KindBinaryExpression,
		KindTryStatement, KindCatchClause:
		return true
	default:
		return false
	}
}
