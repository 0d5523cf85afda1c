package lang

func init() {
	Register(&LanguageSpec{
		Language:       Dart,
		FileExtensions: []string{".dart"},
		Queries: map[Category]string{
			Functions: dartFunctionsQuery,
			Classes:   dartClassesQuery,
			Imports:   dartImportsQuery,
			Comments:  dartCommentsQuery,
			// No coverage yet: call sites and variables are left uncompiled.
			Calls:     "",
			Variables: "",
		},
		PreScanQuery: dartPreScanQuery,
	})
}

const dartFunctionsQuery = `
(function_signature
	name: (identifier) @name
	(formal_parameter_list)? @params
) @function_node

(getter_signature
	name: (identifier) @name
) @function_node

(setter_signature
	name: (identifier) @name
	(formal_parameter_list)? @params
) @function_node

(constructor_signature
	name: (identifier) @name
	(formal_parameter_list)? @params
) @function_node
`

const dartClassesQuery = `
(class_definition
	name: (identifier) @name
) @class

(mixin_declaration
	(identifier) @name
) @class

(enum_declaration
	name: (identifier) @name
) @class

(extension_declaration
	name: (identifier)? @name
) @class
`

const dartImportsQuery = `
(import_or_export
	(library_import
		(import_specification
			(configurable_uri
				(uri
					(string_literal) @path)))))

(import_or_export
	(library_export
		(configurable_uri
			(uri
				(string_literal) @path))))

(part_directive
	(uri (string_literal) @path))

(part_of_directive
	(uri (string_literal) @path))
`

const dartCommentsQuery = `
(comment) @comment
`

const dartPreScanQuery = `
(class_definition
	name: (identifier) @name)

(mixin_declaration
	(identifier) @name)

(enum_declaration
	name: (identifier) @name)

(extension_declaration
	name: (identifier)? @name)

(function_signature
	name: (identifier) @name)

(getter_signature
	name: (identifier) @name)

(setter_signature
	name: (identifier) @name)

(constructor_signature
	name: (identifier) @name)
`
