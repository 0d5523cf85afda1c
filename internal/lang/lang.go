package lang

// Language represents a supported programming language.
type Language string

const (
	Dart Language = "dart"
)

// AllLanguages returns all supported languages.
func AllLanguages() []Language {
	return []Language{Dart}
}

// Category names one family of structural pattern queries.
type Category string

const (
	Functions Category = "functions"
	Classes   Category = "classes"
	Imports   Category = "imports"
	Comments  Category = "comments"
	Calls     Category = "calls"
	Variables Category = "variables"
)

// AllCategories returns every category in the order extraction runs them.
func AllCategories() []Category {
	return []Category{Functions, Classes, Imports, Comments, Calls, Variables}
}

// LanguageSpec defines the tree-sitter patterns for a language.
type LanguageSpec struct {
	Language       Language
	FileExtensions []string

	// Queries holds one structural pattern per category. A category that is
	// present with an empty pattern has no coverage authored yet; that is
	// distinct from a pattern that fails to compile.
	Queries map[Category]string

	// PreScanQuery matches every nameable declaration in a single pass.
	// Matched identifiers are captured as @name.
	PreScanQuery string
}

// registry maps file extensions to language specs.
var registry = map[string]*LanguageSpec{}

// Register adds a LanguageSpec to the global registry.
func Register(spec *LanguageSpec) {
	for _, ext := range spec.FileExtensions {
		registry[ext] = spec
	}
}

// ForExtension returns the LanguageSpec for a file extension (e.g. ".dart").
func ForExtension(ext string) *LanguageSpec {
	return registry[ext]
}

// ForLanguage returns the LanguageSpec for a language.
func ForLanguage(lang Language) *LanguageSpec {
	for _, spec := range registry {
		if spec.Language == lang {
			return spec
		}
	}
	return nil
}

// LanguageForExtension returns the Language for a file extension.
func LanguageForExtension(ext string) (Language, bool) {
	spec := registry[ext]
	if spec == nil {
		return "", false
	}
	return spec.Language, true
}
