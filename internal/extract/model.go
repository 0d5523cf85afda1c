package extract

import "github.com/DeusData/dartgraph/internal/lang"

// FunctionEntity is a callable declaration: top-level function, method,
// getter, setter or constructor.
type FunctionEntity struct {
	Name                 string        `json:"name"`
	LineNumber           int           `json:"line_number"`
	EndLine              int           `json:"end_line"`
	Args                 []string      `json:"args"`
	Source               string        `json:"source"`
	SourceCode           string        `json:"source_code"`
	Docstring            *string       `json:"docstring"`
	CyclomaticComplexity int           `json:"cyclomatic_complexity"`
	Context              *string       `json:"context"`
	ContextType          *string       `json:"context_type"`
	ClassContext         *string       `json:"class_context"`
	Decorators           []string      `json:"decorators"`
	Lang                 lang.Language `json:"lang"`
	IsDependency         bool          `json:"is_dependency"`
}

// ClassEntity is a class, mixin, enum or extension declaration.
type ClassEntity struct {
	Name         string        `json:"name"`
	LineNumber   int           `json:"line_number"`
	EndLine      int           `json:"end_line"`
	Bases        []string      `json:"bases"`
	Source       string        `json:"source"`
	Docstring    *string       `json:"docstring"`
	Context      *string       `json:"context"`
	Decorators   []string      `json:"decorators"`
	Lang         lang.Language `json:"lang"`
	IsDependency bool          `json:"is_dependency"`
}

// ImportEntity is one import, export or part directive target.
type ImportEntity struct {
	Name           string        `json:"name"`
	FullImportName string        `json:"full_import_name"`
	LineNumber     int           `json:"line_number"`
	Alias          *string       `json:"alias"`
	Lang           lang.Language `json:"lang"`
	IsDependency   bool          `json:"is_dependency"`
}

// VariableEntity is a variable declaration.
type VariableEntity struct {
	Name         string        `json:"name"`
	LineNumber   int           `json:"line_number"`
	Value        *string       `json:"value"`
	Type         *string       `json:"type"`
	Context      *string       `json:"context"`
	ClassContext *string       `json:"class_context"`
	Lang         lang.Language `json:"lang"`
	IsDependency bool          `json:"is_dependency"`
}

// CallEntity is a call site.
type CallEntity struct {
	Name            string        `json:"name"`
	FullName        string        `json:"full_name"`
	LineNumber      int           `json:"line_number"`
	Args            []string      `json:"args"`
	InferredObjType *string       `json:"inferred_obj_type"`
	Context         *string       `json:"context"`
	ClassContext    *string       `json:"class_context"`
	Lang            lang.Language `json:"lang"`
	IsDependency    bool          `json:"is_dependency"`
}

// FileRecord is the aggregated extraction result for one source file. Its
// JSON shape is the contract with downstream graph construction.
type FileRecord struct {
	FilePath      string           `json:"file_path"`
	Functions     []FunctionEntity `json:"functions"`
	Classes       []ClassEntity    `json:"classes"`
	Variables     []VariableEntity `json:"variables"`
	Imports       []ImportEntity   `json:"imports"`
	FunctionCalls []CallEntity     `json:"function_calls"`
	IsDependency  bool             `json:"is_dependency"`
	Lang          lang.Language    `json:"lang"`
}

// EmptyRecord is the minimally valid record returned when a file cannot be
// read or parsed. Every list is non-nil so it encodes as [].
func EmptyRecord(path string, language lang.Language, isDependency bool) FileRecord {
	return FileRecord{
		FilePath:      path,
		Functions:     []FunctionEntity{},
		Classes:       []ClassEntity{},
		Variables:     []VariableEntity{},
		Imports:       []ImportEntity{},
		FunctionCalls: []CallEntity{},
		IsDependency:  isDependency,
		Lang:          language,
	}
}

// SymbolIndex maps a declared symbol name to the absolute paths of the files
// declaring it, in first-seen order and without duplicates.
type SymbolIndex map[string][]string

// Add appends path under symbol unless it is already recorded.
func (idx SymbolIndex) Add(symbol, path string) {
	for _, p := range idx[symbol] {
		if p == path {
			return
		}
	}
	idx[symbol] = append(idx[symbol], path)
}

// Merge folds other into idx, preserving idx's order and appending unseen
// paths in other's order.
func (idx SymbolIndex) Merge(other SymbolIndex) {
	for symbol, paths := range other {
		for _, p := range paths {
			idx.Add(symbol, p)
		}
	}
}
