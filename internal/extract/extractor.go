// Package extract derives functions, classes, imports, variables and call
// sites from Dart syntax trees, and builds the symbol-to-file pre-scan index.
package extract

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/dartgraph/internal/lang"
	"github.com/DeusData/dartgraph/internal/parser"
)

// Options configures an Extractor.
type Options struct {
	// Language defaults to lang.Dart.
	Language lang.Language
	// Patterns overrides the registered pattern for individual categories.
	// An empty string marks the category as not yet supported.
	Patterns map[lang.Category]string
}

// Extractor turns source files into FileRecords. Each instance owns its
// compiled queries; use one Extractor per goroutine.
type Extractor struct {
	language lang.Language
	registry *Registry
}

// New compiles the language's queries. It fails only when the language has
// no registered spec or grammar; broken patterns disable their category.
func New(opts Options) (*Extractor, error) {
	language := opts.Language
	if language == "" {
		language = lang.Dart
	}
	spec := lang.ForLanguage(language)
	if spec == nil {
		return nil, fmt.Errorf("no language spec for %s", language)
	}
	tsLang, err := parser.GetLanguage(language)
	if err != nil {
		return nil, err
	}

	patterns := make(map[lang.Category]string, len(spec.Queries))
	for c, p := range spec.Queries {
		patterns[c] = p
	}
	for c, p := range opts.Patterns {
		patterns[c] = p
	}

	return &Extractor{
		language: language,
		registry: NewRegistry(tsLang, patterns),
	}, nil
}

// Language returns the language tag stamped on every record.
func (e *Extractor) Language() lang.Language {
	return e.language
}

// Registry exposes the compiled query registry.
func (e *Extractor) Registry() *Registry {
	return e.registry
}

// Close releases compiled queries.
func (e *Extractor) Close() {
	e.registry.Close()
}

// ParseFile reads and extracts path. Read and parse failures are logged and
// produce a record with every entity list empty.
func (e *Extractor) ParseFile(path string, isDependency bool) FileRecord {
	source, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("extract.read.err", "path", path, "err", err)
		return EmptyRecord(path, e.language, isDependency)
	}
	rec, err := e.ParseSource(path, source, isDependency)
	if err != nil {
		slog.Warn("extract.parse.err", "path", path, "err", err)
	}
	return rec
}

// ParseSource extracts entities from in-memory source. On error the returned
// record is still valid, with empty entity lists.
func (e *Extractor) ParseSource(path string, source []byte, isDependency bool) (rec FileRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec = EmptyRecord(path, e.language, isDependency)
			err = fmt.Errorf("extract %s: %v", path, r)
		}
	}()

	source = bytes.ToValidUTF8(parser.StripBOM(source), nil)

	tree, err := parser.Parse(e.language, source)
	if err != nil {
		return EmptyRecord(path, e.language, isDependency), fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	return FileRecord{
		FilePath:      path,
		Functions:     e.findFunctions(root, source, isDependency),
		Classes:       e.findClasses(root, source, isDependency),
		Variables:     e.findVariables(root, source, isDependency),
		Imports:       e.findImports(root, source, isDependency),
		FunctionCalls: e.findCalls(root, source, isDependency),
		IsDependency:  isDependency,
		Lang:          e.language,
	}, nil
}

// captures runs category c's query over root. Unavailable categories yield
// no captures.
func (e *Extractor) captures(c lang.Category, root *tree_sitter.Node, source []byte) []capture {
	return collectCaptures(e.registry.Query(c), root, source)
}
