package extract

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/dartgraph/internal/lang"
	"github.com/DeusData/dartgraph/internal/parser"
)

// PreScanner builds a SymbolIndex from declaration names alone, without the
// full per-file extraction.
type PreScanner struct {
	language lang.Language
	query    *tree_sitter.Query
}

// NewPreScanner compiles the language's combined declaration pattern. If it
// does not compile, the scanner logs a warning and produces empty indexes.
func NewPreScanner(language lang.Language) (*PreScanner, error) {
	spec := lang.ForLanguage(language)
	if spec == nil {
		return nil, fmt.Errorf("no language spec for %s", language)
	}
	tsLang, err := parser.GetLanguage(language)
	if err != nil {
		return nil, err
	}
	q, err := compileQuery(tsLang, spec.PreScanQuery)
	if err != nil {
		slog.Warn("prescan.query.compile", "lang", language, "err", err)
		q = nil
	}
	return &PreScanner{language: language, query: q}, nil
}

// Close releases the compiled query.
func (s *PreScanner) Close() {
	if s.query != nil {
		s.query.Close()
		s.query = nil
	}
}

// Scan indexes files in order.
func (s *PreScanner) Scan(files []string) SymbolIndex {
	idx := SymbolIndex{}
	s.ScanInto(idx, files)
	return idx
}

// ScanInto adds the symbols declared in files to idx. A file that cannot be
// read or parsed is logged and contributes nothing; the rest still count.
func (s *PreScanner) ScanInto(idx SymbolIndex, files []string) {
	if s.query == nil {
		return
	}
	for _, f := range files {
		path := ResolvePath(f)
		symbols, err := s.scanFile(f)
		if err != nil {
			slog.Warn("prescan.file.err", "path", f, "err", err)
			continue
		}
		for _, sym := range symbols {
			idx.Add(sym, path)
		}
	}
}

// scanFile returns the declared names in one file in source order.
func (s *PreScanner) scanFile(path string) (symbols []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			symbols, err = nil, fmt.Errorf("prescan panic: %v", r)
		}
	}()

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	source = bytes.ToValidUTF8(parser.StripBOM(source), nil)
	tree, err := parser.Parse(s.language, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	for _, c := range collectCaptures(s.query, tree.RootNode(), source) {
		if c.label != "name" {
			continue
		}
		symbols = append(symbols, parser.NodeText(c.node, source))
	}
	return symbols, nil
}

// ResolvePath returns the absolute, symlink-free form of path, or the best
// approximation available when it cannot be fully resolved.
func ResolvePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}
