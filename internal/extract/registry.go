package extract

import (
	"errors"
	"fmt"
	"log/slog"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/DeusData/dartgraph/internal/lang"
)

// Status describes whether a category's pattern is usable.
type Status int

const (
	// StatusCompiled means the category has a working query.
	StatusCompiled Status = iota
	// StatusUnsupported means no pattern has been authored for the category.
	StatusUnsupported
	// StatusFailed means a pattern exists but did not compile against the grammar.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusCompiled:
		return "compiled"
	case StatusUnsupported:
		return "unsupported"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ErrQueryUnavailable is returned by Registry.Err for every category that has
// no usable query.
var ErrQueryUnavailable = errors.New("query unavailable")

// QueryError records why a category's pattern failed to compile.
type QueryError struct {
	Category lang.Category
	Err      error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("compile %s query: %v", e.Category, e.Err)
}

func (e *QueryError) Unwrap() []error {
	return []error{ErrQueryUnavailable, e.Err}
}

// Registry holds one compiled query per category. A category whose pattern
// failed to compile stays disabled for the registry's lifetime.
type Registry struct {
	queries map[lang.Category]*tree_sitter.Query
	status  map[lang.Category]Status
	errs    map[lang.Category]error
}

// NewRegistry compiles patterns against tsLang. Compile failures are logged
// and recorded, never returned.
func NewRegistry(tsLang *tree_sitter.Language, patterns map[lang.Category]string) *Registry {
	r := &Registry{
		queries: make(map[lang.Category]*tree_sitter.Query, len(patterns)),
		status:  make(map[lang.Category]Status, len(patterns)),
		errs:    make(map[lang.Category]error),
	}
	for _, c := range lang.AllCategories() {
		pattern := patterns[c]
		if pattern == "" {
			r.status[c] = StatusUnsupported
			r.errs[c] = fmt.Errorf("%s: %w", c, ErrQueryUnavailable)
			continue
		}
		q, err := compileQuery(tsLang, pattern)
		if err != nil {
			slog.Warn("extract.query.compile", "category", c, "err", err)
			r.status[c] = StatusFailed
			r.errs[c] = &QueryError{Category: c, Err: err}
			continue
		}
		r.queries[c] = q
		r.status[c] = StatusCompiled
	}
	return r
}

// compileQuery wraps tree_sitter.NewQuery so that a nil *QueryError never
// leaks as a non-nil error and a panicking binding is contained.
func compileQuery(tsLang *tree_sitter.Language, pattern string) (q *tree_sitter.Query, err error) {
	defer func() {
		if r := recover(); r != nil {
			q, err = nil, fmt.Errorf("query compile panic: %v", r)
		}
	}()
	if tsLang == nil {
		return nil, errors.New("nil language")
	}
	query, qErr := tree_sitter.NewQuery(tsLang, pattern)
	if qErr != nil {
		return nil, qErr
	}
	return query, nil
}

// Query returns the compiled query for c, or nil when c is unsupported or
// failed to compile.
func (r *Registry) Query(c lang.Category) *tree_sitter.Query {
	return r.queries[c]
}

// Status reports the state of category c.
func (r *Registry) Status(c lang.Category) Status {
	s, ok := r.status[c]
	if !ok {
		return StatusUnsupported
	}
	return s
}

// Err returns nil for a compiled category, otherwise an error matching
// ErrQueryUnavailable. Failed categories return a *QueryError.
func (r *Registry) Err(c lang.Category) error {
	if r.Status(c) == StatusCompiled {
		return nil
	}
	if err, ok := r.errs[c]; ok {
		return err
	}
	return fmt.Errorf("%s: %w", c, ErrQueryUnavailable)
}

// Close releases the compiled queries.
func (r *Registry) Close() {
	for c, q := range r.queries {
		q.Close()
		delete(r.queries, c)
	}
}
