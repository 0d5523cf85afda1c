// Package scan runs the Dart extractor over a whole project: discovery,
// symbol pre-scan and per-file extraction, in parallel.
package scan

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/zeebo/xxh3"
	"golang.org/x/sync/errgroup"

	"github.com/DeusData/dartgraph/internal/config"
	"github.com/DeusData/dartgraph/internal/discover"
	"github.com/DeusData/dartgraph/internal/extract"
	"github.com/DeusData/dartgraph/internal/lang"
)

// Result is the output of one project scan.
type Result struct {
	Root    string               `json:"root"`
	Files   []extract.FileRecord `json:"files"`
	Symbols extract.SymbolIndex  `json:"symbols"`
	Stats   Stats                `json:"stats"`
}

// Stats summarises a scan.
type Stats struct {
	Files     int   `json:"files"`
	Cached    int   `json:"cached"`
	Failed    int   `json:"failed"`
	Symbols   int   `json:"symbols"`
	ElapsedMS int64 `json:"elapsed_ms"`
}

type cacheEntry struct {
	hash         uint64
	isDependency bool
	record       extract.FileRecord
}

// Scanner extracts projects and remembers records by content hash, so an
// unchanged file is not parsed twice across runs.
type Scanner struct {
	cfg *config.Config

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// New creates a Scanner. A nil cfg means config.Default().
func New(cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Scanner{cfg: cfg, cache: make(map[string]cacheEntry)}
}

// Run scans root with a fresh Scanner.
func Run(ctx context.Context, root string, cfg *config.Config) (*Result, error) {
	return New(cfg).Run(ctx, root)
}

// Run discovers the Dart files under root, builds the symbol index and
// extracts every file. Records are ordered by relative path.
func (s *Scanner) Run(ctx context.Context, root string) (*Result, error) {
	start := time.Now()

	files, err := discover.Discover(ctx, root, s.cfg.DiscoverOptions())
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}
	slog.Info("scan.discover", "root", root, "files", len(files))

	symbols, err := PreScan(ctx, discover.Paths(files), s.cfg.EffectiveWorkers())
	if err != nil {
		return nil, fmt.Errorf("prescan: %w", err)
	}

	records, stats, err := s.extractAll(ctx, files)
	if err != nil {
		return nil, err
	}
	stats.Files = len(files)
	stats.Symbols = len(symbols)
	stats.ElapsedMS = time.Since(start).Milliseconds()

	slog.Info("scan.done",
		"files", stats.Files,
		"cached", stats.Cached,
		"failed", stats.Failed,
		"symbols", stats.Symbols,
		"elapsed", time.Since(start))

	return &Result{Root: root, Files: records, Symbols: symbols, Stats: stats}, nil
}

// extractAll parses files across workers. Each worker owns an Extractor.
func (s *Scanner) extractAll(ctx context.Context, files []discover.FileInfo) ([]extract.FileRecord, Stats, error) {
	var stats Stats
	records := make([]extract.FileRecord, len(files))
	if len(files) == 0 {
		return records, stats, nil
	}

	type outcome struct {
		cached bool
		failed bool
	}
	outcomes := make([]outcome, len(files))

	numWorkers := s.cfg.EffectiveWorkers()
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	jobs := make(chan int)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for i := range files {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for range numWorkers {
		g.Go(func() error {
			ex, err := extract.New(extract.Options{Language: lang.Dart})
			if err != nil {
				return err
			}
			defer ex.Close()

			for i := range jobs {
				rec, cached, failed := s.extractOne(ex, files[i])
				records[i] = rec
				outcomes[i] = outcome{cached: cached, failed: failed}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, stats, err
	}

	for _, o := range outcomes {
		if o.cached {
			stats.Cached++
		}
		if o.failed {
			stats.Failed++
		}
	}
	return records, stats, nil
}

func (s *Scanner) extractOne(ex *extract.Extractor, f discover.FileInfo) (rec extract.FileRecord, cached, failed bool) {
	source, err := os.ReadFile(f.Path)
	if err != nil {
		slog.Warn("scan.read.err", "path", f.Path, "err", err)
		return extract.EmptyRecord(f.Path, ex.Language(), f.IsDependency), false, true
	}

	hash := xxh3.Hash(source)
	if e, ok := s.lookup(f.Path); ok && e.hash == hash && e.isDependency == f.IsDependency {
		return e.record, true, false
	}

	rec, err = ex.ParseSource(f.Path, source, f.IsDependency)
	if err != nil {
		slog.Warn("scan.parse.err", "path", f.Path, "err", err)
		return rec, false, true
	}
	s.store(f.Path, cacheEntry{hash: hash, isDependency: f.IsDependency, record: rec})
	return rec, false, false
}

func (s *Scanner) lookup(path string) (cacheEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.cache[path]
	return e, ok
}

func (s *Scanner) store(path string, e cacheEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[path] = e
}

// PreScan builds the symbol index for files using up to workers goroutines.
// Each file is indexed privately and the partials are merged in file order,
// so the result matches a sequential pass.
func PreScan(ctx context.Context, files []string, workers int) (extract.SymbolIndex, error) {
	partials := make([]extract.SymbolIndex, len(files))
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	next := make(chan int)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(next)
		for i := range files {
			select {
			case next <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for range workers {
		g.Go(func() error {
			ps, err := extract.NewPreScanner(lang.Dart)
			if err != nil {
				return err
			}
			defer ps.Close()

			for i := range next {
				partial := extract.SymbolIndex{}
				ps.ScanInto(partial, files[i:i+1])
				partials[i] = partial
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	idx := extract.SymbolIndex{}
	for _, p := range partials {
		idx.Merge(p)
	}
	return idx, nil
}

// SortedSymbols returns the index keys in lexical order.
func SortedSymbols(idx extract.SymbolIndex) []string {
	names := make([]string, 0, len(idx))
	for name := range idx {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
