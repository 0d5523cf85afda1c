package discover

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/DeusData/dartgraph/internal/lang"
)

// IGNORE_PATTERNS are directory names to skip during discovery.
var IGNORE_PATTERNS = map[string]bool{
	".dart_tool": true, ".fvm": true, ".git": true, ".hg": true,
	".idea": true, ".svn": true, ".vscode": true, "Pods": true,
	"build": true, "coverage": true, "node_modules": true,
}

// IGNORE_SUFFIXES are file suffixes to skip. Generated Dart sources are
// indexed like any other file.
var IGNORE_SUFFIXES = map[string]bool{
	".tmp": true, "~": true, ".swp": true,
}

// IgnoreFileName is the per-project ignore file read from the root when
// Options.IgnoreFile is empty. It uses .gitignore syntax.
const IgnoreFileName = ".dartgraphignore"

// FileInfo represents a discovered source file.
type FileInfo struct {
	Path         string        // absolute path
	RelPath      string        // relative to repo root, slash-separated
	Language     lang.Language // detected language
	IsDependency bool          // matched a dependency pattern
}

// Options configures file discovery.
type Options struct {
	IgnoreFile       string   // path to an ignore file (optional)
	Ignore           []string // extra .gitignore-style patterns
	DependencyPaths  []string // .gitignore-style patterns marking dependency files
	RespectGitignore bool     // honour <root>/.gitignore
}

// shouldSkipDir returns true if the directory should be skipped during discovery.
func shouldSkipDir(name, rel string, extra *ignore.GitIgnore) bool {
	if IGNORE_PATTERNS[name] {
		return true
	}
	return extra != nil && extra.MatchesPath(rel+"/")
}

// Discover walks a repository and returns all Dart source files sorted by
// relative path.
func Discover(ctx context.Context, repoPath string, opts *Options) ([]FileInfo, error) {
	repoPath, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, err
	}

	// Check cancellation before starting walk
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts == nil {
		opts = &Options{RespectGitignore: true}
	}

	ignorePath := opts.IgnoreFile
	if ignorePath == "" {
		ignorePath = filepath.Join(repoPath, IgnoreFileName)
	}
	filePatterns, _ := loadIgnoreFile(ignorePath)
	patterns := append(append([]string{}, opts.Ignore...), filePatterns...)

	var extra *ignore.GitIgnore
	if len(patterns) > 0 {
		extra = ignore.CompileIgnoreLines(patterns...)
	}
	var gi *ignore.GitIgnore
	if opts.RespectGitignore {
		gi = loadGitignore(repoPath)
	}
	var deps *ignore.GitIgnore
	if len(opts.DependencyPaths) > 0 {
		deps = ignore.CompileIgnoreLines(opts.DependencyPaths...)
	}

	var files []FileInfo

	err = filepath.WalkDir(repoPath, func(path string, d os.DirEntry, walkErr error) error {
		// Check context cancellation periodically during walk
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, _ := filepath.Rel(repoPath, path)
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path == repoPath {
				return nil
			}
			if shouldSkipDir(d.Name(), rel, extra) || (gi != nil && gi.MatchesPath(rel+"/")) {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}

		// Skip ignored suffixes
		for suffix := range IGNORE_SUFFIXES {
			if strings.HasSuffix(path, suffix) {
				return nil
			}
		}

		if (extra != nil && extra.MatchesPath(rel)) || (gi != nil && gi.MatchesPath(rel)) {
			return nil
		}

		l, ok := lang.LanguageForExtension(filepath.Ext(path))
		if !ok {
			return nil
		}
		files = append(files, FileInfo{
			Path:         path,
			RelPath:      rel,
			Language:     l,
			IsDependency: deps != nil && deps.MatchesPath(rel),
		})
		return nil
	})

	sort.Slice(files, func(i, j int) bool {
		return files[i].RelPath < files[j].RelPath
	})

	return files, err
}

// Paths returns the absolute paths of files, in order.
func Paths(files []FileInfo) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

func loadGitignore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}

func loadIgnoreFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			patterns = append(patterns, line)
		}
	}
	return patterns, scanner.Err()
}
