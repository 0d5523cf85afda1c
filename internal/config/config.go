// Package config loads per-project settings from .dartgraph.yaml.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/DeusData/dartgraph/internal/discover"
)

// FileName is the config file read from the project root.
const FileName = ".dartgraph.yaml"

// DefaultDependencyPaths mark vendored and pub-cache sources as dependencies.
var DefaultDependencyPaths = []string{".pub-cache/**", "**/third_party/**"}

// Config holds user-overridable project settings.
type Config struct {
	// Ignore are extra .gitignore-style patterns skipped during discovery.
	Ignore []string `yaml:"ignore"`

	// DependencyPaths are .gitignore-style patterns; matching files are
	// extracted with is_dependency=true. Setting the key replaces the defaults.
	DependencyPaths []string `yaml:"dependency_paths"`

	// Workers bounds scan parallelism. Zero means runtime.NumCPU().
	Workers int `yaml:"workers"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// RespectGitignore honours the root .gitignore. Default: true.
	RespectGitignore *bool `yaml:"respect_gitignore"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DependencyPaths: append([]string(nil), DefaultDependencyPaths...),
		LogLevel:        "info",
	}
}

// Load reads FileName from dir. A missing file yields Default(); a file that
// cannot be decoded is an error.
func Load(dir string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("parse %s: workers must be >= 0, got %d", path, cfg.Workers)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// EffectiveWorkers returns the configured worker count, or the CPU count
// if unset.
func (c *Config) EffectiveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// GitignoreEnabled reports whether the root .gitignore is honoured.
func (c *Config) GitignoreEnabled() bool {
	if c.RespectGitignore != nil {
		return *c.RespectGitignore
	}
	return true
}

// DiscoverOptions converts the config into file discovery options.
func (c *Config) DiscoverOptions() *discover.Options {
	return &discover.Options{
		Ignore:           c.Ignore,
		DependencyPaths:  c.DependencyPaths,
		RespectGitignore: c.GitignoreEnabled(),
	}
}

// ParseLevel maps a level name to a slog.Level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
