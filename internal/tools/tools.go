// Package tools exposes the Dart extractor as MCP tools.
package tools

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/dartgraph/internal/config"
	"github.com/DeusData/dartgraph/internal/extract"
	"github.com/DeusData/dartgraph/internal/scan"
)

// Server wraps the MCP server with tool handlers.
type Server struct {
	mcp *mcp.Server

	// extractMu serialises single-file extraction; an Extractor is not
	// safe for concurrent use.
	extractMu sync.Mutex
	extractor *extract.Extractor

	scanMu   sync.Mutex
	scanners map[string]*scan.Scanner
}

// NewServer creates a new MCP server with all tools registered.
func NewServer(version string) (*Server, error) {
	ex, err := extract.New(extract.Options{})
	if err != nil {
		return nil, err
	}
	srv := &Server{
		extractor: ex,
		scanners:  make(map[string]*scan.Scanner),
		mcp: mcp.NewServer(
			&mcp.Implementation{
				Name:    "dartgraph",
				Version: version,
			},
			nil,
		),
	}
	srv.registerTools()
	return srv, nil
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// Close releases the compiled queries held by the server.
func (s *Server) Close() {
	s.extractMu.Lock()
	defer s.extractMu.Unlock()
	s.extractor.Close()
}

func (s *Server) registerTools() {
	// 1. extract_dart_file
	s.mcp.AddTool(&mcp.Tool{
		Name:        "extract_dart_file",
		Description: "Extract functions, classes, imports, variables and calls from one Dart source file. Returns the file record as JSON with line numbers, source text, docstrings, parameter names and cyclomatic complexity.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"path": {
					"type": "string",
					"description": "Path to the .dart file"
				},
				"is_dependency": {
					"type": "boolean",
					"description": "Mark every extracted entity as third-party code (default: false)"
				}
			},
			"required": ["path"]
		}`),
	}, s.handleExtractDartFile)

	// 2. prescan_dart_symbols
	s.mcp.AddTool(&mcp.Tool{
		Name:        "prescan_dart_symbols",
		Description: "Build a symbol index for a Dart project: every declared class, mixin, extension, enum and function name mapped to the absolute paths of the files that declare it.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"repo_path": {
					"type": "string",
					"description": "Path to the project root"
				}
			},
			"required": ["repo_path"]
		}`),
	}, s.handlePrescanDartSymbols)

	// 3. scan_dart_project
	s.mcp.AddTool(&mcp.Tool{
		Name:        "scan_dart_project",
		Description: "Extract every Dart file in a project. Honours .gitignore, .dartgraphignore and .dartgraph.yaml. Unchanged files are served from a content-hash cache on repeated calls.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"repo_path": {
					"type": "string",
					"description": "Path to the project root"
				},
				"summary_only": {
					"type": "boolean",
					"description": "Return per-file entity counts instead of full records (default: false)"
				}
			},
			"required": ["repo_path"]
		}`),
	}, s.handleScanDartProject)
}

// scannerFor returns the cached Scanner for root, loading its config on
// first use.
func (s *Server) scannerFor(root string) (*scan.Scanner, error) {
	s.scanMu.Lock()
	defer s.scanMu.Unlock()

	if sc, ok := s.scanners[root]; ok {
		return sc, nil
	}
	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	sc := scan.New(cfg)
	s.scanners[root] = sc
	return sc, nil
}

// jsonResult marshals data to JSON and returns as tool result.
func jsonResult(data any) *mcp.CallToolResult {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errResult("json marshal err=" + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}
}

// errResult returns a tool result indicating an error.
func errResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}

// parseArgs unmarshals the raw JSON arguments into a map.
func parseArgs(req *mcp.CallToolRequest) (map[string]any, error) {
	if req.Params == nil || len(req.Params.Arguments) == 0 {
		return map[string]any{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal(req.Params.Arguments, &m); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return m, nil
}

// getStringArg extracts a string argument from parsed args.
func getStringArg(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// getBoolArg extracts a boolean argument from parsed args.
func getBoolArg(args map[string]any, key string) bool {
	v, ok := args[key]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	if !ok {
		return false
	}
	return b
}

// absPathArg reads a required path argument and resolves it.
func absPathArg(args map[string]any, key string) (string, error) {
	p := getStringArg(args, key)
	if p == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	return abs, nil
}
