package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/DeusData/dartgraph/internal/config"
	"github.com/DeusData/dartgraph/internal/discover"
	"github.com/DeusData/dartgraph/internal/scan"
)

func (s *Server) handlePrescanDartSymbols(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	root, err := absPathArg(args, "repo_path")
	if err != nil {
		return errResult(err.Error()), nil
	}

	cfg, err := config.Load(root)
	if err != nil {
		return errResult(err.Error()), nil
	}
	files, err := discover.Discover(ctx, root, cfg.DiscoverOptions())
	if err != nil {
		return errResult(fmt.Sprintf("discovery failed: %v", err)), nil
	}
	idx, err := scan.PreScan(ctx, discover.Paths(files), cfg.EffectiveWorkers())
	if err != nil {
		return errResult(fmt.Sprintf("prescan failed: %v", err)), nil
	}

	return jsonResult(map[string]any{
		"repo_path": root,
		"files":     len(files),
		"symbols":   idx,
	}), nil
}

type fileSummary struct {
	FilePath     string `json:"file_path"`
	IsDependency bool   `json:"is_dependency"`
	Functions    int    `json:"functions"`
	Classes      int    `json:"classes"`
	Imports      int    `json:"imports"`
}

func (s *Server) handleScanDartProject(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}
	root, err := absPathArg(args, "repo_path")
	if err != nil {
		return errResult(err.Error()), nil
	}

	sc, err := s.scannerFor(root)
	if err != nil {
		return errResult(err.Error()), nil
	}
	res, err := sc.Run(ctx, root)
	if err != nil {
		return errResult(fmt.Sprintf("scan failed: %v", err)), nil
	}

	if !getBoolArg(args, "summary_only") {
		return jsonResult(res), nil
	}

	summaries := make([]fileSummary, len(res.Files))
	for i, rec := range res.Files {
		summaries[i] = fileSummary{
			FilePath:     rec.FilePath,
			IsDependency: rec.IsDependency,
			Functions:    len(rec.Functions),
			Classes:      len(rec.Classes),
			Imports:      len(rec.Imports),
		}
	}
	return jsonResult(map[string]any{
		"root":  res.Root,
		"files": summaries,
		"stats": res.Stats,
	}), nil
}
