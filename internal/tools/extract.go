package tools

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) handleExtractDartFile(_ context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := parseArgs(req)
	if err != nil {
		return errResult(err.Error()), nil
	}

	path, err := absPathArg(args, "path")
	if err != nil {
		return errResult(err.Error()), nil
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return errResult(fmt.Sprintf("read %s: %v", path, err)), nil
	}

	s.extractMu.Lock()
	defer s.extractMu.Unlock()

	rec, err := s.extractor.ParseSource(path, source, getBoolArg(args, "is_dependency"))
	if err != nil {
		return errResult(fmt.Sprintf("extraction failed: %v", err)), nil
	}
	return jsonResult(rec), nil
}
