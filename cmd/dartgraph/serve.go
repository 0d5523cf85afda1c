package main

import (
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/DeusData/dartgraph/internal/tools"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv, err := tools.NewServer(version)
			if err != nil {
				return err
			}
			defer srv.Close()

			slog.Info("serve.start", "version", version)
			return srv.MCPServer().Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
