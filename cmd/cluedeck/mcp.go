package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/cluedeck/cluedeck/internal/mcp"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server",
		Long:  "Start the Model Context Protocol server for cluedeck",
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := mcp.NewServer()
			if err != nil {
				return err
			}

			ctx := context.Background()
			return server.Run(ctx)
		},
	}

	return cmd
}
