package main

import (
	"github.com/spf13/cobra"

	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/logging"
	"github.com/littlemoon-zh/littlemoon-zh.github.io/internal/mcpserver"
)

func newMCPCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the content read operations as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			logger := logging.FromContext(ctx, logging.MCPLogger(a.module.Container().LoggerProvider()))

			s := mcpserver.NewServer(a.module.Content(), mcpserver.Options{
				Name:    a.config.MCP.Name,
				Version: a.config.MCP.Version,
				Logger:  logger,
			})
			logger.Info("mcp.server.listening", "name", a.config.MCP.Name)
			return mcpserver.ServeStdio(ctx, s, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
