package cli

import (
	mcpadapter "github.com/abdidvp/iisaudit/internal/adapters/inbound/mcp"
	"github.com/abdidvp/iisaudit/internal/platform/logger"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the iisaudit MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(configPath))
	return cmd
}

func newMCPServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start iisaudit MCP server (stdio)",
		Long:  "Start the iisaudit MCP server using stdio transport. This lets AI assistants list sites, run audits and read reports on this host.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			// stdout carries the protocol, so logs go to stderr.
			log := logger.New(cfg.LogLevel, cmd.ErrOrStderr())
			s := mcpadapter.NewAuditMCPServer(cfg, ResolveHost(), NewAuditService(cfg, log), log)
			return server.ServeStdio(s)
		},
	}
}
