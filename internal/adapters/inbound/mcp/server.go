package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/iisaudit/internal/application"
	"github.com/abdidvp/iisaudit/internal/domain"
	"github.com/abdidvp/iisaudit/internal/platform/logger"
)

// NewAuditMCPServer creates an MCP server with all iisaudit tools and
// resources registered. host is the system name written into report rows.
func NewAuditMCPServer(cfg domain.AuditConfig, host string, svc *application.AuditService, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		"iisaudit",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	if log == nil {
		log = logger.Discard()
	}
	h := &handlers{cfg: cfg, host: host, svc: svc, log: log}
	registerTools(s, h)
	registerResources(s, h)

	return s
}
