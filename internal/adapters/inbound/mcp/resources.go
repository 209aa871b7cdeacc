package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/iisaudit/internal/adapters/outbound/history"
)

const historyURI = "iisaudit://history"

// registerResources registers all iisaudit MCP resources on the given server.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResource(
		mcplib.NewResource(
			historyURI,
			"Run History",
			mcplib.WithResourceDescription("Summaries of previous audit runs on this host"),
			mcplib.WithMIMEType("application/json"),
		),
		h.historyResource,
	)
}

func (h *handlers) historyResource(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	entries, err := history.New().Load(h.cfg.History.Dir)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling history: %w", err)
	}

	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      historyURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
