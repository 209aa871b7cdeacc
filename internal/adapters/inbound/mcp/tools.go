package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/iisaudit/internal/adapters/outbound/history"
	"github.com/abdidvp/iisaudit/internal/adapters/outbound/iis"
	"github.com/abdidvp/iisaudit/internal/adapters/outbound/report"
	"github.com/abdidvp/iisaudit/internal/application"
	"github.com/abdidvp/iisaudit/internal/domain"
)

type handlers struct {
	cfg  domain.AuditConfig
	host string
	svc  *application.AuditService
	log  *slog.Logger
}

// registerTools registers all iisaudit MCP tools on the given server.
func registerTools(s *server.MCPServer, h *handlers) {
	// 1. iisaudit_list_sites
	s.AddTool(
		mcplib.NewTool("iisaudit_list_sites",
			mcplib.WithDescription("Lists the IIS sites configured on the host with their id and physical path"),
		),
		h.listSites,
	)

	// 2. iisaudit_audit
	s.AddTool(
		mcplib.NewTool("iisaudit_audit",
			mcplib.WithDescription("Reads the connection strings of every IIS site and returns the report rows as JSON without writing a file"),
		),
		h.audit,
	)

	// 3. iisaudit_export
	s.AddTool(
		mcplib.NewTool("iisaudit_export",
			mcplib.WithDescription("Runs the audit and writes the CSV report. Returns the run summary."),
			mcplib.WithString("output_path", mcplib.Description("Report path (default ConnectionStrings_<HOST>_<YYYYMMDD>.csv in the configured base directory)")),
		),
		h.export,
	)

	// 4. iisaudit_read_report
	s.AddTool(
		mcplib.NewTool("iisaudit_read_report",
			mcplib.WithDescription("Reads a previously written CSV report and returns its rows as JSON"),
			mcplib.WithString("path",
				mcplib.Required(),
				mcplib.Description("Path of the CSV report"),
			),
		),
		h.readReport,
	)
}

func (h *handlers) listSites(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	sites, err := iis.New(h.cfg.ApplicationHostPath).Sites(ctx)
	if err != nil {
		return errorResult(fmt.Sprintf("enumerating sites failed: %v", err)), nil
	}
	return jsonResult(sites)
}

func (h *handlers) audit(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	audit, err := h.svc.Collect(ctx, application.RunOptions{Host: h.host})
	if err != nil {
		return errorResult(fmt.Sprintf("audit failed: %v", err)), nil
	}
	if len(audit.Rows) == 0 {
		return textResult("No data to export: no IIS sites were found."), nil
	}
	return jsonResult(audit.Rows)
}

func (h *handlers) export(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	outputPath, _ := request.GetArguments()["output_path"].(string)

	res, err := h.svc.Run(ctx, application.RunOptions{Host: h.host, OutputPath: outputPath})
	if err != nil {
		return errorResult(fmt.Sprintf("export failed: %v", err)), nil
	}

	if h.cfg.HistoryEnabled() {
		if err := history.New().Save(h.cfg.History.Dir, res.Summary); err != nil {
			h.log.Warn("recording run history failed", "dir", h.cfg.History.Dir, "err", err)
		}
	}

	return jsonResult(res.Summary)
}

func (h *handlers) readReport(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return errorResult(err.Error()), nil
	}

	rows, err := report.ReadReport(path)
	if err != nil {
		return errorResult(fmt.Sprintf("reading report failed: %v", err)), nil
	}
	return jsonResult(rows)
}

// jsonResult marshals v as indented JSON text content.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result flagged as an error.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
