package tui_test

import (
	"testing"
	"time"

	"github.com/abdidvp/iisaudit/internal/adapters/outbound/tui"
	"github.com/abdidvp/iisaudit/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	out := tui.RenderProgress(2, 12, domain.Site{Name: "Shop", ID: 7})
	assert.Contains(t, out, "[ 2/12]")
	assert.Contains(t, out, "Shop")
	assert.Contains(t, out, "(id 7)")
}

func TestRenderSummary(t *testing.T) {
	out := tui.RenderSummary(domain.RunSummary{
		Host: "WEB01", Rows: 3, Succeeded: 1, Empty: 1, Failed: 1,
		OutputPath: "out.csv", Exported: true,
	})
	assert.Contains(t, out, "Exported 3 rows to out.csv")
	assert.Contains(t, out, "1 with strings")
	assert.Contains(t, out, "1 empty")
	assert.Contains(t, out, "1 failed")
	assert.Contains(t, out, "WEB01")
}

func TestRenderNothingToExport(t *testing.T) {
	assert.Contains(t, tui.RenderNothingToExport(), "No data to export")
}

func TestColumnLabel(t *testing.T) {
	assert.Equal(t, "Physical Path", tui.ColumnLabel("PhysicalPath"))
	assert.Equal(t, "Site ID", tui.ColumnLabel("SiteID"))
	assert.Equal(t, "Connection String Value", tui.ColumnLabel("ConnectionStringValue"))
}

func TestRenderSites(t *testing.T) {
	out := tui.RenderSites([]domain.Site{
		{Name: "Default Web Site", ID: 1, PhysicalPath: `C:\inetpub\wwwroot`},
		{Name: "Broken", ID: 12},
	})
	assert.Contains(t, out, "Site ID")
	assert.Contains(t, out, "Site Name")
	assert.Contains(t, out, "Physical Path")
	assert.Contains(t, out, "Default Web Site")
	assert.Contains(t, out, `C:\inetpub\wwwroot`)
	assert.Contains(t, out, "(no root directory)")
}

func TestRenderSites_Empty(t *testing.T) {
	assert.Contains(t, tui.RenderSites(nil), "No IIS sites found.")
}

func TestRenderHistory(t *testing.T) {
	out := tui.RenderHistory([]domain.RunSummary{
		{Host: "WEB01", Timestamp: time.Date(2025, 6, 15, 9, 5, 0, 0, time.UTC), Rows: 4, Sites: 3, Failed: 1, Exported: true, OutputPath: "a.csv"},
		{Host: "WEB01", Timestamp: time.Date(2025, 6, 16, 9, 5, 0, 0, time.UTC)},
	})
	assert.Contains(t, out, "Run History")
	assert.Contains(t, out, "2025-06-15 09:05")
	assert.Contains(t, out, "4 rows")
	assert.Contains(t, out, "3 sites, 1 failed")
	assert.Contains(t, out, "a.csv")
	assert.Contains(t, out, "nothing exported")
}

func TestRenderHistory_Empty(t *testing.T) {
	assert.Contains(t, tui.RenderHistory(nil), "No run history found.")
}
