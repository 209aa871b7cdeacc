package domain

import (
	"strings"
	"time"
)

// Report row status markers.
const (
	StatusSuccess        = "Success"
	StatusNoStringsFound = "No Strings Found"
	statusErrorPrefix    = "Error: "
)

// SourceWebConfig is the Source value of rows read from a site's web.config.
const SourceWebConfig = "web.config"

// Site is a configured IIS site as reported by the host.
type Site struct {
	Name         string `json:"name"`
	ID           int64  `json:"id"`
	PhysicalPath string `json:"physical_path"`
}

// ConnectionStringEntry is one connectionStrings/add element of a site.
type ConnectionStringEntry struct {
	Name             string `json:"name"`
	ConnectionString string `json:"connection_string"`
}

// ReportRow is one line of the audit report. Absent values are empty strings.
type ReportRow struct {
	SystemName            string `json:"system_name"`
	SiteName              string `json:"site_name"`
	SiteID                int64  `json:"site_id"`
	ConnectionStringName  string `json:"connection_string_name"`
	ConnectionStringValue string `json:"connection_string_value"`
	PhysicalPath          string `json:"physical_path"`
	Source                string `json:"source"`
	Status                string `json:"status"`
}

// ReportHeader lists the ReportRow field names in output order.
var ReportHeader = []string{
	"SystemName",
	"SiteName",
	"SiteID",
	"ConnectionStringName",
	"ConnectionStringValue",
	"PhysicalPath",
	"Source",
	"Status",
}

// IsError reports whether the row is the placeholder for a failed lookup.
func (r ReportRow) IsError() bool {
	return strings.HasPrefix(r.Status, statusErrorPrefix)
}

// SiteResult is the outcome of querying one site: either Entries or Err.
type SiteResult struct {
	Site    Site
	Entries []ConnectionStringEntry
	Err     error
}

// RunSummary describes one audit run.
type RunSummary struct {
	RunID      string    `json:"run_id"`
	Host       string    `json:"host"`
	Timestamp  time.Time `json:"timestamp"`
	Sites      int       `json:"sites"`
	Rows       int       `json:"rows"`
	Succeeded  int       `json:"succeeded"`
	Empty      int       `json:"empty"`
	Failed     int       `json:"failed"`
	OutputPath string    `json:"output_path,omitempty"`
	Exported   bool      `json:"exported"`
}
