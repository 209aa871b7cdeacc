package domain

import "context"

// SiteEnumerator lists the sites configured on the host, in configuration order.
type SiteEnumerator interface {
	Sites(ctx context.Context) ([]Site, error)
}

// ConnectionStringQuery returns the connection strings configured for a site.
// Errors carry a human-readable message that ends up in the report.
type ConnectionStringQuery interface {
	ConnectionStrings(ctx context.Context, site Site) ([]ConnectionStringEntry, error)
}

// ReportWriter persists a complete report. Implementations must either
// produce the whole file or leave nothing behind.
type ReportWriter interface {
	Write(path string, rows []ReportRow) error
}

// ConfigLoader loads the tool configuration from a file path.
type ConfigLoader interface {
	Load(path string) (AuditConfig, error)
}

// RunHistory stores summaries of previous runs.
type RunHistory interface {
	Save(dir string, summary RunSummary) error
	Load(dir string) ([]RunSummary, error)
}
