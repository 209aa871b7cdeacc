package cli

import (
	"log/slog"
	"os"
	"strings"

	"github.com/abdidvp/iisaudit/internal/adapters/outbound/config"
	"github.com/abdidvp/iisaudit/internal/adapters/outbound/iis"
	"github.com/abdidvp/iisaudit/internal/adapters/outbound/report"
	"github.com/abdidvp/iisaudit/internal/application"
	"github.com/abdidvp/iisaudit/internal/domain"
	"github.com/abdidvp/iisaudit/internal/platform/errs"
)

func loadConfig(path string) (domain.AuditConfig, error) {
	cfg, err := config.New().Load(path)
	if err != nil {
		return domain.AuditConfig{}, errs.New(errs.InvalidConfig, "loading config", err)
	}
	return cfg, nil
}

// NewAuditService wires the IIS adapter and CSV writer described by cfg.
func NewAuditService(cfg domain.AuditConfig, log *slog.Logger) *application.AuditService {
	store := iis.New(cfg.ApplicationHostPath)
	return application.NewAuditService(
		store,
		store,
		report.NewCSVWriter().WithBOM(cfg.Report.UTF8BOM),
	).WithLogger(log).WithBaseDir(cfg.Output.BaseDir)
}

// ResolveHost returns the identity of the local system: COMPUTERNAME when
// set, otherwise the OS host name.
func ResolveHost() string {
	if name := strings.TrimSpace(os.Getenv("COMPUTERNAME")); name != "" {
		return name
	}
	if name, err := os.Hostname(); err == nil && name != "" {
		return name
	}
	return "localhost"
}
