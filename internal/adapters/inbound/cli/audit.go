package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/iisaudit/internal/adapters/outbound/history"
	"github.com/abdidvp/iisaudit/internal/adapters/outbound/tui"
	"github.com/abdidvp/iisaudit/internal/application"
	"github.com/abdidvp/iisaudit/internal/domain"
	"github.com/abdidvp/iisaudit/internal/platform/logger"
)

type auditFlags struct {
	configPath string
	outputPath string
}

func runAudit(cmd *cobra.Command, opts auditFlags) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cmd.ErrOrStderr())
	out := cmd.OutOrStdout()

	svc := NewAuditService(cfg, log)
	res, err := svc.Run(cmd.Context(), application.RunOptions{
		Host:       ResolveHost(),
		OutputPath: opts.outputPath,
		Progress: func(index, total int, site domain.Site) {
			fmt.Fprint(out, tui.RenderProgress(index, total, site))
		},
	})
	if err != nil {
		return err
	}

	if cfg.HistoryEnabled() {
		if err := history.New().Save(cfg.History.Dir, res.Summary); err != nil {
			log.Warn("recording run history failed", "dir", cfg.History.Dir, "err", err)
		}
	}

	if !res.Exported {
		fmt.Fprint(out, tui.RenderNothingToExport())
		return nil
	}

	fmt.Fprint(out, tui.RenderSummary(res.Summary))
	return nil
}
