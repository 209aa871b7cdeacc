package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	var opts auditFlags

	cmd := &cobra.Command{
		Use:   "iisaudit",
		Short: "Audit connection strings of the IIS sites on this host",
		Long: "iisaudit enumerates the IIS sites on the local host, reads the connection strings from each site's web.config " +
			"and writes them to a CSV report, one row per connection string.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Config file (default iisaudit.yaml in the working directory)")
	cmd.Flags().StringVarP(&opts.outputPath, "output-path", "o", "", "Report path (default <base_dir>/ConnectionStrings_<HOST>_<YYYYMMDD>.csv)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newSitesCmd(&opts.configPath))
	cmd.AddCommand(newHistoryCmd(&opts.configPath))
	cmd.AddCommand(newMCPCmd(&opts.configPath))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the CLI, stopping the audit between sites on Ctrl+C.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
