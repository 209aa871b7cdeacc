package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdidvp/iisaudit/internal/adapters/outbound/iis"
	"github.com/abdidvp/iisaudit/internal/adapters/outbound/tui"
	"github.com/abdidvp/iisaudit/internal/platform/errs"
)

func newSitesCmd(configPath *string) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "sites",
		Short: "List the IIS sites that an audit would visit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			sites, err := iis.New(cfg.ApplicationHostPath).Sites(cmd.Context())
			if err != nil {
				return errs.New(errs.EnumerationFailed, "enumerating sites", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(sites)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderSites(sites))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output sites as JSON")

	return cmd
}
