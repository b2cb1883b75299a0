package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/gptbridge/internal/application"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show quotas and open sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := app.openStores(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = st.close() }()

			ledger, err := application.NewAccessLedger(cmd.Context(), st.quotas, app.logger)
			if err != nil {
				return err
			}
			registry, err := application.NewSessionRegistry(cmd.Context(), st.sessions, app.logger)
			if err != nil {
				return err
			}

			status := application.BuildStatus(ledger, registry, app.now(), app.cfg.Sweeper.MaxIdle)
			return writeStatusOutput(cmd, app, status, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print status as JSON")

	return cmd
}

func writeStatusOutput(cmd *cobra.Command, app *app, status application.Status, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	}

	rendered, err := app.statusRenderer(status)
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
