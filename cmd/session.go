package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/bnema/gptbridge/internal/application"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect chat session threads",
	}

	cmd.AddCommand(newSessionListCmd(app))

	return cmd
}

func newSessionListCmd(app *app) *cobra.Command {
	var expiredOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked session threads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := app.openStores(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = st.close() }()

			registry, err := application.NewSessionRegistry(cmd.Context(), st.sessions, app.logger)
			if err != nil {
				return err
			}

			now := app.now()
			sweeper := application.NewExpirySweeper(registry, nil, nil, application.SweeperConfig{
				MaxIdle:  app.cfg.Sweeper.MaxIdle,
				Hour:     app.cfg.Sweeper.Hour,
				Location: app.cfg.Sweeper.Location(),
			}, app.logger, nil)

			sessions := registry.All()
			if expiredOnly {
				sessions = sweeper.Expired(now)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "SESSION\tCREATED\tEXPIRED")
			for _, session := range sessions {
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n",
					session.ID,
					session.LastActivity.UTC().Format(time.RFC3339),
					yesNo(session.IsExpired(now, app.cfg.Sweeper.MaxIdle)),
				)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if !expiredOnly {
				return nil
			}

			next := application.NextSweepAt(now, app.cfg.Sweeper.Hour, app.cfg.Sweeper.Location())
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "next sweep at %s\n", next.Format(time.RFC3339))
			return err
		},
	}

	cmd.Flags().BoolVar(&expiredOnly, "expired", false, "only list sessions the next sweep would close")

	return cmd
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

