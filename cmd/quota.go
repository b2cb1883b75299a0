package cmd

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/bnema/gptbridge/internal/application"
	"github.com/bnema/gptbridge/internal/domain"
	"github.com/spf13/cobra"
)

func newQuotaCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quota",
		Short: "Provision per-user request quotas",
	}

	cmd.AddCommand(
		newQuotaSetCmd(app),
		newQuotaListCmd(app),
	)

	return cmd
}

func newQuotaSetCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <principal-id> <count|unlimited>",
		Short: "Set the remaining request count of a Discord user",
		Long:  "Set the remaining request count of a Discord user id. A count of 0 keeps the user known but exhausted.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			principal := domain.PrincipalID(args[0])
			value, err := domain.ParseQuota(args[1])
			if err != nil {
				return err
			}

			st, err := app.openStores(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = st.close() }()

			ledger, err := application.NewAccessLedger(cmd.Context(), st.quotas, app.logger)
			if err != nil {
				return err
			}
			if err := ledger.Grant(cmd.Context(), principal, value); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "quota for %s set to %s\n", principal, ledger.Lookup(principal))
			return err
		},
	}
}

func newQuotaListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List provisioned users and their remaining requests",
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

			snapshot := ledger.Snapshot()
			principals := make([]domain.PrincipalID, 0, len(snapshot))
			for principal := range snapshot {
				principals = append(principals, principal)
			}
			sort.Slice(principals, func(i, j int) bool { return principals[i] < principals[j] })

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "PRINCIPAL\tQUOTA")
			for _, principal := range principals {
				_, _ = fmt.Fprintf(w, "%s\t%s\n", principal, ledger.Lookup(principal))
			}

			return w.Flush()
		},
	}
}
