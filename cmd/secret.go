package cmd

import (
	"fmt"

	"github.com/bnema/gptbridge/internal/domain"
	"github.com/spf13/cobra"
)

func newSecretCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Store bot credentials in pass or the secrets directory",
	}

	cmd.AddCommand(
		newSecretSetCmd(app),
		newSecretRemoveCmd(app),
	)

	return cmd
}

func newSecretSetCmd(app *app) *cobra.Command {
	var name string
	var value string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the Discord bot token or the OpenAI API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secretName, err := domain.ParseSecretName(name)
			if err != nil {
				return err
			}
			if err := app.credentials().Store(cmd.Context(), secretName, value); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "stored %s secret at %s\n", secretName, secretName.Key())
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "secret to store: discord or openai")
	cmd.Flags().StringVar(&value, "value", "", "secret value")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newSecretRemoveCmd(app *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove a stored credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secretName, err := domain.ParseSecretName(name)
			if err != nil {
				return err
			}
			if err := app.credentials().Remove(cmd.Context(), secretName); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed %s secret\n", secretName)
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "secret to remove: discord or openai")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
