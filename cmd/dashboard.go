package cmd

import (
	"fmt"

	"github.com/bnema/streams-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard feature cards",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rendered, err := app.cardsRenderer(domain.DefaultFeatureCards())
			if err != nil {
				return fmt.Errorf("render dashboard: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}
}
