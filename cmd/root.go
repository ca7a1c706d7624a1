package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "streams",
		Short:         "Payment stream dashboard for the terminal",
		Long:          "streams keeps a local cache of payment stream records and shows their vesting progress, remaining time and row actions, either once or live.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newDashboardCmd(app),
		newStreamCmd(app),
		newWatchCmd(app),
	)

	return rootCmd
}
