package cmd

import (
	streamsrender "github.com/bnema/streams-cli/internal/adapters/render/streams"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Live view; active streams refresh every second",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return streamsrender.RunWatch(cmd.Context(), streamsrender.WatchConfig{
				Load:     app.service.ListStreams,
				Clock:    app.clock,
				Interval: app.config.WatchInterval,
				Reload:   app.config.WatchReload,
				Options:  app.renderOptions,
				Log:      app.log,
			}, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
