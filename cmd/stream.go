package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	feedjson "github.com/bnema/streams-cli/internal/adapters/feed/json"
	"github.com/bnema/streams-cli/internal/application"
	"github.com/bnema/streams-cli/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newStreamCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Manage cached payment streams",
	}

	cmd.AddCommand(
		newStreamListCmd(app),
		newStreamShowCmd(app),
		newStreamAddCmd(app),
		newStreamImportCmd(app),
		newStreamWithdrawnCmd(app),
		newStreamSetStatusCmd(app),
		newStreamRemoveCmd(app),
		newStreamActionsCmd(app),
		newStreamExplorerCmd(app),
	)

	return cmd
}

func newStreamListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show every stream with its progress and remaining time",
		RunE: func(cmd *cobra.Command, _ []string) error {
			views, err := app.service.ListViews(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, views)
			}

			rendered, err := app.listRenderer(views, app.renderOptions)
			if err != nil {
				return fmt.Errorf("render streams: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print stream views as JSON")

	return cmd
}

func newStreamShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show one stream with its vesting breakdown and actions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.service.GetView(cmd.Context(), domain.StreamID(args[0]))
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, view)
			}

			rendered, err := app.showRenderer(view, app.renderOptions)
			if err != nil {
				return fmt.Errorf("render stream: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the stream view as JSON")

	return cmd
}

func newStreamAddCmd(app *app) *cobra.Command {
	var (
		id        string
		sender    string
		recipient string
		total     string
		withdrawn string
		start     string
		end       string
		status    string
		token     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a stream record",
		Long:  "Add a stream record to the local cache. Times accept RFC3339 or epoch milliseconds.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			totalAmount, err := parseAmountFlag("total", total)
			if err != nil {
				return err
			}
			withdrawnAmount, err := parseAmountFlag("withdrawn", withdrawn)
			if err != nil {
				return err
			}
			startTime, err := feedjson.ParseTime(start)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			endTime, err := feedjson.ParseTime(end)
			if err != nil {
				return fmt.Errorf("--end: %w", err)
			}

			stream, err := app.service.AddStream(cmd.Context(), application.AddStreamCommand{
				ID:              domain.StreamID(id),
				Sender:          sender,
				Recipient:       recipient,
				TokenSymbol:     token,
				TotalAmount:     totalAmount,
				WithdrawnAmount: withdrawnAmount,
				StartTime:       startTime,
				EndTime:         endTime,
				Status:          status,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "added stream %s\n", stream.ID)
			return err
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "stream id")
	cmd.Flags().StringVar(&sender, "sender", "", "sender address")
	cmd.Flags().StringVar(&recipient, "recipient", "", "recipient address")
	cmd.Flags().StringVar(&total, "total", "", "total stream amount")
	cmd.Flags().StringVar(&withdrawn, "withdrawn", "0", "amount already withdrawn")
	cmd.Flags().StringVar(&start, "start", "", "start time (RFC3339 or epoch ms)")
	cmd.Flags().StringVar(&end, "end", "", "end time (RFC3339 or epoch ms)")
	cmd.Flags().StringVar(&status, "status", string(domain.StatusActive), "stream status")
	cmd.Flags().StringVar(&token, "token", "", "token symbol")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("total")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newStreamImportCmd(app *app) *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import stream records from a JSON feed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			feed := &feedImport{
				path:  args[0],
				read:  app.readFeed,
				store: app.service.ImportStreams,
			}

			var err error
			if quiet {
				err = feed.run(cmd.Context())
			} else {
				err = runImportSpinner(cmd.Context(), cmd.ErrOrStderr(), feed)
			}
			if err != nil {
				if feed.saved > 0 {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "imported %d of %d streams before the error\n", feed.saved, feed.total)
				}
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d streams from %s\n", feed.saved, filepath.Base(feed.path))
			return err
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not show progress")

	return cmd
}

func newStreamWithdrawnCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "withdrawn ID AMOUNT",
		Short: "Record the cumulative withdrawn amount reported for a stream",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmountFlag("amount", args[1])
			if err != nil {
				return err
			}

			if err := app.service.RecordWithdrawal(cmd.Context(), application.RecordWithdrawalCommand{
				ID:              domain.StreamID(args[0]),
				WithdrawnAmount: amount,
			}); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "stream %s withdrawn %s\n", args[0], amount)
			return err
		},
	}
}

func newStreamSetStatusCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status ID STATUS",
		Short: "Set the status of a stream",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.service.SetStatus(cmd.Context(), application.SetStatusCommand{
				ID:     domain.StreamID(args[0]),
				Status: args[1],
			}); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "stream %s status set\n", args[0])
			return err
		},
	}
}

func newStreamRemoveCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a stream from the local cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.service.RemoveStream(cmd.Context(), domain.StreamID(args[0])); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "removed stream %s\n", args[0])
			return err
		},
	}
}

func newStreamActionsCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "actions ID",
		Short: "List the row actions available for a stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.service.GetView(cmd.Context(), domain.StreamID(args[0]))
			if err != nil {
				return err
			}

			for _, action := range view.Actions {
				line := fmt.Sprintf("%s\t%s", action, action.Label())
				switch action {
				case domain.ActionViewOnExplorer:
					line += "\t" + domain.ExplorerURL(app.config.ExplorerURL, view.Stream.ID)
				case domain.ActionCopyStreamID:
					line += "\t" + string(view.Stream.ID)
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func newStreamExplorerCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "explorer ID",
		Short: "Print the explorer URL of a stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := app.service.GetView(cmd.Context(), domain.StreamID(args[0]))
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), domain.ExplorerURL(app.config.ExplorerURL, view.Stream.ID))
			return err
		},
	}
}

func parseAmountFlag(name, raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("--%s: invalid amount %q", name, raw)
	}

	return amount, nil
}

func writeJSON(cmd *cobra.Command, value any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
