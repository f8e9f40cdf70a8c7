package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"finboard/internal/amqp"
	"finboard/internal/cli"
)

func newWatchCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print ledger change events as they arrive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.amqpURL == "" {
				return fmt.Errorf("watch needs --amqp-url or AMQP_URL")
			}
			client, err := amqp.NewClient(opts.amqpURL, opts.amqpExchange, opts.amqpQueue)
			if err != nil {
				return err
			}
			defer client.Close()

			ctx, cancel := cli.GracefulShutdown(cmd.Context(), opts.logger)
			defer cancel()

			out := cmd.OutOrStdout()
			err = client.ConsumeLedgerEvents(ctx, func(e *amqp.LedgerEvent) error {
				return printEvent(out, e)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func printEvent(out io.Writer, e *amqp.LedgerEvent) error {
	line := fmt.Sprintf("%s %s %s %s", e.Timestamp.Format("2006-01-02 15:04:05"), e.Type, e.Category, e.ID)
	if e.Name != "" {
		line += " " + e.Name
	}
	if e.Amount != nil {
		line += " " + e.Amount.String()
	}
	if e.Date != "" {
		line += " " + e.Date
	}
	_, err := fmt.Fprintln(out, line)
	return err
}
