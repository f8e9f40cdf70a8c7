package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"finboard/internal/core"
	"finboard/internal/tracker"
)

func newReportCommand(opts *options) *cobra.Command {
	var (
		category    string
		granularity string
		date        string
		steps       int
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the total and breakdown of one period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, closeFn, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := selectCategory(session, category); err != nil {
				return err
			}
			g, err := core.ParseGranularity(granularity)
			if err != nil {
				return err
			}
			if err := session.SetGranularity(g); err != nil {
				return err
			}
			if date != "" {
				d, err := core.ParseDate(date)
				if err != nil {
					return err
				}
				if err := session.SetReferenceDate(d); err != nil {
					return err
				}
			}
			dir := core.Forward
			if steps < 0 {
				dir, steps = core.Backward, -steps
			}
			for range steps {
				if err := session.Step(dir); err != nil {
					return err
				}
			}

			view := session.View()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}
			return printView(cmd.OutOrStdout(), view)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", string(core.Expense), "ledger to report on (expense or income)")
	cmd.Flags().StringVarP(&granularity, "granularity", "g", string(core.Month), "period size (day, week, month, year)")
	cmd.Flags().StringVarP(&date, "date", "d", "", "reference date YYYY-MM-DD (default today)")
	cmd.Flags().IntVar(&steps, "step", 0, "periods to move from the reference date; negative goes back")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the view as JSON")

	return cmd
}

var hundred = decimal.NewFromInt(100)

func printView(out io.Writer, view tracker.View) error {
	fmt.Fprintf(out, "%s %s (%s to %s)\n", view.Label, view.Category, view.Window.Start, view.Window.End)
	if !view.HasData {
		fmt.Fprintf(out, "No data. Total %s across %d transactions\n", view.Summary.Total, view.Summary.Count)
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDATE\tAMOUNT\tSHARE")
	byID := make(map[string]core.Transaction, len(view.Transactions))
	for _, tx := range view.Transactions {
		byID[tx.ID] = tx
	}
	for _, share := range view.Summary.Shares {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s%%\n",
			share.ID, share.Name, byID[share.ID].Date, share.Amount, share.Fraction.Mul(hundred).StringFixed(1))
	}
	fmt.Fprintf(tw, "TOTAL\t\t\t%s\t%d transactions\n", view.Summary.Total, view.Summary.Count)
	return tw.Flush()
}
