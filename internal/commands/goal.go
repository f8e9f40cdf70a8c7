package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"finboard/internal/core"
	"finboard/internal/goals"
)

func newGoalCommand(opts *options) *cobra.Command {
	var (
		target, contribution, savings string
		purchase, change              string
		months                        int
	)

	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Estimate how long a savings target takes",
		Long: "Estimate how long a savings target takes. Without --contribution the\n" +
			"average monthly net of recent history is used.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			calc := goals.Calculator{}
			var err error
			if calc.Target, err = core.ParseAmount(target); err != nil {
				return err
			}
			if calc.CurrentSavings, err = parseSigned("savings", savings); err != nil {
				return err
			}
			purchaseCost, err := parseSigned("purchase", purchase)
			if err != nil {
				return err
			}
			contributionChange, err := parseSigned("change", change)
			if err != nil {
				return err
			}

			today := core.Today(opts.clock)
			out := cmd.OutOrStdout()

			if contribution != "" {
				if calc.MonthlyContribution, err = parseSigned("contribution", contribution); err != nil {
					return err
				}
			} else {
				session, closeFn, err := openSession(cmd.Context(), opts)
				if err != nil {
					return err
				}
				defer closeFn()
				calc.MonthlyContribution = goals.AverageMonthlyNet(
					session.Transactions(core.Income), session.Transactions(core.Expense), today, months)
				fmt.Fprintf(out, "Average monthly net over %d months: %s\n", months, calc.MonthlyContribution)
			}
			if err := calc.Validate(); err != nil {
				return err
			}

			forecast := calc.Duration()
			if eta, ok := forecast.ETA(today); ok {
				fmt.Fprintf(out, "Target %s reached in %s months (around %s)\n", calc.Target, forecast.Months, eta)
			} else {
				fmt.Fprintf(out, "Target %s is unreachable at %s a month\n", calc.Target, calc.MonthlyContribution)
			}

			if !purchaseCost.IsZero() || !contributionChange.IsZero() {
				scenario := calc.WhatIf(purchaseCost, contributionChange)
				fmt.Fprintln(out, scenario.Message)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "amount to save (required)")
	_ = cmd.MarkFlagRequired("target")
	cmd.Flags().StringVar(&contribution, "contribution", "", "monthly contribution (default: recent average net)")
	cmd.Flags().StringVar(&savings, "savings", "", "current savings")
	cmd.Flags().StringVar(&purchase, "purchase", "", "what-if: one-off purchase paid from savings")
	cmd.Flags().StringVar(&change, "change", "", "what-if: change to the monthly contribution")
	cmd.Flags().IntVar(&months, "months", 3, "months of history for the average net")
	return cmd
}

// parseSigned parses an optional amount that may be negative.
func parseSigned(field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &core.ValidationError{Field: field, Value: raw, Err: core.ErrInvalidAmount}
	}
	return d, nil
}
