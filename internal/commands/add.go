package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"finboard/internal/core"
)

func newAddCommand(opts *options) *cobra.Command {
	var category, date string

	cmd := &cobra.Command{
		Use:   "add NAME AMOUNT",
		Short: "Record a transaction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePersistent(opts, "add"); err != nil {
				return err
			}
			session, closeFn, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := selectCategory(session, category); err != nil {
				return err
			}
			tx, err := session.AddForm(cmd.Context(), args[0], args[1], date)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s: %s %s on %s\n",
				session.Category(), tx.ID, tx.Name, tx.Amount, tx.Date)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", string(core.Expense), "ledger to add to")
	cmd.Flags().StringVarP(&date, "date", "d", "", "transaction date YYYY-MM-DD (default today)")
	return cmd
}

func newRemoveCommand(opts *options) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove"},
		Short:   "Delete a transaction by id",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePersistent(opts, "rm"); err != nil {
				return err
			}
			session, closeFn, err := openSession(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer closeFn()

			if err := selectCategory(session, category); err != nil {
				return err
			}
			removed, err := session.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "No %s transaction with id %s\n", session.Category(), args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %s\n", session.Category(), args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", string(core.Expense), "ledger to remove from")
	return cmd
}
