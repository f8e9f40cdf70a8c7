package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"finboard/internal/storage"
)

func newMigrateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations to the SQLite file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := storage.RunMigrations(opts.dbPath); err != nil {
				return err
			}
			version, dirty, err := storage.SchemaVersion(opts.dbPath)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s at schema version %d (dirty: %t)\n", opts.dbPath, version, dirty)
			return nil
		},
	}
}
