// Package commands implements the finboardctl command line.
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"finboard/internal/backend"
	"finboard/internal/buildinfo"
	"finboard/internal/cli"
	"finboard/internal/config"
	"finboard/internal/log"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	backend     string
	dbPath      string
	seedFile    string
	amqpURL     string
	weekStart   string
	colorPolicy string
	logLevel    string

	amqpExchange string
	amqpQueue    string

	clock  func() time.Time
	logger *log.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	return newRootCommand(time.Now)
}

func newRootCommand(clock func() time.Time) *cobra.Command {
	cfg := config.Load()
	opts := &options{
		amqpExchange: cfg.AMQPExchange,
		amqpQueue:    cfg.AMQPQueue,
		clock:        clock,
	}

	rootCmd := &cobra.Command{
		Use:     "finboardctl",
		Short:   "Inspect and edit the finboard ledgers",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !backend.BackendType(opts.backend).IsValid() {
				return fmt.Errorf("invalid backend %q: must be one of %v", opts.backend, backend.BackendTypeStrings())
			}
			opts.logger = cli.SetupLogger(cmd.ErrOrStderr(), opts.logLevel, log.ComponentCLI)
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.backend, "backend", cfg.DataBackend, "data backend (memory or sqlite)")
	flags.StringVar(&opts.dbPath, "db", cfg.SQLiteDBPath, "SQLite database path")
	flags.StringVar(&opts.seedFile, "seed", cfg.SeedFile, "YAML seed file for the memory backend")
	flags.StringVar(&opts.amqpURL, "amqp-url", cfg.AMQPURL, "AMQP broker URL; empty disables events")
	flags.StringVar(&opts.weekStart, "week-start", cfg.WeekStart, "first day of the week")
	flags.StringVar(&opts.colorPolicy, "colors", cfg.ColorPolicy, "color policy (random or rotate)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level")

	rootCmd.AddCommand(
		newReportCommand(opts),
		newAddCommand(opts),
		newRemoveCommand(opts),
		newGoalCommand(opts),
		newMigrateCommand(opts),
		newWatchCommand(opts),
	)

	return rootCmd
}
