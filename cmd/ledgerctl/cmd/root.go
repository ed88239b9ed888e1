// Package cmd provides the ledgerctl commands.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/SscSPs/school_ledger/internal/platform/bootstrap"
	"github.com/SscSPs/school_ledger/internal/platform/config"
)

type options struct {
	seedFile string
	inMemory bool
	debug    bool
}

// NewRootCmd builds the command tree. Every ledger command opens the ledger
// the same way the server does, so with PGSQL_URL set it reads the database.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Inspect the school ledger from the terminal",
		Long: `ledgerctl opens the school ledger and prints its reports.

Without PGSQL_URL (or with --in-memory) the ledger is built from the seed
file alone, which is handy for checking a new seed before deploying it.

Example:
  ledgerctl summary
  ledgerctl trial-balance --seed ./school.yaml
  ledgerctl hash-password 's3cret'`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logLevel := slog.LevelWarn
			if opts.debug {
				logLevel = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLevel})))
		},
	}

	root.PersistentFlags().StringVar(&opts.seedFile, "seed", "", "seed file (default is the embedded school seed)")
	root.PersistentFlags().BoolVar(&opts.inMemory, "in-memory", false, "ignore PGSQL_URL and build the ledger from the seed")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newSummaryCmd(opts),
		newAccountsCmd(opts),
		newTrialBalanceCmd(opts),
		newBalanceSheetCmd(opts),
		newReconcileCmd(opts),
		newVerifyCmd(opts),
		newAuditCmd(opts),
		newAssetsCmd(opts),
		newHashPasswordCmd(),
	)
	return root
}

// Execute runs the root command against the process arguments.
func Execute() error {
	return NewRootCmd().Execute()
}

// openLedger loads configuration, applies the command-line overrides and opens the ledger.
func (o *options) openLedger(ctx context.Context) (*bootstrap.Ledger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if o.seedFile != "" {
		cfg.SeedFile = o.seedFile
	}
	if o.inMemory {
		cfg.DatabaseURL = ""
	}
	return bootstrap.Open(ctx, cfg, slog.Default())
}

// withLedger opens the ledger for the duration of fn.
func (o *options) withLedger(cmd *cobra.Command, fn func(ctx context.Context, l *bootstrap.Ledger, w io.Writer) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	l, err := o.openLedger(ctx)
	if err != nil {
		return err
	}
	defer l.Close()

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	if err := fn(ctx, l, tw); err != nil {
		return err
	}
	return tw.Flush()
}
