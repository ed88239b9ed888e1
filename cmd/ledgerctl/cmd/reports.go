package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/platform/bootstrap"
	"github.com/SscSPs/school_ledger/internal/utils"
)

func newSummaryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print ledger-wide totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withLedger(cmd, func(ctx context.Context, l *bootstrap.Ledger, w io.Writer) error {
				s := l.Services.Ledger.Summarize(ctx)
				rows := []struct {
					label string
					value string
				}{
					{"Total assets", s.TotalAssets.StringFixed(2)},
					{"Total liabilities", s.TotalLiabilities.StringFixed(2)},
					{"Total equity", s.TotalEquity.StringFixed(2)},
					{"Total revenue", s.TotalRevenue.StringFixed(2)},
					{"Total expenses", s.TotalExpenses.StringFixed(2)},
					{"Net income", s.NetIncome.StringFixed(2)},
					{"Receivables", s.TotalAR.StringFixed(2)},
					{"Payables", s.TotalAP.StringFixed(2)},
					{"Staff loans", s.TotalStaffLoans.StringFixed(2)},
					{"Journals", fmt.Sprint(s.JournalCount)},
				}
				for _, r := range rows {
					fmt.Fprintf(w, "%s\t%s\n", r.label, r.value)
				}
				return nil
			})
		},
	}
}

func newAccountsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List the chart of accounts with balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withLedger(cmd, func(ctx context.Context, l *bootstrap.Ledger, w io.Writer) error {
				fmt.Fprintln(w, "ID\tCODE\tNAME\tTYPE\tBALANCE")
				for _, a := range l.Services.Ledger.ListAccounts(ctx) {
					balance, err := l.Services.Ledger.BalanceOf(ctx, a.AccountID)
					if err != nil {
						return err
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", a.AccountID, a.Code, a.Name, a.AccountType, balance.StringFixed(2))
				}
				return nil
			})
		},
	}
}

func newTrialBalanceCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "trial-balance",
		Short: "Print the trial balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withLedger(cmd, func(ctx context.Context, l *bootstrap.Ledger, w io.Writer) error {
				tb, err := l.Services.Reporting.TrialBalance(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, "CODE\tACCOUNT\tDEBIT\tCREDIT")
				for _, r := range tb.Rows {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Code, r.AccountName, r.Debit.StringFixed(2), r.Credit.StringFixed(2))
				}
				fmt.Fprintf(w, "\tTOTAL\t%s\t%s\n", tb.TotalDebit.StringFixed(2), tb.TotalCredit.StringFixed(2))
				return nil
			})
		},
	}
}

func newBalanceSheetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "balance-sheet",
		Short: "Print the balance sheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withLedger(cmd, func(ctx context.Context, l *bootstrap.Ledger, w io.Writer) error {
				bs, err := l.Services.Reporting.BalanceSheet(ctx)
				if err != nil {
					return err
				}
				section := func(title string, items []domain.AccountAmount) {
					fmt.Fprintf(w, "%s\t\n", title)
					for _, item := range items {
						fmt.Fprintf(w, "  %s\t%s\n", item.Name, item.NetAmount.StringFixed(2))
					}
				}
				section("ASSETS", bs.Assets)
				fmt.Fprintf(w, "Total assets\t%s\n", bs.TotalAssets.StringFixed(2))
				section("LIABILITIES", bs.Liabilities)
				fmt.Fprintf(w, "Total liabilities\t%s\n", bs.TotalLiabilities.StringFixed(2))
				section("EQUITY", bs.Equity)
				fmt.Fprintf(w, "  Retained surplus\t%s\n", bs.RetainedSurplus.StringFixed(2))
				fmt.Fprintf(w, "Total equity\t%s\n", bs.TotalEquity.StringFixed(2))
				if !bs.Balanced {
					fmt.Fprintln(w, "WARNING: assets do not equal liabilities plus equity\t")
				}
				return nil
			})
		},
	}
}

func newReconcileCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Compare control accounts with their sub-ledgers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withLedger(cmd, func(ctx context.Context, l *bootstrap.Ledger, w io.Writer) error {
				fmt.Fprintln(w, "KIND\tCONTROL\tCONTROL BALANCE\tSUB-LEDGER\tUNATTRIBUTED")
				for _, r := range l.Services.Ledger.Reconcile(ctx) {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.Kind, r.ControlAccountID,
						r.ControlBalance.StringFixed(2), r.SubsidiaryTotal.StringFixed(2), r.Unattributed.StringFixed(2))
				}
				return nil
			})
		},
	}
}

// errUnhealthy makes verify exit non-zero.
var errUnhealthy = errors.New("ledger integrity check failed")

func newVerifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Refold every journal and compare with the cached balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withLedger(cmd, func(ctx context.Context, l *bootstrap.Ledger, w io.Writer) error {
				report := l.Services.Ledger.VerifyIntegrity(ctx)
				fmt.Fprintf(w, "System debit\t%s\n", report.SystemDebit.StringFixed(2))
				fmt.Fprintf(w, "System credit\t%s\n", report.SystemCredit.StringFixed(2))

				ids := make([]string, 0, len(report.Drift))
				for id := range report.Drift {
					ids = append(ids, id)
				}
				sort.Strings(ids)
				for _, id := range ids {
					fmt.Fprintf(w, "Drift on %s\t%s\n", id, report.Drift[id].StringFixed(2))
				}

				if !report.Healthy() {
					return errUnhealthy
				}
				fmt.Fprintln(w, "OK\t")
				return nil
			})
		},
	}
}

func newAuditCmd(opts *options) *cobra.Command {
	var limit int
	c := &cobra.Command{
		Use:   "audit",
		Short: "Print the most recent activity records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withLedger(cmd, func(ctx context.Context, l *bootstrap.Ledger, w io.Writer) error {
				records := l.Services.Ledger.ListAuditLog(ctx)
				if limit > 0 && len(records) > limit {
					records = records[:limit]
				}
				fmt.Fprintln(w, "TIME\tACTOR\tMODULE\tACTION")
				for _, r := range records {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Timestamp.Format("2006-01-02 15:04:05"), r.Actor, r.Module, r.Action)
				}
				return nil
			})
		},
	}
	c.Flags().IntVarP(&limit, "limit", "n", 20, "maximum records to print (0 for all)")
	return c
}

func newAssetsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "assets",
		Short: "List the fixed-asset register with book values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withLedger(cmd, func(ctx context.Context, l *bootstrap.Ledger, w io.Writer) error {
				fmt.Fprintln(w, "ID\tNAME\tACQUIRED\tCOST\tACCUMULATED\tBOOK VALUE")
				for _, a := range l.Services.Ledger.ListAssets(ctx) {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", a.AssetID, a.Name, a.AcquiredOn.Format(domain.DateLayout),
						a.Cost.StringFixed(2), a.AccumulatedDepreciation.StringFixed(2), a.BookValue.StringFixed(2))
				}
				return nil
			})
		},
	}
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := utils.HashPassword(args[0])
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
