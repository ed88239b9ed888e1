package services

import (
	"context"
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
)

// ReportingService defines the financial statements derived from the ledger.
type ReportingService interface {
	// TrialBalance lists every account's current balance on its normal side.
	TrialBalance(ctx context.Context) (*domain.TrialBalance, error)

	// BalanceSheet reports assets against liabilities and equity, with net income as retained surplus.
	BalanceSheet(ctx context.Context) (*domain.BalanceSheetReport, error)

	// IncomeStatement reports revenue and expense movement over an inclusive date range.
	IncomeStatement(ctx context.Context, from, to time.Time) (*domain.PAndLReport, error)

	// DailyActivity reports revenue and expense movement per day for the trailing days, oldest first.
	DailyActivity(ctx context.Context, days int) ([]domain.DailyActivity, error)

	// BudgetVariance compares every budget with its account balance.
	BudgetVariance(ctx context.Context) ([]domain.BudgetVariance, error)
}
