package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	ledger portssvc.LedgerSvcFacade
	now    func() time.Time
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingClock overrides the clock that anchors DailyActivity.
func WithReportingClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.now = now
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(ledger portssvc.LedgerSvcFacade, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		ledger: ledger,
		now:    func() time.Time { return time.Now().UTC() },
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance places each balance on the account's normal side; a negative
// balance moves to the opposite column.
func (s *reportingService) TrialBalance(ctx context.Context) (*domain.TrialBalance, error) {
	accounts := s.ledger.ListAccounts(ctx)
	tb := &domain.TrialBalance{
		Rows:        make([]domain.TrialBalanceRow, 0, len(accounts)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	for _, account := range accounts {
		balance, err := s.ledger.BalanceOf(ctx, account.AccountID)
		if err != nil {
			s.LogError(ctx, err, "Failed to compute balance for trial balance", slog.String("account_id", account.AccountID))
			return nil, fmt.Errorf("failed to compute trial balance: %w", err)
		}
		side, err := account.AccountType.NormalSide()
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", account.AccountID, err)
		}
		if balance.IsNegative() {
			balance = balance.Neg()
			if side == domain.DebitSide {
				side = domain.CreditSide
			} else {
				side = domain.DebitSide
			}
		}

		row := domain.TrialBalanceRow{
			AccountID:   account.AccountID,
			Code:        account.Code,
			AccountName: account.Name,
			AccountType: account.AccountType,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		if side == domain.DebitSide {
			row.Debit = balance
			tb.TotalDebit = tb.TotalDebit.Add(balance)
		} else {
			row.Credit = balance
			tb.TotalCredit = tb.TotalCredit.Add(balance)
		}
		tb.Rows = append(tb.Rows, row)
	}

	s.LogInfo(ctx, "Trial balance report generated successfully", slog.Int("row_count", len(tb.Rows)))
	return tb, nil
}

// BalanceSheet generates a balance sheet report as of now
func (s *reportingService) BalanceSheet(ctx context.Context) (*domain.BalanceSheetReport, error) {
	report := &domain.BalanceSheetReport{
		Assets:           []domain.AccountAmount{},
		Liabilities:      []domain.AccountAmount{},
		Equity:           []domain.AccountAmount{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}

	for _, account := range s.ledger.ListAccounts(ctx) {
		balance, err := s.ledger.BalanceOf(ctx, account.AccountID)
		if err != nil {
			s.LogError(ctx, err, "Failed to compute balance for balance sheet", slog.String("account_id", account.AccountID))
			return nil, fmt.Errorf("failed to compute balance sheet: %w", err)
		}
		amount := domain.AccountAmount{AccountID: account.AccountID, Name: account.Name, NetAmount: balance}
		switch account.AccountType {
		case domain.Asset:
			report.Assets = append(report.Assets, amount)
			report.TotalAssets = report.TotalAssets.Add(balance)
		case domain.Liability:
			report.Liabilities = append(report.Liabilities, amount)
			report.TotalLiabilities = report.TotalLiabilities.Add(balance)
		case domain.Equity:
			report.Equity = append(report.Equity, amount)
			report.TotalEquity = report.TotalEquity.Add(balance)
		}
	}

	summary := s.ledger.Summarize(ctx)
	report.RetainedSurplus = summary.NetIncome
	report.TotalEquity = report.TotalEquity.Add(report.RetainedSurplus)
	// Journals posted within tolerance leave exactly their debit/credit gap.
	gap := report.TotalAssets.Sub(report.TotalLiabilities.Add(report.TotalEquity))
	report.Balanced = gap.Equal(summary.SystemDebit.Sub(summary.SystemCredit))

	if !report.Balanced {
		s.LogError(ctx, fmt.Errorf("assets %s, liabilities and equity %s", report.TotalAssets, report.TotalLiabilities.Add(report.TotalEquity)),
			"Balance sheet does not balance")
	}
	s.LogInfo(ctx, "Balance sheet report generated successfully",
		slog.Int("asset_accounts", len(report.Assets)),
		slog.Int("liability_accounts", len(report.Liabilities)),
		slog.Int("equity_accounts", len(report.Equity)))
	return report, nil
}

// IncomeStatement folds revenue and expense lines of journals dated within
// [from, to]. Opening balances are excluded.
func (s *reportingService) IncomeStatement(ctx context.Context, from, to time.Time) (*domain.PAndLReport, error) {
	from, to = dayOf(from), dayOf(to)
	if from.After(to) {
		return nil, fmt.Errorf("%w: 'from' date %s is after 'to' date %s", apperrors.ErrValidation, from.Format(domain.DateLayout), to.Format(domain.DateLayout))
	}

	accounts := s.ledger.ListAccounts(ctx)
	movement, err := s.movement(ctx, accounts, dto.ListJournalsParams{From: &from, To: &to})
	if err != nil {
		return nil, err
	}

	report := &domain.PAndLReport{
		From:          from,
		To:            to,
		Revenue:       []domain.AccountAmount{},
		Expenses:      []domain.AccountAmount{},
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, account := range accounts {
		amount := domain.AccountAmount{AccountID: account.AccountID, Name: account.Name, NetAmount: movement[account.AccountID]}
		switch account.AccountType {
		case domain.Revenue:
			report.Revenue = append(report.Revenue, amount)
			report.TotalRevenue = report.TotalRevenue.Add(amount.NetAmount)
		case domain.Expense:
			report.Expenses = append(report.Expenses, amount)
			report.TotalExpenses = report.TotalExpenses.Add(amount.NetAmount)
		}
	}
	report.NetProfit = report.TotalRevenue.Sub(report.TotalExpenses)

	s.LogInfo(ctx, "Income statement generated successfully",
		slog.String("from", from.Format(domain.DateLayout)),
		slog.String("to", to.Format(domain.DateLayout)),
		slog.String("net_profit", report.NetProfit.String()))
	return report, nil
}

// DailyActivity reports revenue and expense movement for each of the trailing
// days ending today, oldest first. Days without activity report zero.
func (s *reportingService) DailyActivity(ctx context.Context, days int) ([]domain.DailyActivity, error) {
	if days < 1 || days > 366 {
		return nil, fmt.Errorf("%w: days must be between 1 and 366", apperrors.ErrValidation)
	}
	today := dayOf(s.now())
	start := today.AddDate(0, 0, -(days - 1))

	accountTypes := make(map[string]domain.AccountType)
	for _, account := range s.ledger.ListAccounts(ctx) {
		accountTypes[account.AccountID] = account.AccountType
	}

	activity := make([]domain.DailyActivity, days)
	index := make(map[string]int, days)
	for i := range activity {
		date := start.AddDate(0, 0, i).Format(domain.DateLayout)
		activity[i] = domain.DailyActivity{Date: date, Revenue: decimal.Zero, Expenses: decimal.Zero}
		index[date] = i
	}

	for _, j := range s.ledger.ListJournals(ctx, dto.ListJournalsParams{From: &start, To: &today}) {
		i, ok := index[j.JournalDate.Format(domain.DateLayout)]
		if !ok {
			continue
		}
		for _, l := range j.Lines {
			accountType := accountTypes[l.AccountID]
			if accountType != domain.Revenue && accountType != domain.Expense {
				continue
			}
			signed, err := accountType.SignedAmount(l.Debit, l.Credit)
			if err != nil {
				return nil, err
			}
			if accountType == domain.Revenue {
				activity[i].Revenue = activity[i].Revenue.Add(signed)
			} else {
				activity[i].Expenses = activity[i].Expenses.Add(signed)
			}
		}
	}
	return activity, nil
}

// BudgetVariance compares every budget with its account balance.
func (s *reportingService) BudgetVariance(ctx context.Context) ([]domain.BudgetVariance, error) {
	budgets := s.ledger.ListBudgets(ctx)
	out := make([]domain.BudgetVariance, 0, len(budgets))
	hundred := decimal.NewFromInt(100)

	for _, b := range budgets {
		account, err := s.ledger.GetAccount(ctx, b.AccountID)
		if err != nil {
			return nil, err
		}
		actual, err := s.ledger.BalanceOf(ctx, b.AccountID)
		if err != nil {
			return nil, err
		}
		utilisation := decimal.Zero
		if b.Amount.IsPositive() {
			utilisation = actual.Div(b.Amount).Mul(hundred).Round(2)
		}
		out = append(out, domain.BudgetVariance{
			Budget:      b,
			AccountName: account.Name,
			Actual:      actual,
			Variance:    b.Amount.Sub(actual),
			Utilisation: utilisation,
		})
	}
	return out, nil
}

// movement sums the signed line effects per account over the matching journals.
func (s *reportingService) movement(ctx context.Context, accounts []domain.Account, params dto.ListJournalsParams) (map[string]decimal.Decimal, error) {
	accountTypes := make(map[string]domain.AccountType, len(accounts))
	for _, a := range accounts {
		accountTypes[a.AccountID] = a.AccountType
	}

	movement := make(map[string]decimal.Decimal, len(accounts))
	for _, j := range s.ledger.ListJournals(ctx, params) {
		for _, l := range j.Lines {
			accountType, ok := accountTypes[l.AccountID]
			if !ok {
				continue
			}
			signed, err := accountType.SignedAmount(l.Debit, l.Credit)
			if err != nil {
				return nil, err
			}
			movement[l.AccountID] = movement[l.AccountID].Add(signed)
		}
	}
	return movement, nil
}
