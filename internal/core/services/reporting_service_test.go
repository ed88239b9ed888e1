package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/core/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	ledger    portssvc.LedgerSvcFacade
	reporting portssvc.ReportingService
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.ledger = newSchoolLedger(suite.T())
	suite.reporting = services.NewReportingService(suite.ledger, services.WithReportingClock(fixedClock))
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}

func (suite *ReportingServiceTestSuite) post(description string, lines ...dto.LineRequest) {
	_, err := suite.ledger.PostJournal(suite.ctx, dto.PostJournalRequest{Description: description, Lines: lines}, "tester")
	suite.Require().NoError(err)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_OpeningPosition() {
	report, err := suite.reporting.BalanceSheet(suite.ctx)
	suite.Require().NoError(err)

	suite.True(dec("623000").Equal(report.TotalAssets), report.TotalAssets.String())
	suite.True(dec("2000").Equal(report.TotalLiabilities))
	suite.True(dec("621000").Equal(report.TotalEquity))
	suite.True(report.RetainedSurplus.IsZero())
	suite.True(report.Balanced)
	suite.Len(report.Assets, 4)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_IncludesRetainedSurplus() {
	suite.post("Tuition", debit("1", "9000"), credit("6", "9000"))
	suite.post("Utilities", debit("8", "1500"), credit("1", "1500"))

	report, err := suite.reporting.BalanceSheet(suite.ctx)
	suite.Require().NoError(err)
	suite.True(dec("7500").Equal(report.RetainedSurplus))
	suite.True(dec("628500").Equal(report.TotalEquity))
	suite.True(report.Balanced)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_RoundedJournalStaysBalanced() {
	suite.post("Rounded utilities", debit("8", "100.00"), credit("1", "99.995"))

	report, err := suite.reporting.BalanceSheet(suite.ctx)
	suite.Require().NoError(err)
	suite.True(report.Balanced)
}

func (suite *ReportingServiceTestSuite) TestBalanceSheet_UnbalancedOpeningPosition() {
	ledger := services.NewLedgerService(services.WithClock(fixedClock))
	_, err := ledger.RegisterAccount(suite.ctx, dto.CreateAccountRequest{AccountID: "1", Name: "Cash", AccountType: domain.Asset, OpeningBalance: dec("100")}, "tester")
	suite.Require().NoError(err)

	report, err := services.NewReportingService(ledger).BalanceSheet(suite.ctx)
	suite.Require().NoError(err)
	suite.False(report.Balanced)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance() {
	suite.post("Tuition", debit("2", "17500"), credit("6", "17500"))
	// Overdrawn bank shows on the credit side.
	suite.post("Building repair", debit("3", "120000"), credit("1", "120000"))

	tb, err := suite.reporting.TrialBalance(suite.ctx)
	suite.Require().NoError(err)
	suite.Len(tb.Rows, 10)
	suite.True(tb.TotalDebit.Equal(tb.TotalCredit), "debit %s credit %s", tb.TotalDebit, tb.TotalCredit)

	cash := tb.Rows[0]
	suite.Equal("1", cash.AccountID)
	suite.Equal("1000", cash.Code)
	suite.True(cash.Debit.IsZero())
	suite.True(dec("20000").Equal(cash.Credit))

	for _, row := range tb.Rows {
		if row.AccountID == "6" {
			suite.True(dec("17500").Equal(row.Credit))
			suite.True(row.Debit.IsZero())
		}
	}
}

func (suite *ReportingServiceTestSuite) TestIncomeStatement() {
	suite.post("Tuition", debit("1", "9000"), credit("6", "9000"))
	suite.post("Salaries", debit("7", "4000"), credit("1", "4000"))
	suite.post("Utilities", debit("8", "1000"), credit("4", "1000"))

	from := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)
	report, err := suite.reporting.IncomeStatement(suite.ctx, from, to)
	suite.Require().NoError(err)
	suite.True(dec("9000").Equal(report.TotalRevenue))
	suite.True(dec("5000").Equal(report.TotalExpenses))
	suite.True(dec("4000").Equal(report.NetProfit))
	suite.Len(report.Revenue, 1)
	suite.Len(report.Expenses, 2)

	earlier, err := suite.reporting.IncomeStatement(suite.ctx, from.AddDate(0, -1, 0), from.AddDate(0, 0, -1))
	suite.Require().NoError(err)
	suite.True(earlier.NetProfit.IsZero())

	_, err = suite.reporting.IncomeStatement(suite.ctx, to, from)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestDailyActivity() {
	suite.post("Tuition", debit("1", "9000"), credit("6", "9000"))
	suite.post("Utilities", debit("8", "1000"), credit("1", "1000"))

	activity, err := suite.reporting.DailyActivity(suite.ctx, 3)
	suite.Require().NoError(err)
	suite.Require().Len(activity, 3)
	suite.Equal("2024-06-12", activity[0].Date)
	suite.Equal("2024-06-14", activity[2].Date)
	suite.True(activity[0].Revenue.IsZero())
	suite.True(dec("9000").Equal(activity[2].Revenue))
	suite.True(dec("1000").Equal(activity[2].Expenses))

	_, err = suite.reporting.DailyActivity(suite.ctx, 0)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestBudgetVariance() {
	_, err := suite.ledger.RegisterBudget(suite.ctx, dto.CreateBudgetRequest{BudgetID: "B1", AccountID: "7", Amount: dec("2000000"), Period: "2024"}, "principal")
	suite.Require().NoError(err)
	suite.post("Payroll", debit("7", "35000"), credit("1", "35000"))

	variance, err := suite.reporting.BudgetVariance(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(variance, 1)
	suite.Equal("Teacher Salaries", variance[0].AccountName)
	suite.True(dec("35000").Equal(variance[0].Actual))
	suite.True(dec("1965000").Equal(variance[0].Variance))
	suite.True(dec("1.75").Equal(variance[0].Utilisation), variance[0].Utilisation.String())

	audit := suite.ledger.ListAuditLog(suite.ctx)
	suite.Equal("Set 2024 budget for Teacher Salaries: 2000000.00", audit[1].Action)
	suite.Equal(domain.ModuleBudgeting, audit[1].Module)
}

func (suite *ReportingServiceTestSuite) TestBudget_Validation() {
	_, err := suite.ledger.RegisterBudget(suite.ctx, dto.CreateBudgetRequest{AccountID: "7", Amount: dec("0"), Period: "2024"}, "principal")
	suite.ErrorIs(err, services.ErrNonPositiveAmount)
	_, err = suite.ledger.RegisterBudget(suite.ctx, dto.CreateBudgetRequest{AccountID: "404", Amount: dec("10"), Period: "2024"}, "principal")
	suite.ErrorIs(err, services.ErrAccountNotFound)
}
