package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/SscSPs/school_ledger/internal/handlers"
)

type ReportingHandlerTestSuite struct {
	routerSuite
}

func TestReportingHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingHandlerTestSuite))
}

func (suite *ReportingHandlerTestSuite) TestTrialBalance() {
	w := suite.do(http.MethodGet, "/api/v1/reports/trial-balance", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp dto.TrialBalanceResponse
	suite.decode(w, &resp)
	suite.Len(resp.Rows, 11)
	suite.NotEmpty(resp.AsOf)
	suite.True(resp.Totals.Debit.Equal(resp.Totals.Credit), "%s != %s", resp.Totals.Debit, resp.Totals.Credit)
}

func (suite *ReportingHandlerTestSuite) TestBalanceSheet() {
	w := suite.do(http.MethodGet, "/api/v1/reports/balance-sheet", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var report domain.BalanceSheetReport
	suite.decode(w, &report)
	suite.True(report.Balanced)
	suite.True(decimal.NewFromInt(623000).Equal(report.TotalAssets))
	suite.True(report.RetainedSurplus.IsZero())
}

func (suite *ReportingHandlerTestSuite) TestIncomeStatement() {
	suite.Require().Equal(http.StatusCreated, suite.do(http.MethodPost, "/api/v1/students/S1/charges", map[string]any{"amount": "9000"}).Code)

	w := suite.do(http.MethodGet, "/api/v1/reports/income-statement?from=2000-01-01&to=2999-12-31", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.IncomeStatementResponse
	suite.decode(w, &resp)
	suite.Equal("2000-01-01", resp.FromDate)
	suite.True(decimal.NewFromInt(9000).Equal(resp.Summary.TotalRevenue), resp.Summary.TotalRevenue.String())
	suite.True(decimal.NewFromInt(9000).Equal(resp.Summary.NetProfit))

	tests := []struct {
		name  string
		query string
	}{
		{name: "missing range", query: ""},
		{name: "bad date", query: "?from=June&to=2024-06-30"},
		{name: "inverted range", query: "?from=2024-06-30&to=2024-06-01"},
	}
	for _, tc := range tests {
		suite.Run(tc.name, func() {
			w := suite.do(http.MethodGet, "/api/v1/reports/income-statement"+tc.query, nil)
			suite.Equal(http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func (suite *ReportingHandlerTestSuite) TestDailyActivity() {
	w := suite.do(http.MethodGet, "/api/v1/reports/daily-activity", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var week []domain.DailyActivity
	suite.decode(w, &week)
	suite.Len(week, 7)

	w = suite.do(http.MethodGet, "/api/v1/reports/daily-activity?days=3", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var days []domain.DailyActivity
	suite.decode(w, &days)
	suite.Len(days, 3)

	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/v1/reports/daily-activity?days=0", nil).Code)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/v1/reports/daily-activity?days=400", nil).Code)
}

func (suite *ReportingHandlerTestSuite) TestReconciliation() {
	w := suite.do(http.MethodGet, "/api/v1/reports/reconciliation", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var recs []domain.Reconciliation
	suite.decode(w, &recs)
	suite.Require().Len(recs, 3)
	for _, rec := range recs {
		suite.True(rec.ControlBalance.Sub(rec.SubsidiaryTotal).Equal(rec.Unattributed), rec.Kind)
	}
}

func (suite *ReportingHandlerTestSuite) TestBudgets() {
	w := suite.do(http.MethodPost, "/api/v1/budgets", map[string]any{"budgetID": "B2", "accountID": "8", "amount": "60000", "period": "2024"})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	suite.Equal(http.StatusBadRequest, suite.do(http.MethodPost, "/api/v1/budgets", map[string]any{"accountID": "8", "amount": "0", "period": "2024"}).Code)

	w = suite.do(http.MethodGet, "/api/v1/budgets", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var list struct {
		Budgets []domain.Budget `json:"budgets"`
	}
	suite.decode(w, &list)
	suite.Len(list.Budgets, 2)

	w = suite.do(http.MethodGet, "/api/v1/budgets/variance", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var variance []domain.BudgetVariance
	suite.decode(w, &variance)
	suite.Require().Len(variance, 2)
	suite.Equal("B2", variance[1].BudgetID)
	suite.True(decimal.NewFromInt(60000).Equal(variance[1].Variance))
}

func (suite *ReportingHandlerTestSuite) TestAuditLog() {
	w := suite.do(http.MethodPost, "/api/v1/audit-logs", dto.RecordAuditRequest{Action: "Printed statements", Module: domain.ModuleBilling})
	suite.Require().Equal(http.StatusCreated, w.Code)
	suite.Equal(http.StatusBadRequest, suite.do(http.MethodPost, "/api/v1/audit-logs", map[string]string{"module": "Billing"}).Code)

	w = suite.do(http.MethodGet, "/api/v1/audit-logs?limit=1", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.ListAuditLogResponse
	suite.decode(w, &resp)
	suite.Require().Len(resp.Records, 1)
	suite.Equal("Printed statements", resp.Records[0].Action)
	suite.Greater(resp.Total, 1)

	suite.Equal(http.StatusBadRequest, suite.do(http.MethodGet, "/api/v1/audit-logs?limit=0", nil).Code)
}

func (suite *ReportingHandlerTestSuite) TestReportingFailures() {
	reporting := new(MockReportingService)
	reporting.On("TrialBalance", mock.Anything).Return(nil, errors.New("disk on fire"))
	reporting.On("BudgetVariance", mock.Anything).Return(nil, apperrors.NewAppError(http.StatusServiceUnavailable, "store offline", nil))

	container := *suite.services
	container.Reporting = reporting
	router := gin.New()
	suite.Require().NoError(handlers.RegisterRoutes(router, suite.cfg, &container))
	suite.router = router

	w := suite.do(http.MethodGet, "/api/v1/reports/trial-balance", nil)
	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Contains(w.Body.String(), "Failed to generate trial balance")
	suite.NotContains(w.Body.String(), "disk on fire")

	w = suite.do(http.MethodGet, "/api/v1/budgets/variance", nil)
	suite.Equal(http.StatusInternalServerError, w.Code)

	reporting.AssertExpectations(suite.T())
}
