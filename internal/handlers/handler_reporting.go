package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/SscSPs/school_ledger/internal/middleware"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	ledger           portssvc.LedgerSvcFacade
	reportingService portssvc.ReportingService
}

// newReportingHandler creates a new reportingHandler
func newReportingHandler(ledger portssvc.LedgerSvcFacade, rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		ledger:           ledger,
		reportingService: rs,
	}
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade, reportingService portssvc.ReportingService) {
	h := newReportingHandler(ledger, reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/trial-balance", h.getTrialBalance)
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
		reportingGroup.GET("/income-statement", h.getIncomeStatement)
		reportingGroup.GET("/daily-activity", h.getDailyActivity)
		reportingGroup.GET("/reconciliation", h.getReconciliation)
	}
}

// getTrialBalance godoc
// @Summary Generate trial balance report
// @Description Lists every account's current balance on its normal side. A negative balance moves to the opposite column.
// @Tags reports
// @Produce json
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tb, err := h.reportingService.TrialBalance(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "generate trial balance")
		return
	}

	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb, time.Now().UTC()))
}

// getBalanceSheet godoc
// @Summary Generate balance sheet report
// @Description Assets against liabilities and equity, with current-period net income shown as retained surplus
// @Tags reports
// @Produce json
// @Success 200 {object} domain.BalanceSheetReport
// @Failure 500 {object} ErrorResponse "Failed to generate report"
// @Security BearerAuth
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	report, err := h.reportingService.BalanceSheet(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "generate balance sheet")
		return
	}
	if !report.Balanced {
		logger.Warn("Balance sheet does not balance",
			slog.String("assets", report.TotalAssets.String()),
			slog.String("liabilities", report.TotalLiabilities.String()),
			slog.String("equity", report.TotalEquity.String()))
	}

	c.JSON(http.StatusOK, report)
}

// getIncomeStatement godoc
// @Summary Generate income statement
// @Description Revenue and expense movement over an inclusive date range
// @Tags reports
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.IncomeStatementResponse
// @Failure 400 {object} ErrorResponse "Invalid date range"
// @Security BearerAuth
// @Router /reports/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.IncomeStatementParams
	if !bindQuery(c, logger, &params) {
		return
	}

	logger = logger.With(
		slog.String("from", params.From.Format("2006-01-02")),
		slog.String("to", params.To.Format("2006-01-02")),
	)

	report, err := h.reportingService.IncomeStatement(c.Request.Context(), params.From, params.To)
	if err != nil {
		respondError(c, logger, err, "generate income statement")
		return
	}

	c.JSON(http.StatusOK, dto.ToIncomeStatementResponse(report))
}

// getDailyActivity godoc
// @Summary Daily revenue and expense activity
// @Tags reports
// @Produce json
// @Param days query int false "Trailing days" default(7)
// @Success 200 {array} domain.DailyActivity
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/daily-activity [get]
func (h *reportingHandler) getDailyActivity(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.DailyActivityParams
	if !bindQuery(c, logger, &params) {
		return
	}

	activity, err := h.reportingService.DailyActivity(c.Request.Context(), params.Days)
	if err != nil {
		respondError(c, logger, err, "generate daily activity")
		return
	}
	c.JSON(http.StatusOK, activity)
}

// getReconciliation godoc
// @Summary Sub-ledger reconciliation
// @Description Compares each control account with the sum of its student, supplier or staff balances
// @Tags reports
// @Produce json
// @Success 200 {array} domain.Reconciliation
// @Security BearerAuth
// @Router /reports/reconciliation [get]
func (h *reportingHandler) getReconciliation(c *gin.Context) {
	c.JSON(http.StatusOK, h.ledger.Reconcile(c.Request.Context()))
}
