package dto

import (
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	AsOf   string                   `json:"asOf"`
	Rows   []domain.TrialBalanceRow `json:"rows"`
	Totals struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// ToTrialBalanceResponse converts a domain trial balance to a DTO response
func ToTrialBalanceResponse(tb *domain.TrialBalance, asOf time.Time) TrialBalanceResponse {
	response := TrialBalanceResponse{
		AsOf: asOf.Format(domain.DateLayout),
		Rows: tb.Rows,
	}
	response.Totals.Debit = tb.TotalDebit
	response.Totals.Credit = tb.TotalCredit
	return response
}

// IncomeStatementParams defines the inclusive date range of an income statement.
type IncomeStatementParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
}

// IncomeStatementResponse represents the income statement report response
type IncomeStatementResponse struct {
	FromDate string                 `json:"fromDate"`
	ToDate   string                 `json:"toDate"`
	Revenue  []domain.AccountAmount `json:"revenue"`
	Expenses []domain.AccountAmount `json:"expenses"`
	Summary  struct {
		TotalRevenue  decimal.Decimal `json:"totalRevenue"`
		TotalExpenses decimal.Decimal `json:"totalExpenses"`
		NetProfit     decimal.Decimal `json:"netProfit"`
	} `json:"summary"`
}

// ToIncomeStatementResponse converts a domain.PAndLReport to a DTO response
func ToIncomeStatementResponse(r *domain.PAndLReport) IncomeStatementResponse {
	response := IncomeStatementResponse{
		FromDate: r.From.Format(domain.DateLayout),
		ToDate:   r.To.Format(domain.DateLayout),
		Revenue:  r.Revenue,
		Expenses: r.Expenses,
	}
	response.Summary.TotalRevenue = r.TotalRevenue
	response.Summary.TotalExpenses = r.TotalExpenses
	response.Summary.NetProfit = r.NetProfit
	return response
}

// DailyActivityParams defines how many trailing days to report.
type DailyActivityParams struct {
	Days int `form:"days,default=7" binding:"gte=1,lte=366"`
}
