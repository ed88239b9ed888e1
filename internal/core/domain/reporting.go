package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Summary is the ledger-wide snapshot used by the dashboard.
type Summary struct {
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
	NetIncome        decimal.Decimal `json:"netIncome"`
	SystemDebit      decimal.Decimal `json:"systemDebit"`
	SystemCredit     decimal.Decimal `json:"systemCredit"`
	TotalAR          decimal.Decimal `json:"totalAR"`
	TotalAP          decimal.Decimal `json:"totalAP"`
	TotalStaffLoans  decimal.Decimal `json:"totalStaffLoans"`
	JournalCount     int             `json:"journalCount"`
}

// TrialBalanceRow represents a single row in a trial balance report
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalance is the full report with its column totals.
type TrialBalance struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// AccountAmount represents an account with its net amount for financial reports
type AccountAmount struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	NetAmount decimal.Decimal `json:"netAmount"`
}

// PAndLReport represents an income statement over a date range.
type PAndLReport struct {
	From          time.Time       `json:"from"`
	To            time.Time       `json:"to"`
	Revenue       []AccountAmount `json:"revenue"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetProfit     decimal.Decimal `json:"netProfit"` // Total revenue minus total expenses
}

// BalanceSheetReport represents a balance sheet report
type BalanceSheetReport struct {
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	RetainedSurplus  decimal.Decimal `json:"retainedSurplus"` // Current period net income
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"` // Includes RetainedSurplus
	Balanced         bool            `json:"balanced"`
}

// DailyActivity is the revenue and expense movement of one calendar day.
type DailyActivity struct {
	Date     string          `json:"date"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
}

// IntegrityReport is the result of refolding the journal against the cached balances.
type IntegrityReport struct {
	Balanced     bool                       `json:"balanced"` // Every journal's debits and credits agree within tolerance
	SystemDebit  decimal.Decimal            `json:"systemDebit"`
	SystemCredit decimal.Decimal            `json:"systemCredit"`
	Drift        map[string]decimal.Decimal `json:"drift,omitempty"` // Account id -> cached minus refolded
}

// Healthy reports whether the ledger is balanced and the caches agree with the journal.
func (r IntegrityReport) Healthy() bool {
	return r.Balanced && len(r.Drift) == 0
}
