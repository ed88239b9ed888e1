package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Student struct {
	StudentID      string          `db:"student_id"`
	Name           string          `db:"name"`
	GradeLevel     string          `db:"grade_level"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	AuditFields
}

type Supplier struct {
	SupplierID     string          `db:"supplier_id"`
	Name           string          `db:"name"`
	Category       string          `db:"category"`
	OpeningPayable decimal.Decimal `db:"opening_payable"`
	AuditFields
}

type Staff struct {
	StaffID            string          `db:"staff_id"`
	Name               string          `db:"name"`
	Position           string          `db:"position"`
	Category           string          `db:"category"`
	BasicPay           decimal.Decimal `db:"basic_pay"`
	OpeningLoanBalance decimal.Decimal `db:"opening_loan_balance"`
	AuditFields
}

// FeeTemplate stores its items as JSONB.
type FeeTemplate struct {
	TemplateID string    `db:"template_id"`
	Name       string    `db:"name"`
	GradeLevel string    `db:"grade_level"`
	Items      []FeeItem `db:"items"`
	AuditFields
}

type FeeItem struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type Budget struct {
	BudgetID  string          `db:"budget_id"`
	AccountID string          `db:"account_id"`
	Amount    decimal.Decimal `db:"amount"`
	Period    string          `db:"period"`
	AuditFields
}

type FixedAsset struct {
	AssetID            string          `db:"asset_id"`
	Name               string          `db:"name"`
	AccountID          string          `db:"account_id"`
	Cost               decimal.Decimal `db:"cost"`
	DepreciationAmount decimal.Decimal `db:"depreciation_amount"`
	AcquiredOn         time.Time       `db:"acquired_on"`
	AuditFields
}
