package dto

import (
	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateFeeTemplateRequest defines a reusable fee package.
type CreateFeeTemplateRequest struct {
	TemplateID string           `json:"templateID"`
	Name       string           `json:"name" binding:"required"`
	GradeLevel string           `json:"gradeLevel"`
	Items      []domain.FeeItem `json:"items" binding:"required,min=1"`
}

// ApplyFeeTemplateRequest lists the students to bill.
type ApplyFeeTemplateRequest struct {
	StudentIDs []string `json:"studentIDs" binding:"required,min=1"`
}

// AmountRequest is the common shape of single-amount school operations.
type AmountRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
}

// AssessFeeRequest charges one student directly.
type AssessFeeRequest struct {
	AmountRequest
}

// StudentPaymentRequest records cash received from a student.
type StudentPaymentRequest struct {
	AmountRequest
}

// PurchaseInvoiceRequest records a supplier bill.
type PurchaseInvoiceRequest struct {
	AmountRequest
	ExpenseAccountID string `json:"expenseAccountID"` // Defaults to the purchase expense role
}

// SupplierPaymentRequest records cash paid to a supplier.
type SupplierPaymentRequest struct {
	AmountRequest
}

// StaffLoanRequest records a salary loan granted to a staff member.
type StaffLoanRequest struct {
	AmountRequest
}

// PayrollRequest posts one staff member's pay for a period.
// Net pay is gross minus every deduction and must not be negative.
type PayrollRequest struct {
	Period          string          `json:"period" binding:"required"`
	GrossPay        decimal.Decimal `json:"grossPay" binding:"required"`
	WithholdingTax  decimal.Decimal `json:"withholdingTax" binding:"gte=0"`
	OtherDeductions decimal.Decimal `json:"otherDeductions" binding:"gte=0"`
	LoanDeduction   decimal.Decimal `json:"loanDeduction" binding:"gte=0"`
	Reference       string          `json:"reference"`
}

// DepreciationRequest posts depreciation of a fixed asset. Either AssetID or
// AssetAccountID is required.
type DepreciationRequest struct {
	AmountRequest
	AssetID          string `json:"assetID"`          // Registered asset; a zero amount charges its DepreciationAmount
	AssetAccountID   string `json:"assetAccountID"`   // Unregistered asset account, used when AssetID is empty
	ExpenseAccountID string `json:"expenseAccountID"` // Defaults to the depreciation expense role
}

// CreateAssetRequest registers a fixed asset.
type CreateAssetRequest struct {
	AssetID            string          `json:"assetID"`
	Name               string          `json:"name" binding:"required"`
	AccountID          string          `json:"accountID" binding:"required"` // Asset account carrying the cost
	Cost               decimal.Decimal `json:"cost" binding:"required"`
	DepreciationAmount decimal.Decimal `json:"depreciationAmount"`
	AcquiredOn         string          `json:"acquiredOn" binding:"required" example:"2023-01-15"`
}

// CreateBudgetRequest defines a budget line.
type CreateBudgetRequest struct {
	BudgetID  string          `json:"budgetID"`
	AccountID string          `json:"accountID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Period    string          `json:"period" binding:"required"`
}

// ListAssetsResponse lists the fixed-asset register.
type ListAssetsResponse struct {
	Assets []domain.AssetValue `json:"assets"`
}
