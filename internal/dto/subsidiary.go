package dto

import (
	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateStudentRequest defines the data needed to enrol a student.
type CreateStudentRequest struct {
	StudentID      string          `json:"studentID"`
	Name           string          `json:"name" binding:"required"`
	GradeLevel     string          `json:"gradeLevel"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// CreateSupplierRequest defines the data needed to register a supplier.
type CreateSupplierRequest struct {
	SupplierID     string          `json:"supplierID"`
	Name           string          `json:"name" binding:"required"`
	Category       string          `json:"category"`
	OpeningPayable decimal.Decimal `json:"openingPayable"`
}

// CreateStaffRequest defines the data needed to register a staff member.
type CreateStaffRequest struct {
	StaffID            string          `json:"staffID"`
	Name               string          `json:"name" binding:"required"`
	Position           string          `json:"position"`
	Category           string          `json:"category"`
	BasicPay           decimal.Decimal `json:"basicPay" binding:"gte=0"`
	OpeningLoanBalance decimal.Decimal `json:"openingLoanBalance"`
}

// SubsidiaryEntityResponse is a student, supplier or staff member with its derived balance.
type SubsidiaryEntityResponse struct {
	Entity  any             `json:"entity"`
	Balance decimal.Decimal `json:"balance"`
}

// SubsidiaryLedgerResponse is the statement of one entity: balance plus tagged journals.
type SubsidiaryLedgerResponse struct {
	Ref      domain.SubsidiaryRef `json:"ref"`
	Balance  decimal.Decimal      `json:"balance"`
	Journals []JournalResponse    `json:"journals"`
}

// ListSubsidiaryEntitiesResponse wraps the entities of one kind with their balances.
type ListSubsidiaryEntitiesResponse struct {
	Entities []SubsidiaryEntityResponse `json:"entities"`
	Total    decimal.Decimal            `json:"total"`
}

// ListFeeTemplatesResponse wraps the fee templates.
type ListFeeTemplatesResponse struct {
	Templates []domain.FeeTemplate `json:"templates"`
}

// ApplyFeeTemplateResponse lists the journals posted for a fee batch.
type ApplyFeeTemplateResponse struct {
	TemplateID string            `json:"templateID"`
	Journals   []JournalResponse `json:"journals"`
}
