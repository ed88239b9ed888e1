package services

import (
	"context"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/dto"
)

// BillingSvc posts student charges and collections.
type BillingSvc interface {
	// ApplyFeeTemplate posts one charge per student; unknown students fail the whole batch up front.
	ApplyFeeTemplate(ctx context.Context, templateID string, req dto.ApplyFeeTemplateRequest, actor string) ([]domain.Journal, error)
	AssessFee(ctx context.Context, studentID string, req dto.AssessFeeRequest, actor string) (*domain.Journal, error)
	PostStudentPayment(ctx context.Context, studentID string, req dto.StudentPaymentRequest, actor string) (*domain.Journal, error)
}

// ProcurementSvc posts supplier invoices and payments.
type ProcurementSvc interface {
	PostPurchaseInvoice(ctx context.Context, supplierID string, req dto.PurchaseInvoiceRequest, actor string) (*domain.Journal, error)
	PostSupplierPayment(ctx context.Context, supplierID string, req dto.SupplierPaymentRequest, actor string) (*domain.Journal, error)
}

// PayrollSvc posts salaries and staff loans.
type PayrollSvc interface {
	PostPayroll(ctx context.Context, staffID string, req dto.PayrollRequest, actor string) (*domain.Journal, error)
	GrantStaffLoan(ctx context.Context, staffID string, req dto.StaffLoanRequest, actor string) (*domain.Journal, error)
}

// AssetSvc posts fixed-asset depreciation.
type AssetSvc interface {
	PostDepreciation(ctx context.Context, req dto.DepreciationRequest, actor string) (*domain.Journal, error)
}

// OperationsSvcFacade combines the school operations built on the ledger.
type OperationsSvcFacade interface {
	BillingSvc
	ProcurementSvc
	PayrollSvc
	AssetSvc
}
