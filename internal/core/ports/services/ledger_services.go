package services

import (
	"context"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountRegistrySvc defines operations on the chart of accounts.
type AccountRegistrySvc interface {
	// RegisterAccount adds an account; the id is generated when the request leaves it empty.
	RegisterAccount(ctx context.Context, req dto.CreateAccountRequest, actor string) (*domain.Account, error)

	// GetAccount returns a copy of the account or ErrAccountNotFound.
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts returns every account in registration order.
	ListAccounts(ctx context.Context) []domain.Account
}

// JournalReaderSvc defines read operations for posted journals.
type JournalReaderSvc interface {
	GetJournal(ctx context.Context, journalID string) (*domain.Journal, error)

	// ListJournals returns matching journals in posting order.
	ListJournals(ctx context.Context, params dto.ListJournalsParams) []domain.Journal
}

// JournalWriterSvc is the single choke point for posting and deleting journals.
type JournalWriterSvc interface {
	// PostJournal validates the lines and appends a balanced journal.
	PostJournal(ctx context.Context, req dto.PostJournalRequest, actor string) (*domain.Journal, error)

	// DeleteJournal removes a journal and reverses its effects on every balance.
	DeleteJournal(ctx context.Context, journalID string, actor string) error
}

// BalanceSvc derives balances and aggregates from the journal.
type BalanceSvc interface {
	BalanceOf(ctx context.Context, accountID string) (decimal.Decimal, error)
	Summarize(ctx context.Context) domain.Summary

	// VerifyIntegrity refolds the journal and compares it with the cached balances.
	VerifyIntegrity(ctx context.Context) domain.IntegrityReport
}

// SubsidiarySvc defines operations on the student, supplier and staff sub-ledgers.
type SubsidiarySvc interface {
	RegisterStudent(ctx context.Context, req dto.CreateStudentRequest, actor string) (*domain.Student, error)
	RegisterSupplier(ctx context.Context, req dto.CreateSupplierRequest, actor string) (*domain.Supplier, error)
	RegisterStaff(ctx context.Context, req dto.CreateStaffRequest, actor string) (*domain.Staff, error)

	GetStudent(ctx context.Context, studentID string) (*domain.Student, error)
	GetSupplier(ctx context.Context, supplierID string) (*domain.Supplier, error)
	GetStaff(ctx context.Context, staffID string) (*domain.Staff, error)

	ListStudents(ctx context.Context) []domain.Student
	ListSuppliers(ctx context.Context) []domain.Supplier
	ListStaff(ctx context.Context) []domain.Staff

	// SubsidiaryBalance is opening balance plus the control-account effects of tagged journals.
	SubsidiaryBalance(ctx context.Context, ref domain.SubsidiaryRef) (decimal.Decimal, error)

	// ListSubsidiaryBalances returns the balance of every entity of one kind.
	ListSubsidiaryBalances(ctx context.Context, kind domain.SubsidiaryKind) []domain.SubsidiaryBalance

	// Reconcile compares each control account with the sum of its sub-ledger.
	Reconcile(ctx context.Context) []domain.Reconciliation
}

// CatalogSvc defines fee templates and budgets.
type CatalogSvc interface {
	RegisterFeeTemplate(ctx context.Context, req dto.CreateFeeTemplateRequest, actor string) (*domain.FeeTemplate, error)
	GetFeeTemplate(ctx context.Context, templateID string) (*domain.FeeTemplate, error)
	ListFeeTemplates(ctx context.Context) []domain.FeeTemplate

	RegisterBudget(ctx context.Context, req dto.CreateBudgetRequest, actor string) (*domain.Budget, error)
	ListBudgets(ctx context.Context) []domain.Budget
}

// AssetRegisterSvc defines the fixed-asset register. Book values are derived
// from journals tagged with the asset id.
type AssetRegisterSvc interface {
	RegisterAsset(ctx context.Context, req dto.CreateAssetRequest, actor string) (*domain.FixedAsset, error)
	GetAsset(ctx context.Context, assetID string) (*domain.AssetValue, error)
	ListAssets(ctx context.Context) []domain.AssetValue
}

// AuditLogSvc defines the activity trail.
type AuditLogSvc interface {
	RecordAudit(ctx context.Context, actor, action, module string) error

	// ListAuditLog returns records newest first.
	ListAuditLog(ctx context.Context) []domain.AuditRecord
}

// LedgerSvcFacade combines all ledger-core service interfaces
// This is a facade for clients that need access to all operations
type LedgerSvcFacade interface {
	AccountRegistrySvc
	JournalReaderSvc
	JournalWriterSvc
	BalanceSvc
	SubsidiarySvc
	CatalogSvc
	AssetRegisterSvc
	AuditLogSvc

	// PostingAccounts returns the configured account roles.
	PostingAccounts() domain.PostingAccounts

	// Restore replaces the in-memory state with a persisted snapshot without writing through.
	Restore(ctx context.Context, snapshot *domain.LedgerSnapshot) error
}
