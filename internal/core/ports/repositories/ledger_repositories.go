package repositories

import (
	"context"

	"github.com/SscSPs/school_ledger/internal/core/domain"
)

// Every write carries the audit record describing it so the store can persist
// both in one database transaction.

// AccountWriter persists chart-of-accounts registrations.
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.Account, audit domain.AuditRecord) error
}

// JournalWriter persists posted journals and their removal.
type JournalWriter interface {
	// SaveJournal persists a journal with its lines.
	SaveJournal(ctx context.Context, journal domain.Journal, audit domain.AuditRecord) error

	// DeleteJournal removes a journal and its lines.
	DeleteJournal(ctx context.Context, journalID string, audit domain.AuditRecord) error
}

// SubsidiaryWriter persists students, suppliers and staff.
type SubsidiaryWriter interface {
	SaveStudent(ctx context.Context, student domain.Student, audit domain.AuditRecord) error
	SaveSupplier(ctx context.Context, supplier domain.Supplier, audit domain.AuditRecord) error
	SaveStaff(ctx context.Context, staff domain.Staff, audit domain.AuditRecord) error
}

// BillingWriter persists fee templates and budgets.
type BillingWriter interface {
	SaveFeeTemplate(ctx context.Context, template domain.FeeTemplate, audit domain.AuditRecord) error
	SaveBudget(ctx context.Context, budget domain.Budget, audit domain.AuditRecord) error
}

// AssetWriter persists the fixed-asset register.
type AssetWriter interface {
	SaveAsset(ctx context.Context, asset domain.FixedAsset, audit domain.AuditRecord) error
}

// AuditWriter persists free-standing audit records.
type AuditWriter interface {
	AppendAudit(ctx context.Context, audit domain.AuditRecord) error
}

// SnapshotReader restores the persisted ledger at startup.
type SnapshotReader interface {
	LoadSnapshot(ctx context.Context) (*domain.LedgerSnapshot, error)
}

// LedgerStore combines all ledger persistence interfaces.
// This is a facade for the ledger service, which writes through it before
// mutating its in-memory state.
type LedgerStore interface {
	AccountWriter
	JournalWriter
	SubsidiaryWriter
	BillingWriter
	AssetWriter
	AuditWriter
	SnapshotReader
}
