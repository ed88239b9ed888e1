package services_test

import (
	"context"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock LedgerStore ---
type MockLedgerStore struct {
	mock.Mock
}

// Ensure MockLedgerStore implements portsrepo.LedgerStore
var _ portsrepo.LedgerStore = (*MockLedgerStore)(nil)

func (m *MockLedgerStore) SaveAccount(ctx context.Context, account domain.Account, audit domain.AuditRecord) error {
	args := m.Called(ctx, account, audit)
	return args.Error(0)
}

func (m *MockLedgerStore) SaveJournal(ctx context.Context, journal domain.Journal, audit domain.AuditRecord) error {
	args := m.Called(ctx, journal, audit)
	return args.Error(0)
}

func (m *MockLedgerStore) DeleteJournal(ctx context.Context, journalID string, audit domain.AuditRecord) error {
	args := m.Called(ctx, journalID, audit)
	return args.Error(0)
}

func (m *MockLedgerStore) SaveStudent(ctx context.Context, student domain.Student, audit domain.AuditRecord) error {
	args := m.Called(ctx, student, audit)
	return args.Error(0)
}

func (m *MockLedgerStore) SaveSupplier(ctx context.Context, supplier domain.Supplier, audit domain.AuditRecord) error {
	args := m.Called(ctx, supplier, audit)
	return args.Error(0)
}

func (m *MockLedgerStore) SaveStaff(ctx context.Context, staff domain.Staff, audit domain.AuditRecord) error {
	args := m.Called(ctx, staff, audit)
	return args.Error(0)
}

func (m *MockLedgerStore) SaveFeeTemplate(ctx context.Context, template domain.FeeTemplate, audit domain.AuditRecord) error {
	args := m.Called(ctx, template, audit)
	return args.Error(0)
}

func (m *MockLedgerStore) SaveBudget(ctx context.Context, budget domain.Budget, audit domain.AuditRecord) error {
	args := m.Called(ctx, budget, audit)
	return args.Error(0)
}

func (m *MockLedgerStore) SaveAsset(ctx context.Context, asset domain.FixedAsset, audit domain.AuditRecord) error {
	args := m.Called(ctx, asset, audit)
	return args.Error(0)
}

func (m *MockLedgerStore) AppendAudit(ctx context.Context, audit domain.AuditRecord) error {
	args := m.Called(ctx, audit)
	return args.Error(0)
}

func (m *MockLedgerStore) LoadSnapshot(ctx context.Context) (*domain.LedgerSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerSnapshot), args.Error(1)
}
