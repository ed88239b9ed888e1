package mapping

import (
	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		Code:           d.Code,
		Name:           d.Name,
		AccountType:    models.AccountType(d.AccountType),
		OpeningBalance: d.OpeningBalance,
		Description:    d.Description,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		Code:           m.Code,
		Name:           m.Name,
		AccountType:    domain.AccountType(m.AccountType),
		OpeningBalance: m.OpeningBalance,
		Description:    m.Description,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAccounts converts a slice of model Accounts to domain Accounts
func ToDomainAccounts(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
