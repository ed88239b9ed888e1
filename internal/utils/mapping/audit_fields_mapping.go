package mapping

import (
	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/models"
)

// ToModelAuditFields converts a domain AuditFields to a model AuditFields
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt: d.CreatedAt,
		CreatedBy: d.CreatedBy,
	}
}

// ToDomainAuditFields converts a model AuditFields to a domain AuditFields
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt: m.CreatedAt,
		CreatedBy: m.CreatedBy,
	}
}

// ToModelAuditRecord converts a domain AuditRecord to an audit_log row
func ToModelAuditRecord(d domain.AuditRecord) models.AuditRecord {
	return models.AuditRecord{
		AuditID:    d.AuditID,
		OccurredAt: d.Timestamp,
		Actor:      d.Actor,
		Action:     d.Action,
		Module:     d.Module,
	}
}

// ToDomainAuditRecord converts an audit_log row to a domain AuditRecord
func ToDomainAuditRecord(m models.AuditRecord) domain.AuditRecord {
	return domain.AuditRecord{
		AuditID:   m.AuditID,
		Timestamp: m.OccurredAt.UTC(),
		Actor:     m.Actor,
		Action:    m.Action,
		Module:    m.Module,
	}
}
