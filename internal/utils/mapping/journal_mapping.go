package mapping

import (
	"github.com/google/uuid"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/models"
)

// ToModelJournal converts a domain Journal to a journals row and its transaction rows.
// Each line becomes one DEBIT or CREDIT row; inert lines are skipped.
func ToModelJournal(d domain.Journal) (models.Journal, []models.Transaction) {
	m := models.Journal{
		JournalID:      d.JournalID,
		JournalDate:    d.JournalDate,
		Description:    d.Description,
		Reference:      d.Reference,
		Module:         d.Module,
		SubsidiaryKind: string(d.Subsidiary.Kind),
		SubsidiaryID:   d.Subsidiary.ID,
		Metadata:       d.Metadata,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}

	txns := make([]models.Transaction, 0, len(d.Lines))
	for i, l := range d.Lines {
		t := models.Transaction{
			TransactionID: uuid.NewString(),
			JournalID:     d.JournalID,
			LineNo:        i + 1,
			AccountID:     l.AccountID,
		}
		switch {
		case l.Debit.IsPositive():
			t.Amount, t.TransactionType = l.Debit, models.Debit
		case l.Credit.IsPositive():
			t.Amount, t.TransactionType = l.Credit, models.Credit
		default:
			continue
		}
		txns = append(txns, t)
	}
	return m, txns
}

// ToDomainJournal converts a journals row and its transactions (in line order) to a domain Journal
func ToDomainJournal(m models.Journal, txns []models.Transaction) domain.Journal {
	lines := make([]domain.Line, len(txns))
	for i, t := range txns {
		lines[i] = ToDomainLine(t)
	}
	return domain.Journal{
		JournalID:   m.JournalID,
		JournalDate: m.JournalDate.UTC(),
		Description: m.Description,
		Reference:   m.Reference,
		Module:      m.Module,
		Lines:       lines,
		Subsidiary:  domain.SubsidiaryRef{Kind: domain.SubsidiaryKind(m.SubsidiaryKind), ID: m.SubsidiaryID},
		Metadata:    m.Metadata,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLine converts one transaction row to a debit or credit line
func ToDomainLine(t models.Transaction) domain.Line {
	l := domain.Line{AccountID: t.AccountID}
	if t.TransactionType == models.Debit {
		l.Debit = t.Amount
	} else {
		l.Credit = t.Amount
	}
	return l
}
