package models

import "time"

// Journal is a row of the journals table. Lines live in transactions.
type Journal struct {
	JournalID      string            `db:"journal_id"`
	JournalDate    time.Time         `db:"journal_date"`
	Description    string            `db:"description"`
	Reference      string            `db:"reference"`
	Module         string            `db:"module"`
	SubsidiaryKind string            `db:"subsidiary_kind"` // Empty when untagged
	SubsidiaryID   string            `db:"subsidiary_id"`
	Metadata       map[string]string `db:"metadata"`
	AuditFields
}

// AuditRecord is a row of the audit_log table.
type AuditRecord struct {
	AuditID    string    `db:"audit_id"`
	OccurredAt time.Time `db:"occurred_at"`
	Actor      string    `db:"actor"`
	Action     string    `db:"action"`
	Module     string    `db:"module"`
}
