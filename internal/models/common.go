package models

import "time"

// AuditFields are the creation columns shared by every ledger table.
type AuditFields struct {
	CreatedAt time.Time `db:"created_at"`
	CreatedBy string    `db:"created_by"`
}
