package domain

// LedgerSnapshot is the full persisted state, each slice in insertion order.
type LedgerSnapshot struct {
	Accounts     []Account
	Students     []Student
	Suppliers    []Supplier
	Staff        []Staff
	FeeTemplates []FeeTemplate
	Budgets      []Budget
	Assets       []FixedAsset
	Journals     []Journal
	AuditLog     []AuditRecord // Oldest first
}

// IsEmpty reports whether nothing has been persisted yet.
func (s *LedgerSnapshot) IsEmpty() bool {
	return s == nil || (len(s.Accounts) == 0 && len(s.Journals) == 0)
}
