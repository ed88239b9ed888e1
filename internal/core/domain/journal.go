package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire and storage format of a journal date.
const DateLayout = "2006-01-02"

// Line is one debit-or-credit component of a journal, tied to one account.
type Line struct {
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
}

// IsInert reports whether both columns are zero.
func (l Line) IsInert() bool {
	return l.Debit.IsZero() && l.Credit.IsZero()
}

// Journal is a balanced set of lines posted atomically. Journals are never
// mutated after posting; a correction is a delete followed by a new post.
type Journal struct {
	JournalID   string            `json:"journalID"`
	JournalDate time.Time         `json:"journalDate"`
	Description string            `json:"description"`
	Reference   string            `json:"reference"` // Human cross-reference only, not unique
	Module      string            `json:"module"`
	Lines       []Line            `json:"lines"`
	Subsidiary  SubsidiaryRef     `json:"subsidiary"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	AuditFields
}

// Totals returns the sum of the debit and credit columns.
func (j Journal) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range j.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// Clone returns a deep copy so callers cannot reach the ledger's own slices and maps.
func (j Journal) Clone() Journal {
	c := j
	c.Lines = append([]Line(nil), j.Lines...)
	if j.Metadata != nil {
		c.Metadata = make(map[string]string, len(j.Metadata))
		for k, v := range j.Metadata {
			c.Metadata[k] = v
		}
	}
	return c
}
