package dto

import (
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineRequest is one debit-or-credit line of a posting request.
type LineRequest struct {
	AccountID string          `json:"accountID" binding:"required"`
	Debit     decimal.Decimal `json:"debit" binding:"gte=0"`
	Credit    decimal.Decimal `json:"credit" binding:"gte=0"`
}

// SubsidiaryRequest tags a journal to a student, supplier or staff member.
type SubsidiaryRequest struct {
	Kind domain.SubsidiaryKind `json:"kind" binding:"required,oneof=STUDENT SUPPLIER STAFF"`
	ID   string                `json:"id" binding:"required"`
}

// PostJournalRequest defines the data needed to post a journal.
type PostJournalRequest struct {
	Description string             `json:"description" binding:"required"`
	Reference   string             `json:"reference"`
	Module      string             `json:"module"`
	Lines       []LineRequest      `json:"lines" binding:"required,min=1,dive"`
	Subsidiary  *SubsidiaryRequest `json:"subsidiary"`
	Metadata    map[string]string  `json:"metadata"` // Legacy studentId/supplierId/staffId keys are honoured

	// NoOverdraw rejects the posting when it would take the tagged entity's
	// balance below zero. Checked under the ledger lock.
	NoOverdraw bool `json:"-"`
}

// SubsidiaryRef returns the typed reference, or the zero value when untagged.
func (r PostJournalRequest) SubsidiaryRef() domain.SubsidiaryRef {
	if r.Subsidiary == nil {
		return domain.SubsidiaryRef{}
	}
	return domain.SubsidiaryRef{Kind: r.Subsidiary.Kind, ID: r.Subsidiary.ID}
}

// DomainLines converts the request lines.
func (r PostJournalRequest) DomainLines() []domain.Line {
	lines := make([]domain.Line, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.Line{AccountID: l.AccountID, Debit: l.Debit, Credit: l.Credit}
	}
	return lines
}

// ListJournalsParams defines query parameters for listing journals.
type ListJournalsParams struct {
	SubsidiaryKind domain.SubsidiaryKind `form:"subsidiaryKind"`
	SubsidiaryID   string                `form:"subsidiaryID"`
	AccountID      string                `form:"accountID"`
	Module         string                `form:"module"`
	From           *time.Time            `form:"from" time_format:"2006-01-02"`
	To             *time.Time            `form:"to" time_format:"2006-01-02"`
	Limit          int                   `form:"limit" binding:"gte=0,lte=1000"` // 0 returns every match
	NextToken      string                `form:"nextToken"`
}

// Matches reports whether a journal passes every filter that is set.
// From and To are inclusive calendar days.
func (p ListJournalsParams) Matches(j *domain.Journal) bool {
	if p.SubsidiaryKind != domain.SubsidiaryNone && j.Subsidiary.Kind != p.SubsidiaryKind {
		return false
	}
	if p.SubsidiaryID != "" && j.Subsidiary.ID != p.SubsidiaryID {
		return false
	}
	if p.Module != "" && j.Module != p.Module {
		return false
	}
	if p.From != nil && j.JournalDate.Before(truncateDay(*p.From)) {
		return false
	}
	if p.To != nil && j.JournalDate.After(truncateDay(*p.To)) {
		return false
	}
	if p.AccountID != "" {
		for _, l := range j.Lines {
			if l.AccountID == p.AccountID {
				return true
			}
		}
		return false
	}
	return true
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// JournalResponse defines the data returned for a journal entry.
type JournalResponse struct {
	JournalID   string               `json:"journalID"`
	Date        string               `json:"date"`
	Description string               `json:"description"`
	Reference   string               `json:"reference"`
	Module      string               `json:"module"`
	Lines       []domain.Line        `json:"lines"`
	Subsidiary  domain.SubsidiaryRef `json:"subsidiary"`
	Metadata    map[string]string    `json:"metadata,omitempty"`
	TotalDebit  decimal.Decimal      `json:"totalDebit"`
	TotalCredit decimal.Decimal      `json:"totalCredit"`
	CreatedAt   time.Time            `json:"createdAt"`
	CreatedBy   string               `json:"createdBy"`
}

// ToJournalResponse converts a domain.Journal to JournalResponse DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	debit, credit := j.Totals()
	return JournalResponse{
		JournalID:   j.JournalID,
		Date:        j.JournalDate.Format(domain.DateLayout),
		Description: j.Description,
		Reference:   j.Reference,
		Module:      j.Module,
		Lines:       j.Lines,
		Subsidiary:  j.Subsidiary,
		Metadata:    j.Metadata,
		TotalDebit:  debit,
		TotalCredit: credit,
		CreatedAt:   j.CreatedAt,
		CreatedBy:   j.CreatedBy,
	}
}

// ToJournalResponses converts a slice of domain.Journal to []JournalResponse.
func ToJournalResponses(journals []domain.Journal) []JournalResponse {
	responses := make([]JournalResponse, len(journals))
	for i := range journals {
		responses[i] = ToJournalResponse(&journals[i])
	}
	return responses
}

// ListJournalsResponse wraps the list of journals.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken string            `json:"nextToken,omitempty"`
}
