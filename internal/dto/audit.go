package dto

import "github.com/SscSPs/school_ledger/internal/core/domain"

// RecordAuditRequest appends a free-form activity record for the caller.
type RecordAuditRequest struct {
	Action string `json:"action" binding:"required"`
	Module string `json:"module" binding:"required"`
}

// ListAuditLogParams limits how many of the newest records are returned.
type ListAuditLogParams struct {
	Limit int `form:"limit,default=100" binding:"gte=1,lte=1000"`
}

// ListAuditLogResponse wraps audit records, newest first.
type ListAuditLogResponse struct {
	Records []domain.AuditRecord `json:"records"`
	Total   int                  `json:"total"`
}
