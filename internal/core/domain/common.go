package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// CreatedBy is the authenticated actor, usually the JWT subject.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}
