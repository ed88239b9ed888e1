package domain

import "time"

// Module tags used on journals and audit records.
const (
	ModuleGeneralLedger = "General Ledger"
	ModuleAccounts      = "Chart of Accounts"
	ModuleBilling       = "Billing"
	ModuleCashiering    = "Cashiering"
	ModuleProcurement   = "Procurement"
	ModulePayroll       = "Payroll"
	ModuleAssets        = "Assets"
	ModuleBudgeting     = "Budgeting"
	ModuleStudents      = "Students"
)

// AuditRecord is one append-only entry of the activity trail.
type AuditRecord struct {
	AuditID   string    `json:"auditID"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Module    string    `json:"module"`
}
