package services

import (
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
)

// NewServiceContainer wires the reporting and operations services around one ledger.
func NewServiceContainer(ledger portssvc.LedgerSvcFacade, reportingOpts ...ReportingServiceOption) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Ledger:     ledger,
		Operations: NewOperationsService(ledger),
		Reporting:  NewReportingService(ledger, reportingOpts...),
	}
}
