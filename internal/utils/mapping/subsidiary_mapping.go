package mapping

import (
	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/models"
)

func ToModelStudent(d domain.Student) models.Student {
	return models.Student{
		StudentID:      d.StudentID,
		Name:           d.Name,
		GradeLevel:     d.GradeLevel,
		OpeningBalance: d.OpeningBalance,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainStudent(m models.Student) domain.Student {
	return domain.Student{
		StudentID:      m.StudentID,
		Name:           m.Name,
		GradeLevel:     m.GradeLevel,
		OpeningBalance: m.OpeningBalance,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelSupplier(d domain.Supplier) models.Supplier {
	return models.Supplier{
		SupplierID:     d.SupplierID,
		Name:           d.Name,
		Category:       d.Category,
		OpeningPayable: d.OpeningPayable,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainSupplier(m models.Supplier) domain.Supplier {
	return domain.Supplier{
		SupplierID:     m.SupplierID,
		Name:           m.Name,
		Category:       m.Category,
		OpeningPayable: m.OpeningPayable,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelStaff(d domain.Staff) models.Staff {
	return models.Staff{
		StaffID:            d.StaffID,
		Name:               d.Name,
		Position:           d.Position,
		Category:           d.Category,
		BasicPay:           d.BasicPay,
		OpeningLoanBalance: d.OpeningLoanBalance,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainStaff(m models.Staff) domain.Staff {
	return domain.Staff{
		StaffID:            m.StaffID,
		Name:               m.Name,
		Position:           m.Position,
		Category:           m.Category,
		BasicPay:           m.BasicPay,
		OpeningLoanBalance: m.OpeningLoanBalance,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelFeeTemplate converts a domain FeeTemplate to a row with JSONB items
func ToModelFeeTemplate(d domain.FeeTemplate) models.FeeTemplate {
	items := make([]models.FeeItem, len(d.Items))
	for i, it := range d.Items {
		items[i] = models.FeeItem{Category: it.Category, Amount: it.Amount}
	}
	return models.FeeTemplate{
		TemplateID:  d.TemplateID,
		Name:        d.Name,
		GradeLevel:  d.GradeLevel,
		Items:       items,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainFeeTemplate(m models.FeeTemplate) domain.FeeTemplate {
	items := make([]domain.FeeItem, len(m.Items))
	for i, it := range m.Items {
		items[i] = domain.FeeItem{Category: it.Category, Amount: it.Amount}
	}
	return domain.FeeTemplate{
		TemplateID:  m.TemplateID,
		Name:        m.Name,
		GradeLevel:  m.GradeLevel,
		Items:       items,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:    d.BudgetID,
		AccountID:   d.AccountID,
		Amount:      d.Amount,
		Period:      d.Period,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:    m.BudgetID,
		AccountID:   m.AccountID,
		Amount:      m.Amount,
		Period:      m.Period,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelFixedAsset(d domain.FixedAsset) models.FixedAsset {
	return models.FixedAsset{
		AssetID:            d.AssetID,
		Name:               d.Name,
		AccountID:          d.AccountID,
		Cost:               d.Cost,
		DepreciationAmount: d.DepreciationAmount,
		AcquiredOn:         d.AcquiredOn,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainFixedAsset(m models.FixedAsset) domain.FixedAsset {
	return domain.FixedAsset{
		AssetID:            m.AssetID,
		Name:               m.Name,
		AccountID:          m.AccountID,
		Cost:               m.Cost,
		DepreciationAmount: m.DepreciationAmount,
		AcquiredOn:         m.AcquiredOn.UTC(),
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}
