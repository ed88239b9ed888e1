package domain

import (
	"fmt"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/shopspring/decimal"
)

// SubsidiaryKind names the sub-ledger a journal belongs to.
type SubsidiaryKind string

const (
	SubsidiaryNone     SubsidiaryKind = ""
	SubsidiaryStudent  SubsidiaryKind = "STUDENT"
	SubsidiarySupplier SubsidiaryKind = "SUPPLIER"
	SubsidiaryStaff    SubsidiaryKind = "STAFF"
)

// SubsidiaryKinds lists the kinds that carry a control account.
var SubsidiaryKinds = []SubsidiaryKind{SubsidiaryStudent, SubsidiarySupplier, SubsidiaryStaff}

// Legacy metadata keys that tag a journal to a subsidiary entity.
const (
	MetaStudentID  = "studentId"
	MetaSupplierID = "supplierId"
	MetaStaffID    = "staffId"
)

// ErrAmbiguousSubsidiary is returned when a journal is tagged to more than one entity.
var ErrAmbiguousSubsidiary = fmt.Errorf("%w: journal is tagged to more than one subsidiary entity", apperrors.ErrConflict)

// SubsidiaryRef points a journal at one student, supplier or staff member.
type SubsidiaryRef struct {
	Kind SubsidiaryKind `json:"kind,omitempty"`
	ID   string         `json:"id,omitempty"`
}

// IsZero reports whether the reference is untagged.
func (r SubsidiaryRef) IsZero() bool {
	return r.Kind == SubsidiaryNone && r.ID == ""
}

func (r SubsidiaryRef) String() string {
	if r.IsZero() {
		return "none"
	}
	return string(r.Kind) + ":" + r.ID
}

// Valid checks that a tagged reference has both a known kind and an id.
func (r SubsidiaryRef) Valid() error {
	if r.IsZero() {
		return nil
	}
	switch r.Kind {
	case SubsidiaryStudent, SubsidiarySupplier, SubsidiaryStaff:
	default:
		return fmt.Errorf("%w: unknown subsidiary kind '%s'", apperrors.ErrValidation, r.Kind)
	}
	if r.ID == "" {
		return fmt.Errorf("%w: subsidiary id is required", apperrors.ErrValidation)
	}
	return nil
}

// ResolveSubsidiary merges an explicit reference with the legacy metadata keys.
// Two different entities, from either source, fail with ErrAmbiguousSubsidiary.
func ResolveSubsidiary(ref SubsidiaryRef, meta map[string]string) (SubsidiaryRef, error) {
	if err := ref.Valid(); err != nil {
		return SubsidiaryRef{}, err
	}
	resolved := ref
	for key, kind := range map[string]SubsidiaryKind{
		MetaStudentID:  SubsidiaryStudent,
		MetaSupplierID: SubsidiarySupplier,
		MetaStaffID:    SubsidiaryStaff,
	} {
		id, ok := meta[key]
		if !ok || id == "" {
			continue
		}
		candidate := SubsidiaryRef{Kind: kind, ID: id}
		if resolved.IsZero() {
			resolved = candidate
			continue
		}
		if resolved != candidate {
			return SubsidiaryRef{}, ErrAmbiguousSubsidiary
		}
	}
	return resolved, nil
}

// Student is an enrolled learner with a receivable sub-ledger.
type Student struct {
	StudentID      string          `json:"studentID"`
	Name           string          `json:"name"`
	GradeLevel     string          `json:"gradeLevel"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	AuditFields
}

// Supplier is a vendor with a payable sub-ledger.
type Supplier struct {
	SupplierID     string          `json:"supplierID"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	OpeningPayable decimal.Decimal `json:"openingPayable"`
	AuditFields
}

// Staff is an employee; the sub-ledger tracks the outstanding salary loan.
type Staff struct {
	StaffID            string          `json:"staffID"`
	Name               string          `json:"name"`
	Position           string          `json:"position"`
	Category           string          `json:"category"`
	BasicPay           decimal.Decimal `json:"basicPay"`
	OpeningLoanBalance decimal.Decimal `json:"openingLoanBalance"`
	AuditFields
}

// SubsidiaryBalance is a derived balance for one entity.
type SubsidiaryBalance struct {
	Ref     SubsidiaryRef   `json:"ref"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// Reconciliation compares a control account with the entities it summarises.
type Reconciliation struct {
	Kind             SubsidiaryKind  `json:"kind"`
	ControlAccountID string          `json:"controlAccountID"`
	ControlBalance   decimal.Decimal `json:"controlBalance"`
	SubsidiaryTotal  decimal.Decimal `json:"subsidiaryTotal"`
	Unattributed     decimal.Decimal `json:"unattributed"` // ControlBalance - SubsidiaryTotal
}

// PostingAccounts maps the roles used by school operations to account ids.
// Student, supplier and staff roles double as the sub-ledger control accounts.
type PostingAccounts struct {
	Cash                string `json:"cash" yaml:"cash"`
	Receivable          string `json:"receivable" yaml:"receivable"`
	TuitionRevenue      string `json:"tuitionRevenue" yaml:"tuitionRevenue"`
	Payable             string `json:"payable" yaml:"payable"`
	PurchaseExpense     string `json:"purchaseExpense" yaml:"purchaseExpense"`
	Salaries            string `json:"salaries" yaml:"salaries"`
	WithholdingsPayable string `json:"withholdingsPayable" yaml:"withholdingsPayable"`
	StaffLoans          string `json:"staffLoans" yaml:"staffLoans"`
	DepreciationExpense string `json:"depreciationExpense" yaml:"depreciationExpense"`
}

// ControlAccount returns the control account id for a subsidiary kind, or "".
func (p PostingAccounts) ControlAccount(kind SubsidiaryKind) string {
	switch kind {
	case SubsidiaryStudent:
		return p.Receivable
	case SubsidiarySupplier:
		return p.Payable
	case SubsidiaryStaff:
		return p.StaffLoans
	default:
		return ""
	}
}
