package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/dto"
)

// operationsService builds the school's routine postings on top of the
// ledger. It owns no state; every journal goes through PostJournal.
type operationsService struct {
	BaseService
	ledger portssvc.LedgerSvcFacade
}

// NewOperationsService creates the billing, procurement, payroll and asset postings service.
func NewOperationsService(ledger portssvc.LedgerSvcFacade) portssvc.OperationsSvcFacade {
	return &operationsService{ledger: ledger}
}

var _ portssvc.OperationsSvcFacade = (*operationsService)(nil)

// --- Billing ---

func (s *operationsService) ApplyFeeTemplate(ctx context.Context, templateID string, req dto.ApplyFeeTemplateRequest, actor string) ([]domain.Journal, error) {
	template, err := s.ledger.GetFeeTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}
	posting := s.ledger.PostingAccounts()
	if err := requireRoles(map[string]string{"receivable": posting.Receivable, "tuitionRevenue": posting.TuitionRevenue}); err != nil {
		return nil, err
	}

	// Resolve every student before posting anything.
	seen := make(map[string]bool, len(req.StudentIDs))
	students := make([]*domain.Student, 0, len(req.StudentIDs))
	for _, id := range req.StudentIDs {
		if seen[id] {
			return nil, fmt.Errorf("%w: student '%s' listed twice", apperrors.ErrValidation, id)
		}
		seen[id] = true
		student, err := s.ledger.GetStudent(ctx, id)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}

	total := template.Total()
	categories := make([]string, len(template.Items))
	for i, item := range template.Items {
		categories[i] = item.Category
	}
	breakdown := strings.Join(categories, ", ")
	batch := shortRef()

	journals := make([]domain.Journal, 0, len(students))
	for i, student := range students {
		j, err := s.ledger.PostJournal(ctx, dto.PostJournalRequest{
			Description: fmt.Sprintf("%s - Billing: %s (%s)", student.Name, template.Name, breakdown),
			Reference:   fmt.Sprintf("BATCH-%s-%d", batch, i+1),
			Module:      domain.ModuleBilling,
			Lines:       pair(posting.Receivable, posting.TuitionRevenue, total),
			Subsidiary:  &dto.SubsidiaryRequest{Kind: domain.SubsidiaryStudent, ID: student.StudentID},
			Metadata:    map[string]string{"templateId": template.TemplateID},
		}, actor)
		if err != nil {
			s.LogError(ctx, err, "Fee template batch stopped",
				slog.String("template_id", templateID),
				slog.Int("posted", len(journals)),
				slog.Int("requested", len(students)))
			return journals, fmt.Errorf("failed to bill student %s after %d of %d postings: %w", student.StudentID, len(journals), len(students), err)
		}
		journals = append(journals, *j)
	}

	s.LogInfo(ctx, "Fee template applied",
		slog.String("template_id", templateID),
		slog.Int("students", len(journals)),
		slog.String("amount_each", total.String()))
	return journals, nil
}

func (s *operationsService) AssessFee(ctx context.Context, studentID string, req dto.AssessFeeRequest, actor string) (*domain.Journal, error) {
	if err := requirePositive(req.Amount); err != nil {
		return nil, err
	}
	student, err := s.ledger.GetStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	posting := s.ledger.PostingAccounts()
	return s.ledger.PostJournal(ctx, dto.PostJournalRequest{
		Description: fmt.Sprintf("%s - Direct Fee: %s", student.Name, orDefault(req.Description, "Tuition")),
		Reference:   orDefault(req.Reference, "INV-"+shortRef()),
		Module:      domain.ModuleBilling,
		Lines:       pair(posting.Receivable, posting.TuitionRevenue, req.Amount),
		Subsidiary:  &dto.SubsidiaryRequest{Kind: domain.SubsidiaryStudent, ID: student.StudentID},
	}, actor)
}

func (s *operationsService) PostStudentPayment(ctx context.Context, studentID string, req dto.StudentPaymentRequest, actor string) (*domain.Journal, error) {
	if err := requirePositive(req.Amount); err != nil {
		return nil, err
	}
	student, err := s.ledger.GetStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	posting := s.ledger.PostingAccounts()
	return s.ledger.PostJournal(ctx, dto.PostJournalRequest{
		Description: fmt.Sprintf("%s - Payment: %s", student.Name, orDefault(req.Description, "Tuition")),
		Reference:   orDefault(req.Reference, "OR-"+shortRef()),
		Module:      domain.ModuleCashiering,
		Lines:       pair(posting.Cash, posting.Receivable, req.Amount),
		Subsidiary:  &dto.SubsidiaryRequest{Kind: domain.SubsidiaryStudent, ID: student.StudentID},
	}, actor)
}

// --- Procurement ---

func (s *operationsService) PostPurchaseInvoice(ctx context.Context, supplierID string, req dto.PurchaseInvoiceRequest, actor string) (*domain.Journal, error) {
	if err := requirePositive(req.Amount); err != nil {
		return nil, err
	}
	supplier, err := s.ledger.GetSupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	posting := s.ledger.PostingAccounts()
	expense := orDefault(req.ExpenseAccountID, posting.PurchaseExpense)
	return s.ledger.PostJournal(ctx, dto.PostJournalRequest{
		Description: fmt.Sprintf("Purchase Invoice: %s from %s", orDefault(req.Description, "Supplies"), supplier.Name),
		Reference:   orDefault(req.Reference, "PUR-"+shortRef()),
		Module:      domain.ModuleProcurement,
		Lines:       pair(expense, posting.Payable, req.Amount),
		Subsidiary:  &dto.SubsidiaryRequest{Kind: domain.SubsidiarySupplier, ID: supplier.SupplierID},
	}, actor)
}

func (s *operationsService) PostSupplierPayment(ctx context.Context, supplierID string, req dto.SupplierPaymentRequest, actor string) (*domain.Journal, error) {
	if err := requirePositive(req.Amount); err != nil {
		return nil, err
	}
	supplier, err := s.ledger.GetSupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	posting := s.ledger.PostingAccounts()
	return s.ledger.PostJournal(ctx, dto.PostJournalRequest{
		Description: fmt.Sprintf("Supplier Payment: %s to %s", orDefault(req.Description, "Settlement"), supplier.Name),
		Reference:   orDefault(req.Reference, "CV-"+shortRef()),
		Module:      domain.ModuleProcurement,
		Lines:       pair(posting.Payable, posting.Cash, req.Amount),
		Subsidiary:  &dto.SubsidiaryRequest{Kind: domain.SubsidiarySupplier, ID: supplier.SupplierID},
	}, actor)
}

// --- Payroll ---

// PostPayroll debits gross pay to salaries and splits the credit between cash,
// withholdings payable and the staff loan receivable, so the journal balances.
// The journal is tagged to the staff member only when a loan deduction is taken.
func (s *operationsService) PostPayroll(ctx context.Context, staffID string, req dto.PayrollRequest, actor string) (*domain.Journal, error) {
	if err := requirePositive(req.GrossPay); err != nil {
		return nil, err
	}
	for name, v := range map[string]decimal.Decimal{
		"withholding tax":  req.WithholdingTax,
		"other deductions": req.OtherDeductions,
		"loan deduction":   req.LoanDeduction,
	} {
		if v.IsNegative() {
			return nil, fmt.Errorf("%w: %s cannot be negative", apperrors.ErrValidation, name)
		}
	}
	withholdings := req.WithholdingTax.Add(req.OtherDeductions)
	net := req.GrossPay.Sub(withholdings).Sub(req.LoanDeduction)
	if net.IsNegative() {
		return nil, fmt.Errorf("%w: deductions of %s exceed gross pay of %s", apperrors.ErrValidation, withholdings.Add(req.LoanDeduction).String(), req.GrossPay.String())
	}

	member, err := s.ledger.GetStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	posting := s.ledger.PostingAccounts()

	lines := []dto.LineRequest{
		{AccountID: posting.Salaries, Debit: req.GrossPay},
		{AccountID: posting.Cash, Credit: net},
		{AccountID: posting.WithholdingsPayable, Credit: withholdings},
		{AccountID: posting.StaffLoans, Credit: req.LoanDeduction},
	}
	post := dto.PostJournalRequest{
		Description: fmt.Sprintf("Monthly Payroll: %s (%s)", member.Name, strings.TrimSpace(req.Period)),
		Reference:   orDefault(req.Reference, "PAY-"+shortRef()),
		Module:      domain.ModulePayroll,
		Lines:       lines,
		Metadata:    map[string]string{"period": strings.TrimSpace(req.Period)},
	}
	if req.LoanDeduction.IsPositive() {
		// The ledger checks the outstanding loan under its own lock.
		post.Subsidiary = &dto.SubsidiaryRequest{Kind: domain.SubsidiaryStaff, ID: member.StaffID}
		post.NoOverdraw = true
	}
	return s.ledger.PostJournal(ctx, post, actor)
}

func (s *operationsService) GrantStaffLoan(ctx context.Context, staffID string, req dto.StaffLoanRequest, actor string) (*domain.Journal, error) {
	if err := requirePositive(req.Amount); err != nil {
		return nil, err
	}
	member, err := s.ledger.GetStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	posting := s.ledger.PostingAccounts()
	return s.ledger.PostJournal(ctx, dto.PostJournalRequest{
		Description: fmt.Sprintf("Salary Loan: %s", member.Name),
		Reference:   orDefault(req.Reference, "LOAN-"+shortRef()),
		Module:      domain.ModulePayroll,
		Lines:       pair(posting.StaffLoans, posting.Cash, req.Amount),
		Subsidiary:  &dto.SubsidiaryRequest{Kind: domain.SubsidiaryStaff, ID: member.StaffID},
	}, actor)
}

// --- Assets ---

// PostDepreciation posts Dr depreciation expense / Cr the asset account. A
// registered asset tags the journal so the ledger tracks its book value.
func (s *operationsService) PostDepreciation(ctx context.Context, req dto.DepreciationRequest, actor string) (*domain.Journal, error) {
	amount, accountID, name := req.Amount, req.AssetAccountID, ""
	var metadata map[string]string
	if req.AssetID != "" {
		asset, err := s.ledger.GetAsset(ctx, req.AssetID)
		if err != nil {
			return nil, err
		}
		if amount.IsZero() {
			amount = asset.DepreciationAmount
		}
		accountID, name = asset.AccountID, asset.Name
		metadata = map[string]string{domain.MetaAssetID: asset.AssetID}
	} else if accountID == "" {
		return nil, fmt.Errorf("%w: assetID or assetAccountID is required", apperrors.ErrValidation)
	}
	if err := requirePositive(amount); err != nil {
		return nil, err
	}

	account, err := s.ledger.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.AccountType != domain.Asset {
		return nil, fmt.Errorf("%w: account '%s' is not an asset", apperrors.ErrValidation, account.AccountID)
	}
	expense := orDefault(req.ExpenseAccountID, s.ledger.PostingAccounts().DepreciationExpense)
	return s.ledger.PostJournal(ctx, dto.PostJournalRequest{
		Description: "Depreciation: " + orDefault(req.Description, orDefault(name, account.Name)),
		Reference:   orDefault(req.Reference, "DEP-"+shortRef()),
		Module:      domain.ModuleAssets,
		Lines:       pair(expense, account.AccountID, amount),
		Metadata:    metadata,
	}, actor)
}

// pair builds a two-line journal debiting one account and crediting another.
func pair(debitAccount, creditAccount string, amount decimal.Decimal) []dto.LineRequest {
	return []dto.LineRequest{
		{AccountID: debitAccount, Debit: amount},
		{AccountID: creditAccount, Credit: amount},
	}
}

func requirePositive(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrNonPositiveAmount, amount.String())
	}
	return nil
}

func requireRoles(roles map[string]string) error {
	for role, id := range roles {
		if id == "" {
			return fmt.Errorf("%w: posting account role '%s' is not configured", apperrors.ErrValidation, role)
		}
	}
	return nil
}

func orDefault(v, fallback string) string {
	if t := strings.TrimSpace(v); t != "" {
		return t
	}
	return fallback
}

// shortRef returns an eight character document number suffix.
func shortRef() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
