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
	"github.com/SscSPs/school_ledger/internal/dto"
)

// Sub-ledger balances are never stored. They are the entity's opening balance
// plus the control-account effect of every journal tagged to it.

func (s *ledgerService) RegisterStudent(ctx context.Context, req dto.CreateStudentRequest, actor string) (*domain.Student, error) {
	name, id, err := entityNameAndID(req.Name, req.StudentID)
	if err != nil {
		return nil, err
	}
	if err := checkAmount("opening balance", req.OpeningBalance); err != nil {
		return nil, err
	}
	actor = actorOr(actor)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.students.has(id) {
		return nil, fmt.Errorf("%w: student '%s'", apperrors.ErrDuplicate, id)
	}
	now := s.now()
	student := domain.Student{
		StudentID:      id,
		Name:           name,
		GradeLevel:     strings.TrimSpace(req.GradeLevel),
		OpeningBalance: req.OpeningBalance,
		AuditFields:    domain.AuditFields{CreatedAt: now, CreatedBy: actor},
	}
	audit := s.newAudit(now, actor, "Enrolled new student: "+name, domain.ModuleStudents)

	if s.store != nil {
		if err := s.store.SaveStudent(ctx, student, audit); err != nil {
			s.LogError(ctx, err, "Failed to persist student", slog.String("student_id", id))
			return nil, fmt.Errorf("failed to persist student: %w", err)
		}
	}
	s.students.add(id, student)
	s.audit = append(s.audit, audit)

	s.LogInfo(ctx, "Student enrolled", slog.String("student_id", id))
	return &student, nil
}

func (s *ledgerService) RegisterSupplier(ctx context.Context, req dto.CreateSupplierRequest, actor string) (*domain.Supplier, error) {
	name, id, err := entityNameAndID(req.Name, req.SupplierID)
	if err != nil {
		return nil, err
	}
	if err := checkAmount("opening payable", req.OpeningPayable); err != nil {
		return nil, err
	}
	actor = actorOr(actor)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.suppliers.has(id) {
		return nil, fmt.Errorf("%w: supplier '%s'", apperrors.ErrDuplicate, id)
	}
	now := s.now()
	supplier := domain.Supplier{
		SupplierID:     id,
		Name:           name,
		Category:       strings.TrimSpace(req.Category),
		OpeningPayable: req.OpeningPayable,
		AuditFields:    domain.AuditFields{CreatedAt: now, CreatedBy: actor},
	}
	audit := s.newAudit(now, actor, "Registered new supplier: "+name, domain.ModuleProcurement)

	if s.store != nil {
		if err := s.store.SaveSupplier(ctx, supplier, audit); err != nil {
			s.LogError(ctx, err, "Failed to persist supplier", slog.String("supplier_id", id))
			return nil, fmt.Errorf("failed to persist supplier: %w", err)
		}
	}
	s.suppliers.add(id, supplier)
	s.audit = append(s.audit, audit)

	s.LogInfo(ctx, "Supplier registered", slog.String("supplier_id", id))
	return &supplier, nil
}

func (s *ledgerService) RegisterStaff(ctx context.Context, req dto.CreateStaffRequest, actor string) (*domain.Staff, error) {
	name, id, err := entityNameAndID(req.Name, req.StaffID)
	if err != nil {
		return nil, err
	}
	if req.BasicPay.IsNegative() {
		return nil, fmt.Errorf("%w: basic pay cannot be negative", apperrors.ErrValidation)
	}
	if err := checkAmount("basic pay", req.BasicPay); err != nil {
		return nil, err
	}
	if err := checkAmount("opening loan balance", req.OpeningLoanBalance); err != nil {
		return nil, err
	}
	actor = actorOr(actor)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.staff.has(id) {
		return nil, fmt.Errorf("%w: staff '%s'", apperrors.ErrDuplicate, id)
	}
	now := s.now()
	member := domain.Staff{
		StaffID:            id,
		Name:               name,
		Position:           strings.TrimSpace(req.Position),
		Category:           strings.TrimSpace(req.Category),
		BasicPay:           req.BasicPay,
		OpeningLoanBalance: req.OpeningLoanBalance,
		AuditFields:        domain.AuditFields{CreatedAt: now, CreatedBy: actor},
	}
	audit := s.newAudit(now, actor, "Registered new staff: "+name, domain.ModulePayroll)

	if s.store != nil {
		if err := s.store.SaveStaff(ctx, member, audit); err != nil {
			s.LogError(ctx, err, "Failed to persist staff", slog.String("staff_id", id))
			return nil, fmt.Errorf("failed to persist staff: %w", err)
		}
	}
	s.staff.add(id, member)
	s.audit = append(s.audit, audit)

	s.LogInfo(ctx, "Staff registered", slog.String("staff_id", id))
	return &member, nil
}

func (s *ledgerService) GetStudent(ctx context.Context, studentID string) (*domain.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.students.get(studentID)
	if !ok {
		return nil, fmt.Errorf("%w: student '%s'", ErrSubsidiaryNotFound, studentID)
	}
	return &st, nil
}

func (s *ledgerService) GetSupplier(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sp, ok := s.suppliers.get(supplierID)
	if !ok {
		return nil, fmt.Errorf("%w: supplier '%s'", ErrSubsidiaryNotFound, supplierID)
	}
	return &sp, nil
}

func (s *ledgerService) GetStaff(ctx context.Context, staffID string) (*domain.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.staff.get(staffID)
	if !ok {
		return nil, fmt.Errorf("%w: staff '%s'", ErrSubsidiaryNotFound, staffID)
	}
	return &st, nil
}

func (s *ledgerService) ListStudents(ctx context.Context) []domain.Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.students.list()
}

func (s *ledgerService) ListSuppliers(ctx context.Context) []domain.Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.suppliers.list()
}

func (s *ledgerService) ListStaff(ctx context.Context) []domain.Staff {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.staff.list()
}

func (s *ledgerService) SubsidiaryBalance(ctx context.Context, ref domain.SubsidiaryRef) (decimal.Decimal, error) {
	if err := ref.Valid(); err != nil {
		return decimal.Zero, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	opening, _, ok := s.subsidiaryOpening(ref)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrSubsidiaryNotFound, ref)
	}
	return opening.Add(s.subsidiaryNet[ref]), nil
}

func (s *ledgerService) ListSubsidiaryBalances(ctx context.Context, kind domain.SubsidiaryKind) []domain.SubsidiaryBalance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.subsidiaryBalances(kind)
}

func (s *ledgerService) Reconcile(ctx context.Context) []domain.Reconciliation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Reconciliation, 0, len(domain.SubsidiaryKinds))
	for _, kind := range domain.SubsidiaryKinds {
		control := s.posting.ControlAccount(kind)
		if control == "" {
			continue
		}
		controlBalance, err := s.balanceOf(control)
		if err != nil {
			s.LogWarn(ctx, err, "Control account is not registered", slog.String("kind", string(kind)))
			continue
		}
		total := s.subsidiaryTotal(kind)
		out = append(out, domain.Reconciliation{
			Kind:             kind,
			ControlAccountID: control,
			ControlBalance:   controlBalance,
			SubsidiaryTotal:  total,
			Unattributed:     controlBalance.Sub(total),
		})
	}
	return out
}

// subsidiaryExists reports whether ref names a registered entity. Caller holds the lock.
func (s *ledgerService) subsidiaryExists(ref domain.SubsidiaryRef) bool {
	_, _, ok := s.subsidiaryOpening(ref)
	return ok
}

// subsidiaryOpening returns the opening balance and display name of an entity.
func (s *ledgerService) subsidiaryOpening(ref domain.SubsidiaryRef) (decimal.Decimal, string, bool) {
	switch ref.Kind {
	case domain.SubsidiaryStudent:
		if st, ok := s.students.get(ref.ID); ok {
			return st.OpeningBalance, st.Name, true
		}
	case domain.SubsidiarySupplier:
		if sp, ok := s.suppliers.get(ref.ID); ok {
			return sp.OpeningPayable, sp.Name, true
		}
	case domain.SubsidiaryStaff:
		if st, ok := s.staff.get(ref.ID); ok {
			return st.OpeningLoanBalance, st.Name, true
		}
	}
	return decimal.Zero, "", false
}

func (s *ledgerService) subsidiaryBalances(kind domain.SubsidiaryKind) []domain.SubsidiaryBalance {
	var ids []string
	switch kind {
	case domain.SubsidiaryStudent:
		ids = s.students.ids()
	case domain.SubsidiarySupplier:
		ids = s.suppliers.ids()
	case domain.SubsidiaryStaff:
		ids = s.staff.ids()
	}

	out := make([]domain.SubsidiaryBalance, 0, len(ids))
	for _, id := range ids {
		ref := domain.SubsidiaryRef{Kind: kind, ID: id}
		opening, name, _ := s.subsidiaryOpening(ref)
		out = append(out, domain.SubsidiaryBalance{
			Ref:     ref,
			Name:    name,
			Balance: opening.Add(s.subsidiaryNet[ref]),
		})
	}
	return out
}

func (s *ledgerService) subsidiaryTotal(kind domain.SubsidiaryKind) decimal.Decimal {
	total := decimal.Zero
	for _, b := range s.subsidiaryBalances(kind) {
		total = total.Add(b.Balance)
	}
	return total
}

// --- Catalog ---

func (s *ledgerService) RegisterFeeTemplate(ctx context.Context, req dto.CreateFeeTemplateRequest, actor string) (*domain.FeeTemplate, error) {
	name, id, err := entityNameAndID(req.Name, req.TemplateID)
	if err != nil {
		return nil, err
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: fee template needs at least one item", apperrors.ErrValidation)
	}
	items := make([]domain.FeeItem, len(req.Items))
	for i, item := range req.Items {
		if strings.TrimSpace(item.Category) == "" {
			return nil, fmt.Errorf("%w: fee item %d has no category", apperrors.ErrValidation, i+1)
		}
		if item.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: fee item %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		if err := checkAmount(fmt.Sprintf("fee item %d", i+1), item.Amount); err != nil {
			return nil, err
		}
		items[i] = domain.FeeItem{Category: strings.TrimSpace(item.Category), Amount: item.Amount}
	}
	template := domain.FeeTemplate{
		TemplateID: id,
		Name:       name,
		GradeLevel: strings.TrimSpace(req.GradeLevel),
		Items:      items,
	}
	if !template.Total().IsPositive() {
		return nil, fmt.Errorf("%w: fee template total must be positive", ErrNonPositiveAmount)
	}
	actor = actorOr(actor)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.templates.has(id) {
		return nil, fmt.Errorf("%w: fee template '%s'", apperrors.ErrDuplicate, id)
	}
	now := s.now()
	template.AuditFields = domain.AuditFields{CreatedAt: now, CreatedBy: actor}
	audit := s.newAudit(now, actor, "Created fee template: "+name, domain.ModuleBilling)

	if s.store != nil {
		if err := s.store.SaveFeeTemplate(ctx, template, audit); err != nil {
			s.LogError(ctx, err, "Failed to persist fee template", slog.String("template_id", id))
			return nil, fmt.Errorf("failed to persist fee template: %w", err)
		}
	}
	s.templates.add(id, template)
	s.audit = append(s.audit, audit)

	s.LogInfo(ctx, "Fee template created", slog.String("template_id", id), slog.String("total", template.Total().String()))
	out := cloneTemplate(template)
	return &out, nil
}

func (s *ledgerService) GetFeeTemplate(ctx context.Context, templateID string) (*domain.FeeTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.templates.get(templateID)
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrFeeTemplateNotFound, templateID)
	}
	return &t, nil
}

func (s *ledgerService) ListFeeTemplates(ctx context.Context) []domain.FeeTemplate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.templates.list()
}

func (s *ledgerService) RegisterBudget(ctx context.Context, req dto.CreateBudgetRequest, actor string) (*domain.Budget, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: budget amount", ErrNonPositiveAmount)
	}
	if err := checkAmount("budget amount", req.Amount); err != nil {
		return nil, err
	}
	period := strings.TrimSpace(req.Period)
	if period == "" {
		return nil, fmt.Errorf("%w: budget period is required", apperrors.ErrValidation)
	}
	id := strings.TrimSpace(req.BudgetID)
	if id == "" {
		id = uuid.NewString()
	}
	actor = actorOr(actor)

	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts.get(req.AccountID)
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrAccountNotFound, req.AccountID)
	}
	if s.budgets.has(id) {
		return nil, fmt.Errorf("%w: budget '%s'", apperrors.ErrDuplicate, id)
	}
	now := s.now()
	budget := domain.Budget{
		BudgetID:    id,
		AccountID:   account.AccountID,
		Amount:      req.Amount,
		Period:      period,
		AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: actor},
	}
	audit := s.newAudit(now, actor, fmt.Sprintf("Set %s budget for %s: %s", period, account.Name, req.Amount.StringFixed(2)), domain.ModuleBudgeting)

	if s.store != nil {
		if err := s.store.SaveBudget(ctx, budget, audit); err != nil {
			s.LogError(ctx, err, "Failed to persist budget", slog.String("budget_id", id))
			return nil, fmt.Errorf("failed to persist budget: %w", err)
		}
	}
	s.budgets.add(id, budget)
	s.audit = append(s.audit, audit)
	return &budget, nil
}

func (s *ledgerService) ListBudgets(ctx context.Context) []domain.Budget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.budgets.list()
}

func entityNameAndID(name, id string) (string, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", "", fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	id = strings.TrimSpace(id)
	if id == "" {
		id = uuid.NewString()
	}
	return name, id, nil
}
