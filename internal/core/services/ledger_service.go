package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/dto"
)

// Tolerance is the largest debit/credit difference a journal may carry.
var Tolerance = decimal.New(1, -2)

// AmountScale is the number of decimal places an amount may carry.
const AmountScale = 4

// maxAmount is the first magnitude a NUMERIC(20,4) column cannot hold.
var maxAmount = decimal.New(1, 20-AmountScale)

// DefaultActor is recorded when a caller does not identify itself.
const DefaultActor = "Admin"

// ledgerState is everything the ledger owns. It is swapped wholesale on Restore.
type ledgerState struct {
	accounts  *registry[domain.Account]
	students  *registry[domain.Student]
	suppliers *registry[domain.Supplier]
	staff     *registry[domain.Staff]
	templates *registry[domain.FeeTemplate]
	budgets   *registry[domain.Budget]
	assets    *registry[domain.FixedAsset]

	journals     []*domain.Journal
	journalIndex map[string]*domain.Journal

	// Signed net change per account and per subsidiary entity, excluding opening balances.
	accountNet    map[string]decimal.Decimal
	subsidiaryNet map[domain.SubsidiaryRef]decimal.Decimal

	audit []domain.AuditRecord // Oldest first
}

func newLedgerState() *ledgerState {
	return &ledgerState{
		accounts:      newRegistry[domain.Account](nil),
		students:      newRegistry[domain.Student](nil),
		suppliers:     newRegistry[domain.Supplier](nil),
		staff:         newRegistry[domain.Staff](nil),
		templates:     newRegistry(cloneTemplate),
		budgets:       newRegistry[domain.Budget](nil),
		assets:        newRegistry[domain.FixedAsset](nil),
		journalIndex:  make(map[string]*domain.Journal),
		accountNet:    make(map[string]decimal.Decimal),
		subsidiaryNet: make(map[domain.SubsidiaryRef]decimal.Decimal),
	}
}

// ledgerService is the single owner of the account registry, journal,
// sub-ledgers and audit log. One RWMutex serialises every mutation.
type ledgerService struct {
	BaseService
	*ledgerState

	mu      sync.RWMutex
	store   portsrepo.LedgerStore
	now     func() time.Time
	posting domain.PostingAccounts
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithStore makes every mutation write through to store before it is applied in memory.
func WithStore(store portsrepo.LedgerStore) LedgerServiceOption {
	return func(s *ledgerService) {
		s.store = store
	}
}

// WithClock overrides the clock used for journal dates and audit timestamps.
func WithClock(now func() time.Time) LedgerServiceOption {
	return func(s *ledgerService) {
		s.now = now
	}
}

// WithPostingAccounts configures the account roles, including sub-ledger control accounts.
func WithPostingAccounts(posting domain.PostingAccounts) LedgerServiceOption {
	return func(s *ledgerService) {
		s.posting = posting
	}
}

// NewLedgerService creates an empty ledger with the provided options
func NewLedgerService(options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		ledgerState: newLedgerState(),
		now:         func() time.Time { return time.Now().UTC() },
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure ledgerService implements the LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) PostingAccounts() domain.PostingAccounts {
	return s.posting
}

// --- Account Registry ---

func (s *ledgerService) RegisterAccount(ctx context.Context, req dto.CreateAccountRequest, actor string) (*domain.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}
	if !req.AccountType.Valid() {
		return nil, fmt.Errorf("%w: unknown account type '%s'", apperrors.ErrValidation, req.AccountType)
	}
	if err := checkAmount("opening balance", req.OpeningBalance); err != nil {
		return nil, err
	}
	accountID := strings.TrimSpace(req.AccountID)
	if accountID == "" {
		accountID = uuid.NewString()
	}
	actor = actorOr(actor)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accounts.has(accountID) {
		return nil, fmt.Errorf("%w: account '%s'", apperrors.ErrDuplicate, accountID)
	}

	now := s.now()
	account := domain.Account{
		AccountID:      accountID,
		Code:           strings.TrimSpace(req.Code),
		Name:           name,
		AccountType:    req.AccountType,
		OpeningBalance: req.OpeningBalance,
		Description:    req.Description,
		AuditFields:    domain.AuditFields{CreatedAt: now, CreatedBy: actor},
	}
	audit := s.newAudit(now, actor, fmt.Sprintf("Registered new account: %s %s", account.Code, account.Name), domain.ModuleAccounts)

	if s.store != nil {
		if err := s.store.SaveAccount(ctx, account, audit); err != nil {
			s.LogError(ctx, err, "Failed to persist account", slog.String("account_id", accountID))
			return nil, fmt.Errorf("failed to persist account: %w", err)
		}
	}

	s.accounts.add(accountID, account)
	s.audit = append(s.audit, audit)

	s.LogInfo(ctx, "Account registered", slog.String("account_id", accountID), slog.String("type", string(account.AccountType)))
	return &account, nil
}

func (s *ledgerService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts.get(accountID)
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrAccountNotFound, accountID)
	}
	return &account, nil
}

func (s *ledgerService) ListAccounts(ctx context.Context) []domain.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts.list()
}

// --- Journal ---

func (s *ledgerService) GetJournal(ctx context.Context, journalID string) (*domain.Journal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.journalIndex[journalID]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrTransactionNotFound, journalID)
	}
	c := j.Clone()
	return &c, nil
}

func (s *ledgerService) ListJournals(ctx context.Context, params dto.ListJournalsParams) []domain.Journal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Journal, 0, len(s.journals))
	for _, j := range s.journals {
		if params.Matches(j) {
			out = append(out, j.Clone())
		}
	}
	return out
}

// --- Transaction Poster ---

// PostJournal is the only way a journal enters the ledger. Every delta is
// computed and validated before anything is written.
func (s *ledgerService) PostJournal(ctx context.Context, req dto.PostJournalRequest, actor string) (*domain.Journal, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}

	lines, err := normalizeLines(req.DomainLines())
	if err != nil {
		s.LogWarn(ctx, err, "Journal rejected", slog.String("description", description))
		return nil, err
	}

	ref, err := domain.ResolveSubsidiary(req.SubsidiaryRef(), req.Metadata)
	if err != nil {
		s.LogWarn(ctx, err, "Journal rejected", slog.String("description", description))
		return nil, err
	}
	actor = actorOr(actor)

	s.mu.Lock()
	defer s.mu.Unlock()

	deltas, err := s.lineDeltas(lines)
	if err != nil {
		s.LogWarn(ctx, err, "Journal rejected", slog.String("description", description))
		return nil, err
	}
	subDelta, err := s.subsidiaryDelta(ref, deltas)
	if err != nil {
		s.LogWarn(ctx, err, "Journal rejected", slog.String("description", description), slog.String("subsidiary", ref.String()))
		return nil, err
	}
	if req.NoOverdraw && subDelta.IsNegative() {
		opening, _, _ := s.subsidiaryOpening(ref)
		outstanding := opening.Add(s.subsidiaryNet[ref])
		if outstanding.Add(subDelta).IsNegative() {
			err := fmt.Errorf("%w: %s reduces %s by %s but only %s is outstanding",
				ErrSubsidiaryOverdrawn, description, ref, subDelta.Neg().String(), outstanding.String())
			s.LogWarn(ctx, err, "Journal rejected", slog.String("subsidiary", ref.String()))
			return nil, err
		}
	}
	if assetID := req.Metadata[domain.MetaAssetID]; assetID != "" {
		if err := s.assetCharge(assetID, deltas); err != nil {
			s.LogWarn(ctx, err, "Journal rejected", slog.String("asset_id", assetID))
			return nil, err
		}
	}

	now := s.now()
	journal := domain.Journal{
		JournalID:   uuid.NewString(),
		JournalDate: dayOf(now),
		Description: description,
		Reference:   strings.TrimSpace(req.Reference),
		Module:      moduleOr(req.Module),
		Lines:       lines,
		Subsidiary:  ref,
		Metadata:    copyMetadata(req.Metadata),
		AuditFields: domain.AuditFields{CreatedAt: now, CreatedBy: actor},
	}
	audit := s.newAudit(now, actor, journal.Description, journal.Module)

	if s.store != nil {
		if err := s.store.SaveJournal(ctx, journal, audit); err != nil {
			s.LogError(ctx, err, "Failed to persist journal", slog.String("journal_id", journal.JournalID))
			return nil, fmt.Errorf("failed to persist journal: %w", err)
		}
	}

	stored := journal.Clone()
	s.journals = append(s.journals, &stored)
	s.journalIndex[stored.JournalID] = &stored
	s.applyDeltas(deltas, ref, subDelta, false)
	s.audit = append(s.audit, audit)

	s.LogInfo(ctx, "Journal posted",
		slog.String("journal_id", journal.JournalID),
		slog.String("module", journal.Module),
		slog.String("subsidiary", ref.String()),
		slog.Int("lines", len(lines)))
	return &journal, nil
}

// --- Reversal Engine ---

// DeleteJournal removes a journal and applies the inverse of every delta it
// contributed. The subsidiary to adjust comes only from the reference recorded
// at post time.
func (s *ledgerService) DeleteJournal(ctx context.Context, journalID string, actor string) error {
	actor = actorOr(actor)

	s.mu.Lock()
	defer s.mu.Unlock()

	journal, ok := s.journalIndex[journalID]
	if !ok {
		return fmt.Errorf("%w: '%s'", ErrTransactionNotFound, journalID)
	}

	deltas, err := s.lineDeltas(journal.Lines)
	if err != nil {
		s.LogError(ctx, err, "Posted journal references an unknown account", slog.String("journal_id", journalID))
		return fmt.Errorf("failed to compute reversal: %w", err)
	}
	subDelta := decimal.Zero
	if !journal.Subsidiary.IsZero() {
		subDelta = deltas[s.posting.ControlAccount(journal.Subsidiary.Kind)]
	}

	now := s.now()
	action := fmt.Sprintf("DELETED/REVERSED: %s (Ref: %s)", journal.Description, journal.Reference)
	audit := s.newAudit(now, actor, action, domain.ModuleGeneralLedger)

	if s.store != nil {
		if err := s.store.DeleteJournal(ctx, journalID, audit); err != nil {
			s.LogError(ctx, err, "Failed to delete journal from store", slog.String("journal_id", journalID))
			return fmt.Errorf("failed to delete journal: %w", err)
		}
	}

	s.applyDeltas(deltas, journal.Subsidiary, subDelta, true)
	for i, j := range s.journals {
		if j.JournalID == journalID {
			s.journals = append(s.journals[:i], s.journals[i+1:]...)
			break
		}
	}
	delete(s.journalIndex, journalID)
	s.audit = append(s.audit, audit)

	s.LogInfo(ctx, "Journal reversed",
		slog.String("journal_id", journalID),
		slog.String("subsidiary", journal.Subsidiary.String()))
	return nil
}

// --- Balance Engine ---

func (s *ledgerService) BalanceOf(ctx context.Context, accountID string) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balanceOf(accountID)
}

func (s *ledgerService) balanceOf(accountID string) (decimal.Decimal, error) {
	account, ok := s.accounts.get(accountID)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: '%s'", ErrAccountNotFound, accountID)
	}
	return account.OpeningBalance.Add(s.accountNet[accountID]), nil
}

// Summarize makes one pass over the accounts and one over the journal lines.
func (s *ledgerService) Summarize(ctx context.Context) domain.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := domain.Summary{
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
		TotalRevenue:     decimal.Zero,
		TotalExpenses:    decimal.Zero,
		SystemDebit:      decimal.Zero,
		SystemCredit:     decimal.Zero,
		JournalCount:     len(s.journals),
	}

	for _, account := range s.accounts.list() {
		balance := account.OpeningBalance.Add(s.accountNet[account.AccountID])
		switch account.AccountType {
		case domain.Asset:
			sum.TotalAssets = sum.TotalAssets.Add(balance)
		case domain.Liability:
			sum.TotalLiabilities = sum.TotalLiabilities.Add(balance)
		case domain.Equity:
			sum.TotalEquity = sum.TotalEquity.Add(balance)
		case domain.Revenue:
			sum.TotalRevenue = sum.TotalRevenue.Add(balance)
		case domain.Expense:
			sum.TotalExpenses = sum.TotalExpenses.Add(balance)
		}
	}
	sum.NetIncome = sum.TotalRevenue.Sub(sum.TotalExpenses)

	sum.SystemDebit, sum.SystemCredit = s.systemTotals()

	sum.TotalAR = s.subsidiaryTotal(domain.SubsidiaryStudent)
	sum.TotalAP = s.subsidiaryTotal(domain.SubsidiarySupplier)
	sum.TotalStaffLoans = s.subsidiaryTotal(domain.SubsidiaryStaff)
	return sum
}

func (s *ledgerService) systemTotals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, j := range s.journals {
		d, c := j.Totals()
		debit = debit.Add(d)
		credit = credit.Add(c)
	}
	return debit, credit
}

// VerifyIntegrity refolds every journal from scratch and reports any account
// or subsidiary whose cached net change disagrees with the refold.
func (s *ledgerService) VerifyIntegrity(ctx context.Context) domain.IntegrityReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accountFold := make(map[string]decimal.Decimal)
	subsidiaryFold := make(map[domain.SubsidiaryRef]decimal.Decimal)
	report := domain.IntegrityReport{Balanced: true, Drift: make(map[string]decimal.Decimal)}
	for _, j := range s.journals {
		// Each journal may carry a gap up to Tolerance, so the system totals
		// only have to agree journal by journal.
		if d, c := j.Totals(); d.Sub(c).Abs().GreaterThan(Tolerance) {
			report.Balanced = false
			s.LogError(ctx, ErrUnbalancedTransaction, "Posted journal is out of balance",
				slog.String("journal_id", j.JournalID), slog.String("debit", d.String()), slog.String("credit", c.String()))
		}
		deltas, err := s.lineDeltas(j.Lines)
		if err != nil {
			s.LogError(ctx, err, "Journal cannot be refolded", slog.String("journal_id", j.JournalID))
			continue
		}
		for id, d := range deltas {
			accountFold[id] = accountFold[id].Add(d)
		}
		if !j.Subsidiary.IsZero() {
			control := s.posting.ControlAccount(j.Subsidiary.Kind)
			subsidiaryFold[j.Subsidiary] = subsidiaryFold[j.Subsidiary].Add(deltas[control])
		}
	}

	report.SystemDebit, report.SystemCredit = s.systemTotals()

	for id, diff := range diffNets(s.accountNet, accountFold) {
		report.Drift[id] = diff
	}
	for ref, diff := range diffNets(s.subsidiaryNet, subsidiaryFold) {
		report.Drift[ref.String()] = diff
	}
	if len(report.Drift) == 0 {
		report.Drift = nil
	} else {
		s.LogError(ctx, fmt.Errorf("%d cached balances drifted", len(report.Drift)), "Ledger integrity check failed")
	}
	return report
}

// --- Audit Log ---

func (s *ledgerService) RecordAudit(ctx context.Context, actor, action, module string) error {
	action = strings.TrimSpace(action)
	if action == "" {
		return fmt.Errorf("%w: audit action is required", apperrors.ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	audit := s.newAudit(s.now(), actorOr(actor), action, moduleOr(module))
	if s.store != nil {
		if err := s.store.AppendAudit(ctx, audit); err != nil {
			s.LogError(ctx, err, "Failed to persist audit record")
			return fmt.Errorf("failed to persist audit record: %w", err)
		}
	}
	s.audit = append(s.audit, audit)
	return nil
}

func (s *ledgerService) ListAuditLog(ctx context.Context) []domain.AuditRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.AuditRecord, len(s.audit))
	for i, rec := range s.audit {
		out[len(s.audit)-1-i] = rec
	}
	return out
}

// --- Restore ---

// Restore rebuilds the ledger from a persisted snapshot. Nothing is written
// back to the store. On error the current state is left untouched.
func (s *ledgerService) Restore(ctx context.Context, snapshot *domain.LedgerSnapshot) error {
	if snapshot == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.ledgerState
	s.ledgerState = newLedgerState()

	for _, a := range snapshot.Accounts {
		s.accounts.add(a.AccountID, a)
	}
	for _, st := range snapshot.Students {
		s.students.add(st.StudentID, st)
	}
	for _, sp := range snapshot.Suppliers {
		s.suppliers.add(sp.SupplierID, sp)
	}
	for _, st := range snapshot.Staff {
		s.staff.add(st.StaffID, st)
	}
	for _, t := range snapshot.FeeTemplates {
		s.templates.add(t.TemplateID, t)
	}
	for _, b := range snapshot.Budgets {
		s.budgets.add(b.BudgetID, b)
	}
	for _, a := range snapshot.Assets {
		s.assets.add(a.AssetID, a)
	}

	for _, j := range snapshot.Journals {
		deltas, err := s.lineDeltas(j.Lines)
		if err != nil {
			s.ledgerState = previous
			return fmt.Errorf("failed to restore journal %s: %w", j.JournalID, err)
		}
		subDelta := decimal.Zero
		if !j.Subsidiary.IsZero() {
			subDelta = deltas[s.posting.ControlAccount(j.Subsidiary.Kind)]
		}
		stored := j.Clone()
		s.journals = append(s.journals, &stored)
		s.journalIndex[stored.JournalID] = &stored
		s.applyDeltas(deltas, stored.Subsidiary, subDelta, false)
	}
	s.audit = append(s.audit, snapshot.AuditLog...)

	s.LogInfo(ctx, "Ledger restored",
		slog.Int("accounts", len(snapshot.Accounts)),
		slog.Int("journals", len(snapshot.Journals)),
		slog.Int("audit_records", len(snapshot.AuditLog)))
	return nil
}

// --- helpers ---

// normalizeLines drops inert lines and enforces the double-entry shape.
func normalizeLines(in []domain.Line) ([]domain.Line, error) {
	lines := make([]domain.Line, 0, len(in))
	debit, credit := decimal.Zero, decimal.Zero
	hasDebit, hasCredit := false, false

	for i, l := range in {
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return nil, fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		if l.IsInert() {
			continue
		}
		if err := checkAmount(fmt.Sprintf("line %d", i+1), l.Debit.Add(l.Credit)); err != nil {
			return nil, err
		}
		if l.Debit.IsPositive() && l.Credit.IsPositive() {
			return nil, fmt.Errorf("%w: line %d has both a debit and a credit", apperrors.ErrValidation, i+1)
		}
		if l.Debit.IsPositive() {
			hasDebit = true
			debit = debit.Add(l.Debit)
		} else {
			hasCredit = true
			credit = credit.Add(l.Credit)
		}
		lines = append(lines, domain.Line{AccountID: strings.TrimSpace(l.AccountID), Debit: l.Debit, Credit: l.Credit})
	}

	if len(lines) == 0 {
		return nil, ErrEmptyTransaction
	}
	if !hasDebit || !hasCredit {
		return nil, fmt.Errorf("%w: at least one debit and one credit line are required", ErrUnbalancedTransaction)
	}
	if debit.Sub(credit).Abs().GreaterThan(Tolerance) {
		return nil, fmt.Errorf("%w: debits %s, credits %s", ErrUnbalancedTransaction, debit.String(), credit.String())
	}
	return lines, nil
}

// checkAmount rejects amounts the store would round or overflow.
func checkAmount(what string, amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return fmt.Errorf("%w: %s of %s has more than %d decimal places", ErrAmountPrecision, what, amount.String(), AmountScale)
	}
	if amount.Abs().GreaterThanOrEqual(maxAmount) {
		return fmt.Errorf("%w: %s of %s is too large", ErrAmountPrecision, what, amount.String())
	}
	return nil
}

// lineDeltas returns the signed effect of the lines on each account.
// Caller holds the lock.
func (s *ledgerService) lineDeltas(lines []domain.Line) (map[string]decimal.Decimal, error) {
	deltas := make(map[string]decimal.Decimal, len(lines))
	for _, l := range lines {
		account, ok := s.accounts.get(l.AccountID)
		if !ok {
			return nil, fmt.Errorf("%w: '%s'", ErrUnknownAccount, l.AccountID)
		}
		signed, err := account.AccountType.SignedAmount(l.Debit, l.Credit)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", l.AccountID, err)
		}
		deltas[l.AccountID] = deltas[l.AccountID].Add(signed)
	}
	return deltas, nil
}

// subsidiaryDelta checks a tagged journal against its sub-ledger and returns
// the effect on the entity's balance. Caller holds the lock.
func (s *ledgerService) subsidiaryDelta(ref domain.SubsidiaryRef, deltas map[string]decimal.Decimal) (decimal.Decimal, error) {
	if ref.IsZero() {
		return decimal.Zero, nil
	}
	if !s.subsidiaryExists(ref) {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrSubsidiaryNotFound, ref)
	}
	control := s.posting.ControlAccount(ref.Kind)
	if control == "" {
		return decimal.Zero, fmt.Errorf("%w: no control account configured for %s", apperrors.ErrValidation, ref.Kind)
	}
	delta, ok := deltas[control]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: expected a line on account '%s' for %s", ErrControlAccountMissing, control, ref)
	}
	return delta, nil
}

func (s *ledgerService) applyDeltas(deltas map[string]decimal.Decimal, ref domain.SubsidiaryRef, subDelta decimal.Decimal, reverse bool) {
	for id, d := range deltas {
		if reverse {
			d = d.Neg()
		}
		s.accountNet[id] = s.accountNet[id].Add(d)
	}
	if ref.IsZero() {
		return
	}
	if reverse {
		subDelta = subDelta.Neg()
	}
	s.subsidiaryNet[ref] = s.subsidiaryNet[ref].Add(subDelta)
}

func (s *ledgerService) newAudit(at time.Time, actor, action, module string) domain.AuditRecord {
	return domain.AuditRecord{
		AuditID:   uuid.NewString(),
		Timestamp: at,
		Actor:     actor,
		Action:    action,
		Module:    module,
	}
}

// diffNets returns cached minus folded for every key where they differ.
func diffNets[K comparable](cached, folded map[K]decimal.Decimal) map[K]decimal.Decimal {
	out := make(map[K]decimal.Decimal)
	for k, c := range cached {
		if f := folded[k]; !c.Equal(f) {
			out[k] = c.Sub(f)
		}
	}
	for k, f := range folded {
		if _, seen := cached[k]; !seen && !f.IsZero() {
			out[k] = f.Neg()
		}
	}
	return out
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func actorOr(actor string) string {
	if a := strings.TrimSpace(actor); a != "" {
		return a
	}
	return DefaultActor
}

func moduleOr(module string) string {
	if m := strings.TrimSpace(module); m != "" {
		return m
	}
	return domain.ModuleGeneralLedger
}

func copyMetadata(meta map[string]string) map[string]string {
	if len(meta) == 0 {
		return nil
	}
	out := make(map[string]string, len(meta))
	for k, v := range meta {
		out[k] = v
	}
	return out
}

func cloneTemplate(t domain.FeeTemplate) domain.FeeTemplate {
	t.Items = append([]domain.FeeItem(nil), t.Items...)
	return t
}
