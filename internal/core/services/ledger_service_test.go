package services_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/core/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	ledger portssvc.LedgerSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.ledger = newSchoolLedger(suite.T())
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (suite *LedgerServiceTestSuite) balance(accountID string) decimal.Decimal {
	b, err := suite.ledger.BalanceOf(suite.ctx, accountID)
	suite.Require().NoError(err)
	return b
}

func (suite *LedgerServiceTestSuite) studentBalance(id string) decimal.Decimal {
	b, err := suite.ledger.SubsidiaryBalance(suite.ctx, domain.SubsidiaryRef{Kind: domain.SubsidiaryStudent, ID: id})
	suite.Require().NoError(err)
	return b
}

func (suite *LedgerServiceTestSuite) supplierBalance(id string) decimal.Decimal {
	b, err := suite.ledger.SubsidiaryBalance(suite.ctx, domain.SubsidiaryRef{Kind: domain.SubsidiarySupplier, ID: id})
	suite.Require().NoError(err)
	return b
}

func (suite *LedgerServiceTestSuite) equal(want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	suite.True(dec(want).Equal(got), append([]interface{}{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func (suite *LedgerServiceTestSuite) sameSummary(want, got domain.Summary) {
	pairs := map[string][2]decimal.Decimal{
		"assets":      {want.TotalAssets, got.TotalAssets},
		"liabilities": {want.TotalLiabilities, got.TotalLiabilities},
		"equity":      {want.TotalEquity, got.TotalEquity},
		"revenue":     {want.TotalRevenue, got.TotalRevenue},
		"expenses":    {want.TotalExpenses, got.TotalExpenses},
		"net income":  {want.NetIncome, got.NetIncome},
		"ar":          {want.TotalAR, got.TotalAR},
		"ap":          {want.TotalAP, got.TotalAP},
		"staff loans": {want.TotalStaffLoans, got.TotalStaffLoans},
	}
	for name, p := range pairs {
		suite.True(p[0].Equal(p[1]), "%s: want %s, got %s", name, p[0].String(), p[1].String())
	}
}

// --- Balance Engine ---

func (suite *LedgerServiceTestSuite) TestBalanceOf_OpeningPlusNetEffects() {
	suite.equal("100000", suite.balance("1"))
	suite.equal("621000", suite.balance("5"))
	suite.equal("0", suite.balance("6"))
}

func (suite *LedgerServiceTestSuite) TestBalanceOf_UnknownAccount() {
	_, err := suite.ledger.BalanceOf(suite.ctx, "404")
	suite.ErrorIs(err, services.ErrAccountNotFound)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestSignConvention() {
	tests := []struct {
		name      string
		accountID string
		lines     []dto.LineRequest
		delta     string
	}{
		{"debit to asset", "3", []dto.LineRequest{debit("3", "250"), credit("5", "250")}, "250"},
		{"debit to expense", "8", []dto.LineRequest{debit("8", "120.50"), credit("1", "120.50")}, "120.50"},
		{"credit to liability", "4", []dto.LineRequest{debit("8", "300"), credit("4", "300")}, "300"},
		{"credit to equity", "5", []dto.LineRequest{debit("1", "1000"), credit("5", "1000")}, "1000"},
		{"credit to revenue", "6", []dto.LineRequest{debit("1", "75"), credit("6", "75")}, "75"},
		{"credit to asset", "1", []dto.LineRequest{debit("8", "40"), credit("1", "40")}, "-40"},
		{"debit to revenue", "6", []dto.LineRequest{debit("6", "10"), credit("1", "10")}, "-10"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			before := suite.balance(tt.accountID)
			_, err := suite.ledger.PostJournal(suite.ctx, dto.PostJournalRequest{Description: tt.name, Lines: tt.lines}, "tester")
			suite.Require().NoError(err)
			suite.True(before.Add(dec(tt.delta)).Equal(suite.balance(tt.accountID)))
		})
	}
}

func (suite *LedgerServiceTestSuite) TestSummarize_TotalsAndGlobalEquality() {
	_, err := suite.ledger.PostJournal(suite.ctx, dto.PostJournalRequest{
		Description: "Tuition collected",
		Lines:       []dto.LineRequest{debit("1", "9000"), credit("6", "9000")},
	}, "tester")
	suite.Require().NoError(err)
	_, err = suite.ledger.PostJournal(suite.ctx, dto.PostJournalRequest{
		Description: "Electricity",
		Lines:       []dto.LineRequest{debit("8", "1500.25"), credit("1", "1000"), credit("4", "500.25")},
	}, "tester")
	suite.Require().NoError(err)

	sum := suite.ledger.Summarize(suite.ctx)
	suite.equal("9000", sum.TotalRevenue)
	suite.equal("1500.25", sum.TotalExpenses)
	suite.equal("7499.75", sum.NetIncome)
	suite.equal("60500.25", sum.SystemDebit)
	suite.True(sum.SystemDebit.Equal(sum.SystemCredit))
	suite.equal("5000", sum.TotalAR)
	suite.equal("1250", sum.TotalAP)
	suite.equal("8000", sum.TotalStaffLoans)
	suite.Equal(3, sum.JournalCount)

	// Accounting equation holds once net income is closed into equity.
	suite.True(sum.TotalAssets.Equal(sum.TotalLiabilities.Add(sum.TotalEquity).Add(sum.NetIncome)))
}

func (suite *LedgerServiceTestSuite) TestSummarize_Idempotent() {
	first := suite.ledger.Summarize(suite.ctx)
	second := suite.ledger.Summarize(suite.ctx)
	suite.sameSummary(first, second)

	b1 := suite.balance("1")
	b2 := suite.balance("1")
	suite.True(b1.Equal(b2))
}

// --- Transaction Poster ---

func (suite *LedgerServiceTestSuite) TestPost_AssignsIdentityDateAndAudit() {
	j, err := suite.ledger.PostJournal(suite.ctx, dto.PostJournalRequest{
		Description: "Library books",
		Reference:   "PUR-0001",
		Module:      domain.ModuleProcurement,
		Lines:       []dto.LineRequest{debit("8", "800"), credit("1", "800")},
	}, "bursar")
	suite.Require().NoError(err)

	suite.NotEmpty(j.JournalID)
	suite.Equal("2024-06-14", j.JournalDate.Format(domain.DateLayout))
	suite.Equal("bursar", j.CreatedBy)
	suite.Equal(domain.ModuleProcurement, j.Module)

	audit := suite.ledger.ListAuditLog(suite.ctx)
	suite.Require().NotEmpty(audit)
	suite.Equal("bursar", audit[0].Actor)
	suite.Equal("Library books", audit[0].Action)
	suite.Equal(domain.ModuleProcurement, audit[0].Module)
	suite.Equal(fixedNow, audit[0].Timestamp)
}

func (suite *LedgerServiceTestSuite) TestPost_DefaultsActorAndModule() {
	j, err := suite.ledger.PostJournal(suite.ctx, dto.PostJournalRequest{
		Description: "Adjustment",
		Lines:       []dto.LineRequest{debit("8", "1"), credit("1", "1")},
	}, "")
	suite.Require().NoError(err)
	suite.Equal(services.DefaultActor, j.CreatedBy)
	suite.Equal(domain.ModuleGeneralLedger, j.Module)
}

func (suite *LedgerServiceTestSuite) TestPost_IdsAreUnique() {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		j, err := suite.ledger.PostJournal(suite.ctx, dto.PostJournalRequest{
			Description: fmt.Sprintf("post %d", i),
			Lines:       []dto.LineRequest{debit("8", "1"), credit("1", "1")},
		}, "tester")
		suite.Require().NoError(err)
		suite.False(seen[j.JournalID])
		seen[j.JournalID] = true
	}
}

func (suite *LedgerServiceTestSuite) TestPost_RejectsUnbalancedWithoutSideEffects() {
	journalsBefore := len(suite.ledger.ListJournals(suite.ctx, dto.ListJournalsParams{}))
	auditBefore := len(suite.ledger.ListAuditLog(suite.ctx))
	cashBefore := suite.balance("1")

	_, err := suite.ledger.PostJournal(suite.ctx, dto.PostJournalRequest{
		Description: "Bad entry",
		Lines:       []dto.LineRequest{debit("1", "100"), credit("6", "90")},
	}, "tester")

	suite.ErrorIs(err, services.ErrUnbalancedTransaction)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Len(suite.ledger.ListJournals(suite.ctx, dto.ListJournalsParams{}), journalsBefore)
	suite.Len(suite.ledger.ListAuditLog(suite.ctx), auditBefore)
	suite.True(cashBefore.Equal(suite.balance("1")))
}

func (suite *LedgerServiceTestSuite) TestPost_Validation() {
	tests := []struct {
		name    string
		lines   []dto.LineRequest
		wantErr error
	}{
		{"no lines", nil, services.ErrEmptyTransaction},
		{"only inert lines", []dto.LineRequest{{AccountID: "1"}, {AccountID: "6"}}, services.ErrEmptyTransaction},
		{"debit only", []dto.LineRequest{debit("1", "50"), debit("8", "50")}, services.ErrUnbalancedTransaction},
		{"difference above tolerance", []dto.LineRequest{debit("1", "100"), credit("6", "99.98")}, services.ErrUnbalancedTransaction},
		{"unknown account", []dto.LineRequest{debit("404", "10"), credit("6", "10")}, services.ErrUnknownAccount},
		{"negative amount", []dto.LineRequest{debit("1", "-10"), credit("6", "-10")}, apperrors.ErrValidation},
		{"both sides on one line", []dto.LineRequest{{AccountID: "1", Debit: dec("10"), Credit: dec("10")}, credit("6", "10")}, apperrors.ErrValidation},
		{"more than four decimal places", []dto.LineRequest{debit("8", "0.00001"), credit("1", "0.00001")}, services.ErrAmountPrecision},
		{"amount too large", []dto.LineRequest{debit("8", "10000000000000000"), credit("1", "10000000000000000")}, services.ErrAmountPrecision},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.ledger.PostJournal(suite.ctx, dto.PostJournalRequest{Description: tt.name, Lines: tt.lines}, "tester")
			suite.ErrorIs(err, tt.wantErr)
		})
	}
}

func (suite *LedgerServiceTestSuite) TestPost_RequiresDescription() {
	_, err := suite.ledger.PostJournal(suite.ctx, dto.PostJournalRequest{
		Description: "   ",
		Lines:       []dto.LineRequest{debit("1", "10"), credit("6", "10")},
	}, "tester")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestPost_AcceptsDifferenceWithinTolerance() {
	j, err := suite.ledger.PostJournal(suite.ctx, dto.PostJournalRequest{
		Description: "Rounded split",
		Lines:       []dto.LineRequest{debit("8", "100"), credit("1", "33.33"), credit("4", "66.66")},
	}, "tester")
	suite.Require().NoError(err)
	d, c := j.Totals()
	suite.equal("100", d)
	suite.equal("99.99", c)
}

func (suite *LedgerServiceTestSuite) TestPost_DropsInertLines() {
	j, err := suite.ledger.PostJournal(suite.ctx, dto.PostJournalRequest{
		Description: "With blanks",
		Lines:       []dto.LineRequest{debit("8", "10"), {AccountID: "7"}, credit("1", "10"), {AccountID: "404"}},
	}, "tester")
	suite.Require().NoError(err)
	suite.Len(j.Lines, 2)
}

// --- Subsidiary ledgers ---

func (suite *LedgerServiceTestSuite) TestBillingRoundTrip() {
	arBefore := suite.ledger.Summarize(suite.ctx).TotalAR

	j, err := suite.ledger.PostJournal(suite.ctx, dto.PostJournalRequest{
		Description: "Maria Santos - Billing: Grade 7 Standard Package",
		Reference:   "BATCH-0001-1",
		Module:      domain.ModuleBilling,
		Lines:       []dto.LineRequest{debit("2", "17500"), credit("6", "17500")},
		Metadata:    map[string]string{"studentId": "S2", "templateId": "T1"},
	}, "bursar")
	suite.Require().NoError(err)

	suite.Equal(domain.SubsidiaryRef{Kind: domain.SubsidiaryStudent, ID: "S2"}, j.Subsidiary)
	suite.equal("17500", suite.studentBalance("S2"))
	suite.equal("17500", suite.ledger.Summarize(suite.ctx).TotalAR.Sub(arBefore))
	suite.equal("32500", suite.balance("2"))
	suite.equal("17500", suite.balance("6"))
}

func (suite *LedgerServiceTestSuite) TestPaymentPosting() {
	_, err := suite.ledger.PostJournal(suite.ctx, dto.PostJournalRequest{
		Description: "Juan Dela Cruz - Payment: Tuition",
		Reference:   "OR-0001",
		Module:      domain.ModuleCashiering,
		Lines:       []dto.LineRequest{debit("1", "5000"), credit("2", "5000")},
		Subsidiary:  &dto.SubsidiaryRequest{Kind: domain.SubsidiaryStudent, ID: "S1"},
	}, "cashier")
	suite.Require().NoError(err)

	suite.equal("0", suite.studentBalance("S1"))
	suite.equal("105000", suite.balance("1"))
	suite.equal("10000", suite.balance("2"))
}

func (suite *LedgerServiceTestSuite) TestDeletionReversal() {
	cashBefore, arBefore, revBefore := suite.balance("1"), suite.balance("2"), suite.balance("6")
	summaryBefore := suite.ledger.Summarize(suite.ctx)

	j, err := suite.ledger.PostJournal(suite.ctx, dto.PostJournalRequest{
		Description: "Maria Santos - Billing",
		Reference:   "BATCH-0002-1",
		Module:      domain.ModuleBilling,
		Lines:       []dto.LineRequest{debit("2", "17500"), credit("6", "17500")},
		Subsidiary:  &dto.SubsidiaryRequest{Kind: domain.SubsidiaryStudent, ID: "S2"},
	}, "bursar")
	suite.Require().NoError(err)
	suite.equal("17500", suite.studentBalance("S2"))

	suite.Require().NoError(suite.ledger.DeleteJournal(suite.ctx, j.JournalID, "principal"))

	suite.equal("0", suite.studentBalance("S2"))
	suite.True(cashBefore.Equal(suite.balance("1")))
	suite.True(arBefore.Equal(suite.balance("2")))
	suite.True(revBefore.Equal(suite.balance("6")))

	summaryAfter := suite.ledger.Summarize(suite.ctx)
	suite.sameSummary(summaryBefore, summaryAfter)

	_, err = suite.ledger.GetJournal(suite.ctx, j.JournalID)
	suite.ErrorIs(err, services.ErrTransactionNotFound)

	audit := suite.ledger.ListAuditLog(suite.ctx)
	suite.Equal("DELETED/REVERSED: Maria Santos - Billing (Ref: BATCH-0002-1)", audit[0].Action)
	suite.Equal(domain.ModuleGeneralLedger, audit[0].Module)
	suite.Equal("principal", audit[0].Actor)
}

func (suite *LedgerServiceTestSuite) TestDelete_UnknownJournal() {
	auditBefore := len(suite.ledger.ListAuditLog(suite.ctx))
	err := suite.ledger.DeleteJournal(suite.ctx, "missing", "tester")
	suite.ErrorIs(err, services.ErrTransactionNotFound)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Len(suite.ledger.ListAuditLog(suite.ctx), auditBefore)
}

func (suite *LedgerServiceTestSuite) TestDelete_IsTotal() {
	j, err := suite.ledger.PostJournal(suite.ctx, dto.PostJournalRequest{
		Description: "Temp",
		Lines:       []dto.LineRequest{debit("8", "5"), credit("1", "5")},
	}, "tester")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.ledger.DeleteJournal(suite.ctx, j.JournalID, "tester"))

	err = suite.ledger.DeleteJournal(suite.ctx, j.JournalID, "tester")
	suite.ErrorIs(err, services.ErrTransactionNotFound)
	for _, listed := range suite.ledger.ListJournals(suite.ctx, dto.ListJournalsParams{}) {
		suite.NotEqual(j.JournalID, listed.JournalID)
	}
}

func (suite *LedgerServiceTestSuite) TestSupplierReversalUsesRecordedReference() {
	_, err := suite.ledger.RegisterSupplier(suite.ctx, dto.CreateSupplierRequest{SupplierID: "V2", Name: "Book Store", OpeningPayable: dec("300")}, "tester")
	suite.Require().NoError(err)

	// The description names both suppliers; only the tagged one may move.
	j, err := suite.ledger.PostJournal(suite.ctx, dto.PostJournalRequest{
		Description: "Purchase Invoice: Textbooks from National Book Store",
		Module:      domain.ModuleProcurement,
		Lines:       []dto.LineRequest{debit("8", "4000"), credit("4", "4000")},
		Subsidiary:  &dto.SubsidiaryRequest{Kind: domain.SubsidiarySupplier, ID: "V1"},
	}, "tester")
	suite.Require().NoError(err)
	suite.equal("5250", suite.supplierBalance("V1"))
	suite.equal("300", suite.supplierBalance("V2"))

	suite.Require().NoError(suite.ledger.DeleteJournal(suite.ctx, j.JournalID, "tester"))
	suite.equal("1250", suite.supplierBalance("V1"))
	suite.equal("300", suite.supplierBalance("V2"))
}

func (suite *LedgerServiceTestSuite) TestSubsidiary_RequiresControlLine() {
	_, err := suite.ledger.PostJournal(suite.ctx, dto.PostJournalRequest{
		Description: "Supplier tagged cash purchase",
		Lines:       []dto.LineRequest{debit("8", "100"), credit("1", "100")},
		Subsidiary:  &dto.SubsidiaryRequest{Kind: domain.SubsidiarySupplier, ID: "V1"},
	}, "tester")
	suite.ErrorIs(err, services.ErrControlAccountMissing)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestSubsidiary_UnknownEntity() {
	_, err := suite.ledger.PostJournal(suite.ctx, dto.PostJournalRequest{
		Description: "Ghost billing",
		Lines:       []dto.LineRequest{debit("2", "100"), credit("6", "100")},
		Metadata:    map[string]string{"studentId": "S404"},
	}, "tester")
	suite.ErrorIs(err, services.ErrSubsidiaryNotFound)
}

func (suite *LedgerServiceTestSuite) TestSubsidiary_Ambiguous() {
	auditBefore := len(suite.ledger.ListAuditLog(suite.ctx))
	_, err := suite.ledger.PostJournal(suite.ctx, dto.PostJournalRequest{
		Description: "Two tags",
		Lines:       []dto.LineRequest{debit("2", "100"), credit("4", "100")},
		Metadata:    map[string]string{"studentId": "S1", "supplierId": "V1"},
	}, "tester")
	suite.ErrorIs(err, services.ErrAmbiguousSubsidiaryMatch)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Len(suite.ledger.ListAuditLog(suite.ctx), auditBefore)
}

func (suite *LedgerServiceTestSuite) TestReconcile() {
	_, err := suite.ledger.PostJournal(suite.ctx, dto.PostJournalRequest{
		Description: "Billing",
		Lines:       []dto.LineRequest{debit("2", "2000"), credit("6", "2000")},
		Subsidiary:  &dto.SubsidiaryRequest{Kind: domain.SubsidiaryStudent, ID: "S2"},
	}, "tester")
	suite.Require().NoError(err)
	// Untagged receivable movement shows up as unattributed.
	_, err = suite.ledger.PostJournal(suite.ctx, dto.PostJournalRequest{
		Description: "Untagged receivable",
		Lines:       []dto.LineRequest{debit("2", "300"), credit("6", "300")},
	}, "tester")
	suite.Require().NoError(err)

	recs := suite.ledger.Reconcile(suite.ctx)
	suite.Require().Len(recs, 3)

	students := recs[0]
	suite.Equal(domain.SubsidiaryStudent, students.Kind)
	suite.Equal("2", students.ControlAccountID)
	suite.equal("17300", students.ControlBalance)
	suite.equal("7000", students.SubsidiaryTotal)
	suite.equal("10300", students.Unattributed)

	suppliers := recs[1]
	suite.equal("2000", suppliers.ControlBalance)
	suite.equal("1250", suppliers.SubsidiaryTotal)
	suite.equal("750", suppliers.Unattributed)

	staff := recs[2]
	suite.equal("0", staff.Unattributed)
}

func (suite *LedgerServiceTestSuite) TestListSubsidiaryBalances() {
	balances := suite.ledger.ListSubsidiaryBalances(suite.ctx, domain.SubsidiaryStudent)
	suite.Require().Len(balances, 2)
	suite.Equal("S1", balances[0].Ref.ID)
	suite.Equal("Juan Dela Cruz", balances[0].Name)
	suite.equal("5000", balances[0].Balance)
	suite.Equal("S2", balances[1].Ref.ID)
}

func (suite *LedgerServiceTestSuite) TestVerifyIntegrity_HealthyAfterPostAndDelete() {
	j, err := suite.ledger.PostJournal(suite.ctx, dto.PostJournalRequest{
		Description: "Billing",
		Lines:       []dto.LineRequest{debit("2", "900"), credit("6", "900")},
		Subsidiary:  &dto.SubsidiaryRequest{Kind: domain.SubsidiaryStudent, ID: "S1"},
	}, "tester")
	suite.Require().NoError(err)
	suite.True(suite.ledger.VerifyIntegrity(suite.ctx).Healthy())

	suite.Require().NoError(suite.ledger.DeleteJournal(suite.ctx, j.JournalID, "tester"))
	report := suite.ledger.VerifyIntegrity(suite.ctx)
	suite.True(report.Healthy())
	suite.True(report.Balanced)
	suite.Empty(report.Drift)
}

func (suite *LedgerServiceTestSuite) TestVerifyIntegrity_HealthyWithToleratedGap() {
	_, err := suite.ledger.PostJournal(suite.ctx, dto.PostJournalRequest{
		Description: "Rounded utilities",
		Lines:       []dto.LineRequest{debit("8", "100.00"), credit("1", "99.995")},
	}, "tester")
	suite.Require().NoError(err)

	report := suite.ledger.VerifyIntegrity(suite.ctx)
	suite.True(report.Healthy())
	suite.True(report.Balanced)
	suite.False(report.SystemDebit.Equal(report.SystemCredit))
	suite.equal("0.005", report.SystemDebit.Sub(report.SystemCredit))
}

func (suite *LedgerServiceTestSuite) TestPost_NoOverdrawGuardsSubsidiaryBalance() {
	req := dto.PostJournalRequest{
		Description: "Loan repayment",
		Lines:       []dto.LineRequest{debit("1", "8000.01"), credit("9", "8000.01")},
		Subsidiary:  &dto.SubsidiaryRequest{Kind: domain.SubsidiaryStaff, ID: "ST1"},
		NoOverdraw:  true,
	}
	_, err := suite.ledger.PostJournal(suite.ctx, req, "tester")
	suite.ErrorIs(err, services.ErrSubsidiaryOverdrawn)
	suite.ErrorIs(err, apperrors.ErrValidation)

	req.Lines = []dto.LineRequest{debit("1", "8000"), credit("9", "8000")}
	_, err = suite.ledger.PostJournal(suite.ctx, req, "tester")
	suite.Require().NoError(err)

	staff, err := suite.ledger.SubsidiaryBalance(suite.ctx, domain.SubsidiaryRef{Kind: domain.SubsidiaryStaff, ID: "ST1"})
	suite.Require().NoError(err)
	suite.True(staff.IsZero())

	// Increases are never blocked.
	req.Lines = []dto.LineRequest{debit("9", "500"), credit("1", "500")}
	_, err = suite.ledger.PostJournal(suite.ctx, req, "tester")
	suite.NoError(err)
}

// --- Account Registry ---

func (suite *LedgerServiceTestSuite) TestRegisterAccount() {
	acc, err := suite.ledger.RegisterAccount(suite.ctx, dto.CreateAccountRequest{Code: "1400", Name: "Petty Cash", AccountType: domain.Asset}, "tester")
	suite.Require().NoError(err)
	suite.NotEmpty(acc.AccountID)

	_, err = suite.ledger.RegisterAccount(suite.ctx, dto.CreateAccountRequest{AccountID: "1", Name: "Dup", AccountType: domain.Asset}, "tester")
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	_, err = suite.ledger.RegisterAccount(suite.ctx, dto.CreateAccountRequest{Name: "Odd", AccountType: "CONTRA"}, "tester")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.ledger.RegisterAccount(suite.ctx, dto.CreateAccountRequest{Name: " ", AccountType: domain.Asset}, "tester")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.ledger.RegisterAccount(suite.ctx, dto.CreateAccountRequest{Name: "Float", AccountType: domain.Asset, OpeningBalance: dec("10.12345")}, "tester")
	suite.ErrorIs(err, services.ErrAmountPrecision)

	accounts := suite.ledger.ListAccounts(suite.ctx)
	suite.Equal("1", accounts[0].AccountID)
	suite.Equal(acc.AccountID, accounts[len(accounts)-1].AccountID)

	got, err := suite.ledger.GetAccount(suite.ctx, acc.AccountID)
	suite.Require().NoError(err)
	suite.Equal("Petty Cash", got.Name)
}

func (suite *LedgerServiceTestSuite) TestReadsReturnCopies() {
	j, err := suite.ledger.PostJournal(suite.ctx, dto.PostJournalRequest{
		Description: "Copy check",
		Lines:       []dto.LineRequest{debit("8", "10"), credit("1", "10")},
		Metadata:    map[string]string{"note": "original"},
	}, "tester")
	suite.Require().NoError(err)

	j.Lines[0].Debit = dec("999")
	j.Metadata["note"] = "changed"

	got, err := suite.ledger.GetJournal(suite.ctx, j.JournalID)
	suite.Require().NoError(err)
	suite.equal("10", got.Lines[0].Debit)
	suite.Equal("original", got.Metadata["note"])

	got.Lines[0].AccountID = "404"
	again, err := suite.ledger.GetJournal(suite.ctx, j.JournalID)
	suite.Require().NoError(err)
	suite.Equal("8", again.Lines[0].AccountID)
}

func (suite *LedgerServiceTestSuite) TestListJournals_Filters() {
	_, err := suite.ledger.PostJournal(suite.ctx, dto.PostJournalRequest{
		Description: "Charge",
		Module:      domain.ModuleBilling,
		Lines:       []dto.LineRequest{debit("2", "100"), credit("6", "100")},
		Subsidiary:  &dto.SubsidiaryRequest{Kind: domain.SubsidiaryStudent, ID: "S1"},
	}, "tester")
	suite.Require().NoError(err)
	_, err = suite.ledger.PostJournal(suite.ctx, dto.PostJournalRequest{
		Description: "Utilities",
		Module:      domain.ModuleProcurement,
		Lines:       []dto.LineRequest{debit("8", "100"), credit("1", "100")},
	}, "tester")
	suite.Require().NoError(err)

	byStudent := suite.ledger.ListJournals(suite.ctx, dto.ListJournalsParams{SubsidiaryKind: domain.SubsidiaryStudent, SubsidiaryID: "S1"})
	suite.Require().Len(byStudent, 1)
	suite.Equal("Charge", byStudent[0].Description)

	byModule := suite.ledger.ListJournals(suite.ctx, dto.ListJournalsParams{Module: domain.ModuleProcurement})
	suite.Require().Len(byModule, 1)

	byAccount := suite.ledger.ListJournals(suite.ctx, dto.ListJournalsParams{AccountID: "1"})
	suite.Len(byAccount, 2) // opening entry and utilities

	yesterday := fixedNow.AddDate(0, 0, -1)
	suite.Empty(suite.ledger.ListJournals(suite.ctx, dto.ListJournalsParams{To: &yesterday}))
	suite.Len(suite.ledger.ListJournals(suite.ctx, dto.ListJournalsParams{From: &fixedNow, To: &fixedNow}), 3)
}

func (suite *LedgerServiceTestSuite) TestRecordAudit() {
	suite.Require().NoError(suite.ledger.RecordAudit(suite.ctx, "principal", "Closed the books for June", domain.ModuleGeneralLedger))
	audit := suite.ledger.ListAuditLog(suite.ctx)
	suite.Equal("Closed the books for June", audit[0].Action)

	suite.ErrorIs(suite.ledger.RecordAudit(suite.ctx, "principal", "", ""), apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestConcurrentPostsKeepLedgerBalanced() {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = suite.ledger.PostJournal(suite.ctx, dto.PostJournalRequest{
				Description: fmt.Sprintf("concurrent %d", i),
				Lines:       []dto.LineRequest{debit("8", "1.25"), credit("1", "1.25")},
			}, "tester")
			_ = suite.ledger.Summarize(suite.ctx)
		}(i)
	}
	wg.Wait()

	sum := suite.ledger.Summarize(suite.ctx)
	suite.Equal(51, sum.JournalCount)
	suite.True(sum.SystemDebit.Equal(sum.SystemCredit))
	suite.equal("62.5", suite.balance("8"))
	suite.True(suite.ledger.VerifyIntegrity(suite.ctx).Healthy())
}

func (suite *LedgerServiceTestSuite) TestRegisterAsset() {
	asset, err := suite.ledger.RegisterAsset(suite.ctx, dto.CreateAssetRequest{
		Name:               "Computer Lab 1 (Set of 30)",
		AccountID:          "3",
		Cost:               dec("750000"),
		DepreciationAmount: dec("15000"),
		AcquiredOn:         "2023-01-15",
	}, "tester")
	suite.Require().NoError(err)
	suite.NotEmpty(asset.AssetID)
	suite.Equal(2023, asset.AcquiredOn.Year())
	suite.Equal(domain.ModuleAssets, suite.ledger.ListAuditLog(suite.ctx)[0].Module)

	assets := suite.ledger.ListAssets(suite.ctx)
	suite.Require().Len(assets, 1)
	suite.True(assets[0].AccumulatedDepreciation.IsZero())
	suite.equal("750000", assets[0].BookValue)

	base := dto.CreateAssetRequest{Name: "Bus", AccountID: "3", Cost: dec("100"), AcquiredOn: "2024-01-01"}
	tests := []struct {
		name    string
		mutate  func(*dto.CreateAssetRequest)
		wantErr error
	}{
		{"zero cost", func(r *dto.CreateAssetRequest) { r.Cost = decimal.Zero }, services.ErrNonPositiveAmount},
		{"charge above cost", func(r *dto.CreateAssetRequest) { r.DepreciationAmount = dec("101") }, apperrors.ErrValidation},
		{"bad date", func(r *dto.CreateAssetRequest) { r.AcquiredOn = "15/01/2023" }, apperrors.ErrValidation},
		{"not an asset account", func(r *dto.CreateAssetRequest) { r.AccountID = "6" }, apperrors.ErrValidation},
		{"unknown account", func(r *dto.CreateAssetRequest) { r.AccountID = "404" }, services.ErrAccountNotFound},
		{"duplicate id", func(r *dto.CreateAssetRequest) { r.AssetID = asset.AssetID }, apperrors.ErrDuplicate},
		{"too precise", func(r *dto.CreateAssetRequest) { r.Cost = dec("100.00001") }, services.ErrAmountPrecision},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			req := base
			tt.mutate(&req)
			_, err := suite.ledger.RegisterAsset(suite.ctx, req, "tester")
			suite.ErrorIs(err, tt.wantErr)
		})
	}

	_, err = suite.ledger.GetAsset(suite.ctx, "A404")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestRegistration_RejectsUnstorableAmounts() {
	tiny := dec("0.00001")
	_, err := suite.ledger.RegisterStudent(suite.ctx, dto.CreateStudentRequest{Name: "Ana", OpeningBalance: tiny}, "tester")
	suite.ErrorIs(err, services.ErrAmountPrecision)
	_, err = suite.ledger.RegisterSupplier(suite.ctx, dto.CreateSupplierRequest{Name: "Acme", OpeningPayable: tiny}, "tester")
	suite.ErrorIs(err, services.ErrAmountPrecision)
	_, err = suite.ledger.RegisterStaff(suite.ctx, dto.CreateStaffRequest{Name: "Ben", OpeningLoanBalance: tiny}, "tester")
	suite.ErrorIs(err, services.ErrAmountPrecision)
	_, err = suite.ledger.RegisterStaff(suite.ctx, dto.CreateStaffRequest{Name: "Ben", BasicPay: dec("1000.000001")}, "tester")
	suite.ErrorIs(err, services.ErrAmountPrecision)
	_, err = suite.ledger.RegisterFeeTemplate(suite.ctx, dto.CreateFeeTemplateRequest{
		Name:  "Odd",
		Items: []domain.FeeItem{{Category: "Tuition", Amount: dec("100.00005")}},
	}, "tester")
	suite.ErrorIs(err, services.ErrAmountPrecision)
	_, err = suite.ledger.RegisterBudget(suite.ctx, dto.CreateBudgetRequest{AccountID: "8", Period: "2024", Amount: dec("1.23456")}, "tester")
	suite.ErrorIs(err, services.ErrAmountPrecision)

	// Four places are storable.
	_, err = suite.ledger.RegisterStudent(suite.ctx, dto.CreateStudentRequest{Name: "Ana", OpeningBalance: dec("0.0001")}, "tester")
	suite.NoError(err)
}
