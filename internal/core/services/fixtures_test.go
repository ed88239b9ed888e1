package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/core/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.June, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

var schoolPosting = domain.PostingAccounts{
	Cash:                "1",
	Receivable:          "2",
	TuitionRevenue:      "6",
	Payable:             "4",
	PurchaseExpense:     "8",
	Salaries:            "7",
	WithholdingsPayable: "10",
	StaffLoans:          "9",
	DepreciationExpense: "8",
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func debit(accountID, amount string) dto.LineRequest {
	return dto.LineRequest{AccountID: accountID, Debit: dec(amount)}
}

func credit(accountID, amount string) dto.LineRequest {
	return dto.LineRequest{AccountID: accountID, Credit: dec(amount)}
}

// seedSchool registers the school's chart, sub-ledgers and the opening journal.
func seedSchool(t require.TestingT, ledger portssvc.LedgerSvcFacade) {
	ctx := context.Background()
	accounts := []dto.CreateAccountRequest{
		{AccountID: "1", Code: "1000", Name: "Cash at Bank", AccountType: domain.Asset, OpeningBalance: dec("50000")},
		{AccountID: "2", Code: "1100", Name: "Tuition Receivable", AccountType: domain.Asset, OpeningBalance: dec("15000")},
		{AccountID: "3", Code: "1200", Name: "School Building", AccountType: domain.Asset, OpeningBalance: dec("500000")},
		{AccountID: "9", Code: "1300", Name: "Staff Loans Receivable", AccountType: domain.Asset, OpeningBalance: dec("8000")},
		{AccountID: "4", Code: "2000", Name: "Accounts Payable", AccountType: domain.Liability, OpeningBalance: dec("2000")},
		{AccountID: "10", Code: "2100", Name: "Withholdings Payable", AccountType: domain.Liability},
		{AccountID: "5", Code: "3000", Name: "Capital Fund", AccountType: domain.Equity, OpeningBalance: dec("571000")},
		{AccountID: "6", Code: "4000", Name: "Tuition Revenue", AccountType: domain.Revenue},
		{AccountID: "7", Code: "5000", Name: "Teacher Salaries", AccountType: domain.Expense},
		{AccountID: "8", Code: "5100", Name: "Utility Expenses", AccountType: domain.Expense},
	}
	for _, a := range accounts {
		_, err := ledger.RegisterAccount(ctx, a, "System")
		require.NoError(t, err)
	}

	_, err := ledger.RegisterStudent(ctx, dto.CreateStudentRequest{StudentID: "S1", Name: "Juan Dela Cruz", GradeLevel: "Grade 7", OpeningBalance: dec("5000")}, "System")
	require.NoError(t, err)
	_, err = ledger.RegisterStudent(ctx, dto.CreateStudentRequest{StudentID: "S2", Name: "Maria Santos", GradeLevel: "Grade 7"}, "System")
	require.NoError(t, err)
	_, err = ledger.RegisterSupplier(ctx, dto.CreateSupplierRequest{SupplierID: "V1", Name: "National Book Store", Category: "Supplies", OpeningPayable: dec("1250")}, "System")
	require.NoError(t, err)
	_, err = ledger.RegisterStaff(ctx, dto.CreateStaffRequest{StaffID: "ST1", Name: "Prof. Ricardo Silva", Position: "Senior Faculty", BasicPay: dec("35000"), OpeningLoanBalance: dec("8000")}, "System")
	require.NoError(t, err)
	_, err = ledger.RegisterStaff(ctx, dto.CreateStaffRequest{StaffID: "ST2", Name: "Elena Gomez", Position: "Registrar", BasicPay: dec("22000")}, "System")
	require.NoError(t, err)

	_, err = ledger.RegisterFeeTemplate(ctx, dto.CreateFeeTemplateRequest{
		TemplateID: "T1",
		Name:       "Grade 7 Standard Package",
		GradeLevel: "Grade 7",
		Items: []domain.FeeItem{
			{Category: "Tuition", Amount: dec("15000")},
			{Category: "Miscellaneous", Amount: dec("2500")},
		},
	}, "System")
	require.NoError(t, err)

	_, err = ledger.PostJournal(ctx, dto.PostJournalRequest{
		Description: "Opening Balance Setup",
		Reference:   "SYS-INIT",
		Module:      domain.ModuleGeneralLedger,
		Lines:       []dto.LineRequest{debit("1", "50000"), credit("5", "50000")},
	}, "System")
	require.NoError(t, err)
}

func newSchoolLedger(t require.TestingT, opts ...services.LedgerServiceOption) portssvc.LedgerSvcFacade {
	opts = append([]services.LedgerServiceOption{
		services.WithClock(fixedClock),
		services.WithPostingAccounts(schoolPosting),
	}, opts...)
	ledger := services.NewLedgerService(opts...)
	seedSchool(t, ledger)
	return ledger
}
