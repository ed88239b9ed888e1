package domain_test

import (
	"testing"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountType_SignedAmount(t *testing.T) {
	hundred := decimal.NewFromInt(100)
	tests := []struct {
		name        string
		accountType domain.AccountType
		debit       decimal.Decimal
		credit      decimal.Decimal
		want        decimal.Decimal
	}{
		{"debit to asset increases", domain.Asset, hundred, decimal.Zero, hundred},
		{"credit to asset decreases", domain.Asset, decimal.Zero, hundred, hundred.Neg()},
		{"debit to expense increases", domain.Expense, hundred, decimal.Zero, hundred},
		{"credit to liability increases", domain.Liability, decimal.Zero, hundred, hundred},
		{"debit to equity decreases", domain.Equity, hundred, decimal.Zero, hundred.Neg()},
		{"credit to revenue increases", domain.Revenue, decimal.Zero, hundred, hundred},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.accountType.SignedAmount(tt.debit, tt.credit)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestAccountType_Unknown(t *testing.T) {
	_, err := domain.AccountType("CONTRA").SignedAmount(decimal.NewFromInt(1), decimal.Zero)
	assert.Error(t, err)
	assert.False(t, domain.AccountType("CONTRA").Valid())
	for _, at := range domain.AccountTypes {
		assert.True(t, at.Valid(), "%s should be valid", at)
	}
}

func TestJournal_TotalsAndClone(t *testing.T) {
	j := domain.Journal{
		JournalID: "j1",
		Lines: []domain.Line{
			{AccountID: "1", Debit: decimal.NewFromInt(70)},
			{AccountID: "1", Debit: decimal.NewFromInt(30)},
			{AccountID: "5", Credit: decimal.NewFromInt(100)},
		},
		Metadata: map[string]string{"studentId": "S1"},
	}

	debit, credit := j.Totals()
	assert.True(t, debit.Equal(decimal.NewFromInt(100)))
	assert.True(t, credit.Equal(decimal.NewFromInt(100)))

	c := j.Clone()
	c.Lines[0].AccountID = "changed"
	c.Metadata["studentId"] = "S2"
	assert.Equal(t, "1", j.Lines[0].AccountID)
	assert.Equal(t, "S1", j.Metadata["studentId"])
}

func TestLine_IsInert(t *testing.T) {
	assert.True(t, domain.Line{AccountID: "1"}.IsInert())
	assert.False(t, domain.Line{AccountID: "1", Credit: decimal.NewFromInt(1)}.IsInert())
}
