package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// AccountTypes lists every account type in statement order.
var AccountTypes = []AccountType{Asset, Liability, Equity, Revenue, Expense}

// Side is the column of a journal line.
type Side string

const (
	DebitSide  Side = "DEBIT"
	CreditSide Side = "CREDIT"
)

// NormalSide returns the side that increases a balance of this type.
func (t AccountType) NormalSide() (Side, error) {
	switch t {
	case Asset, Expense:
		return DebitSide, nil
	case Liability, Equity, Revenue:
		return CreditSide, nil
	default:
		return "", fmt.Errorf("unknown account type '%s'", t)
	}
}

// Valid reports whether t is one of the five account types.
func (t AccountType) Valid() bool {
	_, err := t.NormalSide()
	return err == nil
}

// SignedAmount applies the sign convention of the account type to a debit/credit pair.
// DEBIT to ASSET/EXPENSE -> Positive (+)
// CREDIT to ASSET/EXPENSE -> Negative (-)
// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
func (t AccountType) SignedAmount(debit, credit decimal.Decimal) (decimal.Decimal, error) {
	side, err := t.NormalSide()
	if err != nil {
		return decimal.Zero, err
	}
	if side == DebitSide {
		return debit.Sub(credit), nil
	}
	return credit.Sub(debit), nil
}

// Account represents a named bucket in the chart of accounts.
type Account struct {
	AccountID      string          `json:"accountID"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	OpeningBalance decimal.Decimal `json:"openingBalance"` // Signed per the type's normal side
	Description    string          `json:"description"`
	AuditFields
}
