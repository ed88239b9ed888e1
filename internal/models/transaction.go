package models

import "github.com/shopspring/decimal"

// TransactionType indicates whether a transaction line is a Debit or a Credit.
type TransactionType string

const (
	Debit  TransactionType = "DEBIT"
	Credit TransactionType = "CREDIT"
)

// Transaction is one journal line. Amount is always positive.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	JournalID       string          `db:"journal_id"`
	LineNo          int             `db:"line_no"`
	AccountID       string          `db:"account_id"`
	Amount          decimal.Decimal `db:"amount"`
	TransactionType TransactionType `db:"transaction_type"`
}
