package domain

import "github.com/shopspring/decimal"

// FeeItem is one line of a fee template.
type FeeItem struct {
	Category string          `json:"category" yaml:"category"`
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
}

// FeeTemplate is a reusable package of fees billed to many students at once.
type FeeTemplate struct {
	TemplateID string    `json:"templateID"`
	Name       string    `json:"name"`
	GradeLevel string    `json:"gradeLevel"`
	Items      []FeeItem `json:"items"`
	AuditFields
}

// Total sums the template items.
func (t FeeTemplate) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range t.Items {
		total = total.Add(item.Amount)
	}
	return total
}

// Budget is a spending or earning target for one account over a period label.
type Budget struct {
	BudgetID  string          `json:"budgetID"`
	AccountID string          `json:"accountID"`
	Amount    decimal.Decimal `json:"amount"`
	Period    string          `json:"period"`
	AuditFields
}

// BudgetVariance compares a budget with the account's current balance.
type BudgetVariance struct {
	Budget
	AccountName string          `json:"accountName"`
	Actual      decimal.Decimal `json:"actual"`
	Variance    decimal.Decimal `json:"variance"`    // Amount - Actual
	Utilisation decimal.Decimal `json:"utilisation"` // Actual / Amount * 100, two decimal places
}
