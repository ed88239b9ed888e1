// Package seed loads the school's starting chart of accounts, sub-ledgers and
// opening journals from YAML and applies them through the ledger service.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/SscSPs/school_ledger/internal/middleware"
)

// Actor is recorded on everything the seed creates.
const Actor = "System"

//go:embed default.yaml
var defaultSeed []byte

type File struct {
	Posting      domain.PostingAccounts `yaml:"posting"`
	Accounts     []Account              `yaml:"accounts"`
	Students     []Student              `yaml:"students"`
	Suppliers    []Supplier             `yaml:"suppliers"`
	Staff        []Staff                `yaml:"staff"`
	FeeTemplates []FeeTemplate          `yaml:"feeTemplates"`
	Budgets      []Budget               `yaml:"budgets"`
	Assets       []Asset                `yaml:"assets"`
	Journals     []Journal              `yaml:"journals"`
}

type Account struct {
	ID             string             `yaml:"id"`
	Code           string             `yaml:"code"`
	Name           string             `yaml:"name"`
	Type           domain.AccountType `yaml:"type"`
	Description    string             `yaml:"description"`
	OpeningBalance decimal.Decimal    `yaml:"openingBalance"`
}

type Student struct {
	ID             string          `yaml:"id"`
	Name           string          `yaml:"name"`
	GradeLevel     string          `yaml:"gradeLevel"`
	OpeningBalance decimal.Decimal `yaml:"openingBalance"`
}

type Supplier struct {
	ID             string          `yaml:"id"`
	Name           string          `yaml:"name"`
	Category       string          `yaml:"category"`
	OpeningPayable decimal.Decimal `yaml:"openingPayable"`
}

type Staff struct {
	ID                 string          `yaml:"id"`
	Name               string          `yaml:"name"`
	Position           string          `yaml:"position"`
	Category           string          `yaml:"category"`
	BasicPay           decimal.Decimal `yaml:"basicPay"`
	OpeningLoanBalance decimal.Decimal `yaml:"openingLoanBalance"`
}

type FeeTemplate struct {
	ID         string           `yaml:"id"`
	Name       string           `yaml:"name"`
	GradeLevel string           `yaml:"gradeLevel"`
	Items      []domain.FeeItem `yaml:"items"`
}

type Budget struct {
	ID        string          `yaml:"id"`
	AccountID string          `yaml:"accountId"`
	Amount    decimal.Decimal `yaml:"amount"`
	Period    string          `yaml:"period"`
}

type Asset struct {
	ID                 string          `yaml:"id"`
	Name               string          `yaml:"name"`
	AccountID          string          `yaml:"accountId"`
	Cost               decimal.Decimal `yaml:"cost"`
	DepreciationAmount decimal.Decimal `yaml:"depreciationAmount"`
	AcquiredOn         string          `yaml:"acquiredOn"`
}

type Journal struct {
	Description string            `yaml:"description"`
	Reference   string            `yaml:"reference"`
	Module      string            `yaml:"module"`
	Lines       []Line            `yaml:"lines"`
	Metadata    map[string]string `yaml:"metadata"`
}

type Line struct {
	AccountID string          `yaml:"accountId"`
	Debit     decimal.Decimal `yaml:"debit"`
	Credit    decimal.Decimal `yaml:"credit"`
}

// Default returns the embedded school seed.
func Default() (*File, error) {
	return Parse(defaultSeed)
}

// Load reads a seed file from disk. An empty path selects the embedded seed.
func Load(path string) (*File, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a seed document. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}
	return &f, nil
}

// Apply registers everything in f and posts its journals. It stops at the
// first error; the ledger keeps what was applied before it.
func Apply(ctx context.Context, ledger portssvc.LedgerSvcFacade, f *File) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	for _, a := range f.Accounts {
		if _, err := ledger.RegisterAccount(ctx, dto.CreateAccountRequest{
			AccountID:      a.ID,
			Code:           a.Code,
			Name:           a.Name,
			AccountType:    a.Type,
			OpeningBalance: a.OpeningBalance,
			Description:    a.Description,
		}, Actor); err != nil {
			return fmt.Errorf("seed account %s: %w", a.ID, err)
		}
	}
	for _, s := range f.Students {
		if _, err := ledger.RegisterStudent(ctx, dto.CreateStudentRequest{
			StudentID:      s.ID,
			Name:           s.Name,
			GradeLevel:     s.GradeLevel,
			OpeningBalance: s.OpeningBalance,
		}, Actor); err != nil {
			return fmt.Errorf("seed student %s: %w", s.ID, err)
		}
	}
	for _, s := range f.Suppliers {
		if _, err := ledger.RegisterSupplier(ctx, dto.CreateSupplierRequest{
			SupplierID:     s.ID,
			Name:           s.Name,
			Category:       s.Category,
			OpeningPayable: s.OpeningPayable,
		}, Actor); err != nil {
			return fmt.Errorf("seed supplier %s: %w", s.ID, err)
		}
	}
	for _, s := range f.Staff {
		if _, err := ledger.RegisterStaff(ctx, dto.CreateStaffRequest{
			StaffID:            s.ID,
			Name:               s.Name,
			Position:           s.Position,
			Category:           s.Category,
			BasicPay:           s.BasicPay,
			OpeningLoanBalance: s.OpeningLoanBalance,
		}, Actor); err != nil {
			return fmt.Errorf("seed staff %s: %w", s.ID, err)
		}
	}
	for _, t := range f.FeeTemplates {
		if _, err := ledger.RegisterFeeTemplate(ctx, dto.CreateFeeTemplateRequest{
			TemplateID: t.ID,
			Name:       t.Name,
			GradeLevel: t.GradeLevel,
			Items:      t.Items,
		}, Actor); err != nil {
			return fmt.Errorf("seed fee template %s: %w", t.ID, err)
		}
	}
	for _, b := range f.Budgets {
		if _, err := ledger.RegisterBudget(ctx, dto.CreateBudgetRequest{
			BudgetID:  b.ID,
			AccountID: b.AccountID,
			Amount:    b.Amount,
			Period:    b.Period,
		}, Actor); err != nil {
			return fmt.Errorf("seed budget %s: %w", b.ID, err)
		}
	}
	for _, a := range f.Assets {
		if _, err := ledger.RegisterAsset(ctx, dto.CreateAssetRequest{
			AssetID:            a.ID,
			Name:               a.Name,
			AccountID:          a.AccountID,
			Cost:               a.Cost,
			DepreciationAmount: a.DepreciationAmount,
			AcquiredOn:         a.AcquiredOn,
		}, Actor); err != nil {
			return fmt.Errorf("seed asset %s: %w", a.ID, err)
		}
	}
	for i, j := range f.Journals {
		lines := make([]dto.LineRequest, len(j.Lines))
		for k, l := range j.Lines {
			lines[k] = dto.LineRequest{AccountID: l.AccountID, Debit: l.Debit, Credit: l.Credit}
		}
		if _, err := ledger.PostJournal(ctx, dto.PostJournalRequest{
			Description: j.Description,
			Reference:   j.Reference,
			Module:      j.Module,
			Lines:       lines,
			Metadata:    j.Metadata,
		}, Actor); err != nil {
			return fmt.Errorf("seed journal %d (%s): %w", i+1, j.Reference, err)
		}
	}

	logger.Info("Seed applied",
		slog.Int("accounts", len(f.Accounts)),
		slog.Int("students", len(f.Students)),
		slog.Int("suppliers", len(f.Suppliers)),
		slog.Int("staff", len(f.Staff)),
		slog.Int("assets", len(f.Assets)),
		slog.Int("journals", len(f.Journals)))
	return nil
}
