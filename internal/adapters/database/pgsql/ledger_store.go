package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/school_ledger/internal/middleware"
	"github.com/SscSPs/school_ledger/internal/models"
	"github.com/SscSPs/school_ledger/internal/utils/mapping"
)

// PgxLedgerStore persists the ledger write-through. Every write runs in one
// transaction together with the audit record that describes it.
type PgxLedgerStore struct {
	BaseRepository
}

// NewLedgerStore creates a new Postgres-backed ledger store.
func NewLedgerStore(pool *pgxpool.Pool) *PgxLedgerStore {
	return &PgxLedgerStore{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerStore implements portsrepo.LedgerStore
var _ portsrepo.LedgerStore = (*PgxLedgerStore)(nil)

const insertAuditQuery = `
	INSERT INTO audit_log (audit_id, occurred_at, actor, action, module)
	VALUES ($1, $2, $3, $4, $5);
`

func insertAudit(ctx context.Context, tx pgx.Tx, audit domain.AuditRecord) error {
	m := mapping.ToModelAuditRecord(audit)
	_, err := tx.Exec(ctx, insertAuditQuery, m.AuditID, m.OccurredAt, m.Actor, m.Action, m.Module)
	return translateError(err, "audit record "+m.AuditID)
}

// exec runs one statement and its audit record in a transaction.
func (r *PgxLedgerStore) exec(ctx context.Context, what string, audit domain.AuditRecord, query string, args ...any) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return translateError(err, what)
		}
		return insertAudit(ctx, tx, audit)
	})
}

func (r *PgxLedgerStore) SaveAccount(ctx context.Context, account domain.Account, audit domain.AuditRecord) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (account_id, code, name, account_type, opening_balance, description, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	return r.exec(ctx, "account "+m.AccountID, audit, query,
		m.AccountID, m.Code, m.Name, m.AccountType, m.OpeningBalance, m.Description, m.CreatedAt, m.CreatedBy)
}

func (r *PgxLedgerStore) SaveStudent(ctx context.Context, student domain.Student, audit domain.AuditRecord) error {
	m := mapping.ToModelStudent(student)
	query := `
		INSERT INTO students (student_id, name, grade_level, opening_balance, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	return r.exec(ctx, "student "+m.StudentID, audit, query,
		m.StudentID, m.Name, m.GradeLevel, m.OpeningBalance, m.CreatedAt, m.CreatedBy)
}

func (r *PgxLedgerStore) SaveSupplier(ctx context.Context, supplier domain.Supplier, audit domain.AuditRecord) error {
	m := mapping.ToModelSupplier(supplier)
	query := `
		INSERT INTO suppliers (supplier_id, name, category, opening_payable, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	return r.exec(ctx, "supplier "+m.SupplierID, audit, query,
		m.SupplierID, m.Name, m.Category, m.OpeningPayable, m.CreatedAt, m.CreatedBy)
}

func (r *PgxLedgerStore) SaveStaff(ctx context.Context, staff domain.Staff, audit domain.AuditRecord) error {
	m := mapping.ToModelStaff(staff)
	query := `
		INSERT INTO staff (staff_id, name, position, category, basic_pay, opening_loan_balance, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	return r.exec(ctx, "staff "+m.StaffID, audit, query,
		m.StaffID, m.Name, m.Position, m.Category, m.BasicPay, m.OpeningLoanBalance, m.CreatedAt, m.CreatedBy)
}

func (r *PgxLedgerStore) SaveFeeTemplate(ctx context.Context, template domain.FeeTemplate, audit domain.AuditRecord) error {
	m := mapping.ToModelFeeTemplate(template)
	query := `
		INSERT INTO fee_templates (template_id, name, grade_level, items, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	return r.exec(ctx, "fee template "+m.TemplateID, audit, query,
		m.TemplateID, m.Name, m.GradeLevel, m.Items, m.CreatedAt, m.CreatedBy)
}

func (r *PgxLedgerStore) SaveBudget(ctx context.Context, budget domain.Budget, audit domain.AuditRecord) error {
	m := mapping.ToModelBudget(budget)
	query := `
		INSERT INTO budgets (budget_id, account_id, amount, period, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	return r.exec(ctx, "budget "+m.BudgetID, audit, query,
		m.BudgetID, m.AccountID, m.Amount, m.Period, m.CreatedAt, m.CreatedBy)
}

func (r *PgxLedgerStore) SaveAsset(ctx context.Context, asset domain.FixedAsset, audit domain.AuditRecord) error {
	m := mapping.ToModelFixedAsset(asset)
	query := `
		INSERT INTO fixed_assets (asset_id, name, account_id, cost, depreciation_amount, acquired_on, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	return r.exec(ctx, "asset "+m.AssetID, audit, query,
		m.AssetID, m.Name, m.AccountID, m.Cost, m.DepreciationAmount, m.AcquiredOn, m.CreatedAt, m.CreatedBy)
}

// SaveJournal inserts the journal, its transaction lines and the audit record atomically.
func (r *PgxLedgerStore) SaveJournal(ctx context.Context, journal domain.Journal, audit domain.AuditRecord) error {
	m, txns := mapping.ToModelJournal(journal)
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		journalQuery := `
			INSERT INTO journals (
				journal_id, journal_date, description, reference, module,
				subsidiary_kind, subsidiary_id, metadata, created_at, created_by
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
		`
		_, err := tx.Exec(ctx, journalQuery,
			m.JournalID, m.JournalDate, m.Description, m.Reference, m.Module,
			m.SubsidiaryKind, m.SubsidiaryID, m.Metadata, m.CreatedAt, m.CreatedBy)
		if err != nil {
			return translateError(err, "journal "+m.JournalID)
		}

		batch := &pgx.Batch{}
		txnQuery := `
			INSERT INTO transactions (transaction_id, journal_id, line_no, account_id, amount, transaction_type)
			VALUES ($1, $2, $3, $4, $5, $6);
		`
		for _, t := range txns {
			batch.Queue(txnQuery, t.TransactionID, t.JournalID, t.LineNo, t.AccountID, t.Amount, t.TransactionType)
		}
		br := tx.SendBatch(ctx, batch)
		for range txns {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return translateError(err, "transactions of journal "+m.JournalID)
			}
		}
		if err := br.Close(); err != nil {
			return translateError(err, "transactions of journal "+m.JournalID)
		}

		return insertAudit(ctx, tx, audit)
	})
}

// DeleteJournal removes the journal (lines cascade) and records the reversal.
func (r *PgxLedgerStore) DeleteJournal(ctx context.Context, journalID string, audit domain.AuditRecord) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM journals WHERE journal_id = $1;`, journalID)
		if err != nil {
			return translateError(err, "journal "+journalID)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: journal '%s' is not stored", apperrors.ErrNotFound, journalID)
		}
		return insertAudit(ctx, tx, audit)
	})
}

func (r *PgxLedgerStore) AppendAudit(ctx context.Context, audit domain.AuditRecord) error {
	return r.WithTx(ctx, func(tx pgx.Tx) error {
		return insertAudit(ctx, tx, audit)
	})
}

// LoadSnapshot reads the whole ledger in insertion order inside one
// repeatable-read transaction.
func (r *PgxLedgerStore) LoadSnapshot(ctx context.Context) (*domain.LedgerSnapshot, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin snapshot transaction", err)
	}
	defer r.Rollback(ctx, tx)

	snapshot := &domain.LedgerSnapshot{}

	accounts, err := collect[models.Account](ctx, tx, `
		SELECT account_id, code, name, account_type, opening_balance, description, created_at, created_by
		FROM accounts ORDER BY seq;`)
	if err != nil {
		return nil, err
	}
	snapshot.Accounts = mapping.ToDomainAccounts(accounts)

	students, err := collect[models.Student](ctx, tx, `
		SELECT student_id, name, grade_level, opening_balance, created_at, created_by
		FROM students ORDER BY seq;`)
	if err != nil {
		return nil, err
	}
	for _, m := range students {
		snapshot.Students = append(snapshot.Students, mapping.ToDomainStudent(m))
	}

	suppliers, err := collect[models.Supplier](ctx, tx, `
		SELECT supplier_id, name, category, opening_payable, created_at, created_by
		FROM suppliers ORDER BY seq;`)
	if err != nil {
		return nil, err
	}
	for _, m := range suppliers {
		snapshot.Suppliers = append(snapshot.Suppliers, mapping.ToDomainSupplier(m))
	}

	staff, err := collect[models.Staff](ctx, tx, `
		SELECT staff_id, name, position, category, basic_pay, opening_loan_balance, created_at, created_by
		FROM staff ORDER BY seq;`)
	if err != nil {
		return nil, err
	}
	for _, m := range staff {
		snapshot.Staff = append(snapshot.Staff, mapping.ToDomainStaff(m))
	}

	templates, err := collect[models.FeeTemplate](ctx, tx, `
		SELECT template_id, name, grade_level, items, created_at, created_by
		FROM fee_templates ORDER BY seq;`)
	if err != nil {
		return nil, err
	}
	for _, m := range templates {
		snapshot.FeeTemplates = append(snapshot.FeeTemplates, mapping.ToDomainFeeTemplate(m))
	}

	budgets, err := collect[models.Budget](ctx, tx, `
		SELECT budget_id, account_id, amount, period, created_at, created_by
		FROM budgets ORDER BY seq;`)
	if err != nil {
		return nil, err
	}
	for _, m := range budgets {
		snapshot.Budgets = append(snapshot.Budgets, mapping.ToDomainBudget(m))
	}

	assets, err := collect[models.FixedAsset](ctx, tx, `
		SELECT asset_id, name, account_id, cost, depreciation_amount, acquired_on, created_at, created_by
		FROM fixed_assets ORDER BY seq;`)
	if err != nil {
		return nil, err
	}
	for _, m := range assets {
		snapshot.Assets = append(snapshot.Assets, mapping.ToDomainFixedAsset(m))
	}

	journals, err := collect[models.Journal](ctx, tx, `
		SELECT journal_id, journal_date, description, reference, module,
		       subsidiary_kind, subsidiary_id, metadata, created_at, created_by
		FROM journals ORDER BY seq;`)
	if err != nil {
		return nil, err
	}
	txns, err := collect[models.Transaction](ctx, tx, `
		SELECT t.transaction_id, t.journal_id, t.line_no, t.account_id, t.amount, t.transaction_type
		FROM transactions t JOIN journals j ON j.journal_id = t.journal_id
		ORDER BY j.seq, t.line_no;`)
	if err != nil {
		return nil, err
	}
	lines := make(map[string][]models.Transaction, len(journals))
	for _, t := range txns {
		lines[t.JournalID] = append(lines[t.JournalID], t)
	}
	for _, m := range journals {
		snapshot.Journals = append(snapshot.Journals, mapping.ToDomainJournal(m, lines[m.JournalID]))
	}

	audit, err := collect[models.AuditRecord](ctx, tx, `
		SELECT audit_id, occurred_at, actor, action, module
		FROM audit_log ORDER BY seq;`)
	if err != nil {
		return nil, err
	}
	for _, m := range audit {
		snapshot.AuditLog = append(snapshot.AuditLog, mapping.ToDomainAuditRecord(m))
	}

	logger.Debug("Ledger snapshot loaded")
	return snapshot, nil
}

func collect[T any](ctx context.Context, tx pgx.Tx, query string) ([]T, error) {
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query snapshot", err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan snapshot rows", err)
	}
	return out, nil
}
