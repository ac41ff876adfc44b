package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mzigohq/accounting_backend/internal/apperrors"
	"github.com/mzigohq/accounting_backend/internal/core/domain"
	portsrepo "github.com/mzigohq/accounting_backend/internal/core/ports/repositories"
	"github.com/mzigohq/accounting_backend/internal/models"
	"github.com/mzigohq/accounting_backend/internal/utils/mapping"
)

type PgxBankRepository struct {
	BaseRepository
}

// newPgxBankRepository creates a new repository for bank account and
// statement transaction data.
func newPgxBankRepository(pool *pgxpool.Pool) portsrepo.BankRepositoryFacade {
	return &PgxBankRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxBankRepository implements portsrepo.BankRepositoryFacade
var _ portsrepo.BankRepositoryFacade = (*PgxBankRepository)(nil)

const bankAccountColumns = `bank_account_id, name, bank_name, account_number, currency_code, chart_account_id, opening_balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanBankAccount(row pgx.Row) (domain.BankAccount, error) {
	var m models.BankAccount
	err := row.Scan(
		&m.BankAccountID,
		&m.Name,
		&m.BankName,
		&m.AccountNumber,
		&m.CurrencyCode,
		&m.ChartAccountID,
		&m.OpeningBalance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.BankAccount{}, err
	}
	return mapping.ToDomainBankAccount(m), nil
}

const bankTxnColumns = `transaction_id, bank_account_id, transaction_date, description, reference, debit_amount, credit_amount, is_reconciled, journal_entry_id, created_at, created_by, last_updated_at, last_updated_by`

func scanBankTransaction(row pgx.Row) (domain.BankTransaction, error) {
	var m models.BankTransaction
	err := row.Scan(
		&m.TransactionID,
		&m.BankAccountID,
		&m.TransactionDate,
		&m.Description,
		&m.Reference,
		&m.DebitAmount,
		&m.CreditAmount,
		&m.IsReconciled,
		&m.JournalEntryID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.BankTransaction{}, err
	}
	return mapping.ToDomainBankTransaction(m), nil
}

// SaveBankAccount inserts a new bank account.
func (r *PgxBankRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (bank_account_id, name, bank_name, account_number, currency_code, chart_account_id, opening_balance, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	m := mapping.ToModelBankAccount(account)
	_, err := r.Pool.Exec(ctx, query,
		m.BankAccountID,
		m.Name,
		m.BankName,
		m.AccountNumber,
		m.CurrencyCode,
		m.ChartAccountID,
		m.OpeningBalance,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: bank account number %s", apperrors.ErrDuplicate, account.AccountNumber)
		}
		return fmt.Errorf("failed to save bank account %s: %w", account.BankAccountID, err)
	}
	return nil
}

// FindBankAccountByID retrieves a bank account by its ID.
func (r *PgxBankRepository) FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE bank_account_id = $1;`

	acc, err := scanBankAccount(r.Pool.QueryRow(ctx, query, bankAccountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bank account %s: %w", bankAccountID, err)
	}
	return &acc, nil
}

// ListBankAccounts retrieves all bank accounts, active first.
func (r *PgxBankRepository) ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts ORDER BY is_active DESC, name;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.BankAccount{}
	for rows.Next() {
		acc, err := scanBankAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank account row: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank account rows: %w", err)
	}
	return accounts, nil
}

// UpdateBankAccount updates a bank account's mutable fields.
func (r *PgxBankRepository) UpdateBankAccount(ctx context.Context, account domain.BankAccount) error {
	query := `
		UPDATE bank_accounts
		SET name = $2, bank_name = $3, is_active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE bank_account_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.BankAccountID,
		account.Name,
		account.BankName,
		account.IsActive,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update bank account %s: %w", account.BankAccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveBankTransaction inserts a new statement transaction.
func (r *PgxBankRepository) SaveBankTransaction(ctx context.Context, txn domain.BankTransaction) error {
	query := `
		INSERT INTO bank_transactions (transaction_id, bank_account_id, transaction_date, description, reference, debit_amount, credit_amount, is_reconciled, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8, $9, $10, $11);
	`
	m := mapping.ToModelBankTransaction(txn)
	_, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.BankAccountID,
		m.TransactionDate,
		m.Description,
		m.Reference,
		m.DebitAmount,
		m.CreditAmount,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save bank transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

// FindBankTransactionByID retrieves a statement transaction by its ID.
func (r *PgxBankRepository) FindBankTransactionByID(ctx context.Context, transactionID string) (*domain.BankTransaction, error) {
	query := `SELECT ` + bankTxnColumns + ` FROM bank_transactions WHERE transaction_id = $1;`

	txn, err := scanBankTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bank transaction %s: %w", transactionID, err)
	}
	return &txn, nil
}

// ListBankTransactions retrieves statement transactions newest first.
func (r *PgxBankRepository) ListBankTransactions(ctx context.Context, bankAccountID string, onlyUnreconciled bool) ([]domain.BankTransaction, error) {
	query := `SELECT ` + bankTxnColumns + ` FROM bank_transactions WHERE bank_account_id = $1`
	if onlyUnreconciled {
		query += ` AND is_reconciled = FALSE`
	}
	query += ` ORDER BY transaction_date DESC, transaction_id;`

	rows, err := r.Pool.Query(ctx, query, bankAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bank transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.BankTransaction{}
	for rows.Next() {
		txn, err := scanBankTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bank transaction row: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank transaction rows: %w", err)
	}
	return txns, nil
}

// FindUnreconciledCandidates retrieves posted journal lines on the given cash
// ledger account whose entries are not yet linked to any bank transaction.
func (r *PgxBankRepository) FindUnreconciledCandidates(ctx context.Context, chartAccountID string) ([]domain.ReconciliationCandidate, error) {
	query := `
		SELECT l.line_id, l.journal_id, l.account_id, l.description, l.debit_amount, l.credit_amount, l.currency_code, l.rate_to_base, l.created_at, l.created_by, l.last_updated_at, l.last_updated_by,
		       e.entry_number, e.journal_date
		FROM journal_lines l
		JOIN journal_entries e ON e.journal_id = l.journal_id
		WHERE l.account_id = $1
		  AND e.status = $2
		  AND NOT EXISTS (
		      SELECT 1 FROM bank_transactions bt
		      WHERE bt.journal_entry_id = e.journal_id AND bt.is_reconciled = TRUE
		  )
		ORDER BY e.journal_date DESC, e.entry_number DESC;
	`
	rows, err := r.Pool.Query(ctx, query, chartAccountID, domain.StatusPosted)
	if err != nil {
		return nil, fmt.Errorf("failed to query reconciliation candidates: %w", err)
	}
	defer rows.Close()

	candidates := []domain.ReconciliationCandidate{}
	for rows.Next() {
		var c domain.ReconciliationCandidate
		var lm models.JournalLine
		err := rows.Scan(
			&lm.LineID,
			&lm.JournalID,
			&lm.AccountID,
			&lm.Description,
			&lm.DebitAmount,
			&lm.CreditAmount,
			&lm.CurrencyCode,
			&lm.RateToBase,
			&lm.CreatedAt,
			&lm.CreatedBy,
			&lm.LastUpdatedAt,
			&lm.LastUpdatedBy,
			&c.EntryNumber,
			&c.EntryDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan candidate row: %w", err)
		}
		c.Line = mapping.ToDomainJournalLine(lm)
		c.JournalID = c.Line.JournalID
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidate rows: %w", err)
	}
	return candidates, nil
}

// MarkReconciled links a transaction to a journal entry and flags it
// reconciled. The guard on is_reconciled makes the operation idempotent-safe
// under concurrent confirmation.
func (r *PgxBankRepository) MarkReconciled(ctx context.Context, transactionID string, journalEntryID string, userID string, now time.Time) error {
	query := `
		UPDATE bank_transactions
		SET is_reconciled = TRUE, journal_entry_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1 AND is_reconciled = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query, transactionID, journalEntryID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to reconcile bank transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: bank transaction %s is already reconciled or missing", apperrors.ErrConflict, transactionID)
	}
	return nil
}

// MarkUnreconciled clears the reconciliation link and flag.
func (r *PgxBankRepository) MarkUnreconciled(ctx context.Context, transactionID string, userID string, now time.Time) error {
	query := `
		UPDATE bank_transactions
		SET is_reconciled = FALSE, journal_entry_id = NULL, last_updated_at = $2, last_updated_by = $3
		WHERE transaction_id = $1 AND is_reconciled = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query, transactionID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to unreconcile bank transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: bank transaction %s is not reconciled or missing", apperrors.ErrConflict, transactionID)
	}
	return nil
}
