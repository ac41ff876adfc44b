package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mzigohq/accounting_backend/internal/apperrors"
	"github.com/mzigohq/accounting_backend/internal/core/domain"
	portsrepo "github.com/mzigohq/accounting_backend/internal/core/ports/repositories"
	"github.com/mzigohq/accounting_backend/internal/models"
	"github.com/mzigohq/accounting_backend/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry and line data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const entryColumns = `journal_id, entry_number, journal_date, description, status, reference_type, notes, posted_at, rejection_reason, created_at, created_by, last_updated_at, last_updated_by`

// scanEntry reads one journal entry header in entryColumns order.
func scanEntry(row pgx.Row) (domain.JournalEntry, error) {
	var m models.JournalEntry

	err := row.Scan(
		&m.JournalID,
		&m.EntryNumber,
		&m.JournalDate,
		&m.Description,
		&m.Status,
		&m.ReferenceType,
		&m.Notes,
		&m.PostedAt,
		&m.RejectionReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	return mapping.ToDomainJournalEntry(m), nil
}

const lineColumns = `line_id, journal_id, account_id, description, debit_amount, credit_amount, currency_code, rate_to_base, created_at, created_by, last_updated_at, last_updated_by`

// scanLine reads one journal line in lineColumns order.
func scanLine(row pgx.Row) (domain.JournalLine, error) {
	var m models.JournalLine

	err := row.Scan(
		&m.LineID,
		&m.JournalID,
		&m.AccountID,
		&m.Description,
		&m.DebitAmount,
		&m.CreditAmount,
		&m.CurrencyCode,
		&m.RateToBase,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.JournalLine{}, err
	}
	return mapping.ToDomainJournalLine(m), nil
}

// insertLines queues INSERTs for all lines on a batch.
func insertLines(batch *pgx.Batch, lines []domain.JournalLine) {
	query := `
		INSERT INTO journal_lines (line_id, journal_id, account_id, description, debit_amount, credit_amount, currency_code, rate_to_base, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	for _, line := range lines {
		m := mapping.ToModelJournalLine(line)
		batch.Queue(query,
			m.LineID,
			m.JournalID,
			m.AccountID,
			m.Description,
			m.DebitAmount,
			m.CreditAmount,
			m.CurrencyCode,
			m.RateToBase,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}
}

// SaveEntry inserts a new entry and its lines atomically. The entry number is
// claimed from the journal_entry_number_seq sequence inside the transaction,
// so numbers are unique and monotonic but may have gaps after rollbacks.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	var entryNumber int64
	if err := tx.QueryRow(ctx, `SELECT nextval('journal_entry_number_seq');`).Scan(&entryNumber); err != nil {
		return 0, fmt.Errorf("failed to claim entry number: %w", err)
	}

	entryQuery := `
		INSERT INTO journal_entries (journal_id, entry_number, journal_date, description, status, reference_type, notes, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	m := mapping.ToModelJournalEntry(entry)
	_, err = tx.Exec(ctx, entryQuery,
		m.JournalID,
		entryNumber,
		m.JournalDate,
		m.Description,
		m.Status,
		m.ReferenceType,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert journal entry %s: %w", entry.JournalID, err)
	}

	batch := &pgx.Batch{}
	insertLines(batch, lines)
	br := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return 0, fmt.Errorf("failed to insert journal line: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return 0, fmt.Errorf("failed to close line batch: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return entryNumber, nil
}

// FindEntryByID retrieves a journal entry header by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE journal_id = $1;`

	entry, err := scanEntry(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", journalID, err)
	}
	return &entry, nil
}

// ListEntries retrieves entry headers, newest first.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter portsrepo.ListEntriesFilter) ([]domain.JournalEntry, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + entryColumns + ` FROM journal_entries`
	args := []any{}
	if filter.Status != nil {
		query += ` WHERE status = $1`
		args = append(args, *filter.Status)
	}
	query += fmt.Sprintf(` ORDER BY entry_number DESC LIMIT $%d OFFSET $%d;`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal entry rows: %w", err)
	}
	return entries, nil
}

// FindLinesByJournalID retrieves all lines of a single entry in insert order.
func (r *PgxJournalRepository) FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE journal_id = $1 ORDER BY created_at, line_id;`

	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for journal %s: %w", journalID, err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line row: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal line rows: %w", err)
	}
	return lines, nil
}

// FindPostedLinesByAccountIDs retrieves lines of POSTED entries dated on or
// before asOf that hit any of the given accounts. Voided entries never
// qualify: voiding replaces the POSTED status.
func (r *PgxJournalRepository) FindPostedLinesByAccountIDs(ctx context.Context, accountIDs []string, asOf time.Time) ([]domain.JournalLine, error) {
	if len(accountIDs) == 0 {
		return []domain.JournalLine{}, nil
	}

	query := `
		SELECT l.line_id, l.journal_id, l.account_id, l.description, l.debit_amount, l.credit_amount, l.currency_code, l.rate_to_base, l.created_at, l.created_by, l.last_updated_at, l.last_updated_by
		FROM journal_lines l
		JOIN journal_entries e ON e.journal_id = l.journal_id
		WHERE l.account_id = ANY($1)
		  AND e.status = $2
		  AND e.journal_date <= $3;
	`
	rows, err := r.Pool.Query(ctx, query, accountIDs, domain.StatusPosted, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query posted lines: %w", err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan posted line row: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posted line rows: %w", err)
	}
	return lines, nil
}

// UpdateEntryContent replaces the header fields and lines of an editable
// entry atomically. The status guard in the WHERE clause makes concurrent
// submissions lose cleanly instead of mutating a pending entry.
func (r *PgxJournalRepository) UpdateEntryContent(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	headerQuery := `
		UPDATE journal_entries
		SET journal_date = $2, description = $3, reference_type = $4, notes = $5, last_updated_at = $6, last_updated_by = $7
		WHERE journal_id = $1 AND status IN ($8, $9);
	`
	m := mapping.ToModelJournalEntry(entry)
	tag, err := tx.Exec(ctx, headerQuery,
		m.JournalID,
		m.JournalDate,
		m.Description,
		m.ReferenceType,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		domain.StatusDraft,
		domain.StatusRejected,
	)
	if err != nil {
		return fmt.Errorf("failed to update journal entry %s: %w", entry.JournalID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s is not editable", apperrors.ErrConflict, entry.JournalID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE journal_id = $1;`, entry.JournalID); err != nil {
		return fmt.Errorf("failed to clear lines for journal %s: %w", entry.JournalID, err)
	}

	batch := &pgx.Batch{}
	insertLines(batch, lines)
	br := tx.SendBatch(ctx, batch)
	for range lines {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert journal line: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close line batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

// DeleteEntry removes an editable entry and its lines.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, journalID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE journal_id = $1;`, journalID); err != nil {
		return fmt.Errorf("failed to delete lines for journal %s: %w", journalID, err)
	}

	tag, err := tx.Exec(ctx,
		`DELETE FROM journal_entries WHERE journal_id = $1 AND status IN ($2, $3);`,
		journalID, domain.StatusDraft, domain.StatusRejected)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry %s: %w", journalID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s is not deletable", apperrors.ErrConflict, journalID)
	}

	return r.Commit(ctx, tx)
}

// UpdateEntryStatus transitions an entry's status and, when balanceChanges is
// non-nil, applies the base-currency deltas to the persisted account balances
// in the same transaction. Posting and voiding therefore move balances
// atomically with the status flip. The expectedFrom guard in the WHERE clause
// makes concurrent transitions lose cleanly instead of applying their deltas
// twice.
func (r *PgxJournalRepository) UpdateEntryStatus(ctx context.Context, journalID string, expectedFrom, status domain.JournalStatus, postedAt *time.Time, rejectionReason *string, userID string, now time.Time, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE journal_entries
		SET status = $2,
		    posted_at = COALESCE($3, posted_at),
		    rejection_reason = $4,
		    last_updated_at = $5,
		    last_updated_by = $6
		WHERE journal_id = $1 AND status = $7;
	`
	var reason sql.NullString
	if rejectionReason != nil {
		reason = sql.NullString{String: *rejectionReason, Valid: true}
	}
	tag, err := tx.Exec(ctx, query, journalID, status, postedAt, reason, now, userID, expectedFrom)
	if err != nil {
		return fmt.Errorf("failed to update status of journal entry %s: %w", journalID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s is no longer %s", apperrors.ErrConflict, journalID, expectedFrom)
	}

	if len(balanceChanges) > 0 {
		batch := &pgx.Batch{}
		balanceQuery := `
			UPDATE chart_accounts
			SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
			WHERE account_id = $1;
		`
		for accountID, delta := range balanceChanges {
			batch.Queue(balanceQuery, accountID, delta, now, userID)
		}
		br := tx.SendBatch(ctx, batch)
		for range balanceChanges {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("failed to apply balance change: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to close balance batch: %w", err)
		}
	}

	return r.Commit(ctx, tx)
}
