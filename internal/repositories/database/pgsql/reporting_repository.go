package pgsql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mzigohq/accounting_backend/internal/core/domain"
	portsrepo "github.com/mzigohq/accounting_backend/internal/core/ports/repositories"
	"github.com/mzigohq/accounting_backend/internal/utils/accounting"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// Ensure reportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// referenceTypeFor maps the report side to the entry reference tag whose
// documents it ages.
func referenceTypeFor(kind domain.AgingKind) string {
	if kind == domain.AgingPayable {
		return "BILL"
	}
	return "INVOICE"
}

// FindOpenItems retrieves the open receivable or payable documents as of a
// date. A document is one posted entry tagged INVOICE (receivable) or BILL
// (payable); its amount is the entry's base-currency total, and it stays open
// until a reconciled bank transaction settles it.
func (r *reportingRepository) FindOpenItems(ctx context.Context, kind domain.AgingKind, asOf time.Time) ([]domain.AgingItem, error) {
	query := `
		SELECT
			e.journal_id,
			'JE-' || e.entry_number AS reference,
			e.description,
			e.journal_date,
			SUM(l.debit_amount * l.rate_to_base) AS amount
		FROM journal_entries e
		JOIN journal_lines l ON l.journal_id = e.journal_id
		WHERE e.status = $1
			AND e.reference_type = $2
			AND e.journal_date <= $3
			AND NOT EXISTS (
				SELECT 1 FROM bank_transactions bt
				WHERE bt.journal_entry_id = e.journal_id AND bt.is_reconciled = TRUE
			)
		GROUP BY e.journal_id, e.entry_number, e.description, e.journal_date
		ORDER BY e.journal_date;
	`
	rows, err := r.Pool.Query(ctx, query, domain.StatusPosted, referenceTypeFor(kind), asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to query open %s items: %w", kind, err)
	}
	defer rows.Close()

	items := []domain.AgingItem{}
	for rows.Next() {
		var item domain.AgingItem
		var partyName sql.NullString
		err := rows.Scan(
			&item.ItemID,
			&item.Reference,
			&partyName,
			&item.Date,
			&item.Amount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan open item row: %w", err)
		}
		item.PartyName = partyName.String
		item.CurrencyCode = accounting.DefaultBaseCurrency
		item.DaysOutstanding = accounting.DaysOutstanding(item.Date, asOf)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating open item rows: %w", err)
	}
	return items, nil
}
