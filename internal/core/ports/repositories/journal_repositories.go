package repositories

import (
	"context"
	"time"

	"github.com/mzigohq/accounting_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ListEntriesFilter narrows an entry listing.
type ListEntriesFilter struct {
	Status *domain.JournalStatus
	Limit  int
	Offset int
}

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindEntryByID retrieves a specific journal entry (header only).
	FindEntryByID(ctx context.Context, journalID string) (*domain.JournalEntry, error)

	// ListEntries retrieves journal entry headers, newest first, honoring the filter.
	ListEntries(ctx context.Context, filter ListEntriesFilter) ([]domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveEntry persists a new entry and its lines atomically, claiming the
	// next entry number from the sequence inside the same transaction. The
	// assigned entry number is returned.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (int64, error)

	// UpdateEntryContent replaces the header fields and lines of an editable
	// (draft or rejected) entry atomically.
	UpdateEntryContent(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error

	// DeleteEntry removes an editable entry and its lines.
	DeleteEntry(ctx context.Context, journalID string) error

	// UpdateEntryStatus transitions an entry's status. The write only lands
	// when the stored status still equals expectedFrom, so concurrent
	// transitions lose with ErrConflict instead of re-applying. postedAt and
	// rejectionReason are set when non-nil. balanceChanges, when non-nil, is
	// applied to the persisted account balances inside the same transaction
	// (positive or negative deltas per account, in base currency).
	UpdateEntryStatus(ctx context.Context, journalID string, expectedFrom, status domain.JournalStatus, postedAt *time.Time, rejectionReason *string, userID string, now time.Time, balanceChanges map[string]decimal.Decimal) error
}

// LineReader defines read operations for journal line data
type LineReader interface {
	// FindLinesByJournalID retrieves all lines of a single entry in insert order.
	FindLinesByJournalID(ctx context.Context, journalID string) ([]domain.JournalLine, error)

	// FindPostedLinesByAccountIDs retrieves every line of POSTED (non-voided)
	// entries dated on or before asOf that reference any of the given accounts.
	FindPostedLinesByAccountIDs(ctx context.Context, accountIDs []string, asOf time.Time) ([]domain.JournalLine, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	LineReader
}
