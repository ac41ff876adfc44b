package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the journal_entries row shape.
type JournalEntry struct {
	JournalID       string         `db:"journal_id"`
	EntryNumber     int64          `db:"entry_number"`
	JournalDate     time.Time      `db:"journal_date"`
	Description     string         `db:"description"`
	Status          string         `db:"status"`
	ReferenceType   sql.NullString `db:"reference_type"`
	Notes           sql.NullString `db:"notes"`
	PostedAt        sql.NullTime   `db:"posted_at"`
	RejectionReason sql.NullString `db:"rejection_reason"`
	AuditFields
}

// JournalLine is the journal_lines row shape.
type JournalLine struct {
	LineID       string          `db:"line_id"`
	JournalID    string          `db:"journal_id"`
	AccountID    string          `db:"account_id"`
	Description  sql.NullString  `db:"description"`
	DebitAmount  decimal.Decimal `db:"debit_amount"`
	CreditAmount decimal.Decimal `db:"credit_amount"`
	CurrencyCode string          `db:"currency_code"`
	RateToBase   decimal.Decimal `db:"rate_to_base"`
	AuditFields
}
