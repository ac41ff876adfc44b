package mapping

import (
	"database/sql"

	"github.com/mzigohq/accounting_backend/internal/core/domain"
	"github.com/mzigohq/accounting_backend/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to its row model
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	m := models.JournalEntry{
		JournalID:       d.JournalID,
		EntryNumber:     d.EntryNumber,
		JournalDate:     d.JournalDate,
		Description:     d.Description,
		Status:          string(d.Status),
		ReferenceType:   NullString(d.ReferenceType),
		Notes:           NullString(d.Notes),
		RejectionReason: NullString(d.RejectionReason),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
	if d.PostedAt != nil {
		m.PostedAt = sql.NullTime{Time: *d.PostedAt, Valid: true}
	}
	return m
}

// ToDomainJournalEntry converts a row model to a domain JournalEntry header
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	d := domain.JournalEntry{
		JournalID:       m.JournalID,
		EntryNumber:     m.EntryNumber,
		JournalDate:     m.JournalDate,
		Description:     m.Description,
		Status:          domain.JournalStatus(m.Status),
		ReferenceType:   m.ReferenceType.String,
		Notes:           m.Notes.String,
		RejectionReason: m.RejectionReason.String,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
	if m.PostedAt.Valid {
		postedAt := m.PostedAt.Time
		d.PostedAt = &postedAt
	}
	return d
}

// ToModelJournalLine converts a domain JournalLine to its row model
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:       d.LineID,
		JournalID:    d.JournalID,
		AccountID:    d.AccountID,
		Description:  NullString(d.Description),
		DebitAmount:  d.DebitAmount,
		CreditAmount: d.CreditAmount,
		CurrencyCode: d.CurrencyCode,
		RateToBase:   d.RateToBase,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a row model to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:       m.LineID,
		JournalID:    m.JournalID,
		AccountID:    m.AccountID,
		Description:  m.Description.String,
		DebitAmount:  m.DebitAmount,
		CreditAmount: m.CreditAmount,
		CurrencyCode: m.CurrencyCode,
		RateToBase:   m.RateToBase,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
