package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the lifecycle state of a journal entry.
type JournalStatus string

const (
	StatusDraft           JournalStatus = "DRAFT"
	StatusPendingApproval JournalStatus = "PENDING_APPROVAL"
	StatusPosted          JournalStatus = "POSTED"
	StatusRejected        JournalStatus = "REJECTED"
	StatusVoided          JournalStatus = "VOIDED"
)

// allowedTransitions is the journal entry state machine. Posted and voided
// entries are terminal for content; only status metadata changes afterwards.
var allowedTransitions = map[JournalStatus][]JournalStatus{
	StatusDraft:           {StatusPendingApproval},
	StatusPendingApproval: {StatusPosted, StatusRejected},
	StatusRejected:        {StatusPendingApproval},
	StatusPosted:          {StatusVoided},
	StatusVoided:          {},
}

// CanTransitionTo reports whether a status change from s to target is legal.
func (s JournalStatus) CanTransitionTo(target JournalStatus) bool {
	for _, next := range allowedTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsEditable reports whether an entry in this status may have its content
// changed or be deleted.
func (s JournalStatus) IsEditable() bool {
	return s == StatusDraft || s == StatusRejected
}

// JournalEntry represents a single double-entry financial event composed of
// two or more lines. Lines of a posted entry are immutable except for bank
// reconciliation linkage.
type JournalEntry struct {
	JournalID       string        `json:"journalID"`   // Primary Key (UUID)
	EntryNumber     int64         `json:"entryNumber"` // Monotonic display number, assigned at creation
	JournalDate     time.Time     `json:"journalDate"` // Date the event occurred
	Description     string        `json:"description"`
	Status          JournalStatus `json:"status"`
	ReferenceType   string        `json:"referenceType"` // Free-form tag (e.g. "INVOICE", "BILL")
	Notes           string        `json:"notes"`
	PostedAt        *time.Time    `json:"postedAt,omitempty"`        // Set when the entry transitions to POSTED
	RejectionReason string        `json:"rejectionReason,omitempty"` // Required on PENDING_APPROVAL -> REJECTED
	Lines           []JournalLine `json:"lines,omitempty"`           // Often loaded separately
	AuditFields
}

// JournalLine is a single debit or credit against one account. Exactly one of
// DebitAmount and CreditAmount is nonzero. RateToBase is captured at entry
// time so the base-currency value of the line never shifts after posting.
type JournalLine struct {
	LineID       string          `json:"lineID"`    // Primary Key (UUID)
	JournalID    string          `json:"journalID"` // FK -> JournalEntry.journalID
	AccountID    string          `json:"accountID"` // FK -> ChartAccount.accountID
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`  // >= 0
	CreditAmount decimal.Decimal `json:"creditAmount"` // >= 0
	CurrencyCode string          `json:"currencyCode"`
	RateToBase   decimal.Decimal `json:"rateToBase"` // > 0; 1 for base-currency lines
	AuditFields
}

// IsDebit reports whether the line carries its value on the debit side.
func (l JournalLine) IsDebit() bool {
	return l.DebitAmount.IsPositive()
}

// Amount returns the line's face value, whichever side it sits on.
func (l JournalLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.DebitAmount
	}
	return l.CreditAmount
}

// AmountInBase returns the line's value converted to the base currency.
func (l JournalLine) AmountInBase() decimal.Decimal {
	return l.Amount().Mul(l.RateToBase)
}
