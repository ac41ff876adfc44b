package dto

import (
	"time"

	"github.com/mzigohq/accounting_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalLineRequest is one proposed line of a new journal entry.
// Exactly one of debitAmount and creditAmount must be positive; the service
// enforces this beyond binding.
type CreateJournalLineRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	CurrencyCode string          `json:"currencyCode" binding:"required,currencycode"`
	RateToBase   decimal.Decimal `json:"rateToBase"` // Defaults to the current table rate when zero
}

// CreateJournalEntryRequest defines the data needed to create a journal entry.
type CreateJournalEntryRequest struct {
	Date          time.Time                  `json:"date" binding:"required"`
	Description   string                     `json:"description" binding:"required"`
	ReferenceType string                     `json:"referenceType"`
	Notes         string                     `json:"notes"`
	Lines         []CreateJournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateJournalEntryRequest updates an editable (draft or rejected) entry.
// When Lines is non-nil it replaces the entry's lines wholesale.
type UpdateJournalEntryRequest struct {
	Date          *time.Time                 `json:"date"`
	Description   *string                    `json:"description"`
	ReferenceType *string                    `json:"referenceType"`
	Notes         *string                    `json:"notes"`
	Lines         []CreateJournalLineRequest `json:"lines"`
}

// RejectEntryRequest carries the mandatory rejection reason.
type RejectEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID       string          `json:"lineID"`
	AccountID    string          `json:"accountID"`
	Description  string          `json:"description"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	CurrencyCode string          `json:"currencyCode"`
	RateToBase   decimal.Decimal `json:"rateToBase"`
	AmountInBase decimal.Decimal `json:"amountInBase"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	JournalID       string                `json:"journalID"`
	EntryNumber     int64                 `json:"entryNumber"`
	Date            time.Time             `json:"date"`
	Description     string                `json:"description"`
	Status          domain.JournalStatus  `json:"status"`
	ReferenceType   string                `json:"referenceType,omitempty"`
	Notes           string                `json:"notes,omitempty"`
	PostedAt        *time.Time            `json:"postedAt,omitempty"`
	RejectionReason string                `json:"rejectionReason,omitempty"`
	Lines           []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
}

// ToJournalLineResponse converts a domain.JournalLine to its response DTO.
func ToJournalLineResponse(line *domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:       line.LineID,
		AccountID:    line.AccountID,
		Description:  line.Description,
		DebitAmount:  line.DebitAmount,
		CreditAmount: line.CreditAmount,
		CurrencyCode: line.CurrencyCode,
		RateToBase:   line.RateToBase,
		AmountInBase: line.AmountInBase(),
	}
}

// ToJournalEntryResponse converts a domain.JournalEntry (with any loaded
// lines) to its response DTO.
func ToJournalEntryResponse(entry *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		JournalID:       entry.JournalID,
		EntryNumber:     entry.EntryNumber,
		Date:            entry.JournalDate,
		Description:     entry.Description,
		Status:          entry.Status,
		ReferenceType:   entry.ReferenceType,
		Notes:           entry.Notes,
		PostedAt:        entry.PostedAt,
		RejectionReason: entry.RejectionReason,
		CreatedAt:       entry.CreatedAt,
		CreatedBy:       entry.CreatedBy,
	}
	if len(entry.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(entry.Lines))
		for i := range entry.Lines {
			resp.Lines[i] = ToJournalLineResponse(&entry.Lines[i])
		}
	}
	return resp
}

// ListEntriesParams defines query parameters for listing journal entries.
type ListEntriesParams struct {
	Status string `form:"status"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

// ListEntriesResponse wraps the listed entries.
type ListEntriesResponse struct {
	Entries []JournalEntryResponse `json:"entries"`
}
