package services

import (
	"context"

	"github.com/mzigohq/accounting_backend/internal/core/domain"
	"github.com/mzigohq/accounting_backend/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetEntryByID retrieves a journal entry with its lines.
	GetEntryByID(ctx context.Context, journalID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of journal entries.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// CreateEntry persists a new draft entry with its lines after
	// validating the double-entry balance.
	CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// UpdateEntry replaces the content of a draft or rejected entry.
	UpdateEntry(ctx context.Context, journalID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// DeleteEntry removes a draft or rejected entry outright.
	DeleteEntry(ctx context.Context, journalID string, userID string) error
}

// JournalLifecycleSvc drives the approval state machine
type JournalLifecycleSvc interface {
	// SubmitForApproval moves a draft or rejected entry to pending approval.
	SubmitForApproval(ctx context.Context, journalID string, userID string) (*domain.JournalEntry, error)

	// ApproveEntry posts a pending entry, rechecking the balance and
	// stamping PostedAt. Posted lines become immutable.
	ApproveEntry(ctx context.Context, journalID string, userID string) (*domain.JournalEntry, error)

	// RejectEntry returns a pending entry to the submitter with a reason.
	RejectEntry(ctx context.Context, journalID string, req dto.RejectEntryRequest, userID string) (*domain.JournalEntry, error)

	// VoidEntry excludes a posted entry from all balances without
	// creating a compensating entry.
	VoidEntry(ctx context.Context, journalID string, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	JournalLifecycleSvc
}
