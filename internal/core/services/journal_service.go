package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mzigohq/accounting_backend/internal/apperrors"
	"github.com/mzigohq/accounting_backend/internal/core/domain"
	portsrepo "github.com/mzigohq/accounting_backend/internal/core/ports/repositories"
	portssvc "github.com/mzigohq/accounting_backend/internal/core/ports/services"
	"github.com/mzigohq/accounting_backend/internal/dto"
	"github.com/mzigohq/accounting_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var (
	ErrEntryNotEditable = errors.New("only draft or rejected entries can be modified")
	ErrAccountUnknown   = errors.New("journal line references an unknown account")
	ErrAccountRetired   = errors.New("journal line references an inactive account")
)

// journalService drives journal entries through their approval lifecycle.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	rateSvc     portssvc.ExchangeRateReaderSvc
}

// NewJournalService creates a new journal service.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, rateSvc portssvc.ExchangeRateReaderSvc) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		rateSvc:     rateSvc,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// buildLines converts line requests to domain lines, filling in missing
// conversion rates from the current rate table and validating each line and
// the entry balance as a whole.
func (s *journalService) buildLines(ctx context.Context, journalID string, reqLines []dto.CreateJournalLineRequest, userID string, now time.Time) ([]domain.JournalLine, error) {
	rates, err := s.rateSvc.CurrentRateTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load exchange rates: %w", err)
	}

	accountIDs := make([]string, 0, len(reqLines))
	for _, l := range reqLines {
		accountIDs = append(accountIDs, l.AccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load line accounts: %w", err)
	}

	lines := make([]domain.JournalLine, 0, len(reqLines))
	for _, l := range reqLines {
		account, ok := accounts[l.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrAccountUnknown, l.AccountID)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrAccountRetired, account.Code)
		}

		currency := strings.ToUpper(l.CurrencyCode)
		rate := l.RateToBase
		if rate.IsZero() {
			// Capture the table rate at entry time so later rate changes
			// never move a posted entry.
			rate = accounting.RateToBase(currency, *rates)
		}

		lines = append(lines, domain.JournalLine{
			LineID:       uuid.NewString(),
			JournalID:    journalID,
			AccountID:    l.AccountID,
			Description:  l.Description,
			DebitAmount:  l.DebitAmount,
			CreditAmount: l.CreditAmount,
			CurrencyCode: currency,
			RateToBase:   rate,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		})
	}

	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// CreateEntry persists a new draft entry with its lines.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	now := time.Now()
	journalID := uuid.NewString()

	lines, err := s.buildLines(ctx, journalID, req.Lines, userID, now)
	if err != nil {
		return nil, err
	}

	entry := domain.JournalEntry{
		JournalID:     journalID,
		JournalDate:   req.Date,
		Description:   req.Description,
		Status:        domain.StatusDraft,
		ReferenceType: req.ReferenceType,
		Notes:         req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	entryNumber, err := s.journalRepo.SaveEntry(ctx, entry, lines)
	if err != nil {
		s.LogError(ctx, err, "Failed to save journal entry")
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}
	entry.EntryNumber = entryNumber
	entry.Lines = lines

	s.LogInfo(ctx, "Journal entry created",
		slog.String("journal_id", journalID),
		slog.Int64("entry_number", entryNumber))
	return &entry, nil
}

// GetEntryByID retrieves an entry with its lines.
func (s *journalService) GetEntryByID(ctx context.Context, journalID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, journalID)
		}
		return nil, fmt.Errorf("failed to get journal entry %s: %w", journalID, err)
	}

	lines, err := s.journalRepo.FindLinesByJournalID(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines for %s: %w", journalID, err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves entry headers, newest first.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	filter := portsrepo.ListEntriesFilter{
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	if params.Status != "" {
		status := domain.JournalStatus(strings.ToUpper(params.Status))
		switch status {
		case domain.StatusDraft, domain.StatusPendingApproval, domain.StatusPosted, domain.StatusRejected, domain.StatusVoided:
			filter.Status = &status
		default:
			return nil, apperrors.NewValidationError("unknown journal status %q", params.Status)
		}
	}

	entries, err := s.journalRepo.ListEntries(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	resp := &dto.ListEntriesResponse{Entries: make([]dto.JournalEntryResponse, 0, len(entries))}
	for i := range entries {
		resp.Entries = append(resp.Entries, dto.ToJournalEntryResponse(&entries[i]))
	}
	return resp, nil
}

// UpdateEntry replaces the content of a draft or rejected entry.
func (s *journalService) UpdateEntry(ctx context.Context, journalID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntryByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if !entry.Status.IsEditable() {
		return nil, fmt.Errorf("%w: %w (status %s)", apperrors.ErrConflict, ErrEntryNotEditable, entry.Status)
	}

	now := time.Now()
	if req.Date != nil {
		entry.JournalDate = *req.Date
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.ReferenceType != nil {
		entry.ReferenceType = *req.ReferenceType
	}
	if req.Notes != nil {
		entry.Notes = *req.Notes
	}

	lines := entry.Lines
	if req.Lines != nil {
		lines, err = s.buildLines(ctx, journalID, req.Lines, userID, now)
		if err != nil {
			return nil, err
		}
	} else if err := accounting.ValidateEntryBalance(lines); err != nil {
		// Header-only edits still re-run the balance check, which guards
		// against rows touched outside the service.
		return nil, err
	}

	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	if err := s.journalRepo.UpdateEntryContent(ctx, *entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to update journal entry", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to update journal entry %s: %w", journalID, err)
	}
	entry.Lines = lines
	return entry, nil
}

// DeleteEntry removes a draft or rejected entry outright. Entries that ever
// reached POSTED are voided instead, never deleted.
func (s *journalService) DeleteEntry(ctx context.Context, journalID string, userID string) error {
	entry, err := s.GetEntryByID(ctx, journalID)
	if err != nil {
		return err
	}
	if !entry.Status.IsEditable() {
		return fmt.Errorf("%w: %w (status %s)", apperrors.ErrConflict, ErrEntryNotEditable, entry.Status)
	}

	if err := s.journalRepo.DeleteEntry(ctx, journalID); err != nil {
		s.LogError(ctx, err, "Failed to delete journal entry", slog.String("journal_id", journalID))
		return fmt.Errorf("failed to delete journal entry %s: %w", journalID, err)
	}
	s.LogInfo(ctx, "Journal entry deleted", slog.String("journal_id", journalID), slog.String("deleted_by", userID))
	return nil
}

// transition validates the state machine edge before any side effects.
func (s *journalService) transition(entry *domain.JournalEntry, target domain.JournalStatus) error {
	if !entry.Status.CanTransitionTo(target) {
		return &apperrors.InvalidTransitionError{From: string(entry.Status), To: string(target)}
	}
	return nil
}

// SubmitForApproval moves a draft or rejected entry to pending approval,
// re-running the balance check so an unbalanced entry can never enter the
// approval queue.
func (s *journalService) SubmitForApproval(ctx context.Context, journalID string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntryByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if err := s.transition(entry, domain.StatusPendingApproval); err != nil {
		return nil, err
	}
	if err := accounting.ValidateEntryBalance(entry.Lines); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.journalRepo.UpdateEntryStatus(ctx, journalID, entry.Status, domain.StatusPendingApproval, nil, nil, userID, now, nil); err != nil {
		return nil, fmt.Errorf("failed to submit journal entry %s: %w", journalID, err)
	}

	entry.Status = domain.StatusPendingApproval
	entry.RejectionReason = ""
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	s.LogInfo(ctx, "Journal entry submitted for approval", slog.String("journal_id", journalID))
	return entry, nil
}

// balanceDeltas computes the signed base-currency effect of an entry's lines
// on each account's persisted balance. negate inverts the deltas for voiding.
func (s *journalService) balanceDeltas(ctx context.Context, lines []domain.JournalLine, negate bool) (map[string]decimal.Decimal, error) {
	accountIDs := make([]string, 0, len(lines))
	for _, l := range lines {
		accountIDs = append(accountIDs, l.AccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts for balance update: %w", err)
	}

	deltas := make(map[string]decimal.Decimal, len(accounts))
	for _, line := range lines {
		account, ok := accounts[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrAccountUnknown, line.AccountID)
		}
		delta := accounting.SignedAmount(line, account.NormalBalance)
		if negate {
			delta = delta.Neg()
		}
		deltas[line.AccountID] = deltas[line.AccountID].Add(delta)
	}
	return deltas, nil
}

// ApproveEntry posts a pending entry. The balance invariant is rechecked at
// the posting boundary and the account balances are updated in the same
// database transaction as the status flip.
func (s *journalService) ApproveEntry(ctx context.Context, journalID string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntryByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if err := s.transition(entry, domain.StatusPosted); err != nil {
		return nil, err
	}
	if err := accounting.ValidateEntryBalance(entry.Lines); err != nil {
		return nil, err
	}

	deltas, err := s.balanceDeltas(ctx, entry.Lines, false)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	postedAt := now
	if err := s.journalRepo.UpdateEntryStatus(ctx, journalID, entry.Status, domain.StatusPosted, &postedAt, nil, userID, now, deltas); err != nil {
		s.LogError(ctx, err, "Failed to post journal entry", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to post journal entry %s: %w", journalID, err)
	}

	entry.Status = domain.StatusPosted
	entry.PostedAt = &postedAt
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	s.LogInfo(ctx, "Journal entry posted",
		slog.String("journal_id", journalID),
		slog.Int64("entry_number", entry.EntryNumber),
		slog.String("approved_by", userID))
	return entry, nil
}

// RejectEntry returns a pending entry to its submitter with a reason. The
// entry stays editable and can be resubmitted.
func (s *journalService) RejectEntry(ctx context.Context, journalID string, req dto.RejectEntryRequest, userID string) (*domain.JournalEntry, error) {
	if strings.TrimSpace(req.Reason) == "" {
		return nil, apperrors.NewValidationError("rejection reason is required")
	}

	entry, err := s.GetEntryByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if err := s.transition(entry, domain.StatusRejected); err != nil {
		return nil, err
	}

	now := time.Now()
	reason := req.Reason
	if err := s.journalRepo.UpdateEntryStatus(ctx, journalID, entry.Status, domain.StatusRejected, nil, &reason, userID, now, nil); err != nil {
		return nil, fmt.Errorf("failed to reject journal entry %s: %w", journalID, err)
	}

	entry.Status = domain.StatusRejected
	entry.RejectionReason = reason
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	s.LogInfo(ctx, "Journal entry rejected", slog.String("journal_id", journalID), slog.String("rejected_by", userID))
	return entry, nil
}

// VoidEntry excludes a posted entry from every balance by reversing its
// persisted deltas. No compensating entry is written; the void is a terminal
// status on the original entry.
func (s *journalService) VoidEntry(ctx context.Context, journalID string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntryByID(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if err := s.transition(entry, domain.StatusVoided); err != nil {
		return nil, err
	}

	deltas, err := s.balanceDeltas(ctx, entry.Lines, true)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.journalRepo.UpdateEntryStatus(ctx, journalID, entry.Status, domain.StatusVoided, nil, nil, userID, now, deltas); err != nil {
		s.LogError(ctx, err, "Failed to void journal entry", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to void journal entry %s: %w", journalID, err)
	}

	entry.Status = domain.StatusVoided
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	s.LogInfo(ctx, "Journal entry voided",
		slog.String("journal_id", journalID),
		slog.Int64("entry_number", entry.EntryNumber),
		slog.String("voided_by", userID))
	return entry, nil
}
