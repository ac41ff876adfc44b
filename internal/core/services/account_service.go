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
	// ErrParentTypeMixed rejects hierarchies that mix account types.
	ErrParentTypeMixed = errors.New("parent account must have the same account type")
)

// accountService provides business logic for the chart of accounts.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new chart account. The normal balance side is
// derived from the account type, never taken from the caller.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.ChartAccount, error) {
	accountType := domain.AccountType(strings.ToUpper(string(req.AccountType)))
	if !domain.IsValidAccountType(accountType) {
		return nil, apperrors.NewValidationError("unknown account type %q", req.AccountType)
	}

	existing, err := s.accountRepo.FindAccountByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check account code uniqueness: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: code %s", apperrors.ErrDuplicate, req.Code)
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationError("parent account %s not found", *req.ParentAccountID)
			}
			return nil, fmt.Errorf("failed to fetch parent account: %w", err)
		}
		if parent.AccountType != accountType {
			return nil, fmt.Errorf("%w: parent %s is %s", ErrParentTypeMixed, parent.AccountID, parent.AccountType)
		}
		parentID = parent.AccountID
	}

	now := time.Now()
	account := domain.ChartAccount{
		AccountID:       uuid.NewString(),
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     accountType,
		Subtype:         req.Subtype,
		NormalBalance:   domain.NormalBalanceFor(accountType),
		ParentAccountID: parentID,
		CurrencyCode:    strings.ToUpper(req.CurrencyCode),
		Description:     req.Description,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves an account by its identifier.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.ChartAccount, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to get account %s: %w", accountID, err)
	}
	return account, nil
}

// GetAccountByCode retrieves an account by its display code.
func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.ChartAccount, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account code %s", apperrors.ErrNotFound, code)
		}
		return nil, fmt.Errorf("failed to get account by code %s: %w", code, err)
	}
	return account, nil
}

// ListAccounts retrieves accounts ordered by code.
func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.ChartAccount, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, params.ActiveOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount applies partial updates, including reparenting. Reparenting
// runs the cycle check against the full chart before persisting.
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.ChartAccount, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Subtype != nil {
		account.Subtype = *req.Subtype
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	if req.ParentAccountID != nil && *req.ParentAccountID != account.ParentAccountID {
		if err := s.validateReparent(ctx, account, *req.ParentAccountID); err != nil {
			return nil, err
		}
		account.ParentAccountID = *req.ParentAccountID
	}

	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account %s: %w", accountID, err)
	}
	return account, nil
}

// validateReparent checks type compatibility and acyclicity for a proposed
// parent. An empty newParentID detaches the account to the root level.
func (s *accountService) validateReparent(ctx context.Context, account *domain.ChartAccount, newParentID string) error {
	if newParentID == "" {
		return nil
	}

	parent, err := s.accountRepo.FindAccountByID(ctx, newParentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationError("parent account %s not found", newParentID)
		}
		return fmt.Errorf("failed to fetch proposed parent: %w", err)
	}
	if parent.AccountType != account.AccountType {
		return fmt.Errorf("%w: parent %s is %s", ErrParentTypeMixed, parent.AccountID, parent.AccountType)
	}

	all, err := s.accountRepo.ListAccounts(ctx, false)
	if err != nil {
		return fmt.Errorf("failed to load chart for cycle check: %w", err)
	}
	arena := make(accounting.AccountArena, len(all))
	for _, acc := range all {
		arena[acc.AccountID] = acc
	}
	return arena.ValidateNoCycle(account.AccountID, newParentID)
}

// DeactivateAccount soft-retires an account.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, userID string) error {
	if _, err := s.GetAccountByID(ctx, accountID); err != nil {
		return err
	}
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}

// CalculateAccountBalance computes the balance of one account in base
// currency from posted, non-voided journal lines. With rolledUp it includes
// every descendant's postings as well.
func (s *accountService) CalculateAccountBalance(ctx context.Context, accountID string, rolledUp bool, asOf time.Time) (decimal.Decimal, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	if !rolledUp {
		lines, err := s.journalRepo.FindPostedLinesByAccountIDs(ctx, []string{accountID}, asOf)
		if err != nil {
			return decimal.Zero, fmt.Errorf("failed to load posted lines for %s: %w", accountID, err)
		}
		return accounting.DirectBalance(*account, lines), nil
	}

	all, err := s.accountRepo.ListAccounts(ctx, false)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load chart for rollup: %w", err)
	}
	arena := make(accounting.AccountArena, len(all))
	ids := make([]string, 0, len(all))
	for _, acc := range all {
		arena[acc.AccountID] = acc
		ids = append(ids, acc.AccountID)
	}

	lines, err := s.journalRepo.FindPostedLinesByAccountIDs(ctx, ids, asOf)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load posted lines for rollup: %w", err)
	}
	return accounting.RolledUpBalance(arena, accountID, lines)
}
