package repositories

import (
	"context"
	"time"

	"github.com/mzigohq/accounting_backend/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.ChartAccount, error)

	// FindAccountByCode retrieves an account by its unique display code.
	FindAccountByCode(ctx context.Context, code string) (*domain.ChartAccount, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.ChartAccount, error)

	// ListAccounts retrieves all accounts ordered by code. When activeOnly is
	// set, soft-retired accounts are excluded.
	ListAccounts(ctx context.Context, activeOnly bool) ([]domain.ChartAccount, error)
}

// AccountWriter defines write operations for chart-of-accounts data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.ChartAccount) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.ChartAccount) error

	// DeactivateAccount marks an account as inactive (soft retire).
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
