package services

import (
	"context"
	"time"

	"github.com/mzigohq/accounting_backend/internal/core/domain"
	"github.com/mzigohq/accounting_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for chart-of-accounts data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its unique identifier.
	GetAccountByID(ctx context.Context, accountID string) (*domain.ChartAccount, error)

	// GetAccountByCode retrieves an account by its human-facing code.
	GetAccountByCode(ctx context.Context, code string) (*domain.ChartAccount, error)

	// ListAccounts retrieves accounts, optionally filtered to active ones.
	ListAccounts(ctx context.Context, params dto.ListAccountsParams) ([]domain.ChartAccount, error)
}

// AccountWriterSvc defines write operations for chart-of-accounts data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, userID string) (*domain.ChartAccount, error)

	// UpdateAccount updates an existing account's details, including reparenting.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.ChartAccount, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string) error
}

// AccountCalculatorSvc defines balance calculations over posted entries
type AccountCalculatorSvc interface {
	// CalculateAccountBalance computes an account's balance in base currency
	// from posted journal lines, applying the account's sign convention.
	// When rolledUp is true the balance includes all descendant accounts.
	CalculateAccountBalance(ctx context.Context, accountID string, rolledUp bool, asOf time.Time) (decimal.Decimal, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountCalculatorSvc
}
