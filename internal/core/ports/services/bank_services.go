package services

import (
	"context"

	"github.com/mzigohq/accounting_backend/internal/core/domain"
	"github.com/mzigohq/accounting_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// BankReaderSvc defines read operations for bank accounts and transactions
type BankReaderSvc interface {
	// GetBankAccountByID retrieves a bank account by its identifier.
	GetBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)

	// ListBankAccounts retrieves all registered bank accounts.
	ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error)

	// ListTransactions retrieves statement lines for a bank account.
	ListTransactions(ctx context.Context, bankAccountID string, params dto.ListBankTransactionsParams) ([]domain.BankTransaction, error)

	// CurrentBalance derives the bank account's balance from its opening
	// balance and the net of its statement lines.
	CurrentBalance(ctx context.Context, bankAccountID string) (decimal.Decimal, error)
}

// BankWriterSvc defines write operations for bank accounts and transactions
type BankWriterSvc interface {
	// CreateBankAccount registers a new bank account linked to a chart account.
	CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error)

	// UpdateBankAccount updates a bank account's details.
	UpdateBankAccount(ctx context.Context, bankAccountID string, req dto.UpdateBankAccountRequest, userID string) (*domain.BankAccount, error)

	// CreateTransaction records a manually entered statement line.
	CreateTransaction(ctx context.Context, bankAccountID string, req dto.CreateBankTransactionRequest, userID string) (*domain.BankTransaction, error)
}

// ReconciliationSvc matches statement lines against posted journal lines
type ReconciliationSvc interface {
	// FindMatches proposes posted, unreconciled journal lines on the bank's
	// linked chart account that match the transaction amount.
	FindMatches(ctx context.Context, transactionID string, params dto.FindMatchesParams) ([]domain.MatchResult, error)

	// Reconcile links a transaction to a journal entry and marks it reconciled.
	Reconcile(ctx context.Context, transactionID string, req dto.ReconcileRequest, userID string) (*domain.BankTransaction, error)

	// Unreconcile clears a previously confirmed match.
	Unreconcile(ctx context.Context, transactionID string, userID string) (*domain.BankTransaction, error)

	// ReconciliationSummary reports matched/unmatched counts and the
	// bank-versus-book balance difference for a bank account.
	ReconciliationSummary(ctx context.Context, bankAccountID string) (*domain.ReconciliationSummary, error)
}

// BankSvcFacade combines all bank-related service interfaces
type BankSvcFacade interface {
	BankReaderSvc
	BankWriterSvc
	ReconciliationSvc
}
