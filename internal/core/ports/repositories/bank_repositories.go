package repositories

import (
	"context"
	"time"

	"github.com/mzigohq/accounting_backend/internal/core/domain"
)

// BankAccountReader defines read operations for bank account data
type BankAccountReader interface {
	// FindBankAccountByID retrieves a bank account by its identifier.
	FindBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error)

	// ListBankAccounts retrieves all bank accounts, active first.
	ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error)
}

// BankAccountWriter defines write operations for bank account data
type BankAccountWriter interface {
	// SaveBankAccount persists a new bank account.
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error

	// UpdateBankAccount updates an existing bank account's details.
	UpdateBankAccount(ctx context.Context, account domain.BankAccount) error
}

// BankTransactionReader defines read operations for bank transaction data
type BankTransactionReader interface {
	// FindBankTransactionByID retrieves a statement transaction by its identifier.
	FindBankTransactionByID(ctx context.Context, transactionID string) (*domain.BankTransaction, error)

	// ListBankTransactions retrieves the transactions of one bank account,
	// newest first. When onlyUnreconciled is set, reconciled rows are excluded.
	ListBankTransactions(ctx context.Context, bankAccountID string, onlyUnreconciled bool) ([]domain.BankTransaction, error)

	// FindUnreconciledCandidates retrieves the unreconciled posted journal
	// lines on the given cash ledger account, paired with their entry dates.
	FindUnreconciledCandidates(ctx context.Context, chartAccountID string) ([]domain.ReconciliationCandidate, error)
}

// BankTransactionWriter defines write operations for bank transaction data
type BankTransactionWriter interface {
	// SaveBankTransaction persists a new statement transaction.
	SaveBankTransaction(ctx context.Context, txn domain.BankTransaction) error

	// MarkReconciled links a transaction to a journal entry and flags it
	// reconciled. The journal-line uniqueness constraint lives in the schema.
	MarkReconciled(ctx context.Context, transactionID string, journalEntryID string, userID string, now time.Time) error

	// MarkUnreconciled clears the reconciliation link and flag.
	MarkUnreconciled(ctx context.Context, transactionID string, userID string, now time.Time) error
}

// BankRepositoryFacade combines all bank-related repository interfaces.
type BankRepositoryFacade interface {
	BankAccountReader
	BankAccountWriter
	BankTransactionReader
	BankTransactionWriter
}
