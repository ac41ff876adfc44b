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
	"github.com/mzigohq/accounting_backend/internal/utils/accounting/bankmatch"
	"github.com/shopspring/decimal"
)

var (
	ErrAlreadyReconciled = errors.New("bank transaction is already reconciled")
	ErrNotReconciled     = errors.New("bank transaction is not reconciled")
	ErrEntryNotPosted    = errors.New("only posted journal entries can be reconciled")
)

// bankService manages bank accounts, statement transactions and
// reconciliation against the ledger.
type bankService struct {
	BaseService
	bankRepo    portsrepo.BankRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewBankService creates a new bank service.
func NewBankService(bankRepo portsrepo.BankRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade) portssvc.BankSvcFacade {
	return &bankService{
		bankRepo:    bankRepo,
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
}

// Ensure bankService implements the portssvc.BankSvcFacade interface
var _ portssvc.BankSvcFacade = (*bankService)(nil)

// CreateBankAccount registers a new bank account. The linked chart account
// must exist and be active; it is where reconciliation candidates come from.
func (s *bankService) CreateBankAccount(ctx context.Context, req dto.CreateBankAccountRequest, userID string) (*domain.BankAccount, error) {
	chartAccount, err := s.accountRepo.FindAccountByID(ctx, req.ChartAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError("chart account %s not found", req.ChartAccountID)
		}
		return nil, fmt.Errorf("failed to fetch linked chart account: %w", err)
	}
	if !chartAccount.IsActive {
		return nil, apperrors.NewValidationError("chart account %s is inactive", chartAccount.Code)
	}
	if chartAccount.AccountType != domain.Asset {
		return nil, apperrors.NewValidationError("bank accounts must link to an ASSET account, got %s", chartAccount.AccountType)
	}

	now := time.Now()
	account := domain.BankAccount{
		BankAccountID:  uuid.NewString(),
		Name:           req.Name,
		BankName:       req.BankName,
		AccountNumber:  req.AccountNumber,
		CurrencyCode:   strings.ToUpper(req.CurrencyCode),
		ChartAccountID: chartAccount.AccountID,
		OpeningBalance: req.OpeningBalance,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.bankRepo.SaveBankAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save bank account", slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to create bank account: %w", err)
	}

	s.LogInfo(ctx, "Bank account created", slog.String("bank_account_id", account.BankAccountID))
	return &account, nil
}

// GetBankAccountByID retrieves a bank account by its identifier.
func (s *bankService) GetBankAccountByID(ctx context.Context, bankAccountID string) (*domain.BankAccount, error) {
	account, err := s.bankRepo.FindBankAccountByID(ctx, bankAccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: bank account %s", apperrors.ErrNotFound, bankAccountID)
		}
		return nil, fmt.Errorf("failed to get bank account %s: %w", bankAccountID, err)
	}
	return account, nil
}

// ListBankAccounts retrieves all registered bank accounts.
func (s *bankService) ListBankAccounts(ctx context.Context) ([]domain.BankAccount, error) {
	accounts, err := s.bankRepo.ListBankAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank accounts: %w", err)
	}
	return accounts, nil
}

// UpdateBankAccount applies partial updates to a bank account.
func (s *bankService) UpdateBankAccount(ctx context.Context, bankAccountID string, req dto.UpdateBankAccountRequest, userID string) (*domain.BankAccount, error) {
	account, err := s.GetBankAccountByID(ctx, bankAccountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.BankName != nil {
		account.BankName = *req.BankName
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.bankRepo.UpdateBankAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update bank account", slog.String("bank_account_id", bankAccountID))
		return nil, fmt.Errorf("failed to update bank account %s: %w", bankAccountID, err)
	}
	return account, nil
}

// CreateTransaction records a manually entered statement line.
func (s *bankService) CreateTransaction(ctx context.Context, bankAccountID string, req dto.CreateBankTransactionRequest, userID string) (*domain.BankTransaction, error) {
	if _, err := s.GetBankAccountByID(ctx, bankAccountID); err != nil {
		return nil, err
	}
	if req.DebitAmount.IsNegative() || req.CreditAmount.IsNegative() {
		return nil, apperrors.NewValidationError("transaction amounts must not be negative")
	}
	if req.DebitAmount.IsPositive() == req.CreditAmount.IsPositive() {
		return nil, apperrors.NewValidationError("exactly one of debit and credit must be set")
	}

	now := time.Now()
	txn := domain.BankTransaction{
		TransactionID:   uuid.NewString(),
		BankAccountID:   bankAccountID,
		TransactionDate: req.TransactionDate,
		Description:     req.Description,
		Reference:       req.Reference,
		DebitAmount:     req.DebitAmount,
		CreditAmount:    req.CreditAmount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.bankRepo.SaveBankTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save bank transaction", slog.String("bank_account_id", bankAccountID))
		return nil, fmt.Errorf("failed to create bank transaction: %w", err)
	}
	return &txn, nil
}

// ListTransactions retrieves statement lines for a bank account.
func (s *bankService) ListTransactions(ctx context.Context, bankAccountID string, params dto.ListBankTransactionsParams) ([]domain.BankTransaction, error) {
	if _, err := s.GetBankAccountByID(ctx, bankAccountID); err != nil {
		return nil, err
	}
	txns, err := s.bankRepo.ListBankTransactions(ctx, bankAccountID, params.OnlyUnreconciled)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank transactions: %w", err)
	}
	return txns, nil
}

// CurrentBalance derives the bank account's balance from its opening balance
// and the net of its statement lines.
func (s *bankService) CurrentBalance(ctx context.Context, bankAccountID string) (decimal.Decimal, error) {
	bankAccount, err := s.GetBankAccountByID(ctx, bankAccountID)
	if err != nil {
		return decimal.Zero, err
	}
	txns, err := s.bankRepo.ListBankTransactions(ctx, bankAccountID, false)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list bank transactions: %w", err)
	}
	balance := bankAccount.OpeningBalance
	for _, txn := range txns {
		balance = balance.Add(txn.Net())
	}
	return balance, nil
}

// FindMatches proposes posted, unreconciled journal lines on the bank's
// linked chart account whose amounts agree with the statement line. Results
// are ordered exact matches first.
func (s *bankService) FindMatches(ctx context.Context, transactionID string, params dto.FindMatchesParams) ([]domain.MatchResult, error) {
	txn, err := s.bankRepo.FindBankTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: bank transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to get bank transaction %s: %w", transactionID, err)
	}
	if txn.IsReconciled {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrAlreadyReconciled)
	}

	bankAccount, err := s.GetBankAccountByID(ctx, txn.BankAccountID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.bankRepo.FindUnreconciledCandidates(ctx, bankAccount.ChartAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reconciliation candidates: %w", err)
	}

	strategy := bankmatch.Default()
	if params.Strategy != "" {
		strategy = bankmatch.ByName(params.Strategy)
	}
	results := bankmatch.FindMatches(*txn, candidates, strategy)

	s.LogDebug(ctx, "Reconciliation matches computed",
		slog.String("transaction_id", transactionID),
		slog.String("strategy", strategy.Name()),
		slog.Int("candidates", len(candidates)),
		slog.Int("matches", len(results)))
	return results, nil
}

// Reconcile links a transaction to a journal entry and marks it reconciled.
// Only posted entries qualify; voided entries are rejected.
func (s *bankService) Reconcile(ctx context.Context, transactionID string, req dto.ReconcileRequest, userID string) (*domain.BankTransaction, error) {
	txn, err := s.bankRepo.FindBankTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: bank transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to get bank transaction %s: %w", transactionID, err)
	}
	if txn.IsReconciled {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrAlreadyReconciled)
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, req.JournalEntryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError("journal entry %s not found", req.JournalEntryID)
		}
		return nil, fmt.Errorf("failed to get journal entry %s: %w", req.JournalEntryID, err)
	}
	if entry.Status != domain.StatusPosted {
		return nil, fmt.Errorf("%w: %w (status %s)", apperrors.ErrConflict, ErrEntryNotPosted, entry.Status)
	}

	now := time.Now()
	if err := s.bankRepo.MarkReconciled(ctx, transactionID, entry.JournalID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to reconcile bank transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to reconcile bank transaction %s: %w", transactionID, err)
	}

	txn.IsReconciled = true
	txn.JournalEntryID = &entry.JournalID
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID
	s.LogInfo(ctx, "Bank transaction reconciled",
		slog.String("transaction_id", transactionID),
		slog.String("journal_id", entry.JournalID))
	return txn, nil
}

// Unreconcile clears a previously confirmed match.
func (s *bankService) Unreconcile(ctx context.Context, transactionID string, userID string) (*domain.BankTransaction, error) {
	txn, err := s.bankRepo.FindBankTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: bank transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to get bank transaction %s: %w", transactionID, err)
	}
	if !txn.IsReconciled {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrNotReconciled)
	}

	now := time.Now()
	if err := s.bankRepo.MarkUnreconciled(ctx, transactionID, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to unreconcile bank transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to unreconcile bank transaction %s: %w", transactionID, err)
	}

	txn.IsReconciled = false
	txn.JournalEntryID = nil
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = userID
	return txn, nil
}

// ReconciliationSummary reports matched/unmatched counts and the
// bank-versus-book difference. Bank balance is the opening balance plus the
// net of all statement lines; book balance is the posted ledger balance of
// the linked chart account.
func (s *bankService) ReconciliationSummary(ctx context.Context, bankAccountID string) (*domain.ReconciliationSummary, error) {
	bankAccount, err := s.GetBankAccountByID(ctx, bankAccountID)
	if err != nil {
		return nil, err
	}

	txns, err := s.bankRepo.ListBankTransactions(ctx, bankAccountID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list bank transactions: %w", err)
	}

	bankBalance := bankAccount.OpeningBalance
	matched := 0
	for _, txn := range txns {
		bankBalance = bankBalance.Add(txn.Net())
		if txn.IsReconciled {
			matched++
		}
	}

	chartAccount, err := s.accountRepo.FindAccountByID(ctx, bankAccount.ChartAccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch linked chart account: %w", err)
	}
	lines, err := s.journalRepo.FindPostedLinesByAccountIDs(ctx, []string{chartAccount.AccountID}, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to load posted lines: %w", err)
	}

	bookBalance := decimal.Zero
	for _, line := range lines {
		amount := line.AmountInBase()
		if line.IsDebit() {
			bookBalance = bookBalance.Add(amount)
		} else {
			bookBalance = bookBalance.Sub(amount)
		}
	}

	return &domain.ReconciliationSummary{
		BankAccountID:   bankAccountID,
		BankBalance:     bankBalance,
		BookBalance:     bookBalance,
		Difference:      bankBalance.Sub(bookBalance),
		MatchedCount:    matched,
		UnmatchedCount:  len(txns) - matched,
		TransactionsTot: len(txns),
	}, nil
}
