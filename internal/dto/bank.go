package dto

import (
	"time"

	"github.com/mzigohq/accounting_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBankAccountRequest defines the data needed to register a bank account.
type CreateBankAccountRequest struct {
	Name           string          `json:"name" binding:"required"`
	BankName       string          `json:"bankName" binding:"required"`
	AccountNumber  string          `json:"accountNumber" binding:"required"`
	CurrencyCode   string          `json:"currencyCode" binding:"required,currencycode"`
	ChartAccountID string          `json:"chartAccountID" binding:"required"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// UpdateBankAccountRequest defines the data allowed for updating a bank account.
type UpdateBankAccountRequest struct {
	Name     *string `json:"name"`
	BankName *string `json:"bankName"`
	IsActive *bool   `json:"isActive"`
}

// BankAccountResponse defines the data returned for a bank account.
// CurrentBalance is derived from the opening balance and the account's
// transactions at read time.
type BankAccountResponse struct {
	BankAccountID  string          `json:"bankAccountID"`
	Name           string          `json:"name"`
	BankName       string          `json:"bankName"`
	AccountNumber  string          `json:"accountNumber"`
	CurrencyCode   string          `json:"currencyCode"`
	ChartAccountID string          `json:"chartAccountID"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	IsActive       bool            `json:"isActive"`
}

// ToBankAccountResponse converts a domain.BankAccount plus its derived
// current balance to the response DTO.
func ToBankAccountResponse(acc *domain.BankAccount, currentBalance decimal.Decimal) BankAccountResponse {
	return BankAccountResponse{
		BankAccountID:  acc.BankAccountID,
		Name:           acc.Name,
		BankName:       acc.BankName,
		AccountNumber:  acc.AccountNumber,
		CurrencyCode:   acc.CurrencyCode,
		ChartAccountID: acc.ChartAccountID,
		OpeningBalance: acc.OpeningBalance,
		CurrentBalance: currentBalance,
		IsActive:       acc.IsActive,
	}
}

// CreateBankTransactionRequest defines a manually entered statement line.
type CreateBankTransactionRequest struct {
	TransactionDate time.Time       `json:"transactionDate" binding:"required"`
	Description     string          `json:"description" binding:"required"`
	Reference       string          `json:"reference"`
	DebitAmount     decimal.Decimal `json:"debitAmount"`
	CreditAmount    decimal.Decimal `json:"creditAmount"`
}

// ReconcileRequest links a bank transaction to a journal entry.
type ReconcileRequest struct {
	JournalEntryID string `json:"journalEntryID" binding:"required"`
}

// FindMatchesParams selects the matching strategy for a match query.
type FindMatchesParams struct {
	Strategy string `form:"strategy"` // "amount-only" (default) or "amount-date-window"
}

// ListBankTransactionsParams filters a transaction listing.
type ListBankTransactionsParams struct {
	OnlyUnreconciled bool `form:"onlyUnreconciled,default=false"`
}

// BankTransactionResponse defines the data returned for a statement line.
type BankTransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	BankAccountID   string          `json:"bankAccountID"`
	TransactionDate time.Time       `json:"transactionDate"`
	Description     string          `json:"description"`
	Reference       string          `json:"reference,omitempty"`
	DebitAmount     decimal.Decimal `json:"debitAmount"`
	CreditAmount    decimal.Decimal `json:"creditAmount"`
	IsReconciled    bool            `json:"isReconciled"`
	JournalEntryID  *string         `json:"journalEntryID,omitempty"`
}

// ToBankTransactionResponse converts a domain.BankTransaction to its DTO.
func ToBankTransactionResponse(txn *domain.BankTransaction) BankTransactionResponse {
	return BankTransactionResponse{
		TransactionID:   txn.TransactionID,
		BankAccountID:   txn.BankAccountID,
		TransactionDate: txn.TransactionDate,
		Description:     txn.Description,
		Reference:       txn.Reference,
		DebitAmount:     txn.DebitAmount,
		CreditAmount:    txn.CreditAmount,
		IsReconciled:    txn.IsReconciled,
		JournalEntryID:  txn.JournalEntryID,
	}
}

// ToBankTransactionResponses maps a slice of transactions to DTOs.
func ToBankTransactionResponses(txns []domain.BankTransaction) []BankTransactionResponse {
	out := make([]BankTransactionResponse, 0, len(txns))
	for i := range txns {
		out = append(out, ToBankTransactionResponse(&txns[i]))
	}
	return out
}

// MatchResultResponse describes one candidate journal line for a bank
// transaction, flagged exact when the amounts agree to the cent.
type MatchResultResponse struct {
	JournalID    string          `json:"journalID"`
	EntryNumber  int64           `json:"entryNumber"`
	EntryDate    time.Time       `json:"entryDate"`
	LineID       string          `json:"lineID"`
	AccountID    string          `json:"accountID"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
	ExactMatch   bool            `json:"exactMatch"`
	Difference   decimal.Decimal `json:"difference"`
}

// ToMatchResultResponses converts match results to their DTOs.
func ToMatchResultResponses(results []domain.MatchResult) []MatchResultResponse {
	out := make([]MatchResultResponse, 0, len(results))
	for _, r := range results {
		out = append(out, MatchResultResponse{
			JournalID:    r.Candidate.JournalID,
			EntryNumber:  r.Candidate.EntryNumber,
			EntryDate:    r.Candidate.EntryDate,
			LineID:       r.Candidate.Line.LineID,
			AccountID:    r.Candidate.Line.AccountID,
			Description:  r.Candidate.Line.Description,
			Amount:       r.Candidate.Line.Amount(),
			CurrencyCode: r.Candidate.Line.CurrencyCode,
			ExactMatch:   r.ExactMatch,
			Difference:   r.Difference,
		})
	}
	return out
}

// ReconciliationSummaryResponse reports reconciliation progress for a
// bank account.
type ReconciliationSummaryResponse struct {
	BankAccountID     string          `json:"bankAccountID"`
	BankBalance       decimal.Decimal `json:"bankBalance"`
	BookBalance       decimal.Decimal `json:"bookBalance"`
	Difference        decimal.Decimal `json:"difference"`
	MatchedCount      int             `json:"matchedCount"`
	UnmatchedCount    int             `json:"unmatchedCount"`
	TransactionsTotal int             `json:"transactionsTotal"`
}

// ToReconciliationSummaryResponse converts the domain summary to its DTO.
func ToReconciliationSummaryResponse(s *domain.ReconciliationSummary) ReconciliationSummaryResponse {
	return ReconciliationSummaryResponse{
		BankAccountID:     s.BankAccountID,
		BankBalance:       s.BankBalance,
		BookBalance:       s.BookBalance,
		Difference:        s.Difference,
		MatchedCount:      s.MatchedCount,
		UnmatchedCount:    s.UnmatchedCount,
		TransactionsTotal: s.TransactionsTot,
	}
}
