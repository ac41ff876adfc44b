package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationCandidate is an unreconciled journal line on the cash account
// linked to a bank account, paired with its entry's date and number so
// matching strategies can use date proximity.
type ReconciliationCandidate struct {
	Line        JournalLine `json:"line"`
	JournalID   string      `json:"journalID"`
	EntryNumber int64       `json:"entryNumber"`
	EntryDate   time.Time   `json:"entryDate"`
}

// MatchResult flags a candidate against one bank transaction. Exact-amount
// matches sort before the rest.
type MatchResult struct {
	Candidate  ReconciliationCandidate `json:"candidate"`
	ExactMatch bool                    `json:"exactMatch"`
	Difference decimal.Decimal         `json:"difference"` // |candidate amount - transaction amount|
}

// ReconciliationSummary is the bank-vs-book position for one bank account,
// derived purely from its transaction set.
type ReconciliationSummary struct {
	BankAccountID   string          `json:"bankAccountID"`
	BankBalance     decimal.Decimal `json:"bankBalance"` // Opening balance + net of all bank transactions
	BookBalance     decimal.Decimal `json:"bookBalance"` // Ledger balance of the linked cash account
	Difference      decimal.Decimal `json:"difference"`  // BankBalance - BookBalance
	MatchedCount    int             `json:"matchedCount"`
	UnmatchedCount  int             `json:"unmatchedCount"`
	TransactionsTot int             `json:"transactionsTotal"`
}
