package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount is a physical bank account linked to a cash ledger account in
// the chart of accounts. CurrentBalance is derived (opening balance plus the
// net of its bank transactions), never mutated directly.
type BankAccount struct {
	BankAccountID  string          `json:"bankAccountID"` // Primary Key (UUID)
	Name           string          `json:"name"`
	BankName       string          `json:"bankName"`
	AccountNumber  string          `json:"accountNumber"`
	CurrencyCode   string          `json:"currencyCode"`
	ChartAccountID string          `json:"chartAccountID"` // FK -> ChartAccount.accountID (the linked cash account)
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}

// BankTransaction is a statement line for a bank account. It starts
// unreconciled; the reconciliation matcher is the only path to reconciled.
type BankTransaction struct {
	TransactionID   string          `json:"transactionID"` // Primary Key (UUID)
	BankAccountID   string          `json:"bankAccountID"` // FK -> BankAccount.bankAccountID
	TransactionDate time.Time       `json:"transactionDate"`
	Description     string          `json:"description"`
	Reference       string          `json:"reference"`
	DebitAmount     decimal.Decimal `json:"debitAmount"`  // Money out of the bank account
	CreditAmount    decimal.Decimal `json:"creditAmount"` // Money into the bank account
	IsReconciled    bool            `json:"isReconciled"`
	JournalEntryID  *string         `json:"journalEntryID,omitempty"` // Set once reconciled
	AuditFields
}

// Amount returns the transaction's face value, whichever side it sits on.
func (t BankTransaction) Amount() decimal.Decimal {
	if t.DebitAmount.IsPositive() {
		return t.DebitAmount
	}
	return t.CreditAmount
}

// Net returns the signed effect of the transaction on the bank balance
// (credits increase it, debits decrease it).
func (t BankTransaction) Net() decimal.Decimal {
	return t.CreditAmount.Sub(t.DebitAmount)
}
