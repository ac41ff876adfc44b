package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount is the bank_accounts row shape.
type BankAccount struct {
	BankAccountID  string          `db:"bank_account_id"`
	Name           string          `db:"name"`
	BankName       string          `db:"bank_name"`
	AccountNumber  string          `db:"account_number"`
	CurrencyCode   string          `db:"currency_code"`
	ChartAccountID string          `db:"chart_account_id"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}

// BankTransaction is the bank_transactions row shape. JournalEntryID is set
// only while the line is reconciled.
type BankTransaction struct {
	TransactionID   string          `db:"transaction_id"`
	BankAccountID   string          `db:"bank_account_id"`
	TransactionDate time.Time       `db:"transaction_date"`
	Description     string          `db:"description"`
	Reference       sql.NullString  `db:"reference"`
	DebitAmount     decimal.Decimal `db:"debit_amount"`
	CreditAmount    decimal.Decimal `db:"credit_amount"`
	IsReconciled    bool            `db:"is_reconciled"`
	JournalEntryID  sql.NullString  `db:"journal_entry_id"`
	AuditFields
}
