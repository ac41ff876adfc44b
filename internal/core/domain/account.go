package domain

import "github.com/shopspring/decimal"

// AccountType defines the fundamental accounting type of a chart account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance is the side on which an account naturally accumulates value.
type NormalBalance string

const (
	DebitNormal  NormalBalance = "DEBIT"
	CreditNormal NormalBalance = "CREDIT"
)

// NormalBalanceFor returns the conventional normal-balance side for an account type.
// Asset and expense accounts are debit-normal; liability, equity and revenue
// accounts are credit-normal.
func NormalBalanceFor(t AccountType) NormalBalance {
	switch t {
	case Asset, Expense:
		return DebitNormal
	default:
		return CreditNormal
	}
}

// IsValidAccountType reports whether t is one of the five supported types.
func IsValidAccountType(t AccountType) bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// ChartAccount represents a ledger account in the chart of accounts.
// Accounts form a tree through ParentAccountID; the hierarchy is kept as a
// flat id->account arena and must stay acyclic.
type ChartAccount struct {
	AccountID       string          `json:"accountID"`       // Primary Key (UUID)
	Code            string          `json:"code"`            // Unique, sortable display code (e.g. "1100")
	Name            string          `json:"name"`            // User-defined name
	AccountType     AccountType     `json:"accountType"`     // ASSET, LIABILITY, etc.
	Subtype         string          `json:"subtype"`         // Free-text grouping (e.g. "Current Asset")
	NormalBalance   NormalBalance   `json:"normalBalance"`   // Derived from AccountType, stored for querying
	ParentAccountID string          `json:"parentAccountID"` // Nullable FK -> accounts.account_id (self-referencing)
	CurrencyCode    string          `json:"currencyCode"`    // FK -> currencies.code
	Description     string          `json:"description"`     // Nullable user description
	IsActive        bool            `json:"isActive"`        // Soft-retire flag; referenced accounts are never physically deleted
	Balance         decimal.Decimal `json:"balance"`         // Persisted direct balance, moved when entries post or void
	AuditFields
}
