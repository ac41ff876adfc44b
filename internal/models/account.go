package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// ChartAccount is the chart_accounts row shape. Optional text columns use
// sql.NullString so rows scan directly into the struct.
type ChartAccount struct {
	AccountID       string          `db:"account_id"`
	Code            string          `db:"code"`
	Name            string          `db:"name"`
	AccountType     string          `db:"account_type"`
	Subtype         sql.NullString  `db:"subtype"`
	NormalBalance   string          `db:"normal_balance"`
	ParentAccountID sql.NullString  `db:"parent_account_id"`
	CurrencyCode    string          `db:"currency_code"`
	Description     sql.NullString  `db:"description"`
	IsActive        bool            `db:"is_active"`
	Balance         decimal.Decimal `db:"balance"` // Persisted running balance, moved on post/void
	AuditFields
}
