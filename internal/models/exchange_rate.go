package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the exchange_rates row shape. Rates always convert a
// foreign currency into the base currency.
type ExchangeRate struct {
	ExchangeRateID string          `db:"exchange_rate_id"`
	CurrencyCode   string          `db:"currency_code"`
	RateToBase     decimal.Decimal `db:"rate_to_base"`
	DateEffective  time.Time       `db:"date_effective"`
	AuditFields
}
