package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the conversion rate from a currency to the base
// currency for a specific effective date. The base currency's own rate is
// fixed at 1 and never stored.
type ExchangeRate struct {
	ExchangeRateID string          `json:"exchangeRateID"` // Primary Key (UUID)
	CurrencyCode   string          `json:"currencyCode"`   // FK -> Currency.currencyCode
	RateToBase     decimal.Decimal `json:"rateToBase"`     // > 0
	DateEffective  time.Time       `json:"dateEffective"`
	AuditFields
}
