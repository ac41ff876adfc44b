package accounting

import (
	"github.com/shopspring/decimal"
)

// DefaultBaseCurrency is the ledger's base currency.
const DefaultBaseCurrency = "TZS"

// RateTable maps a currency code to its conversion rate into the base
// currency. The base currency itself is never stored; its rate is 1.
type RateTable struct {
	Base  string
	Rates map[string]decimal.Decimal
}

// NewRateTable builds an empty rate table for the given base currency.
func NewRateTable(base string) RateTable {
	return RateTable{Base: base, Rates: make(map[string]decimal.Decimal)}
}

// ConvertToBase converts an amount in the given currency to the base
// currency. The base currency converts at identity. A currency missing from
// the table also converts at 1: the rate table is fail-open so a missing rate
// never blocks a write. Journal lines carry their own rate captured at entry
// time, so this fallback only ever affects read-side conveniences.
func ConvertToBase(amount decimal.Decimal, currencyCode string, rates RateTable) decimal.Decimal {
	if currencyCode == rates.Base {
		return amount
	}
	rate, ok := rates.Rates[currencyCode]
	if !ok {
		return amount
	}
	return amount.Mul(rate)
}

// RateToBase returns the conversion rate for a currency, defaulting to 1 for
// the base currency or an unknown code.
func RateToBase(currencyCode string, rates RateTable) decimal.Decimal {
	if currencyCode == rates.Base {
		return decimal.NewFromInt(1)
	}
	if rate, ok := rates.Rates[currencyCode]; ok {
		return rate
	}
	return decimal.NewFromInt(1)
}
