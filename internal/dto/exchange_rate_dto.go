package dto

import (
	"time"

	"github.com/mzigohq/accounting_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertExchangeRateRequest sets the conversion rate to the base currency
// for a foreign currency. An existing rate for the same currency and
// effective date is replaced.
type UpsertExchangeRateRequest struct {
	CurrencyCode  string          `json:"currencyCode" binding:"required,currencycode"`
	RateToBase    decimal.Decimal `json:"rateToBase" binding:"required"`
	DateEffective time.Time       `json:"dateEffective" binding:"required"`
}

// ExchangeRateResponse defines the data returned for an exchange rate.
type ExchangeRateResponse struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	CurrencyCode   string          `json:"currencyCode"`
	RateToBase     decimal.Decimal `json:"rateToBase"`
	DateEffective  time.Time       `json:"dateEffective"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to its DTO.
func ToExchangeRateResponse(r *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID: r.ExchangeRateID,
		CurrencyCode:   r.CurrencyCode,
		RateToBase:     r.RateToBase,
		DateEffective:  r.DateEffective,
	}
}

// ToExchangeRateResponses maps a slice of rates to DTOs.
func ToExchangeRateResponses(rates []domain.ExchangeRate) []ExchangeRateResponse {
	out := make([]ExchangeRateResponse, 0, len(rates))
	for i := range rates {
		out = append(out, ToExchangeRateResponse(&rates[i]))
	}
	return out
}
