package repositories

import (
	"context"

	"github.com/mzigohq/accounting_backend/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindRateByCurrency retrieves the latest effective rate for a currency.
	FindRateByCurrency(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error)

	// FindLatestRates retrieves the latest effective rate per currency.
	FindLatestRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// UpsertExchangeRate inserts or replaces the rate for a currency and
	// effective date.
	UpsertExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines the exchange rate repository interfaces.
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
