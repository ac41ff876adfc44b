package services

import (
	"context"

	"github.com/mzigohq/accounting_backend/internal/core/domain"
	"github.com/mzigohq/accounting_backend/internal/dto"
	"github.com/mzigohq/accounting_backend/internal/utils/accounting"
)

// ExchangeRateReaderSvc defines read operations for exchange rates
type ExchangeRateReaderSvc interface {
	// GetRateByCurrency retrieves the latest effective rate for a currency.
	GetRateByCurrency(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error)

	// ListLatestRates retrieves the latest effective rate for every currency.
	ListLatestRates(ctx context.Context) ([]domain.ExchangeRate, error)

	// CurrentRateTable builds a lookup table of latest rates keyed by
	// currency code, with the base currency implicitly at 1.
	CurrentRateTable(ctx context.Context) (*accounting.RateTable, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rates
type ExchangeRateWriterSvc interface {
	// UpsertRate creates or replaces the rate for a currency and effective date.
	UpsertRate(ctx context.Context, req dto.UpsertExchangeRateRequest, userID string) (*domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange-rate service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
