package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mzigohq/accounting_backend/internal/apperrors"
	"github.com/mzigohq/accounting_backend/internal/core/domain"
	portsrepo "github.com/mzigohq/accounting_backend/internal/core/ports/repositories"
	portssvc "github.com/mzigohq/accounting_backend/internal/core/ports/services"
	"github.com/mzigohq/accounting_backend/internal/dto"
	"github.com/mzigohq/accounting_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// exchangeRateService manages conversion rates into the base currency.
type exchangeRateService struct {
	BaseService
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	baseCurrency string
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, baseCurrency string) portssvc.ExchangeRateSvcFacade {
	if baseCurrency == "" {
		baseCurrency = accounting.DefaultBaseCurrency
	}
	return &exchangeRateService{
		rateRepo:     rateRepo,
		baseCurrency: strings.ToUpper(baseCurrency),
	}
}

// Ensure exchangeRateService implements the portssvc.ExchangeRateSvcFacade interface
var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// UpsertRate creates or replaces the rate for a currency and effective date.
func (s *exchangeRateService) UpsertRate(ctx context.Context, req dto.UpsertExchangeRateRequest, userID string) (*domain.ExchangeRate, error) {
	currency := strings.ToUpper(req.CurrencyCode)
	if currency == s.baseCurrency {
		return nil, apperrors.NewValidationError("the base currency %s always converts at 1", s.baseCurrency)
	}
	if req.RateToBase.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.NewValidationError("rate to base must be positive")
	}

	now := time.Now()
	rate := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		CurrencyCode:   currency,
		RateToBase:     req.RateToBase,
		DateEffective:  req.DateEffective,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.rateRepo.UpsertExchangeRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "Failed to upsert exchange rate", slog.String("currency", currency))
		return nil, fmt.Errorf("failed to upsert exchange rate for %s: %w", currency, err)
	}

	s.LogInfo(ctx, "Exchange rate upserted",
		slog.String("currency", currency),
		slog.String("rate", req.RateToBase.String()))
	return &rate, nil
}

// GetRateByCurrency retrieves the latest effective rate for a currency.
func (s *exchangeRateService) GetRateByCurrency(ctx context.Context, currencyCode string) (*domain.ExchangeRate, error) {
	currency := strings.ToUpper(currencyCode)
	rate, err := s.rateRepo.FindRateByCurrency(ctx, currency)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: exchange rate for %s", apperrors.ErrNotFound, currency)
		}
		return nil, fmt.Errorf("failed to get exchange rate for %s: %w", currency, err)
	}
	return rate, nil
}

// ListLatestRates retrieves the latest effective rate for every currency.
func (s *exchangeRateService) ListLatestRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.FindLatestRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}
	return rates, nil
}

// CurrentRateTable builds the lookup table of latest rates. Unknown
// currencies resolve to 1 at conversion time, so a sparse table never blocks
// a write.
func (s *exchangeRateService) CurrentRateTable(ctx context.Context) (*accounting.RateTable, error) {
	rates, err := s.ListLatestRates(ctx)
	if err != nil {
		return nil, err
	}
	table := accounting.NewRateTable(s.baseCurrency)
	for _, r := range rates {
		table.Rates[r.CurrencyCode] = r.RateToBase
	}
	return &table, nil
}
