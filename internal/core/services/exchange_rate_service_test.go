package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mzigohq/accounting_backend/internal/apperrors"
	"github.com/mzigohq/accounting_backend/internal/core/domain"
	portssvc "github.com/mzigohq/accounting_backend/internal/core/ports/services"
	"github.com/mzigohq/accounting_backend/internal/core/services"
	"github.com/mzigohq/accounting_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo *MockExchangeRateRepository
	service      portssvc.ExchangeRateSvcFacade
	userID       string
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.service = services.NewExchangeRateService(suite.mockRateRepo, "TZS")
	suite.userID = uuid.NewString()
}

func (suite *ExchangeRateServiceTestSuite) TestUpsertRate_Success() {
	ctx := context.Background()
	req := dto.UpsertExchangeRateRequest{
		CurrencyCode:  "usd",
		RateToBase:    decimal.NewFromInt(2500),
		DateEffective: time.Now(),
	}

	suite.mockRateRepo.On("UpsertExchangeRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(nil).Once()

	rate, err := suite.service.UpsertRate(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("USD", rate.CurrencyCode)
	suite.True(rate.RateToBase.Equal(decimal.NewFromInt(2500)))
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestUpsertRate_BaseCurrencyRejected() {
	ctx := context.Background()

	_, err := suite.service.UpsertRate(ctx, dto.UpsertExchangeRateRequest{
		CurrencyCode: "TZS",
		RateToBase:   decimal.NewFromInt(1),
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "UpsertExchangeRate", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestUpsertRate_NonPositiveRejected() {
	ctx := context.Background()

	for _, rate := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		_, err := suite.service.UpsertRate(ctx, dto.UpsertExchangeRateRequest{
			CurrencyCode: "USD",
			RateToBase:   rate,
		}, suite.userID)

		suite.Require().Error(err)
		suite.ErrorIs(err, apperrors.ErrValidation)
	}
}

func (suite *ExchangeRateServiceTestSuite) TestCurrentRateTable() {
	ctx := context.Background()

	suite.mockRateRepo.On("FindLatestRates", ctx).Return([]domain.ExchangeRate{
		{CurrencyCode: "USD", RateToBase: decimal.NewFromInt(2500)},
		{CurrencyCode: "KES", RateToBase: decimal.NewFromFloat(19.5)},
	}, nil).Once()

	table, err := suite.service.CurrentRateTable(ctx)

	suite.Require().NoError(err)
	suite.Equal("TZS", table.Base)
	suite.Len(table.Rates, 2)
	suite.True(table.Rates["USD"].Equal(decimal.NewFromInt(2500)))
}

func (suite *ExchangeRateServiceTestSuite) TestGetRateByCurrency_NotFound() {
	ctx := context.Background()

	suite.mockRateRepo.On("FindRateByCurrency", ctx, "EUR").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetRateByCurrency(ctx, "eur")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestExchangeRateService(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
