package services_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mzigohq/accounting_backend/internal/core/domain"
	portssvc "github.com/mzigohq/accounting_backend/internal/core/ports/services"
	"github.com/mzigohq/accounting_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockAccountRepo   *MockAccountRepository
	mockJournalRepo   *MockJournalRepository
	service           portssvc.ReportingService
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockAccountRepo, suite.mockJournalRepo, "TZS")
}

func (suite *ReportingServiceTestSuite) TestAgingReport_BucketsByAge() {
	ctx := context.Background()
	asOf := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	items := []domain.AgingItem{
		{ItemID: uuid.NewString(), Date: asOf.AddDate(0, 0, -10), Amount: decimal.NewFromInt(100000)},
		{ItemID: uuid.NewString(), Date: asOf.AddDate(0, 0, -45), Amount: decimal.NewFromInt(200000)},
		{ItemID: uuid.NewString(), Date: asOf.AddDate(0, 0, -120), Amount: decimal.NewFromInt(300000)},
	}

	suite.mockReportingRepo.On("FindOpenItems", ctx, domain.AgingReceivable, asOf).Return(items, nil).Once()

	report, err := suite.service.AgingReport(ctx, domain.AgingReceivable, asOf)

	suite.Require().NoError(err)
	suite.Equal(3, report.TotalCount)
	suite.True(report.TotalOutstanding.Equal(decimal.NewFromInt(600000)))
	suite.Len(report.Current.Items, 1)
	suite.Len(report.Days30.Items, 1)
	suite.Len(report.Days90Plus.Items, 1)
	suite.Empty(report.Days60.Items)
}

func (suite *ReportingServiceTestSuite) TestBalanceListing_SkipsInactive() {
	ctx := context.Background()
	asOf := time.Now()
	active := domain.ChartAccount{AccountID: uuid.NewString(), Code: "1000", Name: "Cash", AccountType: domain.Asset, NormalBalance: domain.DebitNormal, IsActive: true}
	retired := domain.ChartAccount{AccountID: uuid.NewString(), Code: "1090", Name: "Old cash", AccountType: domain.Asset, NormalBalance: domain.DebitNormal, IsActive: false}
	lines := []domain.JournalLine{
		{AccountID: active.AccountID, DebitAmount: decimal.NewFromInt(5000), RateToBase: decimal.NewFromInt(1)},
	}

	suite.mockAccountRepo.On("ListAccounts", ctx, false).Return([]domain.ChartAccount{active, retired}, nil).Once()
	suite.mockJournalRepo.On("FindPostedLinesByAccountIDs", ctx, mock.AnythingOfType("[]string"), asOf).Return(lines, nil).Once()

	listing, err := suite.service.BalanceListing(ctx, asOf)

	suite.Require().NoError(err)
	suite.Equal("TZS", listing.Currency)
	suite.Require().Len(listing.Rows, 1)
	suite.Equal("1000", listing.Rows[0].Code)
	suite.True(listing.Rows[0].Balance.Equal(decimal.NewFromInt(5000)))
}

func (suite *ReportingServiceTestSuite) TestExportBalancesCSV() {
	ctx := context.Background()
	asOf := time.Now()
	account := domain.ChartAccount{AccountID: uuid.NewString(), Code: "1000", Name: "Cash", AccountType: domain.Asset, NormalBalance: domain.DebitNormal, IsActive: true}
	lines := []domain.JournalLine{
		{AccountID: account.AccountID, DebitAmount: decimal.NewFromFloat(1234.5), RateToBase: decimal.NewFromInt(1)},
	}

	suite.mockAccountRepo.On("ListAccounts", ctx, false).Return([]domain.ChartAccount{account}, nil).Once()
	suite.mockJournalRepo.On("FindPostedLinesByAccountIDs", ctx, mock.AnythingOfType("[]string"), asOf).Return(lines, nil).Once()

	var buf bytes.Buffer
	err := suite.service.ExportBalancesCSV(ctx, asOf, &buf)

	suite.Require().NoError(err)
	out := buf.String()
	suite.Contains(out, "code,name,type,balance,currency")
	suite.Contains(out, "1000,Cash,ASSET,1234.50,TZS")
}

func (suite *ReportingServiceTestSuite) TestExportAgingCSV() {
	ctx := context.Background()
	asOf := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	items := []domain.AgingItem{
		{ItemID: uuid.NewString(), Reference: "JE-42", PartyName: "Invoice 42", Date: asOf.AddDate(0, 0, -45), Amount: decimal.NewFromInt(200000), CurrencyCode: "TZS"},
	}

	suite.mockReportingRepo.On("FindOpenItems", ctx, domain.AgingPayable, asOf).Return(items, nil).Once()

	var buf bytes.Buffer
	err := suite.service.ExportAgingCSV(ctx, domain.AgingPayable, asOf, &buf)

	suite.Require().NoError(err)
	out := buf.String()
	suite.Contains(out, "reference,party,date,days_outstanding,bucket,amount,currency")
	suite.Contains(out, "JE-42,Invoice 42,2026-06-17,45,31-60 Days,200000.00,TZS")
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
