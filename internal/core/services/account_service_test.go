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

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockJournalRepo *MockJournalRepository
	service         portssvc.AccountSvcFacade
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockJournalRepo)
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:         "1010",
		Name:         "Cash at NMB",
		AccountType:  domain.Asset,
		CurrencyCode: "TZS",
	}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1010").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.ChartAccount")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal(domain.DebitNormal, account.NormalBalance)
	suite.True(account.IsActive)
	suite.Equal(suite.userID, account.CreatedBy)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_NormalBalanceDerived() {
	ctx := context.Background()

	cases := []struct {
		accountType domain.AccountType
		expected    domain.NormalBalance
	}{
		{domain.Asset, domain.DebitNormal},
		{domain.Expense, domain.DebitNormal},
		{domain.Liability, domain.CreditNormal},
		{domain.Equity, domain.CreditNormal},
		{domain.Revenue, domain.CreditNormal},
	}

	for i, tc := range cases {
		code := string(rune('A' + i))
		suite.mockAccountRepo.On("FindAccountByCode", ctx, code).Return(nil, apperrors.ErrNotFound).Once()
		suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.ChartAccount")).Return(nil).Once()

		account, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
			Code:         code,
			Name:         "test",
			AccountType:  tc.accountType,
			CurrencyCode: "TZS",
		}, suite.userID)

		suite.Require().NoError(err)
		suite.Equal(tc.expected, account.NormalBalance, "type %s", tc.accountType)
	}
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	existing := &domain.ChartAccount{AccountID: uuid.NewString(), Code: "1010"}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1010").Return(existing, nil).Once()

	_, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		Code: "1010", Name: "Cash", AccountType: domain.Asset, CurrencyCode: "TZS",
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentTypeMismatch() {
	ctx := context.Background()
	parent := &domain.ChartAccount{AccountID: uuid.NewString(), AccountType: domain.Liability}

	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1020").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, parent.AccountID).Return(parent, nil).Once()

	_, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		Code: "1020", Name: "Cash", AccountType: domain.Asset, CurrencyCode: "TZS",
		ParentAccountID: &parent.AccountID,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrParentTypeMixed)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_ReparentCycleRejected() {
	ctx := context.Background()

	// parent -> child; reparenting parent under child closes a loop.
	parent := domain.ChartAccount{AccountID: uuid.NewString(), Code: "1000", AccountType: domain.Asset}
	child := domain.ChartAccount{AccountID: uuid.NewString(), Code: "1010", AccountType: domain.Asset, ParentAccountID: parent.AccountID}

	suite.mockAccountRepo.On("FindAccountByID", ctx, parent.AccountID).Return(&parent, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, child.AccountID).Return(&child, nil).Once()
	suite.mockAccountRepo.On("ListAccounts", ctx, false).Return([]domain.ChartAccount{parent, child}, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, parent.AccountID, dto.UpdateAccountRequest{
		ParentAccountID: &child.AccountID,
	}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_DetachToRoot() {
	ctx := context.Background()
	parent := domain.ChartAccount{AccountID: uuid.NewString(), AccountType: domain.Asset}
	child := domain.ChartAccount{AccountID: uuid.NewString(), AccountType: domain.Asset, ParentAccountID: parent.AccountID}

	suite.mockAccountRepo.On("FindAccountByID", ctx, child.AccountID).Return(&child, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.AnythingOfType("domain.ChartAccount")).Return(nil).Once()

	root := ""
	updated, err := suite.service.UpdateAccount(ctx, child.AccountID, dto.UpdateAccountRequest{
		ParentAccountID: &root,
	}, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(updated.ParentAccountID)
}

func (suite *AccountServiceTestSuite) TestCalculateAccountBalance_Direct() {
	ctx := context.Background()
	asOf := time.Now()
	account := domain.ChartAccount{
		AccountID:     uuid.NewString(),
		AccountType:   domain.Asset,
		NormalBalance: domain.DebitNormal,
	}
	lines := []domain.JournalLine{
		{AccountID: account.AccountID, DebitAmount: decimal.NewFromInt(1000), RateToBase: decimal.NewFromInt(1)},
		{AccountID: account.AccountID, CreditAmount: decimal.NewFromInt(300), RateToBase: decimal.NewFromInt(1)},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, account.AccountID).Return(&account, nil).Once()
	suite.mockJournalRepo.On("FindPostedLinesByAccountIDs", ctx, []string{account.AccountID}, asOf).Return(lines, nil).Once()

	balance, err := suite.service.CalculateAccountBalance(ctx, account.AccountID, false, asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(700)))
}

func (suite *AccountServiceTestSuite) TestCalculateAccountBalance_RolledUp() {
	ctx := context.Background()
	asOf := time.Now()
	parent := domain.ChartAccount{AccountID: uuid.NewString(), AccountType: domain.Asset, NormalBalance: domain.DebitNormal}
	child := domain.ChartAccount{AccountID: uuid.NewString(), AccountType: domain.Asset, NormalBalance: domain.DebitNormal, ParentAccountID: parent.AccountID}
	lines := []domain.JournalLine{
		{AccountID: parent.AccountID, DebitAmount: decimal.NewFromInt(100), RateToBase: decimal.NewFromInt(1)},
		{AccountID: child.AccountID, DebitAmount: decimal.NewFromInt(250), RateToBase: decimal.NewFromInt(1)},
	}

	suite.mockAccountRepo.On("FindAccountByID", ctx, parent.AccountID).Return(&parent, nil).Once()
	suite.mockAccountRepo.On("ListAccounts", ctx, false).Return([]domain.ChartAccount{parent, child}, nil).Once()
	suite.mockJournalRepo.On("FindPostedLinesByAccountIDs", ctx, mock.AnythingOfType("[]string"), asOf).Return(lines, nil).Once()

	balance, err := suite.service.CalculateAccountBalance(ctx, parent.AccountID, true, asOf)

	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(350)))
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetAccountByID(ctx, accountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
