package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/shopkhata/shopkhata_backend/internal/apperrors"
	"github.com/shopkhata/shopkhata_backend/internal/core/domain"
	portssvc "github.com/shopkhata/shopkhata_backend/internal/core/ports/services"
	"github.com/shopkhata/shopkhata_backend/internal/core/services"
	"github.com/shopkhata/shopkhata_backend/internal/dto"
)

type ReceiptServiceTestSuite struct {
	suite.Suite
	mockReceiptRepo   *MockReceiptRepository
	mockPaymentRepo   *MockPaymentRepository
	mockAccountRepo   *MockAccountRepository
	mockInventoryRepo *MockInventoryRepository
	service           portssvc.ReceiptSvcFacade
	actor             domain.Actor
}

func (suite *ReceiptServiceTestSuite) SetupTest() {
	suite.mockReceiptRepo = new(MockReceiptRepository)
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockInventoryRepo = new(MockInventoryRepository)
	suite.service = services.NewReceiptService(suite.mockReceiptRepo, suite.mockPaymentRepo, suite.mockAccountRepo, suite.mockInventoryRepo)
	suite.actor = domain.Actor{UserID: uuid.NewString(), Role: domain.RoleManager}
}

func (suite *ReceiptServiceTestSuite) expectAccount(accountID string) {
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, accountID).
		Return(&domain.Account{AccountID: accountID}, nil).Once()
}

func (suite *ReceiptServiceTestSuite) TestCreateReceipt_TotalDerivedFromLines() {
	// Two lines of 3 x 0.335: each line rounds to 1.00 before summation, so
	// the receipt totals 2.00, not 2.01.
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.CreateReceiptRequest{
		AccountID: accountID,
		Direction: "INBOUND",
		Date:      time.Now(),
		Items: []dto.LineItemRequest{
			{ItemName: "Widget A", Quantity: decimal.RequireFromString("3"), UnitPrice: decimal.RequireFromString("0.335")},
			{ItemName: "Widget B", Quantity: decimal.RequireFromString("3"), UnitPrice: decimal.RequireFromString("0.335")},
		},
	}

	suite.expectAccount(accountID)

	var saved domain.Receipt
	suite.mockReceiptRepo.On("SaveReceipt", ctx, mock.AnythingOfType("domain.Receipt")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Receipt) }).
		Return(nil).Once()

	receipt, err := suite.service.CreateReceipt(ctx, req, suite.actor)

	suite.Require().NoError(err)
	suite.Require().NotNil(receipt)
	suite.True(receipt.Total.Equal(decimal.RequireFromString("2.00")), "expected 2.00, got %s", receipt.Total)
	suite.True(saved.Total.Equal(receipt.Total))
	suite.Len(receipt.Items, 2)
	suite.NotEmpty(receipt.Items[0].ItemID)

	suite.mockReceiptRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *ReceiptServiceTestSuite) TestCreateReceipt_InvalidLineRejected() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.CreateReceiptRequest{
		AccountID: accountID,
		Direction: "INBOUND",
		Date:      time.Now(),
		Items: []dto.LineItemRequest{
			{ItemName: "Widget", Quantity: decimal.RequireFromString("0.005"), UnitPrice: decimal.RequireFromString("1.00")},
		},
	}

	suite.expectAccount(accountID)

	receipt, err := suite.service.CreateReceipt(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.Nil(receipt)
	suite.ErrorIs(err, apperrors.ErrValidation)

	var lineErr *apperrors.InvalidLineItemError
	suite.Require().ErrorAs(err, &lineErr)
	suite.Equal("Widget", lineErr.ItemName)

	suite.mockReceiptRepo.AssertNotCalled(suite.T(), "SaveReceipt", mock.Anything, mock.Anything)
}

func (suite *ReceiptServiceTestSuite) TestCreateReceipt_InsufficientStockPropagates() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.CreateReceiptRequest{
		AccountID: accountID,
		Direction: "OUTBOUND",
		Date:      time.Now(),
		Items: []dto.LineItemRequest{
			{ItemName: "Rice", Quantity: decimal.RequireFromString("60"), UnitPrice: decimal.RequireFromString("2.50")},
		},
	}

	rejection := &apperrors.InsufficientStockError{
		ItemName:  "Rice",
		Available: decimal.RequireFromString("50"),
	}
	suite.expectAccount(accountID)
	suite.mockReceiptRepo.On("SaveReceipt", ctx, mock.AnythingOfType("domain.Receipt")).Return(rejection).Once()

	receipt, err := suite.service.CreateReceipt(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.Nil(receipt)

	var stockErr *apperrors.InsufficientStockError
	suite.Require().ErrorAs(err, &stockErr)
	suite.Equal("Rice", stockErr.ItemName)
	suite.True(stockErr.Available.Equal(decimal.RequireFromString("50")))
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *ReceiptServiceTestSuite) TestCreateReceipt_UnknownAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.CreateReceiptRequest{
		AccountID: accountID,
		Direction: "INBOUND",
		Date:      time.Now(),
		Items: []dto.LineItemRequest{
			{ItemName: "Widget", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		},
	}

	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, accountID).Return(nil, apperrors.ErrNotFound).Once()

	receipt, err := suite.service.CreateReceipt(ctx, req, suite.actor)

	suite.Require().Error(err)
	suite.Nil(receipt)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ReceiptServiceTestSuite) TestUpdateReceipt_ItemsReplacedWholesale() {
	ctx := context.Background()
	existing := &domain.Receipt{
		ReceiptID: uuid.NewString(),
		AccountID: uuid.NewString(),
		Direction: domain.Outbound,
		Total:     decimal.RequireFromString("50.00"),
		Items: []domain.LineItem{
			{ItemID: uuid.NewString(), ItemName: "Rice", Quantity: decimal.RequireFromString("20"), UnitPrice: decimal.RequireFromString("2.50")},
		},
	}
	newItems := []dto.LineItemRequest{
		{ItemName: "Rice", Quantity: decimal.RequireFromString("5"), UnitPrice: decimal.RequireFromString("2.50")},
	}

	suite.mockReceiptRepo.On("FindReceiptByID", ctx, existing.ReceiptID).Return(existing, nil).Once()
	suite.mockPaymentRepo.On("FindPaymentsByReceiptID", ctx, existing.ReceiptID).Return([]domain.Payment{}, nil).Once()

	var updated domain.Receipt
	suite.mockReceiptRepo.On("UpdateReceipt", ctx, mock.AnythingOfType("domain.Receipt")).
		Run(func(args mock.Arguments) { updated = args.Get(1).(domain.Receipt) }).
		Return(nil).Once()

	receipt, err := suite.service.UpdateReceipt(ctx, existing.ReceiptID, dto.UpdateReceiptRequest{Items: &newItems}, suite.actor)

	suite.Require().NoError(err)
	suite.Len(receipt.Items, 1)
	suite.True(receipt.Total.Equal(decimal.RequireFromString("12.50")))
	suite.Len(updated.Items, 1)
	suite.True(updated.Items[0].Quantity.Equal(decimal.RequireFromString("5")))

	suite.mockReceiptRepo.AssertExpectations(suite.T())
}

func (suite *ReceiptServiceTestSuite) TestUpdateReceipt_TotalBelowSettledRejected() {
	ctx := context.Background()
	existing := &domain.Receipt{
		ReceiptID: uuid.NewString(),
		AccountID: uuid.NewString(),
		Direction: domain.Outbound,
		Total:     decimal.RequireFromString("100.00"),
		Items: []domain.LineItem{
			{ItemID: uuid.NewString(), ItemName: "Rice", Quantity: decimal.RequireFromString("40"), UnitPrice: decimal.RequireFromString("2.50")},
		},
	}
	// 80 already settled; shrinking the receipt to 12.50 must be rejected.
	payments := []domain.Payment{
		{PaymentID: uuid.NewString(), ReceiptID: existing.ReceiptID, Amount: decimal.RequireFromString("80.00")},
	}
	newItems := []dto.LineItemRequest{
		{ItemName: "Rice", Quantity: decimal.RequireFromString("5"), UnitPrice: decimal.RequireFromString("2.50")},
	}

	suite.mockReceiptRepo.On("FindReceiptByID", ctx, existing.ReceiptID).Return(existing, nil).Once()
	suite.mockPaymentRepo.On("FindPaymentsByReceiptID", ctx, existing.ReceiptID).Return(payments, nil).Once()

	receipt, err := suite.service.UpdateReceipt(ctx, existing.ReceiptID, dto.UpdateReceiptRequest{Items: &newItems}, suite.actor)

	suite.Require().Error(err)
	suite.Nil(receipt)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockReceiptRepo.AssertNotCalled(suite.T(), "UpdateReceipt", mock.Anything, mock.Anything)
}

func (suite *ReceiptServiceTestSuite) TestDeleteReceipt_BlockedBySettledPayments() {
	ctx := context.Background()
	receiptID := uuid.NewString()

	suite.mockReceiptRepo.On("DeleteReceipt", ctx, receiptID).Return(apperrors.ErrHasSettledPayments).Once()

	err := suite.service.DeleteReceipt(ctx, receiptID, suite.actor)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrHasSettledPayments)
}

func (suite *ReceiptServiceTestSuite) TestGetReceiptBalance() {
	ctx := context.Background()
	receipt := &domain.Receipt{
		ReceiptID: uuid.NewString(),
		AccountID: uuid.NewString(),
		Direction: domain.Outbound,
		Total:     decimal.RequireFromString("1000.00"),
	}
	payments := []domain.Payment{
		{PaymentID: uuid.NewString(), ReceiptID: receipt.ReceiptID, Amount: decimal.RequireFromString("600.00")},
	}

	suite.mockReceiptRepo.On("FindReceiptByID", ctx, receipt.ReceiptID).Return(receipt, nil).Twice()
	suite.mockPaymentRepo.On("FindPaymentsByReceiptID", ctx, receipt.ReceiptID).Return(payments, nil).Twice()

	balance, err := suite.service.GetReceiptBalance(ctx, receipt.ReceiptID)

	suite.Require().NoError(err)
	suite.True(balance.Total.Equal(decimal.RequireFromString("1000.00")))
	suite.True(balance.Settled.Equal(decimal.RequireFromString("600.00")))
	suite.True(balance.Remaining.Equal(decimal.RequireFromString("400.00")))

	// Reading twice without an intervening mutation yields identical results.
	again, err := suite.service.GetReceiptBalance(ctx, receipt.ReceiptID)
	suite.Require().NoError(err)
	suite.True(balance.Remaining.Equal(again.Remaining))
}

func (suite *ReceiptServiceTestSuite) TestCreateReceipt_ForbiddenRole() {
	ctx := context.Background()
	req := dto.CreateReceiptRequest{
		AccountID: uuid.NewString(),
		Direction: "INBOUND",
		Date:      time.Now(),
		Items: []dto.LineItemRequest{
			{ItemName: "Widget", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(1)},
		},
	}

	receipt, err := suite.service.CreateReceipt(ctx, req, domain.Actor{UserID: "u", Role: "VIEWER"})

	suite.Require().Error(err)
	suite.Nil(receipt)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func TestReceiptService(t *testing.T) {
	suite.Run(t, new(ReceiptServiceTestSuite))
}
