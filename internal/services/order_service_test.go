package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"example.com/backstage/services/crusher/internal/models"
)

type MockSalesOrderStore struct {
	mock.Mock
}

func (m *MockSalesOrderStore) Create(ctx context.Context, order *models.SalesOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockSalesOrderStore) GetByID(ctx context.Context, id uint) (*models.SalesOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderStore) List(ctx context.Context) ([]models.SalesOrder, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderStore) Update(ctx context.Context, order *models.SalesOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockSalesOrderStore) ReplaceItems(ctx context.Context, orderID uint, items []models.SalesOrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *MockSalesOrderStore) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPurchaseOrderStore struct {
	mock.Mock
}

func (m *MockPurchaseOrderStore) Create(ctx context.Context, order *models.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderStore) GetByID(ctx context.Context, id uint) (*models.PurchaseOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderStore) List(ctx context.Context) ([]models.PurchaseOrder, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderStore) Update(ctx context.Context, order *models.PurchaseOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockPurchaseOrderStore) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestCreateSalesOrderWithItems(t *testing.T) {
	mockSales := new(MockSalesOrderStore)
	mockAudit := new(MockAuditStore)

	mockSales.On("Create", mock.Anything, mock.MatchedBy(func(o *models.SalesOrder) bool {
		return len(o.Items) == 2 && o.Items[1].Unit == "Ton"
	})).Return(nil)
	mockAudit.On("Append", mock.Anything, mock.Anything).Return(nil)

	service := &OrderService{salesRepo: mockSales, audit: mockAudit}

	order := &models.SalesOrder{
		CustomerID: 3,
		VehicleNo:  "MH12AB1234",
		OrderDate:  time.Now(),
		Items: []models.SalesOrderItem{
			{MaterialID: 1, Quantity: decimal.NewFromInt(10), Rate: decimal.NewFromInt(500), Unit: "Brass"},
			{MaterialID: 2, Quantity: decimal.NewFromInt(5), Rate: decimal.NewFromInt(700)},
		},
	}

	require.NoError(t, service.CreateSalesOrder(context.Background(), Actor{}, order))
	mockSales.AssertExpectations(t)
}

func TestCreateSalesOrderRequiresItems(t *testing.T) {
	service := &OrderService{salesRepo: new(MockSalesOrderStore)}

	err := service.CreateSalesOrder(context.Background(), Actor{}, &models.SalesOrder{CustomerID: 3})
	require.Error(t, err)
	require.Contains(t, err.Error(), "line item")
}

func TestUpdateSalesOrderReplacesItems(t *testing.T) {
	mockSales := new(MockSalesOrderStore)
	mockAudit := new(MockAuditStore)

	mockSales.On("Update", mock.Anything, mock.Anything).Return(nil)
	mockSales.On("ReplaceItems", mock.Anything, uint(8), mock.Anything).Return(nil)
	mockAudit.On("Append", mock.Anything, mock.Anything).Return(nil)

	service := &OrderService{salesRepo: mockSales, audit: mockAudit}

	order := &models.SalesOrder{
		Model:      models.Model{ID: 8},
		CustomerID: 3,
		Items: []models.SalesOrderItem{
			{MaterialID: 1, Quantity: decimal.NewFromInt(12), Rate: decimal.NewFromInt(450)},
		},
	}

	require.NoError(t, service.UpdateSalesOrder(context.Background(), Actor{}, order))
	mockSales.AssertExpectations(t)
}

func TestCreatePurchaseOrderDefaultsStatus(t *testing.T) {
	mockPurchase := new(MockPurchaseOrderStore)
	mockAudit := new(MockAuditStore)

	mockPurchase.On("Create", mock.Anything, mock.MatchedBy(func(o *models.PurchaseOrder) bool {
		return o.Status == models.PurchaseOrderStatusPending
	})).Return(nil)
	mockAudit.On("Append", mock.Anything, mock.Anything).Return(nil)

	service := &OrderService{purchaseRepo: mockPurchase, audit: mockAudit}

	order := &models.PurchaseOrder{VendorID: 1, MaterialID: 2, Quantity: decimal.NewFromInt(30)}
	require.NoError(t, service.CreatePurchaseOrder(context.Background(), Actor{}, order))
	mockPurchase.AssertExpectations(t)
}

func TestUpdatePurchaseOrderStatusRejectsUnknownValue(t *testing.T) {
	service := &OrderService{purchaseRepo: new(MockPurchaseOrderStore)}

	err := service.UpdatePurchaseOrderStatus(context.Background(), Actor{}, 1, models.PurchaseOrderStatus("CANCELLED"))
	require.Error(t, err)
}

func TestUpdatePurchaseOrderStatusTransition(t *testing.T) {
	mockPurchase := new(MockPurchaseOrderStore)
	mockAudit := new(MockAuditStore)

	existing := &models.PurchaseOrder{
		Model:  models.Model{ID: 6},
		Status: models.PurchaseOrderStatusPending,
	}
	mockPurchase.On("GetByID", mock.Anything, uint(6)).Return(existing, nil)
	mockPurchase.On("Update", mock.Anything, mock.MatchedBy(func(o *models.PurchaseOrder) bool {
		return o.Status == models.PurchaseOrderStatusReceived
	})).Return(nil)
	mockAudit.On("Append", mock.Anything, mock.Anything).Return(nil)

	service := &OrderService{purchaseRepo: mockPurchase, audit: mockAudit}

	require.NoError(t, service.UpdatePurchaseOrderStatus(context.Background(), Actor{}, 6, models.PurchaseOrderStatusReceived))
	mockPurchase.AssertExpectations(t)
}
