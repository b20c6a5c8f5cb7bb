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

type MockDispatchStore struct {
	mock.Mock
}

func (m *MockDispatchStore) Create(ctx context.Context, dispatch *models.Dispatch) error {
	args := m.Called(ctx, dispatch)
	return args.Error(0)
}

func (m *MockDispatchStore) GetByID(ctx context.Context, id uint) (*models.Dispatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Dispatch), args.Error(1)
}

func (m *MockDispatchStore) List(ctx context.Context) ([]models.Dispatch, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Dispatch), args.Error(1)
}

func (m *MockDispatchStore) ListByStatus(ctx context.Context, status models.DeliveryStatus) ([]models.Dispatch, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]models.Dispatch), args.Error(1)
}

func (m *MockDispatchStore) Update(ctx context.Context, dispatch *models.Dispatch) error {
	args := m.Called(ctx, dispatch)
	return args.Error(0)
}

func (m *MockDispatchStore) MarkDelivered(ctx context.Context, id uint, dropQty decimal.Decimal, deliveredAt time.Time) error {
	args := m.Called(ctx, id, dropQty, deliveredAt)
	return args.Error(0)
}

func (m *MockDispatchStore) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRunStore struct {
	mock.Mock
}

func (m *MockRunStore) GetByID(ctx context.Context, id uint) (*models.CrusherRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CrusherRun), args.Error(1)
}

func TestCreateDispatchRequiresExistingRun(t *testing.T) {
	mockDispatches := new(MockDispatchStore)
	mockRuns := new(MockRunStore)
	mockAudit := new(MockAuditStore)

	run := &models.CrusherRun{
		Model:       models.Model{ID: 2},
		ProducedQty: decimal.NewFromInt(100),
	}
	mockRuns.On("GetByID", mock.Anything, uint(2)).Return(run, nil)
	mockDispatches.On("Create", mock.Anything, mock.MatchedBy(func(d *models.Dispatch) bool {
		return d.DeliveryStatus == models.DeliveryStatusPending
	})).Return(nil)
	mockAudit.On("Append", mock.Anything, mock.Anything).Return(nil)

	service := &DispatchService{
		dispatchRepo: mockDispatches,
		runRepo:      mockRuns,
		audit:        mockAudit,
	}

	dispatch := &models.Dispatch{
		CrusherRunID: 2,
		Quantity:     decimal.NewFromInt(20),
		DispatchDate: time.Now(),
	}

	require.NoError(t, service.CreateDispatch(context.Background(), Actor{}, dispatch))
	mockRuns.AssertExpectations(t)
	mockDispatches.AssertExpectations(t)
}

func TestCreateDispatchRejectsNonPositiveQuantity(t *testing.T) {
	service := &DispatchService{}

	err := service.CreateDispatch(context.Background(), Actor{}, &models.Dispatch{
		CrusherRunID: 2,
		Quantity:     decimal.Zero,
	})
	require.Error(t, err)
}

func TestMarkDeliveredRejectsNonPositiveDrop(t *testing.T) {
	service := &DispatchService{}

	err := service.MarkDelivered(context.Background(), Actor{}, 1, decimal.Zero, time.Now())
	require.Error(t, err)
}

func TestMarkDelivered(t *testing.T) {
	mockDispatches := new(MockDispatchStore)
	mockAudit := new(MockAuditStore)

	drop := decimal.RequireFromString("35.203")
	deliveredAt := time.Now()

	mockDispatches.On("MarkDelivered", mock.Anything, uint(9), drop, deliveredAt).Return(nil)
	mockAudit.On("Append", mock.Anything, mock.MatchedBy(func(e *models.UserAuditLog) bool {
		return e.Action == models.AuditActionUpdate && e.EntityType == "dispatch"
	})).Return(nil)

	service := &DispatchService{dispatchRepo: mockDispatches, audit: mockAudit}

	require.NoError(t, service.MarkDelivered(context.Background(), Actor{}, 9, drop, deliveredAt))
	mockDispatches.AssertExpectations(t)
}

func TestTransitLossThroughService(t *testing.T) {
	mockDispatches := new(MockDispatchStore)

	pickup := decimal.RequireFromString("35.735")
	drop := decimal.RequireFromString("35.203")
	mockDispatches.On("GetByID", mock.Anything, uint(4)).Return(&models.Dispatch{
		Model:     models.Model{ID: 4},
		PickupQty: &pickup,
		DropQty:   &drop,
	}, nil)

	service := &DispatchService{dispatchRepo: mockDispatches}

	loss, known, err := service.TransitLoss(context.Background(), 4)
	require.NoError(t, err)
	require.True(t, known)
	require.True(t, loss.Equal(decimal.RequireFromString("0.532")))
}

func TestListDispatchesStatusFilter(t *testing.T) {
	mockDispatches := new(MockDispatchStore)
	mockDispatches.On("ListByStatus", mock.Anything, models.DeliveryStatusInTransit).
		Return([]models.Dispatch{{Model: models.Model{ID: 1}}}, nil)

	service := &DispatchService{dispatchRepo: mockDispatches}

	dispatches, err := service.ListDispatches(context.Background(), "IN_TRANSIT")
	require.NoError(t, err)
	require.Len(t, dispatches, 1)

	_, err = service.ListDispatches(context.Background(), "LOST")
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateDispatchDefaultsEmptyStatus(t *testing.T) {
	mockDispatches := new(MockDispatchStore)
	mockAudit := new(MockAuditStore)

	// an update that never touched the status keeps the pending default
	// instead of being rejected
	mockDispatches.On("Update", mock.Anything, mock.MatchedBy(func(d *models.Dispatch) bool {
		return d.DeliveryStatus == models.DeliveryStatusPending
	})).Return(nil)
	mockAudit.On("Append", mock.Anything, mock.Anything).Return(nil)

	service := &DispatchService{dispatchRepo: mockDispatches, audit: mockAudit}

	dispatch := &models.Dispatch{
		Model:        models.Model{ID: 6},
		CrusherRunID: 2,
		Quantity:     decimal.NewFromInt(20),
	}
	require.NoError(t, service.UpdateDispatch(context.Background(), Actor{}, dispatch))
	mockDispatches.AssertExpectations(t)
}

func TestUpdateDispatchRejectsUnknownStatus(t *testing.T) {
	service := &DispatchService{}

	err := service.UpdateDispatch(context.Background(), Actor{}, &models.Dispatch{
		Model:          models.Model{ID: 6},
		DeliveryStatus: "LOST",
	})
	require.ErrorIs(t, err, ErrValidation)
}
