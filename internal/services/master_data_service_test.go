package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"example.com/backstage/services/crusher/internal/models"
)

// Mock stores for testing
type MockMaterialStore struct {
	mock.Mock
}

func (m *MockMaterialStore) Create(ctx context.Context, material *models.Material) error {
	args := m.Called(ctx, material)
	return args.Error(0)
}

func (m *MockMaterialStore) GetByID(ctx context.Context, id uint) (*models.Material, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Material), args.Error(1)
}

func (m *MockMaterialStore) List(ctx context.Context) ([]models.Material, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Material), args.Error(1)
}

func (m *MockMaterialStore) Update(ctx context.Context, material *models.Material) error {
	args := m.Called(ctx, material)
	return args.Error(0)
}

func (m *MockMaterialStore) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAuditStore struct {
	mock.Mock
}

func (m *MockAuditStore) Append(ctx context.Context, entry *models.UserAuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func TestCreateMaterialRecordsAudit(t *testing.T) {
	mockMaterials := new(MockMaterialStore)
	mockAudit := new(MockAuditStore)

	mockMaterials.On("Create", mock.Anything, mock.AnythingOfType("*models.Material")).Return(nil)
	mockAudit.On("Append", mock.Anything, mock.MatchedBy(func(e *models.UserAuditLog) bool {
		return e.Action == models.AuditActionCreate && e.EntityType == "material"
	})).Return(nil)

	service := &MasterDataService{
		materialRepo: mockMaterials,
		audit:        mockAudit,
	}

	material := &models.Material{Name: "Dust", Unit: "Ton"}
	err := service.CreateMaterial(context.Background(), Actor{}, material)

	require.NoError(t, err)
	mockMaterials.AssertExpectations(t)
	mockAudit.AssertExpectations(t)
}

func TestListMaterialsWithoutCache(t *testing.T) {
	mockMaterials := new(MockMaterialStore)
	mockMaterials.On("List", mock.Anything).Return([]models.Material{
		{Name: "Dust"},
		{Name: "GSB"},
	}, nil)

	// nil cache handle means caching is disabled
	service := &MasterDataService{materialRepo: mockMaterials}

	materials, err := service.ListMaterials(context.Background())
	require.NoError(t, err)
	require.Len(t, materials, 2)
	mockMaterials.AssertExpectations(t)
}

func TestAuditFailureDoesNotFailMutation(t *testing.T) {
	mockMaterials := new(MockMaterialStore)
	mockAudit := new(MockAuditStore)

	mockMaterials.On("Delete", mock.Anything, uint(4)).Return(nil)
	mockAudit.On("Append", mock.Anything, mock.Anything).Return(assertionError{})

	service := &MasterDataService{
		materialRepo: mockMaterials,
		audit:        mockAudit,
	}

	// the delete succeeds even though the audit write failed
	require.NoError(t, service.DeleteMaterial(context.Background(), Actor{}, 4))
	mockMaterials.AssertExpectations(t)
	mockAudit.AssertExpectations(t)
}

type assertionError struct{}

func (assertionError) Error() string { return "audit store unavailable" }
