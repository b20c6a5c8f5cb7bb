package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"example.com/backstage/services/crusher/internal/models"
)

type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) List(ctx context.Context) ([]models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserStore) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) TouchLogin(ctx context.Context, id uint, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func TestCreateUserDefaultsRole(t *testing.T) {
	mockUsers := new(MockUserStore)
	mockAudit := new(MockAuditStore)

	mockUsers.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Role == models.UserRoleStaff
	})).Return(nil)
	mockAudit.On("Append", mock.Anything, mock.Anything).Return(nil)

	service := &UserService{userRepo: mockUsers, audit: mockAudit}

	require.NoError(t, service.CreateUser(context.Background(), Actor{}, &models.User{
		Email: "ops@example.com",
	}))
	mockUsers.AssertExpectations(t)
}

func TestCreateUserRequiresEmail(t *testing.T) {
	service := &UserService{}

	err := service.CreateUser(context.Background(), Actor{}, &models.User{})
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateUserDefaultsEmptyRole(t *testing.T) {
	mockUsers := new(MockUserStore)
	mockAudit := new(MockAuditStore)

	// an update that never touched the role keeps the staff default
	// instead of being rejected
	mockUsers.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Role == models.UserRoleStaff
	})).Return(nil)
	mockAudit.On("Append", mock.Anything, mock.Anything).Return(nil)

	service := &UserService{userRepo: mockUsers, audit: mockAudit}

	require.NoError(t, service.UpdateUser(context.Background(), Actor{}, &models.User{
		Model: models.Model{ID: 4},
		Email: "ops@example.com",
	}))
	mockUsers.AssertExpectations(t)
}

func TestUpdateUserRejectsUnknownRole(t *testing.T) {
	service := &UserService{}

	err := service.UpdateUser(context.Background(), Actor{}, &models.User{
		Model: models.Model{ID: 4},
		Role:  "OWNER",
	})
	require.ErrorIs(t, err, ErrValidation)
}

func TestRecordLogin(t *testing.T) {
	mockUsers := new(MockUserStore)
	mockAudit := new(MockAuditStore)

	at := time.Now()
	mockUsers.On("TouchLogin", mock.Anything, uint(4), at).Return(nil)
	mockAudit.On("Append", mock.Anything, mock.MatchedBy(func(e *models.UserAuditLog) bool {
		return e.Action == models.AuditActionLogin && e.EntityType == "user"
	})).Return(nil)

	service := &UserService{userRepo: mockUsers, audit: mockAudit}

	require.NoError(t, service.RecordLogin(context.Background(), Actor{}, 4, at))
	mockUsers.AssertExpectations(t)
	mockAudit.AssertExpectations(t)
}
