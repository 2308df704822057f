package service

import (
	"os"
	"testing"

	"bbq_ordering/internal/domain/user/model"
	"bbq_ordering/internal/pkg/config"
	baseModel "bbq_ordering/pkg/model"
	"bbq_ordering/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	config.GlobalConfig.JWT.Secret = "test-secret"
	config.GlobalConfig.JWT.Expire = 24
	os.Exit(m.Run())
}

// MockUserRepository is a mock of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id uint) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*model.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByPhone(phone string) (*model.User, error) {
	args := m.Called(phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func businessUser(username, password string) *model.User {
	return &model.User{
		BaseModel: baseModel.BaseModel{ID: 1},
		Username:  username,
		Password:  hashPassword(password),
		Role:      model.RoleBusiness,
	}
}

func TestBusinessLogin(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(mockRepo)

		mockRepo.On("GetByUsername", "boss").Return(businessUser("boss", "secret"), nil)

		token, user, err := svc.BusinessLogin("boss", "secret")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, model.RoleBusiness, user.Role)

		claims, err := utils.ParseToken(token)
		assert.NoError(t, err)
		assert.Equal(t, uint(1), claims.UserID)
		assert.Equal(t, model.RoleBusiness, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(mockRepo)

		mockRepo.On("GetByUsername", "boss").Return(businessUser("boss", "secret"), nil)

		_, _, err := svc.BusinessLogin("boss", "wrong")

		assert.ErrorIs(t, err, ErrAuthFailed)
	})

	t.Run("unknown username", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(mockRepo)

		mockRepo.On("GetByUsername", "ghost").Return(nil, gorm.ErrRecordNotFound)

		_, _, err := svc.BusinessLogin("ghost", "secret")

		assert.ErrorIs(t, err, ErrAuthFailed)
	})

	t.Run("customer cannot use business login", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(mockRepo)

		customer := businessUser("alice", "secret")
		customer.Role = model.RoleCustomer
		mockRepo.On("GetByUsername", "alice").Return(customer, nil)

		_, _, err := svc.BusinessLogin("alice", "secret")

		assert.ErrorIs(t, err, ErrAuthFailed)
	})
}

func TestCustomerLogin(t *testing.T) {
	t.Run("registers on first login", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(mockRepo)

		mockRepo.On("GetByPhone", "13800138000").Return(nil, gorm.ErrRecordNotFound)
		mockRepo.On("Create", mock.AnythingOfType("*model.User")).Run(func(args mock.Arguments) {
			user := args.Get(0).(*model.User)
			user.ID = 2
			assert.Equal(t, model.RoleCustomer, user.Role)
			assert.NotEmpty(t, user.Username)
		}).Return(nil)

		token, user, err := svc.CustomerLogin("13800138000", "secret")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, uint(2), user.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("existing customer with wrong password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		svc := NewUserService(mockRepo)

		existing := &model.User{
			BaseModel: baseModel.BaseModel{ID: 2},
			Username:  "user_1",
			Password:  hashPassword("secret"),
			Role:      model.RoleCustomer,
			Phone:     "13800138000",
		}
		mockRepo.On("GetByPhone", "13800138000").Return(existing, nil)

		_, _, err := svc.CustomerLogin("13800138000", "wrong")

		assert.ErrorIs(t, err, ErrAuthFailed)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything)
	})
}

func TestGetProfile(t *testing.T) {
	mockRepo := new(MockUserRepository)
	svc := NewUserService(mockRepo)

	mockRepo.On("GetByID", uint(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetProfile(404)

	assert.ErrorIs(t, err, ErrUserNotFound)
}
