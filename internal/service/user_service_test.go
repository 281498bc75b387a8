package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"consigne/internal/auth"
	"consigne/internal/errors"
	"consigne/internal/model"
)

func TestUserService_CreateUser(t *testing.T) {
	tests := []struct {
		name          string
		input         CreateUserInput
		setupMock     func(*MockUserRepository)
		expectedError error
		check         func(*testing.T, *model.User)
	}{
		{
			name: "successful creation starts pending",
			input: CreateUserInput{
				Username: "alice",
				Email:    "alice@example.com",
				Password: "password123",
				Role:     model.RoleUser,
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			check: func(t *testing.T, u *model.User) {
				assert.Equal(t, model.StatusPending, u.Status)
				assert.True(t, auth.CheckPassword("password123", u.PasswordHash))
				assert.Empty(t, u.CollecteStatus)
			},
		},
		{
			name: "collection point starts empty",
			input: CreateUserInput{
				Username:      "depot",
				Email:         "depot@example.com",
				Password:      "password123",
				CollectePoint: true,
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "depot@example.com").Return(nil, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			check: func(t *testing.T, u *model.User) {
				assert.Equal(t, model.CollecteEmpty, u.CollecteStatus)
			},
		},
		{
			name: "email already registered",
			input: CreateUserInput{
				Username: "bob",
				Email:    "taken@example.com",
				Password: "password123",
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "taken@example.com").Return(&model.User{Email: "taken@example.com"}, nil)
			},
			expectedError: errors.ErrEmailTaken,
		},
		{
			name: "lost the race on the unique index",
			input: CreateUserInput{
				Username: "carol",
				Email:    "raced@example.com",
				Password: "password123",
			},
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "raced@example.com").Return(nil, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: errors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewUserService(mockRepo, nil)
			user, err := service.CreateUser(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				tt.check(t, user)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestUserService_CreateUser_SavesAddressesFirst(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "addr@example.com").Return(nil, nil)
	mockRepo.On("SaveAddress", mock.Anything, mock.AnythingOfType("*model.Address")).Run(func(args mock.Arguments) {
		addr := args.Get(1).(*model.Address)
		addr.ID = uuid.New()
	}).Return(nil)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	service := NewUserService(mockRepo, nil)
	user, err := service.CreateUser(context.Background(), CreateUserInput{
		Username: "addr",
		Email:    "addr@example.com",
		Password: "password123",
		Address:  &AddressInput{Street: "1 rue de la Paix", City: "Paris", ZipCode: "75002", Country: "FR"},
	})

	assert.NoError(t, err)
	assert.NotNil(t, user.AddressID)
	assert.Equal(t, "Paris", user.Address.City)
	assert.Nil(t, user.DeliveryAddressID)
	mockRepo.AssertExpectations(t)
}

func TestUserService_CreateUser_AddressFailureAborts(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "addr@example.com").Return(nil, nil)
	mockRepo.On("SaveAddress", mock.Anything, mock.AnythingOfType("*model.Address")).Return(assert.AnError)

	service := NewUserService(mockRepo, nil)
	user, err := service.CreateUser(context.Background(), CreateUserInput{
		Username: "addr",
		Email:    "addr@example.com",
		Password: "password123",
		Address:  &AddressInput{Street: "1 rue de la Paix"},
	})

	assert.Error(t, err)
	assert.Nil(t, user)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_UpdateUser(t *testing.T) {
	userID := uuid.New()

	t.Run("unknown user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(nil, nil)

		service := NewUserService(mockRepo, nil)
		user, err := service.UpdateUser(context.Background(), userID, UpdateUserInput{})

		assert.Equal(t, errors.ErrUserNotFound, err)
		assert.Nil(t, user)
	})

	t.Run("partial merge leaves unset fields alone", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{
			ID:       userID,
			Username: "before",
			Email:    "before@example.com",
			Company:  "Consigne SARL",
			Tel:      "0600000000",
			Status:   model.StatusActive,
		}, nil)
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		service := NewUserService(mockRepo, nil)
		newName := "after"
		user, err := service.UpdateUser(context.Background(), userID, UpdateUserInput{Username: &newName})

		assert.NoError(t, err)
		assert.Equal(t, "after", user.Username)
		assert.Equal(t, "before@example.com", user.Email)
		assert.Equal(t, "Consigne SARL", user.Company)
		assert.Equal(t, "0600000000", user.Tel)
		assert.Equal(t, model.StatusActive, user.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("new password is re-hashed", func(t *testing.T) {
		oldHash, _ := auth.HashPassword("old-password")
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{
			ID:           userID,
			PasswordHash: oldHash,
		}, nil)
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		service := NewUserService(mockRepo, nil)
		newPassword := "new-password"
		user, err := service.UpdateUser(context.Background(), userID, UpdateUserInput{Password: &newPassword})

		assert.NoError(t, err)
		assert.NotEqual(t, oldHash, user.PasswordHash)
		assert.NotEqual(t, "new-password", user.PasswordHash)
		assert.True(t, auth.CheckPassword("new-password", user.PasswordHash))
	})

	t.Run("enabling collection point seeds empty status", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		service := NewUserService(mockRepo, nil)
		enabled := true
		user, err := service.UpdateUser(context.Background(), userID, UpdateUserInput{CollectePoint: &enabled})

		assert.NoError(t, err)
		assert.True(t, user.CollectePoint)
		assert.Equal(t, model.CollecteEmpty, user.CollecteStatus)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	userID := uuid.New()

	t.Run("deleting an absent user is a no-op", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(nil, nil)

		service := NewUserService(mockRepo, nil)
		affected, err := service.DeleteUser(context.Background(), userID)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), affected)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("owned addresses go with the user", func(t *testing.T) {
		addressID := uuid.New()
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{
			ID:        userID,
			AddressID: &addressID,
		}, nil)
		mockRepo.On("Delete", mock.Anything, userID).Return(int64(1), nil)
		mockRepo.On("DeleteAddresses", mock.Anything, []uuid.UUID{addressID}).Return(nil)

		service := NewUserService(mockRepo, nil)
		affected, err := service.DeleteUser(context.Background(), userID)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), affected)
		mockRepo.AssertExpectations(t)
	})
}
