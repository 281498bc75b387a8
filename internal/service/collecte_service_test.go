package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"consigne/internal/errors"
	"consigne/internal/model"
	"consigne/internal/repository"
)

func TestCollecteService_ReportStatus(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name          string
		status        model.CollecteStatus
		setupMock     func(*MockUserRepository)
		expectedError error
		expectSave    bool
	}{
		{
			name:   "raise from empty to almost full",
			status: model.CollecteAlmostFull,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(&model.User{
					ID:             userID,
					CollectePoint:  true,
					CollecteStatus: model.CollecteEmpty,
				}, nil)
				m.On("Save", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectSave: true,
		},
		{
			name:   "raise straight from empty to full",
			status: model.CollecteFull,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(&model.User{
					ID:             userID,
					CollectePoint:  true,
					CollecteStatus: model.CollecteEmpty,
				}, nil)
				m.On("Save", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectSave: true,
		},
		{
			name:   "same level is a no-op",
			status: model.CollecteFull,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(&model.User{
					ID:             userID,
					CollectePoint:  true,
					CollecteStatus: model.CollecteFull,
				}, nil)
			},
		},
		{
			name:   "lowering the level is rejected",
			status: model.CollecteAlmostFull,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(&model.User{
					ID:             userID,
					CollectePoint:  true,
					CollecteStatus: model.CollecteFull,
				}, nil)
			},
			expectedError: errors.ErrCollecteStatusDecrease,
		},
		{
			name:   "not a collection point",
			status: model.CollecteFull,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(&model.User{
					ID:            userID,
					CollectePoint: false,
				}, nil)
			},
			expectedError: errors.ErrNotCollectePoint,
		},
		{
			name:   "unknown user",
			status: model.CollecteFull,
			setupMock: func(m *MockUserRepository) {
				m.On("FindByID", mock.Anything, userID).Return(nil, nil)
			},
			expectedError: errors.ErrUserNotFound,
		},
		{
			name:          "unknown status value",
			status:        model.CollecteStatus("OVERFLOWING"),
			setupMock:     func(m *MockUserRepository) {},
			expectedError: errors.ErrInvalidCollecteStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewCollecteService(mockRepo)
			user, err := service.ReportStatus(context.Background(), userID, tt.status)

			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.status, user.CollecteStatus)
			}
			if !tt.expectSave {
				mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCollecteService_ResetAfterPassage(t *testing.T) {
	userID := uuid.New()

	t.Run("full point goes back to empty", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{
			ID:             userID,
			CollectePoint:  true,
			CollecteStatus: model.CollecteFull,
		}, nil)
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		service := NewCollecteService(mockRepo)
		user, err := service.ResetAfterPassage(context.Background(), userID)

		assert.NoError(t, err)
		assert.Equal(t, model.CollecteEmpty, user.CollecteStatus)
		mockRepo.AssertExpectations(t)
	})

	t.Run("not a collection point", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)

		service := NewCollecteService(mockRepo)
		user, err := service.ResetAfterPassage(context.Background(), userID)

		assert.Equal(t, errors.ErrNotCollectePoint, err)
		assert.Nil(t, user)
	})
}

func TestCollecteService_ListAwaitingPassage(t *testing.T) {
	mockRepo := new(MockUserRepository)
	waiting := []model.User{
		{Username: "depot-full", CollectePoint: true, CollecteStatus: model.CollecteFull},
		{Username: "depot-almost", CollectePoint: true, CollecteStatus: model.CollecteAlmostFull},
	}
	mockRepo.On("SearchAwaitingPassage", mock.Anything, mock.AnythingOfType("repository.UserQuery")).Return(waiting, nil)

	service := NewCollecteService(mockRepo)
	users, err := service.ListAwaitingPassage(context.Background(), repository.UserQuery{Limit: 25})

	assert.NoError(t, err)
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.True(t, u.AwaitingPassage())
	}
}
