package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"consigne/internal/errors"
	"consigne/internal/model"
)

// MockPassageRepository is a mock implementation of repository.PassageRepository.
type MockPassageRepository struct {
	mock.Mock
}

func (m *MockPassageRepository) Create(ctx context.Context, passage *model.Passage) error {
	args := m.Called(ctx, passage)
	return args.Error(0)
}

func (m *MockPassageRepository) Save(ctx context.Context, passage *model.Passage) error {
	args := m.Called(ctx, passage)
	return args.Error(0)
}

func (m *MockPassageRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Passage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Passage), args.Error(1)
}

func (m *MockPassageRepository) List(ctx context.Context, offset, limit int, pendingOnly bool) ([]model.Passage, error) {
	args := m.Called(ctx, offset, limit, pendingOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Passage), args.Error(1)
}

func (m *MockPassageRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPassageRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestPassageService_SchedulePassage(t *testing.T) {
	userID := uuid.New()
	when := time.Now().Add(48 * time.Hour)

	t.Run("booked against a collection point", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByID", mock.Anything, userID).Return(&model.User{
			ID:            userID,
			CollectePoint: true,
		}, nil)
		mockPassages := new(MockPassageRepository)
		mockPassages.On("Create", mock.Anything, mock.AnythingOfType("*model.Passage")).Return(nil)

		service := NewPassageService(mockPassages, mockUsers, NewCollecteService(mockUsers))
		passage, err := service.SchedulePassage(context.Background(), userID, when, "porte B")

		assert.NoError(t, err)
		assert.Equal(t, userID, passage.UserID)
		assert.Equal(t, "porte B", passage.Notes)
		assert.Nil(t, passage.CompletedAt)
	})

	t.Run("rejected for a plain account", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByID", mock.Anything, userID).Return(&model.User{ID: userID}, nil)
		mockPassages := new(MockPassageRepository)

		service := NewPassageService(mockPassages, mockUsers, NewCollecteService(mockUsers))
		passage, err := service.SchedulePassage(context.Background(), userID, when, "")

		assert.Equal(t, errors.ErrNotCollectePoint, err)
		assert.Nil(t, passage)
		mockPassages.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestPassageService_CompletePassage(t *testing.T) {
	userID := uuid.New()
	passageID := uuid.New()

	t.Run("completion empties the collection point", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByID", mock.Anything, userID).Return(&model.User{
			ID:             userID,
			CollectePoint:  true,
			CollecteStatus: model.CollecteFull,
		}, nil)
		var savedUser *model.User
		mockUsers.On("Save", mock.Anything, mock.AnythingOfType("*model.User")).Run(func(args mock.Arguments) {
			savedUser = args.Get(1).(*model.User)
		}).Return(nil)

		mockPassages := new(MockPassageRepository)
		mockPassages.On("FindByID", mock.Anything, passageID).Return(&model.Passage{
			ID:     passageID,
			UserID: userID,
		}, nil)
		mockPassages.On("Save", mock.Anything, mock.AnythingOfType("*model.Passage")).Return(nil)

		service := NewPassageService(mockPassages, mockUsers, NewCollecteService(mockUsers))
		passage, err := service.CompletePassage(context.Background(), passageID)

		assert.NoError(t, err)
		assert.NotNil(t, passage.CompletedAt)
		assert.True(t, passage.Completed())
		assert.NotNil(t, savedUser)
		assert.Equal(t, model.CollecteEmpty, savedUser.CollecteStatus)
		mockPassages.AssertExpectations(t)
	})

	t.Run("already completed", func(t *testing.T) {
		done := time.Now().Add(-time.Hour)
		mockPassages := new(MockPassageRepository)
		mockPassages.On("FindByID", mock.Anything, passageID).Return(&model.Passage{
			ID:          passageID,
			UserID:      userID,
			CompletedAt: &done,
		}, nil)

		mockUsers := new(MockUserRepository)
		service := NewPassageService(mockPassages, mockUsers, NewCollecteService(mockUsers))
		passage, err := service.CompletePassage(context.Background(), passageID)

		assert.Equal(t, errors.ErrPassageCompleted, err)
		assert.Nil(t, passage)
		mockUsers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown passage", func(t *testing.T) {
		mockPassages := new(MockPassageRepository)
		mockPassages.On("FindByID", mock.Anything, passageID).Return(nil, nil)

		service := NewPassageService(mockPassages, new(MockUserRepository), NewCollecteService(new(MockUserRepository)))
		passage, err := service.CompletePassage(context.Background(), passageID)

		assert.Equal(t, errors.ErrPassageNotFound, err)
		assert.Nil(t, passage)
	})
}
