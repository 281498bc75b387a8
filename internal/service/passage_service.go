package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"consigne/internal/errors"
	"consigne/internal/model"
	"consigne/internal/repository"
)

// PassageService schedules and completes pickup visits. Completing a passage
// is the tracker's single reset path back to EMPTY.
type PassageService interface {
	SchedulePassage(ctx context.Context, userID uuid.UUID, scheduledAt time.Time, notes string) (*model.Passage, error)
	CompletePassage(ctx context.Context, id uuid.UUID) (*model.Passage, error)
	GetPassage(ctx context.Context, id uuid.UUID) (*model.Passage, error)
	ListPassages(ctx context.Context, offset, limit int, pendingOnly bool) ([]model.Passage, error)
	DeletePassage(ctx context.Context, id uuid.UUID) (int64, error)
	CountPassages(ctx context.Context) (int64, error)
}

type passageService struct {
	repo     repository.PassageRepository
	userRepo repository.UserRepository
	collecte CollecteService
}

// NewPassageService builds a PassageService.
func NewPassageService(repo repository.PassageRepository, userRepo repository.UserRepository, collecte CollecteService) PassageService {
	return &passageService{repo: repo, userRepo: userRepo, collecte: collecte}
}

// SchedulePassage books a pickup at a collection point.
func (s *passageService) SchedulePassage(ctx context.Context, userID uuid.UUID, scheduledAt time.Time, notes string) (*model.Passage, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	if !user.CollectePoint {
		return nil, errors.ErrNotCollectePoint
	}

	passage := &model.Passage{
		UserID:      userID,
		ScheduledAt: scheduledAt,
		Notes:       notes,
	}
	if err := s.repo.Create(ctx, passage); err != nil {
		return nil, fmt.Errorf("create passage: %w", err)
	}
	return passage, nil
}

// CompletePassage stamps the completion time and empties the collection
// point so it leaves the awaiting-pickup view.
func (s *passageService) CompletePassage(ctx context.Context, id uuid.UUID) (*model.Passage, error) {
	passage, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find passage: %w", err)
	}
	if passage == nil {
		return nil, errors.ErrPassageNotFound
	}
	if passage.Completed() {
		return nil, errors.ErrPassageCompleted
	}

	now := time.Now()
	passage.CompletedAt = &now
	if err := s.repo.Save(ctx, passage); err != nil {
		return nil, fmt.Errorf("save passage: %w", err)
	}

	if _, err := s.collecte.ResetAfterPassage(ctx, passage.UserID); err != nil {
		return nil, fmt.Errorf("reset collecte status: %w", err)
	}
	return passage, nil
}

func (s *passageService) GetPassage(ctx context.Context, id uuid.UUID) (*model.Passage, error) {
	passage, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if passage == nil {
		return nil, errors.ErrPassageNotFound
	}
	return passage, nil
}

func (s *passageService) ListPassages(ctx context.Context, offset, limit int, pendingOnly bool) ([]model.Passage, error) {
	return s.repo.List(ctx, offset, limit, pendingOnly)
}

func (s *passageService) DeletePassage(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.repo.Delete(ctx, id)
}

func (s *passageService) CountPassages(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
