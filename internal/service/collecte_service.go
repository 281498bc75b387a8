package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"consigne/internal/errors"
	"consigne/internal/model"
	"consigne/internal/repository"
)

// CollecteService tracks collection-point fullness and drives the
// passage-scheduling view. Status moves EMPTY → ALMOST_FULL → FULL through
// external reports and only a completed passage resets it.
type CollecteService interface {
	ListAwaitingPassage(ctx context.Context, q repository.UserQuery) ([]model.User, error)
	CountAwaitingPassage(ctx context.Context) (int64, error)
	ReportStatus(ctx context.Context, userID uuid.UUID, status model.CollecteStatus) (*model.User, error)
	ResetAfterPassage(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

type collecteService struct {
	repo repository.UserRepository
}

// NewCollecteService builds the collection-readiness tracker on top of the
// user registry.
func NewCollecteService(repo repository.UserRepository) CollecteService {
	return &collecteService{repo: repo}
}

// ListAwaitingPassage returns the collection points full enough to route a
// truck to. The repository filter guarantees collecte_point = false entries
// never show up, whatever their stale status says.
func (s *collecteService) ListAwaitingPassage(ctx context.Context, q repository.UserQuery) ([]model.User, error) {
	return s.repo.SearchAwaitingPassage(ctx, q)
}

func (s *collecteService) CountAwaitingPassage(ctx context.Context) (int64, error) {
	return s.repo.CountAwaitingPassage(ctx)
}

// ReportStatus records a fullness report for a collection point. Reports may
// only hold or raise the level; lowering it is reserved for ResetAfterPassage.
func (s *collecteService) ReportStatus(ctx context.Context, userID uuid.UUID, status model.CollecteStatus) (*model.User, error) {
	if !status.Valid() {
		return nil, errors.ErrInvalidCollecteStatus
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	if !user.CollectePoint {
		return nil, errors.ErrNotCollectePoint
	}

	if status.Rank() < user.CollecteStatus.Rank() {
		return nil, errors.ErrCollecteStatusDecrease
	}
	if status == user.CollecteStatus {
		return user, nil
	}

	user.CollecteStatus = status
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

// ResetAfterPassage empties the collection point once its pickup completed.
func (s *collecteService) ResetAfterPassage(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	if !user.CollectePoint {
		return nil, errors.ErrNotCollectePoint
	}

	user.CollecteStatus = model.CollecteEmpty
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}
