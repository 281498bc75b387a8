package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"consigne/internal/errors"
	"consigne/internal/model"
	"consigne/internal/repository"
)

// BottleService manages reusable container formats.
type BottleService interface {
	CreateBottle(ctx context.Context, name string, capacityCl int, deposit decimal.Decimal, materialID uuid.UUID) (*model.Bottle, error)
	UpdateBottle(ctx context.Context, id uuid.UUID, name *string, capacityCl *int, deposit *decimal.Decimal) (*model.Bottle, error)
	DeleteBottle(ctx context.Context, id uuid.UUID) (int64, error)
	GetBottle(ctx context.Context, id uuid.UUID) (*model.Bottle, error)
	ListBottles(ctx context.Context, offset, limit int) ([]model.Bottle, error)
	CountBottles(ctx context.Context) (int64, error)
}

type bottleService struct {
	repo         repository.BottleRepository
	materialRepo repository.MaterialRepository
}

// NewBottleService builds a BottleService.
func NewBottleService(repo repository.BottleRepository, materialRepo repository.MaterialRepository) BottleService {
	return &bottleService{repo: repo, materialRepo: materialRepo}
}

func (s *bottleService) CreateBottle(ctx context.Context, name string, capacityCl int, deposit decimal.Decimal, materialID uuid.UUID) (*model.Bottle, error) {
	material, err := s.materialRepo.FindByID(ctx, materialID)
	if err != nil {
		return nil, fmt.Errorf("find material: %w", err)
	}
	if material == nil {
		return nil, errors.ErrMaterialNotFound
	}

	bottle := &model.Bottle{
		Name:       name,
		CapacityCl: capacityCl,
		Deposit:    deposit,
		MaterialID: materialID,
	}
	if err := s.repo.Create(ctx, bottle); err != nil {
		return nil, fmt.Errorf("create bottle: %w", err)
	}
	return bottle, nil
}

func (s *bottleService) UpdateBottle(ctx context.Context, id uuid.UUID, name *string, capacityCl *int, deposit *decimal.Decimal) (*model.Bottle, error) {
	bottle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find bottle: %w", err)
	}
	if bottle == nil {
		return nil, errors.ErrBottleNotFound
	}

	if name != nil {
		bottle.Name = *name
	}
	if capacityCl != nil {
		bottle.CapacityCl = *capacityCl
	}
	if deposit != nil {
		bottle.Deposit = *deposit
	}

	if err := s.repo.Save(ctx, bottle); err != nil {
		return nil, fmt.Errorf("save bottle: %w", err)
	}
	return bottle, nil
}

func (s *bottleService) DeleteBottle(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.repo.Delete(ctx, id)
}

func (s *bottleService) GetBottle(ctx context.Context, id uuid.UUID) (*model.Bottle, error) {
	bottle, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bottle == nil {
		return nil, errors.ErrBottleNotFound
	}
	return bottle, nil
}

func (s *bottleService) ListBottles(ctx context.Context, offset, limit int) ([]model.Bottle, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *bottleService) CountBottles(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
