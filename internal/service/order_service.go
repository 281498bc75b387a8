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

// OrderService manages bottle orders. The total is computed from the bottle
// deposit, never trusted from the request.
type OrderService interface {
	CreateOrder(ctx context.Context, userID, bottleID uuid.UUID, quantity int) (*model.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error)
	ListOrders(ctx context.Context, offset, limit int) ([]model.Order, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	DeleteOrder(ctx context.Context, id uuid.UUID) (int64, error)
	CountOrders(ctx context.Context) (int64, error)
}

type orderService struct {
	repo       repository.OrderRepository
	bottleRepo repository.BottleRepository
	userRepo   repository.UserRepository
}

// NewOrderService builds an OrderService.
func NewOrderService(repo repository.OrderRepository, bottleRepo repository.BottleRepository, userRepo repository.UserRepository) OrderService {
	return &orderService{repo: repo, bottleRepo: bottleRepo, userRepo: userRepo}
}

func (s *orderService) CreateOrder(ctx context.Context, userID, bottleID uuid.UUID, quantity int) (*model.Order, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}

	bottle, err := s.bottleRepo.FindByID(ctx, bottleID)
	if err != nil {
		return nil, fmt.Errorf("find bottle: %w", err)
	}
	if bottle == nil {
		return nil, errors.ErrBottleNotFound
	}

	order := &model.Order{
		UserID:   userID,
		BottleID: bottleID,
		Quantity: quantity,
		Total:    bottle.Deposit.Mul(decimal.NewFromInt(int64(quantity))),
		Status:   model.OrderStatusPending,
	}
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order == nil {
		return nil, errors.ErrOrderNotFound
	}

	order.Status = status
	if err := s.repo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.ErrOrderNotFound
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, offset, limit int) ([]model.Order, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *orderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *orderService) DeleteOrder(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.repo.Delete(ctx, id)
}

func (s *orderService) CountOrders(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
