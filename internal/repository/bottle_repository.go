package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"consigne/internal/model"
)

// BottleRepository defines bottle persistence operations.
type BottleRepository interface {
	Create(ctx context.Context, bottle *model.Bottle) error
	Save(ctx context.Context, bottle *model.Bottle) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Bottle, error)
	List(ctx context.Context, offset, limit int) ([]model.Bottle, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type bottleRepository struct {
	db *gorm.DB
}

// NewBottleRepository builds a GORM-backed repository.
func NewBottleRepository(db *gorm.DB) BottleRepository {
	return &bottleRepository{db: db}
}

func (r *bottleRepository) Create(ctx context.Context, bottle *model.Bottle) error {
	return r.db.WithContext(ctx).Create(bottle).Error
}

func (r *bottleRepository) Save(ctx context.Context, bottle *model.Bottle) error {
	return r.db.WithContext(ctx).Save(bottle).Error
}

func (r *bottleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Bottle, error) {
	var bottle model.Bottle
	err := r.db.WithContext(ctx).Preload("Material").Where("id = ?", id).First(&bottle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bottle, nil
}

func (r *bottleRepository) List(ctx context.Context, offset, limit int) ([]model.Bottle, error) {
	var bottles []model.Bottle
	err := r.db.WithContext(ctx).Preload("Material").
		Order("name ASC").
		Offset(offset).Limit(limit).
		Find(&bottles).Error
	if err != nil {
		return nil, err
	}
	return bottles, nil
}

func (r *bottleRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Bottle{})
	return res.RowsAffected, res.Error
}

func (r *bottleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Bottle{}).Count(&count).Error
	return count, err
}
