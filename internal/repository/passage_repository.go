package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"consigne/internal/model"
)

// PassageRepository defines passage persistence operations.
type PassageRepository interface {
	Create(ctx context.Context, passage *model.Passage) error
	Save(ctx context.Context, passage *model.Passage) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Passage, error)
	List(ctx context.Context, offset, limit int, pendingOnly bool) ([]model.Passage, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type passageRepository struct {
	db *gorm.DB
}

// NewPassageRepository builds a GORM-backed repository.
func NewPassageRepository(db *gorm.DB) PassageRepository {
	return &passageRepository{db: db}
}

func (r *passageRepository) Create(ctx context.Context, passage *model.Passage) error {
	return r.db.WithContext(ctx).Create(passage).Error
}

func (r *passageRepository) Save(ctx context.Context, passage *model.Passage) error {
	return r.db.WithContext(ctx).Save(passage).Error
}

func (r *passageRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Passage, error) {
	var passage model.Passage
	err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&passage).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &passage, nil
}

func (r *passageRepository) List(ctx context.Context, offset, limit int, pendingOnly bool) ([]model.Passage, error) {
	var passages []model.Passage
	tx := r.db.WithContext(ctx).Preload("User").Order("scheduled_at ASC")
	if pendingOnly {
		tx = tx.Where("completed_at IS NULL")
	}
	if err := tx.Offset(offset).Limit(limit).Find(&passages).Error; err != nil {
		return nil, err
	}
	return passages, nil
}

func (r *passageRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Passage{})
	return res.RowsAffected, res.Error
}

func (r *passageRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Passage{}).Count(&count).Error
	return count, err
}
