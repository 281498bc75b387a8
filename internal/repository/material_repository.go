package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"consigne/internal/model"
)

// MaterialQuery mirrors UserQuery for the materials listing.
type MaterialQuery struct {
	Contains string
	Offset   int
	Limit    int
	SortBy   string
	SortDesc bool
}

var materialSortColumns = map[string]string{
	"name":       "name",
	"created_at": "created_at",
}

func (q MaterialQuery) orderClause() string {
	col, ok := materialSortColumns[strings.ToLower(q.SortBy)]
	if !ok {
		col = "name"
	}
	if q.SortDesc {
		return col + " DESC"
	}
	return col + " ASC"
}

// MaterialRepository defines material persistence operations.
type MaterialRepository interface {
	Create(ctx context.Context, material *model.Material) error
	Save(ctx context.Context, material *model.Material) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Material, error)
	Search(ctx context.Context, q MaterialQuery) ([]model.Material, error)
	ListAll(ctx context.Context) ([]model.Material, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type materialRepository struct {
	db *gorm.DB
}

// NewMaterialRepository builds a GORM-backed repository.
func NewMaterialRepository(db *gorm.DB) MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) Create(ctx context.Context, material *model.Material) error {
	return r.db.WithContext(ctx).Create(material).Error
}

func (r *materialRepository) Save(ctx context.Context, material *model.Material) error {
	return r.db.WithContext(ctx).Save(material).Error
}

func (r *materialRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Material, error) {
	var material model.Material
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&material).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *materialRepository) Search(ctx context.Context, q MaterialQuery) ([]model.Material, error) {
	var materials []model.Material
	err := r.db.WithContext(ctx).
		Where("name LIKE ?", "%"+q.Contains+"%").
		Order(q.orderClause()).
		Offset(q.Offset).Limit(q.Limit).
		Find(&materials).Error
	if err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *materialRepository) ListAll(ctx context.Context) ([]model.Material, error) {
	var materials []model.Material
	if err := r.db.WithContext(ctx).Find(&materials).Error; err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *materialRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Material{})
	return res.RowsAffected, res.Error
}

func (r *materialRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Material{}).Count(&count).Error
	return count, err
}
