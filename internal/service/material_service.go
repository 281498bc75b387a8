package service

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"

	"consigne/internal/errors"
	"consigne/internal/model"
	"consigne/internal/repository"
	"consigne/internal/storage"
)

// MaterialService manages container materials and their images.
type MaterialService interface {
	CreateMaterial(ctx context.Context, name, description string, image *multipart.FileHeader) (*model.Material, error)
	UpdateMaterial(ctx context.Context, id uuid.UUID, name, description *string, image *multipart.FileHeader) (*model.Material, error)
	DeleteMaterial(ctx context.Context, id uuid.UUID) (int64, error)
	GetMaterial(ctx context.Context, id uuid.UUID) (*model.Material, error)
	SearchMaterials(ctx context.Context, q repository.MaterialQuery) ([]model.Material, error)
	ExportMaterials(ctx context.Context) ([]model.Material, error)
	CountMaterials(ctx context.Context) (int64, error)
	ImagePath(name string) (string, error)
}

type materialService struct {
	repo  repository.MaterialRepository
	files *storage.FileStore
}

// NewMaterialService builds a MaterialService.
func NewMaterialService(repo repository.MaterialRepository, files *storage.FileStore) MaterialService {
	return &materialService{repo: repo, files: files}
}

func (s *materialService) CreateMaterial(ctx context.Context, name, description string, image *multipart.FileHeader) (*model.Material, error) {
	material := &model.Material{Name: name, Description: description}
	if image != nil {
		fileName, err := s.files.Save(image)
		if err != nil {
			return nil, fmt.Errorf("save image: %w", err)
		}
		material.ImgMaterial = fileName
	}
	if err := s.repo.Create(ctx, material); err != nil {
		return nil, fmt.Errorf("create material: %w", err)
	}
	return material, nil
}

func (s *materialService) UpdateMaterial(ctx context.Context, id uuid.UUID, name, description *string, image *multipart.FileHeader) (*model.Material, error) {
	material, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find material: %w", err)
	}
	if material == nil {
		return nil, errors.ErrMaterialNotFound
	}

	if name != nil {
		material.Name = *name
	}
	if description != nil {
		material.Description = *description
	}
	if image != nil {
		fileName, err := s.files.Save(image)
		if err != nil {
			return nil, fmt.Errorf("save image: %w", err)
		}
		old := material.ImgMaterial
		material.ImgMaterial = fileName
		if old != "" {
			_ = s.files.Remove(old)
		}
	}

	if err := s.repo.Save(ctx, material); err != nil {
		return nil, fmt.Errorf("save material: %w", err)
	}
	return material, nil
}

func (s *materialService) DeleteMaterial(ctx context.Context, id uuid.UUID) (int64, error) {
	material, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("find material: %w", err)
	}
	if material == nil {
		return 0, nil
	}
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete material: %w", err)
	}
	if material.ImgMaterial != "" {
		_ = s.files.Remove(material.ImgMaterial)
	}
	return affected, nil
}

func (s *materialService) GetMaterial(ctx context.Context, id uuid.UUID) (*model.Material, error) {
	material, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, errors.ErrMaterialNotFound
	}
	return material, nil
}

func (s *materialService) SearchMaterials(ctx context.Context, q repository.MaterialQuery) ([]model.Material, error) {
	return s.repo.Search(ctx, q)
}

func (s *materialService) ExportMaterials(ctx context.Context) ([]model.Material, error) {
	return s.repo.ListAll(ctx)
}

func (s *materialService) CountMaterials(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *materialService) ImagePath(name string) (string, error) {
	return s.files.Path(name)
}
