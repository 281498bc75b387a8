package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Material is a container material (glass, PET, ...) with an optional image
// stored on disk and referenced by file name.
type Material struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null;index"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	ImgMaterial string    `json:"img_material,omitempty" gorm:"size:255"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (m *Material) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
