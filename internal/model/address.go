package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address is a postal or delivery location owned by exactly one user slot
// (billing or delivery). It has no lifecycle of its own.
type Address struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Street    string    `json:"street" gorm:"size:255"`
	City      string    `json:"city" gorm:"size:255"`
	ZipCode   string    `json:"zip_code" gorm:"size:20"`
	Country   string    `json:"country" gorm:"size:100"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (a *Address) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
