package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bottle is a reusable container format sold and collected by the business.
type Bottle struct {
	ID         uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Name       string          `json:"name" gorm:"size:255;not null;index"`
	CapacityCl int             `json:"capacity_cl" gorm:"not null"`
	Deposit    decimal.Decimal `json:"deposit" gorm:"type:decimal(10,2);not null;default:0"`
	MaterialID uuid.UUID       `json:"material_id" gorm:"type:char(36);not null;index"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Relations
	Material Material `json:"material,omitempty" gorm:"foreignKey:MaterialID"`
}

// BeforeCreate sets UUID before creating the record.
func (b *Bottle) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
