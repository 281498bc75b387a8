package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Passage is a scheduled pickup visit to a user's collection point.
// Completing it resets the point's collecte status to EMPTY.
type Passage struct {
	ID          uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID  `json:"user_id" gorm:"type:char(36);not null;index"`
	ScheduledAt time.Time  `json:"scheduled_at" gorm:"not null;index"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Notes       string     `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Passage) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Completed reports whether the pickup already happened.
func (p *Passage) Completed() bool {
	return p.CompletedAt != nil
}
