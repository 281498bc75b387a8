package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role determines which operations a user may perform.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// UserStatus tracks the account activation lifecycle. A user signs up as
// PENDING and becomes ACTIVE once the confirmation mail is acted on; there is
// no path back to PENDING.
type UserStatus string

const (
	StatusPending UserStatus = "PENDING"
	StatusActive  UserStatus = "ACTIVE"
)

// CollecteStatus is the fullness level of a collection point. Only meaningful
// when User.CollectePoint is true.
type CollecteStatus string

const (
	CollecteEmpty      CollecteStatus = "EMPTY"
	CollecteAlmostFull CollecteStatus = "ALMOST_FULL"
	CollecteFull       CollecteStatus = "FULL"
)

// Rank orders fullness levels so the tracker can enforce monotonic reporting.
// Unknown values rank below EMPTY.
func (s CollecteStatus) Rank() int {
	switch s {
	case CollecteEmpty:
		return 1
	case CollecteAlmostFull:
		return 2
	case CollecteFull:
		return 3
	default:
		return 0
	}
}

// Valid reports whether s is one of the defined fullness levels.
func (s CollecteStatus) Valid() bool {
	return s.Rank() > 0
}

// User represents a producer, reseller, consumer or delivery account.
type User struct {
	ID           uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Username     string     `json:"username" gorm:"size:255;not null;index"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Company      string     `json:"company,omitempty" gorm:"size:255"`
	Tel          string     `json:"tel,omitempty" gorm:"size:50"`
	Role         Role       `json:"role" gorm:"type:varchar(20);not null;default:'USER';index"`
	Status       UserStatus `json:"status" gorm:"type:varchar(20);not null;default:'PENDING'"`

	Reseller    bool `json:"reseller" gorm:"default:false"`
	Producer    bool `json:"producer" gorm:"default:false"`
	HeavyTruck  bool `json:"heavy_truck" gorm:"default:false"`
	Stacker     bool `json:"stacker" gorm:"default:false"`
	Forklift    bool `json:"forklift" gorm:"default:false"`
	PalletTruck bool `json:"pallet_truck" gorm:"default:false"`

	CollectePoint  bool           `json:"collecte_point" gorm:"default:false;index"`
	CollecteStatus CollecteStatus `json:"collecte_status,omitempty" gorm:"type:varchar(20);index"`

	DeliverySchedules string `json:"delivery_schedules,omitempty" gorm:"type:text"`
	DeliveryData      string `json:"delivery_data,omitempty" gorm:"type:text"`
	InternalData      string `json:"internal_data,omitempty" gorm:"type:text"`

	AddressID         *uuid.UUID `json:"-" gorm:"type:char(36)"`
	DeliveryAddressID *uuid.UUID `json:"-" gorm:"type:char(36)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations; both addresses are owned exclusively by this user and are
	// removed with it.
	Address         *Address `json:"address,omitempty" gorm:"foreignKey:AddressID"`
	DeliveryAddress *Address `json:"delivery_address,omitempty" gorm:"foreignKey:DeliveryAddressID"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// AwaitingPassage reports whether the user's collection point is full enough
// to be scheduled for a pickup.
func (u *User) AwaitingPassage() bool {
	return u.CollectePoint &&
		(u.CollecteStatus == CollecteAlmostFull || u.CollecteStatus == CollecteFull)
}
