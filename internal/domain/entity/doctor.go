package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Doctor is the directory entry for a practitioner. Capabilities and shifts live in
// their own tables so they can be edited independently.
type Doctor struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID       *uuid.UUID      `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	Specialty    string          `gorm:"type:varchar(100);not null;index" json:"specialty"`
	Degree       string          `gorm:"type:varchar(100)" json:"degree,omitempty"`
	Bio          string          `gorm:"type:text" json:"bio,omitempty"`
	PricePerSlot decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price_per_slot"`
	IsAvailable  *bool           `gorm:"default:true;index" json:"is_available"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Services []Service `gorm:"many2many:doctor_services;" json:"services,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// Listed reports the directory-level availability flag.
func (d *Doctor) Listed() bool {
	return d.IsAvailable != nil && *d.IsAvailable
}

// IsEligible holds when both the directory flag and the linked account are active.
func (d *Doctor) IsEligible() bool {
	return d.Listed() && d.User.Active()
}

// Name returns the display name from the linked account.
func (d *Doctor) Name() string {
	if d.User == nil {
		return ""
	}
	return d.User.Name
}

// ServiceIDs lists the capability links that were preloaded.
func (d *Doctor) ServiceIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(d.Services))
	for i, s := range d.Services {
		ids[i] = s.ID
	}
	return ids
}
