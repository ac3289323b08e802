package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultServiceDuration applies when a service has no usable duration.
const DefaultServiceDuration = 30 * time.Minute

// Service is a bookable clinic service. DurationMinutes drives the length of every
// booking interval attached to it.
type Service struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name"`
	Description     string          `gorm:"type:text" json:"description,omitempty"`
	DurationMinutes *int            `json:"duration_minutes"`
	Price           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Service) TableName() string {
	return "services"
}

// Duration returns the service length, falling back to def for a null or
// non-positive duration.
func (s *Service) Duration(def time.Duration) time.Duration {
	if s == nil || s.DurationMinutes == nil || *s.DurationMinutes <= 0 {
		return def
	}
	return time.Duration(*s.DurationMinutes) * time.Minute
}
