package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity record owned by the authentication collaborator.
// Only the fields the scheduler reads are mapped.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Role      string    `gorm:"type:varchar(20);not null;index" json:"role"`
	IsActive  *bool     `gorm:"default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

// Active reports whether the account is enabled. A missing flag counts as inactive.
func (u *User) Active() bool {
	return u != nil && u.IsActive != nil && *u.IsActive
}
