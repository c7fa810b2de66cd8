package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer mirrors Vendor's dedup-by-ExternalID contract. Invoices may have
// no customer at all.
type Customer struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ExternalID string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"external_id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Email      *string   `gorm:"type:varchar(255)" json:"email"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
