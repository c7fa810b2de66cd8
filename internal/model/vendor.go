package model

import (
	"time"

	"github.com/google/uuid"
)

// Vendor is a supplier deduplicated by ExternalID, either the source's own
// id or a key synthesized from the vendor name. Descriptive fields are
// last-write-wins on re-ingestion; the key never changes.
type Vendor struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ExternalID string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"external_id"`
	Name       string     `gorm:"type:varchar(255);not null" json:"name"`
	TaxID      *string    `gorm:"type:varchar(50)" json:"tax_id"`
	Email      *string    `gorm:"type:varchar(255)" json:"email"`
	Phone      *string    `gorm:"type:varchar(50)" json:"phone"`
	City       *string    `gorm:"type:varchar(100)" json:"city"`
	Country    *string    `gorm:"type:varchar(100)" json:"country"`
	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	Category   *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
