package model

import (
	"time"

	"github.com/google/uuid"
)

// Category is a spend classification keyed by its name. Created lazily
// during ingestion and never updated once created.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
