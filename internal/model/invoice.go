package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus enum constants
const (
	StatusPending       = "PENDING"
	StatusApproved      = "APPROVED"
	StatusPaid          = "PAID"
	StatusPartiallyPaid = "PARTIALLY_PAID"
	StatusOverdue       = "OVERDUE"
	StatusCancelled     = "CANCELLED"
)

// DefaultCurrency is applied when a source record carries no currency.
const DefaultCurrency = "INR"

// ValidStatus reports whether s is one of the closed invoice status set.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusPaid, StatusPartiallyPaid, StatusOverdue, StatusCancelled:
		return true
	}
	return false
}

// Invoice is the spend aggregate: one header row plus its line items,
// payments, and documents, which are created and deleted with it.
type Invoice struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ExternalID    *string         `gorm:"type:varchar(100);index" json:"external_id"` // passthrough source id, nullable
	InvoiceNumber string          `gorm:"type:varchar(100);not null;index" json:"invoice_number"`
	VendorID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"vendor_id"`
	Vendor        *Vendor         `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	CustomerID    *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id"`
	Customer      *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	CategoryID    *uuid.UUID      `gorm:"type:uuid;index" json:"category_id"`
	Category      *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	InvoiceDate   time.Time       `gorm:"not null;index" json:"invoice_date"`
	DueDate       *time.Time      `gorm:"index" json:"due_date"`
	Status        string          `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	Currency      string          `gorm:"type:varchar(10);not null;default:'INR'" json:"currency"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"subtotal"`
	Tax           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"tax"`
	Discount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"discount"`
	Total         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total"`
	PaidAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"paid_amount"`
	LineItems     []LineItem      `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"line_items"`
	Payments      []Payment       `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"payments"`
	Documents     []Document      `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"documents"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// LineItem is a single invoice line. Total defaults to quantity * unit price
// when the source omits it.
type LineItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Quantity    int             `gorm:"not null;default:1" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"unit_price"`
	Total       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"total"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Payment is a recorded payment against an invoice.
type Payment struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	PaymentDate time.Time       `gorm:"not null" json:"payment_date"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"amount"`
	Method      *string         `gorm:"type:varchar(50)" json:"method"`
	Reference   *string         `gorm:"type:varchar(100)" json:"reference"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Document is an attachment linked to an invoice. URL is required; a source
// fragment without one is skipped during ingestion.
type Document struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InvoiceID uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	URL       string    `gorm:"type:text;not null" json:"url"`
	Kind      *string   `gorm:"type:varchar(50)" json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}
