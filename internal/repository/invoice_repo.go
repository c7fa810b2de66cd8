package repository

import (
	"context"

	"flowbit/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceListFilter narrows the paginated invoice listing.
type InvoiceListFilter struct {
	Query  string // partial match on invoice number, vendor name, customer name
	Status string
	Page   int
	Limit  int
}

type InvoiceRepository interface {
	// CreateAggregate persists the invoice header together with its line
	// items, payments, and documents.
	CreateAggregate(ctx context.Context, invoice *model.Invoice) error
	FindByExternalID(ctx context.Context, externalID string) (*model.Invoice, error)
	DeleteAggregate(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter InvoiceListFilter) ([]model.Invoice, int64, error)
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) CreateAggregate(ctx context.Context, invoice *model.Invoice) error {
	return GetDB(ctx, r.db).Create(invoice).Error
}

func (r *invoiceRepository) FindByExternalID(ctx context.Context, externalID string) (*model.Invoice, error) {
	var invoice model.Invoice
	if err := GetDB(ctx, r.db).First(&invoice, "external_id = ?", externalID).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) DeleteAggregate(ctx context.Context, id uuid.UUID) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("invoice_id = ?", id).Delete(&model.LineItem{}).Error; err != nil {
		return err
	}
	if err := db.Where("invoice_id = ?", id).Delete(&model.Payment{}).Error; err != nil {
		return err
	}
	if err := db.Where("invoice_id = ?", id).Delete(&model.Document{}).Error; err != nil {
		return err
	}
	return db.Where("id = ?", id).Delete(&model.Invoice{}).Error
}

func (r *invoiceRepository) List(ctx context.Context, filter InvoiceListFilter) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64

	db := GetDB(ctx, r.db)

	build := func() *gorm.DB {
		query := db.Model(&model.Invoice{}).
			Joins("LEFT JOIN vendors ON vendors.id = invoices.vendor_id").
			Joins("LEFT JOIN customers ON customers.id = invoices.customer_id")
		if filter.Status != "" {
			query = query.Where("invoices.status = ?", filter.Status)
		}
		if filter.Query != "" {
			like := "%" + filter.Query + "%"
			query = query.Where("invoices.invoice_number ILIKE ? OR vendors.name ILIKE ? OR customers.name ILIKE ?",
				like, like, like)
		}
		return query
	}

	if err := build().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := build().
		Select("invoices.*").
		Preload("Vendor").Preload("Customer").
		Order("invoices.invoice_date DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&invoices).Error; err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}
