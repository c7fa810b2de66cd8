package service

import (
	"context"
	"fmt"
	"time"

	"flowbit/internal/model"
	"flowbit/internal/repository"
)

// --- DTOs ---

type InvoiceFilter struct {
	Query  string // partial match on invoice number, vendor name, customer name
	Status string // one of the invoice statuses, or empty for all
	Page   int
	Limit  int
}

type InvoiceRow struct {
	ID            string  `json:"id"`
	InvoiceNumber string  `json:"invoice_number"`
	Vendor        string  `json:"vendor"`
	Customer      *string `json:"customer"`
	InvoiceDate   string  `json:"invoice_date"`
	DueDate       *string `json:"due_date"`
	Total         string  `json:"total"`
	Status        string  `json:"status"`
	Currency      string  `json:"currency"`
}

// --- Interface ---

type InvoiceService interface {
	ListInvoices(ctx context.Context, filter InvoiceFilter) ([]InvoiceRow, int64, error)
}

type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
}

func NewInvoiceService(invoiceRepo repository.InvoiceRepository) InvoiceService {
	return &invoiceService{invoiceRepo: invoiceRepo}
}

// --- Implementation ---

func (s *invoiceService) ListInvoices(ctx context.Context, filter InvoiceFilter) ([]InvoiceRow, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}

	invoices, total, err := s.invoiceRepo.List(ctx, repository.InvoiceListFilter{
		Query:  filter.Query,
		Status: filter.Status,
		Page:   filter.Page,
		Limit:  filter.Limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch invoices: %w", err)
	}

	rows := make([]InvoiceRow, 0, len(invoices))
	for _, inv := range invoices {
		rows = append(rows, toInvoiceRow(inv))
	}
	return rows, total, nil
}

// --- Mapping ---

func toInvoiceRow(inv model.Invoice) InvoiceRow {
	row := InvoiceRow{
		ID:            inv.ID.String(),
		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   inv.InvoiceDate.Format(time.RFC3339),
		Total:         inv.Total.StringFixed(2),
		Status:        inv.Status,
		Currency:      inv.Currency,
	}
	if inv.Vendor != nil {
		row.Vendor = inv.Vendor.Name
	}
	if inv.Customer != nil {
		name := inv.Customer.Name
		row.Customer = &name
	}
	if inv.DueDate != nil {
		due := inv.DueDate.Format(time.RFC3339)
		row.DueDate = &due
	}
	return row
}
