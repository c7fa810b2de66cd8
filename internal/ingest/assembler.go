package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"flowbit/internal/model"
	"flowbit/internal/repository"
	"flowbit/pkg/coerce"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EntityRefs carries the resolved entity keys an invoice record hangs off.
// Only the vendor is mandatory.
type EntityRefs struct {
	VendorID   uuid.UUID
	CustomerID *uuid.UUID
	CategoryID *uuid.UUID
}

// Assembler builds and persists one invoice aggregate per raw record:
// header, line items, payments, and documents commit in one transaction.
type Assembler struct {
	invoices  repository.InvoiceRepository
	txManager repository.TransactionManager
	numbers   NumberGenerator
	now       func() time.Time
}

func NewAssembler(
	invoices repository.InvoiceRepository,
	txManager repository.TransactionManager,
	numbers NumberGenerator,
) *Assembler {
	return &Assembler{
		invoices:  invoices,
		txManager: txManager,
		numbers:   numbers,
		now:       time.Now,
	}
}

// Assemble maps the raw record onto an Invoice aggregate and persists it.
// Child fragments that defaults cannot repair (a document without a url)
// are skipped and reported as warnings; the rest of the aggregate still
// commits. When the record carries an explicit external id that already
// exists, the stored aggregate is replaced, so re-running a batch does not
// stack duplicates.
func (a *Assembler) Assemble(ctx context.Context, rec Record, refs EntityRefs) (*model.Invoice, []string, error) {
	invoice, warnings := a.build(rec, refs)

	err := a.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if invoice.ExternalID != nil {
			existing, findErr := a.invoices.FindByExternalID(txCtx, *invoice.ExternalID)
			switch {
			case findErr == nil:
				if delErr := a.invoices.DeleteAggregate(txCtx, existing.ID); delErr != nil {
					return fmt.Errorf("failed to replace invoice %q: %w", *invoice.ExternalID, delErr)
				}
			case !errors.Is(findErr, gorm.ErrRecordNotFound):
				return fmt.Errorf("failed to look up invoice %q: %w", *invoice.ExternalID, findErr)
			}
		}
		return a.invoices.CreateAggregate(txCtx, invoice)
	})
	if err != nil {
		return nil, warnings, fmt.Errorf("failed to persist invoice %q: %w", invoice.InvoiceNumber, err)
	}

	return invoice, warnings, nil
}

func (a *Assembler) build(rec Record, refs EntityRefs) (*model.Invoice, []string) {
	invoiceNumber := coerce.String(rec.First("invoice_number", "number"))
	if invoiceNumber == "" {
		invoiceNumber = a.numbers.Next()
	}

	currency := coerce.String(rec.First("currency"))
	if currency == "" {
		currency = model.DefaultCurrency
	}

	invoice := &model.Invoice{
		ExternalID:    optString(rec.First("id")),
		InvoiceNumber: invoiceNumber,
		VendorID:      refs.VendorID,
		CustomerID:    refs.CustomerID,
		CategoryID:    refs.CategoryID,
		InvoiceDate:   coerce.Time(rec.First("invoice_date", "date"), a.now()),
		DueDate:       coerce.TimePtr(rec.First("due_date")),
		Status:        coerce.Status(rec.First("status")),
		Currency:      currency,
		Subtotal:      coerce.Decimal(rec.First("subtotal", "amount")),
		Tax:           coerce.Decimal(rec.First("tax")),
		Discount:      coerce.Decimal(rec.First("discount")),
		Total:         coerce.Decimal(rec.First("total", "amount")),
		PaidAmount:    coerce.Decimal(rec.First("paid_amount")),
	}

	var warnings []string

	for _, li := range rec.List("line_items", "items") {
		description := coerce.String(li.First("description", "name"))
		if description == "" {
			description = "Item"
		}
		quantity := coerce.Int(li.First("quantity"), 1)
		unitPrice := coerce.Decimal(li.First("unit_price", "price"))
		total := coerce.Decimal(li.First("total"))
		if li.First("total") == nil {
			total = unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
		}
		invoice.LineItems = append(invoice.LineItems, model.LineItem{
			Description: description,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			Total:       total,
		})
	}

	for _, p := range rec.List("payments") {
		invoice.Payments = append(invoice.Payments, model.Payment{
			PaymentDate: coerce.Time(p.First("date", "payment_date"), a.now()),
			Amount:      coerce.Decimal(p.First("amount")),
			Method:      optString(p.First("method")),
			Reference:   optString(p.First("reference")),
		})
	}

	for i, d := range rec.List("documents", "files") {
		url := coerce.String(d.First("url"))
		if url == "" {
			warnings = append(warnings, fmt.Sprintf("document %d has no url, skipped", i))
			continue
		}
		invoice.Documents = append(invoice.Documents, model.Document{
			URL:  url,
			Kind: optString(d.First("kind", "type")),
		})
	}

	return invoice, warnings
}
