package ingest

import (
	"context"
	"testing"
	"time"

	"flowbit/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAssembler(store *fakeStore) *Assembler {
	a := NewAssembler(&fakeInvoiceRepo{store: store}, fakeTxManager{}, fixedNumbers{value: "INV-GEN-1"})
	a.now = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }
	return a
}

func TestAssembleHeaderDefaults(t *testing.T) {
	store := newFakeStore()
	assembler := newTestAssembler(store)
	vendorID := uuid.New()

	invoice, warnings, err := assembler.Assemble(context.Background(), Record{}, EntityRefs{VendorID: vendorID})
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "INV-GEN-1", invoice.InvoiceNumber, "missing invoice number is synthesized")
	assert.Equal(t, vendorID, invoice.VendorID)
	assert.Nil(t, invoice.ExternalID)
	assert.Nil(t, invoice.CustomerID)
	assert.Nil(t, invoice.DueDate)
	assert.Equal(t, model.StatusPending, invoice.Status)
	assert.Equal(t, model.DefaultCurrency, invoice.Currency)
	assert.True(t, invoice.Subtotal.IsZero())
	assert.True(t, invoice.Total.IsZero())
	assert.Equal(t, time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC), invoice.InvoiceDate)
	assert.Empty(t, invoice.LineItems)
	assert.Empty(t, invoice.Payments)
	assert.Empty(t, invoice.Documents)
}

func TestAssembleHeaderFieldCandidates(t *testing.T) {
	store := newFakeStore()
	assembler := newTestAssembler(store)

	rec := Record{
		"number":   "INV-77",
		"date":     "2026-01-10",
		"due_date": "2026-02-10",
		"status":   "paid",
		"currency": "USD",
		"amount":   "1250.50",
		"tax":      225.09,
	}
	invoice, _, err := assembler.Assemble(context.Background(), rec, EntityRefs{VendorID: uuid.New()})
	require.NoError(t, err)

	assert.Equal(t, "INV-77", invoice.InvoiceNumber)
	assert.Equal(t, time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), invoice.InvoiceDate)
	require.NotNil(t, invoice.DueDate)
	assert.Equal(t, model.StatusPaid, invoice.Status)
	assert.Equal(t, "USD", invoice.Currency)
	assert.True(t, invoice.Subtotal.Equal(decimal.RequireFromString("1250.50")), "amount backs both subtotal and total")
	assert.True(t, invoice.Total.Equal(decimal.RequireFromString("1250.50")))
	assert.True(t, invoice.Tax.Equal(decimal.RequireFromString("225.09")))
}

func TestAssembleLineItemTotalDefault(t *testing.T) {
	store := newFakeStore()
	assembler := newTestAssembler(store)

	rec := Record{
		"invoice_number": "INV-1",
		"line_items": []any{
			map[string]any{"description": "Freight", "quantity": 3, "unit_price": 100},
			map[string]any{"name": "Handling", "price": "25.5", "total": "30"},
			map[string]any{},
		},
	}
	invoice, warnings, err := assembler.Assemble(context.Background(), rec, EntityRefs{VendorID: uuid.New()})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, invoice.LineItems, 3)

	assert.Equal(t, 3, invoice.LineItems[0].Quantity)
	assert.True(t, invoice.LineItems[0].Total.Equal(decimal.NewFromInt(300)), "total defaults to quantity * unit price")

	assert.Equal(t, "Handling", invoice.LineItems[1].Description)
	assert.True(t, invoice.LineItems[1].Total.Equal(decimal.NewFromInt(30)), "explicit total wins over the computed one")

	assert.Equal(t, "Item", invoice.LineItems[2].Description)
	assert.Equal(t, 1, invoice.LineItems[2].Quantity)
	assert.True(t, invoice.LineItems[2].Total.IsZero())
}

func TestAssemblePayments(t *testing.T) {
	store := newFakeStore()
	assembler := newTestAssembler(store)

	rec := Record{
		"invoice_number": "INV-1",
		"payments": []any{
			map[string]any{"payment_date": "2026-01-20", "amount": 400, "method": "NEFT", "reference": "TXN-9"},
			map[string]any{"amount": "not-a-number"},
		},
	}
	invoice, _, err := assembler.Assemble(context.Background(), rec, EntityRefs{VendorID: uuid.New()})
	require.NoError(t, err)
	require.Len(t, invoice.Payments, 2)

	assert.True(t, invoice.Payments[0].Amount.Equal(decimal.NewFromInt(400)))
	require.NotNil(t, invoice.Payments[0].Method)
	assert.Equal(t, "NEFT", *invoice.Payments[0].Method)

	assert.True(t, invoice.Payments[1].Amount.IsZero(), "unparsable amount coerces to zero")
	assert.Nil(t, invoice.Payments[1].Method)
}

func TestAssembleDocumentWithoutURLSkipped(t *testing.T) {
	store := newFakeStore()
	assembler := newTestAssembler(store)

	rec := Record{
		"invoice_number": "INV-1",
		"documents": []any{
			map[string]any{"url": "https://files.example/inv1.pdf", "type": "pdf"},
			map[string]any{"kind": "scan"},
		},
	}
	invoice, warnings, err := assembler.Assemble(context.Background(), rec, EntityRefs{VendorID: uuid.New()})
	require.NoError(t, err)

	require.Len(t, invoice.Documents, 1)
	assert.Equal(t, "https://files.example/inv1.pdf", invoice.Documents[0].URL)
	require.NotNil(t, invoice.Documents[0].Kind)
	assert.Equal(t, "pdf", *invoice.Documents[0].Kind)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "no url")
	require.Len(t, store.invoices, 1, "the rest of the aggregate still commits")
}

func TestAssembleReplacesByExternalID(t *testing.T) {
	store := newFakeStore()
	assembler := newTestAssembler(store)
	ctx := context.Background()
	vendorID := uuid.New()

	first := Record{"id": "ext-9", "invoice_number": "INV-1", "total": 100}
	second := Record{"id": "ext-9", "invoice_number": "INV-1", "total": 250}

	_, _, err := assembler.Assemble(ctx, first, EntityRefs{VendorID: vendorID})
	require.NoError(t, err)
	_, _, err = assembler.Assemble(ctx, second, EntityRefs{VendorID: vendorID})
	require.NoError(t, err)

	require.Len(t, store.invoices, 1, "re-ingesting the same external id replaces, not duplicates")
	assert.True(t, store.invoices[0].Total.Equal(decimal.NewFromInt(250)))
}

func TestAssembleWithoutExternalIDAlwaysCreates(t *testing.T) {
	store := newFakeStore()
	assembler := newTestAssembler(store)
	ctx := context.Background()
	vendorID := uuid.New()

	rec := Record{"invoice_number": "INV-1", "total": 100}
	_, _, err := assembler.Assemble(ctx, rec, EntityRefs{VendorID: vendorID})
	require.NoError(t, err)
	_, _, err = assembler.Assemble(ctx, rec, EntityRefs{VendorID: vendorID})
	require.NoError(t, err)

	assert.Len(t, store.invoices, 2)
}
