package ingest

import (
	"context"
	"errors"
	"fmt"
	"net"

	"flowbit/internal/model"

	"github.com/rs/zerolog"
)

// RecordFailure describes one record that could not be persisted.
type RecordFailure struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// RecordWarning describes a child fragment that was skipped while the rest
// of its record still committed.
type RecordWarning struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

// Report is the externally visible outcome of one ingestion run.
type Report struct {
	RecordsProcessed int             `json:"records_processed"`
	Failures         []RecordFailure `json:"failures,omitempty"`
	Warnings         []RecordWarning `json:"warnings,omitempty"`
}

// Ingestor drives one ingestion run: per record it resolves the category,
// vendor, and customer, then assembles and persists the invoice aggregate.
// Records are independent, so one failure never aborts the batch; only
// infrastructure-level failure (context cancellation, unreachable store)
// stops the run.
type Ingestor struct {
	resolver  *Resolver
	assembler *Assembler
	log       zerolog.Logger
}

func NewIngestor(resolver *Resolver, assembler *Assembler, log zerolog.Logger) *Ingestor {
	return &Ingestor{
		resolver:  resolver,
		assembler: assembler,
		log:       log,
	}
}

// Run ingests the batch in source order. An empty batch is a valid run that
// processes zero records; the synthetic fallback is Seed's job and only
// applies when no input source exists at all.
func (ing *Ingestor) Run(ctx context.Context, batch []Record) (Report, error) {
	var report Report

	for i, rec := range batch {
		if err := ctx.Err(); err != nil {
			return report, fmt.Errorf("ingestion run aborted after %d records: %w", report.RecordsProcessed, err)
		}

		invoice, warnings, err := ing.process(ctx, rec)
		for _, w := range warnings {
			report.Warnings = append(report.Warnings, RecordWarning{Index: i, Message: w})
			ing.log.Warn().Int("record", i).Msg(w)
		}
		if err != nil {
			if isFatal(err) {
				return report, fmt.Errorf("ingestion run aborted after %d records: %w", report.RecordsProcessed, err)
			}
			report.Failures = append(report.Failures, RecordFailure{Index: i, Reason: err.Error()})
			ing.log.Error().Err(err).Int("record", i).Msg("record failed")
			continue
		}

		report.RecordsProcessed++
		ing.log.Debug().
			Int("record", i).
			Str("invoice_number", invoice.InvoiceNumber).
			Msg("record ingested")
	}

	ing.log.Info().
		Int("processed", report.RecordsProcessed).
		Int("failed", len(report.Failures)).
		Msg("ingestion run complete")

	return report, nil
}

// isFatal separates infrastructure failure, which aborts the run, from
// per-record data problems, which do not. An unreachable store surfaces as
// a network error or a dead context.
func isFatal(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func (ing *Ingestor) process(ctx context.Context, rec Record) (*model.Invoice, []string, error) {
	categoryID, err := ing.resolver.ResolveCategory(ctx, rec)
	if err != nil {
		return nil, nil, err
	}

	vendorID, err := ing.resolver.ResolveVendor(ctx, rec, categoryID)
	if err != nil {
		return nil, nil, err
	}

	customerID, err := ing.resolver.ResolveCustomer(ctx, rec)
	if err != nil {
		return nil, nil, err
	}

	return ing.assembler.Assemble(ctx, rec, EntityRefs{
		VendorID:   vendorID,
		CustomerID: customerID,
		CategoryID: categoryID,
	})
}

// Seed persists one fixed sample category, vendor, and invoice so the
// dashboard has data to render when no batch file is available. Demo path,
// not production ingestion.
func (ing *Ingestor) Seed(ctx context.Context) (Report, error) {
	sample := Record{
		"category": "Logistics",
		"vendor": map[string]any{
			"id":   "vendor:sample",
			"name": "Sample Vendor",
		},
		"invoice_number": "INV-001",
		"subtotal":       10000,
		"tax":            1800,
		"total":          11800,
		"line_items": []any{
			map[string]any{
				"description": "Sample Item",
				"quantity":    1,
				"unit_price":  10000,
			},
		},
	}

	ing.log.Info().Msg("no input batch available, seeding sample data")
	return ing.Run(ctx, []Record{sample})
}
