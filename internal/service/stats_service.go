package service

import (
	"context"
	"fmt"
	"time"

	"flowbit/internal/repository"
)

// --- DTOs ---

type Overview struct {
	TotalSpendYTD     float64 `json:"total_spend_ytd"`
	TotalInvoices     int64   `json:"total_invoices"`
	DocumentsUploaded int64   `json:"documents_uploaded"`
	AvgInvoiceValue   float64 `json:"avg_invoice_value"`
	TotalPaid         float64 `json:"total_paid"`
}

type VendorSpend struct {
	Vendor string  `json:"vendor"`
	Spend  float64 `json:"spend"`
}

type CategorySpend struct {
	Category string  `json:"category"`
	Spend    float64 `json:"spend"`
}

type TrendPoint struct {
	Month        string  `json:"month"`
	InvoiceCount int64   `json:"invoice_count"`
	TotalSpend   float64 `json:"total_spend"`
}

type OutflowPoint struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// --- Interface ---

type StatsService interface {
	GetOverview(ctx context.Context) (Overview, error)
	GetTopVendors(ctx context.Context) ([]VendorSpend, error)
	GetCategorySpend(ctx context.Context) ([]CategorySpend, error)
	GetInvoiceTrends(ctx context.Context) ([]TrendPoint, error)
	GetCashOutflow(ctx context.Context, start, end *time.Time) ([]OutflowPoint, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

// --- Implementation ---

func (s *statsService) GetOverview(ctx context.Context) (Overview, error) {
	now := time.Now()
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())

	row, err := s.statsRepo.Overview(ctx, yearStart)
	if err != nil {
		return Overview{}, fmt.Errorf("failed to fetch overview stats: %w", err)
	}

	return Overview{
		TotalSpendYTD:     row.TotalSpendYTD,
		TotalInvoices:     row.TotalInvoices,
		DocumentsUploaded: row.DocumentsUploaded,
		AvgInvoiceValue:   row.AvgInvoiceValue,
		TotalPaid:         row.TotalPaid,
	}, nil
}

func (s *statsService) GetTopVendors(ctx context.Context) ([]VendorSpend, error) {
	rows, err := s.statsRepo.TopVendors(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top vendors: %w", err)
	}

	result := make([]VendorSpend, 0, len(rows))
	for _, r := range rows {
		result = append(result, VendorSpend{Vendor: r.Vendor, Spend: r.Spend})
	}
	return result, nil
}

func (s *statsService) GetCategorySpend(ctx context.Context) ([]CategorySpend, error) {
	rows, err := s.statsRepo.CategorySpend(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category spend: %w", err)
	}

	result := make([]CategorySpend, 0, len(rows))
	for _, r := range rows {
		result = append(result, CategorySpend{Category: r.Category, Spend: r.Spend})
	}
	return result, nil
}

func (s *statsService) GetInvoiceTrends(ctx context.Context) ([]TrendPoint, error) {
	rows, err := s.statsRepo.MonthlyTrends(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch invoice trends: %w", err)
	}

	result := make([]TrendPoint, 0, len(rows))
	for _, r := range rows {
		result = append(result, TrendPoint{
			Month:        r.Month,
			InvoiceCount: r.InvoiceCount,
			TotalSpend:   r.TotalSpend,
		})
	}
	return result, nil
}

func (s *statsService) GetCashOutflow(ctx context.Context, start, end *time.Time) ([]OutflowPoint, error) {
	rows, err := s.statsRepo.CashOutflow(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cash outflow: %w", err)
	}

	result := make([]OutflowPoint, 0, len(rows))
	for _, r := range rows {
		result = append(result, OutflowPoint{Date: r.Date, Amount: r.Amount})
	}
	return result, nil
}
