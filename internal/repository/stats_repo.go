package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type OverviewRow struct {
	TotalSpendYTD     float64 `gorm:"column:total_spend_ytd"`
	TotalInvoices     int64   `gorm:"column:total_invoices"`
	DocumentsUploaded int64   `gorm:"column:documents_uploaded"`
	AvgInvoiceValue   float64 `gorm:"column:avg_invoice_value"`
	TotalPaid         float64 `gorm:"column:total_paid"`
}

type VendorSpendRow struct {
	Vendor string  `gorm:"column:vendor"`
	Spend  float64 `gorm:"column:spend"`
}

type CategorySpendRow struct {
	Category string  `gorm:"column:category"`
	Spend    float64 `gorm:"column:spend"`
}

type TrendRow struct {
	Month        string  `gorm:"column:month"`
	InvoiceCount int64   `gorm:"column:invoice_count"`
	TotalSpend   float64 `gorm:"column:total_spend"`
}

type OutflowRow struct {
	Date   string  `gorm:"column:date"`
	Amount float64 `gorm:"column:amount"`
}

type StatsRepository interface {
	Overview(ctx context.Context, yearStart time.Time) (OverviewRow, error)
	TopVendors(ctx context.Context, limit int) ([]VendorSpendRow, error)
	CategorySpend(ctx context.Context) ([]CategorySpendRow, error)
	MonthlyTrends(ctx context.Context) ([]TrendRow, error)
	CashOutflow(ctx context.Context, start, end *time.Time) ([]OutflowRow, error)
}

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Overview(ctx context.Context, yearStart time.Time) (OverviewRow, error) {
	query := `
		SELECT
			COALESCE((SELECT SUM(total) FROM invoices WHERE invoice_date >= $1), 0) AS total_spend_ytd,
			(SELECT COUNT(*) FROM invoices) AS total_invoices,
			(SELECT COUNT(*) FROM documents) AS documents_uploaded,
			COALESCE((SELECT AVG(total) FROM invoices), 0) AS avg_invoice_value,
			COALESCE((SELECT SUM(amount) FROM payments), 0) AS total_paid
	`

	var row OverviewRow
	if err := r.db.WithContext(ctx).Raw(query, yearStart).Scan(&row).Error; err != nil {
		return OverviewRow{}, fmt.Errorf("failed to query overview stats: %w", err)
	}
	return row, nil
}

func (r *statsRepository) TopVendors(ctx context.Context, limit int) ([]VendorSpendRow, error) {
	query := `
		SELECT v.name AS vendor, COALESCE(SUM(i.total), 0) AS spend
		FROM invoices i
		JOIN vendors v ON v.id = i.vendor_id
		GROUP BY v.name
		ORDER BY spend DESC
		LIMIT $1
	`

	var rows []VendorSpendRow
	if err := r.db.WithContext(ctx).Raw(query, limit).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query top vendors: %w", err)
	}
	return rows, nil
}

func (r *statsRepository) CategorySpend(ctx context.Context) ([]CategorySpendRow, error) {
	query := `
		SELECT COALESCE(c.name, 'Uncategorized') AS category, COALESCE(SUM(i.total), 0) AS spend
		FROM invoices i
		LEFT JOIN categories c ON c.id = i.category_id
		GROUP BY c.name
		ORDER BY spend DESC
	`

	var rows []CategorySpendRow
	if err := r.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query category spend: %w", err)
	}
	return rows, nil
}

func (r *statsRepository) MonthlyTrends(ctx context.Context) ([]TrendRow, error) {
	query := `
		SELECT TO_CHAR(DATE_TRUNC('month', invoice_date), 'YYYY-MM') AS month,
		       COUNT(*) AS invoice_count,
		       COALESCE(SUM(total), 0) AS total_spend
		FROM invoices
		GROUP BY 1
		ORDER BY 1
	`

	var rows []TrendRow
	if err := r.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query invoice trends: %w", err)
	}
	return rows, nil
}

func (r *statsRepository) CashOutflow(ctx context.Context, start, end *time.Time) ([]OutflowRow, error) {
	query := `
		SELECT TO_CHAR(due_date, 'YYYY-MM-DD') AS date, COALESCE(SUM(total), 0) AS amount
		FROM invoices
		WHERE due_date IS NOT NULL
		  AND status IN ('PENDING', 'APPROVED', 'OVERDUE', 'PARTIALLY_PAID')
		  AND ($1::timestamptz IS NULL OR due_date >= $1)
		  AND ($2::timestamptz IS NULL OR due_date <= $2)
		GROUP BY due_date
		ORDER BY date
	`

	var rows []OutflowRow
	if err := r.db.WithContext(ctx).Raw(query, start, end).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query cash outflow: %w", err)
	}
	return rows, nil
}
