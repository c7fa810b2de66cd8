package repository

import (
	"context"

	"flowbit/internal/model"

	"gorm.io/gorm"
)

type VendorRepository interface {
	FindByExternalID(ctx context.Context, externalID string) (*model.Vendor, error)
	Create(ctx context.Context, vendor *model.Vendor) error
	Update(ctx context.Context, vendor *model.Vendor) error
}

type vendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) VendorRepository {
	return &vendorRepository{db: db}
}

func (r *vendorRepository) FindByExternalID(ctx context.Context, externalID string) (*model.Vendor, error) {
	var vendor model.Vendor
	if err := GetDB(ctx, r.db).First(&vendor, "external_id = ?", externalID).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepository) Create(ctx context.Context, vendor *model.Vendor) error {
	return GetDB(ctx, r.db).Create(vendor).Error
}

func (r *vendorRepository) Update(ctx context.Context, vendor *model.Vendor) error {
	return GetDB(ctx, r.db).Save(vendor).Error
}
