package ingest

import (
	"context"
	"errors"
	"fmt"

	"flowbit/internal/model"
	"flowbit/internal/repository"
	"flowbit/pkg/coerce"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Fallback identities for records that name no vendor or customer at all.
const (
	unknownVendorName   = "Unknown Vendor"
	unknownCustomerName = "Unknown Customer"
)

// Resolver maps raw entity fragments onto persisted Category, Vendor, and
// Customer rows, deduplicated by natural key. Creation races are settled by
// the unique constraint on the key column: a create that loses the race is
// retried once as an update.
type Resolver struct {
	categories repository.CategoryRepository
	vendors    repository.VendorRepository
	customers  repository.CustomerRepository
}

func NewResolver(
	categories repository.CategoryRepository,
	vendors repository.VendorRepository,
	customers repository.CustomerRepository,
) *Resolver {
	return &Resolver{
		categories: categories,
		vendors:    vendors,
		customers:  customers,
	}
}

// ResolveCategory upserts the category named by the record. A record without
// a category yields a nil reference, not an error.
func (r *Resolver) ResolveCategory(ctx context.Context, rec Record) (*uuid.UUID, error) {
	name := coerce.String(rec.First("category"))
	if name == "" {
		return nil, nil
	}

	existing, err := r.categories.FindByName(ctx, name)
	if err == nil {
		return &existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up category %q: %w", name, err)
	}

	category := &model.Category{Name: name}
	if err := r.categories.Create(ctx, category); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a concurrent create; the winner's row is authoritative.
			winner, findErr := r.categories.FindByName(ctx, name)
			if findErr != nil {
				return nil, fmt.Errorf("failed to reload category %q after conflict: %w", name, findErr)
			}
			return &winner.ID, nil
		}
		return nil, fmt.Errorf("failed to create category %q: %w", name, err)
	}
	return &category.ID, nil
}

// ResolveVendor upserts the vendor described by the record and returns its
// row id. Key priority: explicit id on the vendor fragment, then the
// record-level vendor_id, then a key synthesized from the vendor name.
func (r *Resolver) ResolveVendor(ctx context.Context, rec Record, categoryID *uuid.UUID) (uuid.UUID, error) {
	fragment := rec.Child("vendor")

	key := coerce.String(fragment.First("id"))
	if key == "" {
		key = coerce.String(rec.First("vendor_id"))
	}
	name := coerce.String(fragment.First("name"))
	if name == "" {
		name = coerce.String(rec.First("vendor_name"))
	}
	if key == "" {
		if name != "" {
			key = "vendor:" + name
		} else {
			key = "vendor:Unknown"
		}
	}
	if name == "" {
		name = unknownVendorName
	}

	// Descriptive fields are last-write-wins, absent values included. The
	// category link is stickier: a record that names no category leaves an
	// existing link alone.
	apply := func(v *model.Vendor) {
		v.Name = name
		v.TaxID = optString(fragment.First("tax_id", "taxId"))
		v.Email = optString(fragment.First("email"))
		v.Phone = optString(fragment.First("phone"))
		v.City = optString(fragment.First("city"))
		v.Country = optString(fragment.First("country"))
		if categoryID != nil {
			v.CategoryID = categoryID
		}
	}

	existing, err := r.vendors.FindByExternalID(ctx, key)
	if err == nil {
		apply(existing)
		if err := r.vendors.Update(ctx, existing); err != nil {
			return uuid.Nil, fmt.Errorf("failed to update vendor %q: %w", key, err)
		}
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, fmt.Errorf("failed to look up vendor %q: %w", key, err)
	}

	vendor := &model.Vendor{ExternalID: key}
	apply(vendor)
	if err := r.vendors.Create(ctx, vendor); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			winner, findErr := r.vendors.FindByExternalID(ctx, key)
			if findErr != nil {
				return uuid.Nil, fmt.Errorf("failed to reload vendor %q after conflict: %w", key, findErr)
			}
			apply(winner)
			if err := r.vendors.Update(ctx, winner); err != nil {
				return uuid.Nil, fmt.Errorf("failed to update vendor %q after conflict: %w", key, err)
			}
			return winner.ID, nil
		}
		return uuid.Nil, fmt.Errorf("failed to create vendor %q: %w", key, err)
	}
	return vendor.ID, nil
}

// ResolveCustomer upserts the customer fragment when one is present. An
// invoice without a customer is valid and yields a nil reference.
func (r *Resolver) ResolveCustomer(ctx context.Context, rec Record) (*uuid.UUID, error) {
	fragment := rec.Child("customer")
	if fragment == nil {
		return nil, nil
	}

	key := coerce.String(fragment.First("id"))
	if key == "" {
		key = coerce.String(rec.First("customer_id"))
	}
	name := coerce.String(fragment.First("name"))
	if name == "" {
		name = coerce.String(rec.First("customer_name"))
	}
	if key == "" {
		if name != "" {
			key = "customer:" + name
		} else {
			key = "customer:Unknown"
		}
	}
	if name == "" {
		name = unknownCustomerName
	}

	apply := func(c *model.Customer) {
		c.Name = name
		c.Email = optString(fragment.First("email"))
	}

	existing, err := r.customers.FindByExternalID(ctx, key)
	if err == nil {
		apply(existing)
		if err := r.customers.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update customer %q: %w", key, err)
		}
		return &existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up customer %q: %w", key, err)
	}

	customer := &model.Customer{ExternalID: key}
	apply(customer)
	if err := r.customers.Create(ctx, customer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			winner, findErr := r.customers.FindByExternalID(ctx, key)
			if findErr != nil {
				return nil, fmt.Errorf("failed to reload customer %q after conflict: %w", key, findErr)
			}
			apply(winner)
			if err := r.customers.Update(ctx, winner); err != nil {
				return nil, fmt.Errorf("failed to update customer %q after conflict: %w", key, err)
			}
			return &winner.ID, nil
		}
		return nil, fmt.Errorf("failed to create customer %q: %w", key, err)
	}
	return &customer.ID, nil
}

func optString(raw any) *string {
	s := coerce.String(raw)
	if s == "" {
		return nil
	}
	return &s
}
