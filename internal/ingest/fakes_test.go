package ingest

import (
	"context"
	"fmt"

	"flowbit/internal/model"
	"flowbit/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repositories backing the pipeline tests. They honor the same
// sentinel contract as the real ones: gorm.ErrRecordNotFound on a miss and
// gorm.ErrDuplicatedKey on a unique-constraint collision.

type fakeStore struct {
	categories map[string]*model.Category
	vendors    map[string]*model.Vendor
	customers  map[string]*model.Customer
	invoices   []*model.Invoice

	failInvoiceNumber string // CreateAggregate fails for this invoice number
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		categories: make(map[string]*model.Category),
		vendors:    make(map[string]*model.Vendor),
		customers:  make(map[string]*model.Customer),
	}
}

type fakeCategoryRepo struct {
	store *fakeStore
}

func (r *fakeCategoryRepo) FindByName(_ context.Context, name string) (*model.Category, error) {
	if c, ok := r.store.categories[name]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCategoryRepo) Create(_ context.Context, category *model.Category) error {
	if _, ok := r.store.categories[category.Name]; ok {
		return gorm.ErrDuplicatedKey
	}
	category.ID = uuid.New()
	r.store.categories[category.Name] = category
	return nil
}

type fakeVendorRepo struct {
	store *fakeStore

	// conflictOnCreate simulates losing a concurrent create race: the
	// competing row appears and the create reports a duplicate key.
	conflictOnCreate bool

	// updateErr, when set, fails every Update call.
	updateErr error
}

func (r *fakeVendorRepo) FindByExternalID(_ context.Context, externalID string) (*model.Vendor, error) {
	if v, ok := r.store.vendors[externalID]; ok {
		// Hand out a copy, as a real query would; mutations only land in the
		// store through Update.
		out := *v
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeVendorRepo) Create(_ context.Context, vendor *model.Vendor) error {
	if _, ok := r.store.vendors[vendor.ExternalID]; ok {
		return gorm.ErrDuplicatedKey
	}
	if r.conflictOnCreate {
		r.conflictOnCreate = false
		winner := &model.Vendor{ID: uuid.New(), ExternalID: vendor.ExternalID, Name: "Race Winner"}
		r.store.vendors[vendor.ExternalID] = winner
		return gorm.ErrDuplicatedKey
	}
	vendor.ID = uuid.New()
	r.store.vendors[vendor.ExternalID] = vendor
	return nil
}

func (r *fakeVendorRepo) Update(_ context.Context, vendor *model.Vendor) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.store.vendors[vendor.ExternalID] = vendor
	return nil
}

type fakeCustomerRepo struct {
	store *fakeStore
}

func (r *fakeCustomerRepo) FindByExternalID(_ context.Context, externalID string) (*model.Customer, error) {
	if c, ok := r.store.customers[externalID]; ok {
		out := *c
		return &out, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCustomerRepo) Create(_ context.Context, customer *model.Customer) error {
	if _, ok := r.store.customers[customer.ExternalID]; ok {
		return gorm.ErrDuplicatedKey
	}
	customer.ID = uuid.New()
	r.store.customers[customer.ExternalID] = customer
	return nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, customer *model.Customer) error {
	r.store.customers[customer.ExternalID] = customer
	return nil
}

type fakeInvoiceRepo struct {
	store *fakeStore
}

func (r *fakeInvoiceRepo) CreateAggregate(_ context.Context, invoice *model.Invoice) error {
	if invoice.InvoiceNumber == r.store.failInvoiceNumber && r.store.failInvoiceNumber != "" {
		return fmt.Errorf("constraint violation")
	}
	invoice.ID = uuid.New()
	r.store.invoices = append(r.store.invoices, invoice)
	return nil
}

func (r *fakeInvoiceRepo) FindByExternalID(_ context.Context, externalID string) (*model.Invoice, error) {
	for _, inv := range r.store.invoices {
		if inv.ExternalID != nil && *inv.ExternalID == externalID {
			return inv, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeInvoiceRepo) DeleteAggregate(_ context.Context, id uuid.UUID) error {
	kept := r.store.invoices[:0]
	for _, inv := range r.store.invoices {
		if inv.ID != id {
			kept = append(kept, inv)
		}
	}
	r.store.invoices = kept
	return nil
}

func (r *fakeInvoiceRepo) List(_ context.Context, _ repository.InvoiceListFilter) ([]model.Invoice, int64, error) {
	out := make([]model.Invoice, 0, len(r.store.invoices))
	for _, inv := range r.store.invoices {
		out = append(out, *inv)
	}
	return out, int64(len(out)), nil
}

type fakeTxManager struct{}

func (fakeTxManager) RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	return fn(ctx)
}

type fixedNumbers struct {
	value string
}

func (g fixedNumbers) Next() string { return g.value }
