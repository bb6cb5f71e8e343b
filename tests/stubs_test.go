package tests

import (
	"context"
	"sort"

	"github.com/amirclear/shelf-inventory/internal/dto"
	"github.com/amirclear/shelf-inventory/internal/model"
	"github.com/amirclear/shelf-inventory/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubProductRepo is an in-memory ProductRepository for testing. DB() returns
// nil so services run their transaction bodies directly, without GORM.
type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
	bySKU    map[string]*model.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{
		products: make(map[uuid.UUID]*model.Product),
		bySKU:    make(map[string]*model.Product),
	}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	r.bySKU[p.SKU] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	p, ok := r.bySKU[sku]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) List(_ context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	all, _ := r.ListAll(context.Background())
	return all, int64(len(all)), nil
}

func (r *stubProductRepo) ListAll(_ context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	r.bySKU[p.SKU] = p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.products[id]; ok {
		delete(r.bySKU, p.SKU)
		delete(r.products, id)
	}
	return nil
}

func (r *stubProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *stubProductRepo) FindBySKUForUpdate(_ *gorm.DB, sku string) (*model.Product, error) {
	p, ok := r.bySKU[sku]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Stock += delta
	return nil
}

func (r *stubProductRepo) DB() *gorm.DB { return nil }

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// stubDetectionRepo stores detection runs keyed by (id, user).
type stubDetectionRepo struct {
	runs map[uuid.UUID]*model.DetectionRun
}

func newStubDetectionRepo() *stubDetectionRepo {
	return &stubDetectionRepo{runs: make(map[uuid.UUID]*model.DetectionRun)}
}

func (r *stubDetectionRepo) Create(_ context.Context, d *model.DetectionRun) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	r.runs[d.ID] = d
	return nil
}

func (r *stubDetectionRepo) FindByIDForUser(_ context.Context, id, userID uuid.UUID) (*model.DetectionRun, error) {
	d, ok := r.runs[id]
	if !ok || d.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return d, nil
}

func (r *stubDetectionRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.DetectionRun, int64, error) {
	var out []model.DetectionRun
	for _, d := range r.runs {
		if d.UserID == userID {
			out = append(out, *d)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubDetectionRepo) CountByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, d := range r.runs {
		if d.UserID == userID {
			n++
		}
	}
	return n, nil
}

var _ repository.DetectionRepository = (*stubDetectionRepo)(nil)

// stubInvoiceRepo captures created invoices for assertion.
type stubInvoiceRepo struct {
	invoices map[uuid.UUID]*model.Invoice
}

func newStubInvoiceRepo() *stubInvoiceRepo {
	return &stubInvoiceRepo{invoices: make(map[uuid.UUID]*model.Invoice)}
}

func (r *stubInvoiceRepo) CreateTx(_ *gorm.DB, inv *model.Invoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	r.invoices[inv.ID] = inv
	return nil
}

func (r *stubInvoiceRepo) FindByIDForUser(_ context.Context, id, userID uuid.UUID) (*model.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok || inv.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return inv, nil
}

func (r *stubInvoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return inv, nil
}

func (r *stubInvoiceRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]model.Invoice, int64, error) {
	var out []model.Invoice
	for _, inv := range r.invoices {
		if inv.UserID == userID {
			out = append(out, *inv)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubInvoiceRepo) CountByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, inv := range r.invoices {
		if inv.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *stubInvoiceRepo) UpdatePDFPath(_ context.Context, id uuid.UUID, pdfPath string) error {
	inv, ok := r.invoices[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	inv.PDFPath = &pdfPath
	return nil
}

func (r *stubInvoiceRepo) ListMissingPDF(_ context.Context, limit int) ([]model.Invoice, error) {
	var out []model.Invoice
	for _, inv := range r.invoices {
		if inv.PDFPath == nil {
			out = append(out, *inv)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *stubInvoiceRepo) DB() *gorm.DB { return nil }

var _ repository.InvoiceRepository = (*stubInvoiceRepo)(nil)

// ── Seed helpers ──────────────────────────────────────────────────────────────

func seedProduct(repo *stubProductRepo, sku, name string, price float64, stock, salesEstimate int, margin float64) *model.Product {
	p := &model.Product{
		ID:                  uuid.New(),
		SKU:                 sku,
		Name:                name,
		Category:            "beverages",
		UnitPrice:           decimal.NewFromFloat(price),
		Stock:               stock,
		WeeklySalesEstimate: salesEstimate,
		ProfitMargin:        decimal.NewFromFloat(margin),
	}
	repo.products[p.ID] = p
	repo.bySKU[p.SKU] = p
	return p
}

func seedDetection(repo *stubDetectionRepo, userID uuid.UUID, filename string, result model.DetectionResult) *model.DetectionRun {
	d := &model.DetectionRun{
		ID:            uuid.New(),
		UserID:        userID,
		ImagePath:     "uploads/" + filename,
		Filename:      filename,
		Result:        result,
		BBoxImagePath: "bboxes/test_bbox.jpg",
	}
	repo.runs[d.ID] = d
	return d
}
