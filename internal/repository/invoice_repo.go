package repository

import (
	"context"

	"github.com/amirclear/shelf-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InvoiceRepository persists invoices. CreateTx runs inside the generation
// transaction so the invoice, its items, and the stock decrements land (or
// roll back) together.
type InvoiceRepository interface {
	CreateTx(tx *gorm.DB, inv *model.Invoice) error
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*model.Invoice, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Invoice, int64, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
	UpdatePDFPath(ctx context.Context, id uuid.UUID, pdfPath string) error
	ListMissingPDF(ctx context.Context, limit int) ([]model.Invoice, error)

	DB() *gorm.DB
}

type invoiceRepo struct{ db *gorm.DB }

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository { return &invoiceRepo{db: db} }

func (r *invoiceRepo) CreateTx(tx *gorm.DB, inv *model.Invoice) error {
	return tx.Create(inv).Error
}

func (r *invoiceRepo) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Items.Product").
		Where("id = ? AND user_id = ?", id, userID).First(&inv).Error
	return &inv, err
}

func (r *invoiceRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var inv model.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Items.Product").
		First(&inv, id).Error
	return &inv, err
}

func (r *invoiceRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Invoice, int64, error) {
	var invoices []model.Invoice
	var total int64
	q := r.db.WithContext(ctx).Model(&model.Invoice{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Preload("Items").Preload("Items.Product").
		Order("created_at DESC").Find(&invoices).Error
	return invoices, total, err
}

func (r *invoiceRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Invoice{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

func (r *invoiceRepo) UpdatePDFPath(ctx context.Context, id uuid.UUID, pdfPath string) error {
	return r.db.WithContext(ctx).Model(&model.Invoice{}).
		Where("id = ?", id).Update("pdf_path", pdfPath).Error
}

// ListMissingPDF returns invoices whose PDF was never rendered, oldest first.
// Consumed by the periodic retry sweep.
func (r *invoiceRepo) ListMissingPDF(ctx context.Context, limit int) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items").Preload("Items.Product").
		Where("pdf_path IS NULL").
		Order("created_at ASC").Limit(limit).Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepo) DB() *gorm.DB { return r.db }
