package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/amirclear/shelf-inventory/internal/detection"
	"github.com/amirclear/shelf-inventory/internal/dto"
	"github.com/amirclear/shelf-inventory/internal/model"
	"github.com/amirclear/shelf-inventory/internal/repository"
	"github.com/amirclear/shelf-inventory/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ErrDetectionNotFound is returned when the detection run does not exist or
// belongs to a different user.
var ErrDetectionNotFound = errors.New("detection run not found")

// RejectedError aggregates every reason a generation attempt was refused.
// When it is returned, nothing was persisted: no invoice, no items, no stock
// change. Callers display the reasons instead of a generic failure.
type RejectedError struct {
	Reasons []string
}

func (e *RejectedError) Error() string {
	return "invoice rejected: " + strings.Join(e.Reasons, "; ")
}

type InvoiceService interface {
	// GenerateFromDetection runs the two-phase validate-then-commit workflow
	// inside one transaction with exclusive row locks on every touched
	// product. Either a fully persisted invoice comes back, or a
	// *RejectedError listing all failures, or a storage error — never a
	// partial invoice.
	GenerateFromDetection(ctx context.Context, userID, detectionID uuid.UUID, req dto.GenerateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (*dto.InvoiceResponse, error)
	List(ctx context.Context, userID uuid.UUID) (*dto.InvoiceListResponse, error)
}

type invoiceService struct {
	repo          repository.InvoiceRepository
	productRepo   repository.ProductRepository
	detectionRepo repository.DetectionRepository
	dispatcher    *worker.Dispatcher
}

func NewInvoiceService(
	repo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	detectionRepo repository.DetectionRepository,
	dispatcher *worker.Dispatcher,
) InvoiceService {
	return &invoiceService{
		repo:          repo,
		productRepo:   productRepo,
		detectionRepo: detectionRepo,
		dispatcher:    dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── GenerateFromDetection ─────────────────────────────────────────────────────
// Single ACID transaction:
//  1. For each (class, qty) in the detection result: skip "unknown", skip
//     qty <= 0, skip unmapped classes; lock the product row (FOR UPDATE);
//     record a reason on missing product or short stock; otherwise stage the
//     line and accumulate the total.
//  2. Any recorded reason aborts the whole operation — locks release on
//     rollback and no writes survive.
//  3. No staged lines at all aborts with "No valid items to invoice."
//  4. Otherwise create the invoice + items and decrement every product's
//     stock before commit.
//  5. (async) dispatch the PDF job after commit — best effort.

func (s *invoiceService) GenerateFromDetection(ctx context.Context, userID, detectionID uuid.UUID, req dto.GenerateInvoiceRequest) (*dto.InvoiceResponse, error) {
	run, err := s.detectionRepo.FindByIDForUser(ctx, detectionID, userID)
	if err != nil {
		return nil, ErrDetectionNotFound
	}

	type stagedItem struct {
		productID   uuid.UUID
		productName string
		sku         string
		qty         int
		unitPrice   decimal.Decimal
		subtotal    decimal.Decimal
	}

	var inv model.Invoice
	var staged []stagedItem

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		staged = staged[:0]
		var reasons []string
		total := decimal.Zero

		// The result map's key order carries no meaning; iterate sorted so
		// the aggregated reasons come back in a stable order.
		classes := make([]string, 0, len(run.Result))
		for class := range run.Result {
			classes = append(classes, class)
		}
		sort.Strings(classes)

		for _, class := range classes {
			qty := run.Result[class]
			if detection.IsUnknown(class) {
				continue
			}
			if qty <= 0 {
				continue
			}
			sku, ok := detection.ResolveSKU(class)
			if !ok {
				// Unmapped class — non-fatal and not reported here; the
				// detection result view already surfaces it as a warning.
				continue
			}

			p, err := s.productRepo.FindBySKUForUpdate(tx, sku)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					reasons = append(reasons, fmt.Sprintf("Product not found for SKU: %s", sku))
					continue
				}
				return err
			}

			if p.Stock < qty {
				reasons = append(reasons, fmt.Sprintf(
					"Insufficient stock for %s. Available=%d, Required=%d", p.Name, p.Stock, qty))
				continue
			}

			subtotal := p.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
			total = total.Add(subtotal)
			staged = append(staged, stagedItem{
				productID:   p.ID,
				productName: p.Name,
				sku:         p.SKU,
				qty:         qty,
				unitPrice:   p.UnitPrice,
				subtotal:    subtotal,
			})
		}

		if len(reasons) > 0 {
			return &RejectedError{Reasons: reasons}
		}
		if len(staged) == 0 {
			return &RejectedError{Reasons: []string{"No valid items to invoice."}}
		}

		detID := run.ID
		inv = model.Invoice{
			InvoiceNo:      model.NewInvoiceNo(),
			UserID:         userID,
			TotalAmount:    total,
			DetectionRunID: &detID,
		}
		for _, it := range staged {
			inv.Items = append(inv.Items, model.InvoiceItem{
				ProductID: it.productID,
				Qty:       it.qty,
				UnitPrice: it.unitPrice,
				Subtotal:  it.subtotal,
			})
		}

		if err := s.repo.CreateTx(tx, &inv); err != nil {
			return err
		}

		for _, it := range staged {
			if err := s.productRepo.UpdateStockTx(tx, it.productID, -it.qty); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Async PDF + email job — fire & forget
	if s.dispatcher != nil {
		payload := worker.InvoicePDFJobPayload{InvoiceID: inv.ID.String(), Email: req.Email}
		if err := s.dispatcher.EnqueueInvoicePDF(ctx, payload); err != nil {
			log.Warn().Err(err).Str("invoice_no", inv.InvoiceNo).Msg("failed to enqueue invoice pdf job")
		}
	}

	// Build response from the staged lines — item rows carry product names
	// the model associations were not loaded with.
	resp := &dto.InvoiceResponse{
		ID:          inv.ID.String(),
		InvoiceNo:   inv.InvoiceNo,
		TotalAmount: inv.TotalAmount,
		CreatedAt:   inv.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	detID := run.ID.String()
	resp.DetectionRunID = &detID
	for _, it := range staged {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ProductName: it.productName,
			SKU:         it.sku,
			Qty:         it.qty,
			UnitPrice:   it.unitPrice,
			Subtotal:    it.subtotal,
		})
	}
	return resp, nil
}

func (s *invoiceService) GetByID(ctx context.Context, userID, id uuid.UUID) (*dto.InvoiceResponse, error) {
	inv, err := s.repo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, errors.New("invoice not found")
	}
	return invoiceToResponse(inv), nil
}

func (s *invoiceService) List(ctx context.Context, userID uuid.UUID) (*dto.InvoiceListResponse, error) {
	invoices, total, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := &dto.InvoiceListResponse{Total: total, Data: make([]dto.InvoiceResponse, 0, len(invoices))}
	for i := range invoices {
		resp.Data = append(resp.Data, *invoiceToResponse(&invoices[i]))
	}
	return resp, nil
}

func invoiceToResponse(inv *model.Invoice) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:          inv.ID.String(),
		InvoiceNo:   inv.InvoiceNo,
		TotalAmount: inv.TotalAmount,
		CreatedAt:   inv.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if inv.DetectionRunID != nil {
		id := inv.DetectionRunID.String()
		resp.DetectionRunID = &id
	}
	for _, item := range inv.Items {
		name, sku := "", ""
		if item.Product != nil {
			name = item.Product.Name
			sku = item.Product.SKU
		}
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ProductName: name,
			SKU:         sku,
			Qty:         item.Qty,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal,
		})
	}
	return resp
}
