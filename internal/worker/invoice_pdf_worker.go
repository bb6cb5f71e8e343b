package worker

// invoice_pdf_worker.go
// Processes PDF rendering jobs from QueueInvoicePDF: fetches the committed
// invoice with its items, renders the PDF, records its path, and hands off
// to the email queue when the job carries a recipient.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/amirclear/shelf-inventory/internal/infra"
	"github.com/amirclear/shelf-inventory/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type InvoicePDFWorker struct {
	invoiceRepo    repository.InvoiceRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
}

func NewInvoicePDFWorker(invoiceRepo repository.InvoiceRepository, dispatcher *Dispatcher, pdfStoragePath string) *InvoicePDFWorker {
	return &InvoicePDFWorker{
		invoiceRepo:    invoiceRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process renders a single invoice PDF. A returned error requeues the job;
// malformed payloads are dropped instead of retried.
func (w *InvoicePDFWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload InvoicePDFJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("invoice_pdf_worker: invalid payload")
		return nil
	}

	invoiceID, err := uuid.Parse(payload.InvoiceID)
	if err != nil {
		log.Error().Str("invoice_id", payload.InvoiceID).Msg("invoice_pdf_worker: invalid invoice_id")
		return nil
	}

	inv, err := w.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("invoice_pdf_worker: fetch invoice %s: %w", payload.InvoiceID, err)
	}

	pdfPath, err := infra.GenerateInvoicePDF(inv, w.pdfStoragePath)
	if err != nil {
		return fmt.Errorf("invoice_pdf_worker: render %s: %w", inv.InvoiceNo, err)
	}

	if err := w.invoiceRepo.UpdatePDFPath(ctx, invoiceID, pdfPath); err != nil {
		return fmt.Errorf("invoice_pdf_worker: record pdf path: %w", err)
	}
	log.Info().Str("invoice_no", inv.InvoiceNo).Str("pdf", pdfPath).Msg("invoice_pdf_worker: PDF generated")

	if payload.Email != nil && *payload.Email != "" {
		emailJob := EmailJobPayload{
			ToEmail: *payload.Email,
			Subject: fmt.Sprintf("Invoice %s", inv.InvoiceNo),
			Body:    fmt.Sprintf("Your invoice is attached.\nTotal: $%s", inv.TotalAmount.StringFixed(2)),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *payload.Email).Msg("invoice_pdf_worker: failed to enqueue email")
		}
	}
	return nil
}
