package worker

// retry_cron.go
// Periodic sweep that re-enqueues PDF jobs for invoices whose PDF was never
// rendered (worker crash, redis flush, DLQ'd job fixed by hand). Runs inside
// the server process; safe to run on multiple instances since rendering is
// idempotent — the last writer wins on pdf_path.

import (
	"context"
	"time"

	"github.com/amirclear/shelf-inventory/internal/repository"

	"github.com/rs/zerolog/log"
)

const (
	retrySweepInterval = 10 * time.Minute
	retrySweepBatch    = 50
)

// StartPDFRetrySweep launches the background sweep goroutine.
func StartPDFRetrySweep(ctx context.Context, invoiceRepo repository.InvoiceRepository, dispatcher *Dispatcher) {
	go func() {
		ticker := time.NewTicker(retrySweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sweepMissingPDFs(ctx, invoiceRepo, dispatcher)
			}
		}
	}()
}

func sweepMissingPDFs(ctx context.Context, invoiceRepo repository.InvoiceRepository, dispatcher *Dispatcher) {
	invoices, err := invoiceRepo.ListMissingPDF(ctx, retrySweepBatch)
	if err != nil {
		log.Error().Err(err).Msg("pdf retry sweep: listing invoices failed")
		return
	}
	if len(invoices) == 0 {
		return
	}

	requeued := 0
	for i := range invoices {
		payload := InvoicePDFJobPayload{InvoiceID: invoices[i].ID.String()}
		if err := dispatcher.EnqueueInvoicePDF(ctx, payload); err != nil {
			log.Warn().Err(err).Str("invoice_no", invoices[i].InvoiceNo).Msg("pdf retry sweep: enqueue failed")
			continue
		}
		requeued++
	}
	log.Info().Int("requeued", requeued).Msg("pdf retry sweep: jobs re-enqueued")
}
