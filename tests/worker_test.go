package tests

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/amirclear/shelf-inventory/internal/model"
	"github.com/amirclear/shelf-inventory/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoicePDFWorker_RendersAndRecordsPath(t *testing.T) {
	repo := newStubInvoiceRepo()
	inv := &model.Invoice{
		ID:          uuid.New(),
		InvoiceNo:   model.NewInvoiceNo(),
		UserID:      uuid.New(),
		TotalAmount: decimal.NewFromFloat(46.50),
		Items: []model.InvoiceItem{
			{
				ProductID: uuid.New(),
				Qty:       14,
				UnitPrice: decimal.NewFromFloat(2.50),
				Subtotal:  decimal.NewFromFloat(35.00),
				Product:   &model.Product{SKU: "COKE-001", Name: "Coca-Cola 330ml"},
			},
		},
	}
	repo.invoices[inv.ID] = inv

	dir := t.TempDir()
	w := worker.NewInvoicePDFWorker(repo, nil, dir)

	payload, err := json.Marshal(worker.InvoicePDFJobPayload{InvoiceID: inv.ID.String()})
	require.NoError(t, err)
	require.NoError(t, w.Process(context.Background(), payload))

	require.NotNil(t, inv.PDFPath)
	info, err := os.Stat(*inv.PDFPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestInvoicePDFWorker_MalformedPayloadDropped(t *testing.T) {
	w := worker.NewInvoicePDFWorker(newStubInvoiceRepo(), nil, t.TempDir())
	// A payload that cannot be parsed must not be requeued.
	assert.NoError(t, w.Process(context.Background(), json.RawMessage(`{broken`)))
}

func TestInvoicePDFWorker_MissingInvoiceRetried(t *testing.T) {
	w := worker.NewInvoicePDFWorker(newStubInvoiceRepo(), nil, t.TempDir())
	payload, err := json.Marshal(worker.InvoicePDFJobPayload{InvoiceID: uuid.NewString()})
	require.NoError(t, err)
	// A missing invoice is an error, so the pool requeues the job.
	assert.Error(t, w.Process(context.Background(), payload))
}

func TestNewInvoiceNoFormat(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		no := model.NewInvoiceNo()
		assert.Regexp(t, `^INV-[0-9A-F]{8}$`, no)
		assert.False(t, seen[no], "duplicate invoice number %s", no)
		seen[no] = true
	}
}
