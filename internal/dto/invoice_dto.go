package dto

import "github.com/shopspring/decimal"

// GenerateInvoiceRequest optionally carries a recipient address; when set,
// the generated invoice PDF is emailed after commit.
type GenerateInvoiceRequest struct {
	Email *string `json:"email" validate:"omitempty,email"`
}

type InvoiceItemResponse struct {
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	Qty         int             `json:"qty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type InvoiceResponse struct {
	ID             string                `json:"id"`
	InvoiceNo      string                `json:"invoice_no"`
	TotalAmount    decimal.Decimal       `json:"total_amount"`
	DetectionRunID *string               `json:"detection_run_id,omitempty"`
	Items          []InvoiceItemResponse `json:"items"`
	CreatedAt      string                `json:"created_at"`
}

type InvoiceListResponse struct {
	Data  []InvoiceResponse `json:"data"`
	Total int64             `json:"total"`
}
