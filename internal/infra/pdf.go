package infra

// pdf.go — Invoice PDF generation using go-pdf/fpdf.
// Renders an A5 document with the invoice number and date, an item table
// (product, SKU, quantity, unit price, subtotal), and a bold total line.
// The output file is saved to storagePath/invoice_{number}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/amirclear/shelf-inventory/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateInvoicePDF renders inv (with Items and their Products preloaded)
// into a PDF under storagePath and returns the file's absolute path.
func GenerateInvoicePDF(inv *model.Invoice, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("invoice_%s.pdf", inv.InvoiceNo)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Shelf Inventory", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, inv.InvoiceNo, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, inv.CreatedAt.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	// ── Item table ───────────────────────────────────────────────────────────
	colProduct := contentW * 0.38
	colSKU := contentW * 0.22
	colQty := contentW * 0.10
	colPrice := contentW * 0.15
	colSub := contentW * 0.15

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(colProduct, 6, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colSKU, 6, "SKU", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colQty, 6, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colPrice, 6, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colSub, 6, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	for _, item := range inv.Items {
		name, sku := "", ""
		if item.Product != nil {
			name = item.Product.Name
			sku = item.Product.SKU
		}
		pdf.CellFormat(colProduct, 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(colSKU, 6, sku, "", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, 6, fmt.Sprintf("%d", item.Qty), "", 0, "R", false, 0, "")
		pdf.CellFormat(colPrice, 6, item.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(colSub, 6, item.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW-colSub, 7, "TOTAL", "T", 0, "R", false, 0, "")
	pdf.CellFormat(colSub, 7, "$"+inv.TotalAmount.StringFixed(2), "T", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
