package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice is created exactly once per successful generation and never
// mutated afterwards. DetectionRunID is nulled when the source run is
// deleted, keeping the invoice itself intact.
type Invoice struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceNo      string          `gorm:"uniqueIndex;not null"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DetectionRunID *uuid.UUID      `gorm:"type:uuid"`
	PDFPath        *string
	CreatedAt      time.Time

	User         *User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	DetectionRun *DetectionRun `gorm:"foreignKey:DetectionRunID;constraint:OnDelete:SET NULL"`
	Items        []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// InvoiceItem snapshots the unit price at generation time, so later price
// changes never alter an existing invoice. Subtotal = Qty × UnitPrice.
type InvoiceItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Qty       int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

// NewInvoiceNo returns a fresh human-readable invoice number:
// "INV-" followed by the first 8 hex characters of a random UUID, uppercased.
// Uniqueness is enforced by the DB index; a collision fails the transaction.
func NewInvoiceNo() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("INV-%s", strings.ToUpper(hex[:8]))
}
