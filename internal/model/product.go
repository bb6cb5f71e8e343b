package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry identified by its SKU. Stock is mutated by
// manual CRUD and by invoice generation, and must never go negative.
type Product struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU                 string          `gorm:"uniqueIndex;not null"`
	Name                string          `gorm:"index;not null"`
	Category            string          `gorm:"not null"`
	UnitPrice           decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock               int             `gorm:"not null;default:0"`
	WeeklySalesEstimate int             `gorm:"not null;default:0"`
	// ProfitMargin is a fraction in [0,1], not a percentage.
	ProfitMargin decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0.20"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// InvestmentScore is the analytics ranking heuristic:
// (weekly sales estimate × profit margin) / max(1, stock).
// Products with no stock score exactly zero.
func (p *Product) InvestmentScore() float64 {
	if p.Stock <= 0 {
		return 0
	}
	denom := p.Stock
	if denom < 1 {
		denom = 1
	}
	margin, _ := p.ProfitMargin.Float64()
	return float64(p.WeeklySalesEstimate) * margin / float64(denom)
}
