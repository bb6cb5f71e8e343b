package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	SKU                 string          `json:"sku"                   validate:"required,min=2,max=100"`
	Name                string          `json:"name"                  validate:"required,min=2,max=200"`
	Category            string          `json:"category"              validate:"required"`
	UnitPrice           decimal.Decimal `json:"unit_price"            validate:"required,gt=0"`
	Stock               int             `json:"stock"                 validate:"min=0"`
	WeeklySalesEstimate int             `json:"weekly_sales_estimate" validate:"min=0"`
	ProfitMargin        *decimal.Decimal `json:"profit_margin"        validate:"omitempty,min=0,max=1"`
}

type UpdateProductRequest struct {
	Name                *string          `json:"name"                  validate:"omitempty,min=2,max=200"`
	Category            *string          `json:"category"`
	UnitPrice           *decimal.Decimal `json:"unit_price"            validate:"omitempty,gt=0"`
	Stock               *int             `json:"stock"                 validate:"omitempty,min=0"`
	WeeklySalesEstimate *int             `json:"weekly_sales_estimate" validate:"omitempty,min=0"`
	ProfitMargin        *decimal.Decimal `json:"profit_margin"         validate:"omitempty,min=0,max=1"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ProductFilter struct {
	SKU      string `form:"sku"`
	Name     string `form:"name"`
	Category string `form:"category"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductResponse struct {
	ID                  string          `json:"id"`
	SKU                 string          `json:"sku"`
	Name                string          `json:"name"`
	Category            string          `json:"category"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	Stock               int             `json:"stock"`
	WeeklySalesEstimate int             `json:"weekly_sales_estimate"`
	ProfitMargin        decimal.Decimal `json:"profit_margin"`
}

type ProductListResponse struct {
	Data  []ProductResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
