package tests

import (
	"context"
	"testing"

	"github.com/amirclear/shelf-inventory/internal/dto"
	"github.com/amirclear/shelf-inventory/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCreate_DefaultMargin(t *testing.T) {
	repo := newStubProductRepo()
	svc := service.NewProductService(repo, nil)

	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		SKU:       "COKE-001",
		Name:      "Coca-Cola 330ml",
		Category:  "beverages",
		UnitPrice: decimal.NewFromFloat(2.50),
		Stock:     100,
	})
	require.NoError(t, err)
	assert.Equal(t, "0.2", resp.ProfitMargin.String())
}

func TestProductCreate_ExplicitMargin(t *testing.T) {
	repo := newStubProductRepo()
	svc := service.NewProductService(repo, nil)

	margin := decimal.NewFromFloat(0.35)
	resp, err := svc.Create(context.Background(), dto.CreateProductRequest{
		SKU:          "CHIPS-001",
		Name:         "Potato Chips 150g",
		Category:     "snacks",
		UnitPrice:    decimal.NewFromFloat(3.80),
		Stock:        50,
		ProfitMargin: &margin,
	})
	require.NoError(t, err)
	assert.Equal(t, "0.35", resp.ProfitMargin.String())
}

func TestProductCreate_DuplicateSKU(t *testing.T) {
	repo := newStubProductRepo()
	seedProduct(repo, "COKE-001", "Coca-Cola 330ml", 2.50, 100, 80, 0.25)
	svc := service.NewProductService(repo, nil)

	_, err := svc.Create(context.Background(), dto.CreateProductRequest{
		SKU:       "COKE-001",
		Name:      "Coca-Cola duplicate",
		Category:  "beverages",
		UnitPrice: decimal.NewFromFloat(2.50),
	})
	assert.ErrorContains(t, err, "SKU already exists")
}

func TestProductUpdate_PartialPatch(t *testing.T) {
	repo := newStubProductRepo()
	p := seedProduct(repo, "COKE-001", "Coca-Cola 330ml", 2.50, 100, 80, 0.25)
	svc := service.NewProductService(repo, nil)

	newStock := 40
	resp, err := svc.Update(context.Background(), p.ID, dto.UpdateProductRequest{Stock: &newStock})
	require.NoError(t, err)
	assert.Equal(t, 40, resp.Stock)
	// Untouched fields survive the patch.
	assert.Equal(t, "Coca-Cola 330ml", resp.Name)
	assert.Equal(t, "2.5", resp.UnitPrice.String())
}

func TestProductUpdate_NotFound(t *testing.T) {
	svc := service.NewProductService(newStubProductRepo(), nil)
	name := "renamed"
	_, err := svc.Update(context.Background(), uuid.New(), dto.UpdateProductRequest{Name: &name})
	assert.ErrorContains(t, err, "product not found")
}

func TestProductDelete(t *testing.T) {
	repo := newStubProductRepo()
	p := seedProduct(repo, "COKE-001", "Coca-Cola 330ml", 2.50, 100, 80, 0.25)
	svc := service.NewProductService(repo, nil)

	require.NoError(t, svc.Delete(context.Background(), p.ID))
	_, err := svc.GetByID(context.Background(), p.ID)
	assert.ErrorContains(t, err, "product not found")

	assert.ErrorContains(t, svc.Delete(context.Background(), p.ID), "product not found")
}

func TestProductList_PaginationDefaults(t *testing.T) {
	repo := newStubProductRepo()
	seedProduct(repo, "COKE-001", "Coca-Cola 330ml", 2.50, 100, 80, 0.25)
	svc := service.NewProductService(repo, nil)

	resp, err := svc.List(context.Background(), dto.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.Limit)
	assert.EqualValues(t, 1, resp.Total)
}
