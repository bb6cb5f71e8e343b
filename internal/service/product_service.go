package service

import (
	"context"
	"errors"

	"github.com/amirclear/shelf-inventory/internal/dto"
	"github.com/amirclear/shelf-inventory/internal/model"
	"github.com/amirclear/shelf-inventory/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var defaultProfitMargin = decimal.NewFromFloat(0.20)

// ProductService defines the business logic contract for the catalog.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productService struct {
	repo repository.ProductRepository
	rdb  *redis.Client
}

func NewProductService(repo repository.ProductRepository, rdb *redis.Client) ProductService {
	return &productService{repo: repo, rdb: rdb}
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if existing, err := s.repo.FindBySKU(ctx, req.SKU); err == nil && existing.ID != uuid.Nil {
		return nil, errors.New("SKU already exists")
	}

	margin := defaultProfitMargin
	if req.ProfitMargin != nil {
		margin = *req.ProfitMargin
	}
	p := &model.Product{
		SKU:                 req.SKU,
		Name:                req.Name,
		Category:            req.Category,
		UnitPrice:           req.UnitPrice,
		Stock:               req.Stock,
		WeeklySalesEstimate: req.WeeklySalesEstimate,
		ProfitMargin:        margin,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateAnalytics(ctx)
	return productToResponse(p), nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}
	return productToResponse(p), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductListResponse{
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
		Data:  make([]dto.ProductResponse, 0, len(products)),
	}
	for i := range products {
		resp.Data = append(resp.Data, *productToResponse(&products[i]))
	}
	return resp, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("product not found")
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Category != nil {
		p.Category = *req.Category
	}
	if req.UnitPrice != nil {
		p.UnitPrice = *req.UnitPrice
	}
	if req.Stock != nil {
		p.Stock = *req.Stock
	}
	if req.WeeklySalesEstimate != nil {
		p.WeeklySalesEstimate = *req.WeeklySalesEstimate
	}
	if req.ProfitMargin != nil {
		p.ProfitMargin = *req.ProfitMargin
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidateAnalytics(ctx)
	return productToResponse(p), nil
}

// Delete removes the product outright — the catalog has no soft-delete.
// Existing invoice items keep their price snapshot but lose the product link.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("product not found")
		}
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateAnalytics(ctx)
	return nil
}

func (s *productService) invalidateAnalytics(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, analyticsCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate analytics cache")
	}
}

func productToResponse(p *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                  p.ID.String(),
		SKU:                 p.SKU,
		Name:                p.Name,
		Category:            p.Category,
		UnitPrice:           p.UnitPrice,
		Stock:               p.Stock,
		WeeklySalesEstimate: p.WeeklySalesEstimate,
		ProfitMargin:        p.ProfitMargin,
	}
}
